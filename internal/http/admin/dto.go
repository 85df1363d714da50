package admin

// -------------------------
// Customer DTOs
// -------------------------

type CreateCustomerRequest struct {
	CustomerID   string  `json:"customerId"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Gender       string  `json:"gender"`
	Company      string  `json:"company"`
	JoinedDate   string  `json:"joinedDate"`
	FollowUpDate *string `json:"followUpDate"`
}

// UpdateCustomerRequest carries the same fields for symmetry, but Name is
// ignored on update: the stored name is immutable.
type UpdateCustomerRequest struct {
	CustomerID   string  `json:"customerId"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Gender       string  `json:"gender"`
	Company      string  `json:"company"`
	JoinedDate   string  `json:"joinedDate"`
	FollowUpDate *string `json:"followUpDate"`
}

// -------------------------
// Sale DTOs
// -------------------------

type CreateSaleRequest struct {
	CustomerID string  `json:"customerId"`
	Product    string  `json:"product"`
	Amount     float64 `json:"amount"`
	SaleDate   string  `json:"saleDate"`
}

type UpdateSaleRequest struct {
	CustomerID string  `json:"customerId"`
	Product    string  `json:"product"`
	Amount     float64 `json:"amount"`
	SaleDate   string  `json:"saleDate"`
}

// CustomerSalesResponse pairs a customer's sales with their summed total.
type CustomerSalesResponse struct {
	CustomerID string  `json:"customerId"`
	Sales      any     `json:"sales"`
	Total      float64 `json:"total"`
}
