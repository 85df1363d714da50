package sale

// Sale is a single sale row. CustomerID references a customer by its
// operator-supplied id; the reference is by convention only and is not
// checked against the customers table. Amount is not range-checked at the
// store level either; the input widgets are the only guard.
type Sale struct {
	RowID      int64   `db:"row_id"`
	CustomerID string  `db:"customer_id" validate:"required"`
	Product    string  `db:"product" validate:"required"`
	Amount     float64 `db:"amount"`
	SaleDate   string  `db:"sale_date" validate:"required,datetime=2006-01-02"`
}
