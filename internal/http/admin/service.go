package admin

import (
	"context"

	"relatrix.app/crmserver/internal/backup"
	"relatrix.app/crmserver/internal/customer"
	"relatrix.app/crmserver/internal/sale"
	"relatrix.app/crmserver/internal/user"
)

type Service struct {
	customers *customer.Service
	sales     *sale.Service
	users     *user.Service
	backups   *backup.Service
}

func NewService(
	c *customer.Service,
	s *sale.Service,
	u *user.Service,
	b *backup.Service,
) *Service {
	return &Service{
		customers: c,
		sales:     s,
		users:     u,
		backups:   b,
	}
}

// -------------------------
// Customers
// -------------------------

func (s *Service) GetCustomers(ctx context.Context) ([]customer.Customer, error) {
	return s.customers.GetAll(ctx)
}

func (s *Service) GetCustomer(ctx context.Context, rowID int64) (*customer.Customer, error) {
	return s.customers.Get(ctx, rowID)
}

func (s *Service) CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (*customer.Customer, error) {
	c := &customer.Customer{
		CustomerID:   req.CustomerID,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		Gender:       req.Gender,
		Company:      req.Company,
		JoinedDate:   req.JoinedDate,
		FollowUpDate: req.FollowUpDate,
	}
	return s.customers.Create(ctx, c)
}

func (s *Service) UpdateCustomer(ctx context.Context, rowID int64, req *UpdateCustomerRequest) error {
	c := &customer.Customer{
		RowID:        rowID,
		CustomerID:   req.CustomerID,
		Name:         req.Name, // discarded by the customer service
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		Gender:       req.Gender,
		Company:      req.Company,
		JoinedDate:   req.JoinedDate,
		FollowUpDate: req.FollowUpDate,
	}
	return s.customers.Update(ctx, c)
}

func (s *Service) DeleteCustomer(ctx context.Context, rowID int64) error {
	return s.customers.Delete(ctx, rowID)
}

// Reminders returns customers with a follow-up scheduled inside the
// window, soonest first.
func (s *Service) Reminders(ctx context.Context, start, end string) ([]customer.Customer, error) {
	return s.customers.FollowUpsBetween(ctx, start, end)
}

// -------------------------
// Sales
// -------------------------

func (s *Service) GetSales(ctx context.Context) ([]sale.Sale, error) {
	return s.sales.GetAll(ctx)
}

func (s *Service) GetSale(ctx context.Context, rowID int64) (*sale.Sale, error) {
	return s.sales.Get(ctx, rowID)
}

func (s *Service) CreateSale(ctx context.Context, req *CreateSaleRequest) (*sale.Sale, error) {
	sl := &sale.Sale{
		CustomerID: req.CustomerID,
		Product:    req.Product,
		Amount:     req.Amount,
		SaleDate:   req.SaleDate,
	}
	return s.sales.Create(ctx, sl)
}

func (s *Service) UpdateSale(ctx context.Context, rowID int64, req *UpdateSaleRequest) error {
	sl := &sale.Sale{
		RowID:      rowID,
		CustomerID: req.CustomerID,
		Product:    req.Product,
		Amount:     req.Amount,
		SaleDate:   req.SaleDate,
	}
	return s.sales.Update(ctx, sl)
}

func (s *Service) DeleteSale(ctx context.Context, rowID int64) error {
	return s.sales.Delete(ctx, rowID)
}

func (s *Service) GetCustomerSales(ctx context.Context, customerID string) (*CustomerSalesResponse, error) {
	sales, err := s.sales.GetForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, sl := range sales {
		total += sl.Amount
	}

	return &CustomerSalesResponse{
		CustomerID: customerID,
		Sales:      sales,
		Total:      total,
	}, nil
}

func (s *Service) SalesByProduct(ctx context.Context) (map[string]float64, error) {
	return s.sales.TotalsByProduct(ctx)
}

func (s *Service) SalesByDate(ctx context.Context) (map[string]float64, error) {
	return s.sales.TotalsBySaleDate(ctx)
}

// -------------------------
// Users / backup
// -------------------------

func (s *Service) GetUsers(ctx context.Context) ([]user.User, error) {
	return s.users.GetAll(ctx)
}

func (s *Service) BackupDatabase(ctx context.Context) (*backup.BackupResult, error) {
	return s.backups.CreateBackup(ctx)
}
