package sale

import (
	"context"

	"github.com/jmoiron/sqlx"

	"relatrix.app/crmserver/internal/apperr"
	"relatrix.app/crmserver/internal/validation"
)

type Service struct {
	repo Repository
	db   *sqlx.DB
}

func NewService(db *sqlx.DB) *Service {
	return &Service{
		db:   db,
		repo: New(db),
	}
}

func (s *Service) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *Service) GetAll(ctx context.Context) ([]Sale, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) Get(ctx context.Context, rowID int64) (*Sale, error) {
	return s.repo.Get(ctx, rowID)
}

func (s *Service) Create(ctx context.Context, sl *Sale) (*Sale, error) {
	if err := validation.Struct(sl); err != nil {
		return nil, err
	}

	var id int64
	err := s.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		id, err = s.repo.Create(ctx, tx, sl)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, sl *Sale) error {
	exists, err := s.repo.Exists(ctx, sl.RowID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("sale", sl.RowID)
	}

	if err := validation.Struct(sl); err != nil {
		return err
	}

	return s.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.repo.Update(ctx, tx, sl)
	})
}

func (s *Service) Delete(ctx context.Context, rowID int64) error {
	exists, err := s.repo.Exists(ctx, rowID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("sale", rowID)
	}

	return s.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.repo.Delete(ctx, tx, rowID)
	})
}

// GetForCustomer returns the sales recorded against the given operator
// customer id. The id is not required to match an existing customer.
func (s *Service) GetForCustomer(ctx context.Context, customerID string) ([]Sale, error) {
	return s.repo.GetForCustomer(ctx, customerID)
}

// PurchaseTotal sums the amounts of every sale for the customer.
func (s *Service) PurchaseTotal(ctx context.Context, customerID string) (float64, error) {
	sales, err := s.repo.GetForCustomer(ctx, customerID)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, sl := range sales {
		total += sl.Amount
	}
	return total, nil
}

// TotalsByProduct groups all sales by product and sums the amounts.
// The grouping runs in memory over the full sales list, which is fine at
// the row counts a single operator produces.
func (s *Service) TotalsByProduct(ctx context.Context) (map[string]float64, error) {
	return s.totalsBy(ctx, func(sl Sale) string { return sl.Product })
}

// TotalsBySaleDate groups all sales by sale date and sums the amounts.
func (s *Service) TotalsBySaleDate(ctx context.Context) (map[string]float64, error) {
	return s.totalsBy(ctx, func(sl Sale) string { return sl.SaleDate })
}

func (s *Service) totalsBy(ctx context.Context, key func(Sale) string) (map[string]float64, error) {
	sales, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64, len(sales))
	for _, sl := range sales {
		totals[key(sl)] += sl.Amount
	}
	return totals, nil
}
