package customer

import (
	"context"
	"time"

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

func (s *Service) GetAll(ctx context.Context) ([]Customer, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) Get(ctx context.Context, rowID int64) (*Customer, error) {
	return s.repo.Get(ctx, rowID)
}

func (s *Service) Create(ctx context.Context, c *Customer) (*Customer, error) {
	if err := validation.Struct(c); err != nil {
		return nil, err
	}

	var id int64
	err := s.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		id, err = s.repo.Create(ctx, tx, c)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, id)
}

// Update overwrites every field of the row except the name, which is
// immutable after creation: whatever the caller supplies, the stored name
// wins. Last writer wins on all other fields.
func (s *Service) Update(ctx context.Context, c *Customer) error {
	existing, err := s.repo.Get(ctx, c.RowID)
	if err != nil {
		return err
	}
	c.Name = existing.Name

	if err := validation.Struct(c); err != nil {
		return err
	}

	return s.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.repo.Update(ctx, tx, c)
	})
}

// Delete removes the row. Sales referencing the customer are left in
// place; there is no cascade.
func (s *Service) Delete(ctx context.Context, rowID int64) error {
	exists, err := s.repo.Exists(ctx, rowID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("customer", rowID)
	}

	return s.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.repo.Delete(ctx, tx, rowID)
	})
}

func (s *Service) Exists(ctx context.Context, rowID int64) (bool, error) {
	return s.repo.Exists(ctx, rowID)
}

// FollowUpsBetween returns customers whose follow-up date falls inside the
// inclusive window, sorted ascending by follow-up date. Customers without
// a follow-up date are excluded.
func (s *Service) FollowUpsBetween(ctx context.Context, start, end string) ([]Customer, error) {
	for _, d := range []string{start, end} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return nil, apperr.Validation("follow_up_date", "must be a date in YYYY-MM-DD format")
		}
	}
	return s.repo.FollowUpsBetween(ctx, start, end)
}
