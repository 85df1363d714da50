package sale

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"relatrix.app/crmserver/internal/apperr"
	"relatrix.app/crmserver/internal/database"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Sale, error)
	Get(ctx context.Context, rowID int64) (*Sale, error)
	Create(ctx context.Context, tx *sqlx.Tx, s *Sale) (int64, error)
	Update(ctx context.Context, tx *sqlx.Tx, s *Sale) error
	Delete(ctx context.Context, tx *sqlx.Tx, rowID int64) error
	Exists(ctx context.Context, rowID int64) (bool, error)
	GetForCustomer(ctx context.Context, customerID string) ([]Sale, error)
}

type repo struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) Repository {
	return &repo{db: db}
}

func (r *repo) GetAll(ctx context.Context) ([]Sale, error) {
	out := make([]Sale, 0)
	err := r.db.SelectContext(ctx, &out, getAllSalesSQL)
	if err != nil {
		return nil, apperr.Storage("get all sales", err)
	}
	return out, nil
}

func (r *repo) Get(ctx context.Context, rowID int64) (*Sale, error) {
	var s Sale
	err := r.db.GetContext(ctx, &s, r.db.Rebind(getSaleSQL), rowID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("sale", rowID)
	}
	if err != nil {
		return nil, apperr.Storage("get sale", err)
	}
	return &s, nil
}

func (r *repo) Create(ctx context.Context, tx *sqlx.Tx, s *Sale) (int64, error) {
	args := []any{s.CustomerID, s.Product, s.Amount, s.SaleDate}

	if r.db.DriverName() == database.DriverPostgres {
		var id int64
		q := r.db.Rebind(createSaleSQL + " RETURNING row_id")
		if err := tx.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
			return 0, apperr.Storage("create sale", err)
		}
		return id, nil
	}

	res, err := tx.ExecContext(ctx, createSaleSQL, args...)
	if err != nil {
		return 0, apperr.Storage("create sale", err)
	}
	return res.LastInsertId()
}

func (r *repo) Update(ctx context.Context, tx *sqlx.Tx, s *Sale) error {
	_, err := tx.ExecContext(ctx, r.db.Rebind(updateSaleSQL),
		s.CustomerID,
		s.Product,
		s.Amount,
		s.SaleDate,
		s.RowID,
	)
	if err != nil {
		return apperr.Storage("update sale", err)
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, tx *sqlx.Tx, rowID int64) error {
	_, err := tx.ExecContext(ctx, r.db.Rebind(deleteSaleSQL), rowID)
	if err != nil {
		return apperr.Storage("delete sale", err)
	}
	return nil
}

func (r *repo) Exists(ctx context.Context, rowID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, r.db.Rebind(saleExistsSQL), rowID)
	if err != nil {
		return false, apperr.Storage("sale exists", err)
	}
	return exists, nil
}

func (r *repo) GetForCustomer(ctx context.Context, customerID string) ([]Sale, error) {
	out := make([]Sale, 0)
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(getSalesForCustomerSQL), customerID)
	if err != nil {
		return nil, apperr.Storage("get sales for customer", err)
	}
	return out, nil
}
