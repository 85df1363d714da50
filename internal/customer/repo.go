package customer

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"relatrix.app/crmserver/internal/apperr"
	"relatrix.app/crmserver/internal/database"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Customer, error)
	Get(ctx context.Context, rowID int64) (*Customer, error)
	Create(ctx context.Context, tx *sqlx.Tx, c *Customer) (int64, error)
	Update(ctx context.Context, tx *sqlx.Tx, c *Customer) error
	Delete(ctx context.Context, tx *sqlx.Tx, rowID int64) error
	Exists(ctx context.Context, rowID int64) (bool, error)
	FollowUpsBetween(ctx context.Context, start, end string) ([]Customer, error)
}

type repo struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) Repository {
	return &repo{db: db}
}

func (r *repo) GetAll(ctx context.Context) ([]Customer, error) {
	out := make([]Customer, 0)
	err := r.db.SelectContext(ctx, &out, getAllCustomersSQL)
	if err != nil {
		return nil, apperr.Storage("get all customers", err)
	}
	return out, nil
}

func (r *repo) Get(ctx context.Context, rowID int64) (*Customer, error) {
	var c Customer
	err := r.db.GetContext(ctx, &c, r.db.Rebind(getCustomerSQL), rowID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("customer", rowID)
	}
	if err != nil {
		return nil, apperr.Storage("get customer", err)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, tx *sqlx.Tx, c *Customer) (int64, error) {
	args := []any{
		c.CustomerID,
		c.Name,
		c.Email,
		c.Phone,
		c.Address,
		c.City,
		c.State,
		c.Gender,
		c.Company,
		c.JoinedDate,
		c.FollowUpDate,
	}

	// lib/pq has no LastInsertId; the remote backend returns the key instead
	if r.db.DriverName() == database.DriverPostgres {
		var id int64
		q := r.db.Rebind(createCustomerSQL + " RETURNING row_id")
		if err := tx.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
			return 0, apperr.Storage("create customer", err)
		}
		return id, nil
	}

	res, err := tx.ExecContext(ctx, createCustomerSQL, args...)
	if err != nil {
		return 0, apperr.Storage("create customer", err)
	}
	return res.LastInsertId()
}

func (r *repo) Update(ctx context.Context, tx *sqlx.Tx, c *Customer) error {
	_, err := tx.ExecContext(ctx, r.db.Rebind(updateCustomerSQL),
		c.CustomerID,
		c.Name,
		c.Email,
		c.Phone,
		c.Address,
		c.City,
		c.State,
		c.Gender,
		c.Company,
		c.JoinedDate,
		c.FollowUpDate,
		c.RowID,
	)
	if err != nil {
		return apperr.Storage("update customer", err)
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, tx *sqlx.Tx, rowID int64) error {
	_, err := tx.ExecContext(ctx, r.db.Rebind(deleteCustomerSQL), rowID)
	if err != nil {
		return apperr.Storage("delete customer", err)
	}
	return nil
}

func (r *repo) Exists(ctx context.Context, rowID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, r.db.Rebind(customerExistsSQL), rowID)
	if err != nil {
		return false, apperr.Storage("customer exists", err)
	}
	return exists, nil
}

func (r *repo) FollowUpsBetween(ctx context.Context, start, end string) ([]Customer, error) {
	out := make([]Customer, 0)
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(followUpWindowSQL), start, end)
	if err != nil {
		return nil, apperr.Storage("follow-up window", err)
	}
	return out, nil
}
