package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"relatrix.app/crmserver/internal/apperr"
	"relatrix.app/crmserver/internal/database"
)

type Repository interface {
	GetAll(ctx context.Context) ([]User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, tx *sqlx.Tx, u *User) (int64, error)
	Delete(ctx context.Context, tx *sqlx.Tx, rowID int64) error
}

type repo struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) Repository {
	return &repo{db: db}
}

func (r *repo) GetAll(ctx context.Context) ([]User, error) {
	out := make([]User, 0)
	err := r.db.SelectContext(ctx, &out, getAllUsersSQL)
	if err != nil {
		return nil, apperr.Storage("get all users", err)
	}
	return out, nil
}

func (r *repo) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, r.db.Rebind(getUserByEmailSQL), email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user", 0)
	}
	if err != nil {
		return nil, apperr.Storage("get user by email", err)
	}
	return &u, nil
}

func (r *repo) Create(ctx context.Context, tx *sqlx.Tx, u *User) (int64, error) {
	args := []any{u.Name, u.Email, u.PasswordHash}

	if r.db.DriverName() == database.DriverPostgres {
		var id int64
		q := r.db.Rebind(createUserSQL + " RETURNING row_id")
		err := tx.QueryRowContext(ctx, q, args...).Scan(&id)
		if err != nil {
			if database.IsUniqueConstraintError(err) {
				return 0, apperr.Duplicate("email", u.Email)
			}
			return 0, apperr.Storage("create user", err)
		}
		return id, nil
	}

	res, err := tx.ExecContext(ctx, createUserSQL, args...)
	if err != nil {
		if database.IsUniqueConstraintError(err) {
			return 0, apperr.Duplicate("email", u.Email)
		}
		return 0, apperr.Storage("create user", err)
	}
	return res.LastInsertId()
}

func (r *repo) Delete(ctx context.Context, tx *sqlx.Tx, rowID int64) error {
	_, err := tx.ExecContext(ctx, r.db.Rebind(deleteUserSQL), rowID)
	if err != nil {
		return apperr.Storage("delete user", err)
	}
	return nil
}
