package user

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"relatrix.app/crmserver/internal/apperr"
	"relatrix.app/crmserver/internal/validation"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong
// password. The two cases are indistinguishable on purpose.
var ErrInvalidCredentials = errors.New("invalid email or password")

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

func (s *Service) GetAll(ctx context.Context) ([]User, error) {
	return s.repo.GetAll(ctx)
}

// Signup creates a credential with a bcrypt-hashed password. A duplicate
// email surfaces as *apperr.DuplicateError via the unique index.
func (s *Service) Signup(ctx context.Context, name, email, password string) (*User, error) {
	u := &User{Name: name, Email: email}
	if err := validation.Struct(u); err != nil {
		return nil, err
	}
	if len(password) < 8 {
		return nil, apperr.Validation("password", "must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = string(hash)

	err = s.WithTx(ctx, func(tx *sqlx.Tx) error {
		id, err := s.repo.Create(ctx, tx, u)
		if err != nil {
			return err
		}
		u.RowID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate verifies an email/password pair against the stored hash.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if apperr.IsNotFound(err) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
