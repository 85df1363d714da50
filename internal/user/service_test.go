package user_test

import (
	"context"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"relatrix.app/crmserver/internal/apperr"
	"relatrix.app/crmserver/internal/testutil"
	"relatrix.app/crmserver/internal/user"
)

func TestSignupAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)

	svc := user.NewService(db)

	u, err := svc.Signup(ctx, "Asha Verma", "asha@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if u.RowID == 0 {
		t.Fatal("expected assigned row id")
	}
	if u.PasswordHash == "correct horse battery" {
		t.Fatal("password stored in the clear")
	}
	if !strings.HasPrefix(u.PasswordHash, "$2a$") {
		t.Errorf("expected a bcrypt hash, got %q", u.PasswordHash)
	}

	got, err := svc.Authenticate(ctx, "asha@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.Email != "asha@example.com" || got.Name != "Asha Verma" {
		t.Errorf("unexpected user: %+v", got)
	}
}

func TestAuthenticateRejects(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)

	svc := user.NewService(db)

	if _, err := svc.Signup(ctx, "Asha Verma", "asha@example.com", "correct horse battery"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "asha@example.com", "wrong password")
		if err != user.ErrInvalidCredentials {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody@example.com", "correct horse battery")
		if err != user.ErrInvalidCredentials {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestSignupDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)

	svc := user.NewService(db)

	if _, err := svc.Signup(ctx, "Asha Verma", "asha@example.com", "correct horse battery"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	_, err := svc.Signup(ctx, "Imposter", "ASHA@example.com", "another password")
	if !apperr.IsDuplicate(err) {
		t.Fatalf("expected duplicate error for same email, got %v", err)
	}
}

func TestSignupValidation(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)

	svc := user.NewService(db)

	cases := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"missing name", "", "a@example.com", "long enough pw"},
		{"bad email", "Asha", "not-an-email", "long enough pw"},
		{"short password", "Asha", "a@example.com", "short"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Signup(ctx, tc.userName, tc.email, tc.password); !apperr.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}
