package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	apperrors "mughal/internal/errors"
	"mughal/internal/models"
)

func mustHash(t *testing.T, pw string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(hash)
}

func TestStaticDirectory_Authenticate(t *testing.T) {
	ctx := context.Background()
	dir, err := NewStaticDirectory([]Account{
		{Username: "Cashier", PasswordHash: mustHash(t, "till-open"),
			User: models.User{ID: "u2", Name: "Front Desk Cashier", Role: models.RoleCashier}},
	})
	if err != nil {
		t.Fatalf("NewStaticDirectory: %v", err)
	}

	t.Run("valid_credentials", func(t *testing.T) {
		u, err := dir.Authenticate(ctx, "cashier", "till-open")
		if err != nil {
			t.Fatalf("Authenticate: %v", err)
		}
		if u.ID != "u2" || u.Role != models.RoleCashier {
			t.Errorf("user = %+v", u)
		}
	})

	t.Run("username_is_case_insensitive", func(t *testing.T) {
		if _, err := dir.Authenticate(ctx, "  CASHIER ", "till-open"); err != nil {
			t.Errorf("Authenticate: %v", err)
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := dir.Authenticate(ctx, "cashier", "till-closed")
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown_user", func(t *testing.T) {
		_, err := dir.Authenticate(ctx, "manager", "till-open")
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("returned_user_is_a_copy", func(t *testing.T) {
		u, _ := dir.Authenticate(ctx, "cashier", "till-open")
		u.Role = models.RoleAdmin
		again, _ := dir.Authenticate(ctx, "cashier", "till-open")
		if again.Role != models.RoleCashier {
			t.Error("directory account was mutated through a returned user")
		}
	})
}

func TestNewStaticDirectory_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		accounts []Account
	}{
		{"duplicate_username", []Account{
			{Username: "a", User: models.User{Role: models.RoleAdmin}},
			{Username: "A", User: models.User{Role: models.RoleCashier}},
		}},
		{"empty_username", []Account{{Username: " ", User: models.User{Role: models.RoleAdmin}}}},
		{"invalid_role", []Account{{Username: "x", User: models.User{Role: "OWNER"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewStaticDirectory(tt.accounts); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseAccounts(t *testing.T) {
	t.Run("parses_entries", func(t *testing.T) {
		got, err := ParseAccounts("admin:$2a$10$abc:u1:System Admin:admin, sales:$2a$10$def:u3:Floor Salesman:SALESMAN")
		if err != nil {
			t.Fatalf("ParseAccounts: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d accounts", len(got))
		}
		if got[0].User.Role != models.RoleAdmin || got[0].User.Name != "System Admin" || got[0].PasswordHash != "$2a$10$abc" {
			t.Errorf("first account = %+v", got[0])
		}
		if got[1].Username != "sales" || got[1].User.ID != "u3" {
			t.Errorf("second account = %+v", got[1])
		}
	})

	t.Run("empty_input", func(t *testing.T) {
		got, err := ParseAccounts("")
		if err != nil || len(got) != 0 {
			t.Errorf("got %v, %v", got, err)
		}
	})

	t.Run("malformed_entry", func(t *testing.T) {
		if _, err := ParseAccounts("admin:hash:u1"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("unknown_role", func(t *testing.T) {
		if _, err := ParseAccounts("a:h:u9:Someone:OWNER"); err == nil {
			t.Error("expected error")
		}
	})
}

func TestDevAccounts(t *testing.T) {
	accounts, err := DevAccounts(DevPasswords{Admin: "a-pass", Salesman: "s-pass"})
	if err != nil {
		t.Fatalf("DevAccounts: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("got %d accounts, want 2 (cashier has no password)", len(accounts))
	}

	dir, err := NewStaticDirectory(accounts)
	if err != nil {
		t.Fatalf("NewStaticDirectory: %v", err)
	}
	u, err := dir.Authenticate(context.Background(), "sales", "s-pass")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if u.Role != models.RoleSalesman {
		t.Errorf("role = %s", u.Role)
	}
	if _, err := dir.Authenticate(context.Background(), "cashier", ""); err == nil {
		t.Error("cashier account should not exist")
	}
}
