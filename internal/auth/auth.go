// Package auth checks staff credentials against a fixed account directory.
package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "mughal/internal/errors"
	"mughal/internal/models"
)

// Authenticator resolves credentials to a staff identity.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// Account is one login: a username, a bcrypt hash and the identity it grants.
type Account struct {
	Username     string
	PasswordHash string
	User         models.User
}

// StaticDirectory is an in-memory Authenticator. Usernames are matched
// case-insensitively.
type StaticDirectory struct {
	accounts map[string]Account
}

// NewStaticDirectory builds a directory from accounts. Usernames must be
// unique ignoring case and every account must carry a valid role.
func NewStaticDirectory(accounts []Account) (*StaticDirectory, error) {
	d := &StaticDirectory{accounts: make(map[string]Account, len(accounts))}
	for _, a := range accounts {
		key := strings.ToLower(strings.TrimSpace(a.Username))
		if key == "" {
			return nil, fmt.Errorf("account for %q has no username", a.User.Name)
		}
		if _, dup := d.accounts[key]; dup {
			return nil, fmt.Errorf("duplicate account %q", a.Username)
		}
		if !a.User.Role.Valid() {
			return nil, fmt.Errorf("account %q has invalid role %q", a.Username, a.User.Role)
		}
		d.accounts[key] = a
	}
	return d, nil
}

// Authenticate implements Authenticator. Unknown users and wrong passwords
// both yield ErrInvalidCredentials.
func (d *StaticDirectory) Authenticate(_ context.Context, username, password string) (*models.User, error) {
	a, ok := d.accounts[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	u := a.User
	return &u, nil
}

// Len returns the number of accounts.
func (d *StaticDirectory) Len() int { return len(d.accounts) }

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// ParseAccounts parses the AUTH_ACCOUNTS format: comma-separated entries of
// username:bcrypt-hash:user-id:display name:ROLE.
func ParseAccounts(s string) ([]Account, error) {
	var accounts []Account
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		fields := strings.Split(entry, ":")
		if len(fields) != 5 {
			return nil, fmt.Errorf("account entry %q: want username:hash:id:name:role", entry)
		}
		role := models.Role(strings.ToUpper(strings.TrimSpace(fields[4])))
		if !role.Valid() {
			return nil, fmt.Errorf("account entry %q: invalid role %q", fields[0], fields[4])
		}
		accounts = append(accounts, Account{
			Username:     strings.TrimSpace(fields[0]),
			PasswordHash: strings.TrimSpace(fields[1]),
			User: models.User{
				ID:   strings.TrimSpace(fields[2]),
				Name: strings.TrimSpace(fields[3]),
				Role: role,
			},
		})
	}
	return accounts, nil
}

// DevPasswords holds the passwords of the built-in development accounts.
// An empty password leaves that account out.
type DevPasswords struct {
	Admin    string
	Cashier  string
	Salesman string
}

// DevAccounts returns one account per role for local use.
func DevAccounts(pw DevPasswords) ([]Account, error) {
	candidates := []struct {
		username string
		password string
		user     models.User
	}{
		{"admin", pw.Admin, models.User{ID: "u1", Name: "System Admin", Role: models.RoleAdmin}},
		{"cashier", pw.Cashier, models.User{ID: "u2", Name: "Front Desk Cashier", Role: models.RoleCashier}},
		{"sales", pw.Salesman, models.User{ID: "u3", Name: "Floor Salesman", Role: models.RoleSalesman}},
	}

	var accounts []Account
	for _, c := range candidates {
		if c.password == "" {
			continue
		}
		hash, err := HashPassword(c.password)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, Account{Username: c.username, PasswordHash: hash, User: c.user})
	}
	return accounts, nil
}
