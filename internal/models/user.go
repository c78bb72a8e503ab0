package models

import "time"

// Role is a staff role; it decides which areas of the API a session may use.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCashier  Role = "CASHIER"
	RoleSalesman Role = "SALESMAN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCashier || r == RoleSalesman
}

// User is the identity attached to a session.
type User struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
	Role Role   `json:"role" validate:"oneof=ADMIN CASHIER SALESMAN"`
}

// LoginStatus is the outcome of a login attempt.
type LoginStatus string

const (
	LoginStatusSuccess LoginStatus = "SUCCESS"
	LoginStatusFailed  LoginStatus = "FAILED"
)

// MaxLoginEvents is the number of login events kept in the session log.
const MaxLoginEvents = 50

// LoginEvent is one entry of the session log.
type LoginEvent struct {
	ID        string      `json:"id" validate:"required"`
	UserName  string      `json:"userName"`
	Role      Role        `json:"role,omitempty" validate:"omitempty,oneof=ADMIN CASHIER SALESMAN"`
	Timestamp time.Time   `json:"timestamp" validate:"required"`
	Status    LoginStatus `json:"status" validate:"oneof=SUCCESS FAILED"`
}
