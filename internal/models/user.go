package models

import "database/sql"

// Role represents the access level of a user account
type Role string

const (
	RoleAdmin Role = "admin"
	RoleHR    Role = "humanr"
)

// IsValid reports whether the role is one the system recognizes.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleHR
}

// User represents a login account. Accounts are created and removed by
// administrators only; there is no self-registration.
type User struct {
	Username   string         `json:"username" db:"Username"`
	Password   string         `json:"-" db:"Password"` // bcrypt hash
	UserType   Role           `json:"user_type" db:"UserType"`
	EmployeeID sql.NullString `json:"employee_id" db:"EmployeeID"`
}

// RequestUser is the identity resolved by the authorization gate and carried
// through the request context. The role is re-derived from the store on every
// gated request, so a role change takes effect on the user's next request.
type RequestUser struct {
	Username string
	Role     Role
}
