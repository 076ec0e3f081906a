package domain

import "strings"

// Role is a back-office permission level
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager
}

// User is a back-office account. Password holds a bcrypt hash for accounts
// created by this service and plaintext for legacy hosted-store records.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role"`
}

func (u *User) GetID() string   { return u.ID }
func (u *User) SetID(id string) { u.ID = id }

// Public returns a copy without the password
func (u User) Public() User {
	u.Password = ""
	return u
}

// NormalizeEmail lowercases and trims an email for lookups
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
