package user

import (
	"time"

	"github.com/google/uuid"
)

// Role is the permission class attached to a user.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleAdmin:
		return true
	}
	return false
}

// User is a domain entity representing a system user.
// PasswordHash is never serialized outward.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	UserName     string    `json:"userName"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
