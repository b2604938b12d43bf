package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors used by repository/use cases
var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user already exists")
	ErrInvalidRole   = errors.New("invalid role")
)

// Repository abstracts persistence concerns from the domain layer.
// Implementations may be in-memory, SQL, NoSQL, etc.
type Repository interface {
	Create(ctx context.Context, u User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	List(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role Role) error
	Delete(ctx context.Context, id uuid.UUID) error
}
