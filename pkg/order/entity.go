package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle field of an order.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// IsValid reports whether s is a member of the status enumeration.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

var (
	ErrNotFound      = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
)

// Item is one order line: a product reference with a quantity.
type Item struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// Order belongs to one user and references one or more products.
type Order struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Status    Status    `json:"status"`
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository is the persistence port for orders.
// Create must persist the order and its items atomically.
type Repository interface {
	Create(ctx context.Context, o Order) error
	GetByID(ctx context.Context, id uuid.UUID) (Order, error)
	List(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserReader checks that the ordering user exists.
type UserReader interface {
	Exists(ctx context.Context, id uuid.UUID) error
}

// ProductReader checks that ordered products exist.
type ProductReader interface {
	Exists(ctx context.Context, id uuid.UUID) error
}
