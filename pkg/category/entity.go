package category

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/artem13815/shop/pkg/product"
)

var (
	ErrNotFound = errors.New("category not found")
	// ErrInUse is returned when a delete is blocked by referencing products.
	ErrInUse = errors.New("category has products")
)

// Category groups products. Products is populated on list reads only.
type Category struct {
	ID       uuid.UUID         `json:"id"`
	Name     string            `json:"name"`
	Products []product.Product `json:"products"`
}

// Repository is the persistence port for categories.
type Repository interface {
	Create(ctx context.Context, c Category) error
	GetByID(ctx context.Context, id uuid.UUID) (Category, error)
	// ListWithProducts returns all categories with their products attached.
	ListWithProducts(ctx context.Context) ([]Category, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
