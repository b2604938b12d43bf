package product

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("product not found")

// Product is a catalog item tied to exactly one category.
// Price is in minor currency units.
type Product struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Price      int64     `json:"price"`
	Stock      int       `json:"stock"`
	CategoryID uuid.UUID `json:"categoryId"`
}

// Repository is the persistence port for products.
type Repository interface {
	Create(ctx context.Context, p Product) error
	GetByID(ctx context.Context, id uuid.UUID) (Product, error)
	List(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, p Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryReader is the slice of the category port this package needs:
// existence checks before linking a product to a category.
type CategoryReader interface {
	Exists(ctx context.Context, id uuid.UUID) error
}
