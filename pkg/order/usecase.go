package order

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UseCase exposes the order ledger operations.
type UseCase interface {
	Create(ctx context.Context, userID uuid.UUID, items []Item) (Order, error)
	List(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     Repository
	users    UserReader
	products ProductReader
}

// NewService returns default implementation of UseCase.
func NewService(repo Repository, users UserReader, products ProductReader) UseCase {
	return &service{repo: repo, users: users, products: products}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, items []Item) (Order, error) {
	if len(items) == 0 {
		return Order{}, ErrValidation("at least one item is required")
	}
	for _, it := range items {
		if it.ProductID == uuid.Nil {
			return Order{}, ErrValidation("productId is required")
		}
		if it.Quantity < 1 {
			return Order{}, ErrValidation("quantity must be at least 1")
		}
	}
	if err := s.users.Exists(ctx, userID); err != nil {
		return Order{}, err
	}
	for _, it := range items {
		if err := s.products.Exists(ctx, it.ProductID); err != nil {
			return Order{}, err
		}
	}
	o := Order{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    StatusPending,
		Items:     items,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (s *service) List(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (Order, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus overwrites the status with any enum member. Transitions are
// not guarded: any state may move to any state.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (Order, error) {
	if !status.IsValid() {
		return Order{}, ErrInvalidStatus
	}
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return Order{}, err
	}
	o.Status = status
	return o, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ErrValidation is a simple validation error.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
