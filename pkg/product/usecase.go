package product

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// UseCase exposes catalog operations over products.
type UseCase interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, p Product) (Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListCache is a read-through cache for the product listing.
type ListCache interface {
	GetProducts(ctx context.Context) ([]Product, bool)
	SetProducts(ctx context.Context, ps []Product)
	InvalidateCatalog(ctx context.Context)
}

type service struct {
	repo       Repository
	categories CategoryReader
	cache      ListCache
}

// NewService returns default implementation of UseCase.
// cache may be nil when no cache is configured.
func NewService(repo Repository, categories CategoryReader, cache ListCache) UseCase {
	return &service{repo: repo, categories: categories, cache: cache}
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	if s.cache != nil {
		if ps, ok := s.cache.GetProducts(ctx); ok {
			return ps, nil
		}
	}
	ps, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetProducts(ctx, ps)
	}
	return ps, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, p Product) (Product, error) {
	if err := s.validate(p); err != nil {
		return Product{}, err
	}
	// The category must exist before linking.
	if err := s.categories.Exists(ctx, p.CategoryID); err != nil {
		return Product{}, err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Product{}, err
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *service) Update(ctx context.Context, p Product) (Product, error) {
	if err := s.validate(p); err != nil {
		return Product{}, err
	}
	if _, err := s.repo.GetByID(ctx, p.ID); err != nil {
		return Product{}, err
	}
	if err := s.categories.Exists(ctx, p.CategoryID); err != nil {
		return Product{}, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return Product{}, err
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) validate(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrValidation("name is required")
	}
	if p.Price < 0 {
		return ErrValidation("price must not be negative")
	}
	if p.Stock < 0 {
		return ErrValidation("stock must not be negative")
	}
	if p.CategoryID == uuid.Nil {
		return ErrValidation("categoryId is required")
	}
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateCatalog(ctx)
	}
}

// ErrValidation is a simple validation error.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
