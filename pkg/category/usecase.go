package category

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// UseCase exposes catalog operations over categories.
type UseCase interface {
	List(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, name string) (Category, error)
	Update(ctx context.Context, id uuid.UUID, name string) (Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Invalidator drops cached catalog reads after a mutation.
type Invalidator interface {
	InvalidateCatalog(ctx context.Context)
}

type service struct {
	repo  Repository
	cache Invalidator
}

// NewService returns default implementation of UseCase.
// cache may be nil when no cache is configured.
func NewService(repo Repository, cache Invalidator) UseCase {
	return &service{repo: repo, cache: cache}
}

func (s *service) List(ctx context.Context) ([]Category, error) {
	return s.repo.ListWithProducts(ctx)
}

func (s *service) Create(ctx context.Context, name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrValidation("name is required")
	}
	c := Category{ID: uuid.New(), Name: name}
	if err := s.repo.Create(ctx, c); err != nil {
		return Category{}, err
	}
	s.invalidate(ctx)
	return c, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrValidation("name is required")
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Category{}, err
	}
	if err := s.repo.UpdateName(ctx, id, name); err != nil {
		return Category{}, err
	}
	c.Name = name
	s.invalidate(ctx)
	return c, nil
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

func (s *service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateCatalog(ctx)
	}
}

// ErrValidation is a simple validation error.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
