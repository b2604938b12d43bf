package user

import (
	"context"

	"github.com/google/uuid"
)

// DirectoryUseCase exposes administrative user directory operations.
type DirectoryUseCase interface {
	FindAll(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id uuid.UUID) (User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role Role) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type directoryService struct {
	repo Repository
}

// NewDirectoryService returns default implementation of DirectoryUseCase.
func NewDirectoryService(repo Repository) DirectoryUseCase {
	return &directoryService{repo: repo}
}

func (s *directoryService) FindAll(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *directoryService) FindByID(ctx context.Context, id uuid.UUID) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *directoryService) UpdateRole(ctx context.Context, id uuid.UUID, role Role) (User, error) {
	if !role.IsValid() {
		return User{}, ErrInvalidRole
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return User{}, err
	}
	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return User{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *directoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
