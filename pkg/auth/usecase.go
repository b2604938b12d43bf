package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/artem13815/shop/pkg/user"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Register(ctx context.Context, email, password, userName string, role user.Role) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
}

type AuthResult struct {
	User  user.User
	Token string
}

type authService struct {
	repo   user.Repository
	tokens TokenGenerator
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo user.Repository, tokens TokenGenerator) AuthUseCase {
	return &authService{repo: repo, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, email, password, userName string, role user.Role) (AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return AuthResult{}, ErrInvalidCredentials
	}
	if role == "" {
		role = user.RoleCustomer
	}
	if !role.IsValid() {
		return AuthResult{}, user.ErrInvalidRole
	}

	// If user exists, fail fast (best-effort check; the unique index is the backstop)
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return AuthResult{}, user.ErrAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, err
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		UserName:     userName,
		PasswordHash: string(passwordHash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return AuthResult{}, err
	}
	token, err := s.tokens.Generate(ctx, u)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: u, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	token, err := s.tokens.Generate(ctx, u)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: u, Token: token}, nil
}
