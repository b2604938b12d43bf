package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/artem13815/shop/pkg/user"
)

type fakeUserRepo struct {
	byEmail map[string]user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]user.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return user.ErrAlreadyExists
	}
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	var res []user.User
	for _, u := range r.byEmail {
		res = append(res, u)
	}
	return res, nil
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role user.Role) error {
	for k, u := range r.byEmail {
		if u.ID == id {
			u.Role = role
			r.byEmail[k] = u
			return nil
		}
	}
	return user.ErrNotFound
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for k, u := range r.byEmail {
		if u.ID == id {
			delete(r.byEmail, k)
			return nil
		}
	}
	return user.ErrNotFound
}

type staticTokens struct{ token string }

func (t staticTokens) Generate(ctx context.Context, u user.User) (string, error) {
	return t.token, nil
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, staticTokens{token: "tok"})

	res, err := svc.Register(context.Background(), "alice@example.com", "s3cret", "alice", user.RoleCustomer)
	require.NoError(t, err)

	stored := repo.byEmail["alice@example.com"]
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")))
	assert.Equal(t, "tok", res.Token)
	assert.Equal(t, user.RoleCustomer, res.User.Role)
}

func TestRegisterNormalizesEmailAndDefaultsRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, staticTokens{})

	res, err := svc.Register(context.Background(), "  Bob@Example.COM ", "pw", "bob", "")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", res.User.Email)
	assert.Equal(t, user.RoleCustomer, res.User.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, staticTokens{})

	_, err := svc.Register(context.Background(), "alice@example.com", "pw", "alice", user.RoleCustomer)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice@example.com", "other", "alice2", user.RoleCustomer)
	assert.ErrorIs(t, err, user.ErrAlreadyExists)
}

func TestRegisterRejectsEmptyInputAndUnknownRole(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), staticTokens{})

	_, err := svc.Register(context.Background(), "", "pw", "x", user.RoleCustomer)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(context.Background(), "a@b.c", "", "x", user.RoleCustomer)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(context.Background(), "a@b.c", "pw", "x", "SUPERVISOR")
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, staticTokens{token: "tok"})

	_, err := svc.Register(context.Background(), "alice@example.com", "s3cret", "alice", user.RoleAdmin)
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "tok", res.Token)
	assert.Equal(t, user.RoleAdmin, res.User.Role)

	_, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
