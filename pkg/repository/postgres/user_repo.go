package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/shop/pkg/user"
)

// UserRepository implements user.Repository backed by PostgreSQL (pgx).
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) (*UserRepository, error) {
	repo := &UserRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *UserRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			user_name TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'CUSTOMER',
			created_at TIMESTAMPTZ NOT NULL
		);
	`)
	return err
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, user_name, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, u.ID, strings.ToLower(u.Email), u.UserName, u.PasswordHash, u.Role, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return user.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, user_name, password_hash, role, created_at
		FROM users WHERE email = $1
	`, strings.ToLower(email))
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, user_name, password_hash, role, created_at
		FROM users WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, user_name, password_hash, role, created_at
		FROM users ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role user.Role) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE users SET role = $2 WHERE id = $1`, id, role)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}

// Exists implements order.UserReader.
func (r *UserRepository) Exists(ctx context.Context, id uuid.UUID) error {
	row := r.pool.QueryRow(ctx, `SELECT 1 FROM users WHERE id = $1`, id)
	var one int
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrNotFound
		}
		return err
	}
	return nil
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	var createdAt time.Time
	if err := row.Scan(&u.ID, &u.Email, &u.UserName, &u.PasswordHash, &u.Role, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.CreatedAt = createdAt.UTC()
	return u, nil
}
