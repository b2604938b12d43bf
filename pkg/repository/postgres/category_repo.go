package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/shop/pkg/category"
)

// CategoryRepository implements category.Repository backed by PostgreSQL (pgx).
type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) (*CategoryRepository, error) {
	r := &CategoryRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *CategoryRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS categories (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL
);
`)
	return err
}

func (r *CategoryRepository) Create(ctx context.Context, c category.Category) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO categories (id, name)
VALUES ($1, $2)
`, c.ID, strings.TrimSpace(c.Name))
	return err
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (category.Category, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, name FROM categories WHERE id = $1
`, id)
	var c category.Category
	if err := row.Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category.Category{}, category.ErrNotFound
		}
		return category.Category{}, err
	}
	return c, nil
}

// ListWithProducts eagerly attaches products to each category in one query.
func (r *CategoryRepository) ListWithProducts(ctx context.Context) ([]category.Category, error) {
	rows, err := r.pool.Query(ctx, `
SELECT c.id, c.name,
	COALESCE(
		json_agg(json_build_object(
			'id', p.id, 'name', p.name, 'price', p.price,
			'stock', p.stock, 'categoryId', p.category_id
		) ORDER BY p.name) FILTER (WHERE p.id IS NOT NULL),
		'[]'
	) AS products
FROM categories c
LEFT JOIN products p ON p.category_id = c.id
GROUP BY c.id
ORDER BY c.name
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []category.Category
	for rows.Next() {
		var c category.Category
		var productsJSON []byte
		if err := rows.Scan(&c.ID, &c.Name, &productsJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(productsJSON, &c.Products); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (r *CategoryRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE categories SET name = $2 WHERE id = $1`, id, strings.TrimSpace(name))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return category.ErrNotFound
	}
	return nil
}

// Delete removes the category. The products FK is RESTRICT, so a delete
// while products still reference the category fails with ErrInUse.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return category.ErrInUse
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return category.ErrNotFound
	}
	return nil
}

// Exists implements product.CategoryReader.
func (r *CategoryRepository) Exists(ctx context.Context, id uuid.UUID) error {
	row := r.pool.QueryRow(ctx, `SELECT 1 FROM categories WHERE id = $1`, id)
	var one int
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category.ErrNotFound
		}
		return err
	}
	return nil
}
