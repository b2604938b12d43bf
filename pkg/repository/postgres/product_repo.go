package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/shop/pkg/category"
	"github.com/artem13815/shop/pkg/product"
)

// ProductRepository implements product.Repository backed by PostgreSQL (pgx).
type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) (*ProductRepository, error) {
	r := &ProductRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ProductRepository) ensureSchema(ctx context.Context) error {
	// RESTRICT keeps category deletion blocked while products reference it.
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS products (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	price BIGINT NOT NULL CHECK (price >= 0),
	stock INT NOT NULL CHECK (stock >= 0),
	category_id UUID NOT NULL REFERENCES categories(id) ON DELETE RESTRICT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
`)
	return err
}

func (r *ProductRepository) Create(ctx context.Context, p product.Product) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO products (id, name, price, stock, category_id)
VALUES ($1, $2, $3, $4, $5)
`, p.ID, strings.TrimSpace(p.Name), p.Price, p.Stock, p.CategoryID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return category.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (product.Product, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, name, price, stock, category_id FROM products WHERE id = $1
`, id)
	var p product.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CategoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.Product{}, product.ErrNotFound
		}
		return product.Product{}, err
	}
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]product.Product, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, name, price, stock, category_id FROM products ORDER BY name
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []product.Product
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CategoryID); err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p product.Product) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE products SET name = $2, price = $3, stock = $4, category_id = $5 WHERE id = $1
`, p.ID, strings.TrimSpace(p.Name), p.Price, p.Stock, p.CategoryID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return category.ErrNotFound
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}

// Exists implements order.ProductReader.
func (r *ProductRepository) Exists(ctx context.Context, id uuid.UUID) error {
	row := r.pool.QueryRow(ctx, `SELECT 1 FROM products WHERE id = $1`, id)
	var one int
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.ErrNotFound
		}
		return err
	}
	return nil
}
