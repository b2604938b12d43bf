package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/shop/pkg/order"
)

// OrderRepository implements order.Repository backed by PostgreSQL (pgx).
type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) (*OrderRepository, error) {
	r := &OrderRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *OrderRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS orders (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS order_items (
	order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	product_id UUID NOT NULL REFERENCES products(id),
	quantity INT NOT NULL CHECK (quantity >= 1),
	PRIMARY KEY (order_id, product_id)
);
CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id);
`)
	return err
}

// Create persists the order and its items in one transaction.
func (r *OrderRepository) Create(ctx context.Context, o order.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
INSERT INTO orders (id, user_id, status, created_at)
VALUES ($1, $2, $3, $4)
`, o.ID, o.UserID, o.Status, o.CreatedAt)
	if err != nil {
		return err
	}
	for _, it := range o.Items {
		_, err = tx.Exec(ctx, `
INSERT INTO order_items (order_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (order_id, product_id) DO UPDATE SET quantity = order_items.quantity + EXCLUDED.quantity
`, o.ID, it.ProductID, it.Quantity)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (order.Order, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, user_id, status, created_at FROM orders WHERE id = $1
`, id)
	var o order.Order
	var created time.Time
	if err := row.Scan(&o.ID, &o.UserID, &o.Status, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.Order{}, order.ErrNotFound
		}
		return order.Order{}, err
	}
	o.CreatedAt = created.UTC()
	rows, err := r.pool.Query(ctx, `
SELECT product_id, quantity FROM order_items WHERE order_id = $1
`, id)
	if err != nil {
		return order.Order{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var it order.Item
		if err := rows.Scan(&it.ProductID, &it.Quantity); err != nil {
			return order.Order{}, err
		}
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

func (r *OrderRepository) List(ctx context.Context) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, `
SELECT o.id, o.user_id, o.status, o.created_at,
	COALESCE(
		json_agg(json_build_object('productId', oi.product_id, 'quantity', oi.quantity))
			FILTER (WHERE oi.product_id IS NOT NULL),
		'[]'
	) AS items
FROM orders o
LEFT JOIN order_items oi ON oi.order_id = o.id
GROUP BY o.id
ORDER BY o.created_at DESC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []order.Order
	for rows.Next() {
		var o order.Order
		var created time.Time
		var itemsJSON []byte
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &created, &itemsJSON); err != nil {
			return nil, err
		}
		o.CreatedAt = created.UTC()
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return nil, err
		}
		res = append(res, o)
	}
	return res, rows.Err()
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status order.Status) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

// Delete removes the order; items go with it via ON DELETE CASCADE.
// Stock levels are not compensated.
func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}
