package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/artem13815/shop/pkg/product"
)

const (
	productsKey = "catalog:products"
	defaultTTL  = 5 * time.Minute
)

// Client is a thin redis wrapper used as a read-through cache for
// catalog listings. All methods are best-effort: a cache failure
// never fails the request.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewClient(addr string) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Client{rdb: rdb, ttl: defaultTTL}, nil
}

// GetProducts implements product.ListCache.
func (c *Client) GetProducts(ctx context.Context) ([]product.Product, bool) {
	data, err := c.rdb.Get(ctx, productsKey).Bytes()
	if err != nil {
		return nil, false
	}
	var ps []product.Product
	if err := json.Unmarshal(data, &ps); err != nil {
		return nil, false
	}
	return ps, true
}

func (c *Client) SetProducts(ctx context.Context, ps []product.Product) {
	data, err := json.Marshal(ps)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, productsKey, data, c.ttl).Err()
}

// InvalidateCatalog implements product.ListCache and category.Invalidator.
func (c *Client) InvalidateCatalog(ctx context.Context) {
	_ = c.rdb.Del(ctx, productsKey).Err()
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
