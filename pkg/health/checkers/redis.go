package checkers

import (
	"context"
	"time"
)

// Pinger is satisfied by the cache client.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RedisChecker struct {
	client Pinger
}

func NewRedisChecker(client Pinger) *RedisChecker {
	return &RedisChecker{client: client}
}

func (c *RedisChecker) Name() string { return "redis" }

func (c *RedisChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return c.client.Ping(ctx)
}
