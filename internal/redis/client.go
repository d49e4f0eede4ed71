// Package redis wraps the go-redis client behind the settings this service
// needs and the generic view cache backing its read models.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config carries the connection settings, read from the environment at
// startup.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Client is the shared connection used by the view cache and the event
// streams.
type Client struct {
	*redis.Client
}

// Open connects with bounded timeouts and verifies the server answers before
// the caller starts serving traffic.
func Open(cfg Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return &Client{Client: rdb}, nil
}

// Healthy reports whether the server currently answers a ping. The health
// endpoint calls it per request with a short deadline.
func (c *Client) Healthy(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.Ping(ctx).Err()
}
