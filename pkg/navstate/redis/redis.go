// Package redis provides a Redis-backed navstate.Backend.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/goliatone/go-hardship/pkg/navstate"
)

// Backend stores snapshots in Redis.
type Backend struct {
	client goredis.UniversalClient
}

var _ navstate.Backend = (*Backend)(nil)

// New wraps an existing client.
func New(client goredis.UniversalClient) *Backend {
	return &Backend{client: client}
}

// Dial connects to addr and verifies the connection with PING.
func Dial(ctx context.Context, addr, password string, db int) (*Backend, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return New(client), nil
}

// Get retrieves key, mapping a miss to navstate.ErrNotFound.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := b.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, navstate.ErrNotFound
	}
	return val, err
}

// Set stores key with an optional expiration.
func (b *Backend) Set(ctx context.Context, key string, val []byte, exp time.Duration) error {
	return b.client.Set(ctx, key, val, exp).Err()
}

// Delete removes key.
func (b *Backend) Delete(ctx context.Context, key string) error {
	return b.client.Del(ctx, key).Err()
}

// Close releases the underlying client.
func (b *Backend) Close() error {
	return b.client.Close()
}
