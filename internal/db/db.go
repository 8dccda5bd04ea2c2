// Package db defines the key-value storage contract used by the embedding
// cache. The reference corpus itself is never persisted — it arrives
// in-memory with every request.
package db

import (
	"context"
	"time"
)

// Store is a minimal key-value store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close()
}
