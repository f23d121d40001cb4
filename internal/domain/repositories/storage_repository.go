package repositories

import (
	"context"
	"time"
)

// Archive stores raw pipeline artifacts for later inspection
type Archive interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// Lease is a best-effort mutual exclusion held for at most ttl
type Lease interface {
	// Acquire returns false when another holder owns key
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
