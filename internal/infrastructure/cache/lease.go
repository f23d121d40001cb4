package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// MemoryLease is a process-local lease backed by MemoryStore
type MemoryLease struct {
	store *MemoryStore
	owner string
}

// NewMemoryLease creates a lease over store
func NewMemoryLease(store *MemoryStore) *MemoryLease {
	return &MemoryLease{store: store, owner: uuid.NewString()}
}

// Acquire takes key for ttl if nobody holds it
func (l *MemoryLease) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	return l.store.SetNX(key, l.owner, ttl), nil
}

// Release drops key if this lease holds it
func (l *MemoryLease) Release(_ context.Context, key string) error {
	l.store.CompareAndDelete(key, l.owner)
	return nil
}

// releaseScript deletes the key only when it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLease is a lease shared by every process using the same Redis
type RedisLease struct {
	client *redis.Client
	owner  string
}

// NewRedisLease creates a lease over client
func NewRedisLease(client *redis.Client) *RedisLease {
	return &RedisLease{client: client, owner: uuid.NewString()}
}

// Acquire takes key for ttl if nobody holds it
func (l *RedisLease) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, key, l.owner, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx %s: %w", key, err)
	}
	return ok, nil
}

// Release drops key if this lease holds it
func (l *RedisLease) Release(ctx context.Context, key string) error {
	if err := releaseScript.Run(ctx, l.client, []string{key}, l.owner).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("redis release %s: %w", key, err)
	}
	return nil
}
