package cache

import (
	"context"
	"time"
)

// Cache stores serialized calculation results by key.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Close() error
}
