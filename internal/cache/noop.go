package cache

import (
	"context"
	"time"
)

// NoOpCache is a cache implementation that does nothing.
// Used when Redis is not configured or unreachable: every lookup is a miss.
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache instance
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// GetMatches always returns nil (cache miss)
func (c *NoOpCache) GetMatches(ctx context.Context, key string) (*Entry, error) {
	return nil, nil
}

// SetMatches does nothing and always succeeds
func (c *NoOpCache) SetMatches(ctx context.Context, key string, entry *Entry, ttl time.Duration) error {
	return nil
}

// InvalidateScope does nothing and always succeeds
func (c *NoOpCache) InvalidateScope(ctx context.Context, scope string) error {
	return nil
}

// Close does nothing and always succeeds
func (c *NoOpCache) Close() error {
	return nil
}
