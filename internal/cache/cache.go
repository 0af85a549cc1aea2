package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"
	"time"
)

// Cache stores ranked match lists.
type Cache interface {
	// GetMatches retrieves a cached ranking by key.
	// Returns nil if not found
	GetMatches(ctx context.Context, key string) (*Entry, error)

	// SetMatches stores a ranking with TTL
	SetMatches(ctx context.Context, key string, entry *Entry, ttl time.Duration) error

	// InvalidateScope removes every cached ranking of a scope
	InvalidateScope(ctx context.Context, scope string) error

	// Close closes the cache connection
	Close() error
}

// Entry is a cached ranking.
type Entry struct {
	Strategy string `json:"strategy"`
	Matches  []byte `json:"matches"` // JSON-encoded projected list
}

// GenerateCacheKey builds a key for a ranking of scope against skills.
// Skill order and letter case do not change scores, so they do not change the key.
func GenerateCacheKey(scope string, skills []string) string {
	norm := make([]string, len(skills))
	for i, s := range skills {
		norm[i] = strings.Join(strings.Fields(strings.ToLower(s)), " ")
	}
	slices.Sort(norm)

	h := sha256.New()
	for _, s := range norm {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	return scope + ":" + hex.EncodeToString(h.Sum(nil))
}
