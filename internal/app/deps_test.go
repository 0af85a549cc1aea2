package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internship-matcher/internal/cache"
	"internship-matcher/internal/config"
	"internship-matcher/internal/logger"
	"internship-matcher/internal/queue"
	"internship-matcher/internal/store"
)

func TestBuildStore(t *testing.T) {
	log := logger.Discard()

	st, err := buildStore(config.Config{StoreProvider: "memory"}, log)
	require.NoError(t, err)
	assert.IsType(t, &store.MemoryStore{}, st)

	_, err = buildStore(config.Config{StoreProvider: "postgres"}, log)
	assert.ErrorContains(t, err, "DB_URL is required")

	_, err = buildStore(config.Config{StoreProvider: "mongo"}, log)
	assert.ErrorContains(t, err, "invalid STORE_PROVIDER")
}

func TestBuildCache(t *testing.T) {
	log := logger.Discard()

	c, err := buildCache(config.Config{CacheProvider: "none"}, log)
	require.NoError(t, err)
	assert.IsType(t, &cache.NoOpCache{}, c)

	_, err = buildCache(config.Config{CacheProvider: "memcached"}, log)
	assert.Error(t, err)
}

func TestBuildQueue(t *testing.T) {
	log := logger.Discard()

	q, err := buildQueue(config.Config{QueueProvider: "none"}, log)
	require.NoError(t, err)
	assert.Nil(t, q)

	q, err = buildQueue(config.Config{QueueProvider: "local"}, log)
	require.NoError(t, err)
	assert.IsType(t, &queue.Local{}, q)

	_, err = buildQueue(config.Config{QueueProvider: "nats"}, log)
	assert.ErrorContains(t, err, "QUEUE_URL is required")
}

func TestNewDepsDefaultsCache(t *testing.T) {
	deps := NewDeps(config.Config{CacheTTL: 60}, logger.Discard(), store.NewSeededMemory(), nil, nil)

	assert.NotNil(t, deps.Cache)
	assert.NotNil(t, deps.Recommend)
}
