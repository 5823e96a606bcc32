package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUCacheSetGet(t *testing.T) {
	c := NewLRUCache(10, time.Minute)

	c.Set("a", "alpha", 0)
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "alpha", got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestLRUCacheTTLExpiry(t *testing.T) {
	c := NewLRUCache(10, time.Minute)

	c.Set("short", 1, time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get("short")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Size())
}

func TestLRUCacheEviction(t *testing.T) {
	c := NewLRUCache(3, time.Minute)

	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("k%d", i), i, 0)
	}
	// Touch k0 so k1 becomes the eviction candidate.
	_, ok := c.Get("k0")
	require.True(t, ok)

	c.Set("k3", 3, 0)
	assert.Equal(t, 3, c.Size())

	_, ok = c.Get("k1")
	assert.False(t, ok, "least recently used entry must be evicted")
	_, ok = c.Get("k0")
	assert.True(t, ok)
}

func TestLRUCacheInvalidate(t *testing.T) {
	c := NewLRUCache(10, time.Minute)
	c.Set("tool:list:all", 1, 0)
	c.Set("tool:list:cat=image;", 2, 0)
	c.Set("tool:name:gamma", 3, 0)
	c.Set("other", 4, 0)

	t.Run("exact", func(t *testing.T) {
		assert.Equal(t, 1, c.Invalidate("other"))
		_, ok := c.Get("other")
		assert.False(t, ok)
	})

	t.Run("wildcard", func(t *testing.T) {
		assert.Equal(t, 3, c.Invalidate("tool:*"))
		assert.Equal(t, 0, c.Size())
	})
}

func TestLRUCacheCleanupExpired(t *testing.T) {
	c := NewLRUCache(10, time.Minute)
	c.Set("stale", 1, time.Millisecond)
	c.Set("fresh", 2, time.Minute)
	time.Sleep(5 * time.Millisecond)

	assert.Equal(t, 1, c.CleanupExpired())
	assert.Equal(t, 1, c.Size())
}
