package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetSet(t *testing.T) {
	t.Parallel()

	c := New[string, []byte](Config{MaxSize: 4})

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("hello", []byte("<html>"))
	v, ok := c.Get("hello")
	assert.True(t, ok)
	assert.Equal(t, []byte("<html>"), v)
	assert.Equal(t, 1, c.Len())
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	c := New[string, int](Config{MaxSize: 3})
	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}

	// Touch k0 so k1 becomes the eviction candidate.
	_, ok := c.Get("k0")
	assert.True(t, ok)

	c.Set("k3", 3)

	_, ok = c.Get("k1")
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = c.Get("k0")
	assert.True(t, ok)
	assert.Equal(t, 3, c.Len())
}

func TestTTLExpiry(t *testing.T) {
	t.Parallel()

	c := New[string, int](Config{MaxSize: 4, TTL: 30 * time.Millisecond})
	c.Set("k", 1)

	_, ok := c.Get("k")
	assert.True(t, ok)

	time.Sleep(50 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok, "expired entry should be dropped on Get")
	assert.Equal(t, 0, c.Len())
}

func TestClear(t *testing.T) {
	t.Parallel()

	c := New[string, int](Config{MaxSize: 4})
	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}
