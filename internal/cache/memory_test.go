package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	c, err := NewMemoryCache(2, time.Minute)
	require.NoError(t, err)

	t.Run("Get_Set", func(t *testing.T) {
		c.Set("knowledge:종양간호:basic", "cached")
		v, ok := c.Get("knowledge:종양간호:basic")
		require.True(t, ok)
		assert.Equal(t, "cached", v)

		_, ok = c.Get("missing")
		assert.False(t, ok)
	})

	t.Run("LRU_Eviction", func(t *testing.T) {
		c.Purge()
		c.Set("a", 1)
		c.Set("b", 2)
		c.Set("c", 3)

		assert.Equal(t, 2, c.Len())
		_, ok := c.Get("a")
		assert.False(t, ok)
	})

	t.Run("Delete", func(t *testing.T) {
		c.Set("d", 4)
		c.Delete("d")
		_, ok := c.Get("d")
		assert.False(t, ok)
	})

	t.Run("Expiry", func(t *testing.T) {
		short, err := NewMemoryCache(10, 10*time.Millisecond)
		require.NoError(t, err)

		short.Set("e", 5)
		time.Sleep(30 * time.Millisecond)
		_, ok := short.Get("e")
		assert.False(t, ok)
	})

	t.Run("Invalid_Size", func(t *testing.T) {
		_, err := NewMemoryCache(0, time.Minute)
		assert.Error(t, err)
	})
}
