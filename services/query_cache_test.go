package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueryCacheExpiry(t *testing.T) {
	c := NewQueryCache(time.Minute)
	defer c.Close()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("k", 42)
	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok)

	c.cleanup()
	assert.Equal(t, 0, c.Size())
}

func TestQueryCacheDisabled(t *testing.T) {
	c := NewQueryCache(0)
	defer c.Close()

	c.Set("k", 1)
	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.False(t, c.Enabled())

	var nilCache *QueryCache
	assert.False(t, nilCache.Enabled())
	_, ok = nilCache.Get("k")
	assert.False(t, ok)
}

func TestQueryCacheCloseClears(t *testing.T) {
	c := NewQueryCache(time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	assert.Equal(t, 2, c.Size())

	c.Close()
	assert.Equal(t, 0, c.Size())
	_, ok := c.Get("a")
	assert.False(t, ok)

	// 重复关闭无副作用
	c.Close()
}

func TestGenerateCacheKey(t *testing.T) {
	a := GenerateCacheKey("match_detail", int64(1))
	b := GenerateCacheKey("match_detail", int64(1))
	c := GenerateCacheKey("match_detail", int64(2))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, len("match_detail_")+32)
}
