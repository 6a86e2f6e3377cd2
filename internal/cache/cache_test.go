package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_SetGet(t *testing.T) {
	c := New[string](time.Minute)
	c.Set("a", "one")

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "one", v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	now := time.Date(2025, 10, 16, 12, 0, 0, 0, time.UTC)
	c := New[int](time.Minute)
	c.now = func() time.Time { return now }

	c.Set("a", 1)
	now = now.Add(59 * time.Second)
	_, ok := c.Get("a")
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_NoTTLNeverExpires(t *testing.T) {
	now := time.Now()
	c := New[int](0)
	c.now = func() time.Time { return now }

	c.Set("a", 1)
	now = now.Add(24 * 365 * time.Hour)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestGenerateKey(t *testing.T) {
	assert.Equal(t, GenerateKey("7", "full", "true"), GenerateKey("7", "full", "true"))
	assert.NotEqual(t, GenerateKey("7", "full"), GenerateKey("7f", "ull"))
	assert.Len(t, GenerateKey("x"), 64)
}
