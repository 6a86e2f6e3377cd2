package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudget_CapsRequests(t *testing.T) {
	b := NewBudget(2)
	require.NoError(t, b.Use("article"))
	require.NoError(t, b.Use("category"))
	assert.Equal(t, 0, b.Remaining())

	err := b.Use("article")
	assert.ErrorIs(t, err, ErrBudgetExhausted)

	stats := b.Stats()
	assert.Equal(t, 2, stats["used"])
	assert.Equal(t, map[string]int{"article": 1, "category": 1}, stats["calls"])

	b.Reset()
	assert.Equal(t, 2, b.Remaining())
	assert.NoError(t, b.Use("article"))
}

func TestBudget_ZeroIsUnlimited(t *testing.T) {
	b := NewBudget(0)
	for i := 0; i < 100; i++ {
		require.NoError(t, b.Use("article"))
	}
	assert.Equal(t, -1, b.Remaining())

	var nilBudget *Budget
	assert.NoError(t, nilBudget.Use("article"))
}

func TestHostLimiter_SpacesSameHost(t *testing.T) {
	h := NewHostLimiter(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, h.Wait(ctx, "https://example.com/a"))
	require.NoError(t, h.Wait(ctx, "https://other.example.org/b"))
	assert.Less(t, time.Since(start), 40*time.Millisecond, "first request per host is immediate")

	require.NoError(t, h.Wait(ctx, "https://example.com/c"))
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestHostLimiter_RejectsHostlessURL(t *testing.T) {
	h := NewHostLimiter(time.Second)
	assert.Error(t, h.Wait(context.Background(), "/relative/path"))
}

func TestHostLimiter_HonoursCancellation(t *testing.T) {
	h := NewHostLimiter(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, h.Wait(ctx, "https://example.com/a"))

	cancel()
	assert.Error(t, h.Wait(ctx, "https://example.com/b"))
}

func TestSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
	assert.NoError(t, Sleep(context.Background(), time.Millisecond))
}
