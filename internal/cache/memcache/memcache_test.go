package memcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCache_GetSet(t *testing.T) {
	c := New(10)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", got)
}

func TestCache_CapacityEvictsLeastRecentlySet(t *testing.T) {
	c := New(2)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", "1", time.Minute))
	require.NoError(t, c.Set(ctx, "b", "2", time.Minute))
	require.NoError(t, c.Set(ctx, "c", "3", time.Minute))

	_, ok, _ := c.Get(ctx, "a")
	require.False(t, ok, "oldest entry must be evicted")
	_, ok, _ = c.Get(ctx, "b")
	require.True(t, ok)
	_, ok, _ = c.Get(ctx, "c")
	require.True(t, ok)
	require.Equal(t, 2, c.Len())
}

func TestCache_OverwriteResetsEvictionOrder(t *testing.T) {
	c := New(2)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", "1", time.Minute))
	require.NoError(t, c.Set(ctx, "b", "2", time.Minute))
	require.NoError(t, c.Set(ctx, "a", "1'", time.Minute))
	require.NoError(t, c.Set(ctx, "c", "3", time.Minute))

	// "b" became the least recently set after "a" was overwritten.
	_, ok, _ := c.Get(ctx, "b")
	require.False(t, ok)
	got, ok, _ := c.Get(ctx, "a")
	require.True(t, ok)
	require.Equal(t, "1'", got)
}

func TestCache_TTLExpiry(t *testing.T) {
	c := New(2)
	ctx := context.Background()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "a", "1", time.Hour))
	now = now.Add(time.Hour + time.Second)

	_, ok, _ := c.Get(ctx, "a")
	require.False(t, ok, "expired entry reads as absent")

	// Re-inserting after expiry is a fresh insert, not a visible overwrite.
	require.NoError(t, c.Set(ctx, "a", "fresh", time.Hour))
	got, ok, _ := c.Get(ctx, "a")
	require.True(t, ok)
	require.Equal(t, "fresh", got)
	require.Equal(t, 1, c.Len())
}

func TestCache_ExpiredEvictedBeforeLive(t *testing.T) {
	c := New(2)
	ctx := context.Background()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "old", "1", time.Second))
	require.NoError(t, c.Set(ctx, "live", "2", time.Hour))
	now = now.Add(2 * time.Second)

	// At capacity the expired entry goes first; the live one survives even
	// though it was not set last.
	require.NoError(t, c.Set(ctx, "new", "3", time.Hour))
	_, ok, _ := c.Get(ctx, "live")
	require.True(t, ok)
	_, ok, _ = c.Get(ctx, "new")
	require.True(t, ok)
}
