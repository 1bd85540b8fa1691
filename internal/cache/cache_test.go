package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewWithClient(rdb, time.Minute), mr
}

func TestCache_SetAndGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "dashboard:1", payload{Name: "today", Count: 4}))

	var got payload
	hit, err := c.GetJSON(ctx, "dashboard:1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload{Name: "today", Count: 4}, got)
}

func TestCache_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	var got payload
	hit, err := c.GetJSON(context.Background(), "dashboard:99", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCache_Expiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "reports:1", payload{Name: "debts"}))

	mr.FastForward(2 * time.Minute)

	var got payload
	hit, err := c.GetJSON(ctx, "reports:1", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCache_InvalidatePrefix(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "dashboard:1", payload{Count: 1}))
	require.NoError(t, c.SetJSON(ctx, "dashboard:2", payload{Count: 2}))
	require.NoError(t, c.SetJSON(ctx, "reports:1", payload{Count: 3}))

	require.NoError(t, c.InvalidatePrefix(ctx, "dashboard:"))

	var got payload
	hit, err := c.GetJSON(ctx, "dashboard:1", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	hit, err = c.GetJSON(ctx, "dashboard:2", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	// Other prefixes survive.
	hit, err = c.GetJSON(ctx, "reports:1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestCache_DisabledIsNoOp(t *testing.T) {
	c := New("", "", time.Minute)
	ctx := context.Background()

	assert.False(t, c.Enabled())
	require.NoError(t, c.SetJSON(ctx, "dashboard:1", payload{Count: 1}))

	var got payload
	hit, err := c.GetJSON(ctx, "dashboard:1", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.InvalidatePrefix(ctx, "dashboard:"))
}
