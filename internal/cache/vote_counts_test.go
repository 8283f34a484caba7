package cache

import (
	"context"
	"testing"
	"time"

	"reviewdesk/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), "redis://"+s.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, s
}

func TestVoteCountCacheRoundTrip(t *testing.T) {
	client, s := setupTestRedis(t)
	c := NewVoteCountCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.SetMany(ctx, map[string]domain.VoteCounts{
		"r1": {Like: 2, Useful: 1},
		"r2": {},
	}))
	assert.True(t, s.Exists("votes:counts:r1"))
	assert.Equal(t, time.Minute, s.TTL("votes:counts:r1"))

	got, err := c.GetMany(ctx, []string{"r1", "r2", "r3"})
	require.NoError(t, err)
	assert.Equal(t, domain.VoteCounts{Like: 2, Useful: 1}, got["r1"])
	assert.Equal(t, domain.VoteCounts{}, got["r2"])
	_, cached := got["r3"]
	assert.False(t, cached)

	require.NoError(t, c.Invalidate(ctx, "r1"))
	assert.False(t, s.Exists("votes:counts:r1"))
	require.NoError(t, c.Invalidate(ctx, "never-cached"))
}

func TestVoteCountCacheExpires(t *testing.T) {
	client, s := setupTestRedis(t)
	c := NewVoteCountCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.SetMany(ctx, map[string]domain.VoteCounts{"r1": {Like: 1}}))
	s.FastForward(2 * time.Minute)

	got, err := c.GetMany(ctx, []string{"r1"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestVoteCountCacheIgnoresGarbage(t *testing.T) {
	client, s := setupTestRedis(t)
	c := NewVoteCountCache(client, time.Minute)
	require.NoError(t, s.Set("votes:counts:r1", "not-json"))

	got, err := c.GetMany(context.Background(), []string{"r1"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisHealthCheck(t *testing.T) {
	client, s := setupTestRedis(t)
	assert.NoError(t, client.HealthCheck(context.Background()))

	s.Close()
	assert.Error(t, client.HealthCheck(context.Background()))

	var missing *RedisClient
	assert.Error(t, missing.HealthCheck(context.Background()))
}

func TestVoteCountCacheFillKeepsExistingEntries(t *testing.T) {
	client, _ := setupTestRedis(t)
	c := NewVoteCountCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.SetMany(ctx, map[string]domain.VoteCounts{"r1": {Like: 3}}))
	require.NoError(t, c.FillMany(ctx, map[string]domain.VoteCounts{
		"r1": {Like: 1},
		"r2": {Useful: 2},
	}))

	got, err := c.GetMany(ctx, []string{"r1", "r2"})
	require.NoError(t, err)
	assert.Equal(t, domain.VoteCounts{Like: 3}, got["r1"])
	assert.Equal(t, domain.VoteCounts{Useful: 2}, got["r2"])
}
