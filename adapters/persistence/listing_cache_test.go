package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/video-hub/internal/domain/video"
)

func newMiniredisCache(t *testing.T, ttl time.Duration) (*redisListingCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisListingCache(rdb, ttl).(*redisListingCache), mr
}

func TestRedisListingCache_RoundTrip(t *testing.T) {
	cache, _ := newMiniredisCache(t, time.Minute)
	ctx := context.Background()

	gen, err := cache.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	key := video.Filter{Category: "music"}.CacheKey()
	_, hit, err := cache.Get(ctx, gen, key)
	require.NoError(t, err)
	assert.False(t, hit)

	v := newTestVideo(uuid.New(), "music", []string{"live"}, time.Now())
	require.NoError(t, cache.Set(ctx, gen, key, []*video.Video{v}))

	got, hit, err := cache.Get(ctx, gen, key)
	require.NoError(t, err)
	require.True(t, hit)
	require.Len(t, got, 1)
	assert.Equal(t, v.ID, got[0].ID)
	assert.Equal(t, []string{"live"}, got[0].Tags)
}

func TestRedisListingCache_InvalidateAdvancesGeneration(t *testing.T) {
	cache, _ := newMiniredisCache(t, time.Minute)
	ctx := context.Background()
	key := video.Filter{}.CacheKey()

	require.NoError(t, cache.Set(ctx, 0, key, []*video.Video{}))
	require.NoError(t, cache.Invalidate(ctx))

	gen, err := cache.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)

	_, hit, err := cache.Get(ctx, gen, key)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisListingCache_EntriesExpire(t *testing.T) {
	cache, mr := newMiniredisCache(t, 30*time.Second)
	ctx := context.Background()
	key := video.Filter{Tag: "go"}.CacheKey()

	require.NoError(t, cache.Set(ctx, 0, key, []*video.Video{}))
	mr.FastForward(31 * time.Second)

	_, hit, err := cache.Get(ctx, 0, key)
	require.NoError(t, err)
	assert.False(t, hit)
}
