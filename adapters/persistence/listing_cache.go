package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/video-hub/internal/application/service"
	"github.com/khoahotran/video-hub/internal/domain/video"
)

const listingGenerationKey = "videos:list:generation"

type redisListingCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisListingCache(rdb *redis.Client, ttl time.Duration) service.ListingCache {
	return &redisListingCache{rdb: rdb, ttl: ttl}
}

func listingKey(generation int64, key string) string {
	return fmt.Sprintf("videos:list:v%d:%s", generation, key)
}

func (c *redisListingCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, listingGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read listing generation: %w", err)
	}
	return gen, nil
}

func (c *redisListingCache) Get(ctx context.Context, generation int64, key string) ([]*video.Video, bool, error) {
	data, err := c.rdb.Get(ctx, listingKey(generation, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cached listing: %w", err)
	}

	var videos []*video.Video
	if err := json.Unmarshal(data, &videos); err != nil {
		return nil, false, fmt.Errorf("decode cached listing: %w", err)
	}
	return videos, true, nil
}

func (c *redisListingCache) Set(ctx context.Context, generation int64, key string, videos []*video.Video) error {
	data, err := json.Marshal(videos)
	if err != nil {
		return fmt.Errorf("encode listing: %w", err)
	}
	if err := c.rdb.Set(ctx, listingKey(generation, key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("write cached listing: %w", err)
	}
	return nil
}

func (c *redisListingCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Incr(ctx, listingGenerationKey).Err(); err != nil {
		return fmt.Errorf("advance listing generation: %w", err)
	}
	return nil
}
