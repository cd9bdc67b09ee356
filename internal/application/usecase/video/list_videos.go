package video

import (
	"context"

	"go.uber.org/zap"

	"github.com/khoahotran/video-hub/internal/application/service"
	"github.com/khoahotran/video-hub/internal/domain/video"
	"github.com/khoahotran/video-hub/pkg/logger"
	"github.com/khoahotran/video-hub/pkg/metrics"
)

type ListVideosUseCase struct {
	videoRepo video.Repository
	cache     service.ListingCache
	logger    logger.Logger
}

func NewListVideosUseCase(r video.Repository, c service.ListingCache, log logger.Logger) *ListVideosUseCase {
	return &ListVideosUseCase{videoRepo: r, cache: c, logger: log}
}

type ListVideosInput struct {
	Filter video.Filter
}

type ListVideosOutput struct {
	Videos []*video.Video
}

// Execute lists videos newest first, serving from the listing cache when possible.
func (uc *ListVideosUseCase) Execute(ctx context.Context, input ListVideosInput) (*ListVideosOutput, error) {
	if uc.cache == nil {
		return uc.fromStore(ctx, input.Filter)
	}

	key := input.Filter.CacheKey()
	l := uc.logger.With(zap.String("cache_key", key))

	gen, err := uc.cache.Generation(ctx)
	if err != nil {
		l.Warn("Listing cache unavailable, reading store", zap.Error(err))
		return uc.fromStore(ctx, input.Filter)
	}

	videos, hit, err := uc.cache.Get(ctx, gen, key)
	if err != nil {
		l.Warn("Failed to read listing cache", zap.Error(err))
	}
	if hit {
		metrics.ListingCacheHits.Inc()
		return &ListVideosOutput{Videos: videos}, nil
	}
	metrics.ListingCacheMisses.Inc()

	out, err := uc.fromStore(ctx, input.Filter)
	if err != nil {
		return nil, err
	}
	if err := uc.cache.Set(ctx, gen, key, out.Videos); err != nil {
		l.Warn("Failed to write listing cache", zap.Error(err))
	}
	return out, nil
}

func (uc *ListVideosUseCase) fromStore(ctx context.Context, f video.Filter) (*ListVideosOutput, error) {
	videos, err := uc.videoRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ListVideosOutput{Videos: videos}, nil
}
