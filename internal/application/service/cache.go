package service

import (
	"context"

	"github.com/khoahotran/video-hub/internal/domain/video"
)

// ListingCache stores video listings namespaced by a generation counter.
// Callers read the generation before querying the store and write back under
// that same generation, so a listing fetched before a concurrent write is
// never served after it. Invalidate advances the generation.
type ListingCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, generation int64, key string) ([]*video.Video, bool, error)
	Set(ctx context.Context, generation int64, key string, videos []*video.Video) error
	Invalidate(ctx context.Context) error
}
