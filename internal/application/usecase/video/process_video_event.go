package video

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/khoahotran/video-hub/internal/application/service"
	"github.com/khoahotran/video-hub/internal/domain/video"
	"github.com/khoahotran/video-hub/pkg/apperror"
	"github.com/khoahotran/video-hub/pkg/logger"
)

// ThumbnailTransformation is the delivery size stored for every thumbnail.
const ThumbnailTransformation = "c_fill,g_auto,w_640,h_360"

type ProcessVideoEventUseCase struct {
	videoRepo video.Repository
	uploader  service.Uploader
	cache     service.ListingCache
	logger    logger.Logger
}

func NewProcessVideoEventUseCase(r video.Repository, u service.Uploader, c service.ListingCache, log logger.Logger) *ProcessVideoEventUseCase {
	return &ProcessVideoEventUseCase{videoRepo: r, uploader: u, cache: c, logger: log}
}

// Execute derives the sized thumbnail URL for published videos and replaced
// thumbnails. Other event types and vanished videos are skipped.
func (uc *ProcessVideoEventUseCase) Execute(ctx context.Context, e video.Event) error {
	l := uc.logger.With(zap.String("video_id", e.VideoID.String()), zap.String("event_type", string(e.EventType)))

	switch e.EventType {
	case video.EventPublished, video.EventThumbnailReplaced:
	default:
		l.Info("No processing for event type, skipping")
		return nil
	}

	v, err := uc.videoRepo.FindByID(ctx, e.VideoID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			l.Warn("Video not found, skipping event")
			return nil
		}
		return apperror.NewInternal("failed to get video", err)
	}

	// A later replacement may already be stored; only the current asset matters.
	if e.ThumbnailID == "" || v.ThumbnailID != e.ThumbnailID {
		l.Info("Thumbnail changed since event, skipping", zap.String("current", v.ThumbnailID))
		return nil
	}

	sizedURL, err := uc.uploader.TransformedURL(v.ThumbnailID, ThumbnailTransformation)
	if err != nil {
		return apperror.NewInternal("failed to build thumbnail URL", err)
	}
	if sizedURL == v.ThumbnailURL {
		l.Info("Thumbnail already processed, skipping")
		return nil
	}

	// Writes the URL alone, guarded on the asset id.
	if err := uc.videoRepo.SetThumbnailURL(ctx, v.ID, e.ThumbnailID, sizedURL); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			l.Info("Video or thumbnail changed while processing, skipping")
			return nil
		}
		return apperror.NewInternal("failed to store sized thumbnail", err)
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			l.Warn("Failed to invalidate video listing cache", zap.Error(err))
		}
	}

	l.Info("Thumbnail processed", zap.String("thumbnail_url", sizedURL))
	return nil
}
