package video

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/khoahotran/video-hub/internal/application/service"
	"github.com/khoahotran/video-hub/internal/domain/video"
	"github.com/khoahotran/video-hub/pkg/logger"
)

var tracer = otel.Tracer("video_usecase")

// effects runs after a successful write: cached listings are dropped and the
// event is published in the background.
type effects struct {
	publisher service.EventPublisher
	cache     service.ListingCache
	logger    logger.Logger
}

func (e effects) afterWrite(ctx context.Context, events ...video.Event) {
	if e.cache != nil {
		if err := e.cache.Invalidate(context.WithoutCancel(ctx)); err != nil {
			e.logger.Warn("Failed to invalidate video listing cache", zap.Error(err))
		}
	}
	if e.publisher == nil {
		return
	}

	go func() {
		for _, ev := range events {
			if err := e.publisher.PublishVideoEvent(context.Background(), ev); err != nil {
				e.logger.Error("Failed to publish Kafka video event", err,
					zap.String("event_type", string(ev.EventType)),
					zap.String("video_id", ev.VideoID.String()))
			}
		}
	}()
}
