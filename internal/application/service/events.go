package service

import (
	"context"

	"github.com/khoahotran/video-hub/internal/domain/video"
)

type EventPublisher interface {
	PublishVideoEvent(ctx context.Context, e video.Event) error
}
