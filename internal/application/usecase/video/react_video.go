package video

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/video-hub/internal/application/service"
	"github.com/khoahotran/video-hub/internal/domain/video"
	"github.com/khoahotran/video-hub/pkg/logger"
)

// ReactVideoUseCase handles likes and dislikes. A user id is in at most one of
// likedBy and disLikedBy after either call.
type ReactVideoUseCase struct {
	videoRepo video.Repository
	effects   effects
}

func NewReactVideoUseCase(r video.Repository, p service.EventPublisher, c service.ListingCache, log logger.Logger) *ReactVideoUseCase {
	return &ReactVideoUseCase{
		videoRepo: r,
		effects:   effects{publisher: p, cache: c, logger: log},
	}
}

type ReactVideoInput struct {
	VideoID uuid.UUID
	UserID  uuid.UUID
}

type ReactVideoOutput struct {
	Video *video.Video
}

func (uc *ReactVideoUseCase) Like(ctx context.Context, input ReactVideoInput) (*ReactVideoOutput, error) {
	v, err := uc.videoRepo.Like(ctx, input.VideoID, input.UserID)
	if err != nil {
		return nil, err
	}
	uc.effects.afterWrite(ctx, video.Event{EventType: video.EventLiked, VideoID: v.ID, UserID: input.UserID})
	return &ReactVideoOutput{Video: v}, nil
}

func (uc *ReactVideoUseCase) Dislike(ctx context.Context, input ReactVideoInput) (*ReactVideoOutput, error) {
	v, err := uc.videoRepo.Dislike(ctx, input.VideoID, input.UserID)
	if err != nil {
		return nil, err
	}
	uc.effects.afterWrite(ctx, video.Event{EventType: video.EventDisliked, VideoID: v.ID, UserID: input.UserID})
	return &ReactVideoOutput{Video: v}, nil
}
