package video

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/video-hub/internal/application/service"
	"github.com/khoahotran/video-hub/internal/domain/video"
	"github.com/khoahotran/video-hub/pkg/logger"
)

type GetVideoUseCase struct {
	videoRepo video.Repository
	effects   effects
}

func NewGetVideoUseCase(r video.Repository, p service.EventPublisher, c service.ListingCache, log logger.Logger) *GetVideoUseCase {
	return &GetVideoUseCase{
		videoRepo: r,
		effects:   effects{publisher: p, cache: c, logger: log},
	}
}

type GetVideoInput struct {
	VideoID  uuid.UUID
	ViewerID uuid.UUID
}

type GetVideoOutput struct {
	Video *video.Video
}

// Execute returns the video after recording the viewer. Repeated views by the
// same user leave a single viewedBy entry.
func (uc *GetVideoUseCase) Execute(ctx context.Context, input GetVideoInput) (*GetVideoOutput, error) {
	v, err := uc.videoRepo.AddView(ctx, input.VideoID, input.ViewerID)
	if err != nil {
		return nil, err
	}

	uc.effects.afterWrite(ctx, video.Event{
		EventType: video.EventViewed,
		VideoID:   v.ID,
		UserID:    input.ViewerID,
	})
	return &GetVideoOutput{Video: v}, nil
}
