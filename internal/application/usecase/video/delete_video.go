package video

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/video-hub/internal/application/service"
	"github.com/khoahotran/video-hub/internal/domain/video"
	"github.com/khoahotran/video-hub/pkg/apperror"
	"github.com/khoahotran/video-hub/pkg/logger"
)

type DeleteVideoUseCase struct {
	videoRepo video.Repository
	uploader  service.Uploader
	effects   effects
	logger    logger.Logger
}

func NewDeleteVideoUseCase(r video.Repository, u service.Uploader, p service.EventPublisher, c service.ListingCache, log logger.Logger) *DeleteVideoUseCase {
	return &DeleteVideoUseCase{
		videoRepo: r,
		uploader:  u,
		effects:   effects{publisher: p, cache: c, logger: log},
		logger:    log,
	}
}

type DeleteVideoInput struct {
	VideoID uuid.UUID
	UserID  uuid.UUID
}

// Execute removes both remote assets before the document. A media store
// failure leaves the document in place so the delete can be retried.
func (uc *DeleteVideoUseCase) Execute(ctx context.Context, input DeleteVideoInput) error {
	ctx, span := tracer.Start(ctx, "DeleteVideo")
	defer span.End()
	span.SetAttributes(attribute.String("video_id", input.VideoID.String()))

	existing, err := uc.videoRepo.FindByID(ctx, input.VideoID)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if !existing.IsOwnedBy(input.UserID) {
		err := apperror.NewPermissionDenied("only the owner can delete this video")
		span.RecordError(err)
		return err
	}

	if existing.VideoID != "" {
		if err := uc.uploader.Delete(ctx, existing.VideoID, service.ResourceVideo); err != nil {
			span.RecordError(err)
			return apperror.NewInternal("failed to delete video asset", err)
		}
	}
	if existing.ThumbnailID != "" {
		if err := uc.uploader.Delete(ctx, existing.ThumbnailID, service.ResourceImage); err != nil {
			span.RecordError(err)
			return apperror.NewInternal("failed to delete thumbnail asset", err)
		}
	}

	if err := uc.videoRepo.Delete(ctx, existing.ID); err != nil {
		span.RecordError(err)
		return err
	}

	uc.effects.afterWrite(ctx, video.Event{EventType: video.EventDeleted, VideoID: existing.ID, UserID: input.UserID})
	uc.logger.Info("Video deleted", zap.String("video_id", existing.ID.String()))
	return nil
}
