package video

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/video-hub/internal/application/service"
	"github.com/khoahotran/video-hub/internal/domain/video"
	"github.com/khoahotran/video-hub/pkg/apperror"
	"github.com/khoahotran/video-hub/pkg/logger"
)

const ThumbnailFolder = "thumbnail"

type UpdateVideoUseCase struct {
	videoRepo video.Repository
	uploader  service.Uploader
	effects   effects
	logger    logger.Logger
}

func NewUpdateVideoUseCase(r video.Repository, u service.Uploader, p service.EventPublisher, c service.ListingCache, log logger.Logger) *UpdateVideoUseCase {
	return &UpdateVideoUseCase{
		videoRepo: r,
		uploader:  u,
		effects:   effects{publisher: p, cache: c, logger: log},
		logger:    log,
	}
}

type UpdateVideoInput struct {
	VideoID uuid.UUID
	UserID  uuid.UUID
	Edit    video.Edit
	// Thumbnail replaces the current thumbnail when non-nil.
	Thumbnail io.Reader
}

type UpdateVideoOutput struct {
	Video *video.Video
}

func (uc *UpdateVideoUseCase) Execute(ctx context.Context, input UpdateVideoInput) (*UpdateVideoOutput, error) {
	ctx, span := tracer.Start(ctx, "UpdateVideo")
	defer span.End()
	span.SetAttributes(attribute.String("video_id", input.VideoID.String()))

	existing, err := uc.videoRepo.FindByID(ctx, input.VideoID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if !existing.IsOwnedBy(input.UserID) {
		err := apperror.NewPermissionDenied("only the owner can update this video")
		span.RecordError(err)
		return nil, err
	}

	existing.ApplyEdit(input.Edit, time.Now().UTC())
	if err := existing.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("validation failed", err)
	}

	l := uc.logger.With(zap.String("video_id", existing.ID.String()))

	oldThumbnailID := existing.ThumbnailID
	var newAsset *service.Asset
	if input.Thumbnail != nil {
		newAsset, err = uc.uploader.Upload(ctx, input.Thumbnail, ThumbnailFolder, service.ResourceImage)
		if err != nil {
			span.RecordError(err)
			return nil, apperror.NewInternal("failed to upload thumbnail", err)
		}
		existing.ReplaceThumbnail(newAsset.URL, newAsset.PublicID)
	}
	thumbnailReplaced := newAsset != nil

	if err := uc.videoRepo.Update(ctx, existing); err != nil {
		span.RecordError(err)
		if thumbnailReplaced {
			go uc.cleanup(newAsset.PublicID)
		}
		return nil, err
	}

	// The old asset is only dropped once nothing references it.
	if thumbnailReplaced && oldThumbnailID != "" {
		if err := uc.uploader.Delete(ctx, oldThumbnailID, service.ResourceImage); err != nil {
			l.Warn("Failed to delete replaced thumbnail", zap.String("public_id", oldThumbnailID), zap.Error(err))
		}
	}

	events := []video.Event{{EventType: video.EventUpdated, VideoID: existing.ID, UserID: input.UserID}}
	if thumbnailReplaced {
		events = append(events, video.Event{
			EventType:   video.EventThumbnailReplaced,
			VideoID:     existing.ID,
			UserID:      input.UserID,
			ThumbnailID: existing.ThumbnailID,
		})
	}
	uc.effects.afterWrite(ctx, events...)

	l.Info("Video updated", zap.Bool("thumbnail_replaced", thumbnailReplaced))
	return &UpdateVideoOutput{Video: existing}, nil
}

func (uc *UpdateVideoUseCase) cleanup(publicID string) {
	if err := uc.uploader.Delete(context.Background(), publicID, service.ResourceImage); err != nil {
		uc.logger.Error("Failed to roll back uploaded thumbnail", err, zap.String("public_id", publicID))
	}
}
