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

const VideoFolder = "videos"

type PublishVideoUseCase struct {
	videoRepo video.Repository
	uploader  service.Uploader
	effects   effects
	logger    logger.Logger
}

func NewPublishVideoUseCase(r video.Repository, u service.Uploader, p service.EventPublisher, c service.ListingCache, log logger.Logger) *PublishVideoUseCase {
	return &PublishVideoUseCase{
		videoRepo: r,
		uploader:  u,
		effects:   effects{publisher: p, cache: c, logger: log},
		logger:    log,
	}
}

type PublishVideoInput struct {
	UserID      uuid.UUID
	Title       string
	Description string
	Category    string
	Tags        string
	Video       io.Reader
	Thumbnail   io.Reader
}

type PublishVideoOutput struct {
	Video *video.Video
}

func (uc *PublishVideoUseCase) Execute(ctx context.Context, input PublishVideoInput) (*PublishVideoOutput, error) {
	ctx, span := tracer.Start(ctx, "PublishVideo")
	defer span.End()

	now := time.Now().UTC()
	newVideo := &video.Video{
		ID:          uuid.New(),
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Tags:        video.ParseTags(input.Tags),
		LikedBy:     []uuid.UUID{},
		DislikedBy:  []uuid.UUID{},
		ViewedBy:    []uuid.UUID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	span.SetAttributes(attribute.String("video_id", newVideo.ID.String()))

	if err := newVideo.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("validation failed", err)
	}

	videoAsset, err := uc.uploader.Upload(ctx, input.Video, VideoFolder, service.ResourceVideo)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to upload video", err)
	}

	thumbAsset, err := uc.uploader.Upload(ctx, input.Thumbnail, ThumbnailFolder, service.ResourceImage)
	if err != nil {
		span.RecordError(err)
		go uc.cleanup(videoAsset.PublicID, service.ResourceVideo)
		return nil, apperror.NewInternal("failed to upload thumbnail", err)
	}

	newVideo.VideoURL = videoAsset.URL
	newVideo.VideoID = videoAsset.PublicID
	newVideo.ReplaceThumbnail(thumbAsset.URL, thumbAsset.PublicID)

	if err := uc.videoRepo.Save(ctx, newVideo); err != nil {
		span.RecordError(err)
		go func() {
			uc.cleanup(videoAsset.PublicID, service.ResourceVideo)
			uc.cleanup(thumbAsset.PublicID, service.ResourceImage)
		}()
		return nil, err
	}

	uc.effects.afterWrite(ctx, video.Event{
		EventType:   video.EventPublished,
		VideoID:     newVideo.ID,
		UserID:      input.UserID,
		ThumbnailID: newVideo.ThumbnailID,
	})

	uc.logger.Info("Video published", zap.String("video_id", newVideo.ID.String()), zap.String("user_id", input.UserID.String()))
	return &PublishVideoOutput{Video: newVideo}, nil
}

func (uc *PublishVideoUseCase) cleanup(publicID string, resource service.ResourceType) {
	if err := uc.uploader.Delete(context.Background(), publicID, resource); err != nil {
		uc.logger.Error("Failed to roll back uploaded asset", err, zap.String("public_id", publicID))
	}
}
