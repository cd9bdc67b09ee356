package video

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/video-hub/adapters/persistence"
	"github.com/khoahotran/video-hub/internal/domain/video"
	"github.com/khoahotran/video-hub/pkg/apperror"
	"github.com/khoahotran/video-hub/pkg/logger"
)

func TestGetVideo_RecordsViewOnce(t *testing.T) {
	repo := persistence.NewMemoryVideoRepo()
	v := seedVideo(t, repo, uuid.New(), nil)
	viewer := uuid.New()
	pub := &recordingPublisher{}
	uc := NewGetVideoUseCase(repo, pub, nil, logger.NewNop())

	first, err := uc.Execute(context.Background(), GetVideoInput{VideoID: v.ID, ViewerID: viewer})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{viewer}, first.Video.ViewedBy)

	second, err := uc.Execute(context.Background(), GetVideoInput{VideoID: v.ID, ViewerID: viewer})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{viewer}, second.Video.ViewedBy)

	pub.waitFor(t, 2)
	assert.Equal(t, []video.EventType{video.EventViewed, video.EventViewed}, pub.types())
}

func TestGetVideo_DistinctViewers(t *testing.T) {
	repo := persistence.NewMemoryVideoRepo()
	v := seedVideo(t, repo, uuid.New(), nil)
	uc := NewGetVideoUseCase(repo, nil, nil, logger.NewNop())

	a, b := uuid.New(), uuid.New()
	_, err := uc.Execute(context.Background(), GetVideoInput{VideoID: v.ID, ViewerID: a})
	require.NoError(t, err)
	out, err := uc.Execute(context.Background(), GetVideoInput{VideoID: v.ID, ViewerID: b})
	require.NoError(t, err)

	assert.ElementsMatch(t, []uuid.UUID{a, b}, out.Video.ViewedBy)
}

func TestGetVideo_NotFound(t *testing.T) {
	uc := NewGetVideoUseCase(persistence.NewMemoryVideoRepo(), nil, nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), GetVideoInput{VideoID: uuid.New(), ViewerID: uuid.New()})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
