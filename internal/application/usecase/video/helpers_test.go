package video

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/video-hub/adapters/persistence"
	"github.com/khoahotran/video-hub/internal/application/service"
	"github.com/khoahotran/video-hub/internal/domain/video"
)

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, file io.Reader, folder string, resource service.ResourceType) (*service.Asset, error) {
	args := m.Called(ctx, file, folder, resource)
	a, _ := args.Get(0).(*service.Asset)
	return a, args.Error(1)
}

func (m *mockUploader) Delete(ctx context.Context, publicID string, resource service.ResourceType) error {
	return m.Called(ctx, publicID, resource).Error(0)
}

func (m *mockUploader) TransformedURL(publicID, transformation string) (string, error) {
	args := m.Called(publicID, transformation)
	return args.String(0), args.Error(1)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []video.Event
}

func (p *recordingPublisher) PublishVideoEvent(_ context.Context, e video.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []video.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]video.EventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType
	}
	return out
}

func (p *recordingPublisher) waitFor(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return len(p.events) >= n
	}, time.Second, 5*time.Millisecond)
}

func newTestCache(t *testing.T) (service.ListingCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return persistence.NewRedisListingCache(rdb, time.Minute), mr
}

func seedVideo(t *testing.T, repo video.Repository, owner uuid.UUID, mutate func(v *video.Video)) *video.Video {
	t.Helper()
	now := time.Now().UTC()
	v := &video.Video{
		ID:           uuid.New(),
		UserID:       owner,
		Title:        "Original title",
		Description:  "Original description",
		Category:     "music",
		Tags:         []string{"live"},
		VideoURL:     "https://res.example.com/videos/v.mp4",
		VideoID:      "videos/v",
		ThumbnailURL: "https://res.example.com/thumbnail/t.jpg",
		ThumbnailID:  "thumbnail/t",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if mutate != nil {
		mutate(v)
	}
	require.NoError(t, repo.Save(context.Background(), v))
	return v
}

// hookedRepo wraps a repository to fail writes or interleave concurrent ones.
type hookedRepo struct {
	video.Repository
	updateErr          error
	beforeSetThumbnail func()
}

func (r *hookedRepo) Update(ctx context.Context, v *video.Video) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	return r.Repository.Update(ctx, v)
}

func (r *hookedRepo) SetThumbnailURL(ctx context.Context, id uuid.UUID, thumbnailID, thumbnailURL string) error {
	if r.beforeSetThumbnail != nil {
		r.beforeSetThumbnail()
	}
	return r.Repository.SetThumbnailURL(ctx, id, thumbnailID, thumbnailURL)
}
