package persistence

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/video-hub/internal/domain/user"
	"github.com/khoahotran/video-hub/internal/domain/video"
	"github.com/khoahotran/video-hub/pkg/apperror"
)

// memoryVideoRepo backs db.driver=memory, used for local runs and handler tests.
type memoryVideoRepo struct {
	mu     sync.RWMutex
	videos map[uuid.UUID]*video.Video
}

func NewMemoryVideoRepo() video.Repository {
	return &memoryVideoRepo{videos: make(map[uuid.UUID]*video.Video)}
}

func cloneVideo(v *video.Video) *video.Video {
	c := *v
	c.Tags = slices.Clone(v.Tags)
	c.LikedBy = slices.Clone(v.LikedBy)
	c.DislikedBy = slices.Clone(v.DislikedBy)
	c.ViewedBy = slices.Clone(v.ViewedBy)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	for _, set := range []*[]uuid.UUID{&c.LikedBy, &c.DislikedBy, &c.ViewedBy} {
		if *set == nil {
			*set = []uuid.UUID{}
		}
	}
	return &c
}

func (r *memoryVideoRepo) Save(_ context.Context, v *video.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.videos[v.ID]; exists {
		return apperror.NewConflict("video", "id", v.ID.String())
	}
	r.videos[v.ID] = cloneVideo(v)
	return nil
}

func (r *memoryVideoRepo) Update(_ context.Context, v *video.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.videos[v.ID]
	if !ok {
		return apperror.NewNotFound("video", v.ID.String())
	}
	stored.Title = v.Title
	stored.Description = v.Description
	stored.Category = v.Category
	stored.Tags = slices.Clone(v.Tags)
	stored.ThumbnailURL = v.ThumbnailURL
	stored.ThumbnailID = v.ThumbnailID
	stored.UpdatedAt = v.UpdatedAt
	return nil
}

func (r *memoryVideoRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.videos[id]; !ok {
		return apperror.NewNotFound("video", id.String())
	}
	delete(r.videos, id)
	return nil
}

func (r *memoryVideoRepo) FindByID(_ context.Context, id uuid.UUID) (*video.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.videos[id]
	if !ok {
		return nil, apperror.NewNotFound("video", id.String())
	}
	return cloneVideo(v), nil
}

func (r *memoryVideoRepo) List(_ context.Context, f video.Filter) ([]*video.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	videos := make([]*video.Video, 0)
	for _, v := range r.videos {
		if f.UserID != uuid.Nil && v.UserID != f.UserID {
			continue
		}
		if f.Category != "" && v.Category != f.Category {
			continue
		}
		if f.Tag != "" && !slices.Contains(v.Tags, f.Tag) {
			continue
		}
		videos = append(videos, cloneVideo(v))
	}

	sort.Slice(videos, func(i, j int) bool {
		if videos[i].CreatedAt.Equal(videos[j].CreatedAt) {
			return videos[i].ID.String() > videos[j].ID.String()
		}
		return videos[i].CreatedAt.After(videos[j].CreatedAt)
	})
	if f.Limit > 0 && len(videos) > f.Limit {
		videos = videos[:f.Limit]
	}
	return videos, nil
}

func (r *memoryVideoRepo) AddView(_ context.Context, id, userID uuid.UUID) (*video.Video, error) {
	return r.mutate(id, func(v *video.Video) {
		v.ViewedBy = addToSet(v.ViewedBy, userID)
	})
}

func (r *memoryVideoRepo) Like(_ context.Context, id, userID uuid.UUID) (*video.Video, error) {
	return r.mutate(id, func(v *video.Video) {
		v.LikedBy = addToSet(v.LikedBy, userID)
		v.DislikedBy = pull(v.DislikedBy, userID)
	})
}

func (r *memoryVideoRepo) Dislike(_ context.Context, id, userID uuid.UUID) (*video.Video, error) {
	return r.mutate(id, func(v *video.Video) {
		v.DislikedBy = addToSet(v.DislikedBy, userID)
		v.LikedBy = pull(v.LikedBy, userID)
	})
}

func (r *memoryVideoRepo) SetThumbnailURL(_ context.Context, id uuid.UUID, thumbnailID, thumbnailURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.videos[id]
	if !ok || v.ThumbnailID != thumbnailID {
		return apperror.NewNotFound("video thumbnail", thumbnailID)
	}
	v.ThumbnailURL = thumbnailURL
	v.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memoryVideoRepo) mutate(id uuid.UUID, fn func(v *video.Video)) (*video.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.videos[id]
	if !ok {
		return nil, apperror.NewNotFound("video", id.String())
	}
	fn(v)
	return cloneVideo(v), nil
}

func addToSet(set []uuid.UUID, id uuid.UUID) []uuid.UUID {
	if slices.Contains(set, id) {
		return set
	}
	return append(set, id)
}

func pull(set []uuid.UUID, id uuid.UUID) []uuid.UUID {
	return slices.DeleteFunc(set, func(x uuid.UUID) bool { return x == id })
}

type memoryUserRepo struct {
	mu    sync.RWMutex
	users map[string]user.User
}

func NewMemoryUserRepo() user.Repository {
	return &memoryUserRepo{users: make(map[string]user.User)}
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[email]
	if !ok {
		return nil, apperror.NewNotFound("user", email)
	}
	return &u, nil
}

func (r *memoryUserRepo) Upsert(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.users[u.Email]; ok {
		u.ID = existing.ID
	}
	r.users[u.Email] = *u
	return nil
}
