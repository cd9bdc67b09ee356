package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/video-hub/internal/domain/video"
	"github.com/khoahotran/video-hub/pkg/apperror"
)

// videoRepoContract holds the behaviour every video.Repository backend must share.
// Backend suites embed it and set repo and newOwner in SetupSuite.
type videoRepoContract struct {
	suite.Suite
	repo     video.Repository
	newOwner func() uuid.UUID
}

func newTestVideo(owner uuid.UUID, category string, tags []string, createdAt time.Time) *video.Video {
	createdAt = createdAt.UTC().Truncate(time.Millisecond)
	return &video.Video{
		ID:           uuid.New(),
		UserID:       owner,
		Title:        "Title " + category,
		Description:  "desc",
		Category:     category,
		Tags:         tags,
		VideoURL:     "https://res.example.com/videos/v.mp4",
		VideoID:      "videos/v",
		ThumbnailURL: "https://res.example.com/thumbnail/t.jpg",
		ThumbnailID:  "thumbnail/t",
		LikedBy:      []uuid.UUID{},
		DislikedBy:   []uuid.UUID{},
		ViewedBy:     []uuid.UUID{},
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func (s *videoRepoContract) save(v *video.Video) *video.Video {
	s.Require().NoError(s.repo.Save(context.Background(), v))
	return v
}

func (s *videoRepoContract) Test_Save_And_FindByID() {
	ctx := context.Background()
	v := s.save(newTestVideo(s.newOwner(), "music", []string{"live", "jazz"}, time.Now()))

	found, err := s.repo.FindByID(ctx, v.ID)
	s.Require().NoError(err)
	s.Equal(v.UserID, found.UserID)
	s.Equal(v.Title, found.Title)
	s.Equal([]string{"live", "jazz"}, found.Tags)
	s.Equal("thumbnail/t", found.ThumbnailID)
	s.True(v.CreatedAt.Equal(found.CreatedAt))
	s.Empty(found.ViewedBy)

	_, err = s.repo.FindByID(ctx, uuid.New())
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *videoRepoContract) Test_Update() {
	ctx := context.Background()
	v := s.save(newTestVideo(s.newOwner(), "music", []string{"live"}, time.Now()))

	v.Title = "Updated"
	v.Tags = []string{"studio"}
	v.ReplaceThumbnail("https://res.example.com/thumbnail/n.jpg", "thumbnail/n")
	v.UpdatedAt = v.UpdatedAt.Add(time.Minute)
	s.Require().NoError(s.repo.Update(ctx, v))

	found, err := s.repo.FindByID(ctx, v.ID)
	s.Require().NoError(err)
	s.Equal("Updated", found.Title)
	s.Equal([]string{"studio"}, found.Tags)
	s.Equal("thumbnail/n", found.ThumbnailID)

	missing := newTestVideo(s.newOwner(), "music", nil, time.Now())
	s.ErrorIs(s.repo.Update(ctx, missing), apperror.ErrNotFound)
}

func (s *videoRepoContract) Test_Delete() {
	ctx := context.Background()
	v := s.save(newTestVideo(s.newOwner(), "music", nil, time.Now()))

	s.Require().NoError(s.repo.Delete(ctx, v.ID))
	_, err := s.repo.FindByID(ctx, v.ID)
	s.ErrorIs(err, apperror.ErrNotFound)

	s.ErrorIs(s.repo.Delete(ctx, v.ID), apperror.ErrNotFound)
}

func (s *videoRepoContract) Test_List_NewestFirst() {
	ctx := context.Background()
	owner := s.newOwner()
	category := "cat-" + uuid.NewString()
	tag := "tag-" + uuid.NewString()
	base := time.Now().Add(-time.Hour)

	oldest := s.save(newTestVideo(owner, category, []string{tag}, base))
	middle := s.save(newTestVideo(s.newOwner(), category, nil, base.Add(time.Minute)))
	newest := s.save(newTestVideo(owner, category, []string{tag, "other"}, base.Add(2*time.Minute)))

	byCategory, err := s.repo.List(ctx, video.Filter{Category: category})
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{newest.ID, middle.ID, oldest.ID}, videoIDs(byCategory))

	byTag, err := s.repo.List(ctx, video.Filter{Tag: tag})
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{newest.ID, oldest.ID}, videoIDs(byTag))

	byOwner, err := s.repo.List(ctx, video.Filter{UserID: owner, Category: category})
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{newest.ID, oldest.ID}, videoIDs(byOwner))

	limited, err := s.repo.List(ctx, video.Filter{Category: category, Limit: 1})
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{newest.ID}, videoIDs(limited))

	empty, err := s.repo.List(ctx, video.Filter{Category: "none-" + uuid.NewString()})
	s.Require().NoError(err)
	s.NotNil(empty)
	s.Empty(empty)
}

func (s *videoRepoContract) Test_AddView_IsIdempotent() {
	ctx := context.Background()
	v := s.save(newTestVideo(s.newOwner(), "music", nil, time.Now()))
	viewer := uuid.New()

	_, err := s.repo.AddView(ctx, v.ID, viewer)
	s.Require().NoError(err)
	updated, err := s.repo.AddView(ctx, v.ID, viewer)
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{viewer}, updated.ViewedBy)

	_, err = s.repo.AddView(ctx, uuid.New(), viewer)
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *videoRepoContract) Test_LikeDislike_AreExclusive() {
	ctx := context.Background()
	v := s.save(newTestVideo(s.newOwner(), "music", nil, time.Now()))
	a, b := uuid.New(), uuid.New()

	_, err := s.repo.Dislike(ctx, v.ID, a)
	s.Require().NoError(err)
	_, err = s.repo.Like(ctx, v.ID, b)
	s.Require().NoError(err)

	updated, err := s.repo.Like(ctx, v.ID, a)
	s.Require().NoError(err)
	s.ElementsMatch([]uuid.UUID{a, b}, updated.LikedBy)
	s.Empty(updated.DislikedBy)

	updated, err = s.repo.Dislike(ctx, v.ID, b)
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{a}, updated.LikedBy)
	s.Equal([]uuid.UUID{b}, updated.DislikedBy)

	_, err = s.repo.Like(ctx, uuid.New(), a)
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *videoRepoContract) Test_SetThumbnailURL_GuardsOnAsset() {
	ctx := context.Background()
	v := s.save(newTestVideo(s.newOwner(), "music", []string{"live"}, time.Now()))

	edited := *v
	edited.Title = "Edited"
	s.Require().NoError(s.repo.Update(ctx, &edited))

	sized := "https://res.example.com/image/upload/w_640/thumbnail/t"
	s.Require().NoError(s.repo.SetThumbnailURL(ctx, v.ID, "thumbnail/t", sized))

	found, err := s.repo.FindByID(ctx, v.ID)
	s.Require().NoError(err)
	s.Equal(sized, found.ThumbnailURL)
	s.Equal("Edited", found.Title)
	s.Equal("thumbnail/t", found.ThumbnailID)

	err = s.repo.SetThumbnailURL(ctx, v.ID, "thumbnail/old", "https://res.example.com/stale.jpg")
	s.ErrorIs(err, apperror.ErrNotFound)
	found, err = s.repo.FindByID(ctx, v.ID)
	s.Require().NoError(err)
	s.Equal(sized, found.ThumbnailURL)

	s.ErrorIs(s.repo.SetThumbnailURL(ctx, uuid.New(), "thumbnail/t", sized), apperror.ErrNotFound)
}

func videoIDs(videos []*video.Video) []uuid.UUID {
	out := make([]uuid.UUID, len(videos))
	for i, v := range videos {
		out[i] = v.ID
	}
	return out
}
