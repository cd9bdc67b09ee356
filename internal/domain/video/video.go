package video

import (
	"context"
	"errors"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Video struct {
	ID           uuid.UUID   `json:"id"`
	UserID       uuid.UUID   `json:"user_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Category     string      `json:"category"`
	Tags         []string    `json:"tags"`
	VideoURL     string      `json:"video_url"`
	VideoID      string      `json:"video_public_id"`
	ThumbnailURL string      `json:"thumbnail_url"`
	ThumbnailID  string      `json:"thumbnail_id"`
	LikedBy      []uuid.UUID `json:"liked_by"`
	DislikedBy   []uuid.UUID `json:"disliked_by"`
	ViewedBy     []uuid.UUID `json:"viewed_by"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

var ErrEmptyTitle = errors.New("title is required")

// IsOwnedBy reports whether userID created the video.
func (v *Video) IsOwnedBy(userID uuid.UUID) bool {
	return v.UserID == userID
}

func (v *Video) Validate() error {
	if strings.TrimSpace(v.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// Edit holds owner-supplied field changes. Empty values keep the current field.
type Edit struct {
	Title       string
	Description string
	Category    string
	Tags        string
}

func (v *Video) ApplyEdit(e Edit, now time.Time) {
	if e.Title != "" {
		v.Title = e.Title
	}
	if e.Description != "" {
		v.Description = e.Description
	}
	if e.Category != "" {
		v.Category = e.Category
	}
	if e.Tags != "" {
		v.Tags = ParseTags(e.Tags)
	}
	v.UpdatedAt = now
}

func (v *Video) ReplaceThumbnail(url, assetID string) {
	v.ThumbnailURL = url
	v.ThumbnailID = assetID
}

// ParseTags splits a comma separated list into a trimmed, de-duplicated tag set.
func ParseTags(raw string) []string {
	tags := make([]string, 0)
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t == "" || slices.Contains(tags, t) {
			continue
		}
		tags = append(tags, t)
	}
	return tags
}

// Filter narrows a listing. Zero fields are ignored.
type Filter struct {
	UserID   uuid.UUID
	Category string
	Tag      string
	Limit    int
}

// CacheKey identifies the listing in the cache namespace.
func (f Filter) CacheKey() string {
	var b strings.Builder
	b.WriteString("all")
	if f.UserID != uuid.Nil {
		b.WriteString(":user=" + f.UserID.String())
	}
	if f.Category != "" {
		b.WriteString(":category=" + url.QueryEscape(f.Category))
	}
	if f.Tag != "" {
		b.WriteString(":tag=" + url.QueryEscape(f.Tag))
	}
	if f.Limit > 0 {
		b.WriteString(":limit=" + strconv.Itoa(f.Limit))
	}
	return b.String()
}

type Repository interface {
	Save(ctx context.Context, v *Video) error
	// Update persists the editable fields: title, description, category, tags and thumbnail.
	Update(ctx context.Context, v *Video) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Video, error)
	// List returns matching videos ordered by creation time, newest first.
	List(ctx context.Context, f Filter) ([]*Video, error)

	// The reaction methods are single atomic writes returning the updated video.
	AddView(ctx context.Context, id, userID uuid.UUID) (*Video, error)
	Like(ctx context.Context, id, userID uuid.UUID) (*Video, error)
	Dislike(ctx context.Context, id, userID uuid.UUID) (*Video, error)

	// SetThumbnailURL rewrites only thumbnail_url and updated_at, and only while the
	// stored thumbnail asset is still thumbnailID. Otherwise it returns not found.
	SetThumbnailURL(ctx context.Context, id uuid.UUID, thumbnailID, thumbnailURL string) error
}
