package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/video-hub/internal/domain/video"
)

type VideoDTO struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Tags         []string  `json:"tags"`
	VideoURL     string    `json:"video_url"`
	VideoID      string    `json:"video_public_id"`
	ThumbnailURL string    `json:"thumbnail_url"`
	ThumbnailID  string    `json:"thumbnail_id"`
	LikedBy      []string  `json:"liked_by"`
	DislikedBy   []string  `json:"disliked_by"`
	ViewedBy     []string  `json:"viewed_by"`
	Likes        int       `json:"likes"`
	Dislikes     int       `json:"dislikes"`
	Views        int       `json:"views"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UpdateVideoRequest is bound from the multipart /upload form. The thumbnail
// file part is read separately.
type UpdateVideoRequest struct {
	VideoID     string `form:"video_id" binding:"required,uuid"`
	Title       string `form:"title"`
	Description string `form:"description"`
	Category    string `form:"category"`
	Tags        string `form:"tags"`
}

type PublishVideoRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
	Category    string `form:"category"`
	Tags        string `form:"tags"`
}

type ReactRequest struct {
	VideoID string `json:"video_id" binding:"required,uuid"`
}

type videoIDParam struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type categoryParam struct {
	Category string `uri:"category" binding:"required"`
}

type tagParam struct {
	Tag string `uri:"tag" binding:"required"`
}

func ToVideoDTO(v *video.Video) VideoDTO {
	tags := v.Tags
	if tags == nil {
		tags = []string{}
	}
	likedBy := userIDStrings(v.LikedBy)
	dislikedBy := userIDStrings(v.DislikedBy)
	viewedBy := userIDStrings(v.ViewedBy)

	return VideoDTO{
		ID:           v.ID.String(),
		UserID:       v.UserID.String(),
		Title:        v.Title,
		Description:  v.Description,
		Category:     v.Category,
		Tags:         tags,
		VideoURL:     v.VideoURL,
		VideoID:      v.VideoID,
		ThumbnailURL: v.ThumbnailURL,
		ThumbnailID:  v.ThumbnailID,
		LikedBy:      likedBy,
		DislikedBy:   dislikedBy,
		ViewedBy:     viewedBy,
		Likes:        len(likedBy),
		Dislikes:     len(dislikedBy),
		Views:        len(viewedBy),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func ToVideoDTOs(videos []*video.Video) []VideoDTO {
	dtos := make([]VideoDTO, len(videos))
	for i, v := range videos {
		dtos[i] = ToVideoDTO(v)
	}
	return dtos
}

func userIDStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
