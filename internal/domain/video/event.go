package video

import "github.com/google/uuid"

type EventType string

const (
	EventPublished         EventType = "video.published"
	EventUpdated           EventType = "video.updated"
	EventThumbnailReplaced EventType = "video.thumbnail_replaced"
	EventDeleted           EventType = "video.deleted"
	EventLiked             EventType = "video.liked"
	EventDisliked          EventType = "video.disliked"
	EventViewed            EventType = "video.viewed"
)

type Event struct {
	EventType   EventType `json:"event_type"`
	VideoID     uuid.UUID `json:"video_id"`
	UserID      uuid.UUID `json:"user_id"`
	ThumbnailID string    `json:"thumbnail_id,omitempty"`
}
