package video

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/khoahotran/video-hub/internal/domain/video"
	"github.com/khoahotran/video-hub/pkg/logger"
)

const feedSize = 20

type FeedUseCase struct {
	listUseCase *ListVideosUseCase
	baseURL     string
	logger      logger.Logger
}

func NewFeedUseCase(list *ListVideosUseCase, baseURL string, log logger.Logger) *FeedUseCase {
	return &FeedUseCase{
		listUseCase: list,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		logger:      log,
	}
}

// Execute builds a feed of the newest videos.
func (uc *FeedUseCase) Execute(ctx context.Context) (*feeds.Feed, error) {
	out, err := uc.listUseCase.Execute(ctx, ListVideosInput{Filter: video.Filter{Limit: feedSize}})
	if err != nil {
		uc.logger.Error("Failed to list videos for feed", err)
		return nil, err
	}

	feed := &feeds.Feed{
		Title:       "Video Hub - latest videos",
		Link:        &feeds.Link{Href: uc.baseURL + "/api/v1/video/all"},
		Description: "Newest uploads.",
		Created:     time.Now().UTC(),
	}

	for _, v := range out.Videos {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          v.ID.String(),
			Title:       v.Title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/api/v1/video/%s", uc.baseURL, v.ID)},
			Description: v.Description,
			Created:     v.CreatedAt,
			Updated:     v.UpdatedAt,
		})
	}

	uc.logger.Info("Video feed generated", zap.Int("item_count", len(feed.Items)))
	return feed, nil
}
