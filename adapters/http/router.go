package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/khoahotran/video-hub/pkg/auth"
	"github.com/khoahotran/video-hub/pkg/logger"
)

type Handlers struct {
	Auth  *AuthHandler
	Video *VideoHandler
	Feed  *FeedHandler
}

func NewRouter(h Handlers, jwtSvc *auth.JWTService, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), MetricsMiddleware(), ErrorMiddleware(log))

	authMiddleware := AuthMiddleware(jwtSvc, log)

	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		api.POST("/auth/login", h.Auth.Login)
		api.GET("/feed.rss", h.Feed.GenerateRSS)

		videos := api.Group("/video")
		{
			videos.GET("/all", h.Video.All)
			videos.GET("/category/:category", h.Video.ByCategory)
			videos.GET("/tags/:tag", h.Video.ByTag)

			private := videos.Group("")
			private.Use(authMiddleware)
			{
				private.POST("/publish", h.Video.Publish)
				private.POST("/upload", h.Video.Update)
				private.DELETE("/delete/:id", h.Video.Delete)
				private.GET("/my-videos", h.Video.MyVideos)
				private.GET("/:id", h.Video.GetByID)
				private.POST("/like", h.Video.Like)
				private.POST("/dislike", h.Video.Dislike)
			}
		}
	}

	return router
}
