package http

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	videoUC "github.com/khoahotran/video-hub/internal/application/usecase/video"
	"github.com/khoahotran/video-hub/internal/domain/video"
	"github.com/khoahotran/video-hub/pkg/apperror"
)

type VideoHandler struct {
	publishUseCase *videoUC.PublishVideoUseCase
	updateUseCase  *videoUC.UpdateVideoUseCase
	deleteUseCase  *videoUC.DeleteVideoUseCase
	getUseCase     *videoUC.GetVideoUseCase
	listUseCase    *videoUC.ListVideosUseCase
	reactUseCase   *videoUC.ReactVideoUseCase
}

func NewVideoHandler(
	publishUC *videoUC.PublishVideoUseCase,
	updateUC *videoUC.UpdateVideoUseCase,
	deleteUC *videoUC.DeleteVideoUseCase,
	getUC *videoUC.GetVideoUseCase,
	listUC *videoUC.ListVideosUseCase,
	reactUC *videoUC.ReactVideoUseCase,
) *VideoHandler {
	return &VideoHandler{
		publishUseCase: publishUC,
		updateUseCase:  updateUC,
		deleteUseCase:  deleteUC,
		getUseCase:     getUC,
		listUseCase:    listUC,
		reactUseCase:   reactUC,
	}
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthenticated("user information not found"))
		return uuid.Nil, false
	}
	return userID, true
}

// openFormFile returns nil when the part is absent.
func openFormFile(c *gin.Context, field string) (multipart.File, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, apperror.NewInvalidInput("'"+field+"' must be a file", err)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperror.NewInternal("file cannot open", err)
	}
	return file, nil
}

func (h *VideoHandler) Publish(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req PublishVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(apperror.NewInvalidInput(err.Error(), err))
		return
	}

	videoFile, err := openFormFile(c, "video")
	if err != nil {
		c.Error(err)
		return
	}
	if videoFile == nil {
		c.Error(apperror.NewInvalidInput("'video' is required", nil))
		return
	}
	defer videoFile.Close()

	thumbFile, err := openFormFile(c, "thumbnail")
	if err != nil {
		c.Error(err)
		return
	}
	if thumbFile == nil {
		c.Error(apperror.NewInvalidInput("'thumbnail' is required", nil))
		return
	}
	defer thumbFile.Close()

	output, err := h.publishUseCase.Execute(c.Request.Context(), videoUC.PublishVideoInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		Video:       videoFile,
		Thumbnail:   thumbFile,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Video published successfully",
		"video":   ToVideoDTO(output.Video),
	})
}

func (h *VideoHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(apperror.NewInvalidInput(err.Error(), err))
		return
	}
	videoID := uuid.MustParse(req.VideoID)

	thumbFile, err := openFormFile(c, "thumbnail")
	if err != nil {
		c.Error(err)
		return
	}
	var thumbnail io.Reader
	if thumbFile != nil {
		defer thumbFile.Close()
		thumbnail = thumbFile
	}

	output, err := h.updateUseCase.Execute(c.Request.Context(), videoUC.UpdateVideoInput{
		VideoID: videoID,
		UserID:  userID,
		Edit: video.Edit{
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			Tags:        req.Tags,
		},
		Thumbnail: thumbnail,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Video updated successfully",
		"video":   ToVideoDTO(output.Video),
	})
}

func (h *VideoHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var param videoIDParam
	if err := c.ShouldBindUri(&param); err != nil {
		c.Error(apperror.NewInvalidInput("invalid video ID", err))
		return
	}

	err := h.deleteUseCase.Execute(c.Request.Context(), videoUC.DeleteVideoInput{
		VideoID: uuid.MustParse(param.ID),
		UserID:  userID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "video deleted successfully"})
}

func (h *VideoHandler) GetByID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var param videoIDParam
	if err := c.ShouldBindUri(&param); err != nil {
		c.Error(apperror.NewInvalidInput("invalid video ID", err))
		return
	}

	output, err := h.getUseCase.Execute(c.Request.Context(), videoUC.GetVideoInput{
		VideoID:  uuid.MustParse(param.ID),
		ViewerID: userID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToVideoDTO(output.Video))
}

func (h *VideoHandler) All(c *gin.Context) {
	h.list(c, video.Filter{})
}

func (h *VideoHandler) MyVideos(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	h.list(c, video.Filter{UserID: userID})
}

func (h *VideoHandler) ByCategory(c *gin.Context) {
	var param categoryParam
	if err := c.ShouldBindUri(&param); err != nil {
		c.Error(apperror.NewInvalidInput("category is required", err))
		return
	}
	h.list(c, video.Filter{Category: param.Category})
}

func (h *VideoHandler) ByTag(c *gin.Context) {
	var param tagParam
	if err := c.ShouldBindUri(&param); err != nil {
		c.Error(apperror.NewInvalidInput("tag is required", err))
		return
	}
	h.list(c, video.Filter{Tag: param.Tag})
}

func (h *VideoHandler) list(c *gin.Context, f video.Filter) {
	output, err := h.listUseCase.Execute(c.Request.Context(), videoUC.ListVideosInput{Filter: f})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToVideoDTOs(output.Videos))
}

func (h *VideoHandler) Like(c *gin.Context) {
	input, ok := bindReact(c)
	if !ok {
		return
	}

	output, err := h.reactUseCase.Like(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Liked the video",
		"video":   ToVideoDTO(output.Video),
	})
}

func (h *VideoHandler) Dislike(c *gin.Context) {
	input, ok := bindReact(c)
	if !ok {
		return
	}

	output, err := h.reactUseCase.Dislike(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Disliked the video",
		"video":   ToVideoDTO(output.Video),
	})
}

func bindReact(c *gin.Context) (videoUC.ReactVideoInput, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return videoUC.ReactVideoInput{}, false
	}

	var req ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput(err.Error(), err))
		return videoUC.ReactVideoInput{}, false
	}

	return videoUC.ReactVideoInput{
		VideoID: uuid.MustParse(req.VideoID),
		UserID:  userID,
	}, true
}
