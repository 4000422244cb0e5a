package handler

import (
	"net/http"

	"event-gallery-api/internal/model"
	"event-gallery-api/internal/service"
	apperrors "event-gallery-api/pkg/app_errors"
	"event-gallery-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ImageHandler struct {
	service service.ImageService
}

func NewImageHandler(service service.ImageService) *ImageHandler {
	return &ImageHandler{service: service}
}

func (h *ImageHandler) RegisterRoutes(r *gin.Engine, auth *AuthMiddleware) {
	router := r.Group("/api/v1")
	{
		router.GET("images", auth.Optional(), h.List)
		router.GET("images/:uuid", auth.Optional(), h.GetByImageID)
		router.POST("images", auth.Required(), h.Upload)
		router.PUT("images/:uuid", auth.Required(), h.UpdateByImageID)
		router.DELETE("images/:uuid", auth.Required(), h.DeleteByImageID)

		router.POST("images/:uuid/like", auth.Required(), h.Like)
		router.DELETE("images/:uuid/like", auth.Required(), h.Unlike)
	}
}

// UploadImageForm multipart 上傳欄位；檔案在 file 欄位
type UploadImageForm struct {
	EventID     string  `form:"event_id" binding:"required"`
	Title       *string `form:"title"`
	Description *string `form:"description"`
}

// UpdateImageRequest 更新圖片請求
type UpdateImageRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// ImageListQuery 圖片列表與搜尋條件
type ImageListQuery struct {
	EventID *int    `form:"event_id"`
	UserID  *int    `form:"user_id"`
	Search  *string `form:"search"`
}

func (h *ImageHandler) List(c *gin.Context) {
	var query ImageListQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}
	filters := model.ImageFilters{
		EventID: query.EventID,
		UserID:  query.UserID,
		Search:  query.Search,
	}
	images, err := h.service.List(c, SubjectFrom(c), filters)
	if err != nil {
		h.handleError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, images)
}

func (h *ImageHandler) GetByImageID(c *gin.Context) {
	imageID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	image, err := h.service.GetByImageID(c, SubjectFrom(c), imageID)
	if err != nil {
		h.handleError(c, err, "GetByImageID")
		return
	}
	c.JSON(http.StatusOK, image)
}

func (h *ImageHandler) Upload(c *gin.Context) {
	var form UploadImageForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	eventID, err := uuid.Parse(form.EventID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event_id"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.handleError(c, err, "Upload")
		return
	}
	defer file.Close()

	size := fileHeader.Size
	mimeType := fileHeader.Header.Get("Content-Type")
	params := model.UploadImageParams{
		EventID:     eventID,
		Title:       form.Title,
		Description: form.Description,
		FileName:    fileHeader.Filename,
		FileSize:    &size,
	}
	if mimeType != "" {
		params.MimeType = &mimeType
	}

	image, err := h.service.Upload(c, SubjectFrom(c).UserID(), params, file)
	if err != nil {
		h.handleError(c, err, "Upload")
		return
	}
	c.JSON(http.StatusCreated, image)
}

func (h *ImageHandler) UpdateByImageID(c *gin.Context) {
	imageID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	var req UpdateImageRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	params := model.UpdateImageParams{
		Title:       req.Title,
		Description: req.Description,
	}
	updated, err := h.service.Update(c, SubjectFrom(c), imageID, params)
	if err != nil {
		h.handleError(c, err, "UpdateByImageID")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ImageHandler) DeleteByImageID(c *gin.Context) {
	imageID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	if err := h.service.Delete(c, SubjectFrom(c), imageID); err != nil {
		h.handleError(c, err, "DeleteByImageID")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ImageHandler) Like(c *gin.Context) {
	imageID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	count, err := h.service.Like(c, imageID, SubjectFrom(c).UserID())
	if err != nil {
		h.handleError(c, err, "Like")
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": true, "like_count": count})
}

func (h *ImageHandler) Unlike(c *gin.Context) {
	imageID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	count, err := h.service.Unlike(c, imageID, SubjectFrom(c).UserID())
	if err != nil {
		h.handleError(c, err, "Unlike")
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": false, "like_count": count})
}

func (h *ImageHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case err == apperrors.ErrImageNotFound:
		log.Warn("Image not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
	case err == apperrors.ErrEventNotFound:
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case err == apperrors.ErrAccessDenied:
		log.Warn("Access denied")
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this image"})
	case err == apperrors.ErrAlreadyLiked:
		log.Warn("Already liked")
		c.JSON(http.StatusConflict, gin.H{"error": "You have already liked this image"})
	case err == apperrors.ErrNotLiked:
		log.Warn("Not liked")
		c.JSON(http.StatusBadRequest, gin.H{"error": "You have not liked this image"})
	case err == apperrors.ErrStorageFailure:
		log.Error("Storage failure")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Image storage is unavailable"})
	case err == apperrors.ErrInvalidInput:
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
