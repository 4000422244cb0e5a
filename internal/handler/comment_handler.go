package handler

import (
	"net/http"
	"strconv"

	"event-gallery-api/internal/service"
	apperrors "event-gallery-api/pkg/app_errors"
	"event-gallery-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CommentHandler struct {
	service service.CommentService
}

func NewCommentHandler(service service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) RegisterRoutes(r *gin.Engine, auth *AuthMiddleware) {
	router := r.Group("/api/v1")
	{
		router.GET("images/:uuid/comments", auth.Optional(), h.ListByImage)
		router.POST("images/:uuid/comments", auth.Required(), h.Create)
		router.PUT("comments/:id", auth.Required(), h.Update)
		router.DELETE("comments/:id", auth.Required(), h.Delete)
	}
}

// CommentRequest 新增或更新留言
type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *CommentHandler) ListByImage(c *gin.Context) {
	imageID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	comments, err := h.service.ListByImageID(c, SubjectFrom(c), imageID)
	if err != nil {
		h.handleError(c, err, "ListByImage")
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) Create(c *gin.Context) {
	imageID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	var req CommentRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	comment, err := h.service.Create(c, SubjectFrom(c).UserID(), imageID, req.Content)
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment id"})
		return
	}
	var req CommentRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	comment, err := h.service.Update(c, SubjectFrom(c).UserID(), id, req.Content)
	if err != nil {
		h.handleError(c, err, "Update")
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment id"})
		return
	}
	if err := h.service.Delete(c, SubjectFrom(c).UserID(), id); err != nil {
		h.handleError(c, err, "Delete")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CommentHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case err == apperrors.ErrCommentNotFound:
		log.Warn("Comment not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
	case err == apperrors.ErrImageNotFound:
		log.Warn("Image not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
	case err == apperrors.ErrEventNotFound:
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case err == apperrors.ErrAccessDenied:
		log.Warn("Access denied")
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to comment on this image"})
	case err == apperrors.ErrInvalidInput:
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
