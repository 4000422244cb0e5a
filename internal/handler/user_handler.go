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

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(r *gin.Engine, auth *AuthMiddleware) {
	router := r.Group("/api/v1")
	{
		router.GET("users/:id", h.GetByID)
		router.GET("users/:id/statistics", h.Statistics)
		router.GET("users/:id/events", auth.Optional(), h.Events)
		router.GET("users/:id/images", auth.Optional(), h.Images)
		router.GET("users/:id/liked-images", auth.Optional(), h.LikedImages)
	}
}

func parseUserID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return 0, false
	}
	return id, true
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	user, err := h.service.GetByID(c, id)
	if err != nil {
		h.handleError(c, err, "GetByID")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Statistics(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	stats, err := h.service.Statistics(c, id)
	if err != nil {
		h.handleError(c, err, "Statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *UserHandler) Events(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	events, err := h.service.Events(c, SubjectFrom(c), id)
	if err != nil {
		h.handleError(c, err, "Events")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *UserHandler) Images(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	images, err := h.service.Images(c, SubjectFrom(c), id)
	if err != nil {
		h.handleError(c, err, "Images")
		return
	}
	c.JSON(http.StatusOK, images)
}

func (h *UserHandler) LikedImages(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	images, err := h.service.LikedImages(c, SubjectFrom(c), id)
	if err != nil {
		h.handleError(c, err, "LikedImages")
		return
	}
	c.JSON(http.StatusOK, images)
}

func (h *UserHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case err == apperrors.ErrUserNotFound:
		log.Warn("User not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
