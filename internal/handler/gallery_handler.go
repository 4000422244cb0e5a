package handler

import (
	"net/http"

	"event-gallery-api/internal/service"
	"event-gallery-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type GalleryHandler struct {
	service service.GalleryService
}

func NewGalleryHandler(service service.GalleryService) *GalleryHandler {
	return &GalleryHandler{service: service}
}

// RegisterRoutes 公開牆不需要身分，全部路由不掛 auth
func (h *GalleryHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1/gallery")
	{
		router.GET("featured", h.Featured)
		router.GET("recent", h.Recent)
		router.GET("popular", h.Popular)
		router.GET("stats", h.Stats)
	}
}

// GalleryQuery 分頁條件
type GalleryQuery struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

func (h *GalleryHandler) Featured(c *gin.Context) {
	var query GalleryQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}
	images, err := h.service.Featured(c, query.Limit)
	if err != nil {
		h.handleError(c, err, "Featured")
		return
	}
	c.JSON(http.StatusOK, images)
}

func (h *GalleryHandler) Recent(c *gin.Context) {
	var query GalleryQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}
	images, err := h.service.Recent(c, query.Limit, query.Offset)
	if err != nil {
		h.handleError(c, err, "Recent")
		return
	}
	c.JSON(http.StatusOK, images)
}

func (h *GalleryHandler) Popular(c *gin.Context) {
	var query GalleryQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}
	images, err := h.service.Popular(c, query.Limit, query.Offset)
	if err != nil {
		h.handleError(c, err, "Popular")
		return
	}
	c.JSON(http.StatusOK, images)
}

func (h *GalleryHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c)
	if err != nil {
		h.handleError(c, err, "Stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *GalleryHandler) handleError(c *gin.Context, err error, operation string) {
	logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err)).Error("Unexpected error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
