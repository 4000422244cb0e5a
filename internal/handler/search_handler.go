package handler

import (
	"net/http"

	"event-gallery-api/internal/service"
	apperrors "event-gallery-api/pkg/app_errors"
	"event-gallery-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SearchHandler struct {
	service service.SearchService
}

func NewSearchHandler(service service.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

func (h *SearchHandler) RegisterRoutes(r *gin.Engine, auth *AuthMiddleware) {
	router := r.Group("/api/v1")
	{
		router.GET("search", auth.Optional(), h.Search)
	}
}

// SearchQuery 搜尋條件；type 空字串視同 all
type SearchQuery struct {
	Query string `form:"q" binding:"required"`
	Type  string `form:"type"`
	Limit int    `form:"limit"`
}

func (h *SearchHandler) Search(c *gin.Context) {
	var query SearchQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}
	results, err := h.service.Search(c, SubjectFrom(c), query.Query, query.Type, query.Limit)
	if err != nil {
		h.handleError(c, err, "Search")
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *SearchHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case err == apperrors.ErrInvalidInput:
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search query"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
