package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"event-gallery-api/internal/handler"
	"event-gallery-api/internal/model"
	mocks "event-gallery-api/test/internal/mocks/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupGalleryTestRouter(mockService *mocks.GalleryServiceMock) *gin.Engine {
	router := newTestRouter()
	handler.NewGalleryHandler(mockService).RegisterRoutes(router)
	return router
}

func TestGalleryFeatured(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewGalleryServiceMock()
		router := setupGalleryTestRouter(mockService)

		title := "Sunset over the bay"
		images := []*model.Image{{Title: &title, LikeCount: 12}}
		mockService.On("Featured", mock.Anything, 0).Return(images, nil).Once()

		req := createJSONHTTPRequest("GET", "/api/v1/gallery/featured", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Sunset over the bay")
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - unexpected error maps to 500", func(t *testing.T) {
		mockService := mocks.NewGalleryServiceMock()
		router := setupGalleryTestRouter(mockService)

		mockService.On("Featured", mock.Anything, 0).Return(nil, errors.New("db down")).Once()

		req := createJSONHTTPRequest("GET", "/api/v1/gallery/featured", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestGalleryPopular(t *testing.T) {
	t.Run("Success - limit and offset forwarded", func(t *testing.T) {
		mockService := mocks.NewGalleryServiceMock()
		router := setupGalleryTestRouter(mockService)

		mockService.On("Popular", mock.Anything, 5, 10).Return([]*model.Image{}, nil).Once()

		req := createJSONHTTPRequest("GET", "/api/v1/gallery/popular?limit=5&offset=10", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestGalleryStats(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewGalleryServiceMock()
		router := setupGalleryTestRouter(mockService)

		stats := &model.GalleryStats{TotalEvents: 3, TotalImages: 8, TotalUsers: 5, TotalLikes: 20, TotalComments: 11}
		mockService.On("Stats", mock.Anything).Return(stats, nil).Once()

		req := createJSONHTTPRequest("GET", "/api/v1/gallery/stats", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total_images":8`)
		mockService.AssertExpectations(t)
	})
}
