package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"event-gallery-api/internal/handler"
	"event-gallery-api/internal/model"
	apperrors "event-gallery-api/pkg/app_errors"
	mocks "event-gallery-api/test/internal/mocks/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/google/uuid"
)

func setupCommentTestRouter(mockService *mocks.CommentServiceMock) *gin.Engine {
	router := newTestRouter()
	handler.NewCommentHandler(mockService).RegisterRoutes(router, newTestAuth())
	return router
}

func TestListComments(t *testing.T) {
	imageID := uuid.New()

	t.Run("Success - anonymous", func(t *testing.T) {
		mockService := mocks.NewCommentServiceMock()
		router := setupCommentTestRouter(mockService)

		comments := []*model.Comment{{ID: 1, Content: "nice shot"}}
		mockService.On("ListByImageID", mock.Anything, mock.Anything, imageID).Return(comments, nil).Once()

		req := createJSONHTTPRequest("GET", "/api/v1/images/"+imageID.String()+"/comments", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "nice shot")
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - AccessDenied maps to 403", func(t *testing.T) {
		mockService := mocks.NewCommentServiceMock()
		router := setupCommentTestRouter(mockService)

		mockService.On("ListByImageID", mock.Anything, mock.Anything, imageID).Return(nil, apperrors.ErrAccessDenied).Once()

		req := createJSONHTTPRequest("GET", "/api/v1/images/"+imageID.String()+"/comments", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestCreateComment(t *testing.T) {
	imageID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewCommentServiceMock()
		router := setupCommentTestRouter(mockService)

		comment := &model.Comment{ID: 1, Content: "lovely"}
		mockService.On("Create", mock.Anything, 7, imageID, "lovely").Return(comment, nil).Once()

		req := createAuthedJSONHTTPRequest("POST", "/api/v1/images/"+imageID.String()+"/comments", gin.H{"content": "lovely"}, 7)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - missing token", func(t *testing.T) {
		mockService := mocks.NewCommentServiceMock()
		router := setupCommentTestRouter(mockService)

		req := createJSONHTTPRequest("POST", "/api/v1/images/"+imageID.String()+"/comments", gin.H{"content": "lovely"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockService.AssertNotCalled(t, "Create")
	})

	t.Run("Failed - missing content", func(t *testing.T) {
		mockService := mocks.NewCommentServiceMock()
		router := setupCommentTestRouter(mockService)

		req := createAuthedJSONHTTPRequest("POST", "/api/v1/images/"+imageID.String()+"/comments", gin.H{}, 7)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Create")
	})

	t.Run("Failed - ImageNotFound maps to 404", func(t *testing.T) {
		mockService := mocks.NewCommentServiceMock()
		router := setupCommentTestRouter(mockService)

		mockService.On("Create", mock.Anything, 7, imageID, "lovely").Return(nil, apperrors.ErrImageNotFound).Once()

		req := createAuthedJSONHTTPRequest("POST", "/api/v1/images/"+imageID.String()+"/comments", gin.H{"content": "lovely"}, 7)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateComment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewCommentServiceMock()
		router := setupCommentTestRouter(mockService)

		comment := &model.Comment{ID: 5, Content: "edited"}
		mockService.On("Update", mock.Anything, 7, 5, "edited").Return(comment, nil).Once()

		req := createAuthedJSONHTTPRequest("PUT", "/api/v1/comments/5", gin.H{"content": "edited"}, 7)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - not the author maps to 403", func(t *testing.T) {
		mockService := mocks.NewCommentServiceMock()
		router := setupCommentTestRouter(mockService)

		mockService.On("Update", mock.Anything, 7, 5, "edited").Return(nil, apperrors.ErrAccessDenied).Once()

		req := createAuthedJSONHTTPRequest("PUT", "/api/v1/comments/5", gin.H{"content": "edited"}, 7)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Failed - invalid id", func(t *testing.T) {
		mockService := mocks.NewCommentServiceMock()
		router := setupCommentTestRouter(mockService)

		req := createAuthedJSONHTTPRequest("PUT", "/api/v1/comments/abc", gin.H{"content": "edited"}, 7)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Update")
	})
}

func TestDeleteComment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewCommentServiceMock()
		router := setupCommentTestRouter(mockService)

		mockService.On("Delete", mock.Anything, 7, 5).Return(nil).Once()

		req := createAuthedJSONHTTPRequest("DELETE", "/api/v1/comments/5", nil, 7)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - CommentNotFound maps to 404", func(t *testing.T) {
		mockService := mocks.NewCommentServiceMock()
		router := setupCommentTestRouter(mockService)

		mockService.On("Delete", mock.Anything, 7, 5).Return(apperrors.ErrCommentNotFound).Once()

		req := createAuthedJSONHTTPRequest("DELETE", "/api/v1/comments/5", nil, 7)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
