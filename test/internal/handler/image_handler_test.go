package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"event-gallery-api/internal/handler"
	"event-gallery-api/internal/model"
	apperrors "event-gallery-api/pkg/app_errors"
	mocks "event-gallery-api/test/internal/mocks/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupImageTestRouter(mockService *mocks.ImageServiceMock) *gin.Engine {
	router := newTestRouter()
	handler.NewImageHandler(mockService).RegisterRoutes(router, newTestAuth())
	return router
}

// createUploadRequest 組 multipart 表單，含 event_id 與 file 欄位
func createUploadRequest(t *testing.T, eventID string, userID int) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("event_id", eventID))
	part, err := writer.CreateFormFile("file", "photo.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", "/api/v1/images", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+signTestToken(userID))
	return req
}

func TestUploadImage(t *testing.T) {
	eventID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewImageServiceMock()
		router := setupImageTestRouter(mockService)

		image := &model.Image{ID: 1, ImageID: uuid.New(), ImageKey: "events/1/x.jpg"}
		mockService.On("Upload", mock.Anything, 7, mock.Anything, mock.Anything).Return(image, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createUploadRequest(t, eventID.String(), 7))

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - AccessDenied maps to 403", func(t *testing.T) {
		mockService := mocks.NewImageServiceMock()
		router := setupImageTestRouter(mockService)

		mockService.On("Upload", mock.Anything, 7, mock.Anything, mock.Anything).Return(nil, apperrors.ErrAccessDenied).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createUploadRequest(t, eventID.String(), 7))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Failed - StorageFailure maps to 502", func(t *testing.T) {
		mockService := mocks.NewImageServiceMock()
		router := setupImageTestRouter(mockService)

		mockService.On("Upload", mock.Anything, 7, mock.Anything, mock.Anything).Return(nil, apperrors.ErrStorageFailure).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createUploadRequest(t, eventID.String(), 7))

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("Failed - invalid event_id", func(t *testing.T) {
		mockService := mocks.NewImageServiceMock()
		router := setupImageTestRouter(mockService)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createUploadRequest(t, "not-a-uuid", 7))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Upload")
	})
}

func TestLikeImage(t *testing.T) {
	imageID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewImageServiceMock()
		router := setupImageTestRouter(mockService)

		mockService.On("Like", mock.Anything, imageID, 7).Return(3, nil).Once()

		req := createAuthedJSONHTTPRequest("POST", "/api/v1/images/"+imageID.String()+"/like", nil, 7)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"like_count":3`)
	})

	t.Run("Failed - AlreadyLiked maps to 409", func(t *testing.T) {
		mockService := mocks.NewImageServiceMock()
		router := setupImageTestRouter(mockService)

		mockService.On("Like", mock.Anything, imageID, 7).Return(0, apperrors.ErrAlreadyLiked).Once()

		req := createAuthedJSONHTTPRequest("POST", "/api/v1/images/"+imageID.String()+"/like", nil, 7)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Failed - NotLiked maps to 400", func(t *testing.T) {
		mockService := mocks.NewImageServiceMock()
		router := setupImageTestRouter(mockService)

		mockService.On("Unlike", mock.Anything, imageID, 7).Return(0, apperrors.ErrNotLiked).Once()

		req := createAuthedJSONHTTPRequest("DELETE", "/api/v1/images/"+imageID.String()+"/like", nil, 7)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetImage(t *testing.T) {
	imageID := uuid.New()

	t.Run("Failed - ImageNotFound maps to 404", func(t *testing.T) {
		mockService := mocks.NewImageServiceMock()
		router := setupImageTestRouter(mockService)

		mockService.On("GetByImageID", mock.Anything, mock.Anything, imageID).Return(nil, apperrors.ErrImageNotFound).Once()

		req := createJSONHTTPRequest("GET", "/api/v1/images/"+imageID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
