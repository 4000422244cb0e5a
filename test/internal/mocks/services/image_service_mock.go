package services

import (
	"context"
	"io"

	"event-gallery-api/internal/access"
	"event-gallery-api/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ImageServiceMock struct {
	mock.Mock
}

func NewImageServiceMock() *ImageServiceMock {
	return &ImageServiceMock{}
}

func (m *ImageServiceMock) List(ctx context.Context, sub access.Subject, filters model.ImageFilters) ([]*model.Image, error) {
	args := m.Called(ctx, sub, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Image), args.Error(1)
}

func (m *ImageServiceMock) GetByImageID(ctx context.Context, sub access.Subject, imageID uuid.UUID) (*model.ImageDetail, error) {
	args := m.Called(ctx, sub, imageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImageDetail), args.Error(1)
}

func (m *ImageServiceMock) Upload(ctx context.Context, userID int, params model.UploadImageParams, file io.Reader) (*model.Image, error) {
	args := m.Called(ctx, userID, params, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Image), args.Error(1)
}

func (m *ImageServiceMock) Update(ctx context.Context, sub access.Subject, imageID uuid.UUID, params model.UpdateImageParams) (*model.Image, error) {
	args := m.Called(ctx, sub, imageID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Image), args.Error(1)
}

func (m *ImageServiceMock) Delete(ctx context.Context, sub access.Subject, imageID uuid.UUID) error {
	args := m.Called(ctx, sub, imageID)
	return args.Error(0)
}

func (m *ImageServiceMock) Like(ctx context.Context, imageID uuid.UUID, userID int) (int, error) {
	args := m.Called(ctx, imageID, userID)
	return args.Int(0), args.Error(1)
}

func (m *ImageServiceMock) Unlike(ctx context.Context, imageID uuid.UUID, userID int) (int, error) {
	args := m.Called(ctx, imageID, userID)
	return args.Int(0), args.Error(1)
}
