package services

import (
	"context"

	"event-gallery-api/internal/model"

	"github.com/stretchr/testify/mock"
)

type GalleryServiceMock struct {
	mock.Mock
}

func NewGalleryServiceMock() *GalleryServiceMock {
	return &GalleryServiceMock{}
}

func (m *GalleryServiceMock) Featured(ctx context.Context, limit int) ([]*model.Image, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Image), args.Error(1)
}

func (m *GalleryServiceMock) Recent(ctx context.Context, limit, offset int) ([]*model.Image, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Image), args.Error(1)
}

func (m *GalleryServiceMock) Popular(ctx context.Context, limit, offset int) ([]*model.Image, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Image), args.Error(1)
}

func (m *GalleryServiceMock) Stats(ctx context.Context) (*model.GalleryStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GalleryStats), args.Error(1)
}
