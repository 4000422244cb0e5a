package services

import (
	"context"

	"event-gallery-api/internal/access"
	"event-gallery-api/internal/model"

	"github.com/stretchr/testify/mock"
)

type UserServiceMock struct {
	mock.Mock
}

func NewUserServiceMock() *UserServiceMock {
	return &UserServiceMock{}
}

func (m *UserServiceMock) GetByID(ctx context.Context, id int) (*model.UserPublic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserPublic), args.Error(1)
}

func (m *UserServiceMock) Statistics(ctx context.Context, id int) (*model.UserStatistics, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserStatistics), args.Error(1)
}

func (m *UserServiceMock) Events(ctx context.Context, sub access.Subject, id int) ([]*model.Event, error) {
	args := m.Called(ctx, sub, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *UserServiceMock) Images(ctx context.Context, sub access.Subject, id int) ([]*model.Image, error) {
	args := m.Called(ctx, sub, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Image), args.Error(1)
}

func (m *UserServiceMock) LikedImages(ctx context.Context, sub access.Subject, id int) ([]*model.Image, error) {
	args := m.Called(ctx, sub, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Image), args.Error(1)
}
