package services

import (
	"context"

	"event-gallery-api/internal/access"
	"event-gallery-api/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CommentServiceMock struct {
	mock.Mock
}

func NewCommentServiceMock() *CommentServiceMock {
	return &CommentServiceMock{}
}

func (m *CommentServiceMock) ListByImageID(ctx context.Context, sub access.Subject, imageID uuid.UUID) ([]*model.Comment, error) {
	args := m.Called(ctx, sub, imageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Comment), args.Error(1)
}

func (m *CommentServiceMock) Create(ctx context.Context, userID int, imageID uuid.UUID, content string) (*model.Comment, error) {
	args := m.Called(ctx, userID, imageID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *CommentServiceMock) Update(ctx context.Context, userID int, commentID int, content string) (*model.Comment, error) {
	args := m.Called(ctx, userID, commentID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *CommentServiceMock) Delete(ctx context.Context, userID int, commentID int) error {
	args := m.Called(ctx, userID, commentID)
	return args.Error(0)
}
