package services

import (
	"context"

	"event-gallery-api/internal/access"
	"event-gallery-api/internal/model"

	"github.com/stretchr/testify/mock"
)

type SearchServiceMock struct {
	mock.Mock
}

func NewSearchServiceMock() *SearchServiceMock {
	return &SearchServiceMock{}
}

func (m *SearchServiceMock) Search(ctx context.Context, sub access.Subject, query, kind string, limit int) (*model.SearchResults, error) {
	args := m.Called(ctx, sub, query, kind, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SearchResults), args.Error(1)
}
