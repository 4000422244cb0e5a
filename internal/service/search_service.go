package service

import (
	"context"

	"event-gallery-api/internal/access"
	"event-gallery-api/internal/model"
	"event-gallery-api/internal/repository"
	apperrors "event-gallery-api/pkg/app_errors"
)

const (
	SearchAll    = "all"
	SearchEvents = "events"
	SearchImages = "images"
	SearchUsers  = "users"

	defaultSearchLimit = 20
	maxSearchLimit     = 100
	// 混合搜尋時每類最多取這麼多筆
	mixedSearchTake = 10
)

type SearchService interface {
	// Search 跨活動/圖片/使用者搜尋；kind 限定搜尋範圍，空字串視同 all
	Search(ctx context.Context, sub access.Subject, query, kind string, limit int) (*model.SearchResults, error)
}

type SearchServiceImpl struct {
	eventRepo repository.EventRepository
	imageRepo repository.ImageRepository
	userRepo  repository.UserRepository
}

func NewSearchService(
	eventRepo repository.EventRepository,
	imageRepo repository.ImageRepository,
	userRepo repository.UserRepository,
) SearchService {
	return &SearchServiceImpl{
		eventRepo: eventRepo,
		imageRepo: imageRepo,
		userRepo:  userRepo,
	}
}

func (s *SearchServiceImpl) Search(ctx context.Context, sub access.Subject, query, kind string, limit int) (*model.SearchResults, error) {
	if query == "" {
		return nil, apperrors.ErrInvalidInput
	}
	if kind == "" {
		kind = SearchAll
	}
	switch kind {
	case SearchAll, SearchEvents, SearchImages, SearchUsers:
	default:
		return nil, apperrors.ErrInvalidInput
	}
	if limit <= 0 || limit > maxSearchLimit {
		limit = defaultSearchLimit
	}

	take := limit
	if kind == SearchAll {
		take = mixedSearchTake
	}

	results := &model.SearchResults{
		Events: []*model.Event{},
		Images: []*model.Image{},
		Users:  []*model.UserPublic{},
	}

	// 活動與圖片走各自的列表查詢，可見性條件跟著查詢主體
	if kind == SearchAll || kind == SearchEvents {
		events, err := s.eventRepo.List(ctx, sub, model.EventFilters{Search: &query, Limit: take})
		if err != nil {
			return nil, err
		}
		results.Events = events
	}

	if kind == SearchAll || kind == SearchImages {
		images, err := s.imageRepo.List(ctx, sub, model.ImageFilters{Search: &query, Limit: take})
		if err != nil {
			return nil, err
		}
		results.Images = images
	}

	if kind == SearchAll || kind == SearchUsers {
		users, err := s.userRepo.Search(ctx, query, take)
		if err != nil {
			return nil, err
		}
		results.Users = users
	}

	results.Total = len(results.Events) + len(results.Images) + len(results.Users)
	return results, nil
}
