package service

import (
	"context"

	"event-gallery-api/internal/access"
	"event-gallery-api/internal/model"
	"event-gallery-api/internal/repository"
)

// UserService 個人頁：profile、活動量統計與個人彙整列表。
// 彙整列表的可見性跟著查詢主體走，跟活動/圖片列表共用同一份條件。
type UserService interface {
	GetByID(ctx context.Context, id int) (*model.UserPublic, error)
	Statistics(ctx context.Context, id int) (*model.UserStatistics, error)
	Events(ctx context.Context, sub access.Subject, id int) ([]*model.Event, error)
	Images(ctx context.Context, sub access.Subject, id int) ([]*model.Image, error)
	LikedImages(ctx context.Context, sub access.Subject, id int) ([]*model.Image, error)
}

type UserServiceImpl struct {
	repo      repository.UserRepository
	eventRepo repository.EventRepository
	imageRepo repository.ImageRepository
}

func NewUserService(
	repo repository.UserRepository,
	eventRepo repository.EventRepository,
	imageRepo repository.ImageRepository,
) UserService {
	return &UserServiceImpl{
		repo:      repo,
		eventRepo: eventRepo,
		imageRepo: imageRepo,
	}
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id int) (*model.UserPublic, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	public := user.Public()
	return &public, nil
}

func (s *UserServiceImpl) Statistics(ctx context.Context, id int) (*model.UserStatistics, error) {
	return s.repo.Statistics(ctx, id)
}

// Events 該使用者建立或參加的活動，過濾到查詢主體看得到的範圍
func (s *UserServiceImpl) Events(ctx context.Context, sub access.Subject, id int) ([]*model.Event, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, sub, model.EventFilters{InvolvingUser: &id})
}

func (s *UserServiceImpl) Images(ctx context.Context, sub access.Subject, id int) ([]*model.Image, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.imageRepo.List(ctx, sub, model.ImageFilters{UserID: &id})
}

func (s *UserServiceImpl) LikedImages(ctx context.Context, sub access.Subject, id int) ([]*model.Image, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.imageRepo.List(ctx, sub, model.ImageFilters{LikedBy: &id})
}
