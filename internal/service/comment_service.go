package service

import (
	"context"

	"event-gallery-api/internal/access"
	"event-gallery-api/internal/model"
	"event-gallery-api/internal/repository"
	apperrors "event-gallery-api/pkg/app_errors"

	"github.com/google/uuid"
)

type CommentService interface {
	ListByImageID(ctx context.Context, sub access.Subject, imageID uuid.UUID) ([]*model.Comment, error)
	Create(ctx context.Context, userID int, imageID uuid.UUID, content string) (*model.Comment, error)
	Update(ctx context.Context, userID int, commentID int, content string) (*model.Comment, error)
	Delete(ctx context.Context, userID int, commentID int) error
}

type CommentServiceImpl struct {
	repo      repository.CommentRepository
	imageRepo repository.ImageRepository
	eventRepo repository.EventRepository
	gate      *access.Gate
}

func NewCommentService(
	repo repository.CommentRepository,
	imageRepo repository.ImageRepository,
	eventRepo repository.EventRepository,
	gate *access.Gate,
) CommentService {
	return &CommentServiceImpl{
		repo:      repo,
		imageRepo: imageRepo,
		eventRepo: eventRepo,
		gate:      gate,
	}
}

// eventOf 解析留言目標圖片的所屬活動，所有授權檢查都對它做
func (s *CommentServiceImpl) eventOf(ctx context.Context, imageID uuid.UUID) (*model.Image, *model.Event, error) {
	image, err := s.imageRepo.FindByImageID(ctx, imageID)
	if err != nil {
		return nil, nil, err
	}
	event, err := s.eventRepo.FindByID(ctx, image.EventID)
	if err != nil {
		return nil, nil, err
	}
	return image, event, nil
}

func (s *CommentServiceImpl) ListByImageID(ctx context.Context, sub access.Subject, imageID uuid.UUID) ([]*model.Comment, error) {
	image, event, err := s.eventOf(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.RequireRead(ctx, sub, event); err != nil {
		return nil, err
	}
	return s.repo.ListByImageID(ctx, image.ID)
}

func (s *CommentServiceImpl) Create(ctx context.Context, userID int, imageID uuid.UUID, content string) (*model.Comment, error) {
	if content == "" {
		return nil, apperrors.ErrInvalidInput
	}

	image, event, err := s.eventOf(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.RequireEngage(ctx, access.User(userID), event); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ImageID: image.ID,
		UserID:  userID,
		Content: content,
	}
	return s.repo.Create(ctx, comment)
}

func (s *CommentServiceImpl) Update(ctx context.Context, userID int, commentID int, content string) (*model.Comment, error) {
	if content == "" {
		return nil, apperrors.ErrInvalidInput
	}

	comment, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	// 只有留言作者本人可改
	if comment.UserID != userID {
		return nil, apperrors.ErrAccessDenied
	}
	return s.repo.UpdateContent(ctx, comment.ID, content)
}

func (s *CommentServiceImpl) Delete(ctx context.Context, userID int, commentID int) error {
	comment, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID {
		// 非作者：圖片擁有者或活動建立者也可刪
		image, err := s.imageRepo.FindByID(ctx, comment.ImageID)
		if err != nil {
			return err
		}
		if image.UserID != userID {
			event, err := s.eventRepo.FindByID(ctx, image.EventID)
			if err != nil {
				return err
			}
			if event.CreatedBy != userID {
				return apperrors.ErrAccessDenied
			}
		}
	}

	return s.repo.Delete(ctx, comment.ID)
}
