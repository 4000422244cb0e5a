package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"event-gallery-api/internal/access"
	"event-gallery-api/internal/cache"
	"event-gallery-api/internal/model"
	"event-gallery-api/internal/queue"
	"event-gallery-api/internal/repository"
	"event-gallery-api/internal/storage"
	apperrors "event-gallery-api/pkg/app_errors"
	"event-gallery-api/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ImageService interface {
	List(ctx context.Context, sub access.Subject, filters model.ImageFilters) ([]*model.Image, error)
	GetByImageID(ctx context.Context, sub access.Subject, imageID uuid.UUID) (*model.ImageDetail, error)
	// Upload 要求上傳者是活動參加者，公開活動也不例外
	Upload(ctx context.Context, userID int, params model.UploadImageParams, file io.Reader) (*model.Image, error)
	Update(ctx context.Context, sub access.Subject, imageID uuid.UUID, params model.UpdateImageParams) (*model.Image, error)
	Delete(ctx context.Context, sub access.Subject, imageID uuid.UUID) error
	Like(ctx context.Context, imageID uuid.UUID, userID int) (int, error)
	Unlike(ctx context.Context, imageID uuid.UUID, userID int) (int, error)
}

type ImageServiceImpl struct {
	repo         repository.ImageRepository
	eventRepo    repository.EventRepository
	userRepo     repository.UserRepository
	likeRepo     repository.LikeRepository
	gate         *access.Gate
	blobStorage  storage.BlobStorage
	statsCache   cache.EventStatsCache
	cleanupQueue queue.CleanupQueue
}

func NewImageService(
	repo repository.ImageRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	likeRepo repository.LikeRepository,
	gate *access.Gate,
	blobStorage storage.BlobStorage,
	statsCache cache.EventStatsCache,
	cleanupQueue queue.CleanupQueue,
) ImageService {
	return &ImageServiceImpl{
		repo:         repo,
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		likeRepo:     likeRepo,
		gate:         gate,
		blobStorage:  blobStorage,
		statsCache:   statsCache,
		cleanupQueue: cleanupQueue,
	}
}

func (s *ImageServiceImpl) List(ctx context.Context, sub access.Subject, filters model.ImageFilters) ([]*model.Image, error) {
	return s.repo.List(ctx, sub, filters)
}

func (s *ImageServiceImpl) GetByImageID(ctx context.Context, sub access.Subject, imageID uuid.UUID) (*model.ImageDetail, error) {
	image, err := s.repo.FindByImageID(ctx, imageID)
	if err != nil {
		return nil, err
	}

	// 圖片沒有自己的可見性，一律回到所屬活動判斷
	event, err := s.eventRepo.FindByID(ctx, image.EventID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.RequireRead(ctx, sub, event); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, image.UserID)
	if err != nil {
		return nil, err
	}

	detail := &model.ImageDetail{
		Image: *image,
		User:  user.Public(),
	}
	if !sub.IsAnonymous() {
		liked, err := s.likeRepo.Exists(ctx, image.ID, sub.UserID())
		if err != nil {
			return nil, err
		}
		detail.IsLiked = liked
	}
	return detail, nil
}

func (s *ImageServiceImpl) Upload(ctx context.Context, userID int, params model.UploadImageParams, file io.Reader) (*model.Image, error) {
	event, err := s.eventRepo.FindByEventID(ctx, params.EventID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.RequireContribute(ctx, access.User(userID), event); err != nil {
		return nil, err
	}

	imageID := uuid.New()
	key := fmt.Sprintf("events/%d/%s%s", event.ID, imageID, filepath.Ext(params.FileName))

	// 授權通過後才碰 blob storage；它的錯誤是依賴失敗，不是授權結果
	if err := s.blobStorage.Save(ctx, key, file); err != nil {
		logger.WithComponent("service").Error("save blob failed", zap.String("key", key), zap.Error(err))
		return nil, apperrors.ErrStorageFailure
	}

	image := &model.Image{
		ImageID:     imageID,
		EventID:     event.ID,
		UserID:      userID,
		Title:       params.Title,
		Description: params.Description,
		ImageKey:    key,
		FileSize:    params.FileSize,
		MimeType:    params.MimeType,
	}

	created, err := s.repo.Create(ctx, image)
	if err != nil {
		logger.WithComponent("service").Error("insert image failed", zap.String("key", key), zap.Error(err))
		// 資料列沒寫成，把剛存的檔案排進清理佇列
		if qErr := s.cleanupQueue.PublishCleanup(ctx, &queue.CleanupTask{Keys: []string{key}}); qErr != nil {
			logger.WithComponent("service").Error("publish cleanup failed", zap.String("key", key), zap.Error(qErr))
		}
		return nil, apperrors.ErrInternalServerError
	}

	if s.statsCache != nil {
		if err := s.statsCache.Invalidate(ctx, event.ID); err != nil {
			logger.WithComponent("service").Warn("invalidate stats failed", zap.Int("event_id", event.ID), zap.Error(err))
		}
	}
	return created, nil
}

func (s *ImageServiceImpl) Update(ctx context.Context, sub access.Subject, imageID uuid.UUID, params model.UpdateImageParams) (*model.Image, error) {
	image, err := s.repo.FindByImageID(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if sub.IsAnonymous() || sub.UserID() != image.UserID {
		return nil, apperrors.ErrAccessDenied
	}
	return s.repo.Update(ctx, image.ID, params)
}

func (s *ImageServiceImpl) Delete(ctx context.Context, sub access.Subject, imageID uuid.UUID) error {
	image, err := s.repo.FindByImageID(ctx, imageID)
	if err != nil {
		return err
	}
	event, err := s.eventRepo.FindByID(ctx, image.EventID)
	if err != nil {
		return err
	}

	// 圖片擁有者或活動建立者可刪
	if sub.IsAnonymous() || (sub.UserID() != image.UserID && sub.UserID() != event.CreatedBy) {
		return apperrors.ErrAccessDenied
	}

	if err := s.repo.Delete(ctx, image.ID); err != nil {
		return err
	}

	keys := []string{image.ImageKey}
	if image.ThumbnailKey != nil {
		keys = append(keys, *image.ThumbnailKey)
	}
	if err := s.cleanupQueue.PublishCleanup(ctx, &queue.CleanupTask{Keys: keys}); err != nil {
		logger.WithComponent("service").Error("publish cleanup failed", zap.Int("image_id", image.ID), zap.Error(err))
	}

	if s.statsCache != nil {
		if err := s.statsCache.Invalidate(ctx, event.ID); err != nil {
			logger.WithComponent("service").Warn("invalidate stats failed", zap.Int("event_id", event.ID), zap.Error(err))
		}
	}
	return nil
}

func (s *ImageServiceImpl) Like(ctx context.Context, imageID uuid.UUID, userID int) (int, error) {
	image, err := s.repo.FindByImageID(ctx, imageID)
	if err != nil {
		return 0, err
	}
	event, err := s.eventRepo.FindByID(ctx, image.EventID)
	if err != nil {
		return 0, err
	}
	if err := s.gate.RequireEngage(ctx, access.User(userID), event); err != nil {
		return 0, err
	}

	if _, err := s.likeRepo.Insert(ctx, image.ID, userID); err != nil {
		return 0, err
	}

	if s.statsCache != nil {
		if err := s.statsCache.Invalidate(ctx, event.ID); err != nil {
			logger.WithComponent("service").Warn("invalidate stats failed", zap.Int("event_id", event.ID), zap.Error(err))
		}
	}
	return s.likeRepo.CountByImageID(ctx, image.ID)
}

func (s *ImageServiceImpl) Unlike(ctx context.Context, imageID uuid.UUID, userID int) (int, error) {
	image, err := s.repo.FindByImageID(ctx, imageID)
	if err != nil {
		return 0, err
	}

	if err := s.likeRepo.Delete(ctx, image.ID, userID); err != nil {
		return 0, err
	}

	if s.statsCache != nil {
		if err := s.statsCache.Invalidate(ctx, image.EventID); err != nil {
			logger.WithComponent("service").Warn("invalidate stats failed", zap.Int("event_id", image.EventID), zap.Error(err))
		}
	}
	return s.likeRepo.CountByImageID(ctx, image.ID)
}
