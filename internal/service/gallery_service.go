package service

import (
	"context"

	"event-gallery-api/internal/access"
	"event-gallery-api/internal/model"
	"event-gallery-api/internal/repository"
)

const (
	defaultGalleryLimit = 20
	maxGalleryLimit     = 100
)

// GalleryService 公開牆：不看請求者身分，一律只展示匿名也看得到的內容
type GalleryService interface {
	Featured(ctx context.Context, limit int) ([]*model.Image, error)
	Recent(ctx context.Context, limit, offset int) ([]*model.Image, error)
	Popular(ctx context.Context, limit, offset int) ([]*model.Image, error)
	Stats(ctx context.Context) (*model.GalleryStats, error)
}

type GalleryServiceImpl struct {
	imageRepo   repository.ImageRepository
	galleryRepo repository.GalleryRepository
}

func NewGalleryService(
	imageRepo repository.ImageRepository,
	galleryRepo repository.GalleryRepository,
) GalleryService {
	return &GalleryServiceImpl{
		imageRepo:   imageRepo,
		galleryRepo: galleryRepo,
	}
}

func clampGalleryLimit(limit int) int {
	if limit <= 0 || limit > maxGalleryLimit {
		return defaultGalleryLimit
	}
	return limit
}

// Featured 讚數最多的公開圖片
func (s *GalleryServiceImpl) Featured(ctx context.Context, limit int) ([]*model.Image, error) {
	return s.imageRepo.List(ctx, access.Anonymous(), model.ImageFilters{
		OrderByLikes: true,
		Limit:        clampGalleryLimit(limit),
	})
}

func (s *GalleryServiceImpl) Recent(ctx context.Context, limit, offset int) ([]*model.Image, error) {
	if offset < 0 {
		offset = 0
	}
	return s.imageRepo.List(ctx, access.Anonymous(), model.ImageFilters{
		Limit:  clampGalleryLimit(limit),
		Offset: offset,
	})
}

func (s *GalleryServiceImpl) Popular(ctx context.Context, limit, offset int) ([]*model.Image, error) {
	if offset < 0 {
		offset = 0
	}
	return s.imageRepo.List(ctx, access.Anonymous(), model.ImageFilters{
		OrderByLikes: true,
		Limit:        clampGalleryLimit(limit),
		Offset:       offset,
	})
}

func (s *GalleryServiceImpl) Stats(ctx context.Context) (*model.GalleryStats, error) {
	return s.galleryRepo.GlobalStats(ctx)
}
