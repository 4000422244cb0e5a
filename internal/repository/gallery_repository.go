package repository

import (
	"context"
	"fmt"

	"event-gallery-api/internal/access"
	"event-gallery-api/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// GalleryRepository 公開牆的全站統計；活動與圖片只數匿名可見的範圍
type GalleryRepository interface {
	GlobalStats(ctx context.Context) (*model.GalleryStats, error)
}

type GalleryRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewGalleryRepository(pool *pgxpool.Pool) GalleryRepository {
	return &GalleryRepositoryImpl{
		pool: pool,
	}
}

func (r *GalleryRepositoryImpl) GlobalStats(ctx context.Context) (*model.GalleryStats, error) {
	// 可見範圍與列表查詢共用同一份定義
	readable, _, _ := access.ReadableEventsCondition(access.Anonymous(), "e", 1)

	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM events e WHERE %[1]s) AS total_events,
			(SELECT COUNT(*) FROM images i JOIN events e ON e.id = i.event_id WHERE %[1]s) AS total_images,
			(SELECT COUNT(*) FROM users u WHERE u.deleted_at IS NULL) AS total_users,
			(SELECT COUNT(*) FROM image_likes) AS total_likes,
			(SELECT COUNT(*) FROM comments) AS total_comments
	`, readable)

	var stats model.GalleryStats
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalEvents,
		&stats.TotalImages,
		&stats.TotalUsers,
		&stats.TotalLikes,
		&stats.TotalComments,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
