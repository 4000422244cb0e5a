package repository

import (
	"context"

	"event-gallery-api/internal/model"
	apperrors "event-gallery-api/pkg/app_errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

const likePairConstraint = "image_likes_image_id_user_id_key"

type LikeRepository interface {
	// Insert 新增按讚；同一 (image, user) 已存在時回傳 ErrAlreadyLiked
	Insert(ctx context.Context, imageID, userID int) (*model.Like, error)
	// Delete 取消按讚；不存在時回傳 ErrNotLiked
	Delete(ctx context.Context, imageID, userID int) error
	Exists(ctx context.Context, imageID, userID int) (bool, error)
	CountByImageID(ctx context.Context, imageID int) (int, error)
}

type LikeRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewLikeRepository(pool *pgxpool.Pool) LikeRepository {
	return &LikeRepositoryImpl{
		pool: pool,
	}
}

func (r *LikeRepositoryImpl) Insert(ctx context.Context, imageID, userID int) (*model.Like, error) {
	query := `
		INSERT INTO image_likes (image_id, user_id)
		VALUES ($1, $2)
		RETURNING id, image_id, user_id, created_at
	`

	var like model.Like
	err := r.pool.QueryRow(ctx, query, imageID, userID).Scan(
		&like.ID,
		&like.ImageID,
		&like.UserID,
		&like.CreatedAt,
	)
	if err != nil {
		if uniqueViolation(err, likePairConstraint) {
			return nil, apperrors.ErrAlreadyLiked
		}
		return nil, err
	}
	return &like, nil
}

func (r *LikeRepositoryImpl) Delete(ctx context.Context, imageID, userID int) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM image_likes WHERE image_id = $1 AND user_id = $2`, imageID, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotLiked
	}
	return nil
}

func (r *LikeRepositoryImpl) Exists(ctx context.Context, imageID, userID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM image_likes WHERE image_id = $1 AND user_id = $2)`,
		imageID, userID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *LikeRepositoryImpl) CountByImageID(ctx context.Context, imageID int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM image_likes WHERE image_id = $1`, imageID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
