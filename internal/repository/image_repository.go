package repository

import (
	"context"
	"fmt"
	"strings"

	"event-gallery-api/internal/access"
	"event-gallery-api/internal/model"
	apperrors "event-gallery-api/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ImageRepository interface {
	Create(ctx context.Context, image *model.Image) (*model.Image, error)
	List(ctx context.Context, sub access.Subject, filters model.ImageFilters) ([]*model.Image, error)
	FindByID(ctx context.Context, id int) (*model.Image, error)
	FindByImageID(ctx context.Context, imageID uuid.UUID) (*model.Image, error)
	Update(ctx context.Context, id int, params model.UpdateImageParams) (*model.Image, error)
	Delete(ctx context.Context, id int) error
	// ListKeysByEventID 回傳活動底下所有 blob key，供刪除活動時排入清理佇列
	ListKeysByEventID(ctx context.Context, eventID int) ([]string, error)
}

type ImageRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewImageRepository(pool *pgxpool.Pool) ImageRepository {
	return &ImageRepositoryImpl{
		pool: pool,
	}
}

const imageColumns = `id, image_id, event_id, user_id, title, description,
	image_key, thumbnail_key, file_size, mime_type, uploaded_at`

func scanImage(row pgx.Row, image *model.Image) error {
	return row.Scan(
		&image.ID,
		&image.ImageID,
		&image.EventID,
		&image.UserID,
		&image.Title,
		&image.Description,
		&image.ImageKey,
		&image.ThumbnailKey,
		&image.FileSize,
		&image.MimeType,
		&image.UploadedAt,
	)
}

func (r *ImageRepositoryImpl) Create(ctx context.Context, image *model.Image) (*model.Image, error) {
	query := `
		INSERT INTO images (image_id, event_id, user_id, title, description,
		                    image_key, thumbnail_key, file_size, mime_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + imageColumns

	err := scanImage(r.pool.QueryRow(ctx, query,
		image.ImageID, image.EventID, image.UserID, image.Title, image.Description,
		image.ImageKey, image.ThumbnailKey, image.FileSize, image.MimeType,
	), image)
	if err != nil {
		return nil, err
	}
	return image, nil
}

func (r *ImageRepositoryImpl) List(ctx context.Context, sub access.Subject, filters model.ImageFilters) ([]*model.Image, error) {
	conds := []string{}
	args := []interface{}{}
	argPos := 1

	// 圖片本身沒有可見性欄位，一律回頭檢查所屬活動
	readable, readableArgs, next := access.ReadableEventsCondition(sub, "e", argPos)
	conds = append(conds, readable)
	args = append(args, readableArgs...)
	argPos = next

	if filters.EventID != nil {
		conds = append(conds, fmt.Sprintf("i.event_id = $%d", argPos))
		args = append(args, *filters.EventID)
		argPos++
	}
	if filters.UserID != nil {
		conds = append(conds, fmt.Sprintf("i.user_id = $%d", argPos))
		args = append(args, *filters.UserID)
		argPos++
	}
	if filters.Search != nil {
		conds = append(conds, fmt.Sprintf("(i.title ILIKE $%d OR i.description ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+*filters.Search+"%")
		argPos++
	}
	if filters.LikedBy != nil {
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM image_likes lb WHERE lb.image_id = i.id AND lb.user_id = $%d)", argPos))
		args = append(args, *filters.LikedBy)
		argPos++
	}

	orderBy := "i.uploaded_at DESC, i.id DESC"
	if filters.OrderByLikes {
		orderBy = "like_count DESC, i.id DESC"
	}

	paging := ""
	if filters.Limit > 0 {
		paging = fmt.Sprintf("LIMIT $%d", argPos)
		args = append(args, filters.Limit)
		argPos++
		if filters.Offset > 0 {
			paging += fmt.Sprintf(" OFFSET $%d", argPos)
			args = append(args, filters.Offset)
			argPos++
		}
	}

	query := fmt.Sprintf(`
		SELECT i.id, i.image_id, i.event_id, i.user_id, i.title, i.description,
		       i.image_key, i.thumbnail_key, i.file_size, i.mime_type, i.uploaded_at,
		       (SELECT COUNT(*) FROM image_likes l WHERE l.image_id = i.id) AS like_count,
		       (SELECT COUNT(*) FROM comments c WHERE c.image_id = i.id) AS comment_count
		FROM images i
		JOIN events e ON e.id = i.event_id
		WHERE %s
		ORDER BY %s
		%s
	`, strings.Join(conds, " AND "), orderBy, paging)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := make([]*model.Image, 0)
	for rows.Next() {
		var image model.Image
		err := rows.Scan(
			&image.ID,
			&image.ImageID,
			&image.EventID,
			&image.UserID,
			&image.Title,
			&image.Description,
			&image.ImageKey,
			&image.ThumbnailKey,
			&image.FileSize,
			&image.MimeType,
			&image.UploadedAt,
			&image.LikeCount,
			&image.CommentCount,
		)
		if err != nil {
			return nil, err
		}
		images = append(images, &image)
	}
	return images, rows.Err()
}

func (r *ImageRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images WHERE id = $1`

	var image model.Image
	err := scanImage(r.pool.QueryRow(ctx, query, id), &image)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrImageNotFound
		}
		return nil, err
	}
	return &image, nil
}

func (r *ImageRepositoryImpl) FindByImageID(ctx context.Context, imageID uuid.UUID) (*model.Image, error) {
	query := `
		SELECT i.id, i.image_id, i.event_id, i.user_id, i.title, i.description,
		       i.image_key, i.thumbnail_key, i.file_size, i.mime_type, i.uploaded_at,
		       (SELECT COUNT(*) FROM image_likes l WHERE l.image_id = i.id) AS like_count,
		       (SELECT COUNT(*) FROM comments c WHERE c.image_id = i.id) AS comment_count
		FROM images i
		WHERE i.image_id = $1
	`

	var image model.Image
	err := r.pool.QueryRow(ctx, query, imageID).Scan(
		&image.ID,
		&image.ImageID,
		&image.EventID,
		&image.UserID,
		&image.Title,
		&image.Description,
		&image.ImageKey,
		&image.ThumbnailKey,
		&image.FileSize,
		&image.MimeType,
		&image.UploadedAt,
		&image.LikeCount,
		&image.CommentCount,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrImageNotFound
		}
		return nil, err
	}
	return &image, nil
}

func (r *ImageRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateImageParams) (*model.Image, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.Title != nil {
		sets = append(sets, fmt.Sprintf("title = $%d", argPos))
		args = append(args, *params.Title)
		argPos++
	}
	if params.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", argPos))
		args = append(args, *params.Description)
		argPos++
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE images
		SET %s
		WHERE id = $%d
		RETURNING `+imageColumns, strings.Join(sets, ", "), argPos)

	var image model.Image
	err := scanImage(r.pool.QueryRow(ctx, query, args...), &image)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrImageNotFound
		}
		return nil, err
	}
	return &image, nil
}

func (r *ImageRepositoryImpl) Delete(ctx context.Context, id int) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrImageNotFound
	}
	return nil
}

func (r *ImageRepositoryImpl) ListKeysByEventID(ctx context.Context, eventID int) ([]string, error) {
	query := `
		SELECT image_key, thumbnail_key
		FROM images
		WHERE event_id = $1
	`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var imageKey string
		var thumbnailKey *string
		if err := rows.Scan(&imageKey, &thumbnailKey); err != nil {
			return nil, err
		}
		keys = append(keys, imageKey)
		if thumbnailKey != nil {
			keys = append(keys, *thumbnailKey)
		}
	}
	return keys, rows.Err()
}
