package repository

import (
	"context"

	"event-gallery-api/internal/model"
	apperrors "event-gallery-api/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) (*model.Comment, error)
	FindByID(ctx context.Context, id int) (*model.Comment, error)
	ListByImageID(ctx context.Context, imageID int) ([]*model.Comment, error)
	UpdateContent(ctx context.Context, id int, content string) (*model.Comment, error)
	Delete(ctx context.Context, id int) error
}

type CommentRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &CommentRepositoryImpl{
		pool: pool,
	}
}

func (r *CommentRepositoryImpl) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	query := `
		INSERT INTO comments (image_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, image_id, user_id, content, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		comment.ImageID, comment.UserID, comment.Content,
	).Scan(
		&comment.ID,
		&comment.ImageID,
		&comment.UserID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *CommentRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Comment, error) {
	query := `
		SELECT id, image_id, user_id, content, created_at, updated_at
		FROM comments
		WHERE id = $1
	`

	var comment model.Comment
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.ImageID,
		&comment.UserID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepositoryImpl) ListByImageID(ctx context.Context, imageID int) ([]*model.Comment, error) {
	query := `
		SELECT c.id, c.image_id, c.user_id, c.content, c.created_at, c.updated_at,
		       u.id, u.name, u.avatar_url
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.image_id = $1
		ORDER BY c.created_at DESC, c.id DESC
	`

	rows, err := r.pool.Query(ctx, query, imageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]*model.Comment, 0)
	for rows.Next() {
		var comment model.Comment
		var user model.UserPublic
		err := rows.Scan(
			&comment.ID,
			&comment.ImageID,
			&comment.UserID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.UpdatedAt,
			&user.ID,
			&user.Name,
			&user.AvatarURL,
		)
		if err != nil {
			return nil, err
		}
		comment.User = &user
		comments = append(comments, &comment)
	}
	return comments, rows.Err()
}

func (r *CommentRepositoryImpl) UpdateContent(ctx context.Context, id int, content string) (*model.Comment, error) {
	query := `
		UPDATE comments
		SET content = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, image_id, user_id, content, created_at, updated_at
	`

	var comment model.Comment
	err := r.pool.QueryRow(ctx, query, content, id).Scan(
		&comment.ID,
		&comment.ImageID,
		&comment.UserID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepositoryImpl) Delete(ctx context.Context, id int) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}
