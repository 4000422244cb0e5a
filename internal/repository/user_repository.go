package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"event-gallery-api/internal/model"
	apperrors "event-gallery-api/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UpdateUserParams struct {
	Name      *string
	AvatarURL *string
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Search(ctx context.Context, query string, limit int) ([]*model.UserPublic, error)
	Statistics(ctx context.Context, id int) (*model.UserStatistics, error)
	Update(ctx context.Context, id int, params UpdateUserParams) (*model.User, error)
	Delete(ctx context.Context, id int) error
}

type UserRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &UserRepositoryImpl{
		pool: pool,
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (name, email, avatar_url)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, avatar_url, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		user.Name, user.Email, user.AvatarURL,
	).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.AvatarURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id int) (*model.User, error) {
	query := `
		SELECT id, name, email, avatar_url, created_at, updated_at
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.AvatarURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, name, email, avatar_url, created_at, updated_at
		FROM users
		WHERE email = $1 AND deleted_at IS NULL
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.AvatarURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Search(ctx context.Context, query string, limit int) ([]*model.UserPublic, error) {
	sql := `
		SELECT id, name, avatar_url
		FROM users
		WHERE deleted_at IS NULL AND name ILIKE $1
		ORDER BY name ASC, id ASC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, sql, "%"+query+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*model.UserPublic, 0)
	for rows.Next() {
		var user model.UserPublic
		if err := rows.Scan(&user.ID, &user.Name, &user.AvatarURL); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

func (r *UserRepositoryImpl) Statistics(ctx context.Context, id int) (*model.UserStatistics, error) {
	query := `
		SELECT u.id, u.name,
		       (SELECT COUNT(*) FROM events e WHERE e.created_by = u.id) AS events_created,
		       (SELECT COUNT(*) FROM event_participants ep WHERE ep.user_id = u.id) AS events_joined,
		       (SELECT COUNT(*) FROM images i WHERE i.user_id = u.id) AS images_uploaded,
		       (SELECT COUNT(*) FROM image_likes l WHERE l.user_id = u.id) AS images_liked
		FROM users u
		WHERE u.id = $1 AND u.deleted_at IS NULL
	`

	var stats model.UserStatistics
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&stats.UserID,
		&stats.Name,
		&stats.EventsCreated,
		&stats.EventsJoined,
		&stats.ImagesUploaded,
		&stats.ImagesLiked,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &stats, nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, id int, params UpdateUserParams) (*model.User, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *params.Name)
		argPos++
	}
	if params.AvatarURL != nil {
		sets = append(sets, fmt.Sprintf("avatar_url = $%d", argPos))
		args = append(args, *params.AvatarURL)
		argPos++
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	// add updated_at
	sets = append(sets, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now().UTC())
	argPos++

	// add id
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $%d AND deleted_at IS NULL
		RETURNING id, name, email, avatar_url, created_at, updated_at
	`, strings.Join(sets, ", "), argPos)

	var updatedUser model.User
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&updatedUser.ID,
		&updatedUser.Name,
		&updatedUser.Email,
		&updatedUser.AvatarURL,
		&updatedUser.CreatedAt,
		&updatedUser.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &updatedUser, nil
}

func (r *UserRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `
		UPDATE users
		SET deleted_at = $1, updated_at = $2
		WHERE id = $3 AND deleted_at IS NULL
	`

	now := time.Now().UTC()
	result, err := r.pool.Exec(ctx, query, now, now, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
