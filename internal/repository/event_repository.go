package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"event-gallery-api/internal/access"
	"event-gallery-api/internal/model"
	apperrors "event-gallery-api/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// 邀請碼既要全域唯一也要能被併發建立撞到後重試，
// 唯一性由這個 constraint 保證，事前檢查不可靠
const inviteCodeConstraint = "events_invite_code_key"

type EventRepository interface {
	// Create 在交易內插入活動；invite code 撞到 unique index 時回傳 ErrInviteCodeTaken
	Create(ctx context.Context, tx pgx.Tx, event *model.Event) (*model.Event, error)
	List(ctx context.Context, sub access.Subject, filters model.EventFilters) ([]*model.Event, error)
	FindByID(ctx context.Context, id int) (*model.Event, error)
	FindByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error)
	FindByInviteCode(ctx context.Context, code string) (*model.Event, error)
	// FindForUpdate 鎖住活動列，供容量檢查與加入在同一交易內完成
	FindForUpdate(ctx context.Context, tx pgx.Tx, id int) (*model.Event, error)
	Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error)
	Delete(ctx context.Context, id int) error
	Stats(ctx context.Context, id int) (*model.EventStats, error)
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

const eventColumns = `id, event_id, name, description, location, date, is_private,
	max_participants, invite_code, cover_image_key, created_by, created_at, updated_at`

func scanEvent(row pgx.Row, event *model.Event) error {
	return row.Scan(
		&event.ID,
		&event.EventID,
		&event.Name,
		&event.Description,
		&event.Location,
		&event.Date,
		&event.IsPrivate,
		&event.MaxParticipants,
		&event.InviteCode,
		&event.CoverImageKey,
		&event.CreatedBy,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
}

func (r *EventRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, event *model.Event) (*model.Event, error) {
	query := `
		INSERT INTO events (event_id, name, description, location, date, is_private,
		                    max_participants, invite_code, cover_image_key, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + eventColumns

	err := scanEvent(tx.QueryRow(ctx, query,
		event.EventID, event.Name, event.Description, event.Location, event.Date,
		event.IsPrivate, event.MaxParticipants, event.InviteCode, event.CoverImageKey, event.CreatedBy,
	), event)
	if err != nil {
		if uniqueViolation(err, inviteCodeConstraint) {
			return nil, apperrors.ErrInviteCodeTaken
		}
		return nil, err
	}
	return event, nil
}

func (r *EventRepositoryImpl) List(ctx context.Context, sub access.Subject, filters model.EventFilters) ([]*model.Event, error) {
	conds := []string{}
	args := []interface{}{}
	argPos := 1

	// 可見性條件一律附加，與單筆檢查共用同一份定義
	readable, readableArgs, next := access.ReadableEventsCondition(sub, "e", argPos)
	conds = append(conds, readable)
	args = append(args, readableArgs...)
	argPos = next

	if filters.Search != nil {
		conds = append(conds, fmt.Sprintf(
			"(e.name ILIKE $%d OR e.description ILIKE $%d OR e.location ILIKE $%d)",
			argPos, argPos, argPos))
		args = append(args, "%"+*filters.Search+"%")
		argPos++
	}
	if filters.IsPrivate != nil {
		conds = append(conds, fmt.Sprintf("e.is_private = $%d", argPos))
		args = append(args, *filters.IsPrivate)
		argPos++
	}
	if filters.CreatedBy != nil {
		conds = append(conds, fmt.Sprintf("e.created_by = $%d", argPos))
		args = append(args, *filters.CreatedBy)
		argPos++
	}
	if filters.InvolvingUser != nil {
		conds = append(conds, fmt.Sprintf(`(e.created_by = $%d OR EXISTS (
			SELECT 1 FROM event_participants ep2 WHERE ep2.event_id = e.id AND ep2.user_id = $%d
		))`, argPos, argPos))
		args = append(args, *filters.InvolvingUser)
		argPos++
	}
	if filters.StartDate != nil {
		conds = append(conds, fmt.Sprintf("e.date >= $%d", argPos))
		args = append(args, *filters.StartDate)
		argPos++
	}
	if filters.EndDate != nil {
		conds = append(conds, fmt.Sprintf("e.date <= $%d", argPos))
		args = append(args, *filters.EndDate)
		argPos++
	}

	limit := ""
	if filters.Limit > 0 {
		limit = fmt.Sprintf("LIMIT $%d", argPos)
		args = append(args, filters.Limit)
		argPos++
	}

	query := fmt.Sprintf(`
		SELECT e.id, e.event_id, e.name, e.description, e.location, e.date, e.is_private,
		       e.max_participants, e.invite_code, e.cover_image_key, e.created_by,
		       e.created_at, e.updated_at,
		       (SELECT COUNT(*) FROM event_participants ep WHERE ep.event_id = e.id) AS participant_count
		FROM events e
		WHERE %s
		ORDER BY e.date DESC, e.id DESC
		%s
	`, strings.Join(conds, " AND "), limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		var event model.Event
		err := rows.Scan(
			&event.ID,
			&event.EventID,
			&event.Name,
			&event.Description,
			&event.Location,
			&event.Date,
			&event.IsPrivate,
			&event.MaxParticipants,
			&event.InviteCode,
			&event.CoverImageKey,
			&event.CreatedBy,
			&event.CreatedAt,
			&event.UpdatedAt,
			&event.ParticipantCount,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, &event)
	}
	return events, rows.Err()
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var event model.Event
	err := scanEvent(r.pool.QueryRow(ctx, query, id), &event)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) FindByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE event_id = $1`

	var event model.Event
	err := scanEvent(r.pool.QueryRow(ctx, query, eventID), &event)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) FindByInviteCode(ctx context.Context, code string) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE invite_code = $1`

	var event model.Event
	err := scanEvent(r.pool.QueryRow(ctx, query, code), &event)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrInvalidInviteCode
		}
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) FindForUpdate(ctx context.Context, tx pgx.Tx, id int) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`

	var event model.Event
	err := scanEvent(tx.QueryRow(ctx, query, id), &event)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if params.Name != nil {
		addSet("name", *params.Name)
	}
	if params.Description != nil {
		addSet("description", *params.Description)
	}
	if params.Location != nil {
		addSet("location", *params.Location)
	}
	if params.Date != nil {
		addSet("date", *params.Date)
	}
	if params.IsPrivate != nil {
		addSet("is_private", *params.IsPrivate)
	}
	if params.MaxParticipants != nil {
		addSet("max_participants", *params.MaxParticipants)
	}
	if params.CoverImageKey != nil {
		addSet("cover_image_key", *params.CoverImageKey)
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
		UPDATE events
		SET %s
		WHERE id = $%d
		RETURNING `+eventColumns, strings.Join(sets, ", "), argPos)

	var event model.Event
	err := scanEvent(r.pool.QueryRow(ctx, query, args...), &event)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// Delete 硬刪除；參加者、圖片、按讚、留言由 schema 的 ON DELETE CASCADE 一併清掉，
// 不會留下指向已刪活動的 membership
func (r *EventRepositoryImpl) Delete(ctx context.Context, id int) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

func (r *EventRepositoryImpl) Stats(ctx context.Context, id int) (*model.EventStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM event_participants ep WHERE ep.event_id = e.id),
			(SELECT COUNT(*) FROM images i WHERE i.event_id = e.id),
			(SELECT COUNT(*) FROM image_likes l JOIN images i ON i.id = l.image_id WHERE i.event_id = e.id),
			(SELECT COUNT(*) FROM comments c JOIN images i ON i.id = c.image_id WHERE i.event_id = e.id)
		FROM events e
		WHERE e.id = $1
	`

	var stats model.EventStats
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&stats.ParticipantCount,
		&stats.ImageCount,
		&stats.TotalLikes,
		&stats.TotalComments,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return &stats, nil
}
