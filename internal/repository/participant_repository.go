package repository

import (
	"context"

	"event-gallery-api/internal/model"
	apperrors "event-gallery-api/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// (event_id, user_id) 的 unique constraint 是併發 join 的最後防線
const participantPairConstraint = "event_participants_event_id_user_id_key"

type ParticipantRepository interface {
	// Insert 新增參加者資料列；同一組 (event, user) 已存在時回傳 ErrAlreadyParticipant
	Insert(ctx context.Context, tx pgx.Tx, eventID, userID int) (*model.Participant, error)
	// Delete 移除參加者資料列；不存在時回傳 ErrNotParticipant
	Delete(ctx context.Context, eventID, userID int) error
	Exists(ctx context.Context, eventID, userID int) (bool, error)
	Count(ctx context.Context, eventID int) (int, error)
	// CountInTx 在持有活動列鎖的交易內計數，供容量檢查使用
	CountInTx(ctx context.Context, tx pgx.Tx, eventID int) (int, error)
	// ListByEventID 依 joined_at 升冪回傳參加者與公開使用者投影
	ListByEventID(ctx context.Context, eventID int) ([]*model.Participant, error)
}

type ParticipantRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewParticipantRepository(pool *pgxpool.Pool) ParticipantRepository {
	return &ParticipantRepositoryImpl{
		pool: pool,
	}
}

func (r *ParticipantRepositoryImpl) Insert(ctx context.Context, tx pgx.Tx, eventID, userID int) (*model.Participant, error) {
	query := `
		INSERT INTO event_participants (event_id, user_id)
		VALUES ($1, $2)
		RETURNING id, event_id, user_id, joined_at
	`

	var p model.Participant
	err := tx.QueryRow(ctx, query, eventID, userID).Scan(
		&p.ID,
		&p.EventID,
		&p.UserID,
		&p.JoinedAt,
	)
	if err != nil {
		if uniqueViolation(err, participantPairConstraint) {
			return nil, apperrors.ErrAlreadyParticipant
		}
		return nil, err
	}
	return &p, nil
}

func (r *ParticipantRepositoryImpl) Delete(ctx context.Context, eventID, userID int) error {
	query := `
		DELETE FROM event_participants
		WHERE event_id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query, eventID, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotParticipant
	}
	return nil
}

func (r *ParticipantRepositoryImpl) Exists(ctx context.Context, eventID, userID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM event_participants
			WHERE event_id = $1 AND user_id = $2
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, eventID, userID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ParticipantRepositoryImpl) Count(ctx context.Context, eventID int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM event_participants WHERE event_id = $1`, eventID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ParticipantRepositoryImpl) CountInTx(ctx context.Context, tx pgx.Tx, eventID int) (int, error) {
	var count int
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM event_participants WHERE event_id = $1`, eventID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ParticipantRepositoryImpl) ListByEventID(ctx context.Context, eventID int) ([]*model.Participant, error) {
	query := `
		SELECT p.id, p.event_id, p.user_id, p.joined_at, u.id, u.name, u.avatar_url
		FROM event_participants p
		JOIN users u ON u.id = p.user_id
		WHERE p.event_id = $1
		ORDER BY p.joined_at ASC, p.id ASC
	`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := make([]*model.Participant, 0)
	for rows.Next() {
		var p model.Participant
		var u model.UserPublic
		err := rows.Scan(
			&p.ID,
			&p.EventID,
			&p.UserID,
			&p.JoinedAt,
			&u.ID,
			&u.Name,
			&u.AvatarURL,
		)
		if err != nil {
			return nil, err
		}
		p.User = &u
		participants = append(participants, &p)
	}
	return participants, rows.Err()
}
