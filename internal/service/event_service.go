package service

import (
	"context"
	"errors"

	"event-gallery-api/internal/access"
	"event-gallery-api/internal/cache"
	"event-gallery-api/internal/invite"
	"event-gallery-api/internal/model"
	"event-gallery-api/internal/queue"
	"event-gallery-api/internal/repository"
	apperrors "event-gallery-api/pkg/app_errors"
	"event-gallery-api/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type EventService interface {
	// Create 建立活動並在同一交易內寫入建立者的參加者資料列
	Create(ctx context.Context, params model.CreateEventParams, creatorID int) (*model.EventDetail, error)
	List(ctx context.Context, sub access.Subject, filters model.EventFilters) ([]*model.Event, error)
	GetByEventID(ctx context.Context, sub access.Subject, eventID uuid.UUID) (*model.EventDetail, error)
	Update(ctx context.Context, sub access.Subject, eventID uuid.UUID, params model.UpdateEventParams) (*model.Event, error)
	Delete(ctx context.Context, sub access.Subject, eventID uuid.UUID) error

	Join(ctx context.Context, eventID uuid.UUID, userID int) (*model.Event, error)
	JoinByCode(ctx context.Context, code string, userID int) (*model.Event, error)
	Leave(ctx context.Context, eventID uuid.UUID, userID int) error
	Participants(ctx context.Context, sub access.Subject, eventID uuid.UUID) ([]*model.Participant, error)
	ValidateInviteCode(ctx context.Context, code string) (*model.InviteCodeValidation, error)
	Stats(ctx context.Context, sub access.Subject, eventID uuid.UUID) (*model.EventStats, error)
}

type EventServiceImpl struct {
	pool            *pgxpool.Pool
	repo            repository.EventRepository
	participantRepo repository.ParticipantRepository
	userRepo        repository.UserRepository
	imageRepo       repository.ImageRepository
	gate            *access.Gate
	statsCache      cache.EventStatsCache
	cleanupQueue    queue.CleanupQueue

	// genCode 可注入以便測試製造邀請碼碰撞
	genCode func() string
}

func NewEventService(
	pool *pgxpool.Pool,
	repo repository.EventRepository,
	participantRepo repository.ParticipantRepository,
	userRepo repository.UserRepository,
	imageRepo repository.ImageRepository,
	gate *access.Gate,
	statsCache cache.EventStatsCache,
	cleanupQueue queue.CleanupQueue,
) EventService {
	return &EventServiceImpl{
		pool:            pool,
		repo:            repo,
		participantRepo: participantRepo,
		userRepo:        userRepo,
		imageRepo:       imageRepo,
		gate:            gate,
		statsCache:      statsCache,
		cleanupQueue:    cleanupQueue,
		genCode:         invite.Generate,
	}
}

// WithCodeGenerator 換掉邀請碼產生器，測試用
func (s *EventServiceImpl) WithCodeGenerator(gen func() string) *EventServiceImpl {
	s.genCode = gen
	return s
}

func (s *EventServiceImpl) Create(ctx context.Context, params model.CreateEventParams, creatorID int) (*model.EventDetail, error) {
	if params.Name == "" {
		return nil, apperrors.ErrInvalidInput
	}
	if params.MaxParticipants != nil && *params.MaxParticipants <= 0 {
		return nil, apperrors.ErrInvalidInput
	}

	// 邀請碼唯一性靠 unique index 擋，撞到就換一組重來。
	// 事前查詢再插入的寫法在併發下會漏，不可信
	for {
		event, err := s.createOnce(ctx, params, creatorID)
		if errors.Is(err, apperrors.ErrInviteCodeTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return s.detailFor(ctx, access.User(creatorID), event)
	}
}

func (s *EventServiceImpl) createOnce(ctx context.Context, params model.CreateEventParams, creatorID int) (*model.Event, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	event := &model.Event{
		EventID:         uuid.New(),
		Name:            params.Name,
		Description:     params.Description,
		Location:        params.Location,
		Date:            params.Date,
		IsPrivate:       params.IsPrivate,
		MaxParticipants: params.MaxParticipants,
		InviteCode:      s.genCode(),
		CreatedBy:       creatorID,
	}

	created, err := s.repo.Create(ctx, tx, event)
	if err != nil {
		return nil, err
	}

	// 建立者同時取得一列 membership；結構上的 created_by 與這一列是雙重保險
	if _, err := s.participantRepo.Insert(ctx, tx, created.ID, creatorID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	created.ParticipantCount = 1
	return created, nil
}

func (s *EventServiceImpl) List(ctx context.Context, sub access.Subject, filters model.EventFilters) ([]*model.Event, error) {
	return s.repo.List(ctx, sub, filters)
}

func (s *EventServiceImpl) GetByEventID(ctx context.Context, sub access.Subject, eventID uuid.UUID) (*model.EventDetail, error) {
	event, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.RequireRead(ctx, sub, event); err != nil {
		return nil, err
	}
	return s.detailFor(ctx, sub, event)
}

func (s *EventServiceImpl) detailFor(ctx context.Context, sub access.Subject, event *model.Event) (*model.EventDetail, error) {
	creator, err := s.userRepo.FindByID(ctx, event.CreatedBy)
	if err != nil {
		return nil, err
	}

	participants, err := s.participantRepo.ListByEventID(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	detail := &model.EventDetail{
		Event:        *event,
		Creator:      creator.Public(),
		Participants: make([]model.UserPublic, 0, len(participants)),
	}
	detail.ParticipantCount = len(participants)
	for _, p := range participants {
		if p.User != nil {
			detail.Participants = append(detail.Participants, *p.User)
		}
		if !sub.IsAnonymous() && p.UserID == sub.UserID() {
			detail.IsParticipant = true
		}
	}
	return detail, nil
}

func (s *EventServiceImpl) Update(ctx context.Context, sub access.Subject, eventID uuid.UUID, params model.UpdateEventParams) (*model.Event, error) {
	event, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if sub.IsAnonymous() || sub.UserID() != event.CreatedBy {
		return nil, apperrors.ErrAccessDenied
	}
	if params.MaxParticipants != nil && *params.MaxParticipants <= 0 {
		return nil, apperrors.ErrInvalidInput
	}
	return s.repo.Update(ctx, event.ID, params)
}

func (s *EventServiceImpl) Delete(ctx context.Context, sub access.Subject, eventID uuid.UUID) error {
	event, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return err
	}
	if sub.IsAnonymous() || sub.UserID() != event.CreatedBy {
		return apperrors.ErrAccessDenied
	}

	// 先收集 blob key，資料列刪掉後就查不到了
	keys, err := s.imageRepo.ListKeysByEventID(ctx, event.ID)
	if err != nil {
		return err
	}
	if event.CoverImageKey != nil {
		keys = append(keys, *event.CoverImageKey)
	}

	// DELETE 會 cascade 到參加者、圖片、按讚、留言
	if err := s.repo.Delete(ctx, event.ID); err != nil {
		return err
	}

	if err := s.invalidateStats(ctx, event.ID); err != nil {
		logger.WithComponent("service").Warn("invalidate stats failed", zap.Int("event_id", event.ID), zap.Error(err))
	}

	if len(keys) > 0 {
		if err := s.cleanupQueue.PublishCleanup(ctx, &queue.CleanupTask{Keys: keys}); err != nil {
			// 資料庫已刪成功，檔案清理失敗只記 log，不回滾
			logger.WithComponent("service").Error("publish cleanup failed", zap.Int("event_id", event.ID), zap.Error(err))
		}
	}
	return nil
}

func (s *EventServiceImpl) Join(ctx context.Context, eventID uuid.UUID, userID int) (*model.Event, error) {
	event, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return s.join(ctx, event, userID)
}

func (s *EventServiceImpl) join(ctx context.Context, event *model.Event, userID int) (*model.Event, error) {
	// 先回報重複加入，再談容量；(event_id, user_id) 的 unique constraint
	// 是併發下的最後防線，這個查詢只決定錯誤順序
	exists, err := s.participantRepo.Exists(ctx, event.ID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrAlreadyParticipant
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// 鎖住活動列，讓「數人頭 + 插入」成為單一原子動作，容量不會被併發加入超出
	locked, err := s.repo.FindForUpdate(ctx, tx, event.ID)
	if err != nil {
		return nil, err
	}

	count, err := s.participantRepo.CountInTx(ctx, tx, locked.ID)
	if err != nil {
		return nil, err
	}
	locked.ParticipantCount = count
	if !locked.HasCapacityFor(1) {
		return nil, apperrors.ErrEventFull
	}

	if _, err := s.participantRepo.Insert(ctx, tx, locked.ID, userID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if err := s.invalidateStats(ctx, locked.ID); err != nil {
		logger.WithComponent("service").Warn("invalidate stats failed", zap.Int("event_id", locked.ID), zap.Error(err))
	}

	locked.ParticipantCount = count + 1
	return locked, nil
}

func (s *EventServiceImpl) JoinByCode(ctx context.Context, code string, userID int) (*model.Event, error) {
	if !invite.IsWellFormed(code) {
		return nil, apperrors.ErrInvalidInput
	}
	event, err := s.repo.FindByInviteCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.join(ctx, event, userID)
}

func (s *EventServiceImpl) Leave(ctx context.Context, eventID uuid.UUID, userID int) error {
	event, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return err
	}
	// 不看 membership 資料列，建立者永遠不能離開
	if event.CreatedBy == userID {
		return apperrors.ErrCreatorCannotLeave
	}
	if err := s.participantRepo.Delete(ctx, event.ID, userID); err != nil {
		return err
	}
	if err := s.invalidateStats(ctx, event.ID); err != nil {
		logger.WithComponent("service").Warn("invalidate stats failed", zap.Int("event_id", event.ID), zap.Error(err))
	}
	return nil
}

func (s *EventServiceImpl) Participants(ctx context.Context, sub access.Subject, eventID uuid.UUID) ([]*model.Participant, error) {
	event, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.RequireRead(ctx, sub, event); err != nil {
		return nil, err
	}
	return s.participantRepo.ListByEventID(ctx, event.ID)
}

func (s *EventServiceImpl) ValidateInviteCode(ctx context.Context, code string) (*model.InviteCodeValidation, error) {
	invalid := "Invalid invite code"
	if !invite.IsWellFormed(code) {
		return &model.InviteCodeValidation{Valid: false, Reason: &invalid}, nil
	}

	event, err := s.repo.FindByInviteCode(ctx, code)
	if errors.Is(err, apperrors.ErrInvalidInviteCode) {
		return &model.InviteCodeValidation{Valid: false, Reason: &invalid}, nil
	}
	if err != nil {
		return nil, err
	}

	count, err := s.participantRepo.Count(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	event.ParticipantCount = count

	if !event.HasCapacityFor(1) {
		full := "Event is full"
		return &model.InviteCodeValidation{Valid: true, Event: event, CanJoin: false, Reason: &full}, nil
	}
	return &model.InviteCodeValidation{Valid: true, Event: event, CanJoin: true}, nil
}

func (s *EventServiceImpl) Stats(ctx context.Context, sub access.Subject, eventID uuid.UUID) (*model.EventStats, error) {
	event, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.RequireRead(ctx, sub, event); err != nil {
		return nil, err
	}

	if s.statsCache != nil {
		stats, err := s.statsCache.Get(ctx, event.ID)
		if err == nil {
			return stats, nil
		}
		if !errors.Is(err, cache.ErrStatsMiss) {
			logger.WithComponent("service").Warn("stats cache read failed", zap.Int("event_id", event.ID), zap.Error(err))
		}
	}

	stats, err := s.repo.Stats(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	if s.statsCache != nil {
		if err := s.statsCache.Set(ctx, event.ID, stats); err != nil {
			logger.WithComponent("service").Warn("stats cache write failed", zap.Int("event_id", event.ID), zap.Error(err))
		}
	}
	return stats, nil
}

func (s *EventServiceImpl) invalidateStats(ctx context.Context, eventID int) error {
	if s.statsCache == nil {
		return nil
	}
	return s.statsCache.Invalidate(ctx, eventID)
}
