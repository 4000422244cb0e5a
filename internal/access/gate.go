package access

import (
	"context"

	"event-gallery-api/internal/model"
	apperrors "event-gallery-api/pkg/app_errors"
)

// MembershipChecker 查詢 (event, user) 是否存在參加者資料列
type MembershipChecker interface {
	Exists(ctx context.Context, eventID, userID int) (bool, error)
}

// Gate 把純 policy 接上實際的參加者查詢，
// 所有單一資源的授權檢查都走這裡，不各自重寫分支。
type Gate struct {
	memberships MembershipChecker
}

func NewGate(memberships MembershipChecker) *Gate {
	return &Gate{memberships: memberships}
}

// SnapshotFor 組出 policy 需要的活動狀態。
// 建立者與匿名主體不需查參加者資料列。
func (g *Gate) SnapshotFor(ctx context.Context, sub Subject, event *model.Event) (Snapshot, error) {
	snap := Snapshot{
		CreatorID: event.CreatedBy,
		IsPrivate: event.IsPrivate,
	}
	if sub.IsAnonymous() || sub.UserID() == event.CreatedBy {
		return snap, nil
	}
	ok, err := g.memberships.Exists(ctx, event.ID, sub.UserID())
	if err != nil {
		return Snapshot{}, err
	}
	snap.IsParticipant = ok
	return snap, nil
}

func (g *Gate) CanRead(ctx context.Context, sub Subject, event *model.Event) (bool, error) {
	snap, err := g.SnapshotFor(ctx, sub, event)
	if err != nil {
		return false, err
	}
	return CanRead(sub, snap), nil
}

func (g *Gate) RequireRead(ctx context.Context, sub Subject, event *model.Event) error {
	ok, err := g.CanRead(ctx, sub, event)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrAccessDenied
	}
	return nil
}

func (g *Gate) RequireEngage(ctx context.Context, sub Subject, event *model.Event) error {
	snap, err := g.SnapshotFor(ctx, sub, event)
	if err != nil {
		return err
	}
	if !CanEngage(sub, snap) {
		return apperrors.ErrAccessDenied
	}
	return nil
}

func (g *Gate) RequireContribute(ctx context.Context, sub Subject, event *model.Event) error {
	snap, err := g.SnapshotFor(ctx, sub, event)
	if err != nil {
		return err
	}
	if !CanContribute(sub, snap) {
		return apperrors.ErrAccessDenied
	}
	return nil
}
