package model

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID              int       `json:"id" db:"id"`
	EventID         uuid.UUID `json:"event_id" db:"event_id"`
	Name            string    `json:"name" db:"name"`
	Description     *string   `json:"description,omitempty" db:"description"`
	Location        *string   `json:"location,omitempty" db:"location"`
	Date            time.Time `json:"date" db:"date"`
	IsPrivate       bool      `json:"is_private" db:"is_private"`
	MaxParticipants *int      `json:"max_participants,omitempty" db:"max_participants"`
	InviteCode      string    `json:"invite_code" db:"invite_code"`
	CoverImageKey   *string   `json:"cover_image_key,omitempty" db:"cover_image_key"`
	CreatedBy       int       `json:"created_by" db:"created_by"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`

	ParticipantCount int `json:"participant_count" db:"-"`
}

// HasCapacityFor 檢查目前人數再加上 n 是否仍在上限內；未設定上限時恆為 true
func (e *Event) HasCapacityFor(n int) bool {
	if e.MaxParticipants == nil {
		return true
	}
	return e.ParticipantCount+n <= *e.MaxParticipants
}

type UpdateEventParams struct {
	Name            *string
	Description     *string
	Location        *string
	Date            *time.Time
	IsPrivate       *bool
	MaxParticipants *int
	CoverImageKey   *string
}

type Participant struct {
	ID       int       `json:"id" db:"id"`
	EventID  int       `json:"event_id" db:"event_id"`
	UserID   int       `json:"user_id" db:"user_id"`
	JoinedAt time.Time `json:"joined_at" db:"joined_at"`

	User *UserPublic `json:"user,omitempty" db:"-"`
}

// EventFilters 活動列表/搜尋條件；可見性條件由 access 層另外附加
type EventFilters struct {
	Search    *string
	IsPrivate *bool
	CreatedBy *int
	// InvolvingUser 建立或參加過的活動，供個人頁使用
	InvolvingUser *int
	StartDate     *time.Time
	EndDate       *time.Time

	// Limit 為 0 時不設上限
	Limit int
}

// EventDetail 活動詳情，含建立者與參加者投影
type EventDetail struct {
	Event
	Creator       UserPublic   `json:"creator"`
	Participants  []UserPublic `json:"participants"`
	IsParticipant bool         `json:"is_participant"`
}

// EventStats 活動統計
type EventStats struct {
	ParticipantCount int `json:"participant_count"`
	ImageCount       int `json:"image_count"`
	TotalLikes       int `json:"total_likes"`
	TotalComments    int `json:"total_comments"`
}

// InviteCodeValidation joinByCode 前的預檢結果
type InviteCodeValidation struct {
	Valid   bool    `json:"valid"`
	Event   *Event  `json:"event,omitempty"`
	CanJoin bool    `json:"can_join"`
	Reason  *string `json:"reason,omitempty"`
}

// CreateEventParams 建立活動的輸入；invite code 由 service 產生
type CreateEventParams struct {
	Name            string
	Description     *string
	Location        *string
	Date            time.Time
	IsPrivate       bool
	MaxParticipants *int
}
