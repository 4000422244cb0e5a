package model

import "time"

type User struct {
	ID        int        `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Email     string     `json:"email" db:"email"`
	AvatarURL *string    `json:"avatar_url,omitempty" db:"avatar_url"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// UserPublic 對外公開的使用者投影，不含 email
type UserPublic struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

func (u *User) Public() UserPublic {
	return UserPublic{
		ID:        u.ID,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
}

// UserStatistics 使用者活動量統計
type UserStatistics struct {
	UserID         int    `json:"user_id"`
	Name           string `json:"name"`
	EventsCreated  int    `json:"events_created"`
	EventsJoined   int    `json:"events_joined"`
	ImagesUploaded int    `json:"images_uploaded"`
	ImagesLiked    int    `json:"images_liked"`
}
