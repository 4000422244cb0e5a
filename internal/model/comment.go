package model

import "time"

type Comment struct {
	ID        int       `json:"id" db:"id"`
	ImageID   int       `json:"image_id" db:"image_id"`
	UserID    int       `json:"user_id" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	User *UserPublic `json:"user,omitempty" db:"-"`
}

type Like struct {
	ID        int       `json:"id" db:"id"`
	ImageID   int       `json:"image_id" db:"image_id"`
	UserID    int       `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
