package model

import (
	"time"

	"github.com/google/uuid"
)

type Image struct {
	ID           int       `json:"id" db:"id"`
	ImageID      uuid.UUID `json:"image_id" db:"image_id"`
	EventID      int       `json:"event_id" db:"event_id"`
	UserID       int       `json:"user_id" db:"user_id"`
	Title        *string   `json:"title,omitempty" db:"title"`
	Description  *string   `json:"description,omitempty" db:"description"`
	ImageKey     string    `json:"image_key" db:"image_key"`
	ThumbnailKey *string   `json:"thumbnail_key,omitempty" db:"thumbnail_key"`
	FileSize     *int64    `json:"file_size,omitempty" db:"file_size"`
	MimeType     *string   `json:"mime_type,omitempty" db:"mime_type"`
	UploadedAt   time.Time `json:"uploaded_at" db:"uploaded_at"`

	LikeCount    int `json:"like_count" db:"-"`
	CommentCount int `json:"comment_count" db:"-"`
}

type UpdateImageParams struct {
	Title       *string
	Description *string
}

type ImageFilters struct {
	EventID *int
	UserID  *int
	Search  *string
	// LikedBy 指定使用者按過讚的圖片，供個人頁使用
	LikedBy *int

	// OrderByLikes 依讚數排序取代預設的上傳時間
	OrderByLikes bool
	// Limit 為 0 時不設上限；Offset 搭配 Limit 分頁
	Limit  int
	Offset int
}

// ImageDetail 圖片詳情，含上傳者與目前使用者的按讚狀態
type ImageDetail struct {
	Image
	User    UserPublic `json:"user"`
	IsLiked bool       `json:"is_liked"`
}

// UploadImageParams 上傳圖片的輸入；檔案內容另外以 io.Reader 傳遞
type UploadImageParams struct {
	EventID     uuid.UUID
	Title       *string
	Description *string
	FileName    string
	MimeType    *string
	FileSize    *int64
}
