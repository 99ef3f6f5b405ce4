package dto

import "time"

// NotificationInfo is one inbox entry.
type NotificationInfo struct {
	ID        int64     `json:"id"`
	ActorID   int64     `json:"actor_id"`
	Type      string    `json:"type"`
	VideoID   *int64    `json:"video_id"`
	CommentID *int64    `json:"comment_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationListData is the paged inbox.
type NotificationListData struct {
	Notifications []NotificationInfo `json:"notifications"`
	Total         int64              `json:"total"`
	Unread        int64              `json:"unread"`
	Page          int                `json:"page"`
	PageSize      int                `json:"page_size"`
	TotalPages    int64              `json:"total_pages"`
}
