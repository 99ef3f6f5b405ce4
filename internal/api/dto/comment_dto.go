package dto

import "time"

// CommentCreateRequest posts a comment or a single-level reply.
type CommentCreateRequest struct {
	Content  string `json:"content" binding:"required,min=1,max=110"`
	ParentID *int64 `json:"parent_id"`
}

// CommentUpdateRequest overwrites a comment body.
type CommentUpdateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=110"`
}

// CommentInfo is the comment view.
type CommentInfo struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	VideoID      int64     `json:"video_id"`
	Content      string    `json:"content"`
	ParentID     *int64    `json:"parent_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     *string   `json:"user_name"`
	DisplayName  *string   `json:"display_name"`
	Avatar       *string   `json:"avatar"`
	RepliesCount int64     `json:"replies_count"`
}

// CommentListData is a paged comment listing.
type CommentListData struct {
	Comments   []CommentInfo `json:"comments"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int64         `json:"total_pages"`
}
