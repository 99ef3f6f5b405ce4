package dto

import "time"

// VideoUploadRequest is the metadata half of the multipart upload.
type VideoUploadRequest struct {
	Title       string `form:"title" binding:"required,min=1,max=200"`
	Description string `form:"description" binding:"omitempty"`
}

// VideoUpdateRequest edits a video's metadata.
type VideoUpdateRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
}

// AuthorBrief is the author summary nested in video views.
type AuthorBrief struct {
	ID          int64   `json:"id"`
	Username    string  `json:"user_name"`
	DisplayName string  `json:"display_name"`
	Avatar      *string `json:"avatar"`
	IsVerified  bool    `json:"is_verified"`
}

// VideoInfo is the video detail view.
type VideoInfo struct {
	ID           int64        `json:"id"`
	AuthorID     int64        `json:"author_id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	PlayURL      string       `json:"play_url"`
	CoverURL     string       `json:"cover_url"`
	FileSize     int64        `json:"file_size"`
	FileFormat   string       `json:"file_format"`
	Status       string       `json:"status"`
	ViewCount    int64        `json:"view_count"`
	LikeCount    int64        `json:"like_count"`
	DislikeCount int64        `json:"dislike_count"`
	CommentCount int64        `json:"comment_count"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	Author       *AuthorBrief `json:"author,omitempty"`
}

// VideoListData is a paged video listing.
type VideoListData struct {
	Videos     []VideoInfo `json:"videos"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int64       `json:"total_pages"`
}
