package dto

import "time"

// UserInfo is the public profile view.
type UserInfo struct {
	ID          int64     `json:"id"`
	Username    string    `json:"user_name"`
	DisplayName string    `json:"display_name"`
	Avatar      *string   `json:"avatar"`
	Role        string    `json:"role"`
	IsVerified  bool      `json:"is_verified"`
	IsBugHunter bool      `json:"is_bug_hunter"`
	IsBanned    bool      `json:"is_banned"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserUpdateRequest edits the caller's own profile (or any profile, for an
// admin).
type UserUpdateRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,min=1,max=255"`
	Avatar      *string `json:"avatar" binding:"omitempty,max=500"`
}

// UserListData is a paged admin listing of profiles.
type UserListData struct {
	Users      []UserInfo `json:"users"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int64      `json:"total_pages"`
}
