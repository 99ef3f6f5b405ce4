package dto

// SearchVideoRequest is the search query.
type SearchVideoRequest struct {
	Query    string `form:"q" binding:"required,min=1,max=200"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// SearchVideoData is the paged search result.
type SearchVideoData struct {
	Videos     []VideoInfo `json:"videos"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int64       `json:"total_pages"`
	Source     string      `json:"source"` // "elasticsearch" or "database"
}
