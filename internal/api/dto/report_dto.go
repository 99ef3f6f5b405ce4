package dto

import "time"

// ReportCreateRequest files a report against a video.
type ReportCreateRequest struct {
	Reason      string `json:"reason" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

// ReportReviewRequest resolves a pending report.
type ReportReviewRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected"`
}

// ReportInfo is the report view in the admin queue.
type ReportInfo struct {
	ID           int64      `json:"id"`
	ReporterID   int64      `json:"reporter_id"`
	ReporterName *string    `json:"reporter_name"`
	VideoID      int64      `json:"video_id"`
	Reason       string     `json:"reason"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	ReviewerID   *int64     `json:"reviewer_id"`
	ReviewedAt   *time.Time `json:"reviewed_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ReportListData is the paged review queue.
type ReportListData struct {
	Reports    []ReportInfo `json:"reports"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int64        `json:"total_pages"`
}
