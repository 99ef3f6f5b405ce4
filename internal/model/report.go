package model

import "time"

// Report statuses. A single closed vocabulary: pending reports await review,
// accepted reports purge the target video, rejected reports close with no
// side effect.
const (
	ReportStatusPending  = "pending"
	ReportStatusAccepted = "accepted"
	ReportStatusRejected = "rejected"
)

// Report is a user-filed complaint against a video.
type Report struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ReporterID  int64  `gorm:"not null;index:idx_reports_reporter_id" json:"reporter_id"`
	VideoID     int64  `gorm:"not null;index:idx_reports_video_id" json:"video_id"`
	Reason      string `gorm:"size:100;not null" json:"reason"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"size:20;not null;default:'pending';index:idx_reports_status" json:"status"`

	ReviewerID *int64     `json:"reviewer_id"`
	ReviewedAt *time.Time `json:"reviewed_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index:idx_reports_created_at" json:"created_at"`

	Reporter User  `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	Video    Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

func (Report) TableName() string {
	return "reports"
}
