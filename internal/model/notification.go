package model

import "time"

// Notification event types.
const (
	NotificationVideoComment   = "video_comment"
	NotificationCommentReply   = "comment_reply"
	NotificationReportReviewed = "report_reviewed"
)

// Notification is a materialised per-account event row, written by the
// notification worker from the event stream.
type Notification struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64  `gorm:"not null;index:idx_notifications_user_id" json:"user_id"`
	ActorID   int64  `gorm:"not null" json:"actor_id"`
	Type      string `gorm:"size:32;not null" json:"type"`
	VideoID   *int64 `json:"video_id"`
	CommentID *int64 `json:"comment_id"`
	Message   string `gorm:"size:500" json:"message"`
	IsRead    bool   `gorm:"not null;default:false;index:idx_notifications_is_read" json:"is_read"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_notifications_created_at" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
