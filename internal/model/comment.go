package model

import "time"

// MaxCommentLength caps the comment body, checked before any write.
const MaxCommentLength = 110

// Comment is a comment or a single-level reply on a video. ParentID is nil for
// top-level comments; replies always point at a top-level comment, never at
// another reply.
type Comment struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   int64  `gorm:"not null;index:idx_comments_user_id" json:"user_id"`
	VideoID  int64  `gorm:"not null;index:idx_comments_video_id;index:idx_composite_video_created,priority:1" json:"video_id"`
	Content  string `gorm:"size:110;not null" json:"content"`
	ParentID *int64 `gorm:"index:idx_comments_parent_id" json:"parent_id"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_comments_created_at;index:idx_composite_video_created,priority:2" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User    User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Video   Video     `gorm:"foreignKey:VideoID" json:"video,omitempty"`
	Parent  *Comment  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Replies []Comment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
