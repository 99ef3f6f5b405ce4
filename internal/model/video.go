package model

import "time"

// Video lifecycle states. A soft-deleted row stays in the table and keeps its
// storage objects; a purged video has no row at all.
const (
	VideoStatusPublished = "published"
	VideoStatusDeleted   = "deleted"
)

// Video is an uploaded video row.
type Video struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	AuthorID     int64  `gorm:"not null;index:idx_videos_author_id;index:idx_composite_author_status" json:"author_id"`
	Title        string `gorm:"size:200;not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	PlayURL      string `gorm:"size:500" json:"play_url"`
	CoverURL     string `gorm:"size:500" json:"cover_url"`
	VideoObject  string `gorm:"size:500" json:"-"`
	CoverObject  string `gorm:"size:500" json:"-"`
	FileSize     int64  `gorm:"default:0" json:"file_size"`
	FileFormat   string `gorm:"size:20" json:"file_format"`
	Status       string `gorm:"size:20;default:'published';index:idx_videos_status;index:idx_composite_author_status" json:"status"`
	ViewCount    int64  `gorm:"default:0" json:"view_count"`
	LikeCount    int64  `gorm:"default:0" json:"like_count"`
	DislikeCount int64  `gorm:"default:0" json:"dislike_count"`
	CommentCount int64  `gorm:"default:0" json:"comment_count"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_videos_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Author   User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Comments []Comment `gorm:"foreignKey:VideoID" json:"comments,omitempty"`
	Votes    []Vote    `gorm:"foreignKey:VideoID" json:"votes,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}
