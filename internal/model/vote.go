package model

import "time"

// Vote types.
const (
	VoteLike    = "like"
	VoteDislike = "dislike"
)

// Vote is a like/dislike row. At most one row exists per (video, account)
// pair; switching choice overwrites Type in place, toggling the active choice
// deletes the row.
type Vote struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  int64  `gorm:"not null;uniqueIndex:uq_user_video_vote;index:idx_votes_user_id" json:"user_id"`
	VideoID int64  `gorm:"not null;uniqueIndex:uq_user_video_vote;index:idx_votes_video_id" json:"video_id"`
	Type    string `gorm:"size:10;not null" json:"type"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Video Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

func (Vote) TableName() string {
	return "video_likes"
}
