package model

import "time"

// Account roles.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// BannedHandle is the fixed handle written over a banned account's username.
// Uniqueness of usernames is enforced at registration time, not by the column,
// so any number of banned rows may carry the sentinel.
const BannedHandle = "banned_user"

// User is an account profile row.
type User struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserName    string  `gorm:"size:255;not null;index:idx_users_user_name" json:"user_name"`
	DisplayName string  `gorm:"size:255;not null" json:"display_name"`
	Email       string  `gorm:"size:255;not null;uniqueIndex" json:"-"`
	Password    string  `gorm:"size:255;not null" json:"-"`
	Avatar      *string `gorm:"size:500" json:"avatar"`
	Role        string  `gorm:"size:32;not null;default:'user'" json:"role"`
	IsVerified  bool    `gorm:"not null;default:false" json:"is_verified"`
	IsBugHunter bool    `gorm:"not null;default:false" json:"is_bug_hunter"`
	IsBanned    bool    `gorm:"not null;default:false;index:idx_users_is_banned" json:"is_banned"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Videos   []Video   `gorm:"foreignKey:AuthorID" json:"videos,omitempty"`
	Comments []Comment `gorm:"foreignKey:UserID" json:"comments,omitempty"`
	Votes    []Vote    `gorm:"foreignKey:UserID" json:"votes,omitempty"`
}

func (User) TableName() string {
	return "profiles"
}

// IsStaff reports whether the account may moderate content.
func (u *User) IsStaff() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}
