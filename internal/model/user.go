package model

import "time"

// User 用户模型
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	UserName     string    `gorm:"size:255;not null;uniqueIndex;comment:用户名" json:"user_name"`
	Email        string    `gorm:"size:255;not null;uniqueIndex;comment:邮箱" json:"email"`
	FullName     string    `gorm:"size:255;not null;comment:昵称" json:"full_name"`
	Password     string    `gorm:"size:255;not null;comment:密码" json:"-"` // json:"-" 序列化时忽略密码
	RefreshToken *string   `gorm:"size:500;comment:刷新令牌哈希" json:"-"`
	Avatar       *string   `gorm:"size:500;comment:用户头像" json:"avatar"`
	CoverImage   *string   `gorm:"size:500;comment:主页封面" json:"cover_image"`
	CreatedAt    time.Time `gorm:"autoCreateTime;comment:注册时间" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Videos    []Video    `gorm:"foreignKey:OwnerID" json:"videos,omitempty"`
	Tweets    []Tweet    `gorm:"foreignKey:OwnerID" json:"tweets,omitempty"`
	Comments  []Comment  `gorm:"foreignKey:OwnerID" json:"comments,omitempty"`
	Playlists []Playlist `gorm:"foreignKey:OwnerID" json:"playlists,omitempty"`
}

func (User) TableName() string {
	return "users"
}
