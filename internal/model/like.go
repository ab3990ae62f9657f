package model

import "time"

// LikeTargetKind 点赞目标类型
type LikeTargetKind string

const (
	LikeTargetVideo   LikeTargetKind = "video"
	LikeTargetComment LikeTargetKind = "comment"
	LikeTargetTweet   LikeTargetKind = "tweet"
)

// Valid 判断目标类型是否合法
func (k LikeTargetKind) Valid() bool {
	switch k {
	case LikeTargetVideo, LikeTargetComment, LikeTargetTweet:
		return true
	}
	return false
}

// Like 点赞关系模型
// target_kind + target_id 组成带标签的多态引用，唯一索引保证同一用户
// 对同一目标最多存在一条点赞记录
type Like struct {
	ID         int64          `gorm:"primaryKey;autoIncrement;comment:点赞记录ID" json:"id"`
	UserID     int64          `gorm:"not null;uniqueIndex:uq_user_target_like;index:idx_likes_user_id;comment:点赞用户ID" json:"user_id"`
	TargetKind LikeTargetKind `gorm:"size:20;not null;uniqueIndex:uq_user_target_like;index:idx_likes_target,priority:1;comment:目标类型" json:"target_kind"`
	TargetID   int64          `gorm:"not null;uniqueIndex:uq_user_target_like;index:idx_likes_target,priority:2;comment:目标ID" json:"target_id"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index:idx_likes_created_at;comment:点赞时间" json:"created_at"`

	// 关联关系
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Like) TableName() string {
	return "likes"
}
