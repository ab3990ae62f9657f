package dto

import (
	"time"

	"playtube/pkg/pagination"
)

// TweetCreateRequest 发布动态请求
type TweetCreateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// TweetUpdateRequest 更新动态请求
type TweetUpdateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// TweetInfo 动态信息（含作者和点赞维度）
type TweetInfo struct {
	ID        int64       `json:"id"`
	OwnerID   int64       `json:"owner_id"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Owner     *OwnerBrief `json:"owner,omitempty"`
	LikeCount int64       `json:"like_count"`
	IsLiked   bool        `json:"is_liked"`
}

// TweetListData 动态列表响应数据
type TweetListData struct {
	Tweets     []TweetInfo     `json:"tweets"`
	Pagination pagination.Meta `json:"pagination"`
}
