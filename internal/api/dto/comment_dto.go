package dto

import (
	"time"

	"playtube/pkg/pagination"
)

// CommentCreateRequest 发表评论请求
type CommentCreateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// CommentUpdateRequest 更新评论请求
type CommentUpdateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// CommentInfo 评论信息（含作者和点赞维度）
type CommentInfo struct {
	ID        int64       `json:"id"`
	VideoID   int64       `json:"video_id"`
	OwnerID   int64       `json:"owner_id"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Owner     *OwnerBrief `json:"owner,omitempty"`
	LikeCount int64       `json:"like_count"`
	IsLiked   bool        `json:"is_liked"`
}

// CommentListData 评论列表响应数据
type CommentListData struct {
	Comments   []CommentInfo   `json:"comments"`
	Pagination pagination.Meta `json:"pagination"`
}
