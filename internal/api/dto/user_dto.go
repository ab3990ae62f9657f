package dto

import "time"

// UserInfo 用户详情
type UserInfo struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Avatar     *string   `json:"avatar"`
	CoverImage *string   `json:"cover_image"`
	CreatedAt  time.Time `json:"created_at"`
}

// OwnerBrief 视图中嵌套的作者公开信息
// 永远不包含密码和令牌字段
type OwnerBrief struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	FullName string  `json:"full_name"`
	Avatar   *string `json:"avatar"`
}

// ChannelBrief 视频详情中嵌套的频道信息（相对观看者）
type ChannelBrief struct {
	OwnerBrief
	SubscribersCount int64 `json:"subscribers_count"`
	IsSubscribed     bool  `json:"is_subscribed"`
}

// ChannelProfile 频道主页信息（相对观看者）
type ChannelProfile struct {
	ID                int64   `json:"id"`
	Username          string  `json:"username"`
	FullName          string  `json:"full_name"`
	Avatar            *string `json:"avatar"`
	CoverImage        *string `json:"cover_image"`
	SubscribersCount  int64   `json:"subscribers_count"`
	SubscribedToCount int64   `json:"subscribed_to_count"`
	IsSubscribed      bool    `json:"is_subscribed"`
}

// UpdateProfileRequest 更新账户资料请求
type UpdateProfileRequest struct {
	FullName   *string `json:"full_name" binding:"omitempty,min=1,max=255"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Avatar     *string `json:"avatar" binding:"omitempty,max=500"`
	CoverImage *string `json:"cover_image" binding:"omitempty,max=500"`
}
