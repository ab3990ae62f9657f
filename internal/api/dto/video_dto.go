package dto

import (
	"time"

	"playtube/pkg/pagination"
)

// VideoUploadRequest 视频上传请求（multipart/form-data）
type VideoUploadRequest struct {
	Title       string `form:"title" binding:"required,min=1,max=200"`
	Description string `form:"description" binding:"omitempty"`
}

// VideoUpdateRequest 视频更新请求
type VideoUpdateRequest struct {
	Title        *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description  *string `json:"description"`
	ThumbnailURL *string `json:"thumbnail_url" binding:"omitempty,max=500"`
}

// VideoInfo 视频信息（列表视图）
type VideoInfo struct {
	ID           int64       `json:"id"`
	OwnerID      int64       `json:"owner_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	FileURL      string      `json:"file_url"`
	ThumbnailURL string      `json:"thumbnail_url"`
	Duration     int         `json:"duration"`
	ViewCount    int64       `json:"view_count"`
	IsPublished  bool        `json:"is_published"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Owner        *OwnerBrief `json:"owner,omitempty"`
	LikeCount    int64       `json:"like_count"`
	IsLiked      bool        `json:"is_liked"`
}

// VideoDetail 单视频视图，作者信息带订阅维度
type VideoDetail struct {
	VideoInfo
	Owner *ChannelBrief `json:"owner"`
}

// VideoListData 视频列表响应数据
type VideoListData struct {
	Videos     []VideoInfo     `json:"videos"`
	Pagination pagination.Meta `json:"pagination"`
}
