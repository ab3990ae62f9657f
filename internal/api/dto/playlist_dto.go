package dto

import "time"

// PlaylistCreateRequest 创建播放列表请求
type PlaylistCreateRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"required,min=1,max=2000"`
}

// PlaylistUpdateRequest 更新播放列表请求
type PlaylistUpdateRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"required,min=1,max=2000"`
}

// PlaylistInfo 播放列表概要（含聚合统计）
type PlaylistInfo struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TotalVideos int64     `json:"total_videos"`
	TotalViews  int64     `json:"total_views"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlaylistDetail 播放列表详情
// Videos 只含仍然存在且已发布的视频，按插入顺序排列；
// TotalVideos/TotalViews 基于过滤后的结果计算
type PlaylistDetail struct {
	PlaylistInfo
	Owner  *OwnerBrief `json:"owner,omitempty"`
	Videos []VideoInfo `json:"videos"`
}
