package dto

// ChannelStats 频道统计汇总
// 各项均为读取时独立计算的计数/求和结果
type ChannelStats struct {
	TotalSubscribers int64 `json:"total_subscribers"`
	TotalVideos      int64 `json:"total_videos"`
	TotalViews       int64 `json:"total_views"`
	TotalLikes       int64 `json:"total_likes"`
}
