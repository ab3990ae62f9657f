package dto

import (
	"time"

	"playtube/pkg/pagination"
)

// SubscriptionInfo 订阅关系信息
type SubscriptionInfo struct {
	ID           int64     `json:"id"`
	SubscriberID int64     `json:"subscriber_id"`
	ChannelID    int64     `json:"channel_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToggleSubscriptionResult 订阅开关操作结果
type ToggleSubscriptionResult struct {
	Created      bool              `json:"created"`
	Subscription *SubscriptionInfo `json:"subscription,omitempty"`
}

// SubscriberInfo 频道订阅者信息
// SubscribedBack 表示频道是否反向订阅了该订阅者（二阶关系）
type SubscriberInfo struct {
	ID               int64   `json:"id"`
	Username         string  `json:"username"`
	FullName         string  `json:"full_name"`
	Avatar           *string `json:"avatar"`
	SubscribersCount int64   `json:"subscribers_count"`
	SubscribedBack   bool    `json:"subscribed_back"`
}

// SubscriberListData 频道订阅者列表数据
type SubscriberListData struct {
	Subscribers []SubscriberInfo `json:"subscribers"`
	Pagination  pagination.Meta  `json:"pagination"`
}

// SubscribedChannelInfo 订阅的频道信息（含最新发布视频）
type SubscribedChannelInfo struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	FullName    string     `json:"full_name"`
	Avatar      *string    `json:"avatar"`
	LatestVideo *VideoInfo `json:"latest_video,omitempty"`
}

// SubscribedChannelListData 订阅的频道列表数据
type SubscribedChannelListData struct {
	Channels   []SubscribedChannelInfo `json:"channels"`
	Pagination pagination.Meta         `json:"pagination"`
}
