package dto

import (
	"time"

	"playtube/pkg/pagination"
)

// LikeInfo 点赞记录信息
type LikeInfo struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	TargetKind string    `json:"target_kind"`
	TargetID   int64     `json:"target_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToggleLikeResult 点赞开关操作结果
// Created 为 true 表示本次调用创建了点赞记录，false 表示移除了已有记录
type ToggleLikeResult struct {
	Created bool      `json:"created"`
	Like    *LikeInfo `json:"like,omitempty"`
}

// LikedVideoListData 用户点赞的视频列表数据
type LikedVideoListData struct {
	Videos     []VideoInfo     `json:"videos"`
	Pagination pagination.Meta `json:"pagination"`
}
