package repository

import (
	"playtube/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Exists 检查订阅关系是否存在
func (r *SubscriptionRepository) Exists(subscriberID, channelID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}

// Create 创建订阅关系
func (r *SubscriptionRepository) Create(subscriberID, channelID int64) (*model.Subscription, error) {
	sub := &model.Subscription{
		SubscriberID: subscriberID,
		ChannelID:    channelID,
	}
	if err := r.db.Create(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// Delete 删除订阅关系
// 记录已不存在时返回 false 而不是错误，并发的重复删除由调用方按成功处理
func (r *SubscriptionRepository) Delete(subscriberID, channelID int64) (bool, error) {
	result := r.db.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&model.Subscription{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountSubscribers 统计频道的订阅者数
func (r *SubscriptionRepository) CountSubscribers(channelID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("channel_id = ?", channelID).Count(&count).Error
	return count, err
}

// CountSubscribedTo 统计用户订阅的频道数
func (r *SubscriptionRepository) CountSubscribedTo(subscriberID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("subscriber_id = ?", subscriberID).Count(&count).Error
	return count, err
}

// ListSubscriberIDs 获取频道的订阅者 ID 列表（分页，订阅时间倒序）
func (r *SubscriptionRepository) ListSubscriberIDs(channelID int64, skip, limit int) ([]int64, int64, error) {
	query := r.db.Model(&model.Subscription{}).Where("channel_id = ?", channelID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ids []int64
	err := query.Order("created_at DESC, id ASC").Offset(skip).Limit(limit).
		Pluck("subscriber_id", &ids).Error
	if err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}

// ListChannelIDs 获取用户订阅的频道 ID 列表（分页，订阅时间倒序）
func (r *SubscriptionRepository) ListChannelIDs(subscriberID int64, skip, limit int) ([]int64, int64, error) {
	query := r.db.Model(&model.Subscription{}).Where("subscriber_id = ?", subscriberID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ids []int64
	err := query.Order("created_at DESC, id ASC").Offset(skip).Limit(limit).
		Pluck("channel_id", &ids).Error
	if err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}

// BatchCheckSubscribed 批量查询订阅状态
func (r *SubscriptionRepository) BatchCheckSubscribed(subscriberID int64, channelIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(channelIDs))
	if len(channelIDs) == 0 {
		return result, nil
	}

	var subscribedIDs []int64
	err := r.db.Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id IN ?", subscriberID, channelIDs).
		Pluck("channel_id", &subscribedIDs).Error
	if err != nil {
		return nil, err
	}

	subscribedSet := make(map[int64]bool, len(subscribedIDs))
	for _, id := range subscribedIDs {
		subscribedSet[id] = true
	}

	for _, id := range channelIDs {
		result[id] = subscribedSet[id]
	}
	return result, nil
}

// BatchCountSubscribers 批量统计多个频道的订阅者数
// 没有订阅记录的频道计数为 0，不会缺行
func (r *SubscriptionRepository) BatchCountSubscribers(channelIDs []int64) (map[int64]int64, error) {
	result := make(map[int64]int64, len(channelIDs))
	if len(channelIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		ChannelID int64
		Cnt       int64
	}
	err := r.db.Model(&model.Subscription{}).
		Select("channel_id, COUNT(*) AS cnt").
		Where("channel_id IN ?", channelIDs).
		Group("channel_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, id := range channelIDs {
		result[id] = 0
	}
	for _, row := range rows {
		result[row.ChannelID] = row.Cnt
	}
	return result, nil
}
