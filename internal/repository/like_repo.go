package repository

import (
	"playtube/internal/model"

	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Exists 检查点赞记录是否存在
func (r *LikeRepository) Exists(userID int64, kind model.LikeTargetKind, targetID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, kind, targetID).
		Count(&count).Error
	return count > 0, err
}

// Create 创建点赞记录
func (r *LikeRepository) Create(userID int64, kind model.LikeTargetKind, targetID int64) (*model.Like, error) {
	like := &model.Like{
		UserID:     userID,
		TargetKind: kind,
		TargetID:   targetID,
	}
	if err := r.db.Create(like).Error; err != nil {
		return nil, err
	}
	return like, nil
}

// Delete 删除点赞记录
// 目标记录已不存在时返回 false 而不是错误，并发的重复删除由调用方按成功处理
func (r *LikeRepository) Delete(userID int64, kind model.LikeTargetKind, targetID int64) (bool, error) {
	result := r.db.Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, kind, targetID).
		Delete(&model.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountByTarget 统计单个目标的点赞数
func (r *LikeRepository) CountByTarget(kind model.LikeTargetKind, targetID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("target_kind = ? AND target_id = ?", kind, targetID).
		Count(&count).Error
	return count, err
}

// CountByTargets 批量统计多个目标的点赞数
// 没有点赞记录的目标计数为 0，不会缺行
func (r *LikeRepository) CountByTargets(kind model.LikeTargetKind, targetIDs []int64) (map[int64]int64, error) {
	result := make(map[int64]int64, len(targetIDs))
	if len(targetIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		TargetID int64
		Cnt      int64
	}
	err := r.db.Model(&model.Like{}).
		Select("target_id, COUNT(*) AS cnt").
		Where("target_kind = ? AND target_id IN ?", kind, targetIDs).
		Group("target_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, id := range targetIDs {
		result[id] = 0
	}
	for _, row := range rows {
		result[row.TargetID] = row.Cnt
	}
	return result, nil
}

// BatchCheckLiked 批量查询用户对多个目标的点赞状态
func (r *LikeRepository) BatchCheckLiked(userID int64, kind model.LikeTargetKind, targetIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(targetIDs))
	if len(targetIDs) == 0 {
		return result, nil
	}

	var likedIDs []int64
	err := r.db.Model(&model.Like{}).
		Where("user_id = ? AND target_kind = ? AND target_id IN ?", userID, kind, targetIDs).
		Pluck("target_id", &likedIDs).Error
	if err != nil {
		return nil, err
	}

	likedSet := make(map[int64]bool, len(likedIDs))
	for _, id := range likedIDs {
		likedSet[id] = true
	}

	for _, id := range targetIDs {
		result[id] = likedSet[id]
	}
	return result, nil
}

// ListVideoLikesByUser 获取用户点赞的视频类记录（分页，点赞时间倒序）
func (r *LikeRepository) ListVideoLikesByUser(userID int64, skip, limit int) ([]model.Like, int64, error) {
	query := r.db.Model(&model.Like{}).
		Where("user_id = ? AND target_kind = ?", userID, model.LikeTargetVideo)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var likes []model.Like
	err := query.Order("created_at DESC, id ASC").Offset(skip).Limit(limit).Find(&likes).Error
	if err != nil {
		return nil, 0, err
	}
	return likes, total, nil
}

// CountVideoLikesByOwner 统计某作者全部视频收到的点赞总数（频道统计用）
func (r *LikeRepository) CountVideoLikesByOwner(ownerID int64) (int64, error) {
	var count int64
	err := r.db.Raw(`
		SELECT COUNT(*) FROM likes l
		INNER JOIN videos v ON v.id = l.target_id
		WHERE l.target_kind = ? AND v.owner_id = ?
	`, model.LikeTargetVideo, ownerID).Scan(&count).Error
	return count, err
}
