package repository

import (
	"playtube/internal/model"

	"gorm.io/gorm"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// GetByID 根据 ID 获取视频
func (r *VideoRepository) GetByID(id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.First(&video, id).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDWithOwner 根据 ID 获取视频（含作者信息）
func (r *VideoRepository) GetByIDWithOwner(id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.Preload("Owner").First(&video, id).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDAndOwner 根据视频 ID + 作者 ID 查询（权限校验用）
func (r *VideoRepository) GetByIDAndOwner(videoID, ownerID int64) (*model.Video, error) {
	var video model.Video
	err := r.db.Where("id = ? AND owner_id = ?", videoID, ownerID).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// Create 创建视频记录
func (r *VideoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

// Update 更新视频字段（owner_id 不在可更新范围内）
func (r *VideoRepository) Update(id int64, updates map[string]interface{}) (*model.Video, error) {
	delete(updates, "owner_id")
	result := r.db.Model(&model.Video{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete 删除视频记录（只删除目标记录本身，评论和点赞不级联）
func (r *VideoRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Video{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByOwner 获取指定作者的视频列表（分页，创建时间倒序，同刻按 ID 升序）
func (r *VideoRepository) ListByOwner(ownerID int64, publishedOnly bool, skip, limit int) ([]model.Video, int64, error) {
	query := r.db.Model(&model.Video{}).Where("owner_id = ?", ownerID)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []model.Video
	err := query.Order("created_at DESC, id ASC").Offset(skip).Limit(limit).Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// ListPublished 获取已发布视频流（含作者信息）
func (r *VideoRepository) ListPublished(skip, limit int) ([]model.Video, int64, error) {
	query := r.db.Model(&model.Video{}).Where("is_published = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []model.Video
	err := query.Preload("Owner").Order("created_at DESC, id ASC").
		Offset(skip).Limit(limit).Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// GetByIDsWithOwner 批量查询视频（含作者信息）
func (r *VideoRepository) GetByIDsWithOwner(ids []int64) ([]model.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var videos []model.Video
	err := r.db.Preload("Owner").Where("id IN ?", ids).Find(&videos).Error
	return videos, err
}

// CountByOwner 统计作者的视频数
func (r *VideoRepository) CountByOwner(ownerID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Video{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

// SumViewsByOwner 统计作者所有视频的播放量总和
func (r *VideoRepository) SumViewsByOwner(ownerID int64) (int64, error) {
	var total int64
	err := r.db.Model(&model.Video{}).Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(view_count), 0)").Scan(&total).Error
	return total, err
}

// LatestPublishedByOwners 批量查询每个作者最新发布的视频
func (r *VideoRepository) LatestPublishedByOwners(ownerIDs []int64) (map[int64]model.Video, error) {
	if len(ownerIDs) == 0 {
		return map[int64]model.Video{}, nil
	}

	var videos []model.Video
	err := r.db.Where("owner_id IN ? AND is_published = ?", ownerIDs, true).
		Order("created_at ASC, id ASC").Find(&videos).Error
	if err != nil {
		return nil, err
	}

	// 按时间升序遍历，后写入的覆盖先写入的，留下的即各作者最新一条
	latest := make(map[int64]model.Video, len(ownerIDs))
	for i := range videos {
		latest[videos[i].OwnerID] = videos[i]
	}
	return latest, nil
}

// IncrementViewCount 播放量 +1
func (r *VideoRepository) IncrementViewCount(id int64) error {
	return r.db.Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}
