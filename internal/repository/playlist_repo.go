package repository

import (
	"playtube/internal/model"

	"gorm.io/gorm"
)

type PlaylistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

func (r *PlaylistRepository) Create(playlist *model.Playlist) error {
	return r.db.Create(playlist).Error
}

func (r *PlaylistRepository) GetByID(id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.db.First(&playlist, id).Error
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// GetByIDWithOwner 根据 ID 获取播放列表（含创建者信息）
func (r *PlaylistRepository) GetByIDWithOwner(id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.db.Preload("Owner").First(&playlist, id).Error
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// Update 更新播放列表字段（仅创建者本人）
func (r *PlaylistRepository) Update(playlistID, ownerID int64, updates map[string]interface{}) (*model.Playlist, error) {
	result := r.db.Model(&model.Playlist{}).
		Where("id = ? AND owner_id = ?", playlistID, ownerID).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(playlistID)
}

// Delete 删除播放列表及其关联记录（仅创建者本人）
func (r *PlaylistRepository) Delete(playlistID, ownerID int64) (bool, error) {
	result := r.db.Where("id = ? AND owner_id = ?", playlistID, ownerID).Delete(&model.Playlist{})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	err := r.db.Where("playlist_id = ?", playlistID).Delete(&model.PlaylistVideo{}).Error
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByOwner 获取用户的播放列表（创建时间倒序，同刻按 ID 升序）
func (r *PlaylistRepository) ListByOwner(ownerID int64) ([]model.Playlist, error) {
	var playlists []model.Playlist
	err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC, id ASC").Find(&playlists).Error
	return playlists, err
}

// ContainsVideo 检查视频是否已在播放列表中
func (r *PlaylistRepository) ContainsVideo(playlistID, videoID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.PlaylistVideo{}).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Count(&count).Error
	return count > 0, err
}

// AddVideo 将视频追加到播放列表尾部（集合语义，已存在时不重复插入）
func (r *PlaylistRepository) AddVideo(playlistID, videoID int64) error {
	exists, err := r.ContainsVideo(playlistID, videoID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	var maxPos int64
	err = r.db.Model(&model.PlaylistVideo{}).
		Where("playlist_id = ?", playlistID).
		Select("COALESCE(MAX(position), 0)").Scan(&maxPos).Error
	if err != nil {
		return err
	}

	entry := &model.PlaylistVideo{
		PlaylistID: playlistID,
		VideoID:    videoID,
		Position:   int(maxPos) + 1,
	}
	return r.db.Create(entry).Error
}

// RemoveVideo 从播放列表移除视频
func (r *PlaylistRepository) RemoveVideo(playlistID, videoID int64) error {
	return r.db.Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&model.PlaylistVideo{}).Error
}

// GetVideoIDs 获取播放列表的视频 ID 列表（按插入顺序）
func (r *PlaylistRepository) GetVideoIDs(playlistID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.PlaylistVideo{}).
		Where("playlist_id = ?", playlistID).
		Order("position ASC").
		Pluck("video_id", &ids).Error
	return ids, err
}

// BatchGetVideoIDs 批量获取多个播放列表的视频 ID 列表（按插入顺序）
func (r *PlaylistRepository) BatchGetVideoIDs(playlistIDs []int64) (map[int64][]int64, error) {
	result := make(map[int64][]int64, len(playlistIDs))
	if len(playlistIDs) == 0 {
		return result, nil
	}

	var entries []model.PlaylistVideo
	err := r.db.Where("playlist_id IN ?", playlistIDs).
		Order("position ASC").Find(&entries).Error
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		result[e.PlaylistID] = append(result[e.PlaylistID], e.VideoID)
	}
	return result, nil
}
