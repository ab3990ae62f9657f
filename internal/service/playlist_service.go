package service

import (
	"errors"

	"playtube/internal/api/dto"
	"playtube/internal/model"
	"playtube/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrPlaylistNotFound     = errors.New("播放列表不存在")
	ErrPlaylistNoPermission = errors.New("没有权限操作该播放列表")
)

type PlaylistService struct {
	playlistRepo *repository.PlaylistRepository
	videoRepo    *repository.VideoRepository
	userRepo     *repository.UserRepository
	likeRepo     *repository.LikeRepository
}

func NewPlaylistService(
	playlistRepo *repository.PlaylistRepository,
	videoRepo *repository.VideoRepository,
	userRepo *repository.UserRepository,
	likeRepo *repository.LikeRepository,
) *PlaylistService {
	return &PlaylistService{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
		userRepo:     userRepo,
		likeRepo:     likeRepo,
	}
}

// Create 创建播放列表
func (s *PlaylistService) Create(ownerID int64, req *dto.PlaylistCreateRequest) (*dto.PlaylistInfo, error) {
	playlist := &model.Playlist{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.playlistRepo.Create(playlist); err != nil {
		return nil, err
	}
	return toPlaylistInfo(playlist), nil
}

// Update 更新播放列表（仅创建者本人）
func (s *PlaylistService) Update(playlistID, currentUserID int64, req *dto.PlaylistUpdateRequest) (*dto.PlaylistInfo, error) {
	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
	}

	playlist, err := s.playlistRepo.Update(playlistID, currentUserID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.classifyPlaylistMissing(playlistID)
		}
		return nil, err
	}

	info := toPlaylistInfo(playlist)
	if err := s.fillPlaylistTotals(info); err != nil {
		return nil, err
	}
	return info, nil
}

// Delete 删除播放列表及其条目（仅创建者本人）
func (s *PlaylistService) Delete(playlistID, currentUserID int64) error {
	deleted, err := s.playlistRepo.Delete(playlistID, currentUserID)
	if err != nil {
		return err
	}
	if !deleted {
		return s.classifyPlaylistMissing(playlistID)
	}
	return nil
}

// AddVideo 向播放列表追加视频（仅创建者本人，重复追加为幂等）
func (s *PlaylistService) AddVideo(playlistID, videoID, currentUserID int64) error {
	if err := s.checkPlaylistOwner(playlistID, currentUserID); err != nil {
		return err
	}

	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	return s.playlistRepo.AddVideo(playlistID, videoID)
}

// RemoveVideo 从播放列表移除视频（仅创建者本人，移除不存在的条目为幂等）
func (s *PlaylistService) RemoveVideo(playlistID, videoID, currentUserID int64) error {
	if err := s.checkPlaylistOwner(playlistID, currentUserID); err != nil {
		return err
	}
	return s.playlistRepo.RemoveVideo(playlistID, videoID)
}

// GetByID 获取播放列表详情
// 视频按插入顺序排列，已删除或未发布的视频被过滤，统计基于过滤后的结果
func (s *PlaylistService) GetByID(playlistID, viewerID int64) (*dto.PlaylistDetail, error) {
	playlist, err := s.playlistRepo.GetByIDWithOwner(playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}

	videoIDs, err := s.playlistRepo.GetVideoIDs(playlistID)
	if err != nil {
		return nil, err
	}

	videos, err := s.visibleVideosInOrder(videoIDs)
	if err != nil {
		return nil, err
	}

	items, totalViews, err := s.buildPlaylistVideos(videos, viewerID)
	if err != nil {
		return nil, err
	}

	info := toPlaylistInfo(playlist)
	info.TotalVideos = int64(len(items))
	info.TotalViews = totalViews

	return &dto.PlaylistDetail{
		PlaylistInfo: *info,
		Owner: &dto.OwnerBrief{
			ID:       playlist.Owner.ID,
			Username: playlist.Owner.UserName,
			FullName: playlist.Owner.FullName,
			Avatar:   playlist.Owner.Avatar,
		},
		Videos: items,
	}, nil
}

// ListByUser 获取用户的播放列表（含过滤后的聚合统计）
func (s *PlaylistService) ListByUser(ownerID int64) ([]dto.PlaylistInfo, error) {
	if _, err := s.userRepo.GetByID(ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	playlists, err := s.playlistRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	playlistIDs := make([]int64, 0, len(playlists))
	for i := range playlists {
		playlistIDs = append(playlistIDs, playlists[i].ID)
	}

	videoIDsByPlaylist, err := s.playlistRepo.BatchGetVideoIDs(playlistIDs)
	if err != nil {
		return nil, err
	}

	// 跨所有播放列表收集去重后的视频 ID，一次查询后按列表分别统计
	idSet := make(map[int64]struct{})
	allIDs := make([]int64, 0)
	for _, ids := range videoIDsByPlaylist {
		for _, id := range ids {
			if _, ok := idSet[id]; !ok {
				idSet[id] = struct{}{}
				allIDs = append(allIDs, id)
			}
		}
	}

	videoMap, err := s.visibleVideoMap(allIDs)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.PlaylistInfo, 0, len(playlists))
	for i := range playlists {
		info := toPlaylistInfo(&playlists[i])
		for _, id := range videoIDsByPlaylist[playlists[i].ID] {
			if v, ok := videoMap[id]; ok {
				info.TotalVideos++
				info.TotalViews += v.ViewCount
			}
		}
		infos = append(infos, *info)
	}
	return infos, nil
}

func (s *PlaylistService) checkPlaylistOwner(playlistID, currentUserID int64) error {
	playlist, err := s.playlistRepo.GetByID(playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlaylistNotFound
		}
		return err
	}
	if playlist.OwnerID != currentUserID {
		return ErrPlaylistNoPermission
	}
	return nil
}

// classifyPlaylistMissing 区分“播放列表不存在”与“不属于当前用户”
func (s *PlaylistService) classifyPlaylistMissing(playlistID int64) error {
	if _, err := s.playlistRepo.GetByID(playlistID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlaylistNotFound
		}
		return err
	}
	return ErrPlaylistNoPermission
}

// visibleVideosInOrder 按给定顺序取出仍然存在且已发布的视频
func (s *PlaylistService) visibleVideosInOrder(videoIDs []int64) ([]model.Video, error) {
	videoMap, err := s.visibleVideoMap(videoIDs)
	if err != nil {
		return nil, err
	}

	videos := make([]model.Video, 0, len(videoMap))
	for _, id := range videoIDs {
		if v, ok := videoMap[id]; ok {
			videos = append(videos, v)
		}
	}
	return videos, nil
}

func (s *PlaylistService) visibleVideoMap(videoIDs []int64) (map[int64]model.Video, error) {
	videoMap := make(map[int64]model.Video, len(videoIDs))
	if len(videoIDs) == 0 {
		return videoMap, nil
	}

	videos, err := s.videoRepo.GetByIDsWithOwner(videoIDs)
	if err != nil {
		return nil, err
	}
	for i := range videos {
		if videos[i].IsPublished {
			videoMap[videos[i].ID] = videos[i]
		}
	}
	return videoMap, nil
}

// buildPlaylistVideos 补齐列表视频的点赞维度并累计播放量
func (s *PlaylistService) buildPlaylistVideos(videos []model.Video, viewerID int64) ([]dto.VideoInfo, int64, error) {
	videoIDs := make([]int64, 0, len(videos))
	for i := range videos {
		videoIDs = append(videoIDs, videos[i].ID)
	}

	likeCounts, err := s.likeRepo.CountByTargets(model.LikeTargetVideo, videoIDs)
	if err != nil {
		return nil, 0, err
	}

	likedMap := map[int64]bool{}
	if viewerID != 0 {
		likedMap, err = s.likeRepo.BatchCheckLiked(viewerID, model.LikeTargetVideo, videoIDs)
		if err != nil {
			return nil, 0, err
		}
	}

	var totalViews int64
	items := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		info := toVideoInfo(&videos[i], true)
		info.LikeCount = likeCounts[videos[i].ID]
		info.IsLiked = likedMap[videos[i].ID]
		items = append(items, *info)
		totalViews += videos[i].ViewCount
	}
	return items, totalViews, nil
}

// fillPlaylistTotals 为单个播放列表补齐过滤后的聚合统计
func (s *PlaylistService) fillPlaylistTotals(info *dto.PlaylistInfo) error {
	videoIDs, err := s.playlistRepo.GetVideoIDs(info.ID)
	if err != nil {
		return err
	}
	videoMap, err := s.visibleVideoMap(videoIDs)
	if err != nil {
		return err
	}
	for _, v := range videoMap {
		info.TotalVideos++
		info.TotalViews += v.ViewCount
	}
	return nil
}

func toPlaylistInfo(playlist *model.Playlist) *dto.PlaylistInfo {
	return &dto.PlaylistInfo{
		ID:          playlist.ID,
		OwnerID:     playlist.OwnerID,
		Name:        playlist.Name,
		Description: playlist.Description,
		CreatedAt:   playlist.CreatedAt,
		UpdatedAt:   playlist.UpdatedAt,
	}
}
