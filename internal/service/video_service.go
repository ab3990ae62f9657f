package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"playtube/internal/api/dto"
	"playtube/internal/config"
	infraKafka "playtube/internal/infra/kafka"
	infraMinio "playtube/internal/infra/minio"
	"playtube/internal/model"
	"playtube/internal/repository"
	"playtube/pkg/logger"
	"playtube/pkg/pagination"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrVideoNotFound     = errors.New("视频不存在")
	ErrVideoNoPermission = errors.New("没有权限操作该视频")
	ErrNoFieldsToUpdate  = errors.New("没有需要更新的字段")
)

const rawVideoBucket = "raw-videos"

type VideoService struct {
	videoRepo *repository.VideoRepository
	likeRepo  *repository.LikeRepository
	subRepo   *repository.SubscriptionRepository
}

func NewVideoService(
	videoRepo *repository.VideoRepository,
	likeRepo *repository.LikeRepository,
	subRepo *repository.SubscriptionRepository,
) *VideoService {
	return &VideoService{videoRepo: videoRepo, likeRepo: likeRepo, subRepo: subRepo}
}

// Upload 上传视频：MinIO 存储 + Kafka 转码任务
// 转码完成前视频保持未发布状态
func (s *VideoService) Upload(ownerID int64, req *dto.VideoUploadRequest, fileReader io.Reader, fileSize int64, fileFormat string) (*dto.VideoInfo, error) {
	video := &model.Video{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
	}

	if err := s.videoRepo.Create(video); err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("%d/%d.%s", ownerID, video.ID, fileFormat)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	contentType := "video/" + fileFormat
	if _, err := infraMinio.UploadFile(ctx, rawVideoBucket, objectName, fileReader, fileSize, contentType); err != nil {
		logger.Error("Upload to MinIO failed, rolling back video record",
			zap.Int64("video_id", video.ID), zap.Error(err))
		_ = s.videoRepo.Delete(video.ID)
		return nil, fmt.Errorf("上传文件失败: %w", err)
	}

	cfg := config.GetKafka()
	transcodeTopic := cfg.Topics["video_transcode"]

	task := &infraKafka.TranscodeTask{
		VideoID:    video.ID,
		ObjectName: objectName,
		Bucket:     rawVideoBucket,
		FileFormat: fileFormat,
		FileSize:   fileSize,
	}

	if err := infraKafka.SendTranscodeTask(ctx, transcodeTopic, task); err != nil {
		logger.Error("Send transcode task failed", zap.Int64("video_id", video.ID), zap.Error(err))
		return nil, fmt.Errorf("提交转码任务失败: %w", err)
	}

	return toVideoInfo(video, false), nil
}

// HandleTranscodeResult 处理 Kafka 消费者收到的转码结果
// 成功时写入播放地址并发布视频，失败时保持未发布
func (s *VideoService) HandleTranscodeResult(result *infraKafka.TranscodeResult) error {
	if result.Status != "published" {
		logger.Warn("Video transcode failed",
			zap.Int64("video_id", result.VideoID),
			zap.String("error", result.Error),
		)
		return nil
	}

	updates := map[string]interface{}{
		"file_url":      result.FileURL,
		"thumbnail_url": result.ThumbnailURL,
		"duration":      result.Duration,
		"is_published":  true,
	}

	if _, err := s.videoRepo.Update(result.VideoID, updates); err != nil {
		return fmt.Errorf("update video %d after transcode failed: %w", result.VideoID, err)
	}

	logger.Info("Video published after transcode",
		zap.Int64("video_id", result.VideoID),
	)
	return nil
}

// GetDetail 获取视频详情
// 作者信息附带订阅者数和观看者是否已订阅，视频附带点赞数和观看者是否已点赞；
// 未发布的视频只有作者本人可见，已发布视频的读取会增加播放量
func (s *VideoService) GetDetail(videoID, viewerID int64) (*dto.VideoDetail, error) {
	video, err := s.videoRepo.GetByIDWithOwner(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, ErrVideoNotFound
	}

	likeCount, err := s.likeRepo.CountByTarget(model.LikeTargetVideo, videoID)
	if err != nil {
		return nil, err
	}

	subscribersCount, err := s.subRepo.CountSubscribers(video.OwnerID)
	if err != nil {
		return nil, err
	}

	isLiked := false
	isSubscribed := false
	if viewerID != 0 {
		if isLiked, err = s.likeRepo.Exists(viewerID, model.LikeTargetVideo, videoID); err != nil {
			return nil, err
		}
		if isSubscribed, err = s.subRepo.Exists(viewerID, video.OwnerID); err != nil {
			return nil, err
		}
	}

	if video.IsPublished {
		_ = s.videoRepo.IncrementViewCount(videoID)
		video.ViewCount++
	}

	info := toVideoInfo(video, false)
	info.LikeCount = likeCount
	info.IsLiked = isLiked

	return &dto.VideoDetail{
		VideoInfo: *info,
		Owner: &dto.ChannelBrief{
			OwnerBrief: dto.OwnerBrief{
				ID:       video.Owner.ID,
				Username: video.Owner.UserName,
				FullName: video.Owner.FullName,
				Avatar:   video.Owner.Avatar,
			},
			SubscribersCount: subscribersCount,
			IsSubscribed:     isSubscribed,
		},
	}, nil
}

// Update 更新视频信息（仅作者本人，作者字段不可变更）
func (s *VideoService) Update(videoID, currentUserID int64, req *dto.VideoUpdateRequest) (*dto.VideoInfo, error) {
	if _, err := s.videoRepo.GetByIDAndOwner(videoID, currentUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNoPermission
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ThumbnailURL != nil {
		updates["thumbnail_url"] = *req.ThumbnailURL
	}

	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	video, err := s.videoRepo.Update(videoID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	return toVideoInfo(video, false), nil
}

// TogglePublish 切换发布状态（仅作者本人）
func (s *VideoService) TogglePublish(videoID, currentUserID int64) (*dto.VideoInfo, error) {
	video, err := s.videoRepo.GetByIDAndOwner(videoID, currentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNoPermission
		}
		return nil, err
	}

	video, err = s.videoRepo.Update(videoID, map[string]interface{}{
		"is_published": !video.IsPublished,
	})
	if err != nil {
		return nil, err
	}
	return toVideoInfo(video, false), nil
}

// Delete 删除视频（仅作者本人）
// 只删除视频记录本身，关联的评论和点赞不级联删除，读取端负责过滤悬挂引用
func (s *VideoService) Delete(videoID, currentUserID int64) error {
	if _, err := s.videoRepo.GetByIDAndOwner(videoID, currentUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNoPermission
		}
		return err
	}

	if err := s.videoRepo.Delete(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}
	return nil
}

// GetFeed 获取已发布视频流（含作者信息和点赞维度，不需要登录）
func (s *VideoService) GetFeed(viewerID int64, p pagination.Params) (*dto.VideoListData, error) {
	videos, total, err := s.videoRepo.ListPublished(p.Offset(), p.Limit)
	if err != nil {
		return nil, err
	}
	return s.buildVideoListData(videos, total, viewerID, p, true)
}

// GetChannelVideos 获取指定频道的视频列表
// publishedOnly 为 false 时返回含未发布在内的全部视频（频道后台用）
func (s *VideoService) GetChannelVideos(ownerID, viewerID int64, publishedOnly bool, p pagination.Params) (*dto.VideoListData, error) {
	videos, total, err := s.videoRepo.ListByOwner(ownerID, publishedOnly, p.Offset(), p.Limit)
	if err != nil {
		return nil, err
	}
	return s.buildVideoListData(videos, total, viewerID, p, false)
}

// buildVideoListData 为一批视频补齐点赞数和观看者点赞状态
// 没有任何点赞的视频计数为 0，未登录观看者的点赞状态恒为 false
func (s *VideoService) buildVideoListData(videos []model.Video, total int64, viewerID int64, p pagination.Params, includeOwner bool) (*dto.VideoListData, error) {
	videoIDs := make([]int64, 0, len(videos))
	for i := range videos {
		videoIDs = append(videoIDs, videos[i].ID)
	}

	likeCounts, err := s.likeRepo.CountByTargets(model.LikeTargetVideo, videoIDs)
	if err != nil {
		return nil, err
	}

	likedMap := map[int64]bool{}
	if viewerID != 0 {
		likedMap, err = s.likeRepo.BatchCheckLiked(viewerID, model.LikeTargetVideo, videoIDs)
		if err != nil {
			return nil, err
		}
	}

	items := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		info := toVideoInfo(&videos[i], includeOwner)
		info.LikeCount = likeCounts[videos[i].ID]
		info.IsLiked = likedMap[videos[i].ID]
		items = append(items, *info)
	}

	return &dto.VideoListData{
		Videos:     items,
		Pagination: pagination.NewMeta(total, p),
	}, nil
}

// toVideoInfo 将 model.Video 转换为 dto.VideoInfo
func toVideoInfo(video *model.Video, includeOwner bool) *dto.VideoInfo {
	info := &dto.VideoInfo{
		ID:           video.ID,
		OwnerID:      video.OwnerID,
		Title:        video.Title,
		Description:  video.Description,
		FileURL:      video.FileURL,
		ThumbnailURL: video.ThumbnailURL,
		Duration:     video.Duration,
		ViewCount:    video.ViewCount,
		IsPublished:  video.IsPublished,
		CreatedAt:    video.CreatedAt,
		UpdatedAt:    video.UpdatedAt,
	}

	if includeOwner && video.Owner.ID != 0 {
		info.Owner = &dto.OwnerBrief{
			ID:       video.Owner.ID,
			Username: video.Owner.UserName,
			FullName: video.Owner.FullName,
			Avatar:   video.Owner.Avatar,
		}
	}

	return info
}
