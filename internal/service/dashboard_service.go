package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"playtube/internal/api/dto"
	infraRedis "playtube/internal/infra/redis"
	"playtube/internal/repository"
	"playtube/pkg/logger"
	"playtube/pkg/pagination"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channelStatsTTL = 60 * time.Second

type DashboardService struct {
	videoRepo *repository.VideoRepository
	likeRepo  *repository.LikeRepository
	subRepo   *repository.SubscriptionRepository
	videoSvc  *VideoService
}

func NewDashboardService(
	videoRepo *repository.VideoRepository,
	likeRepo *repository.LikeRepository,
	subRepo *repository.SubscriptionRepository,
	videoSvc *VideoService,
) *DashboardService {
	return &DashboardService{
		videoRepo: videoRepo,
		likeRepo:  likeRepo,
		subRepo:   subRepo,
		videoSvc:  videoSvc,
	}
}

// GetChannelStats 获取频道统计（Redis 缓存 60 秒，缓存不可用时直接查库）
func (s *DashboardService) GetChannelStats(channelID int64) (*dto.ChannelStats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	cacheKey := fmt.Sprintf("dashboard:stats:%d", channelID)

	if client := infraRedis.Get(); client != nil {
		val, err := client.Get(ctx, cacheKey).Result()
		if err == nil {
			var stats dto.ChannelStats
			if err := json.Unmarshal([]byte(val), &stats); err == nil {
				return &stats, nil
			}
		} else if err != redis.Nil {
			logger.Warn("Read channel stats cache failed", zap.Error(err))
		}
	}

	stats, err := s.computeChannelStats(channelID)
	if err != nil {
		return nil, err
	}

	if client := infraRedis.Get(); client != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := client.Set(ctx, cacheKey, data, channelStatsTTL).Err(); err != nil {
				logger.Warn("Write channel stats cache failed", zap.Error(err))
			}
		}
	}
	return stats, nil
}

func (s *DashboardService) computeChannelStats(channelID int64) (*dto.ChannelStats, error) {
	totalSubscribers, err := s.subRepo.CountSubscribers(channelID)
	if err != nil {
		return nil, err
	}

	totalVideos, err := s.videoRepo.CountByOwner(channelID)
	if err != nil {
		return nil, err
	}

	totalViews, err := s.videoRepo.SumViewsByOwner(channelID)
	if err != nil {
		return nil, err
	}

	totalLikes, err := s.likeRepo.CountVideoLikesByOwner(channelID)
	if err != nil {
		return nil, err
	}

	return &dto.ChannelStats{
		TotalSubscribers: totalSubscribers,
		TotalVideos:      totalVideos,
		TotalViews:       totalViews,
		TotalLikes:       totalLikes,
	}, nil
}

// GetChannelVideos 获取当前用户频道的全部视频（含未发布）
func (s *DashboardService) GetChannelVideos(channelID int64, p pagination.Params) (*dto.VideoListData, error) {
	return s.videoSvc.GetChannelVideos(channelID, channelID, false, p)
}
