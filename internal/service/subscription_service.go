package service

import (
	"errors"

	"playtube/internal/api/dto"
	"playtube/internal/model"
	"playtube/internal/repository"
	"playtube/pkg/pagination"

	"gorm.io/gorm"
)

var ErrCannotSubscribeSelf = errors.New("不能订阅自己的频道")

type SubscriptionService struct {
	subRepo   *repository.SubscriptionRepository
	userRepo  *repository.UserRepository
	videoRepo *repository.VideoRepository
}

func NewSubscriptionService(
	subRepo *repository.SubscriptionRepository,
	userRepo *repository.UserRepository,
	videoRepo *repository.VideoRepository,
) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo, userRepo: userRepo, videoRepo: videoRepo}
}

// Toggle 订阅开关：不存在则创建，存在则删除
// 与点赞共用同一原语语义，订阅自己的校验在进入存储层之前完成
func (s *SubscriptionService) Toggle(subscriberID, channelID int64) (*dto.ToggleSubscriptionResult, error) {
	if subscriberID == channelID {
		return nil, ErrCannotSubscribeSelf
	}

	if _, err := s.userRepo.GetByID(channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	exists, err := s.subRepo.Exists(subscriberID, channelID)
	if err != nil {
		return nil, err
	}

	if exists {
		if _, err := s.subRepo.Delete(subscriberID, channelID); err != nil {
			return nil, err
		}
		return &dto.ToggleSubscriptionResult{Created: false}, nil
	}

	sub, err := s.subRepo.Create(subscriberID, channelID)
	if err != nil {
		return nil, err
	}

	return &dto.ToggleSubscriptionResult{
		Created: true,
		Subscription: &dto.SubscriptionInfo{
			ID:           sub.ID,
			SubscriberID: sub.SubscriberID,
			ChannelID:    sub.ChannelID,
			CreatedAt:    sub.CreatedAt,
		},
	}, nil
}

// GetChannelSubscribers 获取频道的订阅者列表
// 每个订阅者附带自己的粉丝数，以及频道是否反向订阅了该订阅者（二阶关系）
func (s *SubscriptionService) GetChannelSubscribers(channelID int64, p pagination.Params) (*dto.SubscriberListData, error) {
	if _, err := s.userRepo.GetByID(channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	subscriberIDs, total, err := s.subRepo.ListSubscriberIDs(channelID, p.Offset(), p.Limit)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.GetByIDs(subscriberIDs)
	if err != nil {
		return nil, err
	}

	followerCounts, err := s.subRepo.BatchCountSubscribers(subscriberIDs)
	if err != nil {
		return nil, err
	}

	subscribedBack, err := s.subRepo.BatchCheckSubscribed(channelID, subscriberIDs)
	if err != nil {
		return nil, err
	}

	userMap := make(map[int64]*model.User, len(users))
	for i := range users {
		userMap[users[i].ID] = &users[i]
	}

	items := make([]dto.SubscriberInfo, 0, len(subscriberIDs))
	for _, id := range subscriberIDs {
		user, ok := userMap[id]
		if !ok {
			continue
		}
		items = append(items, dto.SubscriberInfo{
			ID:               user.ID,
			Username:         user.UserName,
			FullName:         user.FullName,
			Avatar:           user.Avatar,
			SubscribersCount: followerCounts[id],
			SubscribedBack:   subscribedBack[id],
		})
	}

	return &dto.SubscriberListData{
		Subscribers: items,
		Pagination:  pagination.NewMeta(total, p),
	}, nil
}

// GetSubscribedChannels 获取用户订阅的频道列表，附带各频道最新发布的视频
func (s *SubscriptionService) GetSubscribedChannels(subscriberID int64, p pagination.Params) (*dto.SubscribedChannelListData, error) {
	if _, err := s.userRepo.GetByID(subscriberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	channelIDs, total, err := s.subRepo.ListChannelIDs(subscriberID, p.Offset(), p.Limit)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.GetByIDs(channelIDs)
	if err != nil {
		return nil, err
	}

	latestVideos, err := s.videoRepo.LatestPublishedByOwners(channelIDs)
	if err != nil {
		return nil, err
	}

	userMap := make(map[int64]*model.User, len(users))
	for i := range users {
		userMap[users[i].ID] = &users[i]
	}

	items := make([]dto.SubscribedChannelInfo, 0, len(channelIDs))
	for _, id := range channelIDs {
		user, ok := userMap[id]
		if !ok {
			continue
		}
		info := dto.SubscribedChannelInfo{
			ID:       user.ID,
			Username: user.UserName,
			FullName: user.FullName,
			Avatar:   user.Avatar,
		}
		if video, ok := latestVideos[id]; ok {
			info.LatestVideo = toVideoInfo(&video, false)
		}
		items = append(items, info)
	}

	return &dto.SubscribedChannelListData{
		Channels:   items,
		Pagination: pagination.NewMeta(total, p),
	}, nil
}

// GetStatus 查询订阅状态
func (s *SubscriptionService) GetStatus(subscriberID, channelID int64) (bool, error) {
	return s.subRepo.Exists(subscriberID, channelID)
}
