package service

import (
	"errors"

	"playtube/internal/api/dto"
	"playtube/internal/model"
	"playtube/internal/repository"
	"playtube/pkg/pagination"

	"gorm.io/gorm"
)

var (
	ErrTweetNotFound     = errors.New("动态不存在")
	ErrTweetNoPermission = errors.New("没有权限操作该动态")
)

type TweetService struct {
	tweetRepo *repository.TweetRepository
	userRepo  *repository.UserRepository
	likeRepo  *repository.LikeRepository
}

func NewTweetService(
	tweetRepo *repository.TweetRepository,
	userRepo *repository.UserRepository,
	likeRepo *repository.LikeRepository,
) *TweetService {
	return &TweetService{tweetRepo: tweetRepo, userRepo: userRepo, likeRepo: likeRepo}
}

// Create 发布动态
func (s *TweetService) Create(ownerID int64, req *dto.TweetCreateRequest) (*dto.TweetInfo, error) {
	tweet := &model.Tweet{
		OwnerID: ownerID,
		Content: req.Content,
	}
	if err := s.tweetRepo.Create(tweet); err != nil {
		return nil, err
	}
	return toTweetInfo(tweet), nil
}

// Update 更新动态内容（仅作者本人）
func (s *TweetService) Update(tweetID, currentUserID int64, req *dto.TweetUpdateRequest) (*dto.TweetInfo, error) {
	if err := s.tweetRepo.Update(tweetID, currentUserID, req.Content); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.classifyTweetMissing(tweetID)
		}
		return nil, err
	}

	tweet, err := s.tweetRepo.GetByID(tweetID)
	if err != nil {
		return nil, err
	}
	return toTweetInfo(tweet), nil
}

// Delete 删除动态（仅作者本人）
func (s *TweetService) Delete(tweetID, currentUserID int64) error {
	deleted, err := s.tweetRepo.Delete(tweetID, currentUserID)
	if err != nil {
		return err
	}
	if !deleted {
		return s.classifyTweetMissing(tweetID)
	}
	return nil
}

// classifyTweetMissing 区分“动态不存在”与“动态存在但不属于当前用户”
func (s *TweetService) classifyTweetMissing(tweetID int64) error {
	if _, err := s.tweetRepo.GetByID(tweetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTweetNotFound
		}
		return err
	}
	return ErrTweetNoPermission
}

// ListByUser 获取用户动态列表（含作者信息和点赞维度）
func (s *TweetService) ListByUser(ownerID, viewerID int64, p pagination.Params) (*dto.TweetListData, error) {
	if _, err := s.userRepo.GetByID(ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	tweets, total, err := s.tweetRepo.ListByOwner(ownerID, p.Offset(), p.Limit)
	if err != nil {
		return nil, err
	}

	tweetIDs := make([]int64, 0, len(tweets))
	for i := range tweets {
		tweetIDs = append(tweetIDs, tweets[i].ID)
	}

	likeCounts, err := s.likeRepo.CountByTargets(model.LikeTargetTweet, tweetIDs)
	if err != nil {
		return nil, err
	}

	likedMap := map[int64]bool{}
	if viewerID != 0 {
		likedMap, err = s.likeRepo.BatchCheckLiked(viewerID, model.LikeTargetTweet, tweetIDs)
		if err != nil {
			return nil, err
		}
	}

	items := make([]dto.TweetInfo, 0, len(tweets))
	for i := range tweets {
		info := toTweetInfo(&tweets[i])
		if tweets[i].Owner.ID != 0 {
			info.Owner = &dto.OwnerBrief{
				ID:       tweets[i].Owner.ID,
				Username: tweets[i].Owner.UserName,
				FullName: tweets[i].Owner.FullName,
				Avatar:   tweets[i].Owner.Avatar,
			}
		}
		info.LikeCount = likeCounts[tweets[i].ID]
		info.IsLiked = likedMap[tweets[i].ID]
		items = append(items, *info)
	}

	return &dto.TweetListData{
		Tweets:     items,
		Pagination: pagination.NewMeta(total, p),
	}, nil
}

func toTweetInfo(tweet *model.Tweet) *dto.TweetInfo {
	return &dto.TweetInfo{
		ID:        tweet.ID,
		OwnerID:   tweet.OwnerID,
		Content:   tweet.Content,
		CreatedAt: tweet.CreatedAt,
		UpdatedAt: tweet.UpdatedAt,
	}
}
