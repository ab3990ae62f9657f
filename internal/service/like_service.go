package service

import (
	"errors"

	"playtube/internal/api/dto"
	"playtube/internal/model"
	"playtube/internal/repository"
	"playtube/pkg/pagination"

	"gorm.io/gorm"
)

var ErrInvalidLikeTarget = errors.New("无效的点赞目标类型")

type LikeService struct {
	likeRepo    *repository.LikeRepository
	videoRepo   *repository.VideoRepository
	commentRepo *repository.CommentRepository
	tweetRepo   *repository.TweetRepository
}

func NewLikeService(
	likeRepo *repository.LikeRepository,
	videoRepo *repository.VideoRepository,
	commentRepo *repository.CommentRepository,
	tweetRepo *repository.TweetRepository,
) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
	}
}

// Toggle 点赞开关：不存在则创建，存在则删除
// 三种目标类型（视频/评论/动态）走同一条路径。
// 并发场景下两次同时删除会有一次命中零行，按成功处理；
// 计数不落在目标记录上，全部读取时计算，因此没有第二个需要维护的一致性约束。
func (s *LikeService) Toggle(userID int64, kind model.LikeTargetKind, targetID int64) (*dto.ToggleLikeResult, error) {
	if !kind.Valid() {
		return nil, ErrInvalidLikeTarget
	}

	if err := s.checkTargetExists(kind, targetID); err != nil {
		return nil, err
	}

	exists, err := s.likeRepo.Exists(userID, kind, targetID)
	if err != nil {
		return nil, err
	}

	if exists {
		if _, err := s.likeRepo.Delete(userID, kind, targetID); err != nil {
			return nil, err
		}
		return &dto.ToggleLikeResult{Created: false}, nil
	}

	like, err := s.likeRepo.Create(userID, kind, targetID)
	if err != nil {
		return nil, err
	}

	return &dto.ToggleLikeResult{Created: true, Like: toLikeInfo(like)}, nil
}

// GetStatus 查询点赞状态和目标的点赞总数
func (s *LikeService) GetStatus(userID int64, kind model.LikeTargetKind, targetID int64) (bool, int64, error) {
	if !kind.Valid() {
		return false, 0, ErrInvalidLikeTarget
	}

	if err := s.checkTargetExists(kind, targetID); err != nil {
		return false, 0, err
	}

	liked := false
	if userID != 0 {
		var err error
		liked, err = s.likeRepo.Exists(userID, kind, targetID)
		if err != nil {
			return false, 0, err
		}
	}

	total, err := s.likeRepo.CountByTarget(kind, targetID)
	if err != nil {
		return false, 0, err
	}
	return liked, total, nil
}

// GetLikedVideos 获取用户点赞过的视频列表
// 目标视频已被删除的点赞记录在读取时被过滤掉，空列表是正常结果而不是错误
func (s *LikeService) GetLikedVideos(userID int64, p pagination.Params) (*dto.LikedVideoListData, error) {
	likes, total, err := s.likeRepo.ListVideoLikesByUser(userID, p.Offset(), p.Limit)
	if err != nil {
		return nil, err
	}

	videoIDs := make([]int64, 0, len(likes))
	for i := range likes {
		videoIDs = append(videoIDs, likes[i].TargetID)
	}

	videos, err := s.videoRepo.GetByIDsWithOwner(videoIDs)
	if err != nil {
		return nil, err
	}

	likeCounts, err := s.likeRepo.CountByTargets(model.LikeTargetVideo, videoIDs)
	if err != nil {
		return nil, err
	}

	videoMap := make(map[int64]*model.Video, len(videos))
	for i := range videos {
		videoMap[videos[i].ID] = &videos[i]
	}

	// 按点赞时间顺序输出，悬挂引用（视频已删除）直接跳过
	items := make([]dto.VideoInfo, 0, len(videoIDs))
	for _, id := range videoIDs {
		video, ok := videoMap[id]
		if !ok {
			continue
		}
		info := toVideoInfo(video, true)
		info.LikeCount = likeCounts[id]
		info.IsLiked = true
		items = append(items, *info)
	}

	return &dto.LikedVideoListData{
		Videos:     items,
		Pagination: pagination.NewMeta(total, p),
	}, nil
}

func (s *LikeService) checkTargetExists(kind model.LikeTargetKind, targetID int64) error {
	var err error
	switch kind {
	case model.LikeTargetVideo:
		_, err = s.videoRepo.GetByID(targetID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
	case model.LikeTargetComment:
		_, err = s.commentRepo.GetByID(targetID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
	case model.LikeTargetTweet:
		_, err = s.tweetRepo.GetByID(targetID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTweetNotFound
		}
	}
	return err
}

func toLikeInfo(like *model.Like) *dto.LikeInfo {
	return &dto.LikeInfo{
		ID:         like.ID,
		UserID:     like.UserID,
		TargetKind: string(like.TargetKind),
		TargetID:   like.TargetID,
		CreatedAt:  like.CreatedAt,
	}
}
