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
	ErrCommentNotFound     = errors.New("评论不存在")
	ErrCommentNoPermission = errors.New("没有权限操作该评论")
)

type CommentService struct {
	commentRepo *repository.CommentRepository
	videoRepo   *repository.VideoRepository
	likeRepo    *repository.LikeRepository
}

func NewCommentService(
	commentRepo *repository.CommentRepository,
	videoRepo *repository.VideoRepository,
	likeRepo *repository.LikeRepository,
) *CommentService {
	return &CommentService{commentRepo: commentRepo, videoRepo: videoRepo, likeRepo: likeRepo}
}

// Create 发表评论，目标视频必须存在
func (s *CommentService) Create(videoID, ownerID int64, req *dto.CommentCreateRequest) (*dto.CommentInfo, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		VideoID: videoID,
		OwnerID: ownerID,
		Content: req.Content,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return toCommentInfo(comment), nil
}

// Update 更新评论内容（仅作者本人）
func (s *CommentService) Update(commentID, currentUserID int64, req *dto.CommentUpdateRequest) (*dto.CommentInfo, error) {
	if err := s.commentRepo.Update(commentID, currentUserID, req.Content); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.classifyMissing(commentID)
		}
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	return toCommentInfo(comment), nil
}

// Delete 删除评论（仅作者本人）
func (s *CommentService) Delete(commentID, currentUserID int64) error {
	deleted, err := s.commentRepo.Delete(commentID, currentUserID)
	if err != nil {
		return err
	}
	if !deleted {
		_, err = s.classifyMissing(commentID)
		return err
	}
	return nil
}

// classifyMissing 区分“评论不存在”与“评论存在但不属于当前用户”
func (s *CommentService) classifyMissing(commentID int64) (*dto.CommentInfo, error) {
	if _, err := s.commentRepo.GetByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return nil, ErrCommentNoPermission
}

// ListByVideo 获取视频评论列表（含作者信息和点赞维度）
func (s *CommentService) ListByVideo(videoID, viewerID int64, p pagination.Params) (*dto.CommentListData, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	comments, total, err := s.commentRepo.ListByVideo(videoID, p.Offset(), p.Limit)
	if err != nil {
		return nil, err
	}

	commentIDs := make([]int64, 0, len(comments))
	for i := range comments {
		commentIDs = append(commentIDs, comments[i].ID)
	}

	likeCounts, err := s.likeRepo.CountByTargets(model.LikeTargetComment, commentIDs)
	if err != nil {
		return nil, err
	}

	likedMap := map[int64]bool{}
	if viewerID != 0 {
		likedMap, err = s.likeRepo.BatchCheckLiked(viewerID, model.LikeTargetComment, commentIDs)
		if err != nil {
			return nil, err
		}
	}

	items := make([]dto.CommentInfo, 0, len(comments))
	for i := range comments {
		info := toCommentInfo(&comments[i])
		if comments[i].Owner.ID != 0 {
			info.Owner = &dto.OwnerBrief{
				ID:       comments[i].Owner.ID,
				Username: comments[i].Owner.UserName,
				FullName: comments[i].Owner.FullName,
				Avatar:   comments[i].Owner.Avatar,
			}
		}
		info.LikeCount = likeCounts[comments[i].ID]
		info.IsLiked = likedMap[comments[i].ID]
		items = append(items, *info)
	}

	return &dto.CommentListData{
		Comments:   items,
		Pagination: pagination.NewMeta(total, p),
	}, nil
}

func toCommentInfo(comment *model.Comment) *dto.CommentInfo {
	return &dto.CommentInfo{
		ID:        comment.ID,
		VideoID:   comment.VideoID,
		OwnerID:   comment.OwnerID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}
