package handler

import (
	"errors"
	"strconv"

	"playtube/internal/api/middleware"
	"playtube/internal/api/response"
	"playtube/internal/model"
	"playtube/internal/service"
	"playtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// ToggleVideo 切换视频点赞
// @Summary 切换视频点赞
// @Description 未点赞则点赞，已点赞则取消，返回本次操作的方向
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param video_id path int true "视频ID"
// @Success 200 {object} response.Response{data=dto.ToggleLikeResult} "操作成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /likes/toggle/video/{video_id} [post]
func (h *LikeHandler) ToggleVideo(c *gin.Context) {
	h.toggle(c, model.LikeTargetVideo, "video_id", "无效的视频ID")
}

// ToggleComment 切换评论点赞
// @Summary 切换评论点赞
// @Description 未点赞则点赞，已点赞则取消，返回本次操作的方向
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param comment_id path int true "评论ID"
// @Success 200 {object} response.Response{data=dto.ToggleLikeResult} "操作成功"
// @Failure 404 {object} response.ErrorResponse "评论不存在"
// @Router /likes/toggle/comment/{comment_id} [post]
func (h *LikeHandler) ToggleComment(c *gin.Context) {
	h.toggle(c, model.LikeTargetComment, "comment_id", "无效的评论ID")
}

// ToggleTweet 切换动态点赞
// @Summary 切换动态点赞
// @Description 未点赞则点赞，已点赞则取消，返回本次操作的方向
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param tweet_id path int true "动态ID"
// @Success 200 {object} response.Response{data=dto.ToggleLikeResult} "操作成功"
// @Failure 404 {object} response.ErrorResponse "动态不存在"
// @Router /likes/toggle/tweet/{tweet_id} [post]
func (h *LikeHandler) ToggleTweet(c *gin.Context) {
	h.toggle(c, model.LikeTargetTweet, "tweet_id", "无效的动态ID")
}

func (h *LikeHandler) toggle(c *gin.Context, kind model.LikeTargetKind, paramName, invalidMsg string) {
	targetID, err := strconv.ParseInt(c.Param(paramName), 10, 64)
	if err != nil || targetID <= 0 {
		response.BadRequest(c, invalidMsg)
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	result, err := h.likeService.Toggle(userID, kind, targetID)
	if err != nil {
		handleLikeError(c, err)
		return
	}

	msg := "取消点赞成功"
	if result.Created {
		msg = "点赞成功"
	}
	response.OK(c, msg, result)
}

// GetStatus 获取点赞状态
// @Summary 获取点赞状态
// @Description 查询当前用户对目标的点赞状态和目标的点赞总数
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param kind path string true "目标类型" Enums(video, comment, tweet)
// @Param target_id path int true "目标ID"
// @Success 200 {object} response.Response "查询成功"
// @Router /likes/status/{kind}/{target_id} [get]
func (h *LikeHandler) GetStatus(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("target_id"), 10, 64)
	if err != nil || targetID <= 0 {
		response.BadRequest(c, "无效的目标ID")
		return
	}

	kind := model.LikeTargetKind(c.Param("kind"))
	userID, _ := middleware.GetCurrentUserID(c)

	isLiked, total, err := h.likeService.GetStatus(userID, kind, targetID)
	if err != nil {
		handleLikeError(c, err)
		return
	}

	response.OK(c, "查询点赞状态成功", gin.H{
		"target_kind": kind,
		"target_id":   targetID,
		"is_liked":    isLiked,
		"like_count":  total,
	})
}

// GetLikedVideos 获取我点赞的视频列表
// @Summary 获取我点赞的视频列表
// @Description 分页获取当前用户点赞过的视频，按点赞时间倒序，已删除的视频不出现
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=dto.LikedVideoListData} "获取成功"
// @Router /likes/videos [get]
func (h *LikeHandler) GetLikedVideos(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)
	p := parsePagination(c)

	data, err := h.likeService.GetLikedVideos(userID, p)
	if err != nil {
		logger.Error("Get liked videos failed", zap.Error(err))
		response.InternalError(c, "获取点赞视频列表失败")
		return
	}

	response.OK(c, "获取点赞视频列表成功", data)
}

func handleLikeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidLikeTarget):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrTweetNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Like operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
