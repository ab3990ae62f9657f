package handler

import (
	"errors"
	"strconv"

	"playtube/internal/api/dto"
	"playtube/internal/api/middleware"
	"playtube/internal/api/response"
	"playtube/internal/service"
	"playtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TweetHandler struct {
	tweetService *service.TweetService
}

func NewTweetHandler(tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

// Create 发布动态
// @Summary 发布动态
// @Description 发布一条文字动态
// @Tags 动态
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TweetCreateRequest true "动态内容"
// @Success 201 {object} response.Response{data=dto.TweetInfo} "发布成功"
// @Router /tweets [post]
func (h *TweetHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	var req dto.TweetCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.tweetService.Create(userID, &req)
	if err != nil {
		handleTweetError(c, err)
		return
	}

	response.Created(c, "发布动态成功", info)
}

// ListByUser 获取用户动态列表
// @Summary 获取用户动态列表
// @Description 分页获取指定用户的动态，按创建时间倒序
// @Tags 动态
// @Produce json
// @Param user_id path int true "用户ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=dto.TweetListData} "获取成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /tweets/user/{user_id} [get]
func (h *TweetHandler) ListByUser(c *gin.Context) {
	ownerID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	viewerID := middleware.GetViewerID(c)
	p := parsePagination(c)

	data, err := h.tweetService.ListByUser(ownerID, viewerID, p)
	if err != nil {
		handleTweetError(c, err)
		return
	}

	response.OK(c, "获取动态列表成功", data)
}

// Update 更新动态
// @Summary 更新动态
// @Description 更新动态内容，仅作者本人可操作
// @Tags 动态
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "动态ID"
// @Param request body dto.TweetUpdateRequest true "动态内容"
// @Success 200 {object} response.Response{data=dto.TweetInfo} "更新成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /tweets/{id} [patch]
func (h *TweetHandler) Update(c *gin.Context) {
	tweetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的动态ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	var req dto.TweetUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.tweetService.Update(tweetID, userID, &req)
	if err != nil {
		handleTweetError(c, err)
		return
	}

	response.OK(c, "更新动态成功", info)
}

// Delete 删除动态
// @Summary 删除动态
// @Description 删除动态，仅作者本人可操作
// @Tags 动态
// @Produce json
// @Security BearerAuth
// @Param id path int true "动态ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /tweets/{id} [delete]
func (h *TweetHandler) Delete(c *gin.Context) {
	tweetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的动态ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.tweetService.Delete(tweetID, userID); err != nil {
		handleTweetError(c, err)
		return
	}

	response.OK(c, "删除动态成功", nil)
}

func handleTweetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTweetNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrTweetNoPermission):
		response.Forbidden(c, err.Error())
	default:
		logger.Error("Tweet operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
