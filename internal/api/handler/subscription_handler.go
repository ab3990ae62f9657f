package handler

import (
	"errors"
	"strconv"

	"playtube/internal/api/middleware"
	"playtube/internal/api/response"
	"playtube/internal/service"
	"playtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Toggle 切换订阅
// @Summary 切换订阅
// @Description 未订阅则订阅，已订阅则取消，不能订阅自己
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param channel_id path int true "频道（用户）ID"
// @Success 200 {object} response.Response{data=dto.ToggleSubscriptionResult} "操作成功"
// @Failure 400 {object} response.ErrorResponse "不能订阅自己"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Router /subscriptions/channel/{channel_id} [post]
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	channelID, err := strconv.ParseInt(c.Param("channel_id"), 10, 64)
	if err != nil || channelID <= 0 {
		response.BadRequest(c, "无效的频道ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	result, err := h.subscriptionService.Toggle(userID, channelID)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}

	msg := "取消订阅成功"
	if result.Created {
		msg = "订阅成功"
	}
	response.OK(c, msg, result)
}

// GetChannelSubscribers 获取频道订阅者列表
// @Summary 获取频道订阅者列表
// @Description 分页获取订阅了指定频道的用户，含各自的订阅者数和频道是否反向订阅
// @Tags 订阅
// @Produce json
// @Param channel_id path int true "频道（用户）ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=dto.SubscriberListData} "获取成功"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Router /subscriptions/channel/{channel_id} [get]
func (h *SubscriptionHandler) GetChannelSubscribers(c *gin.Context) {
	channelID, err := strconv.ParseInt(c.Param("channel_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的频道ID")
		return
	}

	p := parsePagination(c)

	data, err := h.subscriptionService.GetChannelSubscribers(channelID, p)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}

	response.OK(c, "获取订阅者列表成功", data)
}

// GetSubscribedChannels 获取我订阅的频道列表
// @Summary 获取我订阅的频道列表
// @Description 分页获取当前用户订阅的频道，含各频道最新发布的视频
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=dto.SubscribedChannelListData} "获取成功"
// @Router /subscriptions/my [get]
func (h *SubscriptionHandler) GetSubscribedChannels(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)
	p := parsePagination(c)

	data, err := h.subscriptionService.GetSubscribedChannels(userID, p)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}

	response.OK(c, "获取订阅频道列表成功", data)
}

// GetStatus 获取订阅状态
// @Summary 获取订阅状态
// @Description 查询当前用户是否订阅了指定频道
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param channel_id path int true "频道（用户）ID"
// @Success 200 {object} response.Response "查询成功"
// @Router /subscriptions/channel/{channel_id}/status [get]
func (h *SubscriptionHandler) GetStatus(c *gin.Context) {
	channelID, err := strconv.ParseInt(c.Param("channel_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的频道ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	isSubscribed, err := h.subscriptionService.GetStatus(userID, channelID)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}

	response.OK(c, "查询订阅状态成功", gin.H{
		"channel_id":    channelID,
		"is_subscribed": isSubscribed,
	})
}

func handleSubscriptionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCannotSubscribeSelf):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Subscription operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
