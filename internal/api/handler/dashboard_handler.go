package handler

import (
	"playtube/internal/api/middleware"
	"playtube/internal/api/response"
	"playtube/internal/service"
	"playtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats 获取频道统计
// @Summary 获取频道统计
// @Description 获取当前用户频道的订阅者数、视频数、总播放量和总点赞数
// @Tags 创作者后台
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.ChannelStats} "获取成功"
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	stats, err := h.dashboardService.GetChannelStats(userID)
	if err != nil {
		logger.Error("Get channel stats failed", zap.Error(err))
		response.InternalError(c, "获取频道统计失败")
		return
	}

	response.OK(c, "获取频道统计成功", stats)
}

// GetVideos 获取我的全部视频
// @Summary 获取我的全部视频
// @Description 分页获取当前用户的视频，包括未发布的
// @Tags 创作者后台
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=dto.VideoListData} "获取成功"
// @Router /dashboard/videos [get]
func (h *DashboardHandler) GetVideos(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)
	p := parsePagination(c)

	data, err := h.dashboardService.GetChannelVideos(userID, p)
	if err != nil {
		logger.Error("Get dashboard videos failed", zap.Error(err))
		response.InternalError(c, "获取视频列表失败")
		return
	}

	response.OK(c, "获取视频列表成功", data)
}
