package handler

import (
	"errors"

	"playtube/internal/api/dto"
	"playtube/internal/api/middleware"
	"playtube/internal/api/response"
	"playtube/internal/service"
	"playtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfile 更新账户资料
// @Summary 更新账户资料
// @Description 更新当前用户的姓名、邮箱、头像或封面图，至少提供一个字段
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "更新字段"
// @Success 200 {object} response.Response{data=dto.UserInfo} "更新成功"
// @Failure 400 {object} response.ErrorResponse "没有需要更新的字段"
// @Failure 409 {object} response.ErrorResponse "邮箱已被占用"
// @Router /users/me [patch]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "更新资料成功", info)
}

// GetChannelProfile 获取频道主页
// @Summary 获取频道主页
// @Description 按用户名获取频道信息，含订阅者数、关注数和当前观看者的订阅状态
// @Tags 用户
// @Produce json
// @Param username path string true "用户名"
// @Success 200 {object} response.Response{data=dto.ChannelProfile} "获取成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /users/c/{username} [get]
func (h *UserHandler) GetChannelProfile(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		response.BadRequest(c, "用户名不能为空")
		return
	}

	viewerID := middleware.GetViewerID(c)

	profile, err := h.userService.GetChannelProfile(username, viewerID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "获取频道信息成功", profile)
}

func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrEmailExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrNoFieldsToUpdate):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("User operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
