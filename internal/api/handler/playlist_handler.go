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

type PlaylistHandler struct {
	playlistService *service.PlaylistService
}

func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// Create 创建播放列表
// @Summary 创建播放列表
// @Description 创建空的播放列表
// @Tags 播放列表
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PlaylistCreateRequest true "播放列表信息"
// @Success 201 {object} response.Response{data=dto.PlaylistInfo} "创建成功"
// @Router /playlists [post]
func (h *PlaylistHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	var req dto.PlaylistCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.playlistService.Create(userID, &req)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.Created(c, "创建播放列表成功", info)
}

// GetByID 获取播放列表详情
// @Summary 获取播放列表详情
// @Description 获取播放列表信息和其中的视频，视频按插入顺序排列
// @Tags 播放列表
// @Produce json
// @Param id path int true "播放列表ID"
// @Success 200 {object} response.Response{data=dto.PlaylistDetail} "获取成功"
// @Failure 404 {object} response.ErrorResponse "播放列表不存在"
// @Router /playlists/{id} [get]
func (h *PlaylistHandler) GetByID(c *gin.Context) {
	playlistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的播放列表ID")
		return
	}

	viewerID := middleware.GetViewerID(c)

	detail, err := h.playlistService.GetByID(playlistID, viewerID)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "获取播放列表成功", detail)
}

// Update 更新播放列表
// @Summary 更新播放列表
// @Description 更新名称和描述，仅创建者本人可操作
// @Tags 播放列表
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "播放列表ID"
// @Param request body dto.PlaylistUpdateRequest true "更新字段"
// @Success 200 {object} response.Response{data=dto.PlaylistInfo} "更新成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /playlists/{id} [patch]
func (h *PlaylistHandler) Update(c *gin.Context) {
	playlistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的播放列表ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	var req dto.PlaylistUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.playlistService.Update(playlistID, userID, &req)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "更新播放列表成功", info)
}

// Delete 删除播放列表
// @Summary 删除播放列表
// @Description 删除播放列表及其条目，仅创建者本人可操作，不影响视频本身
// @Tags 播放列表
// @Produce json
// @Security BearerAuth
// @Param id path int true "播放列表ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /playlists/{id} [delete]
func (h *PlaylistHandler) Delete(c *gin.Context) {
	playlistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的播放列表ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.playlistService.Delete(playlistID, userID); err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "删除播放列表成功", nil)
}

// AddVideo 向播放列表添加视频
// @Summary 向播放列表添加视频
// @Description 将视频追加到播放列表尾部，重复添加不产生多条记录
// @Tags 播放列表
// @Produce json
// @Security BearerAuth
// @Param id path int true "播放列表ID"
// @Param video_id path int true "视频ID"
// @Success 200 {object} response.Response "添加成功"
// @Failure 404 {object} response.ErrorResponse "播放列表或视频不存在"
// @Router /playlists/{id}/videos/{video_id} [post]
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	playlistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的播放列表ID")
		return
	}

	videoID, err := strconv.ParseInt(c.Param("video_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.playlistService.AddVideo(playlistID, videoID, userID); err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "添加视频成功", nil)
}

// RemoveVideo 从播放列表移除视频
// @Summary 从播放列表移除视频
// @Description 从播放列表移除视频，不影响视频本身
// @Tags 播放列表
// @Produce json
// @Security BearerAuth
// @Param id path int true "播放列表ID"
// @Param video_id path int true "视频ID"
// @Success 200 {object} response.Response "移除成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /playlists/{id}/videos/{video_id} [delete]
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	playlistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的播放列表ID")
		return
	}

	videoID, err := strconv.ParseInt(c.Param("video_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.playlistService.RemoveVideo(playlistID, videoID, userID); err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "移除视频成功", nil)
}

// ListByUser 获取用户的播放列表
// @Summary 获取用户的播放列表
// @Description 获取指定用户创建的播放列表，含过滤后的视频数和总播放量
// @Tags 播放列表
// @Produce json
// @Param user_id path int true "用户ID"
// @Success 200 {object} response.Response{data=[]dto.PlaylistInfo} "获取成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /playlists/user/{user_id} [get]
func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	ownerID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	infos, err := h.playlistService.ListByUser(ownerID)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "获取播放列表成功", gin.H{"playlists": infos})
}

func handlePlaylistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlaylistNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrPlaylistNoPermission):
		response.Forbidden(c, err.Error())
	default:
		logger.Error("Playlist operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
