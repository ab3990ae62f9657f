package handler

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"playtube/internal/api/dto"
	"playtube/internal/api/middleware"
	"playtube/internal/api/response"
	"playtube/internal/service"
	"playtube/pkg/logger"
	"playtube/pkg/pagination"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type VideoHandler struct {
	videoService *service.VideoService
}

func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// Upload 上传视频
// @Summary 上传视频
// @Description 上传视频文件并提交转码任务，转码完成前视频保持未发布状态
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "标题"
// @Param description formData string false "描述"
// @Param video_file formData file true "视频文件"
// @Success 201 {object} response.Response{data=dto.VideoInfo} "上传成功"
// @Failure 400 {object} response.ErrorResponse "参数错误或文件缺失"
// @Router /videos [post]
func (h *VideoHandler) Upload(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	var req dto.VideoUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	fileHeader, err := c.FormFile("video_file")
	if err != nil {
		response.BadRequest(c, "缺少视频文件")
		return
	}

	ext := strings.TrimPrefix(filepath.Ext(fileHeader.Filename), ".")
	if ext == "" {
		response.BadRequest(c, "无法识别的文件格式")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Open uploaded file failed", zap.Error(err))
		response.InternalError(c, "读取上传文件失败")
		return
	}
	defer file.Close()

	info, err := h.videoService.Upload(userID, &req, file, fileHeader.Size, ext)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.Created(c, "上传成功，视频转码中", info)
}

// GetDetail 获取视频详情
// @Summary 获取视频详情
// @Description 获取视频信息，含作者频道信息、点赞数和当前观看者的点赞/订阅状态
// @Tags 视频
// @Produce json
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response{data=dto.VideoDetail} "获取成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id} [get]
func (h *VideoHandler) GetDetail(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	viewerID := middleware.GetViewerID(c)

	detail, err := h.videoService.GetDetail(videoID, viewerID)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "获取视频详情成功", detail)
}

// Update 更新视频信息
// @Summary 更新视频信息
// @Description 更新标题、描述或封面图，仅作者本人可操作
// @Tags 视频
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Param request body dto.VideoUpdateRequest true "更新字段"
// @Success 200 {object} response.Response{data=dto.VideoInfo} "更新成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /videos/{id} [patch]
func (h *VideoHandler) Update(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	var req dto.VideoUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.videoService.Update(videoID, userID, &req)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "更新视频成功", info)
}

// TogglePublish 切换发布状态
// @Summary 切换发布状态
// @Description 在已发布和未发布之间切换，仅作者本人可操作
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response{data=dto.VideoInfo} "切换成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /videos/{id}/toggle-publish [patch]
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.videoService.TogglePublish(videoID, userID)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "切换发布状态成功", info)
}

// Delete 删除视频
// @Summary 删除视频
// @Description 删除视频记录，仅作者本人可操作
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /videos/{id} [delete]
func (h *VideoHandler) Delete(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.videoService.Delete(videoID, userID); err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "删除视频成功", nil)
}

// Feed 获取视频流
// @Summary 获取视频流
// @Description 分页获取已发布的视频列表，按创建时间倒序
// @Tags 视频
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=dto.VideoListData} "获取成功"
// @Router /videos [get]
func (h *VideoHandler) Feed(c *gin.Context) {
	viewerID := middleware.GetViewerID(c)
	p := parsePagination(c)

	data, err := h.videoService.GetFeed(viewerID, p)
	if err != nil {
		logger.Error("Get video feed failed", zap.Error(err))
		response.InternalError(c, "获取视频列表失败")
		return
	}

	response.OK(c, "获取视频列表成功", data)
}

// GetChannelVideos 获取频道的已发布视频列表
// @Summary 获取频道视频列表
// @Description 分页获取指定用户已发布的视频
// @Tags 视频
// @Produce json
// @Param user_id path int true "用户ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=dto.VideoListData} "获取成功"
// @Router /videos/user/{user_id} [get]
func (h *VideoHandler) GetChannelVideos(c *gin.Context) {
	ownerID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	viewerID := middleware.GetViewerID(c)
	p := parsePagination(c)

	data, err := h.videoService.GetChannelVideos(ownerID, viewerID, true, p)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "获取频道视频成功", data)
}

// parsePagination 从查询参数解析分页，缺失或非法时回退默认值
func parsePagination(c *gin.Context) pagination.Params {
	return pagination.Parse(c.Query("page"), c.Query("limit"))
}

func handleVideoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrVideoNoPermission):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrNoFieldsToUpdate):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Video operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
