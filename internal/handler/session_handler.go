package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/lifenote/internal/middleware"
	"github.com/weiwangfds/lifenote/internal/response"
	"github.com/weiwangfds/lifenote/internal/service/tasks"
)

// SessionHandler 学习记录处理器
type SessionHandler struct {
	sessionService tasks.SessionService
}

// NewSessionHandler 创建学习记录处理器实例
func NewSessionHandler(sessionService tasks.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// CreateSession 创建学习记录
// @Summary 创建学习记录
// @Tags 任务
// @Accept json
// @Produce json
// @Param session body tasks.SessionRequest true "创建学习记录请求"
// @Success 201 {object} response.APIResponse{data=database.StudySession} "创建成功"
// @Failure 400 {object} response.APIResponse "请求参数错误"
// @Router /api/v1/study-sessions [post]
// @Security BearerAuth
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req tasks.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.sessionService.CreateSession(middleware.CurrentUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

// GetSession 获取学习记录详情
// @Summary 获取学习记录详情
// @Tags 任务
// @Produce json
// @Param id path int true "学习记录ID"
// @Success 200 {object} response.APIResponse{data=database.StudySession} "获取成功"
// @Failure 404 {object} response.APIResponse "学习记录不存在"
// @Router /api/v1/study-sessions/{id} [get]
// @Security BearerAuth
func (h *SessionHandler) GetSession(c *gin.Context) {
	sessionID, ok := parseIDParam(c)
	if !ok {
		return
	}

	session, err := h.sessionService.GetSessionByID(middleware.CurrentUserID(c), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, session)
}

// ListSessions 学习记录列表
// @Summary 学习记录列表
// @Description 列出当前用户的学习记录，按日期倒序
// @Tags 任务
// @Produce json
// @Success 200 {object} response.APIResponse{data=[]database.StudySession} "获取成功"
// @Router /api/v1/study-sessions [get]
// @Security BearerAuth
func (h *SessionHandler) ListSessions(c *gin.Context) {
	sessions, err := h.sessionService.ListSessions(middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, sessions)
}

// UpdateSession 更新学习记录
// @Summary 更新学习记录
// @Tags 任务
// @Accept json
// @Produce json
// @Param id path int true "学习记录ID"
// @Param session body tasks.SessionRequest true "更新学习记录请求"
// @Success 200 {object} response.APIResponse{data=database.StudySession} "更新成功"
// @Failure 404 {object} response.APIResponse "学习记录不存在"
// @Router /api/v1/study-sessions/{id} [put]
// @Security BearerAuth
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	sessionID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req tasks.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.sessionService.UpdateSession(middleware.CurrentUserID(c), sessionID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, session)
}

// DeleteSession 删除学习记录
// @Summary 删除学习记录
// @Tags 任务
// @Produce json
// @Param id path int true "学习记录ID"
// @Success 200 {object} response.APIResponse "删除成功"
// @Failure 404 {object} response.APIResponse "学习记录不存在"
// @Router /api/v1/study-sessions/{id} [delete]
// @Security BearerAuth
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	sessionID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.sessionService.DeleteSession(middleware.CurrentUserID(c), sessionID); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "study session deleted", nil)
}
