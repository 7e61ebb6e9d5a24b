package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/lifenote/internal/middleware"
	"github.com/weiwangfds/lifenote/internal/response"
	"github.com/weiwangfds/lifenote/internal/service/tasks"
)

// TaskHandler 任务处理器
type TaskHandler struct {
	taskService tasks.TaskService
}

// NewTaskHandler 创建任务处理器实例
func NewTaskHandler(taskService tasks.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTask 创建任务
// @Summary 创建任务
// @Tags 任务
// @Accept json
// @Produce json
// @Param task body tasks.TaskRequest true "创建任务请求"
// @Success 201 {object} response.APIResponse{data=database.Task} "创建成功"
// @Failure 400 {object} response.APIResponse "请求参数错误"
// @Router /api/v1/tasks [post]
// @Security BearerAuth
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req tasks.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.CreateTask(middleware.CurrentUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, task)
}

// GetTask 获取任务详情
// @Summary 获取任务详情
// @Tags 任务
// @Produce json
// @Param id path int true "任务ID"
// @Success 200 {object} response.APIResponse{data=database.Task} "获取成功"
// @Failure 404 {object} response.APIResponse "任务不存在"
// @Router /api/v1/tasks/{id} [get]
// @Security BearerAuth
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTaskByID(middleware.CurrentUserID(c), taskID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, task)
}

// ListTasks 任务列表
// @Summary 任务列表
// @Description 列出当前用户的任务，支持按状态、优先级和类型过滤
// @Tags 任务
// @Produce json
// @Param status query string false "任务状态"
// @Param priority query string false "优先级"
// @Param type query string false "任务类型"
// @Success 200 {object} response.APIResponse{data=[]database.Task} "获取成功"
// @Router /api/v1/tasks [get]
// @Security BearerAuth
func (h *TaskHandler) ListTasks(c *gin.Context) {
	filter := tasks.TaskListFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		TaskType: c.Query("type"),
	}

	taskList, err := h.taskService.ListTasks(middleware.CurrentUserID(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, taskList)
}

// UpdateTask 更新任务
// @Summary 更新任务
// @Description 状态首次转为completed时写入完成时间
// @Tags 任务
// @Accept json
// @Produce json
// @Param id path int true "任务ID"
// @Param task body tasks.TaskRequest true "更新任务请求"
// @Success 200 {object} response.APIResponse{data=database.Task} "更新成功"
// @Failure 404 {object} response.APIResponse "任务不存在"
// @Router /api/v1/tasks/{id} [put]
// @Security BearerAuth
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req tasks.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.UpdateTask(middleware.CurrentUserID(c), taskID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, task)
}

// DeleteTask 删除任务
// @Summary 删除任务
// @Tags 任务
// @Produce json
// @Param id path int true "任务ID"
// @Success 200 {object} response.APIResponse "删除成功"
// @Failure 404 {object} response.APIResponse "任务不存在"
// @Router /api/v1/tasks/{id} [delete]
// @Security BearerAuth
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(middleware.CurrentUserID(c), taskID); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "task deleted", nil)
}

// GetDashboard 任务面板
// @Summary 任务面板
// @Description 返回今日到期、已逾期、待处理、进行中的任务和最近学习记录
// @Tags 任务
// @Produce json
// @Success 200 {object} response.APIResponse{data=tasks.Dashboard} "获取成功"
// @Router /api/v1/tasks/dashboard [get]
// @Security BearerAuth
func (h *TaskHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.taskService.GetDashboard(middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dashboard)
}
