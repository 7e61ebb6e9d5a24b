package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/lifenote/internal/response"
	"github.com/weiwangfds/lifenote/internal/service/tasks"
)

// List100Handler 人生清单处理器
// 清单为全站共享，写操作需要登录，读取在公开端另有入口
type List100Handler struct {
	listService tasks.List100Service
}

// NewList100Handler 创建人生清单处理器实例
func NewList100Handler(listService tasks.List100Service) *List100Handler {
	return &List100Handler{listService: listService}
}

// CreateItem 创建清单条目
// @Summary 创建清单条目
// @Tags 任务
// @Accept json
// @Produce json
// @Param item body tasks.List100Request true "创建清单条目请求"
// @Success 201 {object} response.APIResponse{data=database.List100Item} "创建成功"
// @Failure 400 {object} response.APIResponse "请求参数错误"
// @Router /api/v1/list100 [post]
// @Security BearerAuth
func (h *List100Handler) CreateItem(c *gin.Context) {
	var req tasks.List100Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.listService.CreateItem(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// GetItem 获取清单条目详情
// @Summary 获取清单条目详情
// @Tags 任务
// @Produce json
// @Param id path int true "条目ID"
// @Success 200 {object} response.APIResponse{data=database.List100Item} "获取成功"
// @Failure 404 {object} response.APIResponse "条目不存在"
// @Router /api/v1/list100/{id} [get]
// @Security BearerAuth
func (h *List100Handler) GetItem(c *gin.Context) {
	itemID, ok := parseIDParam(c)
	if !ok {
		return
	}

	item, err := h.listService.GetItemByID(itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// ListItems 清单条目列表
// @Summary 清单条目列表
// @Description 返回全部清单条目，按展示顺序排列
// @Tags 任务
// @Produce json
// @Success 200 {object} response.APIResponse{data=[]database.List100Item} "获取成功"
// @Router /api/v1/list100 [get]
// @Security BearerAuth
func (h *List100Handler) ListItems(c *gin.Context) {
	items, err := h.listService.ListItems()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

// UpdateItem 更新清单条目
// @Summary 更新清单条目
// @Description 状态首次转为completed时写入完成时间
// @Tags 任务
// @Accept json
// @Produce json
// @Param id path int true "条目ID"
// @Param item body tasks.List100Request true "更新清单条目请求"
// @Success 200 {object} response.APIResponse{data=database.List100Item} "更新成功"
// @Failure 404 {object} response.APIResponse "条目不存在"
// @Router /api/v1/list100/{id} [put]
// @Security BearerAuth
func (h *List100Handler) UpdateItem(c *gin.Context) {
	itemID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req tasks.List100Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.listService.UpdateItem(itemID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// DeleteItem 删除清单条目
// @Summary 删除清单条目
// @Tags 任务
// @Produce json
// @Param id path int true "条目ID"
// @Success 200 {object} response.APIResponse "删除成功"
// @Failure 404 {object} response.APIResponse "条目不存在"
// @Router /api/v1/list100/{id} [delete]
// @Security BearerAuth
func (h *List100Handler) DeleteItem(c *gin.Context) {
	itemID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.listService.DeleteItem(itemID); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "list item deleted", nil)
}

// GetStats 清单状态统计
// @Summary 清单状态统计
// @Tags 任务
// @Produce json
// @Success 200 {object} response.APIResponse{data=tasks.List100Stats} "获取成功"
// @Router /api/v1/list100/stats [get]
// @Security BearerAuth
func (h *List100Handler) GetStats(c *gin.Context) {
	stats, err := h.listService.GetStats()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
