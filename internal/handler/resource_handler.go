package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/lifenote/internal/middleware"
	"github.com/weiwangfds/lifenote/internal/response"
	"github.com/weiwangfds/lifenote/internal/service/knowledge"
)

// ResourceHandler 学习资源处理器
type ResourceHandler struct {
	resourceService knowledge.ResourceService
}

// NewResourceHandler 创建学习资源处理器实例
func NewResourceHandler(resourceService knowledge.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

// CreateResource 创建学习资源
// @Summary 创建学习资源
// @Tags 知识库
// @Accept json
// @Produce json
// @Param resource body knowledge.ResourceRequest true "创建资源请求"
// @Success 201 {object} response.APIResponse{data=database.Resource} "创建成功"
// @Failure 400 {object} response.APIResponse "请求参数错误"
// @Router /api/v1/resources [post]
// @Security BearerAuth
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	var req knowledge.ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resource, err := h.resourceService.CreateResource(middleware.CurrentUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resource)
}

// GetResource 获取资源详情
// @Summary 获取资源详情
// @Tags 知识库
// @Produce json
// @Param id path int true "资源ID"
// @Success 200 {object} response.APIResponse{data=database.Resource} "获取成功"
// @Failure 404 {object} response.APIResponse "资源不存在"
// @Router /api/v1/resources/{id} [get]
// @Security BearerAuth
func (h *ResourceHandler) GetResource(c *gin.Context) {
	resourceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	resource, err := h.resourceService.GetResourceByID(middleware.CurrentUserID(c), resourceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resource)
}

// ListResources 资源列表
// @Summary 资源列表
// @Description 分页列出当前用户的学习资源，支持按状态和类型过滤
// @Tags 知识库
// @Produce json
// @Param status query string false "资源状态"
// @Param type query string false "资源类型"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.APIResponse{data=response.PageData} "获取成功"
// @Router /api/v1/resources [get]
// @Security BearerAuth
func (h *ResourceHandler) ListResources(c *gin.Context) {
	filter := knowledge.ResourceListFilter{
		Status:       c.Query("status"),
		ResourceType: c.Query("type"),
		Page:         queryInt(c, "page", 1),
	}

	resources, total, err := h.resourceService.ListResources(middleware.CurrentUserID(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, resources, total, filter.Page, 20)
}

// UpdateResource 更新资源
// @Summary 更新资源
// @Tags 知识库
// @Accept json
// @Produce json
// @Param id path int true "资源ID"
// @Param resource body knowledge.ResourceRequest true "更新资源请求"
// @Success 200 {object} response.APIResponse{data=database.Resource} "更新成功"
// @Failure 404 {object} response.APIResponse "资源不存在"
// @Router /api/v1/resources/{id} [put]
// @Security BearerAuth
func (h *ResourceHandler) UpdateResource(c *gin.Context) {
	resourceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req knowledge.ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resource, err := h.resourceService.UpdateResource(middleware.CurrentUserID(c), resourceID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resource)
}

// DeleteResource 删除资源
// @Summary 删除资源
// @Tags 知识库
// @Produce json
// @Param id path int true "资源ID"
// @Success 200 {object} response.APIResponse "删除成功"
// @Failure 404 {object} response.APIResponse "资源不存在"
// @Router /api/v1/resources/{id} [delete]
// @Security BearerAuth
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	resourceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.resourceService.DeleteResource(middleware.CurrentUserID(c), resourceID); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "resource deleted", nil)
}
