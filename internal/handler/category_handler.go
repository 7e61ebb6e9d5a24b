package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/lifenote/internal/response"
	"github.com/weiwangfds/lifenote/internal/service/blog"
)

// CategoryHandler 博客分类处理器
type CategoryHandler struct {
	categoryService blog.CategoryService
}

// NewCategoryHandler 创建博客分类处理器实例
func NewCategoryHandler(categoryService blog.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategory 创建分类
// @Summary 创建分类
// @Tags 博客
// @Accept json
// @Produce json
// @Param category body blog.CategoryRequest true "创建分类请求"
// @Success 201 {object} response.APIResponse{data=database.Category} "创建成功"
// @Failure 400 {object} response.APIResponse "请求参数错误"
// @Router /api/v1/categories [post]
// @Security BearerAuth
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req blog.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, category)
}

// GetCategory 获取分类详情
// @Summary 获取分类详情
// @Tags 博客
// @Produce json
// @Param id path int true "分类ID"
// @Success 200 {object} response.APIResponse{data=database.Category} "获取成功"
// @Failure 404 {object} response.APIResponse "分类不存在"
// @Router /api/v1/categories/{id} [get]
// @Security BearerAuth
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategoryByID(categoryID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, category)
}

// ListCategories 分类列表
// @Summary 分类列表
// @Description 返回全部分类及各自的文章数量，按名称排序
// @Tags 博客
// @Produce json
// @Success 200 {object} response.APIResponse{data=[]blog.CategoryWithCount} "获取成功"
// @Router /api/v1/categories [get]
// @Security BearerAuth
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, categories)
}

// UpdateCategory 更新分类
// @Summary 更新分类
// @Tags 博客
// @Accept json
// @Produce json
// @Param id path int true "分类ID"
// @Param category body blog.CategoryRequest true "更新分类请求"
// @Success 200 {object} response.APIResponse{data=database.Category} "更新成功"
// @Failure 404 {object} response.APIResponse "分类不存在"
// @Router /api/v1/categories/{id} [put]
// @Security BearerAuth
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req blog.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.UpdateCategory(categoryID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类
// @Summary 删除分类
// @Description 删除分类，关联文章改为未分类
// @Tags 博客
// @Produce json
// @Param id path int true "分类ID"
// @Success 200 {object} response.APIResponse "删除成功"
// @Failure 404 {object} response.APIResponse "分类不存在"
// @Router /api/v1/categories/{id} [delete]
// @Security BearerAuth
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(categoryID); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "category deleted", nil)
}
