// Package handler 提供HTTP处理器
// 将REST请求绑定到各业务服务，统一使用response包的响应格式
package handler

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/lifenote/internal/database"
	"github.com/weiwangfds/lifenote/internal/middleware"
	"github.com/weiwangfds/lifenote/internal/render"
	"github.com/weiwangfds/lifenote/internal/response"
	"github.com/weiwangfds/lifenote/internal/service/knowledge"
)

// EntryHandler 知识条目处理器
// 提供条目管理的HTTP接口，包括CRUD、层级导航、搜索和排序调整
type EntryHandler struct {
	entryService knowledge.EntryService
}

// NewEntryHandler 创建知识条目处理器实例
func NewEntryHandler(entryService knowledge.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// EntryView 条目的API表示
// 在模型字段之外附加反规范化字段和渲染结果
type EntryView struct {
	database.Entry
	TopicName   string           `json:"topic_name"`   // 所属主题名称
	UserName    string           `json:"user_name"`    // 所属用户名
	TagsList    []string         `json:"tags_list"`    // 拆分后的标签列表
	ContentHTML string           `json:"content_html,omitempty"` // 渲染并消毒后的HTML
	Headings    []render.Heading `json:"headings,omitempty"`     // 从HTML提取的目录
}

// newEntryView 构造条目的列表视图，不渲染正文
func newEntryView(entry database.Entry) EntryView {
	view := EntryView{
		Entry:    entry,
		TagsList: entry.TagsList(),
	}
	if entry.Topic != nil {
		view.TopicName = entry.Topic.Name
	}
	if entry.User != nil {
		view.UserName = entry.User.Username
	}
	return view
}

// newEntryDetailView 构造条目的详情视图，包含渲染后的正文和目录
func newEntryDetailView(entry database.Entry) EntryView {
	view := newEntryView(entry)
	view.ContentHTML = render.Markdown(entry.Content)
	view.Headings = render.ExtractHeadings(view.ContentHTML)
	return view
}

// newEntryViews 批量构造列表视图
func newEntryViews(entries []database.Entry) []EntryView {
	views := make([]EntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, newEntryView(entry))
	}
	return views
}

// CreateEntry 创建知识条目
// @Summary 创建知识条目
// @Description 创建一个新的知识条目，支持层级结构、主题归类和标签
// @Tags 知识库
// @Accept json
// @Produce json
// @Param entry body knowledge.CreateEntryRequest true "创建条目请求"
// @Success 201 {object} response.APIResponse{data=EntryView} "创建成功"
// @Failure 400 {object} response.APIResponse "请求参数错误"
// @Router /api/v1/entries [post]
// @Security BearerAuth
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	var req knowledge.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entry, err := h.entryService.CreateEntry(middleware.CurrentUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, newEntryView(*entry))
}

// GetEntry 获取条目详情
// @Summary 获取条目详情
// @Description 返回条目内容、渲染后的HTML和标题目录
// @Tags 知识库
// @Produce json
// @Param id path int true "条目ID"
// @Success 200 {object} response.APIResponse{data=EntryView} "获取成功"
// @Failure 404 {object} response.APIResponse "条目不存在"
// @Router /api/v1/entries/{id} [get]
// @Security BearerAuth
func (h *EntryHandler) GetEntry(c *gin.Context) {
	entryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	entry, err := h.entryService.GetEntryByID(middleware.CurrentUserID(c), entryID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, newEntryDetailView(*entry))
}

// ListEntries 条目列表
// @Summary 条目列表
// @Description 分页列出当前用户的条目，支持按主题和类型过滤
// @Tags 知识库
// @Produce json
// @Param topic query int false "主题ID"
// @Param type query string false "条目类型"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.APIResponse{data=response.PageData} "获取成功"
// @Router /api/v1/entries [get]
// @Security BearerAuth
func (h *EntryHandler) ListEntries(c *gin.Context) {
	filter := knowledge.EntryListFilter{
		EntryType: c.Query("type"),
		Page:      queryInt(c, "page", 1),
	}
	if topicID, ok := queryUint(c, "topic"); ok {
		filter.TopicID = &topicID
	}

	entries, total, err := h.entryService.ListEntries(middleware.CurrentUserID(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, newEntryViews(entries), total, filter.Page, 20)
}

// UpdateEntry 更新条目
// @Summary 更新条目
// @Tags 知识库
// @Accept json
// @Produce json
// @Param id path int true "条目ID"
// @Param entry body knowledge.UpdateEntryRequest true "更新条目请求"
// @Success 200 {object} response.APIResponse{data=EntryView} "更新成功"
// @Failure 404 {object} response.APIResponse "条目不存在"
// @Router /api/v1/entries/{id} [put]
// @Security BearerAuth
func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	entryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req knowledge.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entry, err := h.entryService.UpdateEntry(middleware.CurrentUserID(c), entryID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, newEntryView(*entry))
}

// DeleteEntry 删除条目
// @Summary 删除条目
// @Description 删除条目，其子条目被置为根条目而非级联删除
// @Tags 知识库
// @Produce json
// @Param id path int true "条目ID"
// @Success 200 {object} response.APIResponse "删除成功"
// @Failure 404 {object} response.APIResponse "条目不存在"
// @Router /api/v1/entries/{id} [delete]
// @Security BearerAuth
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	entryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.entryService.DeleteEntry(middleware.CurrentUserID(c), entryID); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "entry deleted", nil)
}

// GetChildren 获取子条目
// @Summary 获取条目的直接子条目
// @Tags 知识库
// @Produce json
// @Param id path int true "条目ID"
// @Success 200 {object} response.APIResponse{data=[]EntryView} "获取成功"
// @Router /api/v1/entries/{id}/children [get]
// @Security BearerAuth
func (h *EntryHandler) GetChildren(c *gin.Context) {
	entryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	children, err := h.entryService.GetChildren(middleware.CurrentUserID(c), entryID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, newEntryViews(children))
}

// GetSiblings 获取同级条目
// @Summary 获取条目的同级条目
// @Tags 知识库
// @Produce json
// @Param id path int true "条目ID"
// @Success 200 {object} response.APIResponse{data=[]EntryView} "获取成功"
// @Router /api/v1/entries/{id}/siblings [get]
// @Security BearerAuth
func (h *EntryHandler) GetSiblings(c *gin.Context) {
	entryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	siblings, err := h.entryService.GetSiblings(middleware.CurrentUserID(c), entryID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, newEntryViews(siblings))
}

// GetEntryTree 获取侧边栏导航树
// @Summary 获取条目导航树
// @Description 返回根条目列表，每个根条目递归挂载子条目
// @Tags 知识库
// @Produce json
// @Success 200 {object} response.APIResponse{data=[]database.Entry} "获取成功"
// @Router /api/v1/entries/tree [get]
// @Security BearerAuth
func (h *EntryHandler) GetEntryTree(c *gin.Context) {
	roots, err := h.entryService.GetEntryTree(middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, roots)
}

// SearchResult 搜索响应
type SearchResult struct {
	Results     []EntryView `json:"results"`      // 命中的条目
	ResultCount int         `json:"result_count"` // 命中数量
	QueryTime   string      `json:"query_time"`   // 查询耗时
}

// SearchEntries 搜索条目
// @Summary 搜索条目
// @Description 在标题、内容、摘要和标签中做子串匹配；空查询串返回空结果
// @Tags 知识库
// @Produce json
// @Param q query string false "查询串"
// @Param topic query int false "主题ID"
// @Param type query string false "条目类型"
// @Success 200 {object} response.APIResponse{data=SearchResult} "获取成功"
// @Router /api/v1/search [get]
// @Security BearerAuth
func (h *EntryHandler) SearchEntries(c *gin.Context) {
	var topicID *uint
	if id, ok := queryUint(c, "topic"); ok {
		topicID = &id
	}

	results, elapsed, err := h.entryService.SearchEntries(
		middleware.CurrentUserID(c), c.Query("q"), topicID, c.Query("type"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, SearchResult{
		Results:     newEntryViews(results),
		ResultCount: len(results),
		QueryTime:   fmt.Sprintf("%.4fs", elapsed.Seconds()),
	})
}

// reorderPayload 排序调整请求的原始形态
// parent字段接受数字、数字字符串或空串哨兵，需要延迟解析
type reorderPayload struct {
	Order  *int             `json:"order"`
	Parent *json.RawMessage `json:"parent"`
}

// ReorderEntry 调整条目的排序值和父条目
// @Summary 调整条目排序
// @Description 接受{order?, parent?}；parent为空串时升为根条目，非法值返回400
// @Tags 知识库
// @Accept json
// @Produce json
// @Param id path int true "条目ID"
// @Success 200 {object} response.APIResponse{data=EntryView} "调整成功"
// @Failure 400 {object} response.APIResponse "parent取值非法"
// @Router /api/v1/entries/{id}/reorder [patch]
// @Security BearerAuth
func (h *EntryHandler) ReorderEntry(c *gin.Context) {
	entryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload reorderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	req := knowledge.ReorderEntryRequest{SortOrder: payload.Order}
	if payload.Parent != nil {
		parentID, valid := parseParentValue(*payload.Parent)
		if !valid {
			c.JSON(400, gin.H{"error": "Invalid parent ID"})
			return
		}
		req.SetParent = true
		req.ParentID = parentID
	}

	entry, err := h.entryService.ReorderEntry(middleware.CurrentUserID(c), entryID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, newEntryView(*entry))
}

// parseParentValue 解析reorder请求中的parent取值
// 接受JSON数字、数字字符串和空串（升为根条目）；
// null与其余形态均视为非法
func parseParentValue(raw json.RawMessage) (*uint, bool) {
	var asNumber uint
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return &asNumber, true
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err != nil {
		return nil, false
	}
	if asString == "" {
		return nil, true
	}
	parsed, err := strconv.ParseUint(asString, 10, 32)
	if err != nil {
		return nil, false
	}
	id := uint(parsed)
	return &id, true
}

// parseIDParam 解析路径中的数字ID
// 解析失败时直接写出400响应
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id parameter")
		return 0, false
	}
	return uint(id), true
}

// queryInt 读取整数查询参数，缺失或非法时取默认值
func queryInt(c *gin.Context, key string, fallback int) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return value
}

// queryUint 读取无符号整数查询参数
func queryUint(c *gin.Context, key string) (uint, bool) {
	value, err := strconv.ParseUint(c.Query(key), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(value), true
}
