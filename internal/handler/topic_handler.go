package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/lifenote/internal/response"
	"github.com/weiwangfds/lifenote/internal/service/knowledge"
)

// TopicHandler 主题处理器
// 主题为全站共享，接口不做用户隔离
type TopicHandler struct {
	topicService knowledge.TopicService
}

// NewTopicHandler 创建主题处理器实例
func NewTopicHandler(topicService knowledge.TopicService) *TopicHandler {
	return &TopicHandler{topicService: topicService}
}

// CreateTopic 创建主题
// @Summary 创建主题
// @Tags 知识库
// @Accept json
// @Produce json
// @Param topic body knowledge.TopicRequest true "创建主题请求"
// @Success 201 {object} response.APIResponse{data=database.Topic} "创建成功"
// @Failure 400 {object} response.APIResponse "请求参数错误"
// @Router /api/v1/topics [post]
// @Security BearerAuth
func (h *TopicHandler) CreateTopic(c *gin.Context) {
	var req knowledge.TopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	topic, err := h.topicService.CreateTopic(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, topic)
}

// GetTopic 获取主题详情
// @Summary 获取主题详情
// @Tags 知识库
// @Produce json
// @Param id path int true "主题ID"
// @Success 200 {object} response.APIResponse{data=database.Topic} "获取成功"
// @Failure 404 {object} response.APIResponse "主题不存在"
// @Router /api/v1/topics/{id} [get]
// @Security BearerAuth
func (h *TopicHandler) GetTopic(c *gin.Context) {
	topicID, ok := parseIDParam(c)
	if !ok {
		return
	}

	topic, err := h.topicService.GetTopicByID(topicID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, topic)
}

// ListTopics 主题列表
// @Summary 主题列表
// @Description 返回全部主题，按名称排序
// @Tags 知识库
// @Produce json
// @Success 200 {object} response.APIResponse{data=[]database.Topic} "获取成功"
// @Router /api/v1/topics [get]
// @Security BearerAuth
func (h *TopicHandler) ListTopics(c *gin.Context) {
	topics, err := h.topicService.ListTopics()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, topics)
}

// UpdateTopic 更新主题
// @Summary 更新主题
// @Tags 知识库
// @Accept json
// @Produce json
// @Param id path int true "主题ID"
// @Param topic body knowledge.TopicRequest true "更新主题请求"
// @Success 200 {object} response.APIResponse{data=database.Topic} "更新成功"
// @Failure 404 {object} response.APIResponse "主题不存在"
// @Router /api/v1/topics/{id} [put]
// @Security BearerAuth
func (h *TopicHandler) UpdateTopic(c *gin.Context) {
	topicID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req knowledge.TopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	topic, err := h.topicService.UpdateTopic(topicID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, topic)
}

// DeleteTopic 删除主题
// @Summary 删除主题
// @Description 级联删除子主题，关联的条目和资源被置为无主题
// @Tags 知识库
// @Produce json
// @Param id path int true "主题ID"
// @Success 200 {object} response.APIResponse "删除成功"
// @Failure 404 {object} response.APIResponse "主题不存在"
// @Router /api/v1/topics/{id} [delete]
// @Security BearerAuth
func (h *TopicHandler) DeleteTopic(c *gin.Context) {
	topicID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.topicService.DeleteTopic(topicID); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "topic deleted", nil)
}
