package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/lifenote/internal/database"
	"github.com/weiwangfds/lifenote/internal/middleware"
	"github.com/weiwangfds/lifenote/internal/render"
	"github.com/weiwangfds/lifenote/internal/response"
	"github.com/weiwangfds/lifenote/internal/service/blog"
)

// PostHandler 博客文章处理器（管理端）
type PostHandler struct {
	postService blog.PostService
}

// NewPostHandler 创建博客文章处理器实例
func NewPostHandler(postService blog.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// PostView 文章的API表示
type PostView struct {
	database.Post
	CategoryName string `json:"category_name"`          // 所属分类名称
	AuthorName   string `json:"author_name"`            // 作者用户名
	ContentHTML  string `json:"content_html,omitempty"` // 渲染并消毒后的HTML
}

// newPostView 构造文章的列表视图，不渲染正文
func newPostView(post database.Post) PostView {
	view := PostView{Post: post}
	if post.Category != nil {
		view.CategoryName = post.Category.Name
	}
	if post.Author != nil {
		view.AuthorName = post.Author.Username
	}
	return view
}

// newPostDetailView 构造文章的详情视图，包含渲染后的正文
func newPostDetailView(post database.Post) PostView {
	view := newPostView(post)
	view.ContentHTML = render.Markdown(post.Content)
	return view
}

// newPostViews 批量构造列表视图
func newPostViews(posts []database.Post) []PostView {
	views := make([]PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, newPostView(post))
	}
	return views
}

// AdminPostList 管理端文章列表响应
type AdminPostList struct {
	Posts []PostView      `json:"posts"` // 文章列表
	Total int64           `json:"total"` // 过滤后的总数
	Stats *blog.PostStats `json:"stats"` // 状态统计
}

// CreatePost 创建文章
// @Summary 创建文章
// @Tags 博客
// @Accept json
// @Produce json
// @Param post body blog.PostRequest true "创建文章请求"
// @Success 201 {object} response.APIResponse{data=PostView} "创建成功"
// @Failure 400 {object} response.APIResponse "请求参数错误"
// @Router /api/v1/posts [post]
// @Security BearerAuth
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req blog.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.postService.CreatePost(middleware.CurrentUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, newPostView(*post))
}

// GetPost 获取文章详情
// @Summary 获取文章详情
// @Tags 博客
// @Produce json
// @Param id path int true "文章ID"
// @Success 200 {object} response.APIResponse{data=PostView} "获取成功"
// @Failure 404 {object} response.APIResponse "文章不存在"
// @Router /api/v1/posts/{id} [get]
// @Security BearerAuth
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := parseIDParam(c)
	if !ok {
		return
	}

	post, err := h.postService.GetPostByID(middleware.CurrentUserID(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, newPostDetailView(*post))
}

// ListPosts 管理端文章列表
// @Summary 管理端文章列表
// @Description 分页列出当前作者的文章，附带状态统计
// @Tags 博客
// @Produce json
// @Param category query string false "分类slug"
// @Param status query string false "文章状态"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.APIResponse{data=AdminPostList} "获取成功"
// @Router /api/v1/posts [get]
// @Security BearerAuth
func (h *PostHandler) ListPosts(c *gin.Context) {
	filter := blog.PostListFilter{
		CategorySlug: c.Query("category"),
		Status:       c.Query("status"),
		Page:         queryInt(c, "page", 1),
	}

	posts, total, stats, err := h.postService.ListPosts(middleware.CurrentUserID(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, AdminPostList{
		Posts: newPostViews(posts),
		Total: total,
		Stats: stats,
	})
}

// UpdatePost 更新文章
// @Summary 更新文章
// @Description 状态首次转为published时写入发布时间
// @Tags 博客
// @Accept json
// @Produce json
// @Param id path int true "文章ID"
// @Param post body blog.PostRequest true "更新文章请求"
// @Success 200 {object} response.APIResponse{data=PostView} "更新成功"
// @Failure 404 {object} response.APIResponse "文章不存在"
// @Router /api/v1/posts/{id} [put]
// @Security BearerAuth
func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req blog.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.postService.UpdatePost(middleware.CurrentUserID(c), postID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, newPostView(*post))
}

// DeletePost 删除文章
// @Summary 删除文章
// @Tags 博客
// @Produce json
// @Param id path int true "文章ID"
// @Success 200 {object} response.APIResponse "删除成功"
// @Failure 404 {object} response.APIResponse "文章不存在"
// @Router /api/v1/posts/{id} [delete]
// @Security BearerAuth
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.postService.DeletePost(middleware.CurrentUserID(c), postID); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "post deleted", nil)
}
