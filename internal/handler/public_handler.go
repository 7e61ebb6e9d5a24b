package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"
	"github.com/weiwangfds/lifenote/config"
	"github.com/weiwangfds/lifenote/internal/render"
	"github.com/weiwangfds/lifenote/internal/response"
	"github.com/weiwangfds/lifenote/internal/service/blog"
	"github.com/weiwangfds/lifenote/internal/service/knowledge"
	"github.com/weiwangfds/lifenote/internal/service/tasks"
)

// 公开首页展示的最近文章条数
const homeRecentLimit = 5

// RSS/Atom订阅包含的文章条数
const feedItemLimit = 20

// PublicHandler 公开页面处理器
// 无需登录的只读接口：博客、公开笔记、人生清单和订阅源
type PublicHandler struct {
	postService  blog.PostService
	entryService knowledge.EntryService
	listService  tasks.List100Service
	site         config.SiteConfig
}

// NewPublicHandler 创建公开页面处理器实例
func NewPublicHandler(
	postService blog.PostService,
	entryService knowledge.EntryService,
	listService tasks.List100Service,
	site config.SiteConfig,
) *PublicHandler {
	return &PublicHandler{
		postService:  postService,
		entryService: entryService,
		listService:  listService,
		site:         site,
	}
}

// HomeData 公开首页数据
type HomeData struct {
	SiteName    string            `json:"site_name"`    // 站点名称
	RecentPosts []PostView        `json:"recent_posts"` // 最近发布的文章
	ListStats   *tasks.List100Stats `json:"list_stats"` // 人生清单完成进度
}

// Home 公开首页
// @Summary 公开首页
// @Description 返回最近发布的文章和人生清单的完成进度
// @Tags 公开页面
// @Produce json
// @Success 200 {object} response.APIResponse{data=HomeData} "获取成功"
// @Router /api/v1/public/home [get]
func (h *PublicHandler) Home(c *gin.Context) {
	posts, err := h.postService.RecentPublishedPosts(homeRecentLimit)
	if err != nil {
		response.Error(c, err)
		return
	}
	stats, err := h.listService.GetStats()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, HomeData{
		SiteName:    h.site.Name,
		RecentPosts: newPostViews(posts),
		ListStats:   stats,
	})
}

// ListPosts 公开文章列表
// @Summary 公开文章列表
// @Description 分页列出已发布文章，按发布时间倒序，可按分类slug过滤
// @Tags 公开页面
// @Produce json
// @Param category query string false "分类slug"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.APIResponse{data=response.PageData} "获取成功"
// @Router /api/v1/public/posts [get]
func (h *PublicHandler) ListPosts(c *gin.Context) {
	page := queryInt(c, "page", 1)
	posts, total, err := h.postService.ListPublishedPosts(c.Query("category"), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, newPostViews(posts), total, page, 10)
}

// GetPost 公开文章详情
// @Summary 公开文章详情
// @Description 根据slug返回已发布文章，含渲染后的HTML
// @Tags 公开页面
// @Produce json
// @Param slug path string true "文章slug"
// @Success 200 {object} response.APIResponse{data=PostView} "获取成功"
// @Failure 404 {object} response.APIResponse "文章不存在或未发布"
// @Router /api/v1/public/posts/{slug} [get]
func (h *PublicHandler) GetPost(c *gin.Context) {
	post, err := h.postService.GetPublishedPostBySlug(c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, newPostDetailView(*post))
}

// ListNotes 公开笔记列表
// @Summary 公开笔记列表
// @Description 分页列出标记为公开的知识条目，可按主题slug过滤
// @Tags 公开页面
// @Produce json
// @Param topic query string false "主题slug"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.APIResponse{data=response.PageData} "获取成功"
// @Router /api/v1/public/notes [get]
func (h *PublicHandler) ListNotes(c *gin.Context) {
	page := queryInt(c, "page", 1)
	entries, total, err := h.entryService.ListPublicEntries(c.Query("topic"), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, newEntryViews(entries), total, page, 12)
}

// GetNote 公开笔记详情
// @Summary 公开笔记详情
// @Description 根据slug返回公开条目，含渲染后的HTML和目录
// @Tags 公开页面
// @Produce json
// @Param slug path string true "条目slug"
// @Success 200 {object} response.APIResponse{data=EntryView} "获取成功"
// @Failure 404 {object} response.APIResponse "条目不存在或未公开"
// @Router /api/v1/public/notes/{slug} [get]
func (h *PublicHandler) GetNote(c *gin.Context) {
	entry, err := h.entryService.GetPublicEntryBySlug(c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, newEntryDetailView(*entry))
}

// List100 公开人生清单
// @Summary 公开人生清单
// @Description 返回全部清单条目和状态统计
// @Tags 公开页面
// @Produce json
// @Success 200 {object} response.APIResponse "获取成功"
// @Router /api/v1/public/list-100 [get]
func (h *PublicHandler) List100(c *gin.Context) {
	items, err := h.listService.ListItems()
	if err != nil {
		response.Error(c, err)
		return
	}
	stats, err := h.listService.GetStats()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"items": items, "stats": stats})
}

// FeedRSS RSS订阅源
// @Summary RSS订阅源
// @Tags 公开页面
// @Produce xml
// @Success 200 {string} string "RSS 2.0文档"
// @Router /api/v1/public/feed.rss [get]
func (h *PublicHandler) FeedRSS(c *gin.Context) {
	feed, err := h.buildFeed()
	if err != nil {
		response.Error(c, err)
		return
	}
	body, err := feed.ToRss()
	if err != nil {
		response.InternalServerError(c, "failed to render feed")
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(body))
}

// FeedAtom Atom订阅源
// @Summary Atom订阅源
// @Tags 公开页面
// @Produce xml
// @Success 200 {string} string "Atom文档"
// @Router /api/v1/public/feed.atom [get]
func (h *PublicHandler) FeedAtom(c *gin.Context) {
	feed, err := h.buildFeed()
	if err != nil {
		response.Error(c, err)
		return
	}
	body, err := feed.ToAtom()
	if err != nil {
		response.InternalServerError(c, "failed to render feed")
		return
	}
	c.Data(http.StatusOK, "application/atom+xml; charset=utf-8", []byte(body))
}

// buildFeed 由最近发布的文章构建订阅源
func (h *PublicHandler) buildFeed() (*feeds.Feed, error) {
	posts, err := h.postService.RecentPublishedPosts(feedItemLimit)
	if err != nil {
		return nil, err
	}

	feed := &feeds.Feed{
		Title:       h.site.Name,
		Link:        &feeds.Link{Href: h.site.BaseURL},
		Description: fmt.Sprintf("Latest posts from %s", h.site.Name),
		Author:      &feeds.Author{Name: h.site.Author},
		Created:     time.Now(),
	}

	for _, post := range posts {
		item := &feeds.Item{
			Title:       post.Title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/blog/%s", h.site.BaseURL, post.Slug)},
			Description: post.Excerpt,
			Content:     render.Markdown(post.Content),
			Id:          fmt.Sprintf("%s/blog/%s", h.site.BaseURL, post.Slug),
		}
		if post.Author != nil {
			item.Author = &feeds.Author{Name: post.Author.Username}
		}
		if post.PublishedAt != nil {
			item.Created = *post.PublishedAt
		}
		feed.Items = append(feed.Items, item)
	}
	return feed, nil
}
