// Package blog 提供博客相关的业务逻辑服务
// 包含文章和分类的管理，以及公开页面的已发布文章查询
package blog

import (
	"errors"
	"time"

	"github.com/weiwangfds/lifenote/internal/database"
	apperrors "github.com/weiwangfds/lifenote/internal/errors"
	"github.com/weiwangfds/lifenote/internal/logger"
	"github.com/weiwangfds/lifenote/internal/service/slugs"
	"gorm.io/gorm"
)

// 管理端列表分页大小
const adminPageSize = 20

// 公开端列表分页大小
const publicPageSize = 10

// PostService 博客文章服务接口
// 管理端操作按作者隔离；公开端只暴露已发布的文章
type PostService interface {
	// CreatePost 创建文章
	// 状态为published时写入首次发布时间
	CreatePost(authorID uint, req *PostRequest) (*database.Post, error)

	// GetPostByID 获取文章详情（管理端，仅作者可见）
	GetPostByID(authorID, postID uint) (*database.Post, error)

	// GetPublishedPostBySlug 根据slug获取已发布文章（公开端）
	GetPublishedPostBySlug(slug string) (*database.Post, error)

	// ListPosts 管理端文章列表，返回列表、总数和状态统计
	ListPosts(authorID uint, filter PostListFilter) ([]database.Post, int64, *PostStats, error)

	// ListPublishedPosts 公开端已发布文章列表，按发布时间倒序
	ListPublishedPosts(categorySlug string, page int) ([]database.Post, int64, error)

	// RecentPublishedPosts 最近发布的文章，用于公开首页
	RecentPublishedPosts(limit int) ([]database.Post, error)

	// UpdatePost 更新文章
	// 首次转为published时写入发布时间，此后不再改动
	UpdatePost(authorID, postID uint, req *PostRequest) (*database.Post, error)

	// DeletePost 删除文章
	DeletePost(authorID, postID uint) error
}

// PostRequest 文章创建/更新请求
type PostRequest struct {
	Title      string `json:"title" binding:"required,max=200"` // 文章标题
	Slug       string `json:"slug" binding:"max=200"`           // URL标识，留空时自动生成
	CategoryID *uint  `json:"category_id"`                      // 所属分类ID
	Content    string `json:"content"`                          // Markdown内容
	Excerpt    string `json:"excerpt" binding:"max=500"`        // 摘要
	Status     string `json:"status"`                           // 状态：draft、published
}

// PostListFilter 管理端文章列表过滤条件
type PostListFilter struct {
	CategorySlug string // 按分类slug过滤
	Status       string // 按状态过滤
	Page         int    // 页码，从1开始
}

// PostStats 文章状态统计
type PostStats struct {
	Total     int64 `json:"total"`     // 全部文章数
	Published int64 `json:"published"` // 已发布数
	Draft     int64 `json:"draft"`     // 草稿数
}

// postService 博客文章服务实现
type postService struct {
	db *gorm.DB
}

// NewPostService 创建博客文章服务实例
func NewPostService(db *gorm.DB) PostService {
	return &postService{db: db}
}

// CreatePost 创建文章
func (s *postService) CreatePost(authorID uint, req *PostRequest) (*database.Post, error) {
	status := req.Status
	if status == "" {
		status = database.PostStatusDraft
	}

	var post *database.Post
	err := s.db.Transaction(func(tx *gorm.DB) error {
		allocated, err := slugs.Allocate(tx, database.Post{}.TableName(), req.Slug, req.Title, 0)
		if err != nil {
			return err
		}

		post = &database.Post{
			AuthorID:   authorID,
			Title:      req.Title,
			Slug:       allocated,
			CategoryID: req.CategoryID,
			Content:    req.Content,
			Excerpt:    req.Excerpt,
			Status:     status,
		}
		if status == database.PostStatusPublished {
			now := time.Now()
			post.PublishedAt = &now
		}
		if err := tx.Create(post).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrDatabaseInsert, apperrors.GetErrorMessage(apperrors.ErrDatabaseInsert), err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("Post created: %s (ID: %d, status: %s)", post.Title, post.ID, post.Status)
	return post, nil
}

// GetPostByID 获取文章详情
func (s *postService) GetPostByID(authorID, postID uint) (*database.Post, error) {
	var post database.Post
	err := s.db.Preload("Category").Preload("Author").
		Where("author_id = ?", authorID).
		First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewByCode(apperrors.ErrPostNotFound)
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return &post, nil
}

// GetPublishedPostBySlug 根据slug获取已发布文章
func (s *postService) GetPublishedPostBySlug(slug string) (*database.Post, error) {
	var post database.Post
	err := s.db.Preload("Category").Preload("Author").
		Where("slug = ? AND status = ?", slug, database.PostStatusPublished).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewByCode(apperrors.ErrPostNotFound)
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return &post, nil
}

// ListPosts 管理端文章列表
func (s *postService) ListPosts(authorID uint, filter PostListFilter) ([]database.Post, int64, *PostStats, error) {
	query := s.db.Model(&database.Post{}).Where("author_id = ?", authorID)
	if filter.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.Status != "" {
		query = query.Where("posts.status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}

	var posts []database.Post
	err := query.Preload("Category").Preload("Author").
		Order("posts.created_at DESC").
		Offset((page - 1) * adminPageSize).
		Limit(adminPageSize).
		Find(&posts).Error
	if err != nil {
		return nil, 0, nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}

	stats, err := s.countStats(authorID)
	if err != nil {
		return nil, 0, nil, err
	}
	return posts, total, stats, nil
}

// ListPublishedPosts 公开端已发布文章列表
func (s *postService) ListPublishedPosts(categorySlug string, page int) ([]database.Post, int64, error) {
	query := s.db.Model(&database.Post{}).Where("posts.status = ?", database.PostStatusPublished)
	if categorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.slug = ?", categorySlug)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}

	if page < 1 {
		page = 1
	}

	var posts []database.Post
	err := query.Preload("Category").Preload("Author").
		Order("posts.published_at DESC").
		Offset((page - 1) * publicPageSize).
		Limit(publicPageSize).
		Find(&posts).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return posts, total, nil
}

// RecentPublishedPosts 最近发布的文章
func (s *postService) RecentPublishedPosts(limit int) ([]database.Post, error) {
	var posts []database.Post
	err := s.db.Preload("Category").Preload("Author").
		Where("status = ?", database.PostStatusPublished).
		Order("published_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return posts, nil
}

// UpdatePost 更新文章
func (s *postService) UpdatePost(authorID, postID uint, req *PostRequest) (*database.Post, error) {
	var updated *database.Post
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var post database.Post
		if err := tx.Where("author_id = ?", authorID).First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewByCode(apperrors.ErrPostNotFound)
			}
			return apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
		}

		allocated, err := slugs.Allocate(tx, database.Post{}.TableName(), req.Slug, req.Title, post.ID)
		if err != nil {
			return err
		}

		status := req.Status
		if status == "" {
			status = post.Status
		}

		updates := map[string]interface{}{
			"title":       req.Title,
			"slug":        allocated,
			"category_id": req.CategoryID,
			"content":     req.Content,
			"excerpt":     req.Excerpt,
			"status":      status,
		}
		// 发布时间仅在首次发布时写入
		if status == database.PostStatusPublished && post.PublishedAt == nil {
			updates["published_at"] = time.Now()
		}

		if err := tx.Model(&post).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrDatabaseUpdate, apperrors.GetErrorMessage(apperrors.ErrDatabaseUpdate), err)
		}
		updated = &post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetPostByID(authorID, updated.ID)
}

// DeletePost 删除文章
func (s *postService) DeletePost(authorID, postID uint) error {
	post, err := s.GetPostByID(authorID, postID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(post).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseDelete, apperrors.GetErrorMessage(apperrors.ErrDatabaseDelete), err)
	}
	logger.Infof("Post deleted: %d (author: %d)", postID, authorID)
	return nil
}

// countStats 统计作者的文章状态分布
func (s *postService) countStats(authorID uint) (*PostStats, error) {
	stats := &PostStats{}
	base := s.db.Model(&database.Post{}).Where("author_id = ?", authorID)

	if err := base.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", database.PostStatusPublished).Count(&stats.Published).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", database.PostStatusDraft).Count(&stats.Draft).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return stats, nil
}
