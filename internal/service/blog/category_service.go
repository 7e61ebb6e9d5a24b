package blog

import (
	"errors"

	"github.com/weiwangfds/lifenote/internal/database"
	apperrors "github.com/weiwangfds/lifenote/internal/errors"
	"github.com/weiwangfds/lifenote/internal/logger"
	"github.com/weiwangfds/lifenote/internal/service/slugs"
	"gorm.io/gorm"
)

// CategoryService 博客分类服务接口
// 分类为全站共享，不按用户隔离
type CategoryService interface {
	// CreateCategory 创建分类
	CreateCategory(req *CategoryRequest) (*database.Category, error)

	// GetCategoryByID 获取分类详情
	GetCategoryByID(categoryID uint) (*database.Category, error)

	// GetCategoryBySlug 根据slug获取分类
	GetCategoryBySlug(slug string) (*database.Category, error)

	// ListCategories 分类列表，按名称排序，附带文章数量
	ListCategories() ([]CategoryWithCount, error)

	// UpdateCategory 更新分类
	UpdateCategory(categoryID uint, req *CategoryRequest) (*database.Category, error)

	// DeleteCategory 删除分类，关联文章改为未分类
	DeleteCategory(categoryID uint) error
}

// CategoryRequest 分类创建/更新请求
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"` // 分类名称
	Slug        string `json:"slug" binding:"max=100"`          // URL标识，留空时自动生成
	Description string `json:"description"`                     // 分类描述
}

// CategoryWithCount 带文章数量的分类
type CategoryWithCount struct {
	database.Category
	PostCount int64 `json:"post_count"` // 该分类下的文章数
}

// categoryService 博客分类服务实现
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService 创建博客分类服务实例
func NewCategoryService(db *gorm.DB) CategoryService {
	return &categoryService{db: db}
}

// CreateCategory 创建分类
func (s *categoryService) CreateCategory(req *CategoryRequest) (*database.Category, error) {
	var category *database.Category
	err := s.db.Transaction(func(tx *gorm.DB) error {
		allocated, err := slugs.Allocate(tx, database.Category{}.TableName(), req.Slug, req.Name, 0)
		if err != nil {
			return err
		}
		category = &database.Category{
			Name:        req.Name,
			Slug:        allocated,
			Description: req.Description,
		}
		if err := tx.Create(category).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrDatabaseInsert, apperrors.GetErrorMessage(apperrors.ErrDatabaseInsert), err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Infof("Category created: %s (ID: %d)", category.Name, category.ID)
	return category, nil
}

// GetCategoryByID 获取分类详情
func (s *categoryService) GetCategoryByID(categoryID uint) (*database.Category, error) {
	var category database.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewByCode(apperrors.ErrCategoryNotFound)
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return &category, nil
}

// GetCategoryBySlug 根据slug获取分类
func (s *categoryService) GetCategoryBySlug(slug string) (*database.Category, error) {
	var category database.Category
	if err := s.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewByCode(apperrors.ErrCategoryNotFound)
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return &category, nil
}

// ListCategories 分类列表
func (s *categoryService) ListCategories() ([]CategoryWithCount, error) {
	var categories []database.Category
	if err := s.db.Order("name").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}

	result := make([]CategoryWithCount, 0, len(categories))
	for _, category := range categories {
		var count int64
		if err := s.db.Model(&database.Post{}).Where("category_id = ?", category.ID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
		}
		result = append(result, CategoryWithCount{Category: category, PostCount: count})
	}
	return result, nil
}

// UpdateCategory 更新分类
func (s *categoryService) UpdateCategory(categoryID uint, req *CategoryRequest) (*database.Category, error) {
	var updated *database.Category
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var category database.Category
		if err := tx.First(&category, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewByCode(apperrors.ErrCategoryNotFound)
			}
			return apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
		}

		allocated, err := slugs.Allocate(tx, database.Category{}.TableName(), req.Slug, req.Name, category.ID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":        req.Name,
			"slug":        allocated,
			"description": req.Description,
		}
		if err := tx.Model(&category).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrDatabaseUpdate, apperrors.GetErrorMessage(apperrors.ErrDatabaseUpdate), err)
		}
		updated = &category
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteCategory 删除分类
func (s *categoryService) DeleteCategory(categoryID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var category database.Category
		if err := tx.First(&category, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewByCode(apperrors.ErrCategoryNotFound)
			}
			return apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
		}

		// 关联文章改为未分类
		if err := tx.Model(&database.Post{}).Where("category_id = ?", categoryID).
			Update("category_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrDatabaseUpdate, apperrors.GetErrorMessage(apperrors.ErrDatabaseUpdate), err)
		}
		if err := tx.Delete(&category).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrDatabaseDelete, apperrors.GetErrorMessage(apperrors.ErrDatabaseDelete), err)
		}
		logger.Infof("Category deleted: %s (ID: %d)", category.Name, categoryID)
		return nil
	})
}
