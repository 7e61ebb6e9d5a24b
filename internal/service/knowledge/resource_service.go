package knowledge

import (
	"errors"

	"github.com/weiwangfds/lifenote/internal/database"
	apperrors "github.com/weiwangfds/lifenote/internal/errors"
	"gorm.io/gorm"
)

// ResourceService 学习资源服务接口
// 资源按用户隔离，支持按状态和类型过滤
type ResourceService interface {
	// CreateResource 创建学习资源
	CreateResource(userID uint, req *ResourceRequest) (*database.Resource, error)

	// GetResourceByID 获取资源详情
	GetResourceByID(userID, resourceID uint) (*database.Resource, error)

	// ListResources 分页列出用户资源，按创建时间倒序
	ListResources(userID uint, filter ResourceListFilter) ([]database.Resource, int64, error)

	// UpdateResource 更新资源
	UpdateResource(userID, resourceID uint, req *ResourceRequest) (*database.Resource, error)

	// DeleteResource 删除资源
	DeleteResource(userID, resourceID uint) error
}

// ResourceRequest 资源创建/更新请求
type ResourceRequest struct {
	Title        string `json:"title" binding:"required,max=200"` // 资源标题
	ResourceType string `json:"resource_type"`                    // 类型：book、video、course、website、paper
	TopicID      *uint  `json:"topic_id"`                         // 所属主题ID
	URL          string `json:"url"`                              // 资源链接
	Author       string `json:"author"`                           // 作者
	Status       string `json:"status"`                           // 状态：to_read、reading、completed
	Notes        string `json:"notes"`                            // 笔记
	Rating       *int   `json:"rating" binding:"omitempty,min=1,max=5"` // 评分1-5
}

// ResourceListFilter 资源列表过滤条件
type ResourceListFilter struct {
	Status       string // 按状态过滤
	ResourceType string // 按类型过滤
	Page         int    // 页码，从1开始
}

// resourceService 学习资源服务实现
type resourceService struct {
	db *gorm.DB
}

// NewResourceService 创建学习资源服务实例
func NewResourceService(db *gorm.DB) ResourceService {
	return &resourceService{db: db}
}

// CreateResource 创建学习资源
func (s *resourceService) CreateResource(userID uint, req *ResourceRequest) (*database.Resource, error) {
	status := req.Status
	if status == "" {
		status = database.ResourceStatusToRead
	}

	resource := &database.Resource{
		UserID:       userID,
		Title:        req.Title,
		ResourceType: req.ResourceType,
		TopicID:      req.TopicID,
		URL:          req.URL,
		Author:       req.Author,
		Status:       status,
		Notes:        req.Notes,
		Rating:       req.Rating,
	}
	if err := s.db.Create(resource).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseInsert, apperrors.GetErrorMessage(apperrors.ErrDatabaseInsert), err)
	}
	return resource, nil
}

// GetResourceByID 获取资源详情
func (s *resourceService) GetResourceByID(userID, resourceID uint) (*database.Resource, error) {
	var resource database.Resource
	err := s.db.Preload("Topic").Where("user_id = ?", userID).First(&resource, resourceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewByCode(apperrors.ErrLearnResNotFound)
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return &resource, nil
}

// ListResources 分页列出用户资源
func (s *resourceService) ListResources(userID uint, filter ResourceListFilter) ([]database.Resource, int64, error) {
	query := s.db.Model(&database.Resource{}).Where("user_id = ?", userID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}

	var resources []database.Resource
	err := query.Preload("Topic").
		Order("created_at DESC").
		Offset((page - 1) * entryPageSize).
		Limit(entryPageSize).
		Find(&resources).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return resources, total, nil
}

// UpdateResource 更新资源
func (s *resourceService) UpdateResource(userID, resourceID uint, req *ResourceRequest) (*database.Resource, error) {
	resource, err := s.GetResourceByID(userID, resourceID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":         req.Title,
		"resource_type": req.ResourceType,
		"topic_id":      req.TopicID,
		"url":           req.URL,
		"author":        req.Author,
		"status":        req.Status,
		"notes":         req.Notes,
		"rating":        req.Rating,
	}
	if err := s.db.Model(resource).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseUpdate, apperrors.GetErrorMessage(apperrors.ErrDatabaseUpdate), err)
	}
	return resource, nil
}

// DeleteResource 删除资源
func (s *resourceService) DeleteResource(userID, resourceID uint) error {
	resource, err := s.GetResourceByID(userID, resourceID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(resource).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseDelete, apperrors.GetErrorMessage(apperrors.ErrDatabaseDelete), err)
	}
	return nil
}
