package tasks

import (
	"errors"
	"time"

	"github.com/weiwangfds/lifenote/internal/database"
	apperrors "github.com/weiwangfds/lifenote/internal/errors"
	"github.com/weiwangfds/lifenote/internal/logger"
	"gorm.io/gorm"
)

// List100Service 人生清单服务接口
// 清单与主题一样为全站共享，不按用户隔离
type List100Service interface {
	// CreateItem 创建清单条目
	CreateItem(req *List100Request) (*database.List100Item, error)

	// GetItemByID 获取清单条目详情
	GetItemByID(itemID uint) (*database.List100Item, error)

	// ListItems 清单条目列表，按展示顺序和创建时间排序
	ListItems() ([]database.List100Item, error)

	// UpdateItem 更新清单条目
	// 状态首次转为completed时写入完成时间
	UpdateItem(itemID uint, req *List100Request) (*database.List100Item, error)

	// DeleteItem 删除清单条目
	DeleteItem(itemID uint) error

	// GetStats 清单状态统计
	GetStats() (*List100Stats, error)
}

// List100Request 清单条目创建/更新请求
type List100Request struct {
	Title       string `json:"title" binding:"required,max=300"`                                  // 条目标题
	Description string `json:"description"`                                                       // 条目描述
	Status      string `json:"status" binding:"omitempty,oneof=not_started in_progress completed"` // 状态
	SortOrder   int    `json:"order"`                                                             // 展示顺序
}

// List100Stats 清单状态统计
type List100Stats struct {
	Total      int64 `json:"total"`       // 全部条目数
	NotStarted int64 `json:"not_started"` // 未开始数
	InProgress int64 `json:"in_progress"` // 进行中数
	Completed  int64 `json:"completed"`   // 已完成数
}

// list100Service 人生清单服务实现
type list100Service struct {
	db *gorm.DB
}

// NewList100Service 创建人生清单服务实例
func NewList100Service(db *gorm.DB) List100Service {
	return &list100Service{db: db}
}

// CreateItem 创建清单条目
func (s *list100Service) CreateItem(req *List100Request) (*database.List100Item, error) {
	item := &database.List100Item{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		SortOrder:   req.SortOrder,
	}
	if item.Status == "" {
		item.Status = database.List100StatusNotStarted
	}
	if item.Status == database.List100StatusCompleted {
		now := time.Now()
		item.CompletedAt = &now
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseInsert, apperrors.GetErrorMessage(apperrors.ErrDatabaseInsert), err)
	}
	logger.Infof("List100 item created: %s (ID: %d)", item.Title, item.ID)
	return item, nil
}

// GetItemByID 获取清单条目详情
func (s *list100Service) GetItemByID(itemID uint) (*database.List100Item, error) {
	var item database.List100Item
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewByCode(apperrors.ErrListItemNotFound)
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return &item, nil
}

// ListItems 清单条目列表
func (s *list100Service) ListItems() ([]database.List100Item, error) {
	var items []database.List100Item
	if err := s.db.Order("sort_order, created_at").Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return items, nil
}

// UpdateItem 更新清单条目
func (s *list100Service) UpdateItem(itemID uint, req *List100Request) (*database.List100Item, error) {
	item, err := s.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = item.Status
	}

	updates := map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
		"status":      status,
		"sort_order":  req.SortOrder,
	}
	// 完成时间仅在首次完成时写入
	if status == database.List100StatusCompleted && item.CompletedAt == nil {
		updates["completed_at"] = time.Now()
	}

	if err := s.db.Model(item).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseUpdate, apperrors.GetErrorMessage(apperrors.ErrDatabaseUpdate), err)
	}
	return s.GetItemByID(itemID)
}

// DeleteItem 删除清单条目
func (s *list100Service) DeleteItem(itemID uint) error {
	item, err := s.GetItemByID(itemID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(item).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseDelete, apperrors.GetErrorMessage(apperrors.ErrDatabaseDelete), err)
	}
	logger.Infof("List100 item deleted: %d", itemID)
	return nil
}

// GetStats 清单状态统计
func (s *list100Service) GetStats() (*List100Stats, error) {
	stats := &List100Stats{}
	counts := []struct {
		status string
		target *int64
	}{
		{database.List100StatusNotStarted, &stats.NotStarted},
		{database.List100StatusInProgress, &stats.InProgress},
		{database.List100StatusCompleted, &stats.Completed},
	}

	if err := s.db.Model(&database.List100Item{}).Count(&stats.Total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	for _, c := range counts {
		if err := s.db.Model(&database.List100Item{}).Where("status = ?", c.status).Count(c.target).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
		}
	}
	return stats, nil
}
