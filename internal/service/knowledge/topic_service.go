package knowledge

import (
	"errors"

	"github.com/weiwangfds/lifenote/internal/database"
	apperrors "github.com/weiwangfds/lifenote/internal/errors"
	"github.com/weiwangfds/lifenote/internal/logger"
	"github.com/weiwangfds/lifenote/internal/service/slugs"
	"gorm.io/gorm"
)

// TopicService 主题服务接口
// 主题为全局共享数据，不做用户隔离
type TopicService interface {
	// CreateTopic 创建主题
	CreateTopic(req *TopicRequest) (*database.Topic, error)

	// GetTopicByID 获取主题详情
	GetTopicByID(topicID uint) (*database.Topic, error)

	// GetTopicBySlug 根据slug获取主题
	GetTopicBySlug(slug string) (*database.Topic, error)

	// ListTopics 获取全部主题，按名称排序
	ListTopics() ([]database.Topic, error)

	// UpdateTopic 更新主题
	UpdateTopic(topicID uint, req *TopicRequest) (*database.Topic, error)

	// DeleteTopic 删除主题
	// 子主题递归级联删除；归属该主题的条目和资源保留，主题引用被置空
	DeleteTopic(topicID uint) error
}

// TopicRequest 主题创建/更新请求
type TopicRequest struct {
	Name        string `json:"name" binding:"required,max=100"` // 主题名称
	Slug        string `json:"slug" binding:"max=100"`          // URL标识，留空时自动生成
	Description string `json:"description"`                     // 主题描述
	ParentID    *uint  `json:"parent_id"`                       // 父主题ID
}

// topicService 主题服务实现
type topicService struct {
	db *gorm.DB
}

// NewTopicService 创建主题服务实例
func NewTopicService(db *gorm.DB) TopicService {
	return &topicService{db: db}
}

// CreateTopic 创建主题
func (s *topicService) CreateTopic(req *TopicRequest) (*database.Topic, error) {
	var topic *database.Topic
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.ParentID != nil {
			if _, err := findTopic(tx, *req.ParentID); err != nil {
				return err
			}
		}

		allocated, err := slugs.Allocate(tx, database.Topic{}.TableName(), req.Slug, req.Name, 0)
		if err != nil {
			return err
		}

		topic = &database.Topic{
			Name:        req.Name,
			Slug:        allocated,
			Description: req.Description,
			ParentID:    req.ParentID,
		}
		if err := tx.Create(topic).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrDatabaseInsert, apperrors.GetErrorMessage(apperrors.ErrDatabaseInsert), err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("Topic created: %s (ID: %d)", topic.Name, topic.ID)
	return topic, nil
}

// GetTopicByID 获取主题详情
func (s *topicService) GetTopicByID(topicID uint) (*database.Topic, error) {
	return findTopic(s.db.Preload("Subtopics"), topicID)
}

// GetTopicBySlug 根据slug获取主题
func (s *topicService) GetTopicBySlug(slug string) (*database.Topic, error) {
	var topic database.Topic
	err := s.db.Preload("Subtopics").Where("slug = ?", slug).First(&topic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewByCode(apperrors.ErrTopicNotFound)
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return &topic, nil
}

// ListTopics 获取全部主题
func (s *topicService) ListTopics() ([]database.Topic, error) {
	var topics []database.Topic
	if err := s.db.Order("name").Find(&topics).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return topics, nil
}

// UpdateTopic 更新主题
func (s *topicService) UpdateTopic(topicID uint, req *TopicRequest) (*database.Topic, error) {
	var updated *database.Topic
	err := s.db.Transaction(func(tx *gorm.DB) error {
		topic, err := findTopic(tx, topicID)
		if err != nil {
			return err
		}

		allocated, err := slugs.Allocate(tx, database.Topic{}.TableName(), req.Slug, req.Name, topic.ID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":        req.Name,
			"slug":        allocated,
			"description": req.Description,
			"parent_id":   req.ParentID,
		}
		if err := tx.Model(topic).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrDatabaseUpdate, apperrors.GetErrorMessage(apperrors.ErrDatabaseUpdate), err)
		}
		updated = topic
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTopic 删除主题
func (s *topicService) DeleteTopic(topicID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		topic, err := findTopic(tx, topicID)
		if err != nil {
			return err
		}
		return deleteTopicTree(tx, topic.ID)
	})
	if err != nil {
		return err
	}

	logger.Infof("Topic deleted: %d (subtopics cascaded, entries detached)", topicID)
	return nil
}

// deleteTopicTree 递归删除主题及其子主题
// 每一层都先解除条目和资源对主题的引用，再删除主题本身
func deleteTopicTree(tx *gorm.DB, topicID uint) error {
	var subtopics []database.Topic
	if err := tx.Where("parent_id = ?", topicID).Find(&subtopics).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	for _, sub := range subtopics {
		if err := deleteTopicTree(tx, sub.ID); err != nil {
			return err
		}
	}

	if err := tx.Model(&database.Entry{}).Where("topic_id = ?", topicID).Update("topic_id", nil).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseUpdate, apperrors.GetErrorMessage(apperrors.ErrDatabaseUpdate), err)
	}
	if err := tx.Model(&database.Resource{}).Where("topic_id = ?", topicID).Update("topic_id", nil).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseUpdate, apperrors.GetErrorMessage(apperrors.ErrDatabaseUpdate), err)
	}
	if err := tx.Delete(&database.Topic{}, topicID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseDelete, apperrors.GetErrorMessage(apperrors.ErrDatabaseDelete), err)
	}
	return nil
}

// findTopic 取出主题，不存在时返回未找到错误
func findTopic(tx *gorm.DB, topicID uint) (*database.Topic, error) {
	var topic database.Topic
	if err := tx.First(&topic, topicID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewByCode(apperrors.ErrTopicNotFound)
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return &topic, nil
}
