// Package knowledge 提供知识库相关的业务逻辑服务
// 包含知识条目的增删改查、层级树解析、搜索和排序等核心功能
// 所有条目操作均按用户隔离，层级关系通过可空的父条目ID维护
package knowledge

import (
	"errors"
	"strings"
	"time"

	"github.com/weiwangfds/lifenote/internal/database"
	apperrors "github.com/weiwangfds/lifenote/internal/errors"
	"github.com/weiwangfds/lifenote/internal/logger"
	"github.com/weiwangfds/lifenote/internal/service/slugs"
	"gorm.io/gorm"
)

// 列表分页大小
const entryPageSize = 20

// EntryService 知识条目服务接口
// 提供条目管理、层级导航和搜索功能
type EntryService interface {
	// CreateEntry 创建知识条目
	// 参数:
	//   userID - 条目归属的用户ID
	//   req - 创建请求
	// 返回:
	//   *database.Entry - 创建的条目
	//   error - 错误信息
	CreateEntry(userID uint, req *CreateEntryRequest) (*database.Entry, error)

	// GetEntryByID 获取条目详情
	// 仅返回归属于该用户的条目，他人条目一律视为不存在
	GetEntryByID(userID, entryID uint) (*database.Entry, error)

	// GetEntryBySlug 根据slug获取条目详情
	GetEntryBySlug(userID uint, slug string) (*database.Entry, error)

	// ListEntries 分页列出用户条目
	// 参数:
	//   userID - 用户ID
	//   filter - 主题/类型过滤和页码
	// 返回:
	//   []database.Entry - 条目列表，按更新时间倒序
	//   int64 - 总数量
	//   error - 错误信息
	ListEntries(userID uint, filter EntryListFilter) ([]database.Entry, int64, error)

	// UpdateEntry 更新条目
	UpdateEntry(userID, entryID uint, req *UpdateEntryRequest) (*database.Entry, error)

	// DeleteEntry 删除条目
	// 子条目不随之删除，父引用被置空后上升为根条目
	DeleteEntry(userID, entryID uint) error

	// GetRootEntries 获取用户的全部根条目
	// 按（主题名称、排序值、标题）排序，无主题的条目排在最后
	GetRootEntries(userID uint) ([]database.Entry, error)

	// GetChildren 获取条目的直接子条目，按（排序值、标题）排序
	GetChildren(userID, entryID uint) ([]database.Entry, error)

	// GetSiblings 获取条目的同级条目
	// 有父条目时为父条目下的其他子条目；根条目时为同主题下的其他根条目
	GetSiblings(userID, entryID uint) ([]database.Entry, error)

	// GetEntryTree 获取侧边栏导航树
	// 返回根条目列表，每个根条目递归挂载其子条目
	GetEntryTree(userID uint) ([]database.Entry, error)

	// SearchEntries 搜索条目
	// 空查询串返回空结果；否则在标题/内容/摘要/标签中做大小写不敏感的子串匹配，
	// 与主题/类型过滤取交集，按更新时间倒序。返回值包含查询耗时，仅用于展示
	SearchEntries(userID uint, query string, topicID *uint, entryType string) ([]database.Entry, time.Duration, error)

	// ReorderEntry 调整条目的排序值和父条目
	// order与parent独立校验，任一校验失败时两个字段均不修改；
	// 不重排同级条目的排序值，重复与空洞由标题次序键兜底
	ReorderEntry(userID, entryID uint, req *ReorderEntryRequest) (*database.Entry, error)

	// ListPublicEntries 分页列出公开条目（跨用户），按更新时间倒序
	// 公开页面入口，可按主题slug过滤
	ListPublicEntries(topicSlug string, page int) ([]database.Entry, int64, error)

	// GetPublicEntryBySlug 根据slug获取公开条目
	GetPublicEntryBySlug(slug string) (*database.Entry, error)
}

// 公开条目列表分页大小
const publicEntryPageSize = 12

// ValidationConfig 条目表单校验配置
// 不同入口对内容和主题的必填要求不同，作为显式配置在构造服务时传入
type ValidationConfig struct {
	ContentRequired bool // 内容是否必填
	TopicRequired   bool // 主题是否必填
}

// CreateEntryRequest 创建条目请求
type CreateEntryRequest struct {
	Title      string `json:"title" binding:"required,max=200"` // 条目标题
	Slug       string `json:"slug" binding:"max=200"`           // URL标识，留空时自动生成
	TopicID    *uint  `json:"topic_id"`                         // 所属主题ID
	ParentID   *uint  `json:"parent_id"`                        // 父条目ID
	SortOrder  int    `json:"order"`                            // 同级排序值
	EntryType  string `json:"entry_type"`                       // 条目类型
	Content    string `json:"content"`                          // Markdown内容
	Summary    string `json:"summary" binding:"max=500"`        // 摘要
	SourceURL  string `json:"source_url"`                       // 来源链接
	Tags       string `json:"tags"`                             // 逗号分隔的标签
	IsFavorite bool   `json:"is_favorite"`                      // 是否收藏
	IsPublic   bool   `json:"is_public"`                        // 是否公开展示
}

// UpdateEntryRequest 更新条目请求
// 指针字段为nil时表示不修改；Slug显式传空串时按新标题重新生成
type UpdateEntryRequest struct {
	Title      *string `json:"title" binding:"omitempty,max=200"` // 条目标题
	Slug       *string `json:"slug" binding:"omitempty,max=200"`  // URL标识
	TopicID    *uint   `json:"topic_id"`    // 所属主题ID
	ClearTopic bool    `json:"clear_topic"` // 置空主题
	ParentID   *uint   `json:"parent_id"`   // 父条目ID
	ClearParent bool   `json:"clear_parent"` // 置空父条目（上升为根条目）
	SortOrder  *int    `json:"order"`       // 同级排序值
	EntryType  *string `json:"entry_type"`  // 条目类型
	Content    *string `json:"content"`     // Markdown内容
	Summary    *string `json:"summary" binding:"omitempty,max=500"` // 摘要
	SourceURL  *string `json:"source_url"`  // 来源链接
	Tags       *string `json:"tags"`        // 逗号分隔的标签
	IsFavorite *bool   `json:"is_favorite"` // 是否收藏
	IsPublic   *bool   `json:"is_public"`   // 是否公开展示
}

// EntryListFilter 条目列表过滤条件
type EntryListFilter struct {
	TopicID   *uint  // 按主题过滤
	EntryType string // 按类型过滤
	Page      int    // 页码，从1开始
}

// ReorderEntryRequest 排序调整请求
// 两个字段均可选，handler层负责解析parent的数字/空串哨兵形态
type ReorderEntryRequest struct {
	SortOrder *int  // 新排序值，nil表示不修改
	SetParent bool  // 是否修改父条目
	ParentID  *uint // 新父条目ID，SetParent为true且此值为nil时表示升为根条目
}

// entryService 知识条目服务实现
type entryService struct {
	db        *gorm.DB
	validation ValidationConfig
}

// NewEntryService 创建知识条目服务实例
// 参数:
//
//	db - 数据库连接
//	validation - 表单校验配置
func NewEntryService(db *gorm.DB, validation ValidationConfig) EntryService {
	return &entryService{db: db, validation: validation}
}

// CreateEntry 创建知识条目
func (s *entryService) CreateEntry(userID uint, req *CreateEntryRequest) (*database.Entry, error) {
	if err := s.validateFields(req.Title, req.Content, req.TopicID); err != nil {
		return nil, err
	}

	entryType := req.EntryType
	if entryType == "" {
		entryType = database.EntryTypeNote
	}

	var entry *database.Entry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.TopicID != nil {
			if err := s.checkTopicExists(tx, *req.TopicID); err != nil {
				return err
			}
		}
		if req.ParentID != nil {
			if _, err := s.findOwnedEntry(tx, userID, *req.ParentID); err != nil {
				return apperrors.NewByCode(apperrors.ErrInvalidParent)
			}
		}

		allocated, err := slugs.Allocate(tx, database.Entry{}.TableName(), req.Slug, req.Title, 0)
		if err != nil {
			return err
		}

		entry = &database.Entry{
			UserID:     userID,
			Title:      req.Title,
			Slug:       allocated,
			TopicID:    req.TopicID,
			ParentID:   req.ParentID,
			SortOrder:  req.SortOrder,
			EntryType:  entryType,
			Content:    req.Content,
			Summary:    req.Summary,
			SourceURL:  req.SourceURL,
			Tags:       req.Tags,
			IsFavorite: req.IsFavorite,
			IsPublic:   req.IsPublic,
		}
		if err := tx.Create(entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrDatabaseInsert, apperrors.GetErrorMessage(apperrors.ErrDatabaseInsert), err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("Entry created: %s (ID: %d, user: %d)", entry.Title, entry.ID, userID)
	return entry, nil
}

// GetEntryByID 获取条目详情
func (s *entryService) GetEntryByID(userID, entryID uint) (*database.Entry, error) {
	var entry database.Entry
	err := s.db.Preload("Topic").Preload("User").Preload("Parent").
		Where("user_id = ?", userID).
		First(&entry, entryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewByCode(apperrors.ErrEntryNotFound)
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return &entry, nil
}

// GetEntryBySlug 根据slug获取条目详情
func (s *entryService) GetEntryBySlug(userID uint, slug string) (*database.Entry, error) {
	var entry database.Entry
	err := s.db.Preload("Topic").Preload("User").Preload("Parent").
		Where("user_id = ? AND slug = ?", userID, slug).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewByCode(apperrors.ErrEntryNotFound)
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return &entry, nil
}

// ListEntries 分页列出用户条目
func (s *entryService) ListEntries(userID uint, filter EntryListFilter) ([]database.Entry, int64, error) {
	query := s.db.Model(&database.Entry{}).Where("user_id = ?", userID)
	if filter.TopicID != nil {
		query = query.Where("topic_id = ?", *filter.TopicID)
	}
	if filter.EntryType != "" {
		query = query.Where("entry_type = ?", filter.EntryType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}

	var entries []database.Entry
	err := query.Preload("Topic").
		Order("updated_at DESC").
		Offset((page - 1) * entryPageSize).
		Limit(entryPageSize).
		Find(&entries).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return entries, total, nil
}

// UpdateEntry 更新条目
func (s *entryService) UpdateEntry(userID, entryID uint, req *UpdateEntryRequest) (*database.Entry, error) {
	var updated *database.Entry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		entry, err := s.findOwnedEntry(tx, userID, entryID)
		if err != nil {
			return err
		}

		title := entry.Title
		if req.Title != nil {
			title = strings.TrimSpace(*req.Title)
		}
		content := entry.Content
		if req.Content != nil {
			content = *req.Content
		}
		topicID := entry.TopicID
		if req.ClearTopic {
			topicID = nil
		} else if req.TopicID != nil {
			topicID = req.TopicID
		}
		if err := s.validateFields(title, content, topicID); err != nil {
			return err
		}
		if topicID != nil && req.TopicID != nil {
			if err := s.checkTopicExists(tx, *topicID); err != nil {
				return err
			}
		}

		updates := map[string]interface{}{"title": title, "content": content}
		if req.ClearTopic || req.TopicID != nil {
			updates["topic_id"] = topicID
		}

		// 父条目变更需要先过循环检查
		if req.ClearParent {
			updates["parent_id"] = nil
		} else if req.ParentID != nil {
			if err := s.checkParentAssignment(tx, userID, entryID, *req.ParentID); err != nil {
				return err
			}
			updates["parent_id"] = *req.ParentID
		}

		// slug显式传值时查重使用，显式传空串时按标题重新生成
		if req.Slug != nil {
			allocated, err := slugs.Allocate(tx, database.Entry{}.TableName(), *req.Slug, title, entry.ID)
			if err != nil {
				return err
			}
			updates["slug"] = allocated
		}

		if req.SortOrder != nil {
			updates["sort_order"] = *req.SortOrder
		}
		if req.EntryType != nil {
			updates["entry_type"] = *req.EntryType
		}
		if req.Summary != nil {
			updates["summary"] = *req.Summary
		}
		if req.SourceURL != nil {
			updates["source_url"] = *req.SourceURL
		}
		if req.Tags != nil {
			updates["tags"] = *req.Tags
		}
		if req.IsFavorite != nil {
			updates["is_favorite"] = *req.IsFavorite
		}
		if req.IsPublic != nil {
			updates["is_public"] = *req.IsPublic
		}

		if err := tx.Model(entry).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrDatabaseUpdate, apperrors.GetErrorMessage(apperrors.ErrDatabaseUpdate), err)
		}
		updated = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("Entry updated: %d (user: %d)", entryID, userID)
	return s.GetEntryByID(userID, updated.ID)
}

// DeleteEntry 删除条目
// 同一事务内先将子条目的父引用置空再删除，子条目由此上升为根条目
func (s *entryService) DeleteEntry(userID, entryID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		entry, err := s.findOwnedEntry(tx, userID, entryID)
		if err != nil {
			return err
		}

		if err := tx.Model(&database.Entry{}).
			Where("parent_id = ?", entry.ID).
			Update("parent_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrDatabaseUpdate, apperrors.GetErrorMessage(apperrors.ErrDatabaseUpdate), err)
		}

		if err := tx.Delete(entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrDatabaseDelete, apperrors.GetErrorMessage(apperrors.ErrDatabaseDelete), err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Infof("Entry deleted: %d (user: %d), children detached", entryID, userID)
	return nil
}

// GetRootEntries 获取用户的全部根条目
func (s *entryService) GetRootEntries(userID uint) ([]database.Entry, error) {
	var entries []database.Entry
	err := s.db.Model(&database.Entry{}).
		Select("entries.*").
		Joins("LEFT JOIN topics ON topics.id = entries.topic_id").
		Where("entries.user_id = ? AND entries.parent_id IS NULL", userID).
		Order("topics.name IS NULL, topics.name, entries.sort_order, entries.title").
		Preload("Topic").
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return entries, nil
}

// GetChildren 获取条目的直接子条目
func (s *entryService) GetChildren(userID, entryID uint) ([]database.Entry, error) {
	if _, err := s.findOwnedEntry(s.db, userID, entryID); err != nil {
		return nil, err
	}

	var children []database.Entry
	err := s.db.Where("user_id = ? AND parent_id = ?", userID, entryID).
		Order("sort_order, title").
		Find(&children).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return children, nil
}

// GetSiblings 获取条目的同级条目
func (s *entryService) GetSiblings(userID, entryID uint) ([]database.Entry, error) {
	entry, err := s.findOwnedEntry(s.db, userID, entryID)
	if err != nil {
		return nil, err
	}

	query := s.db.Where("user_id = ? AND id <> ?", userID, entry.ID)
	if entry.ParentID != nil {
		query = query.Where("parent_id = ?", *entry.ParentID)
	} else {
		query = query.Where("parent_id IS NULL")
		if entry.TopicID != nil {
			query = query.Where("topic_id = ?", *entry.TopicID)
		} else {
			query = query.Where("topic_id IS NULL")
		}
	}

	var siblings []database.Entry
	if err := query.Order("sort_order, title").Find(&siblings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return siblings, nil
}

// GetEntryTree 获取侧边栏导航树
// 一次性取出用户全部条目后在内存中按邻接表拼装，避免逐层查询
func (s *entryService) GetEntryTree(userID uint) ([]database.Entry, error) {
	var all []database.Entry
	err := s.db.Model(&database.Entry{}).
		Select("entries.*").
		Joins("LEFT JOIN topics ON topics.id = entries.topic_id").
		Where("entries.user_id = ?", userID).
		Order("topics.name IS NULL, topics.name, entries.sort_order, entries.title").
		Preload("Topic").
		Find(&all).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}

	children := make(map[uint][]database.Entry)
	for _, entry := range all {
		if entry.ParentID != nil {
			children[*entry.ParentID] = append(children[*entry.ParentID], entry)
		}
	}

	var attach func(entry *database.Entry)
	attach = func(entry *database.Entry) {
		entry.Children = children[entry.ID]
		for i := range entry.Children {
			attach(&entry.Children[i])
		}
	}

	roots := make([]database.Entry, 0)
	for _, entry := range all {
		if entry.ParentID == nil {
			root := entry
			attach(&root)
			roots = append(roots, root)
		}
	}
	return roots, nil
}

// likeEscaper 转义LIKE模式中的通配符，保证查询串按字面量匹配
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLikePattern 转义查询串中的LIKE元字符
func escapeLikePattern(query string) string {
	return likeEscaper.Replace(query)
}

// SearchEntries 搜索条目
func (s *entryService) SearchEntries(userID uint, query string, topicID *uint, entryType string) ([]database.Entry, time.Duration, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []database.Entry{}, 0, nil
	}

	start := time.Now()
	pattern := "%" + escapeLikePattern(strings.ToLower(query)) + "%"

	q := s.db.Where("user_id = ?", userID).
		Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\' OR LOWER(summary) LIKE ? ESCAPE '\' OR LOWER(tags) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern, pattern)
	if topicID != nil {
		q = q.Where("topic_id = ?", *topicID)
	}
	if entryType != "" {
		q = q.Where("entry_type = ?", entryType)
	}

	var results []database.Entry
	if err := q.Preload("Topic").Order("updated_at DESC").Find(&results).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}

	elapsed := time.Since(start)
	logger.Debugf("Entry search %q returned %d results in %s (user: %d)", query, len(results), elapsed, userID)
	return results, elapsed, nil
}

// ReorderEntry 调整条目的排序值和父条目
func (s *entryService) ReorderEntry(userID, entryID uint, req *ReorderEntryRequest) (*database.Entry, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		entry, err := s.findOwnedEntry(tx, userID, entryID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.SortOrder != nil {
			updates["sort_order"] = *req.SortOrder
		}
		if req.SetParent {
			if req.ParentID == nil {
				updates["parent_id"] = nil
			} else {
				if err := s.checkParentAssignment(tx, userID, entryID, *req.ParentID); err != nil {
					return err
				}
				updates["parent_id"] = *req.ParentID
			}
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(entry).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrDatabaseUpdate, apperrors.GetErrorMessage(apperrors.ErrDatabaseUpdate), err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetEntryByID(userID, entryID)
}

// ListPublicEntries 分页列出公开条目
func (s *entryService) ListPublicEntries(topicSlug string, page int) ([]database.Entry, int64, error) {
	query := s.db.Model(&database.Entry{}).Where("entries.is_public = ?", true)
	if topicSlug != "" {
		query = query.Joins("JOIN topics ON topics.id = entries.topic_id").
			Where("topics.slug = ?", topicSlug)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}

	if page < 1 {
		page = 1
	}

	var entries []database.Entry
	err := query.Preload("Topic").Preload("User").
		Order("entries.updated_at DESC").
		Offset((page - 1) * publicEntryPageSize).
		Limit(publicEntryPageSize).
		Find(&entries).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return entries, total, nil
}

// GetPublicEntryBySlug 根据slug获取公开条目
func (s *entryService) GetPublicEntryBySlug(slug string) (*database.Entry, error) {
	var entry database.Entry
	err := s.db.Preload("Topic").Preload("User").
		Where("slug = ? AND is_public = ?", slug, true).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewByCode(apperrors.ErrEntryNotFound)
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return &entry, nil
}

// validateFields 按校验配置检查必填字段
func (s *entryService) validateFields(title, content string, topicID *uint) error {
	if strings.TrimSpace(title) == "" {
		return apperrors.NewByCode(apperrors.ErrTitleRequired)
	}
	if s.validation.ContentRequired && strings.TrimSpace(content) == "" {
		return apperrors.NewByCode(apperrors.ErrContentRequired)
	}
	if s.validation.TopicRequired && topicID == nil {
		return apperrors.NewByCode(apperrors.ErrTopicRequired)
	}
	return nil
}

// checkTopicExists 校验主题存在
func (s *entryService) checkTopicExists(tx *gorm.DB, topicID uint) error {
	var count int64
	if err := tx.Model(&database.Topic{}).Where("id = ?", topicID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	if count == 0 {
		return apperrors.NewByCode(apperrors.ErrTopicNotFound)
	}
	return nil
}

// findOwnedEntry 取出归属于该用户的条目
// 他人条目与不存在的条目同样返回未找到，不泄露跨用户数据的存在性
func (s *entryService) findOwnedEntry(tx *gorm.DB, userID, entryID uint) (*database.Entry, error) {
	var entry database.Entry
	err := tx.Where("user_id = ?", userID).First(&entry, entryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewByCode(apperrors.ErrEntryNotFound)
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return &entry, nil
}

// checkParentAssignment 校验新的父条目指定
// 父条目必须存在且属于同一用户；沿候选父条目的祖先链上行，
// 途中出现条目自身ID则判定为循环并拒绝
func (s *entryService) checkParentAssignment(tx *gorm.DB, userID, entryID, parentID uint) error {
	if parentID == entryID {
		return apperrors.NewByCode(apperrors.ErrParentCycle)
	}

	parent, err := s.findOwnedEntry(tx, userID, parentID)
	if err != nil {
		return apperrors.NewByCode(apperrors.ErrInvalidParent)
	}

	// 逐级上行祖先链，深度上限防御脏数据中的既有环
	current := parent
	for depth := 0; current.ParentID != nil && depth < 1000; depth++ {
		if *current.ParentID == entryID {
			return apperrors.NewByCode(apperrors.ErrParentCycle)
		}
		next, err := s.findOwnedEntry(tx, userID, *current.ParentID)
		if err != nil {
			break
		}
		current = next
	}
	return nil
}
