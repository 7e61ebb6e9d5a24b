package database

import (
	"strings"
	"time"
)

// Entry类型常量
const (
	EntryTypeNote      = "note"      // 普通笔记
	EntryTypeResearch  = "research"  // 研究记录
	EntryTypeArticle   = "article"   // 文章
	EntryTypeReference = "reference" // 参考资料
)

// Resource状态常量
const (
	ResourceStatusToRead    = "to_read"   // 待阅读
	ResourceStatusReading   = "reading"   // 阅读中
	ResourceStatusCompleted = "completed" // 已完成
)

// Topic 主题模型
// 知识条目和学习资源的共享分类桶，支持层级结构
// 注意：主题不按用户隔离，对所有用户可见（与Entry的用户隔离不对称，属刻意设计）
type Topic struct {
	ID          uint      `gorm:"primarykey" json:"id"`                      // 主键ID，自增
	Name        string    `gorm:"not null;size:100" json:"name"`             // 主题名称，必填
	Slug        string    `gorm:"not null;uniqueIndex;size:100" json:"slug"` // URL标识，唯一
	Description string    `gorm:"type:text" json:"description"`              // 主题描述
	ParentID    *uint     `gorm:"index" json:"parent_id"`                    // 父主题ID，删除父主题时级联删除子主题
	Parent      *Topic    `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Subtopics   []Topic   `gorm:"foreignKey:ParentID" json:"subtopics,omitempty"`
	CreatedAt   time.Time `json:"created_at"` // 主题创建时间
}

// TableName 指定Topic模型对应的数据库表名
func (Topic) TableName() string {
	return "topics"
}

// Entry 知识条目模型
// 知识库的核心实体，支持父子层级组织、主题归类和标签检索
// 层级关系通过可空的ParentID自引用维护，删除父条目时子条目被置为根条目而非级联删除
type Entry struct {
	ID         uint       `gorm:"primarykey" json:"id"`                           // 主键ID，自增
	UserID     uint       `gorm:"not null;index" json:"user_id"`                  // 所属用户ID，所有查询按此隔离
	User       *User      `gorm:"foreignKey:UserID" json:"-"`                     // 所属用户对象
	Title      string     `gorm:"not null;size:200" json:"title"`                 // 条目标题，必填，最大200字符
	Slug       string     `gorm:"not null;uniqueIndex;size:200" json:"slug"`      // URL标识，全局唯一（跨用户）
	TopicID    *uint      `gorm:"index" json:"topic_id"`                          // 所属主题ID，主题删除后置空
	Topic      *Topic     `gorm:"foreignKey:TopicID" json:"topic,omitempty"`      // 所属主题对象
	ParentID   *uint      `gorm:"index" json:"parent_id"`                         // 父条目ID，支持层级结构，可为空
	Parent     *Entry     `gorm:"foreignKey:ParentID" json:"parent,omitempty"`    // 父条目对象
	Children   []Entry    `gorm:"foreignKey:ParentID" json:"children,omitempty"`  // 子条目列表
	SortOrder  int        `gorm:"column:sort_order;default:0" json:"order"`       // 同级排序值，相同时按标题字典序
	EntryType  string     `gorm:"size:10;default:'note'" json:"entry_type"`       // 条目类型：note、research、article、reference
	Content    string     `gorm:"type:text" json:"content"`                       // Markdown内容
	Summary    string     `gorm:"size:500" json:"summary"`                        // 摘要，最大500字符
	SourceURL  string     `gorm:"size:500" json:"source_url"`                     // 来源链接
	Tags       string     `gorm:"size:200" json:"tags"`                           // 标签，逗号分隔
	IsFavorite bool       `gorm:"default:false" json:"is_favorite"`               // 是否收藏
	IsPublic   bool       `gorm:"default:false;index" json:"is_public"`           // 是否在公开页面展示
	CreatedAt  time.Time  `json:"created_at"`                                     // 条目创建时间
	UpdatedAt  time.Time  `json:"updated_at"`                                     // 条目最后修改时间
}

// TableName 指定Entry模型对应的数据库表名
func (Entry) TableName() string {
	return "entries"
}

// TagsList 返回按逗号拆分后的标签列表
// 空标签串返回空切片，各标签去除首尾空白
func (e *Entry) TagsList() []string {
	if strings.TrimSpace(e.Tags) == "" {
		return []string{}
	}
	parts := strings.Split(e.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Resource 学习资源模型
// 记录书籍、视频、课程等外部学习材料及其阅读进度
type Resource struct {
	ID           uint      `gorm:"primarykey" json:"id"`                       // 主键ID，自增
	UserID       uint      `gorm:"not null;index" json:"user_id"`              // 所属用户ID
	User         *User     `gorm:"foreignKey:UserID" json:"-"`                 // 所属用户对象
	Title        string    `gorm:"not null;size:200" json:"title"`             // 资源标题，必填
	ResourceType string    `gorm:"size:10" json:"resource_type"`               // 资源类型：book、video、course、website、paper
	TopicID      *uint     `gorm:"index" json:"topic_id"`                      // 所属主题ID，主题删除后置空
	Topic        *Topic    `gorm:"foreignKey:TopicID" json:"topic,omitempty"`  // 所属主题对象
	URL          string    `gorm:"size:500" json:"url"`                        // 资源链接
	Author       string    `gorm:"size:100" json:"author"`                     // 作者
	Status       string    `gorm:"size:10;default:'to_read'" json:"status"`    // 状态：to_read、reading、completed
	Notes        string    `gorm:"type:text" json:"notes"`                     // 笔记
	Rating       *int      `json:"rating"`                                     // 评分1-5，可为空
	CreatedAt    time.Time `json:"created_at"`                                 // 资源创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                 // 资源最后修改时间
}

// TableName 指定Resource模型对应的数据库表名
func (Resource) TableName() string {
	return "resources"
}
