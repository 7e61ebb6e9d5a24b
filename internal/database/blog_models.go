package database

import (
	"time"
)

// Post状态常量
const (
	PostStatusDraft     = "draft"     // 草稿
	PostStatusPublished = "published" // 已发布
)

// Category 博客分类模型
type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`                      // 主键ID，自增
	Name        string    `gorm:"not null;size:100" json:"name"`             // 分类名称，必填
	Slug        string    `gorm:"not null;uniqueIndex;size:100" json:"slug"` // URL标识，唯一
	Description string    `gorm:"type:text" json:"description"`              // 分类描述
	CreatedAt   time.Time `json:"created_at"`                                // 分类创建时间
}

// TableName 指定Category模型对应的数据库表名
func (Category) TableName() string {
	return "categories"
}

// Post 博客文章模型
// 公开页面仅展示published状态的文章；分类删除后文章保留并脱离分类
type Post struct {
	ID          uint       `gorm:"primarykey" json:"id"`                            // 主键ID，自增
	AuthorID    uint       `gorm:"not null;index" json:"author_id"`                 // 作者用户ID
	Author      *User      `gorm:"foreignKey:AuthorID" json:"-"`                    // 作者对象
	Title       string     `gorm:"not null;size:200" json:"title"`                  // 文章标题，必填
	Slug        string     `gorm:"not null;uniqueIndex;size:200" json:"slug"`       // URL标识，唯一
	CategoryID  *uint      `gorm:"index" json:"category_id"`                        // 所属分类ID，分类删除后置空
	Category    *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 所属分类对象
	Content     string     `gorm:"type:text" json:"content"`                        // Markdown内容
	Excerpt     string     `gorm:"size:500" json:"excerpt"`                         // 摘要
	Status      string     `gorm:"size:10;default:'draft';index" json:"status"`     // 状态：draft、published
	PublishedAt *time.Time `json:"published_at"`                                    // 首次发布时间，仅发布时写入一次
	CreatedAt   time.Time  `json:"created_at"`                                      // 文章创建时间
	UpdatedAt   time.Time  `json:"updated_at"`                                      // 文章最后修改时间
}

// TableName 指定Post模型对应的数据库表名
func (Post) TableName() string {
	return "posts"
}
