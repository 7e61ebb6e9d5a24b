// Package database 提供数据库迁移和初始化功能
// 包含层级查询、搜索和公开页面查询的复合索引
package database

import (
	"gorm.io/gorm"
)

// createIndexes 创建常用查询路径的复合索引
// 参数: db *gorm.DB - GORM数据库连接实例
// 返回值: error - 创建索引失败时返回错误信息
func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// 层级查询优化：根据用户和父条目查询子条目及同级排序
		"CREATE INDEX IF NOT EXISTS idx_entries_user_parent_sort ON entries(user_id, parent_id, sort_order)",
		// 列表查询优化：用户条目按更新时间倒序
		"CREATE INDEX IF NOT EXISTS idx_entries_user_updated ON entries(user_id, updated_at DESC)",
		// 公开笔记页面优化
		"CREATE INDEX IF NOT EXISTS idx_entries_public_updated ON entries(is_public, updated_at DESC)",
		// 公开博客列表优化：已发布文章按发布时间倒序
		"CREATE INDEX IF NOT EXISTS idx_posts_status_published ON posts(status, published_at DESC)",
		// 任务看板优化：用户任务按状态和截止日期
		"CREATE INDEX IF NOT EXISTS idx_tasks_user_status_due ON tasks(user_id, status, due_date)",
		// 学习记录按用户和日期倒序
		"CREATE INDEX IF NOT EXISTS idx_sessions_user_date ON study_sessions(user_id, date DESC)",
	}

	for _, indexSQL := range indexes {
		if err := db.Exec(indexSQL).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedData 初始化示例数据
// 为开发和测试环境提供基础主题与人生清单条目，已存在时跳过
func SeedData(db *gorm.DB) error {
	topics := []Topic{
		{Name: "Web Development", Slug: "web-development", Description: "Frontend and backend web engineering"},
		{Name: "Machine Learning", Slug: "machine-learning", Description: "ML theory and practice notes"},
		{Name: "Reading Notes", Slug: "reading-notes", Description: "Notes from books and papers"},
	}
	for _, topic := range topics {
		if err := db.Where(Topic{Slug: topic.Slug}).FirstOrCreate(&topic).Error; err != nil {
			return err
		}
	}

	items := []List100Item{
		{Title: "Run a marathon", SortOrder: 1},
		{Title: "Publish a technical blog series", SortOrder: 2},
		{Title: "Learn a new language", SortOrder: 3},
	}
	for _, item := range items {
		if err := db.Where(List100Item{Title: item.Title}).FirstOrCreate(&item).Error; err != nil {
			return err
		}
	}
	return nil
}
