// 知识条目服务的单元测试
// 覆盖slug分配、用户隔离、层级删除、同级排序、搜索和排序调整
package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/lifenote/internal/database"
	apperrors "github.com/weiwangfds/lifenote/internal/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB 设置测试数据库
func setupTestDB(t *testing.T) *gorm.DB {
	// 使用内存SQLite数据库进行测试
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&database.User{},
		&database.Topic{},
		&database.Entry{},
		&database.Resource{},
	)
	require.NoError(t, err)

	return db
}

// setupEntryService 设置条目服务
func setupEntryService(t *testing.T) (EntryService, *gorm.DB) {
	db := setupTestDB(t)
	svc := NewEntryService(db, ValidationConfig{})
	return svc, db
}

// TestCreateEntrySlugAllocation 测试创建条目时的slug分配
func TestCreateEntrySlugAllocation(t *testing.T) {
	svc, _ := setupEntryService(t)

	t.Run("标题派生slug", func(t *testing.T) {
		entry, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "Intro"})
		require.NoError(t, err)
		assert.Equal(t, "intro", entry.Slug)
	})

	t.Run("同标题追加序号后缀", func(t *testing.T) {
		second, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "Intro"})
		require.NoError(t, err)
		assert.Equal(t, "intro-1", second.Slug)

		third, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "Intro"})
		require.NoError(t, err)
		assert.Equal(t, "intro-2", third.Slug)
	})

	t.Run("slug跨用户全局唯一", func(t *testing.T) {
		userA, err := svc.CreateEntry(10, &CreateEntryRequest{Title: "Notes"})
		require.NoError(t, err)
		userB, err := svc.CreateEntry(20, &CreateEntryRequest{Title: "Notes"})
		require.NoError(t, err)

		assert.Equal(t, "notes", userA.Slug)
		assert.Equal(t, "notes-1", userB.Slug)
	})

	t.Run("显式slug冲突被拒绝", func(t *testing.T) {
		_, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "Other", Slug: "intro"})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrSlugTaken))
	})

	t.Run("更新时自身slug不算冲突", func(t *testing.T) {
		entry, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "Stable"})
		require.NoError(t, err)

		slug := entry.Slug
		updated, err := svc.UpdateEntry(1, entry.ID, &UpdateEntryRequest{Slug: &slug})
		require.NoError(t, err)
		assert.Equal(t, slug, updated.Slug)
	})
}

// TestOwnershipIsolation 测试用户隔离
// 他人条目在所有入口一律表现为不存在
func TestOwnershipIsolation(t *testing.T) {
	svc, _ := setupEntryService(t)

	entry, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "Private", Content: "secret"})
	require.NoError(t, err)

	t.Run("详情查询返回未找到", func(t *testing.T) {
		_, err := svc.GetEntryByID(2, entry.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrEntryNotFound))
	})

	t.Run("列表不含他人条目", func(t *testing.T) {
		entries, total, err := svc.ListEntries(2, EntryListFilter{})
		require.NoError(t, err)
		assert.Empty(t, entries)
		assert.Zero(t, total)
	})

	t.Run("搜索不命中他人条目", func(t *testing.T) {
		results, _, err := svc.SearchEntries(2, "secret", nil, "")
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("排序调整返回未找到", func(t *testing.T) {
		order := 5
		_, err := svc.ReorderEntry(2, entry.ID, &ReorderEntryRequest{SortOrder: &order})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrEntryNotFound))
	})

	t.Run("他人条目不能作为父条目", func(t *testing.T) {
		_, err := svc.CreateEntry(2, &CreateEntryRequest{Title: "Child", ParentID: &entry.ID})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrInvalidParent))
	})
}

// TestDeleteEntryDetachesChildren 测试删除父条目时子条目上升为根条目
func TestDeleteEntryDetachesChildren(t *testing.T) {
	svc, _ := setupEntryService(t)

	parent, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "Parent"})
	require.NoError(t, err)
	child1, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "Child One", ParentID: &parent.ID})
	require.NoError(t, err)
	child2, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "Child Two", ParentID: &parent.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEntry(1, parent.ID))

	// 子条目仍然存在且父引用被置空
	got1, err := svc.GetEntryByID(1, child1.ID)
	require.NoError(t, err)
	assert.Nil(t, got1.ParentID)

	got2, err := svc.GetEntryByID(1, child2.ID)
	require.NoError(t, err)
	assert.Nil(t, got2.ParentID)

	// 子条目出现在根条目查询中
	roots, err := svc.GetRootEntries(1)
	require.NoError(t, err)
	rootIDs := make([]uint, 0, len(roots))
	for _, r := range roots {
		rootIDs = append(rootIDs, r.ID)
	}
	assert.Contains(t, rootIDs, child1.ID)
	assert.Contains(t, rootIDs, child2.ID)
}

// TestSiblingOrdering 测试同级排序
// (order, title)取值(0,"B")、(0,"A")、(1,"C")时解析顺序应为A、B、C
func TestSiblingOrdering(t *testing.T) {
	svc, _ := setupEntryService(t)

	parent, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "Parent"})
	require.NoError(t, err)

	_, err = svc.CreateEntry(1, &CreateEntryRequest{Title: "B", SortOrder: 0, ParentID: &parent.ID})
	require.NoError(t, err)
	_, err = svc.CreateEntry(1, &CreateEntryRequest{Title: "A", SortOrder: 0, ParentID: &parent.ID})
	require.NoError(t, err)
	_, err = svc.CreateEntry(1, &CreateEntryRequest{Title: "C", SortOrder: 1, ParentID: &parent.ID})
	require.NoError(t, err)

	children, err := svc.GetChildren(1, parent.ID)
	require.NoError(t, err)
	require.Len(t, children, 3)
	assert.Equal(t, "A", children[0].Title)
	assert.Equal(t, "B", children[1].Title)
	assert.Equal(t, "C", children[2].Title)
}

// TestGetSiblings 测试同级条目解析
func TestGetSiblings(t *testing.T) {
	svc, db := setupEntryService(t)

	topic := database.Topic{Name: "Go", Slug: "go"}
	require.NoError(t, db.Create(&topic).Error)

	t.Run("子条目的同级为父条目下的其他子条目", func(t *testing.T) {
		parent, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "Tree Parent"})
		require.NoError(t, err)
		first, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "First", ParentID: &parent.ID})
		require.NoError(t, err)
		second, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "Second", ParentID: &parent.ID})
		require.NoError(t, err)

		siblings, err := svc.GetSiblings(1, first.ID)
		require.NoError(t, err)
		require.Len(t, siblings, 1)
		assert.Equal(t, second.ID, siblings[0].ID)
	})

	t.Run("根条目的同级为同主题下的其他根条目", func(t *testing.T) {
		rootA, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "Root A", TopicID: &topic.ID})
		require.NoError(t, err)
		rootB, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "Root B", TopicID: &topic.ID})
		require.NoError(t, err)
		// 无主题根条目不应出现在同级列表中
		_, err = svc.CreateEntry(1, &CreateEntryRequest{Title: "Root C"})
		require.NoError(t, err)

		siblings, err := svc.GetSiblings(1, rootA.ID)
		require.NoError(t, err)
		require.Len(t, siblings, 1)
		assert.Equal(t, rootB.ID, siblings[0].ID)
	})
}

// TestGetEntryTree 测试导航树拼装
func TestGetEntryTree(t *testing.T) {
	svc, _ := setupEntryService(t)

	root, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "Handbook"})
	require.NoError(t, err)
	child, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "Chapter", ParentID: &root.ID})
	require.NoError(t, err)
	_, err = svc.CreateEntry(1, &CreateEntryRequest{Title: "Section", ParentID: &child.ID})
	require.NoError(t, err)

	tree, err := svc.GetEntryTree(1)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "Chapter", tree[0].Children[0].Title)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "Section", tree[0].Children[0].Children[0].Title)
}

// TestSearchEntries 测试条目搜索
func TestSearchEntries(t *testing.T) {
	svc, _ := setupEntryService(t)

	_, err := svc.CreateEntry(1, &CreateEntryRequest{
		Title: "Goroutine Basics", Content: "channels and select", Tags: "go,concurrency",
	})
	require.NoError(t, err)
	_, err = svc.CreateEntry(1, &CreateEntryRequest{Title: "SQL Cheatsheet", Content: "joins"})
	require.NoError(t, err)

	t.Run("空查询串返回空结果", func(t *testing.T) {
		results, elapsed, err := svc.SearchEntries(1, "   ", nil, "")
		require.NoError(t, err)
		assert.Empty(t, results)
		assert.Zero(t, elapsed)
	})

	t.Run("子串大小写不敏感匹配", func(t *testing.T) {
		results, _, err := svc.SearchEntries(1, "GOROUTINE", nil, "")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Goroutine Basics", results[0].Title)
	})

	t.Run("标签参与匹配", func(t *testing.T) {
		results, _, err := svc.SearchEntries(1, "concurrency", nil, "")
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("类型过滤取交集", func(t *testing.T) {
		results, _, err := svc.SearchEntries(1, "joins", nil, database.EntryTypeResearch)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

// TestSearchEntriesLikeMetacharacters 测试LIKE元字符按字面量匹配
func TestSearchEntriesLikeMetacharacters(t *testing.T) {
	svc, _ := setupEntryService(t)

	_, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "Progress", Content: "coverage at 80% done"})
	require.NoError(t, err)
	_, err = svc.CreateEntry(1, &CreateEntryRequest{Title: "Schema Notes", Content: "the user_id column is indexed"})
	require.NoError(t, err)
	_, err = svc.CreateEntry(1, &CreateEntryRequest{Title: "Misc", Content: "userxid is not a thing"})
	require.NoError(t, err)

	t.Run("百分号只匹配字面量", func(t *testing.T) {
		results, _, err := svc.SearchEntries(1, "%", nil, "")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Progress", results[0].Title)
	})

	t.Run("下划线不作通配符", func(t *testing.T) {
		results, _, err := svc.SearchEntries(1, "user_id", nil, "")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Schema Notes", results[0].Title)
	})

	t.Run("反斜杠按字面量匹配", func(t *testing.T) {
		_, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "Paths", Content: `C:\notes\archive`})
		require.NoError(t, err)

		results, _, err := svc.SearchEntries(1, `\notes`, nil, "")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Paths", results[0].Title)
	})
}

// TestReorderEntry 测试排序调整
func TestReorderEntry(t *testing.T) {
	svc, _ := setupEntryService(t)

	parent, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "Reorder Parent"})
	require.NoError(t, err)
	entry, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "Movable"})
	require.NoError(t, err)

	t.Run("调整排序值", func(t *testing.T) {
		order := 7
		updated, err := svc.ReorderEntry(1, entry.ID, &ReorderEntryRequest{SortOrder: &order})
		require.NoError(t, err)
		assert.Equal(t, 7, updated.SortOrder)
	})

	t.Run("指定新父条目", func(t *testing.T) {
		updated, err := svc.ReorderEntry(1, entry.ID, &ReorderEntryRequest{SetParent: true, ParentID: &parent.ID})
		require.NoError(t, err)
		require.NotNil(t, updated.ParentID)
		assert.Equal(t, parent.ID, *updated.ParentID)
	})

	t.Run("父条目置空升为根条目", func(t *testing.T) {
		updated, err := svc.ReorderEntry(1, entry.ID, &ReorderEntryRequest{SetParent: true})
		require.NoError(t, err)
		assert.Nil(t, updated.ParentID)
	})

	t.Run("非法父条目校验失败时不产生任何修改", func(t *testing.T) {
		order := 99
		missing := uint(123456)
		_, err := svc.ReorderEntry(1, entry.ID, &ReorderEntryRequest{
			SortOrder: &order, SetParent: true, ParentID: &missing,
		})
		require.Error(t, err)

		got, err := svc.GetEntryByID(1, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, 7, got.SortOrder)
		assert.Nil(t, got.ParentID)
	})
}

// TestParentCycleGuard 测试父条目循环检查
func TestParentCycleGuard(t *testing.T) {
	svc, _ := setupEntryService(t)

	a, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "A"})
	require.NoError(t, err)
	b, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "B", ParentID: &a.ID})
	require.NoError(t, err)
	c, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "C", ParentID: &b.ID})
	require.NoError(t, err)

	t.Run("自引用被拒绝", func(t *testing.T) {
		_, err := svc.ReorderEntry(1, a.ID, &ReorderEntryRequest{SetParent: true, ParentID: &a.ID})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrParentCycle))
	})

	t.Run("挂到自己的后代下被拒绝", func(t *testing.T) {
		_, err := svc.ReorderEntry(1, a.ID, &ReorderEntryRequest{SetParent: true, ParentID: &c.ID})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrParentCycle))
	})

	t.Run("合法的重新挂载被允许", func(t *testing.T) {
		updated, err := svc.ReorderEntry(1, c.ID, &ReorderEntryRequest{SetParent: true, ParentID: &a.ID})
		require.NoError(t, err)
		require.NotNil(t, updated.ParentID)
		assert.Equal(t, a.ID, *updated.ParentID)
	})
}

// TestValidationConfig 测试校验配置
func TestValidationConfig(t *testing.T) {
	db := setupTestDB(t)
	strict := NewEntryService(db, ValidationConfig{ContentRequired: true, TopicRequired: true})

	topic := database.Topic{Name: "Strict", Slug: "strict"}
	require.NoError(t, db.Create(&topic).Error)

	t.Run("内容必填", func(t *testing.T) {
		_, err := strict.CreateEntry(1, &CreateEntryRequest{Title: "No Content", TopicID: &topic.ID})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrContentRequired))
	})

	t.Run("主题必选", func(t *testing.T) {
		_, err := strict.CreateEntry(1, &CreateEntryRequest{Title: "No Topic", Content: "body"})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrTopicRequired))
	})

	t.Run("齐备时创建成功", func(t *testing.T) {
		entry, err := strict.CreateEntry(1, &CreateEntryRequest{
			Title: "Complete", Content: "body", TopicID: &topic.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "complete", entry.Slug)
	})
}

// TestListPublicEntries 测试公开条目列表
func TestListPublicEntries(t *testing.T) {
	svc, db := setupEntryService(t)

	topic := database.Topic{Name: "Public Topic", Slug: "public-topic"}
	require.NoError(t, db.Create(&topic).Error)

	_, err := svc.CreateEntry(1, &CreateEntryRequest{Title: "Visible", IsPublic: true, TopicID: &topic.ID})
	require.NoError(t, err)
	_, err = svc.CreateEntry(1, &CreateEntryRequest{Title: "Hidden"})
	require.NoError(t, err)
	_, err = svc.CreateEntry(2, &CreateEntryRequest{Title: "Also Visible", IsPublic: true})
	require.NoError(t, err)

	t.Run("仅返回公开条目且跨用户", func(t *testing.T) {
		entries, total, err := svc.ListPublicEntries("", 1)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, entries, 2)
	})

	t.Run("按主题slug过滤", func(t *testing.T) {
		entries, total, err := svc.ListPublicEntries("public-topic", 1)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, entries, 1)
		assert.Equal(t, "Visible", entries[0].Title)
	})
}
