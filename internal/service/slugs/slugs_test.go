// slug分配器的单元测试
package slugs

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
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&database.Entry{}))
	return db
}

func createEntry(t *testing.T, db *gorm.DB, title, slug string) database.Entry {
	entry := database.Entry{UserID: 1, Title: title, Slug: slug}
	require.NoError(t, db.Create(&entry).Error)
	return entry
}

// TestAllocateFromTitle 测试由标题派生slug
func TestAllocateFromTitle(t *testing.T) {
	db := setupTestDB(t)

	t.Run("标题规范化", func(t *testing.T) {
		slug, err := Allocate(db, "entries", "", "Hello World!", 0)
		require.NoError(t, err)
		assert.Equal(t, "hello-world", slug)
	})

	t.Run("变音字符转写", func(t *testing.T) {
		slug, err := Allocate(db, "entries", "", "Über Café", 0)
		require.NoError(t, err)
		assert.Equal(t, "uber-cafe", slug)
	})

	t.Run("冲突时追加递增后缀", func(t *testing.T) {
		createEntry(t, db, "Intro", "intro")
		createEntry(t, db, "Intro", "intro-1")

		slug, err := Allocate(db, "entries", "", "Intro", 0)
		require.NoError(t, err)
		assert.Equal(t, "intro-2", slug)
	})

	t.Run("标题与slug皆空时返回空串", func(t *testing.T) {
		slug, err := Allocate(db, "entries", "", "", 0)
		require.NoError(t, err)
		assert.Empty(t, slug)
	})

	// 标题规范化后为空时后缀循环依然保证唯一，不触发唯一索引冲突
	t.Run("退化标题经后缀循环保持唯一", func(t *testing.T) {
		first, err := Allocate(db, "entries", "", "!!!", 0)
		require.NoError(t, err)
		assert.Empty(t, first)
		createEntry(t, db, "!!!", first)

		second, err := Allocate(db, "entries", "", "!!!", 0)
		require.NoError(t, err)
		assert.Equal(t, "-1", second)
		createEntry(t, db, "!!!", second)

		third, err := Allocate(db, "entries", "", "!!!", 0)
		require.NoError(t, err)
		assert.Equal(t, "-2", third)
	})
}

// TestAllocateExplicit 测试显式slug
func TestAllocateExplicit(t *testing.T) {
	db := setupTestDB(t)
	existing := createEntry(t, db, "Taken", "taken")

	t.Run("未占用的显式slug原样使用", func(t *testing.T) {
		slug, err := Allocate(db, "entries", "custom-slug", "Whatever Title", 0)
		require.NoError(t, err)
		assert.Equal(t, "custom-slug", slug)
	})

	t.Run("已占用的显式slug被拒绝", func(t *testing.T) {
		_, err := Allocate(db, "entries", "taken", "Another", 0)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrSlugTaken))
	})

	t.Run("更新时排除自身", func(t *testing.T) {
		slug, err := Allocate(db, "entries", "taken", "Taken", existing.ID)
		require.NoError(t, err)
		assert.Equal(t, "taken", slug)
	})
}
