// 主题服务的单元测试
package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/lifenote/internal/database"
	apperrors "github.com/weiwangfds/lifenote/internal/errors"
)

// TestTopicCRUD 测试主题的基本操作
func TestTopicCRUD(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTopicService(db)

	t.Run("创建主题并派生slug", func(t *testing.T) {
		topic, err := svc.CreateTopic(&TopicRequest{Name: "Distributed Systems"})
		require.NoError(t, err)
		assert.Equal(t, "distributed-systems", topic.Slug)
	})

	t.Run("列表按名称排序", func(t *testing.T) {
		_, err := svc.CreateTopic(&TopicRequest{Name: "Algorithms"})
		require.NoError(t, err)

		topics, err := svc.ListTopics()
		require.NoError(t, err)
		require.Len(t, topics, 2)
		assert.Equal(t, "Algorithms", topics[0].Name)
		assert.Equal(t, "Distributed Systems", topics[1].Name)
	})

	t.Run("更新主题", func(t *testing.T) {
		topic, err := svc.GetTopicBySlug("algorithms")
		require.NoError(t, err)

		updated, err := svc.UpdateTopic(topic.ID, &TopicRequest{Name: "Algorithms", Description: "sorting and graphs"})
		require.NoError(t, err)
		assert.Equal(t, "sorting and graphs", updated.Description)
	})

	t.Run("不存在的主题返回未找到", func(t *testing.T) {
		_, err := svc.GetTopicByID(9999)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrTopicNotFound))
	})
}

// TestDeleteTopicCascadeAndDetach 测试主题删除
// 子主题级联删除，关联条目和资源只解除归属而不删除
func TestDeleteTopicCascadeAndDetach(t *testing.T) {
	db := setupTestDB(t)
	topicSvc := NewTopicService(db)
	entrySvc := NewEntryService(db, ValidationConfig{})

	parent, err := topicSvc.CreateTopic(&TopicRequest{Name: "Parent Topic"})
	require.NoError(t, err)
	child, err := topicSvc.CreateTopic(&TopicRequest{Name: "Child Topic", ParentID: &parent.ID})
	require.NoError(t, err)

	entry, err := entrySvc.CreateEntry(1, &CreateEntryRequest{Title: "Attached", TopicID: &child.ID})
	require.NoError(t, err)

	resource := database.Resource{UserID: 1, Title: "Book", TopicID: &parent.ID, Status: database.ResourceStatusToRead}
	require.NoError(t, db.Create(&resource).Error)

	require.NoError(t, topicSvc.DeleteTopic(parent.ID))

	// 子主题随父主题删除
	_, err = topicSvc.GetTopicByID(child.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrTopicNotFound))

	// 条目存活且主题归属被置空
	got, err := entrySvc.GetEntryByID(1, entry.ID)
	require.NoError(t, err)
	assert.Nil(t, got.TopicID)

	// 资源同样只解除归属
	var gotResource database.Resource
	require.NoError(t, db.First(&gotResource, resource.ID).Error)
	assert.Nil(t, gotResource.TopicID)
}

// TestTopicSlugConflict 测试主题slug冲突
func TestTopicSlugConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTopicService(db)

	first, err := svc.CreateTopic(&TopicRequest{Name: "Go"})
	require.NoError(t, err)
	assert.Equal(t, "go", first.Slug)

	// 同名主题自动获得后缀
	second, err := svc.CreateTopic(&TopicRequest{Name: "Go"})
	require.NoError(t, err)
	assert.Equal(t, "go-1", second.Slug)

	// 显式slug冲突被拒绝
	_, err = svc.CreateTopic(&TopicRequest{Name: "Golang", Slug: "go"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrSlugTaken))

	var count int64
	require.NoError(t, db.Model(&database.Topic{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

// TestResourceService 测试学习资源服务
func TestResourceService(t *testing.T) {
	db := setupTestDB(t)
	svc := NewResourceService(db)

	t.Run("创建时默认状态为待阅读", func(t *testing.T) {
		resource, err := svc.CreateResource(1, &ResourceRequest{Title: "SICP", ResourceType: "book"})
		require.NoError(t, err)
		assert.Equal(t, database.ResourceStatusToRead, resource.Status)
	})

	t.Run("按状态过滤", func(t *testing.T) {
		_, err := svc.CreateResource(1, &ResourceRequest{Title: "Course", ResourceType: "course", Status: database.ResourceStatusReading})
		require.NoError(t, err)

		resources, total, err := svc.ListResources(1, ResourceListFilter{Status: database.ResourceStatusReading})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, resources, 1)
		assert.Equal(t, "Course", resources[0].Title)
	})

	t.Run("用户隔离", func(t *testing.T) {
		resources, total, err := svc.ListResources(2, ResourceListFilter{})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, resources)
	})
}
