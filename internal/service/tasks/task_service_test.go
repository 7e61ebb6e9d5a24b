// 任务与学习追踪服务的单元测试
package tasks

import (
	"testing"
	"time"

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
	require.NoError(t, db.AutoMigrate(
		&database.User{},
		&database.Task{},
		&database.StudySession{},
		&database.List100Item{},
	))
	return db
}

// TestTaskLifecycle 测试任务生命周期
func TestTaskLifecycle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTaskService(db)

	t.Run("创建时填充默认值", func(t *testing.T) {
		task, err := svc.CreateTask(1, &TaskRequest{Title: "Write report"})
		require.NoError(t, err)
		assert.Equal(t, "personal", task.TaskType)
		assert.Equal(t, database.TaskPriorityMedium, task.Priority)
		assert.Equal(t, database.TaskStatusPending, task.Status)
		assert.Nil(t, task.CompletedAt)
	})

	t.Run("完成任务时写入完成时间", func(t *testing.T) {
		task, err := svc.CreateTask(1, &TaskRequest{Title: "Finish me"})
		require.NoError(t, err)

		done, err := svc.UpdateTask(1, task.ID, &TaskRequest{
			Title: "Finish me", Status: database.TaskStatusCompleted,
		})
		require.NoError(t, err)
		require.NotNil(t, done.CompletedAt)
		firstStamp := *done.CompletedAt

		// 重复保存已完成任务不刷新完成时间
		again, err := svc.UpdateTask(1, task.ID, &TaskRequest{
			Title: "Finish me", Status: database.TaskStatusCompleted,
		})
		require.NoError(t, err)
		require.NotNil(t, again.CompletedAt)
		assert.True(t, again.CompletedAt.Equal(firstStamp))
	})

	t.Run("用户隔离", func(t *testing.T) {
		task, err := svc.CreateTask(1, &TaskRequest{Title: "Mine only"})
		require.NoError(t, err)

		_, err = svc.GetTaskByID(2, task.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrTaskNotFound))
	})
}

// TestTaskListFilters 测试任务列表过滤
func TestTaskListFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTaskService(db)

	_, err := svc.CreateTask(1, &TaskRequest{Title: "High work", Priority: database.TaskPriorityHigh, TaskType: "work"})
	require.NoError(t, err)
	_, err = svc.CreateTask(1, &TaskRequest{Title: "Low study", Priority: database.TaskPriorityLow, TaskType: "study"})
	require.NoError(t, err)

	tasks, err := svc.ListTasks(1, TaskListFilter{Priority: database.TaskPriorityHigh})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "High work", tasks[0].Title)

	tasks, err = svc.ListTasks(1, TaskListFilter{TaskType: "study"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Low study", tasks[0].Title)
}

// TestDashboard 测试任务面板聚合
func TestDashboard(t *testing.T) {
	db := setupTestDB(t)
	taskSvc := NewTaskService(db)
	sessionSvc := NewSessionService(db)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())
	yesterday := today.AddDate(0, 0, -1)

	_, err := taskSvc.CreateTask(1, &TaskRequest{Title: "Due today", DueDate: &today})
	require.NoError(t, err)
	_, err = taskSvc.CreateTask(1, &TaskRequest{Title: "Overdue", DueDate: &yesterday})
	require.NoError(t, err)
	_, err = taskSvc.CreateTask(1, &TaskRequest{Title: "Ongoing", Status: database.TaskStatusInProgress})
	require.NoError(t, err)
	// 已完成任务不计入任何看板分组
	_, err = taskSvc.CreateTask(1, &TaskRequest{Title: "Done", Status: database.TaskStatusCompleted, DueDate: &yesterday})
	require.NoError(t, err)

	_, err = sessionSvc.CreateSession(1, &SessionRequest{Subject: "Reading", DurationMinutes: 30})
	require.NoError(t, err)

	dashboard, err := taskSvc.GetDashboard(1)
	require.NoError(t, err)

	require.Len(t, dashboard.TodayTasks, 1)
	assert.Equal(t, "Due today", dashboard.TodayTasks[0].Title)

	require.Len(t, dashboard.OverdueTasks, 1)
	assert.Equal(t, "Overdue", dashboard.OverdueTasks[0].Title)

	require.Len(t, dashboard.InProgressTasks, 1)
	assert.Equal(t, "Ongoing", dashboard.InProgressTasks[0].Title)

	// 待处理分组含今日和逾期的pending任务
	assert.Len(t, dashboard.PendingTasks, 2)
	require.Len(t, dashboard.RecentSessions, 1)
	assert.Equal(t, "Reading", dashboard.RecentSessions[0].Subject)
}

// TestStudySessions 测试学习记录
func TestStudySessions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db)

	earlier := time.Now().AddDate(0, 0, -3)
	_, err := svc.CreateSession(1, &SessionRequest{Subject: "Older", DurationMinutes: 60, Date: &earlier})
	require.NoError(t, err)
	_, err = svc.CreateSession(1, &SessionRequest{Subject: "Newer", DurationMinutes: 45})
	require.NoError(t, err)

	sessions, err := svc.ListSessions(1)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	// 按日期倒序
	assert.Equal(t, "Newer", sessions[0].Subject)
	assert.Equal(t, "Older", sessions[1].Subject)

	// 用户隔离
	others, err := svc.ListSessions(2)
	require.NoError(t, err)
	assert.Empty(t, others)
}

// TestList100 测试人生清单
func TestList100(t *testing.T) {
	db := setupTestDB(t)
	svc := NewList100Service(db)

	t.Run("排序按展示顺序和创建时间", func(t *testing.T) {
		_, err := svc.CreateItem(&List100Request{Title: "Second", SortOrder: 2})
		require.NoError(t, err)
		_, err = svc.CreateItem(&List100Request{Title: "First", SortOrder: 1})
		require.NoError(t, err)

		items, err := svc.ListItems()
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "First", items[0].Title)
		assert.Equal(t, "Second", items[1].Title)
	})

	t.Run("完成时写入完成时间", func(t *testing.T) {
		item, err := svc.CreateItem(&List100Request{Title: "Climb a mountain"})
		require.NoError(t, err)
		require.Nil(t, item.CompletedAt)

		done, err := svc.UpdateItem(item.ID, &List100Request{
			Title: "Climb a mountain", Status: database.List100StatusCompleted,
		})
		require.NoError(t, err)
		assert.NotNil(t, done.CompletedAt)
	})

	t.Run("状态统计口径", func(t *testing.T) {
		_, err := svc.CreateItem(&List100Request{Title: "Started", Status: database.List100StatusInProgress})
		require.NoError(t, err)

		stats, err := svc.GetStats()
		require.NoError(t, err)
		assert.EqualValues(t, 4, stats.Total)
		assert.EqualValues(t, 2, stats.NotStarted)
		assert.EqualValues(t, 1, stats.InProgress)
		assert.EqualValues(t, 1, stats.Completed)
		assert.Equal(t, stats.Total, stats.NotStarted+stats.InProgress+stats.Completed)
	})
}
