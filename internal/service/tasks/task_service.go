// Package tasks 提供任务与学习追踪相关的业务逻辑服务
// 包含待办任务、学习记录和人生清单的管理
package tasks

import (
	"errors"
	"time"

	"github.com/weiwangfds/lifenote/internal/database"
	apperrors "github.com/weiwangfds/lifenote/internal/errors"
	"github.com/weiwangfds/lifenote/internal/logger"
	"gorm.io/gorm"
)

// 任务面板待处理任务展示条数
const dashboardPendingLimit = 5

// 任务面板最近学习记录展示条数
const dashboardSessionLimit = 5

// TaskService 任务服务接口
// 所有操作按用户隔离
type TaskService interface {
	// CreateTask 创建任务
	CreateTask(userID uint, req *TaskRequest) (*database.Task, error)

	// GetTaskByID 获取任务详情
	GetTaskByID(userID, taskID uint) (*database.Task, error)

	// ListTasks 任务列表，支持状态/优先级/类型过滤
	// 按截止日期、优先级、创建时间排序
	ListTasks(userID uint, filter TaskListFilter) ([]database.Task, error)

	// UpdateTask 更新任务
	// 状态首次转为completed时写入完成时间
	UpdateTask(userID, taskID uint, req *TaskRequest) (*database.Task, error)

	// DeleteTask 删除任务
	DeleteTask(userID, taskID uint) error

	// GetDashboard 任务面板聚合数据
	GetDashboard(userID uint) (*Dashboard, error)
}

// TaskRequest 任务创建/更新请求
type TaskRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`                                      // 任务标题
	Description string     `json:"description"`                                                           // 任务描述
	TaskType    string     `json:"task_type" binding:"omitempty,oneof=work study personal"`               // 任务类型
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`                    // 优先级
	Status      string     `json:"status" binding:"omitempty,oneof=pending in_progress completed cancelled"` // 状态
	DueDate     *time.Time `json:"due_date"`                                                              // 截止日期
}

// TaskListFilter 任务列表过滤条件
type TaskListFilter struct {
	Status   string // 按状态过滤
	Priority string // 按优先级过滤
	TaskType string // 按类型过滤
}

// Dashboard 任务面板聚合数据
type Dashboard struct {
	TodayTasks      []database.Task         `json:"today_tasks"`      // 今日到期的任务
	OverdueTasks    []database.Task         `json:"overdue_tasks"`    // 已逾期的未完成任务
	PendingTasks    []database.Task         `json:"pending_tasks"`    // 待处理任务（前5条）
	InProgressTasks []database.Task         `json:"in_progress_tasks"` // 进行中的任务
	RecentSessions  []database.StudySession `json:"recent_sessions"`  // 最近的学习记录
}

// taskService 任务服务实现
type taskService struct {
	db *gorm.DB
}

// NewTaskService 创建任务服务实例
func NewTaskService(db *gorm.DB) TaskService {
	return &taskService{db: db}
}

// CreateTask 创建任务
func (s *taskService) CreateTask(userID uint, req *TaskRequest) (*database.Task, error) {
	task := &database.Task{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		TaskType:    req.TaskType,
		Priority:    req.Priority,
		Status:      req.Status,
		DueDate:     req.DueDate,
	}
	if task.TaskType == "" {
		task.TaskType = "personal"
	}
	if task.Priority == "" {
		task.Priority = database.TaskPriorityMedium
	}
	if task.Status == "" {
		task.Status = database.TaskStatusPending
	}
	if task.Status == database.TaskStatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	}

	if err := s.db.Create(task).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseInsert, apperrors.GetErrorMessage(apperrors.ErrDatabaseInsert), err)
	}
	logger.Infof("Task created: %s (ID: %d, user: %d)", task.Title, task.ID, userID)
	return task, nil
}

// GetTaskByID 获取任务详情
func (s *taskService) GetTaskByID(userID, taskID uint) (*database.Task, error) {
	var task database.Task
	err := s.db.Where("user_id = ?", userID).First(&task, taskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewByCode(apperrors.ErrTaskNotFound)
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return &task, nil
}

// ListTasks 任务列表
func (s *taskService) ListTasks(userID uint, filter TaskListFilter) ([]database.Task, error) {
	query := s.db.Where("user_id = ?", userID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.TaskType != "" {
		query = query.Where("task_type = ?", filter.TaskType)
	}

	var tasks []database.Task
	err := query.Order("due_date IS NULL, due_date").
		Order("CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END").
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return tasks, nil
}

// UpdateTask 更新任务
func (s *taskService) UpdateTask(userID, taskID uint, req *TaskRequest) (*database.Task, error) {
	task, err := s.GetTaskByID(userID, taskID)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = task.Status
	}

	updates := map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
		"status":      status,
		"due_date":    req.DueDate,
	}
	if req.TaskType != "" {
		updates["task_type"] = req.TaskType
	}
	if req.Priority != "" {
		updates["priority"] = req.Priority
	}
	// 完成时间仅在首次完成时写入
	if status == database.TaskStatusCompleted && task.CompletedAt == nil {
		updates["completed_at"] = time.Now()
	}

	if err := s.db.Model(task).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseUpdate, apperrors.GetErrorMessage(apperrors.ErrDatabaseUpdate), err)
	}
	return s.GetTaskByID(userID, taskID)
}

// DeleteTask 删除任务
func (s *taskService) DeleteTask(userID, taskID uint) error {
	task, err := s.GetTaskByID(userID, taskID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(task).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseDelete, apperrors.GetErrorMessage(apperrors.ErrDatabaseDelete), err)
	}
	logger.Infof("Task deleted: %d (user: %d)", taskID, userID)
	return nil
}

// GetDashboard 任务面板聚合数据
// 今日到期、已逾期、待处理前5条、进行中、最近学习记录
func (s *taskService) GetDashboard(userID uint) (*Dashboard, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	openStatuses := []string{database.TaskStatusPending, database.TaskStatusInProgress}

	dashboard := &Dashboard{}

	err := s.db.Where("user_id = ? AND status IN ? AND due_date >= ? AND due_date < ?",
		userID, openStatuses, dayStart, dayEnd).
		Order("due_date").
		Find(&dashboard.TodayTasks).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}

	err = s.db.Where("user_id = ? AND status IN ? AND due_date < ?", userID, openStatuses, dayStart).
		Order("due_date").
		Find(&dashboard.OverdueTasks).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}

	err = s.db.Where("user_id = ? AND status = ?", userID, database.TaskStatusPending).
		Order("CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END").
		Order("created_at DESC").
		Limit(dashboardPendingLimit).
		Find(&dashboard.PendingTasks).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}

	err = s.db.Where("user_id = ? AND status = ?", userID, database.TaskStatusInProgress).
		Order("updated_at DESC").
		Find(&dashboard.InProgressTasks).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}

	err = s.db.Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Limit(dashboardSessionLimit).
		Find(&dashboard.RecentSessions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}

	return dashboard, nil
}
