package database

import (
	"time"
)

// Task状态常量
const (
	TaskStatusPending    = "pending"     // 待处理
	TaskStatusInProgress = "in_progress" // 进行中
	TaskStatusCompleted  = "completed"   // 已完成
	TaskStatusCancelled  = "cancelled"   // 已取消
)

// Task优先级常量
const (
	TaskPriorityLow    = "low"    // 低优先级
	TaskPriorityMedium = "medium" // 中优先级
	TaskPriorityHigh   = "high"   // 高优先级
)

// List100Item状态常量
const (
	List100StatusNotStarted = "not_started" // 未开始
	List100StatusInProgress = "in_progress" // 进行中
	List100StatusCompleted  = "completed"   // 已完成
)

// Task 任务模型
// 按用户隔离的待办任务，支持类型、优先级和截止日期管理
type Task struct {
	ID          uint       `gorm:"primarykey" json:"id"`                        // 主键ID，自增
	UserID      uint       `gorm:"not null;index" json:"user_id"`               // 所属用户ID
	User        *User      `gorm:"foreignKey:UserID" json:"-"`                  // 所属用户对象
	Title       string     `gorm:"not null;size:200" json:"title"`              // 任务标题，必填
	Description string     `gorm:"type:text" json:"description"`                // 任务描述
	TaskType    string     `gorm:"size:10;default:'personal'" json:"task_type"` // 类型：work、study、personal
	Priority    string     `gorm:"size:10;default:'medium'" json:"priority"`    // 优先级：low、medium、high
	Status      string     `gorm:"size:15;default:'pending'" json:"status"`     // 状态：pending、in_progress、completed、cancelled
	DueDate     *time.Time `json:"due_date"`                                    // 截止日期，可为空
	CompletedAt *time.Time `json:"completed_at"`                                // 完成时间，状态转为completed时写入
	CreatedAt   time.Time  `json:"created_at"`                                  // 任务创建时间
	UpdatedAt   time.Time  `json:"updated_at"`                                  // 任务最后修改时间
}

// TableName 指定Task模型对应的数据库表名
func (Task) TableName() string {
	return "tasks"
}

// StudySession 学习记录模型
type StudySession struct {
	ID              uint      `gorm:"primarykey" json:"id"`             // 主键ID，自增
	UserID          uint      `gorm:"not null;index" json:"user_id"`    // 所属用户ID
	User            *User     `gorm:"foreignKey:UserID" json:"-"`       // 所属用户对象
	Subject         string    `gorm:"not null;size:200" json:"subject"` // 学习主题，必填
	Description     string    `gorm:"type:text" json:"description"`     // 学习内容描述
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"` // 学习时长（分钟）
	Date            time.Time `gorm:"not null;index" json:"date"`       // 学习日期
	Notes           string    `gorm:"type:text" json:"notes"`           // 备注
	CreatedAt       time.Time `json:"created_at"`                       // 记录创建时间
}

// TableName 指定StudySession模型对应的数据库表名
func (StudySession) TableName() string {
	return "study_sessions"
}

// List100Item 人生清单条目模型
// 公开展示的"100件事"清单，与主题一样不按用户隔离
type List100Item struct {
	ID          uint       `gorm:"primarykey" json:"id"`                         // 主键ID，自增
	Title       string     `gorm:"not null;size:300" json:"title"`               // 条目标题，必填
	Description string     `gorm:"type:text" json:"description"`                 // 条目描述
	Status      string     `gorm:"size:15;default:'not_started'" json:"status"`  // 状态：not_started、in_progress、completed
	SortOrder   int        `gorm:"column:sort_order;default:0" json:"order"`     // 展示顺序
	CompletedAt *time.Time `json:"completed_at"`                                 // 完成时间
	CreatedAt   time.Time  `json:"created_at"`                                   // 条目创建时间
	UpdatedAt   time.Time  `json:"updated_at"`                                   // 条目最后修改时间
}

// TableName 指定List100Item模型对应的数据库表名
func (List100Item) TableName() string {
	return "list100_items"
}
