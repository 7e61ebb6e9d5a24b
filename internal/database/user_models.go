package database

import (
	"time"
)

// User 用户模型
// 认证边界的唯一身份实体，所有私有数据均按用户隔离
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`                        // 主键ID，自增
	Username     string    `gorm:"not null;uniqueIndex;size:100" json:"username"` // 用户名，必填且唯一
	Email        string    `gorm:"size:200" json:"email"`                       // 邮箱，可选
	PasswordHash string    `gorm:"not null;size:100" json:"-"`                  // bcrypt密码哈希，不对外输出
	CreatedAt    time.Time `json:"created_at"`                                  // 用户创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                  // 用户最后修改时间
}

// TableName 指定User模型对应的数据库表名
func (User) TableName() string {
	return "users"
}
