package errors

import (
	"fmt"

	"github.com/weiwangfds/lifenote/internal/i18n"
)

// ErrorCode 错误码类型
type ErrorCode int

// 定义错误码常量
const (
	// 通用错误码 (1000-1999)
	ErrSuccess            ErrorCode = 0    // 成功
	ErrInternalServer     ErrorCode = 1000 // 服务器内部错误
	ErrInvalidParams      ErrorCode = 1001 // 参数错误
	ErrUnauthorized       ErrorCode = 1002 // 未授权
	ErrForbidden          ErrorCode = 1003 // 禁止访问
	ErrNotFound           ErrorCode = 1004 // 资源未找到
	ErrMethodNotAllowed   ErrorCode = 1005 // 方法不允许
	ErrTooManyRequests    ErrorCode = 1006 // 请求过于频繁
	ErrServiceUnavailable ErrorCode = 1007 // 服务不可用

	// 认证相关错误码 (2000-2999)
	ErrUserNotFound       ErrorCode = 2000 // 用户未找到
	ErrUsernameTaken      ErrorCode = 2001 // 用户名已被占用
	ErrInvalidCredentials ErrorCode = 2002 // 用户名或密码错误
	ErrInvalidToken       ErrorCode = 2003 // Token无效或已过期

	// 知识库相关错误码 (3000-3999)
	ErrEntryNotFound      ErrorCode = 3000 // 知识条目未找到
	ErrTopicNotFound      ErrorCode = 3001 // 主题未找到
	ErrLearnResNotFound   ErrorCode = 3002 // 学习资源未找到
	ErrSlugTaken          ErrorCode = 3003 // Slug已被使用
	ErrInvalidParent      ErrorCode = 3004 // 父条目ID无效
	ErrParentCycle        ErrorCode = 3005 // 父条目指定会形成循环
	ErrTitleRequired      ErrorCode = 3006 // 标题为必填项
	ErrContentRequired    ErrorCode = 3007 // 内容为必填项
	ErrTopicRequired      ErrorCode = 3008 // 主题为必填项

	// 博客相关错误码 (4000-4999)
	ErrPostNotFound     ErrorCode = 4000 // 文章未找到
	ErrCategoryNotFound ErrorCode = 4001 // 分类未找到

	// 任务相关错误码 (5000-5999)
	ErrTaskNotFound     ErrorCode = 5000 // 任务未找到
	ErrSessionNotFound  ErrorCode = 5001 // 学习记录未找到
	ErrListItemNotFound ErrorCode = 5002 // 清单条目未找到

	// 数据库相关错误码 (6000-6999)
	ErrDatabaseQuery       ErrorCode = 6000 // 数据库查询错误
	ErrDatabaseInsert      ErrorCode = 6001 // 数据库插入错误
	ErrDatabaseUpdate      ErrorCode = 6002 // 数据库更新错误
	ErrDatabaseDelete      ErrorCode = 6003 // 数据库删除错误
	ErrDatabaseTransaction ErrorCode = 6004 // 数据库事务错误
	ErrRecordNotFound      ErrorCode = 6005 // 记录未找到
	ErrRecordAlreadyExists ErrorCode = 6006 // 记录已存在
)

// AppError 应用错误结构体
// @Description 应用程序统一错误格式
type AppError struct {
	// 错误码
	Code ErrorCode `json:"code"`
	// 错误消息
	Message string `json:"message"`
	// 详细错误信息
	Details string `json:"details,omitempty"`
	// 原始错误
	OriginalError error `json:"-"`
}

// Error 实现error接口
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%d] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 返回原始错误，支持errors.Is/As链式判断
func (e *AppError) Unwrap() error {
	return e.OriginalError
}

// WithDetails 添加详细错误信息
func (e *AppError) WithDetails(details string) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewByCode 根据错误码创建应用错误，消息从i18n语言包解析
func NewByCode(code ErrorCode) *AppError {
	return New(code, GetErrorMessage(code))
}

// Wrap 包装原始错误
func Wrap(code ErrorCode, message string, err error) *AppError {
	appErr := &AppError{
		Code:          code,
		Message:       message,
		OriginalError: err,
	}
	if err != nil {
		appErr.Details = err.Error()
	}
	return appErr
}

// IsAppError 判断是否为应用错误
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError 获取应用错误
func GetAppError(err error) (*AppError, bool) {
	appErr, ok := err.(*AppError)
	return appErr, ok
}

// IsCode 判断错误是否携带指定错误码
func IsCode(err error, code ErrorCode) bool {
	if appErr, ok := GetAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// 错误码到i18n键的映射
var errorCodeToKeyMap = map[ErrorCode]string{
	ErrSuccess:            "success",
	ErrInternalServer:     "internal_server_error",
	ErrInvalidParams:      "invalid_params",
	ErrUnauthorized:       "unauthorized",
	ErrForbidden:          "forbidden",
	ErrNotFound:           "not_found",
	ErrMethodNotAllowed:   "method_not_allowed",
	ErrTooManyRequests:    "too_many_requests",
	ErrServiceUnavailable: "service_unavailable",

	ErrUserNotFound:       "user_not_found",
	ErrUsernameTaken:      "username_taken",
	ErrInvalidCredentials: "invalid_credentials",
	ErrInvalidToken:       "invalid_token",

	ErrEntryNotFound:    "entry_not_found",
	ErrTopicNotFound:    "topic_not_found",
	ErrLearnResNotFound: "resource_not_found",
	ErrSlugTaken:        "slug_taken",
	ErrInvalidParent:    "invalid_parent",
	ErrParentCycle:      "parent_cycle",
	ErrTitleRequired:    "title_required",
	ErrContentRequired:  "content_required",
	ErrTopicRequired:    "topic_required",

	ErrPostNotFound:     "post_not_found",
	ErrCategoryNotFound: "category_not_found",

	ErrTaskNotFound:     "task_not_found",
	ErrSessionNotFound:  "session_not_found",
	ErrListItemNotFound: "list_item_not_found",

	ErrDatabaseQuery:       "database_query",
	ErrDatabaseInsert:      "database_insert",
	ErrDatabaseUpdate:      "database_update",
	ErrDatabaseDelete:      "database_delete",
	ErrDatabaseTransaction: "database_transaction",
	ErrRecordNotFound:      "record_not_found",
	ErrRecordAlreadyExists: "record_already_exists",
}

// GetErrorMessage 根据错误码获取错误消息（使用默认语言）
func GetErrorMessage(code ErrorCode) string {
	return GetErrorMessageWithLang(code, i18n.GetInstance().GetDefaultLanguage())
}

// GetErrorMessageWithLang 根据错误码和语言获取错误消息
func GetErrorMessageWithLang(code ErrorCode, lang string) string {
	key, exists := errorCodeToKeyMap[code]
	if !exists {
		key = "unknown_error"
	}
	return i18n.GetInstance().Translate(key, lang)
}
