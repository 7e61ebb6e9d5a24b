// Package response 提供统一的API响应格式和辅助函数
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/weiwangfds/lifenote/internal/errors"
)

// APIResponse 统一返回值结构体
// @Description API统一响应格式
type APIResponse struct {
	// 是否成功
	Success bool `json:"success" example:"true"`
	// 响应消息
	Message string `json:"message" example:"success"`
	// 响应数据
	Data interface{} `json:"data,omitempty"`
	// 错误详情
	Error string `json:"error,omitempty"`
	// 请求ID，用于链路追踪
	RequestID string `json:"request_id,omitempty"`
}

// PageData 分页数据结构体
// @Description 分页响应数据格式
type PageData struct {
	// 数据列表
	List interface{} `json:"list"`
	// 总数
	Total int64 `json:"total" example:"100"`
	// 当前页码
	Page int `json:"page" example:"1"`
	// 每页大小
	PageSize int `json:"page_size" example:"20"`
	// 总页数
	TotalPages int `json:"total_pages" example:"5"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success:   true,
		Message:   "success",
		Data:      data,
		RequestID: getRequestID(c),
	})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success:   true,
		Message:   "created",
		Data:      data,
		RequestID: getRequestID(c),
	})
}

// SuccessWithMessage 带消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: getRequestID(c),
	})
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	Success(c, PageData{
		List:       list,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// BadRequest 400错误响应
func BadRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, message, "")
}

// Unauthorized 401错误响应
func Unauthorized(c *gin.Context, message string) {
	fail(c, http.StatusUnauthorized, message, "")
}

// NotFound 404错误响应
func NotFound(c *gin.Context, message string) {
	fail(c, http.StatusNotFound, message, "")
}

// InternalServerError 500错误响应
func InternalServerError(c *gin.Context, message string) {
	fail(c, http.StatusInternalServerError, message, "")
}

// Error 根据应用错误码返回对应的HTTP响应
// 非AppError的错误一律按500处理，不向调用方泄露内部细节
func Error(c *gin.Context, err error) {
	appErr, ok := apperrors.GetAppError(err)
	if !ok {
		fail(c, http.StatusInternalServerError, apperrors.GetErrorMessage(apperrors.ErrInternalServer), "")
		return
	}
	fail(c, httpStatus(appErr.Code), appErr.Message, appErr.Details)
}

// fail 输出错误响应
func fail(c *gin.Context, status int, message, details string) {
	c.JSON(status, APIResponse{
		Success:   false,
		Message:   message,
		Error:     details,
		RequestID: getRequestID(c),
	})
}

// httpStatus 将应用错误码映射为HTTP状态码
func httpStatus(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrInvalidParams, apperrors.ErrSlugTaken, apperrors.ErrInvalidParent,
		apperrors.ErrParentCycle, apperrors.ErrTitleRequired, apperrors.ErrContentRequired,
		apperrors.ErrTopicRequired, apperrors.ErrUsernameTaken:
		return http.StatusBadRequest
	case apperrors.ErrUnauthorized, apperrors.ErrInvalidCredentials, apperrors.ErrInvalidToken:
		return http.StatusUnauthorized
	case apperrors.ErrForbidden:
		return http.StatusForbidden
	case apperrors.ErrNotFound, apperrors.ErrUserNotFound, apperrors.ErrEntryNotFound,
		apperrors.ErrTopicNotFound, apperrors.ErrLearnResNotFound, apperrors.ErrPostNotFound,
		apperrors.ErrCategoryNotFound, apperrors.ErrTaskNotFound, apperrors.ErrSessionNotFound,
		apperrors.ErrListItemNotFound, apperrors.ErrRecordNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// getRequestID 获取请求ID
func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}
