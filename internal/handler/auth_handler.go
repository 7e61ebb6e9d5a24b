package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/lifenote/internal/middleware"
	"github.com/weiwangfds/lifenote/internal/response"
	"github.com/weiwangfds/lifenote/internal/service/auth"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService auth.AuthService
}

// NewAuthHandler 创建认证处理器实例
func NewAuthHandler(authService auth.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register 用户注册
// @Summary 用户注册
// @Description 注册新用户并返回JWT访问令牌
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body auth.RegisterRequest true "注册请求"
// @Success 201 {object} response.APIResponse{data=auth.AuthResult} "注册成功"
// @Failure 400 {object} response.APIResponse "用户名已被占用或参数错误"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Register(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Login 用户登录
// @Summary 用户登录
// @Description 校验凭据并返回JWT访问令牌
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body auth.LoginRequest true "登录请求"
// @Success 200 {object} response.APIResponse{data=auth.AuthResult} "登录成功"
// @Failure 401 {object} response.APIResponse "用户名或密码错误"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Login(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Me 当前用户信息
// @Summary 当前用户信息
// @Tags 认证
// @Produce json
// @Success 200 {object} response.APIResponse{data=database.User} "获取成功"
// @Failure 401 {object} response.APIResponse "未登录"
// @Router /api/v1/auth/me [get]
// @Security BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.GetUserByID(middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}
