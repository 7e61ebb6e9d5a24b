// Package auth 提供用户注册与登录的业务逻辑服务
package auth

import (
	"errors"

	"github.com/weiwangfds/lifenote/config"
	"github.com/weiwangfds/lifenote/internal/database"
	apperrors "github.com/weiwangfds/lifenote/internal/errors"
	"github.com/weiwangfds/lifenote/internal/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenIssuer 为登录用户签发访问令牌
// 由认证中间件实现，服务层只依赖该能力
type TokenIssuer interface {
	IssueToken(userID uint, username string) (string, error)
}

// AuthService 认证服务接口
type AuthService interface {
	// Register 用户注册
	// 用户名全站唯一，密码以bcrypt哈希存储
	Register(req *RegisterRequest) (*AuthResult, error)

	// Login 用户登录
	// 用户名不存在与密码错误返回同一错误，不泄露账号存在性
	Login(req *LoginRequest) (*AuthResult, error)

	// GetUserByID 获取用户信息
	GetUserByID(userID uint) (*database.User, error)
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=150"` // 用户名
	Email    string `json:"email" binding:"omitempty,email"`           // 邮箱
	Password string `json:"password" binding:"required,min=8"`         // 密码
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // 用户名
	Password string `json:"password" binding:"required"` // 密码
}

// AuthResult 认证结果，包含用户信息和访问令牌
type AuthResult struct {
	User  *database.User `json:"user"`  // 用户信息
	Token string         `json:"token"` // JWT访问令牌
}

// authService 认证服务实现
type authService struct {
	db     *gorm.DB
	cfg    config.AuthConfig
	issuer TokenIssuer
}

// NewAuthService 创建认证服务实例
func NewAuthService(db *gorm.DB, cfg config.AuthConfig, issuer TokenIssuer) AuthService {
	return &authService{db: db, cfg: cfg, issuer: issuer}
}

// Register 用户注册
func (s *authService) Register(req *RegisterRequest) (*AuthResult, error) {
	var count int64
	if err := s.db.Model(&database.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	if count > 0 {
		return nil, apperrors.NewByCode(apperrors.ErrUsernameTaken)
	}

	cost := s.cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), cost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, "failed to hash password", err)
	}

	user := &database.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseInsert, apperrors.GetErrorMessage(apperrors.ErrDatabaseInsert), err)
	}

	token, err := s.issuer.IssueToken(user.ID, user.Username)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, "failed to issue token", err)
	}

	logger.Infof("User registered: %s (ID: %d)", user.Username, user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

// Login 用户登录
func (s *authService) Login(req *LoginRequest) (*AuthResult, error) {
	var user database.User
	err := s.db.Where("username = ?", req.Username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewByCode(apperrors.ErrInvalidCredentials)
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperrors.NewByCode(apperrors.ErrInvalidCredentials)
	}

	token, err := s.issuer.IssueToken(user.ID, user.Username)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, "failed to issue token", err)
	}

	logger.Infof("User logged in: %s (ID: %d)", user.Username, user.ID)
	return &AuthResult{User: &user, Token: token}, nil
}

// GetUserByID 获取用户信息
func (s *authService) GetUserByID(userID uint) (*database.User, error) {
	var user database.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewByCode(apperrors.ErrUserNotFound)
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return &user, nil
}
