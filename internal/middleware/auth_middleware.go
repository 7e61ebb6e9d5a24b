package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/weiwangfds/lifenote/config"
	apperrors "github.com/weiwangfds/lifenote/internal/errors"
	"github.com/weiwangfds/lifenote/internal/response"
)

// ContextUserIDKey 认证中间件写入gin上下文的用户ID键名
const ContextUserIDKey = "user_id"

// AuthClaims JWT载荷
// 除标准声明外携带用户ID和用户名
type AuthClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthMiddleware 认证中间件
// 校验Bearer token并将用户ID注入请求上下文，下游处理器据此做归属过滤
type AuthMiddleware struct {
	cfg config.AuthConfig
}

// NewAuthMiddleware 创建认证中间件实例
func NewAuthMiddleware(cfg config.AuthConfig) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg}
}

// IssueToken 为用户签发JWT
func (m *AuthMiddleware) IssueToken(userID uint, username string) (string, error) {
	now := time.Now()
	claims := AuthClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "lifenote",
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(m.cfg.TokenTTLHours) * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.cfg.JWTSecret))
}

// ParseToken 解析并校验JWT
func (m *AuthMiddleware) ParseToken(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.NewByCode(apperrors.ErrInvalidToken)
		}
		return []byte(m.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.NewByCode(apperrors.ErrInvalidToken)
	}
	return claims, nil
}

// RequireAuth 返回校验登录态的gin中间件
// 未携带或携带无效token的请求以401终止
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.Unauthorized(c, apperrors.GetErrorMessage(apperrors.ErrUnauthorized))
			c.Abort()
			return
		}

		claims, err := m.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.Unauthorized(c, apperrors.GetErrorMessage(apperrors.ErrInvalidToken))
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

// CurrentUserID 从gin上下文读取认证用户ID
// 仅在RequireAuth保护的路由内调用有效
func CurrentUserID(c *gin.Context) uint {
	if v, exists := c.Get(ContextUserIDKey); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
