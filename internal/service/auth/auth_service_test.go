// 认证服务的单元测试
package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/lifenote/config"
	"github.com/weiwangfds/lifenote/internal/database"
	apperrors "github.com/weiwangfds/lifenote/internal/errors"
	"github.com/weiwangfds/lifenote/internal/middleware"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupAuthService 设置认证服务和配套中间件
func setupAuthService(t *testing.T) (AuthService, *middleware.AuthMiddleware, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&database.User{}))

	cfg := config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
		BcryptCost:    bcrypt.MinCost,
	}
	authMiddleware := middleware.NewAuthMiddleware(cfg)
	return NewAuthService(db, cfg, authMiddleware), authMiddleware, db
}

// TestRegister 测试用户注册
func TestRegister(t *testing.T) {
	svc, authMiddleware, db := setupAuthService(t)

	t.Run("注册返回用户和令牌", func(t *testing.T) {
		result, err := svc.Register(&RegisterRequest{
			Username: "alice", Email: "alice@example.com", Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.Equal(t, "alice", result.User.Username)
		assert.NotEmpty(t, result.Token)

		// 令牌可被中间件解析并携带用户ID
		claims, err := authMiddleware.ParseToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, result.User.ID, claims.UserID)
		assert.Equal(t, "alice", claims.Username)
	})

	t.Run("密码以bcrypt哈希存储", func(t *testing.T) {
		var user database.User
		require.NoError(t, db.Where("username = ?", "alice").First(&user).Error)
		assert.NotEqual(t, "correct-horse", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct-horse")))
	})

	t.Run("用户名重复被拒绝", func(t *testing.T) {
		_, err := svc.Register(&RegisterRequest{Username: "alice", Password: "another-pass"})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrUsernameTaken))
	})
}

// TestLogin 测试用户登录
func TestLogin(t *testing.T) {
	svc, authMiddleware, _ := setupAuthService(t)

	registered, err := svc.Register(&RegisterRequest{Username: "bob", Password: "hunter2-hunter2"})
	require.NoError(t, err)

	t.Run("正确凭据返回令牌", func(t *testing.T) {
		result, err := svc.Login(&LoginRequest{Username: "bob", Password: "hunter2-hunter2"})
		require.NoError(t, err)

		claims, err := authMiddleware.ParseToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, claims.UserID)
	})

	t.Run("密码错误与用户不存在返回同一错误", func(t *testing.T) {
		_, err := svc.Login(&LoginRequest{Username: "bob", Password: "wrong"})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrInvalidCredentials))

		_, err = svc.Login(&LoginRequest{Username: "nobody", Password: "whatever"})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrInvalidCredentials))
	})

	t.Run("篡改令牌被拒绝", func(t *testing.T) {
		_, err := authMiddleware.ParseToken(registered.Token + "tampered")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrInvalidToken))
	})
}
