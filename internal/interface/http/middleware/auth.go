package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/shevko/bookcatalog/pkg/errors"
	"github.com/shevko/bookcatalog/pkg/jwt"
	"github.com/shevko/bookcatalog/pkg/response"
)

// TokenBlacklist Token黑名单查询接口
// 由redis.SessionStore实现;测试时可注入内存实现
type TokenBlacklist interface {
	IsInBlacklist(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware JWT认证中间件
// 流程:从Header提取Token → 检查黑名单 → 验证签名与有效期 → 注入用户信息
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	blacklist  TokenBlacklist
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		blacklist:  blacklist,
	}
}

// RequireAuth 要求登录
// 使用方式：
//
//	books.POST("", authMiddleware.RequireAuth(), bookHandler.CreateBook)
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从Header提取Token(格式:Authorization: Bearer <token>)
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Error(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}
		tokenString := parts[1]

		// 2. 检查Token黑名单(用户已登出或被强制失效)
		isBlacklisted, err := m.blacklist.IsInBlacklist(c.Request.Context(), tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if isBlacklisted {
			response.Error(c, apperrors.ErrTokenExpired)
			c.Abort()
			return
		}

		// 3. 验证Token并解析Claims
		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			response.Error(c, err) // 自动处理ErrTokenExpired、ErrInvalidToken
			c.Abort()
			return
		}

		// 4. 将用户信息注入Context(后续Handler使用)
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("access_token", tokenString)

		c.Next()
	}
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetUserID 从Context获取当前登录用户ID,未登录返回0
func GetUserID(c *gin.Context) uint {
	if userID, exists := c.Get("user_id"); exists {
		if uid, ok := userID.(uint); ok {
			return uid
		}
	}
	return 0
}

// GetUsername 从Context获取当前登录用户名
func GetUsername(c *gin.Context) string {
	if username, exists := c.Get("username"); exists {
		if u, ok := username.(string); ok {
			return u
		}
	}
	return ""
}

// GetAccessToken 从Context获取当前请求的原始Token(登出拉黑用)
func GetAccessToken(c *gin.Context) string {
	if token, exists := c.Get("access_token"); exists {
		if t, ok := token.(string); ok {
			return t
		}
	}
	return ""
}
