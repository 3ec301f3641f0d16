package user

import (
	"context"
	"log"
	"time"

	"github.com/shevko/bookcatalog/internal/domain/user"
	"github.com/shevko/bookcatalog/pkg/jwt"
)

// SessionStore 会话存储接口
// 由infrastructure/persistence/redis.SessionStore实现;
// 应用层只依赖接口,便于测试时替换
type SessionStore interface {
	SaveSession(ctx context.Context, userID uint, sessionData map[string]interface{}, ttl time.Duration) error
	DeleteSession(ctx context.Context, userID uint) error
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error
}

// LoginUseCase 用户登录用例
// 流程:验证用户名密码 → 生成JWT Token对 → 保存会话到Redis
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore SessionStore,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string
	Password string
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"` // Access Token过期时间（秒）
}

// UserInfo 用户信息
type UserInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	// 1. 验证用户名密码（调用领域服务）
	u, err := uc.userService.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 生成JWT Token对
	tokenPair, err := uc.jwtManager.GenerateToken(u.ID, u.Username)
	if err != nil {
		return nil, err
	}

	// 3. 保存会话到Redis
	// 会话保存失败不影响登录,只记日志
	sessionData := map[string]interface{}{
		"user_id":  u.ID,
		"username": u.Username,
		"login_at": time.Now().Unix(),
	}
	if err := uc.sessionStore.SaveSession(ctx, u.ID, sessionData, 7*24*time.Hour); err != nil {
		log.Printf("[WARN] 保存会话失败: %v", err)
	}

	return &LoginResponse{
		User: UserInfo{
			ID:       u.ID,
			Username: u.Username,
		},
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	sessionStore SessionStore
	jwtManager   *jwt.Manager
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore SessionStore, jwtManager *jwt.Manager) *LogoutUseCase {
	return &LogoutUseCase{
		sessionStore: sessionStore,
		jwtManager:   jwtManager,
	}
}

// Execute 执行登出
// 删除会话并将Access Token加入黑名单,防止Token在过期前继续使用
// 黑名单TTL取Access Token的配置有效期:覆盖Token可能的最长剩余寿命
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, accessToken string) error {
	if err := uc.sessionStore.DeleteSession(ctx, userID); err != nil {
		return err
	}

	return uc.sessionStore.AddToBlacklist(ctx, accessToken, uc.jwtManager.AccessTokenExpire())
}
