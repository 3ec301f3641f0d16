//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 运行 `wire gen ./cmd/api` 生成wire_gen.go

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appbook "github.com/shevko/bookcatalog/internal/application/book"
	appuser "github.com/shevko/bookcatalog/internal/application/user"
	"github.com/shevko/bookcatalog/internal/domain/book"
	"github.com/shevko/bookcatalog/internal/domain/user"
	"github.com/shevko/bookcatalog/internal/infrastructure/config"
	"github.com/shevko/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/shevko/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/shevko/bookcatalog/internal/interface/http/handler"
	"github.com/shevko/bookcatalog/internal/interface/http/middleware"
	"github.com/shevko/bookcatalog/pkg/jwt"
	"github.com/shevko/bookcatalog/pkg/metrics"
)

// infrastructureSet 基础设施层:配置、MySQL、Redis
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

// repositorySet 仓储层
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
)

// domainSet 领域层
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
)

// applicationSet 应用层用例
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewBulkImportUseCase,
)

// middlewareSet JWT管理器、会话存储与认证中间件
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	middleware.NewAuthMiddleware,
	wire.Bind(new(appuser.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.TokenBlacklist), new(*redis.SessionStore)),
)

// handlerSet HTTP处理器
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewBookHandler,
)

// provideJWTManager 从配置创建JWT管理器
// Config包含多个配置段,Wire无法自动提取字段,需要手动Provider
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建会话存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideGinEngine 创建Gin引擎并注册全部路由
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(metrics.GinMiddleware())

	// 路由与main.go的手动组装共用同一份注册逻辑
	registerRoutes(r, userHandler, bookHandler, authMiddleware)

	return r
}

// InitializeApp 初始化整个应用,返回配置好的Gin引擎
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)

	// 占位返回值,实际代码由wire_gen.go生成
	return nil, nil
}
