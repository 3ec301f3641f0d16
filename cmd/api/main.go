package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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
	"github.com/shevko/bookcatalog/pkg/response"
)

// @title           Book Catalog API
// @version         1.0
// @description     图书目录服务:作者/图书管理、批量导入、JWT认证
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization

// main 主程序入口
// 依赖注入采用手动组装(wire.go提供等价的Wire注入器)
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 3. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 4. 依赖注入(手动组装)
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore, jwtManager)
	createBookUseCase := appbook.NewCreateBookUseCase(bookService)
	getBookUseCase := appbook.NewGetBookUseCase(bookService)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookService)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookService)
	bulkImportUseCase := appbook.NewBulkImportUseCase(bookService)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase)
	bookHandler := handler.NewBookHandler(
		createBookUseCase,
		getBookUseCase,
		listBooksUseCase,
		updateBookUseCase,
		deleteBookUseCase,
		bulkImportUseCase,
	)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 5. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(metrics.GinMiddleware())

	// 6. 注册路由
	registerRoutes(r, userHandler, bookHandler, authMiddleware)

	// 7. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   API文档: http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("   注册: POST http://localhost%s/auth/signup\n", addr)
	fmt.Printf("   登录: POST http://localhost%s/auth/login\n", addr)
	fmt.Printf("   图书列表: GET http://localhost%s/books/\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
// 图书的读接口公开,写接口(创建/更新/删除/批量导入)需要登录
func registerRoutes(r *gin.Engine, userHandler *handler.UserHandler, bookHandler *handler.BookHandler, authMiddleware *middleware.AuthMiddleware) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", metrics.Handler())

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 认证模块
	auth := r.Group("/auth")
	{
		auth.POST("/signup", userHandler.Signup)
		auth.POST("/login", userHandler.Login)
		auth.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
	}

	// 图书模块
	books := r.Group("/books")
	{
		// 公开接口
		books.GET("/", bookHandler.ListBooks)
		books.GET("/:id", bookHandler.GetBook)

		// 需要登录
		books.POST("/", authMiddleware.RequireAuth(), bookHandler.CreateBook)
		books.PUT("/:id", authMiddleware.RequireAuth(), bookHandler.UpdateBook)
		books.DELETE("/:id", authMiddleware.RequireAuth(), bookHandler.DeleteBook)
		books.POST("/bulk-import", authMiddleware.RequireAuth(), bookHandler.BulkImport)
	}
}
