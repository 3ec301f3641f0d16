package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	appbook "github.com/shevko/bookcatalog/internal/application/book"
	appuser "github.com/shevko/bookcatalog/internal/application/user"
	"github.com/shevko/bookcatalog/internal/domain/book"
	"github.com/shevko/bookcatalog/internal/domain/user"
	"github.com/shevko/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/shevko/bookcatalog/internal/interface/http/middleware"
	"github.com/shevko/bookcatalog/pkg/jwt"
)

// fakeSessionStore 内存会话存储
// 同时实现appuser.SessionStore与middleware.TokenBlacklist
type fakeSessionStore struct {
	blacklist map[string]bool
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{blacklist: make(map[string]bool)}
}

func (s *fakeSessionStore) SaveSession(_ context.Context, _ uint, _ map[string]interface{}, _ time.Duration) error {
	return nil
}

func (s *fakeSessionStore) DeleteSession(_ context.Context, _ uint) error {
	return nil
}

func (s *fakeSessionStore) AddToBlacklist(_ context.Context, token string, _ time.Duration) error {
	s.blacklist[token] = true
	return nil
}

func (s *fakeSessionStore) IsInBlacklist(_ context.Context, token string) (bool, error) {
	return s.blacklist[token], nil
}

// respEnvelope 统一响应结构(测试侧解析)
type respEnvelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// newTestRouter 构造与生产环境同构的路由(存储层换成内存SQLite)
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, mysql.Migrate(db))

	sessionStore := newFakeSessionStore()
	jwtManager := jwt.NewManager("test-secret", 2*time.Hour, 168*time.Hour)

	userService := user.NewService(mysql.NewUserRepository(db))
	bookService := book.NewService(mysql.NewBookRepository(db))

	userHandler := NewUserHandler(
		appuser.NewRegisterUseCase(userService),
		appuser.NewLoginUseCase(userService, jwtManager, sessionStore),
		appuser.NewLogoutUseCase(sessionStore, jwtManager),
	)
	bookHandler := NewBookHandler(
		appbook.NewCreateBookUseCase(bookService),
		appbook.NewGetBookUseCase(bookService),
		appbook.NewListBooksUseCase(bookService),
		appbook.NewUpdateBookUseCase(bookService),
		appbook.NewDeleteBookUseCase(bookService),
		appbook.NewBulkImportUseCase(bookService),
	)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	r := gin.New()

	auth := r.Group("/auth")
	{
		auth.POST("/signup", userHandler.Signup)
		auth.POST("/login", userHandler.Login)
		auth.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
	}

	books := r.Group("/books")
	{
		books.GET("/", bookHandler.ListBooks)
		books.GET("/:id", bookHandler.GetBook)
		books.POST("/", authMiddleware.RequireAuth(), bookHandler.CreateBook)
		books.PUT("/:id", authMiddleware.RequireAuth(), bookHandler.UpdateBook)
		books.DELETE("/:id", authMiddleware.RequireAuth(), bookHandler.DeleteBook)
		books.POST("/bulk-import", authMiddleware.RequireAuth(), bookHandler.BulkImport)
	}

	return r
}

// doJSON 发送JSON请求并解析统一响应
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (int, respEnvelope) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var envelope respEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), "响应不是合法JSON: %s", w.Body.String())
	return w.Code, envelope
}

// doUpload 上传multipart文件到批量导入接口
func doUpload(t *testing.T, r *gin.Engine, token, filename string, content []byte) (int, respEnvelope) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/books/bulk-import", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var envelope respEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w.Code, envelope
}

// signupAndLogin 注册并登录测试用户,返回Access Token
func signupAndLogin(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()

	creds := map[string]string{"username": username, "password": "secret123"}

	status, _ := doJSON(t, r, http.MethodPost, "/auth/signup", "", creds)
	require.Equal(t, http.StatusOK, status, "注册失败")

	status, envelope := doJSON(t, r, http.MethodPost, "/auth/login", "", creds)
	require.Equal(t, http.StatusOK, status, "登录失败")

	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &login))
	require.NotEmpty(t, login.AccessToken)
	return login.AccessToken
}

// createBook 通过HTTP创建图书,返回图书ID
func createBook(t *testing.T, r *gin.Engine, token, title string, year int, genre, authorName string) uint {
	t.Helper()

	status, envelope := doJSON(t, r, http.MethodPost, "/books/", token, map[string]interface{}{
		"title":          title,
		"published_year": year,
		"genre":          genre,
		"author_name":    authorName,
	})
	require.Equal(t, http.StatusOK, status, "创建图书失败: %s", envelope.Message)

	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &created))
	require.NotZero(t, created.ID)
	return created.ID
}
