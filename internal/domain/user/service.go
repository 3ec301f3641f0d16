package user

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/shevko/bookcatalog/pkg/errors"
)

// Service 用户领域服务
// 密码加密/验证等不属于单个实体的业务逻辑放在这里
type Service interface {
	// Register 用户注册
	Register(ctx context.Context, username, password string) (*User, error)

	// Login 用户登录(验证用户名和密码)
	Login(ctx context.Context, username, password string) (*User, error)
}

type service struct {
	repo Repository
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 用户注册
// 业务规则:
// 1. 用户名去除首尾空白后至少3个字符
// 2. 密码至少6个字符
// 3. 密码bcrypt加密(DefaultCost)
// 4. 用户名唯一性由数据库UNIQUE索引保证,冲突转换为ErrUsernameDuplicate
func (s *service) Register(ctx context.Context, username, password string) (*User, error) {
	// 按字符数而非字节数计长,与HTTP层binding的min规则一致(多字节字符算1个)
	username = strings.TrimSpace(username)
	if utf8.RuneCountInString(username) < 3 {
		return nil, apperrors.New(apperrors.ErrCodeValidationError, "用户名至少3个字符")
	}
	if utf8.RuneCountInString(password) < 6 {
		return nil, apperrors.New(apperrors.ErrCodeValidationError, "密码至少6个字符")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	u := NewUser(username, string(hashed))
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err // Repository已转换为业务错误
	}

	return u, nil
}

// Login 用户登录
// 用户不存在与密码错误统一返回ErrInvalidPassword,避免泄露用户是否注册
func (s *service) Login(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidPassword
	}

	return u, nil
}
