package user

import (
	"context"
)

// Repository 用户仓储接口
// 接口定义在domain层,具体实现在infrastructure/persistence/mysql层
type Repository interface {
	// Create 创建用户
	// 用户名已存在时返回apperrors.ErrUsernameDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户,不存在返回apperrors.ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByUsername 根据用户名查找用户,不存在返回apperrors.ErrUserNotFound
	FindByUsername(ctx context.Context, username string) (*User, error)
}
