package book

import (
	"context"
	"errors"
	"strings"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 封装跨实体的业务逻辑:字段校验、作者find-or-create、图书写入的编排
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateBook 创建图书
	// 业务规则:
	// - 全部字段校验通过之前不写任何行
	// - 作者按名称解析,不存在则隐式创建
	// - 不做书名去重,同名图书允许存在
	CreateBook(ctx context.Context, title string, publishedYear int, genre, authorName string) (*Book, error)

	// GetBookByID 根据ID获取图书详情(含嵌套作者)
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// ListBooks 按过滤/排序/分页条件查询图书列表
	ListBooks(ctx context.Context, filter ListFilter) ([]*Book, error)

	// UpdateBook 部分更新:只应用UpdateParams中的非零值字段
	// 提供author_name时重新解析作者(必要时创建),不会重命名原作者
	UpdateBook(ctx context.Context, id uint, params UpdateParams) (*Book, error)

	// DeleteBook 删除图书,不存在返回ErrBookNotFound
	DeleteBook(ctx context.Context, id uint) error

	// ResolveAuthor 作者find-or-create:按名称查找,不存在则创建
	// 并发创建同名作者的唯一索引冲突直接作为错误返回,不重试
	ResolveAuthor(ctx context.Context, name string) (*Author, error)
}

type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateBook 创建图书
func (s *service) CreateBook(ctx context.Context, title string, publishedYear int, genre, authorName string) (*Book, error) {
	// 首尾空白在入库前去除:" X"与"X"必须解析到同一作者行
	title = strings.TrimSpace(title)
	authorName = strings.TrimSpace(authorName)

	// 1. 字段校验(体裁白名单、年份范围),失败时尚未发生任何写入
	if err := ValidateNew(title, publishedYear, genre, authorName); err != nil {
		return nil, err
	}

	// 2. 解析作者(find-or-create)
	author, err := s.ResolveAuthor(ctx, authorName)
	if err != nil {
		return nil, err
	}

	// 3. 创建图书实体并持久化
	b := NewBook(title, publishedYear, genre, *author)
	if err := s.repo.CreateBook(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindBookByID(ctx, id)
}

// ListBooks 查询图书列表
func (s *service) ListBooks(ctx context.Context, filter ListFilter) ([]*Book, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 10
	}
	return s.repo.ListBooks(ctx, filter)
}

// UpdateBook 部分更新图书
func (s *service) UpdateBook(ctx context.Context, id uint, params UpdateParams) (*Book, error) {
	// 全空白字段去除后为零值,等同于"不修改"
	params.Title = strings.TrimSpace(params.Title)
	params.AuthorName = strings.TrimSpace(params.AuthorName)

	// 1. 校验提供的字段(在任何查询/写入之前)
	if err := params.Validate(); err != nil {
		return nil, err
	}

	// 2. 查询图书
	b, err := s.repo.FindBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. 提供了新作者名时重新解析并改引用
	// 注意:是改book.author_id指向,不是重命名原作者行
	if params.AuthorName != "" {
		author, err := s.ResolveAuthor(ctx, params.AuthorName)
		if err != nil {
			return nil, err
		}
		b.AuthorID = author.ID
		b.Author = *author
	}

	// 4. 应用其余非零值字段并持久化
	b.Apply(params)
	if err := s.repo.UpdateBook(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	return s.repo.DeleteBook(ctx, id)
}

// ResolveAuthor 作者find-or-create
// 竞态说明:查找与插入不在同一事务中,两个请求同时解析同一新名字时,
// 后插入的一方会收到唯一索引冲突(ErrAuthorConflict),直接上抛
func (s *service) ResolveAuthor(ctx context.Context, name string) (*Author, error) {
	name = strings.TrimSpace(name)

	author, err := s.repo.FindAuthorByName(ctx, name)
	if err == nil {
		return author, nil
	}
	if !errors.Is(err, ErrAuthorNotFound) {
		return nil, err
	}

	author = &Author{Name: name}
	if err := s.repo.CreateAuthor(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}
