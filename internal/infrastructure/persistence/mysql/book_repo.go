package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shevko/bookcatalog/internal/domain/book"
	apperrors "github.com/shevko/bookcatalog/pkg/errors"
	"github.com/shevko/bookcatalog/pkg/metrics"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 作者的find-or-create底层操作也在这里(同一聚合)
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// CreateBook 创建图书
// Omit关联写入:作者行已由CreateAuthor/FindAuthorByName保证存在,
// 这里只写books行,不触碰authors
func (r *bookRepository) CreateBook(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Title:         b.Title,
		PublishedYear: b.PublishedYear,
		Genre:         b.Genre,
		AuthorID:      b.AuthorID,
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 回填自增ID
	b.ID = model.ID
	return nil
}

// FindBookByID 根据ID查找图书(Preload关联作者)
func (r *bookRepository) FindBookByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).Preload("Author").First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// ListBooks 按过滤条件分页查询图书列表
// 过滤条件之间为AND关系;书名匹配统一LOWER后LIKE,保证跨存储引擎
// 都不区分大小写(MySQL默认collation不区分,SQLite的LIKE对非ASCII区分)
func (r *bookRepository) ListBooks(ctx context.Context, filter book.ListFilter) ([]*book.Book, error) {
	query := r.db.WithContext(ctx).Model(&BookModel{}).Preload("Author")

	if filter.Title != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Title)+"%")
	}
	if filter.Genre != "" {
		query = query.Where("genre = ?", filter.Genre)
	}
	if filter.YearFrom != 0 {
		query = query.Where("published_year >= ?", filter.YearFrom)
	}
	if filter.YearTo != 0 {
		query = query.Where("published_year <= ?", filter.YearTo)
	}

	// 排序:仅白名单字段,升序;无法识别的sort_by静默忽略(保持存储自然顺序)
	switch filter.SortBy {
	case "title", "published_year", "genre":
		query = query.Order(filter.SortBy + " ASC")
	}

	// 分页:offset由1-based页码计算
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Offset(offset).Limit(filter.PageSize)

	var models []BookModel
	if err := query.Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// UpdateBook 持久化图书的全部可变字段
// 使用显式列更新而非Save,避免GORM顺带写入关联的authors行
func (r *bookRepository) UpdateBook(ctx context.Context, b *book.Book) error {
	err := r.db.WithContext(ctx).Model(&BookModel{}).
		Where("id = ?", b.ID).
		Updates(map[string]interface{}{
			"title":          b.Title,
			"published_year": b.PublishedYear,
			"genre":          b.Genre,
			"author_id":      b.AuthorID,
		}).Error

	if err != nil {
		return apperrors.Wrap(err, "更新图书失败")
	}
	return nil
}

// DeleteBook 删除图书(物理删除,不级联作者)
func (r *bookRepository) DeleteBook(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&BookModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// FindAuthorByName 按名称精确查找作者
func (r *bookRepository) FindAuthorByName(ctx context.Context, name string) (*book.Author, error) {
	var model AuthorModel
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrAuthorNotFound
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}

	return &book.Author{ID: model.ID, Name: model.Name}, nil
}

// CreateAuthor 创建作者行
// 唯一索引冲突(并发find-or-create竞争)转换为ErrAuthorConflict上抛,
// 不做捕获后重查的静默重试
func (r *bookRepository) CreateAuthor(ctx context.Context, a *book.Author) error {
	model := &AuthorModel{Name: a.Name}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrAuthorConflict
		}
		return apperrors.Wrap(err, "创建作者失败")
	}

	a.ID = model.ID
	metrics.AuthorsCreatedTotal.Inc()
	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:            model.ID,
		Title:         model.Title,
		PublishedYear: model.PublishedYear,
		Genre:         model.Genre,
		AuthorID:      model.AuthorID,
		Author: book.Author{
			ID:   model.Author.ID,
			Name: model.Author.Name,
		},
	}
}
