package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
//  1. 由domain层定义接口,infrastructure层实现
//  2. 作者操作也放在本仓储中:作者的生命周期完全由图书聚合驱动,
//     没有独立的作者端点,不值得拆出单独的聚合
//  3. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// CreateBook 创建图书(author_id必须指向已存在的作者行)
	CreateBook(ctx context.Context, book *Book) error

	// FindBookByID 根据ID查找图书(含关联作者),不存在返回ErrBookNotFound
	FindBookByID(ctx context.Context, id uint) (*Book, error)

	// ListBooks 按过滤条件分页查询图书列表(含关联作者)
	// 不返回总数:原始API的列表响应就是裸数组
	ListBooks(ctx context.Context, filter ListFilter) ([]*Book, error)

	// UpdateBook 持久化图书的全部可变字段
	UpdateBook(ctx context.Context, book *Book) error

	// DeleteBook 删除图书行,不存在返回ErrBookNotFound
	// 不级联删除作者
	DeleteBook(ctx context.Context, id uint) error

	// FindAuthorByName 按名称精确查找作者,不存在返回ErrAuthorNotFound
	FindAuthorByName(ctx context.Context, name string) (*Author, error)

	// CreateAuthor 创建作者行
	// 唯一索引冲突(并发find-or-create竞争)返回ErrAuthorConflict
	CreateAuthor(ctx context.Context, author *Author) error
}

// ListFilter 列表查询参数
// 过滤条件之间为AND关系,零值字段表示不过滤
type ListFilter struct {
	Title    string // 书名子串匹配(不区分大小写)
	Genre    string // 体裁精确匹配
	YearFrom int    // 出版年份下界(含)
	YearTo   int    // 出版年份上界(含)
	SortBy   string // 排序字段(title|published_year|genre,仅升序);无法识别的值静默忽略
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
}
