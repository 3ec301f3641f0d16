package book

import (
	"context"

	"github.com/shevko/bookcatalog/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 支持过滤(AND组合)、单字段升序排序、offset/limit分页
// 响应为裸数组,不带总数(原始API如此;客户端只能靠请求下一页判断是否还有数据)
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Title    string // 书名子串(不区分大小写)
	Genre    string // 体裁精确匹配
	YearFrom int    // 出版年份下界(含)
	YearTo   int    // 出版年份上界(含)
	SortBy   string // title|published_year|genre,其余值静默忽略
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) ([]*BookResponse, error) {
	// 参数默认值
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 10
	}

	books, err := uc.bookService.ListBooks(ctx, book.ListFilter{
		Title:    req.Title,
		Genre:    req.Genre,
		YearFrom: req.YearFrom,
		YearTo:   req.YearTo,
		SortBy:   req.SortBy,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, err
	}

	list := make([]*BookResponse, len(books))
	for i, b := range books {
		list[i] = toBookResponse(b)
	}
	return list, nil
}
