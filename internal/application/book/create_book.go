package book

import (
	"context"

	"github.com/shevko/bookcatalog/internal/domain/book"
	"github.com/shevko/bookcatalog/pkg/metrics"
)

// CreateBookUseCase 创建图书用例
// 应用层负责用例编排,业务规则校验与作者解析由领域服务完成
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService}
}

// CreateBookRequest 创建请求DTO
type CreateBookRequest struct {
	Title         string
	PublishedYear int
	Genre         string
	AuthorName    string
}

// Execute 执行创建
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookResponse, error) {
	b, err := uc.bookService.CreateBook(ctx, req.Title, req.PublishedYear, req.Genre, req.AuthorName)
	if err != nil {
		return nil, err
	}

	metrics.BooksCreatedTotal.Inc()
	return toBookResponse(b), nil
}
