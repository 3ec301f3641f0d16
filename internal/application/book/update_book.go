package book

import (
	"context"

	"github.com/shevko/bookcatalog/internal/domain/book"
)

// UpdateBookUseCase 图书部分更新用例
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建更新用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService}
}

// UpdateBookRequest 部分更新请求DTO
// 零值字段表示不修改;提供AuthorName时重新解析作者引用
type UpdateBookRequest struct {
	Title         string
	PublishedYear int
	Genre         string
	AuthorName    string
}

// Execute 执行更新,图书不存在返回ErrBookNotFound
func (uc *UpdateBookUseCase) Execute(ctx context.Context, id uint, req UpdateBookRequest) (*BookResponse, error) {
	b, err := uc.bookService.UpdateBook(ctx, id, book.UpdateParams{
		Title:         req.Title,
		PublishedYear: req.PublishedYear,
		Genre:         req.Genre,
		AuthorName:    req.AuthorName,
	})
	if err != nil {
		return nil, err
	}
	return toBookResponse(b), nil
}
