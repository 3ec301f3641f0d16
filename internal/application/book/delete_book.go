package book

import (
	"context"

	"github.com/shevko/bookcatalog/internal/domain/book"
)

// DeleteBookUseCase 图书删除用例
type DeleteBookUseCase struct {
	bookService book.Service
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookService book.Service) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService}
}

// Execute 执行删除
// 图书不存在返回ErrBookNotFound;删除不级联作者(孤儿作者保留)
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	return uc.bookService.DeleteBook(ctx, id)
}
