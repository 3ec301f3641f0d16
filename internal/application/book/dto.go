package book

import (
	"github.com/shevko/bookcatalog/internal/domain/book"
)

// AuthorResponse 嵌套作者DTO
type AuthorResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// BookResponse 图书响应DTO(shaped record)
// 作者引用展开为嵌套对象{id, name},不暴露裸外键
type BookResponse struct {
	ID            uint           `json:"id"`
	Title         string         `json:"title"`
	PublishedYear int            `json:"published_year"`
	Genre         string         `json:"genre"`
	Author        AuthorResponse `json:"author"`
}

// toBookResponse 领域实体 → 响应DTO
func toBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		PublishedYear: b.PublishedYear,
		Genre:         b.Genre,
		Author: AuthorResponse{
			ID:   b.Author.ID,
			Name: b.Author.Name,
		},
	}
}
