package book

import (
	"strings"
	"time"
)

// AllowedGenres 体裁白名单
// 固定枚举,图书的genre字段必须精确匹配其中之一
var AllowedGenres = []string{"Fiction", "Non-Fiction", "Science", "History"}

// MinPublishedYear 出版年份下限
// 有效范围为[1800, 当前年份]
const MinPublishedYear = 1800

// Author 作者实体
// 设计说明:
// 1. 作者没有独立的创建/删除接口,生命周期完全由图书操作驱动
// 2. Name全局唯一(数据库UNIQUE索引保证),同名图书共享同一作者行
// 3. 删除图书不级联删除作者,孤儿作者保留
type Author struct {
	ID   uint
	Name string
}

// Book 图书实体(聚合根)
// Author字段是冗余加载的关联作者,对外展示为嵌套对象{id, name}
type Book struct {
	ID            uint
	Title         string
	PublishedYear int
	Genre         string
	AuthorID      uint
	Author        Author
}

// NewBook 创建新图书(工厂方法)
// 调用方需先通过ValidateNew校验字段,并完成作者解析
func NewBook(title string, publishedYear int, genre string, author Author) *Book {
	return &Book{
		Title:         title,
		PublishedYear: publishedYear,
		Genre:         genre,
		AuthorID:      author.ID,
		Author:        author,
	}
}

// UpdateParams 部分更新参数
// 零值字段表示"不修改"(与原始API的可选字段语义一致)
type UpdateParams struct {
	Title         string
	PublishedYear int
	Genre         string
	AuthorName    string
}

// IsGenreAllowed 检查体裁是否在白名单内(精确匹配,区分大小写)
func IsGenreAllowed(genre string) bool {
	for _, g := range AllowedGenres {
		if g == genre {
			return true
		}
	}
	return false
}

// ValidateNew 校验创建图书的完整字段集
// 业务规则:
// - title、genre、authorName必填(去除首尾空白后非空)
// - publishedYear ∈ [1800, 当前年份]
// - genre必须在白名单内
// 所有校验在任何数据库写入之前完成
func ValidateNew(title string, publishedYear int, genre, authorName string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(authorName) == "" {
		return ErrAuthorNameRequired
	}
	if strings.TrimSpace(genre) == "" {
		return ErrGenreRequired
	}
	if !IsGenreAllowed(genre) {
		return ErrGenreNotAllowed
	}
	if err := validateYear(publishedYear); err != nil {
		return err
	}
	return nil
}

// Validate 校验部分更新参数(只校验提供的字段)
func (p UpdateParams) Validate() error {
	if p.Genre != "" && !IsGenreAllowed(p.Genre) {
		return ErrGenreNotAllowed
	}
	if p.PublishedYear != 0 {
		if err := validateYear(p.PublishedYear); err != nil {
			return err
		}
	}
	return nil
}

// Apply 将非零值字段应用到图书实体(作者重新解析由Service负责)
func (b *Book) Apply(p UpdateParams) {
	if p.Title != "" {
		b.Title = p.Title
	}
	if p.PublishedYear != 0 {
		b.PublishedYear = p.PublishedYear
	}
	if p.Genre != "" {
		b.Genre = p.Genre
	}
}

func validateYear(year int) error {
	if year < MinPublishedYear || year > time.Now().Year() {
		return ErrYearOutOfRange
	}
	return nil
}
