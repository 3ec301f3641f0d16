package dto

// CreateBookRequest HTTP创建图书请求
// binding tag只做必填校验;体裁白名单与年份范围等业务规则由领域层校验,
// 错误信息更友好且年份上界(当前年份)是动态的
type CreateBookRequest struct {
	Title         string `json:"title" binding:"required" example:"Кобзар"`
	PublishedYear int    `json:"published_year" binding:"required" example:"1840"`
	Genre         string `json:"genre" binding:"required" example:"Fiction"`
	AuthorName    string `json:"author_name" binding:"required" example:"Тарас Шевченко"`
}

// UpdateBookRequest HTTP部分更新请求
// 所有字段可选:缺省/空值表示不修改
type UpdateBookRequest struct {
	Title         string `json:"title" example:"Кобзар"`
	PublishedYear int    `json:"published_year" example:"1840"`
	Genre         string `json:"genre" example:"History"`
	AuthorName    string `json:"author_name" example:"Тарас Шевченко"`
}

// ListBooksQuery HTTP列表查询参数
type ListBooksQuery struct {
	Title    string `form:"title"`
	Genre    string `form:"genre"`
	YearFrom int    `form:"published_year_from"`
	YearTo   int    `form:"published_year_to"`
	SortBy   string `form:"sort_by"` // title|published_year|genre,其余值静默忽略
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=10" binding:"omitempty,min=1"`
}
