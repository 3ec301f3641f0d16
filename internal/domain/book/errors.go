package book

import (
	"strings"

	apperrors "github.com/shevko/bookcatalog/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.ErrBookNotFound

	// ErrAuthorNotFound 作者不存在(仓储内部信号,触发find-or-create的创建分支)
	ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeNotFound, "作者不存在")

	// ErrAuthorConflict 作者名唯一索引冲突
	// 并发解析同一新作者名时,后到的INSERT会触发此错误
	// 直接向调用方暴露为创建失败,不做静默重试
	ErrAuthorConflict = apperrors.New(apperrors.ErrCodeDuplicateEntry, "作者记录已存在(并发创建冲突)")

	// 字段校验错误
	ErrTitleRequired      = apperrors.New(apperrors.ErrCodeValidationError, "书名不能为空")
	ErrGenreRequired      = apperrors.New(apperrors.ErrCodeValidationError, "体裁不能为空")
	ErrAuthorNameRequired = apperrors.New(apperrors.ErrCodeValidationError, "作者名不能为空")
	ErrYearOutOfRange     = apperrors.New(apperrors.ErrCodeValidationError, "出版年份必须在1800到当前年份之间")
	ErrGenreNotAllowed    = apperrors.New(apperrors.ErrCodeValidationError,
		"体裁必须为以下之一: "+strings.Join(AllowedGenres, ", "))
)
