package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		code int
		want int
	}{
		{"资源不存在映射404", ErrCodeBookNotFound, 404},
		{"未登录映射401", ErrCodeUnauthorized, 401},
		{"Token过期映射401", ErrCodeTokenExpired, 401},
		{"内部错误映射500", ErrCodeDatabaseError, 500},
		{"字段校验失败映射400", ErrCodeValidationError, 400},
		{"业务错误映射400", ErrCodeDuplicateEntry, 400},
		{"文件类型不支持映射400", ErrCodeUnsupportedFile, 400},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, New(tc.code, "test").HTTPStatus())
		})
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	wrapped := Wrap(inner, "数据库错误")

	assert.Equal(t, ErrCodeInternal, wrapped.Code)
	assert.ErrorIs(t, wrapped, inner, "Wrap应保留错误链")
}

func TestGetAppError(t *testing.T) {
	t.Run("AppError原样返回", func(t *testing.T) {
		appErr := GetAppError(ErrBookNotFound)
		require.NotNil(t, appErr)
		assert.Equal(t, ErrCodeBookNotFound, appErr.Code)
	})

	t.Run("普通error包装为内部错误", func(t *testing.T) {
		appErr := GetAppError(errors.New("boom"))
		require.NotNil(t, appErr)
		assert.Equal(t, ErrCodeInternal, appErr.Code)
	})

	t.Run("包装后错误链仍可匹配原错误", func(t *testing.T) {
		wrapped := Wrapf(ErrBookNotFound, "查询失败")
		assert.True(t, errors.Is(wrapped, ErrBookNotFound))
	})
}

func TestPredefinedErrorsIdentity(t *testing.T) {
	// 预定义错误使用指针相等做errors.Is判断
	assert.ErrorIs(t, ErrBookNotFound, ErrBookNotFound)
	assert.NotErrorIs(t, ErrBookNotFound, ErrUserNotFound)
}
