package book

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateNew(t *testing.T) {
	currentYear := time.Now().Year()

	t.Run("合法字段通过校验", func(t *testing.T) {
		err := ValidateNew("Кобзар", 1840, "Fiction", "Тарас Шевченко")
		assert.NoError(t, err)
	})

	t.Run("书名为空", func(t *testing.T) {
		err := ValidateNew("   ", 1840, "Fiction", "作者")
		assert.ErrorIs(t, err, ErrTitleRequired)
	})

	t.Run("作者名为空", func(t *testing.T) {
		err := ValidateNew("书名", 1840, "Fiction", "")
		assert.ErrorIs(t, err, ErrAuthorNameRequired)
	})

	t.Run("体裁为空", func(t *testing.T) {
		err := ValidateNew("书名", 1840, "  ", "作者")
		assert.ErrorIs(t, err, ErrGenreRequired)
	})

	t.Run("体裁不在白名单", func(t *testing.T) {
		err := ValidateNew("书名", 1840, "Poetry", "作者")
		assert.ErrorIs(t, err, ErrGenreNotAllowed)
	})

	t.Run("体裁区分大小写", func(t *testing.T) {
		err := ValidateNew("书名", 1840, "fiction", "作者")
		assert.ErrorIs(t, err, ErrGenreNotAllowed)
	})

	t.Run("年份早于1800", func(t *testing.T) {
		err := ValidateNew("书名", 1799, "Fiction", "作者")
		assert.ErrorIs(t, err, ErrYearOutOfRange)
	})

	t.Run("年份边界值合法", func(t *testing.T) {
		assert.NoError(t, ValidateNew("书名", 1800, "Fiction", "作者"))
		assert.NoError(t, ValidateNew("书名", currentYear, "Fiction", "作者"))
	})

	t.Run("年份晚于当前年份", func(t *testing.T) {
		err := ValidateNew("书名", currentYear+1, "Fiction", "作者")
		assert.ErrorIs(t, err, ErrYearOutOfRange)
	})
}

func TestUpdateParamsValidate(t *testing.T) {
	t.Run("全零值表示不修改,直接通过", func(t *testing.T) {
		assert.NoError(t, UpdateParams{}.Validate())
	})

	t.Run("只校验提供的字段", func(t *testing.T) {
		assert.NoError(t, UpdateParams{Title: "新书名"}.Validate())
		assert.Error(t, UpdateParams{Genre: "Poetry"}.Validate())
		assert.Error(t, UpdateParams{PublishedYear: 1700}.Validate())
	})
}

func TestBookApply(t *testing.T) {
	b := &Book{
		Title:         "原书名",
		PublishedYear: 1840,
		Genre:         "Fiction",
	}

	b.Apply(UpdateParams{Genre: "History"})

	assert.Equal(t, "原书名", b.Title, "未提供的字段不应被修改")
	assert.Equal(t, 1840, b.PublishedYear, "未提供的字段不应被修改")
	assert.Equal(t, "History", b.Genre)
}

func TestIsGenreAllowed(t *testing.T) {
	for _, g := range AllowedGenres {
		assert.True(t, IsGenreAllowed(g), g)
	}
	assert.False(t, IsGenreAllowed("Romance"))
	assert.False(t, IsGenreAllowed(""))
}
