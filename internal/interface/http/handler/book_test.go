package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/shevko/bookcatalog/pkg/errors"
)

// bookData 测试侧的图书响应结构
type bookData struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	PublishedYear int    `json:"published_year"`
	Genre         string `json:"genre"`
	Author        struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	} `json:"author"`
}

func TestCreateBookHTTP(t *testing.T) {
	r := newTestRouter(t)
	token := signupAndLogin(t, r, "creator")

	t.Run("正常创建", func(t *testing.T) {
		status, envelope := doJSON(t, r, http.MethodPost, "/books/", token, map[string]interface{}{
			"title":          "Кобзар",
			"published_year": 1840,
			"genre":          "Fiction",
			"author_name":    "Тарас Шевченко",
		})

		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, 0, envelope.Code)

		var data bookData
		require.NoError(t, json.Unmarshal(envelope.Data, &data))
		assert.NotZero(t, data.ID)
		assert.Equal(t, "Кобзар", data.Title)
		assert.Equal(t, "Тарас Шевченко", data.Author.Name, "响应应携带嵌套作者对象")
		assert.NotZero(t, data.Author.ID)
	})

	t.Run("未登录返回401", func(t *testing.T) {
		status, envelope := doJSON(t, r, http.MethodPost, "/books/", "", map[string]interface{}{
			"title":          "书名",
			"published_year": 1900,
			"genre":          "Fiction",
			"author_name":    "作者",
		})

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, apperrors.ErrCodeUnauthorized, envelope.Code)
	})

	t.Run("体裁不在白名单返回400", func(t *testing.T) {
		status, envelope := doJSON(t, r, http.MethodPost, "/books/", token, map[string]interface{}{
			"title":          "书名",
			"published_year": 1900,
			"genre":          "Poetry",
			"author_name":    "作者",
		})

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, apperrors.ErrCodeValidationError, envelope.Code)
	})

	t.Run("年份越界返回400", func(t *testing.T) {
		status, _ := doJSON(t, r, http.MethodPost, "/books/", token, map[string]interface{}{
			"title":          "书名",
			"published_year": 1750,
			"genre":          "Fiction",
			"author_name":    "作者",
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("缺少必填字段返回400", func(t *testing.T) {
		status, envelope := doJSON(t, r, http.MethodPost, "/books/", token, map[string]interface{}{
			"title": "只有书名",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, apperrors.ErrCodeBindError, envelope.Code)
	})
}

func TestGetBookHTTP(t *testing.T) {
	r := newTestRouter(t)
	token := signupAndLogin(t, r, "reader")
	id := createBook(t, r, token, "Гайдамаки", 1841, "History", "Тарас Шевченко")

	t.Run("详情公开可访问", func(t *testing.T) {
		status, envelope := doJSON(t, r, http.MethodGet, fmt.Sprintf("/books/%d", id), "", nil)
		require.Equal(t, http.StatusOK, status)

		var data bookData
		require.NoError(t, json.Unmarshal(envelope.Data, &data))
		assert.Equal(t, "Гайдамаки", data.Title)
		assert.Equal(t, 1841, data.PublishedYear)
	})

	t.Run("不存在的ID返回404", func(t *testing.T) {
		status, envelope := doJSON(t, r, http.MethodGet, "/books/99999", "", nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, apperrors.ErrCodeBookNotFound, envelope.Code)
	})

	t.Run("非数字ID按404处理", func(t *testing.T) {
		status, _ := doJSON(t, r, http.MethodGet, "/books/abc", "", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestListBooksHTTP(t *testing.T) {
	r := newTestRouter(t)
	token := signupAndLogin(t, r, "lister")

	createBook(t, r, token, "Go in Action", 2015, "Science", "William Kennedy")
	createBook(t, r, token, "The Go Programming Language", 2015, "Science", "Alan Donovan")
	createBook(t, r, token, "SPQR", 2015, "History", "Mary Beard")

	listBooks := func(t *testing.T, query string) []bookData {
		t.Helper()
		status, envelope := doJSON(t, r, http.MethodGet, "/books/"+query, "", nil)
		require.Equal(t, http.StatusOK, status)

		var books []bookData
		require.NoError(t, json.Unmarshal(envelope.Data, &books), "列表应为裸数组")
		return books
	}

	t.Run("无条件列表", func(t *testing.T) {
		assert.Len(t, listBooks(t, ""), 3)
	})

	t.Run("书名过滤", func(t *testing.T) {
		books := listBooks(t, "?title=go")
		assert.Len(t, books, 2)
	})

	t.Run("体裁过滤与排序", func(t *testing.T) {
		books := listBooks(t, "?genre=Science&sort_by=title")
		require.Len(t, books, 2)
		assert.Equal(t, "Go in Action", books[0].Title)
	})

	t.Run("分页", func(t *testing.T) {
		books := listBooks(t, "?sort_by=title&page=2&page_size=2")
		require.Len(t, books, 1)
		assert.Equal(t, "The Go Programming Language", books[0].Title)
	})

	t.Run("年份范围过滤", func(t *testing.T) {
		assert.Empty(t, listBooks(t, "?published_year_from=2016"))
		assert.Len(t, listBooks(t, "?published_year_to=2015"), 3)
	})
}

func TestUpdateBookHTTP(t *testing.T) {
	r := newTestRouter(t)
	token := signupAndLogin(t, r, "updater")
	id := createBook(t, r, token, "原书名", 1900, "Fiction", "原作者")

	t.Run("部分更新只改提供的字段", func(t *testing.T) {
		status, envelope := doJSON(t, r, http.MethodPut, fmt.Sprintf("/books/%d", id), token, map[string]interface{}{
			"genre": "History",
		})
		require.Equal(t, http.StatusOK, status)

		var data bookData
		require.NoError(t, json.Unmarshal(envelope.Data, &data))
		assert.Equal(t, "原书名", data.Title, "未提供的字段保持不变")
		assert.Equal(t, 1900, data.PublishedYear)
		assert.Equal(t, "History", data.Genre)
	})

	t.Run("更新作者名改引用", func(t *testing.T) {
		status, envelope := doJSON(t, r, http.MethodPut, fmt.Sprintf("/books/%d", id), token, map[string]interface{}{
			"author_name": "新作者",
		})
		require.Equal(t, http.StatusOK, status)

		var data bookData
		require.NoError(t, json.Unmarshal(envelope.Data, &data))
		assert.Equal(t, "新作者", data.Author.Name)
	})

	t.Run("未登录返回401", func(t *testing.T) {
		status, _ := doJSON(t, r, http.MethodPut, fmt.Sprintf("/books/%d", id), "", map[string]interface{}{
			"title": "新书名",
		})
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("不存在的图书返回404", func(t *testing.T) {
		status, _ := doJSON(t, r, http.MethodPut, "/books/99999", token, map[string]interface{}{
			"title": "新书名",
		})
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestDeleteBookHTTP(t *testing.T) {
	r := newTestRouter(t)
	token := signupAndLogin(t, r, "deleter")
	id := createBook(t, r, token, "待删除", 1900, "Fiction", "某作者")

	t.Run("未登录返回401", func(t *testing.T) {
		status, _ := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/books/%d", id), "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("删除后详情返回404", func(t *testing.T) {
		status, _ := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/books/%d", id), token, nil)
		require.Equal(t, http.StatusOK, status)

		status, _ = doJSON(t, r, http.MethodGet, fmt.Sprintf("/books/%d", id), "", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("重复删除返回404", func(t *testing.T) {
		status, _ := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/books/%d", id), token, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestBulkImportHTTP(t *testing.T) {
	r := newTestRouter(t)
	token := signupAndLogin(t, r, "importer")

	t.Run("JSON文件导入", func(t *testing.T) {
		content := []byte(`[
			{"title": "Кобзар", "published_year": 1840, "genre": "Fiction", "author_name": "Тарас Шевченко"},
			{"title": "Гайдамаки", "published_year": 1841, "genre": "History", "author_name": "Тарас Шевченко"}
		]`)

		status, envelope := doUpload(t, r, token, "books.json", content)
		require.Equal(t, http.StatusOK, status, envelope.Message)

		var result struct {
			Imported int        `json:"imported"`
			Books    []bookData `json:"books"`
		}
		require.NoError(t, json.Unmarshal(envelope.Data, &result))
		assert.Equal(t, 2, result.Imported)
		require.Len(t, result.Books, 2)
		assert.Equal(t, result.Books[0].Author.ID, result.Books[1].Author.ID, "同名作者应复用")
	})

	t.Run("CSV文件导入", func(t *testing.T) {
		content := []byte("title,published_year,genre,author_name\n" +
			"SPQR,2015,History,Mary Beard\n")

		status, envelope := doUpload(t, r, token, "books.csv", content)
		require.Equal(t, http.StatusOK, status, envelope.Message)
	})

	t.Run("不支持的文件类型返回400", func(t *testing.T) {
		status, envelope := doUpload(t, r, token, "books.xlsx", []byte("whatever"))
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, apperrors.ErrCodeUnsupportedFile, envelope.Code)
	})

	t.Run("非法记录返回400", func(t *testing.T) {
		content := []byte(`[{"title": "书名", "published_year": 1750, "genre": "Fiction", "author_name": "作者"}]`)

		status, _ := doUpload(t, r, token, "bad.json", content)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("未登录返回401", func(t *testing.T) {
		status, _ := doUpload(t, r, "", "books.json", []byte("[]"))
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}
