package book

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shevko/bookcatalog/internal/domain/book"
	apperrors "github.com/shevko/bookcatalog/pkg/errors"
	"github.com/shevko/bookcatalog/pkg/metrics"
)

// BulkImportUseCase 批量导入用例
// 设计说明:
//  1. 按文件名后缀分发:.json解析为记录数组,.csv按表头驱动解析
//  2. 记录按输入顺序逐条走与单条创建相同的路径(解析作者+插入图书),
//     每条记录一次写入,无批量流水线
//  3. 单条记录的反序列化/类型转换在创建循环内进行:类型错误的记录
//     与校验失败的记录一样,在轮到它时才中止请求
//
// 已知限制(有意保留):
// 各条记录的写入不在同一事务中,失败前已创建的记录不会回滚——
// "导入失败"意味着"可能已部分写入",调用方应重新查询核对,
// 不能假设全有或全无
type BulkImportUseCase struct {
	bookService book.Service
}

// NewBulkImportUseCase 创建批量导入用例
func NewBulkImportUseCase(bookService book.Service) *BulkImportUseCase {
	return &BulkImportUseCase{bookService: bookService}
}

// importRecord 导入文件中的单条记录
type importRecord struct {
	Title         string `json:"title"`
	PublishedYear int    `json:"published_year"`
	Genre         string `json:"genre"`
	AuthorName    string `json:"author_name"`
}

// recordDecoder 按下标解码第i条记录(0-based)
type recordDecoder func(i int) (importRecord, error)

// BulkImportResult 批量导入结果
type BulkImportResult struct {
	Imported int             `json:"imported"`
	Books    []*BookResponse `json:"books"`
}

// Execute 执行批量导入
func (uc *BulkImportUseCase) Execute(ctx context.Context, data []byte, filename string) (*BulkImportResult, error) {
	var (
		format string
		count  int
		decode recordDecoder
		err    error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		format = "json"
		count, decode, err = jsonRecords(data)
	case ".csv":
		format = "csv"
		count, decode, err = csvRecords(data)
	default:
		return nil, apperrors.ErrUnsupportedFile
	}

	if err != nil {
		metrics.BulkImportsTotal.WithLabelValues(format, "failure").Inc()
		return nil, err
	}

	// 逐条解码+创建:与单条创建完全相同的校验与写入路径
	// 解码失败与校验失败同样在各自的记录处中止,之前已写入的保持提交
	created := make([]*BookResponse, 0, count)
	for i := 0; i < count; i++ {
		rec, err := decode(i)
		if err != nil {
			metrics.BulkImportsTotal.WithLabelValues(format, "failure").Inc()
			return nil, err
		}

		b, err := uc.bookService.CreateBook(ctx, rec.Title, rec.PublishedYear, rec.Genre, rec.AuthorName)
		if err != nil {
			metrics.BulkImportsTotal.WithLabelValues(format, "failure").Inc()
			appErr := apperrors.GetAppError(err)
			return nil, apperrors.Newf(appErr.Code, "第%d条记录导入失败: %s", i+1, appErr.Message)
		}
		metrics.BooksCreatedTotal.Inc()
		created = append(created, toBookResponse(b))
	}

	metrics.BulkImportsTotal.WithLabelValues(format, "success").Inc()
	metrics.BulkImportRecords.Observe(float64(len(created)))

	return &BulkImportResult{
		Imported: len(created),
		Books:    created,
	}, nil
}

// jsonRecords 解析JSON数组
// 这里只校验顶层结构(必须是数组);单条记录的反序列化推迟到创建循环,
// 字段类型错误的记录不影响排在它之前的记录
func jsonRecords(data []byte) (int, recordDecoder, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, nil, apperrors.New(apperrors.ErrCodeValidationError, "JSON必须是记录数组")
	}

	decode := func(i int) (importRecord, error) {
		var rec importRecord
		if err := json.Unmarshal(raw[i], &rec); err != nil {
			return importRecord{}, apperrors.Newf(apperrors.ErrCodeValidationError, "第%d条记录格式错误: %v", i+1, err)
		}
		return rec, nil
	}
	return len(raw), decode, nil
}

// csvRecords 解析CSV表格
// 第一行为表头,按列名(title, published_year, genre, author_name)取值;
// published_year的整数转换在创建循环内进行
func csvRecords(data []byte) (int, recordDecoder, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	// 列数不一致的行不在这里报错:缺列按空值处理,由逐条校验拒绝
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return 0, nil, apperrors.Newf(apperrors.ErrCodeValidationError, "CSV解析失败: %v", err)
	}
	if len(rows) == 0 {
		return 0, nil, apperrors.New(apperrors.ErrCodeValidationError, "CSV文件为空")
	}

	// 表头 → 列下标
	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.TrimSpace(name)] = i
	}

	cell := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	body := rows[1:]
	decode := func(i int) (importRecord, error) {
		row := body[i]

		yearStr := cell(row, "published_year")
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return importRecord{}, apperrors.Newf(apperrors.ErrCodeValidationError,
				"第%d行published_year不是整数: %q", i+1, yearStr)
		}

		return importRecord{
			Title:         cell(row, "title"),
			PublishedYear: year,
			Genre:         cell(row, "genre"),
			AuthorName:    cell(row, "author_name"),
		}, nil
	}
	return len(body), decode, nil
}
