package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/shevko/bookcatalog/internal/application/book"
	"github.com/shevko/bookcatalog/internal/interface/http/dto"
	apperrors "github.com/shevko/bookcatalog/pkg/errors"
	"github.com/shevko/bookcatalog/pkg/response"
)

// maxImportFileSize 批量导入文件大小上限(8MB)
const maxImportFileSize = 8 << 20

// BookHandler 图书HTTP处理器
type BookHandler struct {
	createUseCase     *appbook.CreateBookUseCase
	getUseCase        *appbook.GetBookUseCase
	listUseCase       *appbook.ListBooksUseCase
	updateUseCase     *appbook.UpdateBookUseCase
	deleteUseCase     *appbook.DeleteBookUseCase
	bulkImportUseCase *appbook.BulkImportUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createUseCase *appbook.CreateBookUseCase,
	getUseCase *appbook.GetBookUseCase,
	listUseCase *appbook.ListBooksUseCase,
	updateUseCase *appbook.UpdateBookUseCase,
	deleteUseCase *appbook.DeleteBookUseCase,
	bulkImportUseCase *appbook.BulkImportUseCase,
) *BookHandler {
	return &BookHandler{
		createUseCase:     createUseCase,
		getUseCase:        getUseCase,
		listUseCase:       listUseCase,
		updateUseCase:     updateUseCase,
		deleteUseCase:     deleteUseCase,
		bulkImportUseCase: bulkImportUseCase,
	}
}

// CreateBook 创建图书
// @Summary      创建图书
// @Description  创建图书,作者按名称find-or-create
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "校验失败(体裁白名单、年份范围)"
// @Failure      401 {object} response.Response "未登录"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Title:         req.Title,
		PublishedYear: req.PublishedYear,
		Genre:         req.Genre,
		AuthorName:    req.AuthorName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  过滤(AND组合)+单字段升序排序+分页;响应为裸数组,不带总数
// @Tags         图书
// @Produce      json
// @Param        title query string false "书名子串(不区分大小写)"
// @Param        genre query string false "体裁精确匹配"
// @Param        published_year_from query int false "出版年份下界(含)"
// @Param        published_year_to query int false "出版年份上界(含)"
// @Param        sort_by query string false "title|published_year|genre"
// @Param        page query int false "页码(从1开始)"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var query dto.ListBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Title:    query.Title,
		Genre:    query.Genre,
		YearFrom: query.YearFrom,
		YearTo:   query.YearTo,
		SortBy:   query.SortBy,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateBook 部分更新图书
// @Summary      部分更新图书
// @Description  只应用提供的字段;提供author_name时重新解析作者引用
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "待更新字段"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), id, appbook.UpdateBookRequest{
		Title:         req.Title,
		PublishedYear: req.PublishedYear,
		Genre:         req.Genre,
		AuthorName:    req.AuthorName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Description  物理删除图书行,不级联作者
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"detail": "图书删除成功"})
}

// BulkImport 批量导入
// @Summary      批量导入图书
// @Description  上传JSON数组或CSV表格,逐条创建;第一条非法记录使整个请求失败(之前已写入的记录不回滚)
// @Tags         图书
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "JSON或CSV文件"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "文件类型不支持或记录校验失败"
// @Router       /books/bulk-import [post]
func (h *BookHandler) BulkImport(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "缺少上传文件: "+err.Error())
		return
	}
	if fileHeader.Size > maxImportFileSize {
		response.ErrorWithCode(c, apperrors.ErrCodeValidationError, "上传文件过大")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, apperrors.Wrap(err, "读取上传文件失败"))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.Error(c, apperrors.Wrap(err, "读取上传文件失败"))
		return
	}

	result, err := h.bulkImportUseCase.Execute(c.Request.Context(), data, fileHeader.Filename)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// parseID 解析路径参数中的图书ID
// 非数字ID按"资源不存在"处理(与原始API的404语义一致)
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, apperrors.ErrBookNotFound)
		return 0, false
	}
	return uint(id), true
}
