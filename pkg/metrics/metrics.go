// Package metrics 提供基于Prometheus的指标收集
//
// 指标命名规范：
// - Counter以`_total`结尾（http_requests_total、books_created_total）
// - Histogram以单位结尾（http_request_duration_seconds）
// - 标签只使用低基数维度（method、path、status、format）
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板）、status（200/404/...）
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时(秒)",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	// BooksCreatedTotal 图书创建总数（含批量导入创建的记录）
	BooksCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "books_created_total",
			Help: "图书创建总数",
		},
	)

	// AuthorsCreatedTotal 作者隐式创建总数（find-or-create未命中时）
	AuthorsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "authors_created_total",
			Help: "作者隐式创建总数",
		},
	)

	// BulkImportsTotal 批量导入请求总数
	// 标签：format（json/csv）、result（success/failure）
	BulkImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bulk_imports_total",
			Help: "批量导入请求总数",
		},
		[]string{"format", "result"},
	)

	// BulkImportRecords 单次批量导入成功写入的记录数分布
	BulkImportRecords = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bulk_import_records",
			Help:    "单次批量导入成功写入的记录数",
			Buckets: []float64{1, 10, 50, 100, 500, 1000},
		},
	)
)

// GinMiddleware 请求指标中间件
// 使用c.FullPath()作为path标签（路由模板而非真实URL，避免高基数）
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched" // 404等未命中路由的请求
		}

		HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
		).Observe(time.Since(start).Seconds())
	}
}

// Handler 暴露/metrics端点（Prometheus抓取用）
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
