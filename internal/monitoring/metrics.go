package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 监控指标
type Metrics struct {
	// HTTP 请求指标
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// 联系消息指标
	ContactsSubmitted   prometheus.Counter
	NotificationsFailed prometheus.Counter

	// 文档指标
	DocumentsUploaded *prometheus.CounterVec
	DocumentsDeleted  prometheus.Counter

	// 认证指标
	LoginAttempts *prometheus.CounterVec

	// 限流指标
	RateLimitBlocks prometheus.Counter
}

// NewMetrics 创建监控指标
func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ewebb_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ewebb_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		ContactsSubmitted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "ewebb_contacts_submitted_total",
				Help: "Total number of contact messages submitted",
			},
		),

		NotificationsFailed: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "ewebb_contact_notifications_failed_total",
				Help: "Total number of contact notification emails that failed to send",
			},
		),

		DocumentsUploaded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ewebb_documents_uploaded_total",
				Help: "Total number of documents uploaded",
			},
			[]string{"category"},
		),

		DocumentsDeleted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "ewebb_documents_deleted_total",
				Help: "Total number of documents deleted",
			},
		),

		LoginAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ewebb_login_attempts_total",
				Help: "Total number of admin login attempts",
			},
			[]string{"result"},
		),

		RateLimitBlocks: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "ewebb_rate_limit_blocks_total",
				Help: "Total number of requests blocked by rate limiting",
			},
		),
	}
}

// RecordHTTPRequest 记录 HTTP 请求指标
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordContactSubmitted 记录联系消息提交
func (m *Metrics) RecordContactSubmitted() {
	m.ContactsSubmitted.Inc()
}

// RecordNotificationFailed 记录通知邮件发送失败
func (m *Metrics) RecordNotificationFailed() {
	m.NotificationsFailed.Inc()
}

// RecordDocumentUploaded 记录文档上传
func (m *Metrics) RecordDocumentUploaded(category string) {
	m.DocumentsUploaded.WithLabelValues(category).Inc()
}

// RecordDocumentDeleted 记录文档删除
func (m *Metrics) RecordDocumentDeleted() {
	m.DocumentsDeleted.Inc()
}

// RecordLoginAttempt 记录登录尝试
func (m *Metrics) RecordLoginAttempt(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	m.LoginAttempts.WithLabelValues(result).Inc()
}

// RecordRateLimitBlock 记录限流阻止
func (m *Metrics) RecordRateLimitBlock() {
	m.RateLimitBlocks.Inc()
}

// Middleware 记录每个请求的 HTTP 指标
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		m.RecordHTTPRequest(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}

// HTTPHandler 返回 Prometheus HTTP 处理器
func (m *Metrics) HTTPHandler() http.Handler {
	return promhttp.Handler()
}
