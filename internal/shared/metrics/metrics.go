package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns every collector exposed on /metrics. Each instance uses its
// own registry so tests can build as many as they like.
type Metrics struct {
	ServiceName string
	Registry    *prometheus.Registry

	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	StatusCategory   *prometheus.CounterVec
	LeavesReviewed   *prometheus.CounterVec
	BalanceChanges   *prometheus.CounterVec
	OutboxPublished  *prometheus.CounterVec
	ConsumedMessages *prometheus.CounterVec
}

func New(serviceName string) *Metrics {
	m := &Metrics{
		ServiceName: serviceName,
		Registry:    prometheus.NewRegistry(),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"service", "method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "path", "status"},
		),
		StatusCategory: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_status_category_total",
				Help: "Total number of responses by status category (2xx, 4xx, 5xx)",
			},
			[]string{"service", "category"},
		),
		LeavesReviewed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leaves_reviewed_total",
				Help: "Leave requests reviewed, by resulting status",
			},
			[]string{"status"},
		),
		BalanceChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leave_balance_changes_total",
				Help: "Ledger entries applied, by history type",
			},
			[]string{"history_type"},
		),
		OutboxPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "outbox_events_total",
				Help: "Outbox events processed, by result",
			},
			[]string{"result"},
		),
		ConsumedMessages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kafka_messages_consumed_total",
				Help: "Kafka messages consumed, by topic and result",
			},
			[]string{"topic", "result"},
		),
	}

	m.Registry.MustRegister(
		m.RequestCounter,
		m.RequestDuration,
		m.StatusCategory,
		m.LeavesReviewed,
		m.BalanceChanges,
		m.OutboxPublished,
		m.ConsumedMessages,
	)
	return m
}

// Middleware records request count, latency and status category.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		statusStr := strconv.Itoa(status)

		m.RequestCounter.WithLabelValues(m.ServiceName, c.Request.Method, path, statusStr).Inc()
		m.RequestDuration.WithLabelValues(m.ServiceName, c.Request.Method, path, statusStr).
			Observe(time.Since(start).Seconds())
		if category := statusCategory(status); category != "" {
			m.StatusCategory.WithLabelValues(m.ServiceName, category).Inc()
		}
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func statusCategory(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500 && status < 600:
		return "5xx"
	default:
		return ""
	}
}

// The Observe helpers accept a nil receiver so callers can run without
// metrics wired (tests, one-off tools).

func (m *Metrics) ObserveReview(status string) {
	if m == nil {
		return
	}
	m.LeavesReviewed.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveBalanceChange(historyType string) {
	if m == nil {
		return
	}
	m.BalanceChanges.WithLabelValues(historyType).Inc()
}

func (m *Metrics) ObserveOutbox(result string) {
	if m == nil {
		return
	}
	m.OutboxPublished.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveConsumed(topic, result string) {
	if m == nil {
		return
	}
	m.ConsumedMessages.WithLabelValues(topic, result).Inc()
}
