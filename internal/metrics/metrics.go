package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Requests       *prometheus.CounterVec
	RequestLatency *prometheus.HistogramVec
	PostsGenerated prometheus.Counter
}

func InitMetrics() *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path and status",
			},
			[]string{"method", "path", "status"},
		),
		RequestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request latency by method and path",
			},
			[]string{"method", "path"},
		),
		PostsGenerated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "posts_generated_total",
				Help: "Total number of generation requests that returned text",
			},
		),
	}

	prometheus.MustRegister(m.Requests)
	prometheus.MustRegister(m.RequestLatency)
	prometheus.MustRegister(m.PostsGenerated)

	return m
}

// Middleware records a counter and latency sample for every request.
func (m *Metrics) Middleware(ctx *gin.Context) {
	start := time.Now()
	ctx.Next()

	path := ctx.FullPath()
	if path == "" {
		path = "unknown"
	}
	m.Requests.WithLabelValues(ctx.Request.Method, path, strconv.Itoa(ctx.Writer.Status())).Inc()
	m.RequestLatency.WithLabelValues(ctx.Request.Method, path).Observe(time.Since(start).Seconds())
}

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
