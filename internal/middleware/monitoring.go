package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jewellery_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jewellery_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	paymentVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jewellery_payment_verifications_total",
			Help: "Total number of payment verification attempts",
		},
		[]string{"outcome"},
	)

	rateRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jewellery_rate_refreshes_total",
			Help: "Total number of silver rate refresh attempts",
		},
		[]string{"status"},
	)
)

// Prometheus records request counts and latency per route.
func Prometheus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		status := strconv.Itoa(c.Response().StatusCode())

		httpRequestsTotal.WithLabelValues(c.Method(), path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Method(), path, status).Observe(time.Since(start).Seconds())
		return err
	}
}

// MetricsHandler exposes the default registry at /metrics.
func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// RecordPaymentVerification counts gate outcomes: "completed", "rejected",
// "conflict" or "error".
func RecordPaymentVerification(outcome string) {
	paymentVerifications.WithLabelValues(outcome).Inc()
}

// RecordRateRefresh counts scheduled rate fetches.
func RecordRateRefresh(ok bool) {
	status := "success"
	if !ok {
		status = "error"
	}
	rateRefreshes.WithLabelValues(status).Inc()
}

// RequestLogger writes one structured line per request.
func RequestLogger(log *zap.SugaredLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		log.Infow("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start),
			"ip", c.IP(),
		)
		return err
	}
}
