package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lumina_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	uploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lumina_uploads_total",
			Help: "Image uploads by bucket and outcome",
		},
		[]string{"bucket", "success"},
	)
	inquiries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lumina_inquiries_total",
			Help: "Contact form submissions by outcome",
		},
		[]string{"outcome"},
	)
	signIns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lumina_sign_ins_total",
			Help: "Admin sign-in attempts by outcome",
		},
		[]string{"success"},
	)
)

// Middleware records request duration per route template.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			httpRequestDuration.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

// RecordUpload counts one upload attempt.
func RecordUpload(bucket string, success bool) {
	uploads.WithLabelValues(bucket, strconv.FormatBool(success)).Inc()
}

// RecordInquiry counts one contact submission: "sent", "invalid" or "failed".
func RecordInquiry(outcome string) {
	inquiries.WithLabelValues(outcome).Inc()
}

// RecordSignIn counts one sign-in attempt.
func RecordSignIn(success bool) {
	signIns.WithLabelValues(strconv.FormatBool(success)).Inc()
}
