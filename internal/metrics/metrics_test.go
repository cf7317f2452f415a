package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareAndHandler(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/api/projects", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/metrics", Handler())

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/projects", nil))

	RecordUpload("avatars", true)
	RecordInquiry("sent")
	RecordSignIn(false)
	assert.Equal(t, 1.0, testutil.ToFloat64(uploads.WithLabelValues("avatars", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(signIns.WithLabelValues("false")))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `lumina_http_request_duration_seconds_count{method="GET",route="/api/projects",status="200"} 1`)
	assert.Contains(t, rec.Body.String(), "lumina_inquiries_total")
}
