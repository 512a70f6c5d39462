package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsIsolated(t *testing.T) {
	// Two instances must not collide on registration
	a := NewMetrics()
	b := NewMetrics()

	a.RecordTransition("idle", "loading")

	assert.Equal(t, 1.0, testutil.ToFloat64(a.Transitions.WithLabelValues("idle", "loading")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Transitions.WithLabelValues("idle", "loading")))
}

func TestRecordTransitionMovesStateGauge(t *testing.T) {
	m := NewMetrics()
	m.SetInitialState("idle")
	m.RecordTransition("idle", "loading")
	m.RecordTransition("loading", "started")

	assert.Equal(t, 0.0, testutil.ToFloat64(m.State.WithLabelValues("idle")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.State.WithLabelValues("loading")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.State.WithLabelValues("started")))
}

func TestRecordPreload(t *testing.T) {
	m := NewMetrics()
	m.RecordPreload("web", 20*time.Millisecond, 3, 1)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.FacesLoaded.WithLabelValues("web")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FaceFailures.WithLabelValues("web")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordTransition("idle", "loading")
		m.RecordRejected("idle", "stop")
		m.RecordPreload("none", 0, 0, 0)
		m.IncFocusPass()
		m.IncClearColorUpdate()
		m.IncMediaUpdate()
		m.RecordHTTPRequest("GET", "/", "200", 0)
	})
	assert.Nil(t, m.Registry())
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/shell", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/shell", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/shell", "200")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "shell_http_requests_total")
	assert.Contains(t, w.Body.String(), "shell_uptime_seconds")
}
