package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all shell Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// Lifecycle metrics
	Transitions *prometheus.CounterVec
	Rejected    *prometheus.CounterVec
	State       *prometheus.GaugeVec

	// Font metrics
	PreloadDuration *prometheus.HistogramVec
	FacesLoaded     *prometheus.CounterVec
	FaceFailures    *prometheus.CounterVec

	// Focus metrics
	FocusPasses       prometheus.Counter
	ClearColorUpdates prometheus.Counter
	MediaUpdates      prometheus.Counter

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	startTime time.Time
}

// NewMetrics creates a metrics collector on a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		Transitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shell_transitions_total",
				Help: "Accepted lifecycle transitions",
			},
			[]string{"from", "to"},
		),
		Rejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shell_rejected_triggers_total",
				Help: "Lifecycle triggers ignored because the state did not allow them",
			},
			[]string{"state", "trigger"},
		),
		State: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "shell_state",
				Help: "1 for the current lifecycle state, 0 otherwise",
			},
			[]string{"state"},
		),

		PreloadDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shell_font_preload_duration_seconds",
				Help:    "Time from preload start until all font loads settled",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"capability"},
		),
		FacesLoaded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shell_font_faces_loaded_total",
				Help: "Font faces available after preloading",
			},
			[]string{"capability"},
		),
		FaceFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shell_font_failures_total",
				Help: "Font load failures swallowed by the preloader",
			},
			[]string{"capability"},
		),

		FocusPasses: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "shell_focus_passes_total",
				Help: "Focus passes handled by the shell",
			},
		),
		ClearColorUpdates: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "shell_clear_color_updates_total",
				Help: "Clear color changes pushed to the render surface",
			},
		),
		MediaUpdates: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "shell_media_settings_updates_total",
				Help: "Media settings forwarded to an attached media player",
			},
		),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shell_http_requests_total",
				Help: "Total number of control API requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shell_http_request_duration_seconds",
				Help:    "Control API request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "path"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "shell_uptime_seconds",
			Help: "Shell host uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordTransition records an accepted lifecycle transition
func (m *Metrics) RecordTransition(from, to string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(from, to).Inc()
	m.State.WithLabelValues(from).Set(0)
	m.State.WithLabelValues(to).Set(1)
}

// SetInitialState marks the state the shell was constructed in
func (m *Metrics) SetInitialState(state string) {
	if m == nil {
		return
	}
	m.State.WithLabelValues(state).Set(1)
}

// RecordRejected records a trigger that was a guarded no-op
func (m *Metrics) RecordRejected(state, trigger string) {
	if m == nil {
		return
	}
	m.Rejected.WithLabelValues(state, trigger).Inc()
}

// RecordPreload records one settled font preload
func (m *Metrics) RecordPreload(capability string, duration time.Duration, loaded, failed int) {
	if m == nil {
		return
	}
	m.PreloadDuration.WithLabelValues(capability).Observe(duration.Seconds())
	m.FacesLoaded.WithLabelValues(capability).Add(float64(loaded))
	m.FaceFailures.WithLabelValues(capability).Add(float64(failed))
}

// IncFocusPass increments the focus pass counter
func (m *Metrics) IncFocusPass() {
	if m == nil {
		return
	}
	m.FocusPasses.Inc()
}

// IncClearColorUpdate increments the clear color update counter
func (m *Metrics) IncClearColorUpdate() {
	if m == nil {
		return
	}
	m.ClearColorUpdates.Inc()
}

// IncMediaUpdate increments the media settings update counter
func (m *Metrics) IncMediaUpdate() {
	if m == nil {
		return
	}
	m.MediaUpdates.Inc()
}

// RecordHTTPRequest records a control API request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
