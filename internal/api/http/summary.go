package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	dto "github.com/prometheus/client_model/go"
	"go.uber.org/zap"
)

// MetricsSnapshot is a JSON digest of the Prometheus registry
type MetricsSnapshot struct {
	Timestamp time.Time      `json:"timestamp"`
	State     string         `json:"state"`
	Summary   MetricsSummary `json:"summary"`
}

// MetricsSummary provides high-level shell metrics
type MetricsSummary struct {
	Transitions       float64 `json:"transitions"`
	RejectedTriggers  float64 `json:"rejected_triggers"`
	Preloads          uint64  `json:"preloads"`
	FacesLoaded       float64 `json:"faces_loaded"`
	FaceFailures      float64 `json:"face_failures"`
	FocusPasses       float64 `json:"focus_passes"`
	ClearColorUpdates float64 `json:"clear_color_updates"`
	MediaUpdates      float64 `json:"media_updates"`
	Requests          float64 `json:"requests"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
}

// MetricsSummary returns the digest of the shell's metrics
func (h *Handlers) MetricsSummary(c *gin.Context) {
	snapshot := MetricsSnapshot{
		Timestamp: time.Now(),
		State:     h.shell.State().String(),
	}

	if reg := h.metrics.Registry(); reg != nil {
		families, err := reg.Gather()
		if err != nil {
			h.logger.Warn("Failed to gather metrics", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to gather metrics"})
			return
		}
		snapshot.Summary = summarize(families)
	}

	c.JSON(http.StatusOK, snapshot)
}

func summarize(families []*dto.MetricFamily) MetricsSummary {
	var s MetricsSummary
	for _, mf := range families {
		switch mf.GetName() {
		case "shell_transitions_total":
			s.Transitions = sumCounters(mf)
		case "shell_rejected_triggers_total":
			s.RejectedTriggers = sumCounters(mf)
		case "shell_font_preload_duration_seconds":
			for _, m := range mf.GetMetric() {
				s.Preloads += m.GetHistogram().GetSampleCount()
			}
		case "shell_font_faces_loaded_total":
			s.FacesLoaded = sumCounters(mf)
		case "shell_font_failures_total":
			s.FaceFailures = sumCounters(mf)
		case "shell_focus_passes_total":
			s.FocusPasses = sumCounters(mf)
		case "shell_clear_color_updates_total":
			s.ClearColorUpdates = sumCounters(mf)
		case "shell_media_settings_updates_total":
			s.MediaUpdates = sumCounters(mf)
		case "shell_http_requests_total":
			s.Requests = sumCounters(mf)
		case "shell_uptime_seconds":
			for _, m := range mf.GetMetric() {
				s.UptimeSeconds = m.GetGauge().GetValue()
			}
		}
	}
	return s
}

func sumCounters(mf *dto.MetricFamily) float64 {
	var total float64
	for _, m := range mf.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	return total
}
