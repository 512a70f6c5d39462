package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/GriffinCanCode/appshell/internal/infrastructure/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UILogEntry is a log entry sent by the hosted application
type UILogEntry struct {
	ID        string         `json:"id"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context"`
	Timestamp string         `json:"timestamp"`
}

// UILogStreamRequest is a batch of hosted application logs
type UILogStreamRequest struct {
	Entries []UILogEntry `json:"entries"`
}

// StreamLogs writes hosted application logs into the host log, tagged with
// the current application.
func (h *Handlers) StreamLogs(c *gin.Context) {
	var req UILogStreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log request format"})
		return
	}
	if len(req.Entries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no log entries provided"})
		return
	}

	app, appID := "", ""
	if d, ok := h.shell.Descriptor(); ok {
		app, appID = d.Type.Name(), d.ID.String()
	}

	logger := h.logger.Named("ui").With(zap.String("app", app), zap.String("app_id", appID))
	for _, entry := range req.Entries {
		fields := make([]zap.Field, 0, len(entry.Context)+2)
		fields = append(fields,
			zap.String("ui_log_id", entry.ID),
			zap.String("ui_timestamp", entry.Timestamp),
		)
		for key, value := range entry.Context {
			fields = append(fields, zap.Any(key, value))
		}

		switch entry.Level {
		case "error":
			logger.Error(entry.Message, fields...)
		case "warn":
			logger.Warn(entry.Message, fields...)
		case "debug", "verbose":
			logger.Debug(entry.Message, fields...)
		default:
			logger.Info(entry.Message, fields...)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"entries_received": len(req.Entries),
		"timestamp":        time.Now().Unix(),
	})
}

// LogLevelRequest changes the host log level
type LogLevelRequest struct {
	Level string `json:"level" binding:"required"`
}

// LogLevel reports the host log level
func (h *Handlers) LogLevel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"level": h.logger.Level().String()})
}

// SetLogLevel changes the host log level while the shell runs
func (h *Handlers) SetLogLevel(c *gin.Context) {
	var req LogLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "level is required"})
		return
	}

	if err := h.logger.SetLevel(req.Level); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, logging.ErrFixedLevel) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	h.logger.Info("Log level changed", zap.String("level", req.Level), zap.String("client", c.ClientIP()))
	c.JSON(http.StatusOK, gin.H{"level": h.logger.Level().String()})
}
