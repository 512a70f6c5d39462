package http

import (
	"net/http"
	"time"

	"github.com/GriffinCanCode/appshell/internal/domain/catalog"
	"github.com/GriffinCanCode/appshell/internal/domain/shell"
	"github.com/GriffinCanCode/appshell/internal/infrastructure/fetch"
	"github.com/GriffinCanCode/appshell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/appshell/internal/infrastructure/monitoring"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Version is reported by the root endpoint
const Version = "1.0.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	shell     *shell.Shell
	catalog   *catalog.Catalog
	fetcher   *fetch.Client
	metrics   *monitoring.Metrics
	logger    *logging.Logger
	startTime time.Time
}

// NewHandlers creates a new handler set. fetcher and metrics may be nil.
func NewHandlers(
	sh *shell.Shell,
	cat *catalog.Catalog,
	fetcher *fetch.Client,
	metrics *monitoring.Metrics,
	logger *logging.Logger,
) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		shell:     sh,
		catalog:   cat,
		fetcher:   fetcher,
		metrics:   metrics,
		logger:    logger.Component("api"),
		startTime: time.Now(),
	}
}

// Register mounts every route on r
func (h *Handlers) Register(r gin.IRoutes) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	r.GET("/shell", h.GetShell)
	r.POST("/shell/start", h.Start)
	r.POST("/shell/stop", h.Stop)
	r.POST("/shell/focus", h.FocusPass)
	r.POST("/shell/back", h.Back)
	r.POST("/shell/activate", h.Activate)
	r.POST("/shell/deactivate", h.Deactivate)

	r.GET("/apps", h.ListApps)
	r.GET("/fonts", h.ListFonts)

	r.POST("/logs", h.StreamLogs)
	r.GET("/logs/level", h.LogLevel)
	r.POST("/logs/level", h.SetLogLevel)
	r.GET("/metrics/json", h.MetricsSummary)
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "appshell",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"state":      h.shell.State(),
		"capability": h.shell.Capability(),
		"apps":       h.catalog.Len(),
		"uptime":     time.Since(h.startTime).Round(time.Second).String(),
	})
}

// GetShell returns the shell state and hosted application
func (h *Handlers) GetShell(c *gin.Context) {
	c.JSON(http.StatusOK, shellView(h.shell))
}

// StartRequest selects the application to host
type StartRequest struct {
	App string `json:"app" binding:"required"`
}

// Start hosts an application from the catalog
func (h *Handlers) Start(c *gin.Context) {
	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "app is required"})
		return
	}

	app, ok := h.catalog.Get(req.App)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown app", "app": req.App})
		return
	}

	if !h.shell.Start(c.Request.Context(), app) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "shell is not idle",
			"state": h.shell.State(),
		})
		return
	}

	h.logger.Info("Start requested", zap.String("app", req.App), zap.String("client", c.ClientIP()))
	c.JSON(http.StatusAccepted, shellView(h.shell))
}

// Stop unhosts the current application
func (h *Handlers) Stop(c *gin.Context) {
	if !h.shell.Stop() {
		c.JSON(http.StatusConflict, gin.H{
			"error": "shell is idle",
			"state": h.shell.State(),
		})
		return
	}
	c.JSON(http.StatusOK, shellView(h.shell))
}

// FocusPass runs one focus pass and returns the applied settings
func (h *Handlers) FocusPass(c *gin.Context) {
	c.JSON(http.StatusOK, focusView(h.shell.FocusPass()))
}

// Back delivers an unhandled back key to the shell
func (h *Handlers) Back(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"handled": h.shell.HandleBack()})
}

// Activate attaches the media player
func (h *Handlers) Activate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"changed": h.shell.Activate(), "active": h.shell.Active()})
}

// Deactivate detaches the media player
func (h *Handlers) Deactivate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"changed": h.shell.Deactivate(), "active": h.shell.Active()})
}

// ListApps lists the application catalog
func (h *Handlers) ListApps(c *gin.Context) {
	apps := h.catalog.List()
	c.JSON(http.StatusOK, gin.H{
		"apps":  apps,
		"count": len(apps),
	})
}

// ListFonts lists the runtime font set and the fetch breaker per origin
func (h *Handlers) ListFonts(c *gin.Context) {
	registry := h.shell.Preloader().Registry()

	breakers := gin.H{}
	if h.fetcher != nil {
		for origin, state := range h.fetcher.BreakerStates() {
			breakers[origin] = state.String()
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"faces":    registry.Snapshot(),
		"families": registry.Families(),
		"count":    registry.Len(),
		"breakers": breakers,
	})
}
