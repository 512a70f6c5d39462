package middleware

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/appshell/internal/infrastructure/tracing"
)

// Reads are GET, shell actions (start, stop, back, focus, activate) are POST.
var controlMethods = []string{http.MethodGet, http.MethodPost}

// CORSConfig selects the browser origins allowed to drive the shell.
type CORSConfig struct {
	// Origins lists allowed origins. "*" admits any origin. A single "*"
	// inside an origin matches a range, e.g. "http://192.168.1.*".
	Origins []string
	MaxAge  time.Duration
}

// DefaultCORSConfig admits any origin, so remotes and dashboards on the
// local network can reach the control API without configuration.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		Origins: []string{"*"},
		MaxAge:  10 * time.Minute,
	}
}

func (c CORSConfig) anyOrigin() bool {
	return len(c.Origins) == 0 || slices.Contains(c.Origins, "*")
}

func (c CORSConfig) options() cors.Config {
	opts := cors.Config{
		AllowMethods:        controlMethods,
		AllowHeaders:        []string{"Origin", "Content-Type", "Accept", tracing.TraceHeader, tracing.SpanHeader},
		ExposeHeaders:       []string{tracing.TraceHeader, tracing.SpanHeader},
		AllowPrivateNetwork: true,
		AllowWildcard:       true,
		AllowWebSockets:     true,
		MaxAge:              c.MaxAge,
	}
	if c.anyOrigin() {
		opts.AllowAllOrigins = true
	} else {
		opts.AllowOrigins = c.Origins
	}
	return opts
}

// Validate reports an origin list CORS would refuse.
func (c CORSConfig) Validate() error {
	if c.anyOrigin() {
		return nil
	}
	for _, o := range c.Origins {
		if strings.Count(o, "*") > 1 {
			return fmt.Errorf("cors origin %q: only one wildcard is allowed", o)
		}
	}
	if err := c.options().Validate(); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	return nil
}

// CORS admits cross-origin control requests and exposes the trace headers so
// a remote client can correlate its calls with shell spans. It panics on a
// config that fails Validate.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	return cors.New(cfg.options())
}
