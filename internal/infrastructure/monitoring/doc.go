/*
Package monitoring provides Prometheus metrics for the shell host.

# Overview

Each Metrics value owns its own registry so that several shells (and tests)
can live in one process. The registry is exposed through Handler.

# Metrics

- Lifecycle transitions and rejected triggers
- Current lifecycle state
- Font preload duration, loaded faces and failures per capability
- Focus passes, clear color updates and media settings updates
- Control API requests

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

A nil *Metrics is valid and records nothing.
*/
package monitoring
