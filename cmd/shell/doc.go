// Package main is the entry point for the application shell host.
//
// The host runs one shell: it hosts a single application at a time,
// preloads its fonts for the configured platform capability and binds
// the matching media player. A control API drives it.
//
//	POST /shell/start {"app": "guide"}  → Idle → Loading → Started
//	POST /shell/stop                    → Idle
//	GET  /stream                        → transition events (WebSocket)
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Web capability, manifests from ./apps
//	./shell -port 8000 -capability web -apps ./apps
//
//	# Development mode (colored logs)
//	./shell -dev -log-level debug
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
