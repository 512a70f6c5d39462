// Package config provides 12-factor configuration for the shell host.
//
// Configuration is loaded from environment variables with defaults suitable
// for a development workstation. CLI flags in cmd/shell override the result.
//
// Configuration Sections:
//   - Server: Control API listen address
//   - Shell: Capability, static asset base path and shell options
//   - Fonts: Preload concurrency, timeouts and fetch rate
//   - Media: Media player texture options
//   - Catalog: Hosted application manifest discovery
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting of the control API
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	capability, err := cfg.Shell.ResolveCapability()
package config
