// Package logging provides structured logging for the shell using uber/zap.
//
// Two modes are supported:
//   - Production: sampled JSON on stdout, each line stamped with the service
//   - Development: Colored console output for a workstation
//
// Components receive a named child logger (shell, fonts, media, focus, api)
// so every line carries the emitting component. The level is shared by a
// logger and all its components and can be changed while the host runs.
//
// Example Usage:
//
//	logger, err := logging.New(logging.Config{Level: "info"})
//	fontsLog := logger.Component("fonts")
//	fontsLog.Warn("Font loading issues", zap.Error(err))
//	_ = logger.SetLevel("debug")
package logging
