package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GriffinCanCode/appshell/internal/infrastructure/config"
	"github.com/GriffinCanCode/appshell/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Invalid environment configuration, using defaults: %v", err)
		cfg = config.Default()
	}

	port := flag.String("port", cfg.Server.Port, "Control API port")
	host := flag.String("host", cfg.Server.Host, "Control API host")
	capability := flag.String("capability", cfg.Shell.Capability, "Platform capability (web, native, none)")
	appsDir := flag.String("apps", cfg.Catalog.AppsDir, "Hosted application manifest directory")
	staticPath := flag.String("static", cfg.Shell.StaticFilesPath, "Static files path prefix")
	logLevel := flag.String("log-level", cfg.Logging.Level, "Log level (debug, info, warn, error)")
	dev := flag.Bool("dev", cfg.Logging.Development, "Development logging")
	flag.Parse()

	cfg.Server.Port = *port
	cfg.Server.Host = *host
	cfg.Shell.Capability = *capability
	cfg.Catalog.AppsDir = *appsDir
	cfg.Shell.StaticFilesPath = *staticPath
	cfg.Logging.Level = *logLevel
	cfg.Logging.Development = *dev

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		log.Println("Shutting down gracefully...")
	case <-srv.Done():
		log.Println("Exit requested, shutting down...")
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}
