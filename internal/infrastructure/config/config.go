package config

import (
	"fmt"
	"time"

	"github.com/GriffinCanCode/appshell/internal/shared/types"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all shell host configuration.
type Config struct {
	Server    ServerConfig
	Shell     ShellConfig
	Fonts     FontConfig
	Media     MediaConfig
	Catalog   CatalogConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

// ServerConfig holds control API configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// ShellConfig holds the options the shell itself consumes.
type ShellConfig struct {
	Capability      string `envconfig:"SHELL_CAPABILITY" default:"web"`
	StaticFilesPath string `envconfig:"STATIC_FILES_PATH" default:"./"`
	DefaultFontFace string `envconfig:"DEFAULT_FONT_FACE" default:"RobotoRegular"`
	NoImageServer   bool   `envconfig:"NO_IMAGE_SERVER" default:"false"`
	// ClearColor is the stage clear color as 0xAARRGGBB
	ClearColor uint32 `envconfig:"CLEAR_COLOR" default:"0"`
}

// FontConfig holds font preloading configuration.
type FontConfig struct {
	Concurrency int           `envconfig:"FONT_CONCURRENCY" default:"4"`
	Timeout     time.Duration `envconfig:"FONT_TIMEOUT" default:"15s"`
	FetchRPS    float64       `envconfig:"FONT_FETCH_RPS" default:"0"`
	Retries     int           `envconfig:"FONT_FETCH_RETRIES" default:"2"`
}

// MediaConfig holds media player configuration.
type MediaConfig struct {
	SkipRenderToTexture bool `envconfig:"SKIP_RENDER_TO_TEXTURE" default:"false"`
	TextureMode         bool `envconfig:"TEXTURE_MODE" default:"false"`
}

// CatalogConfig holds hosted application discovery configuration.
type CatalogConfig struct {
	AppsDir string `envconfig:"APPS_DIR" default:"./apps"`
	Pattern string `envconfig:"APPS_PATTERN" default:"**/*.{yaml,yml,toml}"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds control API rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"20"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"40"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// CORSConfig holds the browser origins allowed to use the control API.
type CORSConfig struct {
	Origins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	MaxAge  time.Duration `envconfig:"CORS_MAX_AGE" default:"10m"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if _, err := cfg.Shell.ResolveCapability(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Shell: ShellConfig{
			Capability:      "web",
			StaticFilesPath: "./",
			DefaultFontFace: "RobotoRegular",
		},
		Fonts: FontConfig{
			Concurrency: 4,
			Timeout:     15 * time.Second,
			Retries:     2,
		},
		Catalog: CatalogConfig{
			AppsDir: "./apps",
			Pattern: "**/*.{yaml,yml,toml}",
		},
		Logging: LogConfig{
			Level: "info",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 20,
			Burst:             40,
			Enabled:           true,
		},
		CORS: CORSConfig{
			Origins: []string{"*"},
			MaxAge:  10 * time.Minute,
		},
	}
}

// ResolveCapability parses the configured capability. It is called once
// when the shell is constructed; nothing downstream probes the runtime again.
func (s ShellConfig) ResolveCapability() (types.Capability, error) {
	return types.ParseCapability(s.Capability)
}

// UseImageServer reports whether image URLs should go through the image server.
func (s ShellConfig) UseImageServer() bool {
	return !s.NoImageServer
}
