package config

import (
	"os"
	"testing"
	"time"

	"github.com/GriffinCanCode/appshell/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	assert.Equal(t, "web", cfg.Shell.Capability)
	assert.Equal(t, "./", cfg.Shell.StaticFilesPath)
	assert.Equal(t, "RobotoRegular", cfg.Shell.DefaultFontFace)
	assert.True(t, cfg.Shell.UseImageServer())

	assert.Equal(t, 4, cfg.Fonts.Concurrency)
	assert.Equal(t, 15*time.Second, cfg.Fonts.Timeout)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	assert.True(t, cfg.RateLimit.Enabled)

	assert.Equal(t, []string{"*"}, cfg.CORS.Origins)
	assert.Equal(t, 10*time.Minute, cfg.CORS.MaxAge)
}

func TestLoadOrDefault(t *testing.T) {
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                   "9000",
		"SHELL_CAPABILITY":       "native",
		"STATIC_FILES_PATH":      "/opt/ux/",
		"NO_IMAGE_SERVER":        "true",
		"FONT_CONCURRENCY":       "8",
		"FONT_TIMEOUT":           "2s",
		"SKIP_RENDER_TO_TEXTURE": "true",
		"LOG_LEVEL":              "debug",
		"LOG_DEV":                "true",
		"CLEAR_COLOR":            "0xff102030",
		"CORS_ORIGINS":           "https://remote.example.com,http://192.168.1.*",
	}

	for key, value := range envVars {
		require.NoError(t, os.Setenv(key, value))
		defer os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "/opt/ux/", cfg.Shell.StaticFilesPath)
	assert.False(t, cfg.Shell.UseImageServer())
	assert.Equal(t, 8, cfg.Fonts.Concurrency)
	assert.Equal(t, 2*time.Second, cfg.Fonts.Timeout)
	assert.True(t, cfg.Media.SkipRenderToTexture)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, uint32(0xff102030), cfg.Shell.ClearColor)
	assert.Equal(t, []string{"https://remote.example.com", "http://192.168.1.*"}, cfg.CORS.Origins)

	capability, err := cfg.Shell.ResolveCapability()
	require.NoError(t, err)
	assert.Equal(t, types.CapabilityNative, capability)
}

func TestLoadRejectsUnknownCapability(t *testing.T) {
	require.NoError(t, os.Setenv("SHELL_CAPABILITY", "spark"))
	defer os.Unsetenv("SHELL_CAPABILITY")

	_, err := Load()
	assert.Error(t, err)

	cfg := LoadOrDefault()
	assert.Equal(t, "web", cfg.Shell.Capability)
}
