package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/sketchpad/internal/render"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 1200.0, cfg.ViewportWidth)
	assert.Equal(t, 1000.0, cfg.ViewportHeight)
	assert.Equal(t, 108.0, cfg.GridSpacing)
	assert.Equal(t, render.RGB(255, 255, 255), cfg.GridColor)
	assert.Equal(t, render.RGB(211, 211, 211), cfg.BackgroundColor)
	assert.Equal(t, 8192.0, cfg.MaxViewport)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTTL)
	assert.Equal(t, 1000, cfg.MaxSessions)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GRID_SPACING", "40")
	t.Setenv("GRID_COLOR", "#102030")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 40.0, cfg.GridSpacing)
	assert.Equal(t, render.RGB(0x10, 0x20, 0x30), cfg.GridColor)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins())
}

func TestLoadRejectsBadColor(t *testing.T) {
	t.Setenv("BACKGROUND_COLOR", "not-a-colour")
	_, err := Load()
	assert.Error(t, err)
}

func TestLevelFallback(t *testing.T) {
	cfg := &Config{LogLevel: "loud"}
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}
