package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/inamate/sketchpad/internal/render"
)

type Config struct {
	Port            int           `envconfig:"PORT" default:"8080"`
	ViewportWidth   float64       `envconfig:"VIEWPORT_WIDTH" default:"1200"`
	ViewportHeight  float64       `envconfig:"VIEWPORT_HEIGHT" default:"1000"`
	MaxViewport     float64       `envconfig:"MAX_VIEWPORT" default:"8192"`
	GridSpacing     float64       `envconfig:"GRID_SPACING" default:"108"`
	GridColor       render.Color  `envconfig:"GRID_COLOR" default:"white"`
	BackgroundColor render.Color  `envconfig:"BACKGROUND_COLOR" default:"#d3d3d3"`
	JWTSecret       string        `envconfig:"JWT_SECRET" default:"dev-secret-change-in-production"`
	TokenTTL        time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	SessionIdleTTL  time.Duration `envconfig:"SESSION_IDLE_TTL" default:"30m"`
	MaxSessions     int           `envconfig:"MAX_SESSIONS" default:"1000"`
	AllowedOrigins  string        `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	OutputPath      string        `envconfig:"OUTPUT_PATH" default:"scene.png"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Origins splits AllowedOrigins into its entries.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Level maps LogLevel to a slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
