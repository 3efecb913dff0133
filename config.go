package carmuseum

import (
	"fmt"
	"net"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
)

// Config holds all configuration for a carMuseum server.
type Config struct {
	Addr     string `env:"CARMUSEUM_ADDR"`      // Listen address (default ":" + Port)
	Port     string `env:"PORT"`                // Port used when Addr is empty (default "4000")
	SiteName string `env:"CARMUSEUM_SITE_NAME"` // Feed title (default "AutoVerse")
	SiteURL  string `env:"CARMUSEUM_SITE_URL"`  // Canonical URL used in feed links

	ContentDB string `env:"CARMUSEUM_CONTENT_DB"` // SQLite content path; empty serves the embedded dataset
	LogLevel  string `env:"CARMUSEUM_LOG_LEVEL"`  // debug, info, warn, error (default "info")

	RateLimit     int           `env:"CARMUSEUM_RATE_LIMIT"`  // Requests per window per IP on /api/ (default 120, negative disables)
	RateWindow    time.Duration `env:"CARMUSEUM_RATE_WINDOW"` // Rate limit window (default 1m)
	RedisAddr     string        `env:"CARMUSEUM_REDIS_ADDR"`  // Shared limiter backend; empty keeps limits in process
	RedisPassword string        `env:"CARMUSEUM_REDIS_PASSWORD"`

	Metrics         bool          `env:"CARMUSEUM_METRICS" envDefault:"true"` // Expose /metrics
	ShutdownTimeout time.Duration `env:"CARMUSEUM_SHUTDOWN_TIMEOUT"`          // Graceful shutdown bound (default 10s)
}

// LoadConfig reads the configuration from the environment and applies
// defaults.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Port == "" {
		c.Port = "4000"
	}
	if c.Addr == "" {
		c.Addr = ":" + c.Port
	}
	if c.SiteName == "" {
		c.SiteName = "AutoVerse"
	}
	if c.SiteURL == "" {
		port := c.Port
		if _, p, err := net.SplitHostPort(c.Addr); err == nil && p != "" {
			port = p
		}
		c.SiteURL = "http://localhost:" + port
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.RateLimit == 0 {
		c.RateLimit = 120
	}
	if c.RateWindow == 0 {
		c.RateWindow = time.Minute
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithLogger sets the logger used for request and lifecycle logs.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithLimiter replaces the limiter built from the config.
func WithLimiter(l Limiter) Option {
	return func(a *App) {
		a.limiter = l
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
