// Package carmuseum serves read-only automotive content (news, car models,
// brands, dealerships, garage vehicles and restoration projects) as a JSON
// API built with Echo.
//
// Content is loaded once into an immutable ContentStore, queried through a
// QueryService, and exposed over HTTP by App, either as a standalone server
// or behind AWS Lambda.
package carmuseum

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// App wires the content store, query service, middleware and routes.
type App struct {
	Config  Config
	Echo    *echo.Echo
	Content *ContentStore
	Query   *QueryService
	Logger  *zap.Logger

	limiter      Limiter
	metrics      *prometheus.Registry
	customRoutes []func(*App)
	etagPaths    map[string]struct{}
}

// New creates an App serving content. Middleware and routes are registered
// immediately so the App can serve through Echo.ServeHTTP or HandleLambda
// without calling Start.
func New(cfg Config, content *ContentStore, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:  cfg,
		Echo:    echo.New(),
		Content: content,
		Query:   NewQueryService(content),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.Logger == nil {
		a.Logger = zap.NewNop()
	}
	if a.limiter == nil && cfg.RateLimit > 0 {
		a.limiter = NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	}
	if cfg.Metrics {
		a.metrics = prometheus.NewRegistry()
		a.metrics.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.etagPaths = versionedPaths(a.Echo.Routes())

	return a
}

// versionedPaths lists the registered GET routes whose body is derived only
// from the content store.
func versionedPaths(routes []*echo.Route) map[string]struct{} {
	paths := make(map[string]struct{})
	for _, r := range routes {
		if r.Method != http.MethodGet {
			continue
		}
		if strings.HasPrefix(r.Path, "/api/") || isDocumentPath(r.Path) {
			paths[r.Path] = struct{}{}
		}
	}
	return paths
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/health", handleHealth)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/sitemap.xml", a.handleSitemap)
	if a.metrics != nil {
		e.GET("/metrics", a.metricsHandler())
	}

	api := e.Group("/api")
	api.GET("/news", a.handleNews)
	api.GET("/models", a.handleModels)
	api.GET("/brands", a.handleBrands)
	api.GET("/garage", a.handleGarage)
	api.GET("/dealerships", a.handleDealerships)
	api.GET("/projects", a.handleProjects)
	api.GET("/summary", a.handleSummary)
}

// Start listens on Config.Addr until ctx is cancelled, then shuts down
// gracefully within Config.ShutdownTimeout.
func (a *App) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Echo.Start(a.Config.Addr)
	}()

	a.Logger.Info("api ready",
		zap.String("addr", a.Config.Addr),
		zap.String("content_version", a.Content.Version()),
	)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
	defer cancel()
	a.Logger.Info("shutting down")
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases the limiter and flushes the logger.
func (a *App) Close() error {
	if c, ok := a.limiter.(io.Closer); ok {
		c.Close()
	}
	_ = a.Logger.Sync()
	return nil
}

// NewLimiter builds the limiter described by cfg: Redis-backed when RedisAddr
// is set, nil when rate limiting is disabled, in-process otherwise.
func NewLimiter(ctx context.Context, cfg Config) (Limiter, error) {
	cfg.setDefaults()
	if cfg.RateLimit < 0 {
		return nil, nil
	}
	if cfg.RedisAddr == "" {
		return NewRateLimiter(cfg.RateLimit, cfg.RateWindow), nil
	}
	rl, err := NewRedisLimiter(cfg.RedisAddr, cfg.RedisPassword, "", cfg.RateLimit, cfg.RateWindow)
	if err != nil {
		return nil, err
	}
	if err := rl.Ping(ctx); err != nil {
		rl.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rl, nil
}

// LoadContent builds the content store described by cfg: the SQLite
// database at ContentDB when set, the embedded dataset otherwise.
func LoadContent(ctx context.Context, cfg Config) (*ContentStore, error) {
	if cfg.ContentDB != "" {
		return LoadContentDB(ctx, cfg.ContentDB)
	}
	return LoadEmbedded()
}
