// Package pagenav provides page navigation for declarative UI toolkits: a
// history stack, a visible-page transition state machine and an asynchronous
// activation protocol the rendering layer completes.
//
// The router itself lives in the router subpackage. This package wires it to
// its surroundings: logging, configuration, metrics, lazy route resolution
// and history persistence.
package pagenav

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/BrandonKowalski/pagenav/pkg/pagenav/config"
	"github.com/BrandonKowalski/pagenav/pkg/pagenav/constants"
	"github.com/BrandonKowalski/pagenav/pkg/pagenav/history"
	"github.com/BrandonKowalski/pagenav/pkg/pagenav/internal"
	"github.com/BrandonKowalski/pagenav/pkg/pagenav/resolver"
	"github.com/BrandonKowalski/pagenav/pkg/pagenav/router"
)

// Options configures pagenav initialization.
type Options struct {
	LogPath  string // Full path for log file including filename (creates parent directories)
	LogLevel string // Application log level: debug, info, warn or error
	Debug    bool   // Log router internals at debug level
}

// Init sets up logging. Call it before creating routers so they pick up the
// configured internal logger.
func Init(options Options) {
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}
	if options.LogLevel != "" {
		internal.SetRawLogLevel(options.LogLevel)
	}
	if options.Debug || constants.IsDevMode() {
		internal.SetInternalLogLevel(slog.LevelDebug)
	}
}

// Close releases the log file, if one was opened.
func Close() {
	internal.CloseLogger()
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// Setup bundles what NewRouter built besides the router itself.
type Setup struct {
	Router  *router.Router
	Metrics *router.Metrics
	Store   history.Store
	Config  config.Config
}

// Clear truncates history according to the configured clear mode.
func (s *Setup) Clear() {
	if s.Config.ClearMode == constants.ClearAll {
		s.Router.ClearAll()
		return
	}
	s.Router.Clear()
}

// NewRouter builds a router from cfg: metrics registered on reg (nil skips
// metrics), an HTTP resolver when a manifest URL is configured, and a Redis
// history store when a Redis address is configured (memory otherwise).
func NewRouter(ctx context.Context, cfg config.Config, reg prometheus.Registerer, factory resolver.Factory, opts ...router.Option) (*Setup, error) {
	s := &Setup{Config: cfg}

	if reg != nil {
		s.Metrics = router.NewMetrics(router.WithRegistry(reg), router.WithMetricsNamespace(cfg.Metrics.Namespace))
		opts = append(opts, router.WithMetrics(s.Metrics))
	}
	if cfg.Resolver.BaseURL != "" {
		http := resolver.NewHTTP(cfg.Resolver.BaseURL, cfg.Resolver.Timeout.Duration, factory)
		opts = append(opts, router.WithResolver(resolver.Cached(http)))
	}

	if cfg.History.RedisAddr != "" {
		store, err := history.Dial(ctx, cfg.History.RedisAddr, cfg.History.TTL.Duration)
		if err != nil {
			return nil, NewInfrastructureError("open_history", err)
		}
		s.Store = store
	} else {
		s.Store = history.NewMemoryStore(cfg.History.TTL.Duration)
	}

	s.Router = router.New(opts...)
	return s, nil
}

// Resume restores the router from the stored snapshot for cfg.History.Key,
// or replaces to the initial route when there is none. The returned future
// completes on the renderer's next commit.
func (s *Setup) Resume(ctx context.Context) *router.Future {
	snap, err := s.Store.Load(ctx, s.Config.History.Key)
	if err != nil {
		GetLogger().Warn("Failed to load history; starting fresh", "error", err)
	}
	if snap != nil && snap.Active.Route != "" {
		return s.Router.Restore(ctx, *snap)
	}
	return s.Router.Replace(ctx, s.Config.InitialRoute, nil)
}

// Persist saves the router's snapshot under cfg.History.Key.
func (s *Setup) Persist(ctx context.Context) error {
	if err := s.Store.Save(ctx, s.Config.History.Key, s.Router.Snapshot()); err != nil {
		return NewInfrastructureError("save_history", err)
	}
	return nil
}
