// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/mauvelian/internal/almanac"
	"github.com/starford/mauvelian/internal/api"
	"github.com/starford/mauvelian/internal/dateservice"
	"github.com/starford/mauvelian/internal/sse"
	pkgconfig "github.com/starford/mauvelian/pkg/config"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("almanac_path", cfg.Almanac.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Initialize SQLite almanac.
	db, err := almanac.Open(cfg.Almanac.Path)
	if err != nil {
		return fmt.Errorf("open almanac: %w", err)
	}
	defer db.Close()

	svc := dateservice.NewService(db, nil)

	// Apply the configured reference pair before wiring change
	// notifications so startup does not emit a spurious event.
	ref, err := cfg.Reference.Pair()
	if err != nil {
		return fmt.Errorf("reference config: %w", err)
	}
	if ref.IsZero() {
		logger.Info("No reference pair configured; conversions disabled until one is set")
	} else if err := svc.SetReference(ctx, ref); err != nil {
		return fmt.Errorf("set reference: %w", err)
	}

	// SSE broker, fed by service change notifications.
	broker := sse.NewBroker()
	defer broker.Close()
	svc.OnChange(func(kind string, data map[string]string) {
		broker.Publish(sse.Event{Type: kind, Data: data})
	})

	// Build API router.
	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, http.HandlerFunc(broker.ServeHTTP))

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	healthOK := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
	r.Get("/health/live", healthOK)
	r.Get("/health/ready", healthOK)

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// runCtx ends once shutdown begins so the config watcher winds down
	// alongside the HTTP server.
	runCtx, stopRun := context.WithCancel(ctx)
	defer stopRun()

	g, gCtx := errgroup.WithContext(runCtx)

	// Watch the config file and re-apply the reference section on change.
	// Other sections need a restart.
	if app.configPath != "" {
		configPath := app.configPath
		g.Go(func() error {
			return dateservice.WatchFile(gCtx, configPath, logger, func(path string) error {
				next := NewDefaultConfig()
				if err := pkgconfig.Load(path, next); err != nil {
					return err
				}
				ref, err := next.Reference.Pair()
				if err != nil {
					return err
				}
				if err := svc.SetReference(gCtx, ref); err != nil {
					return err
				}
				logger.Info("Reference pair reloaded", slog.String("path", path))
				return nil
			})
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		stopRun()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
