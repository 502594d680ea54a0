package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"titanicdash/internal/config"
	"titanicdash/internal/database"
	"titanicdash/internal/dataset"
	"titanicdash/internal/handlers"
	"titanicdash/internal/logging"
	"titanicdash/internal/repository"
	"titanicdash/internal/security"
	"titanicdash/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	logger.Info("Database connection established", zap.String("type", cfg.DatabaseType))

	applied, err := db.RunMigrations(ctx, cfg.MigrationsPath)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("Migrations completed", zap.Strings("applied", applied))

	templates, err := handlers.LoadTemplates(cfg.TemplatesPath)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	// Dataset loader reads file:// URLs from the static directory through the same HTTP client
	loader := dataset.NewLoader(
		dataset.NewClient(cfg.StaticFilesPath, cfg.DatasetTimeout),
		cfg.DatasetURL,
		dataset.WithStrict(cfg.DatasetStrict),
		dataset.WithLogger(logger.Named("dataset")),
	)

	// Initialize services
	commentService := service.NewCommentService(repository.NewCommentRepository(db), logger.Named("comments"))
	dashboardService := service.NewDashboardService(loader, commentService, logger.Named("dashboard"))

	limiter := security.NewRateLimiter(cfg.CommentRateLimit, cfg.CommentRateWindow)
	defer limiter.Stop()

	msg := handlers.MessagesFor(cfg.Locale)
	handler := handlers.Routes(
		handlers.NewDashboardHandler(dashboardService, commentService, templates, msg, logger.Named("http")),
		handlers.NewCommentHandler(commentService, templates, msg, logger.Named("http")),
		handlers.NewMiddleware(logger.Named("http"), limiter, cfg.TrustProxyHeaders),
		cfg.StaticFilesPath,
	)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// The dashboard serves a loading page until the dataset settles
	go func() {
		if err := dashboardService.Start(ctx); err != nil {
			logger.Error("Dashboard unavailable", zap.Error(err))
		}
	}()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("addr", "http://localhost"+addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	<-dashboardService.Done()
	return nil
}
