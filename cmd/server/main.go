package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/meur/dotasource/internal/api"
	"github.com/meur/dotasource/internal/config"
	"github.com/meur/dotasource/internal/logging"
	"github.com/meur/dotasource/internal/source"
	"github.com/meur/dotasource/internal/storage"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	configPath := flag.String("config", getEnv("DOTASOURCE_CONFIG", "config.yaml"), "YAML config path")
	port := flag.String("port", "", "Server port (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	dir := flag.String("dir", "", "Serve raw dumps from a local mirror checkout instead of fetching")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Storage.DBPath = *dbPath
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *dir, logger); err != nil {
		logger.Error("server failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, dir string, logger *zap.Logger) error {
	// Initialize storage
	store, err := storage.New(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer store.Close()

	var loader source.Loader = source.NewFetcher(cfg.Source.BaseURL, cfg.Source.Timeout)
	if dir != "" {
		loader = source.NewDirLoader(dir)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: api.New(store, loader, cfg, logger),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("dotasource API starting",
			zap.String("addr", "http://localhost:"+cfg.Server.Port),
			zap.String("db", cfg.Storage.DBPath),
			zap.String("base_url", cfg.Source.BaseURL),
			zap.Bool("token_required", cfg.Source.SecretToken != ""),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
