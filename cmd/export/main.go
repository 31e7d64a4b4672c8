package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/meur/dotasource/internal/config"
	"github.com/meur/dotasource/internal/export"
	"github.com/meur/dotasource/internal/logging"
	"github.com/meur/dotasource/internal/serializer"
	"github.com/meur/dotasource/internal/source"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", getEnv("DOTASOURCE_CONFIG", "config.yaml"), "YAML config path")
	dir := flag.String("dir", "", "Read raw dumps from a local mirror checkout instead of fetching")
	kinds := flag.String("kinds", "", "Comma-separated kinds to export (default all)")
	out := flag.String("out", "dotasource.xlsx", "Output workbook path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	selected, err := source.ParseKinds(*kinds)
	if err != nil {
		logger.Fatal("invalid kinds", zap.Error(err))
	}

	var loader source.Loader = source.NewFetcher(cfg.Source.BaseURL, cfg.Source.Timeout)
	if *dir != "" {
		loader = source.NewDirLoader(*dir)
	}

	serialized, err := source.Collect(ctx, loader, selected)
	if err != nil {
		logger.Fatal("collecting sources", zap.Error(err))
	}

	results := make([]serializer.Result, len(serialized))
	for i, s := range serialized {
		results[i] = s.Result
	}
	if err := export.WriteFile(*out, results...); err != nil {
		logger.Fatal("writing workbook", zap.Error(err), zap.String("path", *out))
	}

	logger.Info("workbook written", zap.String("path", *out), zap.Int("sheets", len(results)))
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
