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
	"github.com/meur/dotasource/internal/logging"
	"github.com/meur/dotasource/internal/models"
	"github.com/meur/dotasource/internal/source"
	"github.com/meur/dotasource/internal/storage"
)

type options struct {
	dir   string
	kinds string
	keep  int
	force bool
}

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", getEnv("DOTASOURCE_CONFIG", "config.yaml"), "YAML config path")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	var opts options
	flag.StringVar(&opts.dir, "dir", "", "Read raw dumps from a local mirror checkout instead of fetching")
	flag.StringVar(&opts.kinds, "kinds", "", "Comma-separated kinds to import (default all)")
	flag.IntVar(&opts.keep, "keep", 0, "Snapshots to keep per kind after import (0 keeps all)")
	flag.BoolVar(&opts.force, "force", false, "Store a snapshot even if the revision is already stored")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
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

	if err := run(ctx, cfg, opts, logger); err != nil {
		logger.Error("import failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, opts options, logger *zap.Logger) error {
	kinds, err := source.ParseKinds(opts.kinds)
	if err != nil {
		return err
	}

	var loader source.Loader = source.NewFetcher(cfg.Source.BaseURL, cfg.Source.Timeout)
	if opts.dir != "" {
		loader = source.NewDirLoader(opts.dir)
	}

	store, err := storage.New(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer store.Close()

	serialized, err := source.Collect(ctx, loader, kinds)
	if err != nil {
		return err
	}

	var batch []models.SnapshotCreate
	for _, s := range serialized {
		kind := string(s.Result.Kind)
		revision := s.Payload.Revision()
		if !opts.force {
			exists, err := store.HasRevision(kind, revision)
			if err != nil {
				return fmt.Errorf("checking revision of %s: %w", kind, err)
			}
			if exists {
				logger.Info("unchanged, skipping", zap.String("kind", kind), zap.String("revision", revision))
				continue
			}
		}

		payload, err := s.Result.MarshalJSON()
		if err != nil {
			return fmt.Errorf("encoding %s: %w", kind, err)
		}
		batch = append(batch, models.SnapshotCreate{
			Kind:     kind,
			Revision: revision,
			Count:    s.Result.Count,
			Payload:  payload,
		})
	}

	if len(batch) > 0 {
		created, err := store.CreateSnapshots(batch)
		if err != nil {
			return fmt.Errorf("storing snapshots: %w", err)
		}
		for _, snap := range created {
			logger.Info("imported",
				zap.String("kind", snap.Kind),
				zap.String("id", snap.ID),
				zap.Int("count", snap.Count),
			)
		}
	}

	if opts.keep > 0 {
		names := make([]string, len(kinds))
		for i, k := range kinds {
			names[i] = string(k)
		}
		pruned, err := store.PruneSnapshots(opts.keep, names...)
		if err != nil {
			return fmt.Errorf("pruning snapshots: %w", err)
		}
		logger.Info("pruned old snapshots", zap.Int64("deleted", pruned), zap.Int("keep", opts.keep))
	}

	logger.Info("import finished", zap.Int("stored", len(batch)), zap.Int("kinds", len(kinds)))
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
