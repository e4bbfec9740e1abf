package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/arkdps/internal/calculator"
	"github.com/udisondev/arkdps/internal/config"
	"github.com/udisondev/arkdps/internal/data"
	"github.com/udisondev/arkdps/internal/db"
	"github.com/udisondev/arkdps/internal/dpsserver"
	"github.com/udisondev/arkdps/internal/game/enemy"
	"github.com/udisondev/arkdps/internal/game/operator"
)

const ConfigPath = "config/dpsserver.yaml"

// cacheJanitorInterval is how often expired cache rows are deleted.
const cacheJanitorInterval = 10 * time.Minute

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config first to determine log level
	cfgPath := ConfigPath
	if p := os.Getenv("ARKDPS_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadDPSServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("arkdps server starting", "log_level", cfg.LogLevel, "config", cfgPath)

	// Game data
	store, err := data.LoadDir(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("loading game data: %w", err)
	}

	operators := operator.NewRegistry(store)
	if err := operator.RegisterAll(operators); err != nil {
		return fmt.Errorf("registering operators: %w", err)
	}
	enemies := enemy.NewCatalog(store)
	if err := enemy.RegisterAll(enemies); err != nil {
		return fmt.Errorf("registering enemies: %w", err)
	}

	opts := calculator.Options{
		MaxGridPoints: cfg.Sweep.MaxGridPoints,
		Workers:       cfg.Sweep.Workers,
	}

	g, gctx := errgroup.WithContext(ctx)

	// Result cache (optional)
	if cfg.Cache.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		repo := db.NewResultCacheRepository(database.Pool(), cfg.Cache.TTL)
		opts.Cache = repo

		g.Go(func() error {
			runCacheJanitor(gctx, repo)
			return nil
		})
	}

	svc := calculator.New(operators, enemies, opts)
	srv := dpsserver.NewServer(cfg, svc)

	g.Go(func() error {
		slog.Info("starting dps server", "address", cfg.Addr(), "cache", cfg.Cache.Enabled)
		if err := srv.Run(gctx); err != nil {
			return fmt.Errorf("dps server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// runCacheJanitor deletes expired cache rows until ctx is done.
func runCacheJanitor(ctx context.Context, repo *db.ResultCacheRepository) {
	ticker := time.NewTicker(cacheJanitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteExpired(ctx)
			if err != nil {
				slog.Warn("deleting expired cache rows", "err", err)
				continue
			}
			if n > 0 {
				slog.Debug("expired cache rows deleted", "count", n)
			}
		}
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
