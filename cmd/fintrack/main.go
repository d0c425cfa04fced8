package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"fintrack/internal/alert"
	"fintrack/internal/config"
	"fintrack/internal/core"
	"fintrack/internal/ledger"
	applog "fintrack/internal/log"
	"fintrack/internal/scheduler"
	"fintrack/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Level:     parseLevel(cfg.LogLevel),
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)

	logger.Info("Starting fintrack", applog.FieldOperation, applog.OpStartup)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err.Error())
		os.Exit(1)
	}

	repo, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize snapshot repository",
			applog.FieldError, err.Error(), applog.FieldDBPath, cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Now()
	snap, found, err := repo.Load(ctx)
	if err != nil {
		logger.Error("Failed to load snapshot", applog.FieldError, err.Error())
		os.Exit(1)
	}
	if !found {
		logger.Info("No stored snapshot, starting from defaults")
		snap = core.DefaultSnapshot(now)
	}

	// Migration and rollover run before any other read of the snapshot.
	snap = ledger.Migrate(snap, now)
	snap, rolled := ledger.Rollover(snap, now)
	if rolled {
		logger.Info("Monthly rollover applied",
			applog.FieldOperation, applog.OpRollover, applog.FieldLastReset, snap.LastReset)
	}
	if err := repo.Save(ctx, snap); err != nil {
		logger.Warn("Failed to persist migrated snapshot, continuing in memory",
			applog.FieldError, err.Error())
	}

	store := ledger.NewStore(snap, repo,
		ledger.WithLogger(logger.WithComponent(applog.ComponentLedger)))

	alerter := alert.NewLogAlerter(logger)
	sched := scheduler.New(store, alerter,
		scheduler.WithInterval(cfg.TickInterval),
		scheduler.WithLogger(logger.WithComponent(applog.ComponentScheduler)))

	// Immediate pass so reminders due right now do not wait a full tick.
	sched.Tick(ctx, now)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sched.Run(gctx)
	})
	g.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Runtime error", applog.FieldError, err.Error())
	}

	// Final write so a pending in-memory state is not lost on teardown.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := repo.Save(shutdownCtx, store.Snapshot()); err != nil {
		logger.Warn("Final snapshot save failed", applog.FieldError, err.Error())
	}

	logger.Info("Fintrack stopped", applog.FieldOperation, applog.OpShutdown)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
