package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osa911/hostelhub/internal/api/handlers"
	"github.com/osa911/hostelhub/internal/billing"
	"github.com/osa911/hostelhub/internal/config"
	"github.com/osa911/hostelhub/internal/config/firebase"
	"github.com/osa911/hostelhub/internal/logging"
	"github.com/osa911/hostelhub/internal/metrics"
	"github.com/osa911/hostelhub/internal/notify"
	"github.com/osa911/hostelhub/internal/server"
	"github.com/osa911/hostelhub/internal/storage"
	"github.com/osa911/hostelhub/internal/tasks"
	"github.com/osa911/hostelhub/internal/telemetry"
	"github.com/osa911/hostelhub/internal/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "hostelhub: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Configure(cfg.Logging())
	logger := logging.GetLogger()
	defer logger.Close()

	logger.Info("Starting hostelhub %s in %s mode", version.Info(), cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, cfg.Environment)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("Failed to flush traces: %v", err)
		}
	}()

	clock, err := billing.NewClock(cfg.Timezone)
	if err != nil {
		return err
	}

	store, err := storage.Open(ctx, cfg, cfg.MigrationsOnStart)
	if err != nil {
		return err
	}
	defer store.Close()

	deps := server.Dependencies{Repos: store.Repos, Clock: clock}

	var pinger handlers.Pinger
	if sqlDB := store.SQL(); sqlDB != nil {
		pinger = sqlDB
	}
	deps.DB = pinger

	if cfg.FirebaseCredentialsFile != "" {
		verifier, err := firebase.NewVerifier(ctx, cfg.FirebaseCredentialsFile)
		if err != nil {
			return err
		}
		deps.Verifier = verifier
		logger.Info("Google sign-in enabled")
	} else {
		logger.Info("Google sign-in disabled: FIREBASE_CREDENTIALS_FILE not set")
	}

	if cfg.TelegramBotToken != "" {
		notifier, err := notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			return err
		}
		deps.Notifier = notifier
		logger.Info("Complaint notifications enabled for Telegram chat %d", cfg.TelegramChatID)
	}

	if cfg.MetricsEnabled {
		deps.Metrics = metrics.New()
	}

	srv, err := server.NewServer(cfg, deps)
	if err != nil {
		return err
	}

	// A fresh in-memory store starts with the default catalog
	if cfg.StorageDriver == config.StorageMemory {
		if n, err := srv.Services().Plan.SeedDefaultPlans(ctx); err != nil {
			return err
		} else if n > 0 {
			logger.Info("Seeded %d default meal plans", n)
		}
	}

	if deps.Metrics != nil {
		tasks.NewSummaryRefresher(srv.Services().Membership, deps.Metrics, clock, cfg.MetricsRefreshInterval).Start(ctx)
		logger.Info("Started mess summary refresh every %s", cfg.MetricsRefreshInterval)
	}

	return srv.Start(ctx)
}
