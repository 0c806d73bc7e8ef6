package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"culvert/internal/amqp"
	"culvert/internal/chart"
	"culvert/internal/config"
	"culvert/internal/notify"
	"culvert/internal/services"
	"culvert/internal/sheets"
	gsheet "culvert/internal/sheets/google"
	mem "culvert/internal/sheets/memory"
	"culvert/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting culvert-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	var store sheets.LedgerStore
	switch cfg.LedgerBackend {
	case "sheets":
		cli, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		store = cli
		logger.Info("Google Sheets ledger initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	default:
		store = mem.New()
		logger.Info("In-memory ledger initialized (no persistence)")
	}

	history, err := storage.NewImportRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize import history", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer history.Close()

	tracker := services.NewTracker(store, nil, chart.New(cfg.QuickChartURL), history,
		notify.NewWebhook(cfg.WebhookURL))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqp.Redial(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, func(client *amqp.Client) error {
			return client.ConsumeScoreBatches(ctx, func(ctx context.Context, msg *amqp.ScoreBatchMessage) error {
				source := msg.Source
				if source == "" {
					source = "amqp"
				}
				n, err := tracker.IngestRaw(ctx, source, msg.DateLabel, msg.Raw)
				if err != nil {
					return err
				}
				slog.InfoContext(ctx, "Ingested score batch",
					"source", source,
					"date_label", msg.DateLabel,
					"entries", n)
				return nil
			})
		})
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
