// Package cli implements the culvert command set.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"culvert/internal/chart"
	"culvert/internal/config"
	"culvert/internal/core"
	"culvert/internal/extract"
	"culvert/internal/notify"
	"culvert/internal/services"
	"culvert/internal/sheets"
	gsheet "culvert/internal/sheets/google"
	mem "culvert/internal/sheets/memory"
	"culvert/internal/storage"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&recordCmd{}, "ingest")
	c.Register(&scanCmd{}, "ingest")
	c.Register(&historyCmd{}, "ingest")

	c.Register(&chartCmd{}, "charts")
	c.Register(&compareCmd{}, "charts")
	c.Register(&guildCmd{}, "charts")

	c.Register(&serveCmd{}, "server")
}

// app bundles the tracker with the resources it borrowed.
type app struct {
	cfg     *config.Config
	tracker *services.Tracker
	history *storage.ImportRepository
}

func (a *app) close() {
	if a.history != nil {
		a.history.Close()
	}
}

// openApp builds a tracker from the environment. The extraction model is
// only dialed when a command needs it.
func openApp(ctx context.Context, withExtractor bool) (*app, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var store sheets.LedgerStore
	switch cfg.LedgerBackend {
	case "sheets":
		cli, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("google sheets: %w", err)
		}
		store = cli
	default:
		store = mem.New()
	}

	var extractor services.TextExtractor
	if withExtractor {
		g, err := extract.NewGemini(ctx, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("extraction model: %w", err)
		}
		extractor = g
	}

	history, err := storage.NewImportRepository(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("import history: %w", err)
	}

	tracker := services.NewTracker(store, extractor, chart.New(cfg.QuickChartURL), history,
		notify.NewWebhook(cfg.WebhookURL))
	return &app{cfg: cfg, tracker: tracker, history: history}, nil
}

// parseDateFlag validates a -date flag and returns the header label form.
func parseDateFlag(raw string) (string, error) {
	key, err := core.ParseCommandDate(raw)
	if err != nil {
		return "", err
	}
	return core.FormatHeaderLabel(key), nil
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}
