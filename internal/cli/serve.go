package cli

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"

	apphttp "culvert/internal/http"
	applog "culvert/internal/log"
)

type serveCmd struct{}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the HTTP ingest server" }
func (*serveCmd) Usage() string {
	return `culvert serve

  Serves POST /ingest for raw score payloads and GET /healthz. The port
  comes from PORT (default 8082).
`
}

func (*serveCmd) SetFlags(_ *flag.FlagSet) {}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx, false)
	if err != nil {
		return fail(err)
	}
	defer a.close()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP)
	srv := apphttp.NewServer(":"+a.cfg.Port, a.tracker, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting ingest server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fail(err)
	}
	logger.Info("Server stopped gracefully")
	return subcommands.ExitSuccess
}
