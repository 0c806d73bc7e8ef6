package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"

	"culvert/internal/amqp"
	"culvert/internal/config"
)

type recordCmd struct {
	date  string
	queue bool
}

func (*recordCmd) Name() string     { return "record" }
func (*recordCmd) Synopsis() string { return "record scores from a JSON payload" }
func (*recordCmd) Usage() string {
	return `culvert record -date MM/DD/YY [-queue] [json]

  Reconciles the given score rows into the ledger for the target date.
  The payload is read from the argument, or from stdin when omitted.
  Accepted shapes: an array of objects, {"rows":[...]}, or a single
  object; each object needs "Name" and "Culvert" fields.

  With -queue the payload is published to the score queue instead and
  the worker performs the write.
`
}

func (c *recordCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", "", "Target date in MM/DD/YY form (required).")
	f.BoolVar(&c.queue, "queue", false, "Publish to the score queue instead of writing directly.")
}

func (c *recordCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	dateLabel, err := parseDateFlag(c.date)
	if err != nil {
		return fail(err)
	}

	raw := strings.Join(f.Args(), " ")
	if strings.TrimSpace(raw) == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fail(fmt.Errorf("read stdin: %w", err))
		}
		raw = string(data)
	}

	if c.queue {
		return c.publish(ctx, dateLabel, raw)
	}

	a, err := openApp(ctx, false)
	if err != nil {
		return fail(err)
	}
	defer a.close()

	n, err := a.tracker.IngestRaw(ctx, "manual", dateLabel, raw)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Recorded %d entries for %s\n", n, dateLabel)
	return subcommands.ExitSuccess
}

func (c *recordCmd) publish(ctx context.Context, dateLabel, raw string) subcommands.ExitStatus {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fail(err)
	}
	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return fail(fmt.Errorf("amqp: %w", err))
	}
	defer client.Close()

	if err := client.PublishScoreBatch(ctx, amqp.NewScoreBatchMessage("manual", dateLabel, raw)); err != nil {
		return fail(err)
	}
	fmt.Printf("Queued batch for %s\n", dateLabel)
	return subcommands.ExitSuccess
}
