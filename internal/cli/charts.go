package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type chartCmd struct {
	out string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "render one member's score history" }
func (*chartCmd) Usage() string {
	return `culvert chart -out chart.png <name>

  Extracts the member's time series from the ledger and renders it as a
  line chart. The name must match an existing row (case and spacing are
  ignored); there is no fuzzy fallback on reads.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "out", "chart.png", "Output PNG path.")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(errors.New("expected exactly one member name"))
	}
	a, err := openApp(ctx, false)
	if err != nil {
		return fail(err)
	}
	defer a.close()

	img, err := a.tracker.MemberChart(ctx, f.Arg(0))
	if err != nil {
		return fail(err)
	}
	return writeImage(c.out, img)
}

type compareCmd struct {
	out string
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "render two members on one chart" }
func (*compareCmd) Usage() string {
	return `culvert compare -out compare.png <nameA> <nameB>

  Aligns both members' series on the union of their dates. Dates where
  one member has no score render as gaps, not zeros.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "out", "compare.png", "Output PNG path.")
}

func (c *compareCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return fail(errors.New("expected exactly two member names"))
	}
	a, err := openApp(ctx, false)
	if err != nil {
		return fail(err)
	}
	defer a.close()

	img, err := a.tracker.CompareChart(ctx, f.Arg(0), f.Arg(1))
	if err != nil {
		return fail(err)
	}
	return writeImage(c.out, img)
}

type guildCmd struct {
	out string
}

func (*guildCmd) Name() string     { return "guild" }
func (*guildCmd) Synopsis() string { return "render the guild-wide score total" }
func (*guildCmd) Usage() string {
	return `culvert guild -out guild.png

  Sums every date column across all members and renders the totals.
`
}

func (c *guildCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "out", "guild.png", "Output PNG path.")
}

func (c *guildCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx, false)
	if err != nil {
		return fail(err)
	}
	defer a.close()

	img, err := a.tracker.GuildChart(ctx)
	if err != nil {
		return fail(err)
	}
	return writeImage(c.out, img)
}

func writeImage(path string, img []byte) subcommands.ExitStatus {
	if err := os.WriteFile(path, img, 0644); err != nil {
		return fail(fmt.Errorf("write %s: %w", path, err))
	}
	fmt.Printf("Wrote %s (%d bytes)\n", path, len(img))
	return subcommands.ExitSuccess
}
