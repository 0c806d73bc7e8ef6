package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type scanCmd struct {
	date string
}

func (*scanCmd) Name() string     { return "scan" }
func (*scanCmd) Synopsis() string { return "OCR score screenshots and record them" }
func (*scanCmd) Usage() string {
	return `culvert scan -date MM/DD/YY <image>...

  Runs each screenshot through the extraction model and reconciles the
  result into the ledger, one image at a time. Each image completes its
  own write cycle before the next starts, so duplicate names across
  images resolve last-write-wins. A failing image is reported and
  skipped; the batch never aborts early.
`
}

func (c *scanCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", "", "Target date in MM/DD/YY form (required).")
}

func (c *scanCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	dateLabel, err := parseDateFlag(c.date)
	if err != nil {
		return fail(err)
	}
	if f.NArg() == 0 {
		return fail(errors.New("no images given"))
	}

	a, err := openApp(ctx, true)
	if err != nil {
		return fail(err)
	}
	defer a.close()

	result := a.tracker.ScanImages(ctx, dateLabel, f.Args())
	fmt.Println(result.Summary())
	if result.Succeeded == 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
