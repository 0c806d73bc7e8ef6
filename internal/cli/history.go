package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
)

type historyCmd struct {
	limit int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list recent imports" }
func (*historyCmd) Usage() string {
	return `culvert history [-n 20]

  Prints the most recent import batches from the local history database.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 20, "Number of records to show.")
}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx, false)
	if err != nil {
		return fail(err)
	}
	defer a.close()

	records, err := a.tracker.History(ctx, c.limit)
	if err != nil {
		return fail(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tSOURCE\tDATE\tENTRIES\tOK\tFAILED\tERROR")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Source, r.DateLabel,
			r.Entries, r.Succeeded, r.Failed, r.FirstError)
	}
	w.Flush()
	return subcommands.ExitSuccess
}
