package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/positions"
	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"
)

// checkCmd replays the journal and reports rejected entries.
type checkCmd struct{}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "validate the journal" }
func (*checkCmd) Usage() string {
	return `pos check

  Replays every journal entry into an empty ledger and reports the orders
  that would be rejected. Useful after editing the journal by hand.
  Each rejected entry is listed. Exits with a failure status if any entry
  is rejected.
`
}
func (*checkCmd) SetFlags(*flag.FlagSet) {}

func (*checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	entries, err := decodeJournal(settings.Ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	err = positions.Replay(positions.NewLedger(settings.Currency), entries)
	var rerr *positions.ReplayError
	if errors.As(err, &rerr) {
		for _, r := range rerr.Rejected {
			fmt.Fprintf(stdout, "- %v\n", r)
		}
		fmt.Fprintf(stdout, "%d of %d entries rejected\n", len(rerr.Rejected), rerr.Entries)
		if errors.Is(err, positions.ErrInvalidOrder) {
			fmt.Fprintln(os.Stderr, "Some orders are malformed, see 'pos topic journal'.")
		}
		return subcommands.ExitFailure
	}
	log.WithField("journal", settings.Ledger).Infof("%d entries ok", len(entries))
	return subcommands.ExitSuccess
}
