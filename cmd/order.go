package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/positions"
	"github.com/etnz/positions/date"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// orderCmd records a buy or a sell, depending on side.
type orderCmd struct {
	side       positions.Side
	date       string
	instrument string
	quantity   string
	price      string
	memo       string
}

func (c *orderCmd) Name() string { return strings.ToLower(c.side.String()) }
func (c *orderCmd) Synopsis() string {
	if c.side == positions.Sell {
		return "sell units of an open position"
	}
	return "buy units to open or add to a position"
}
func (c *orderCmd) Usage() string {
	return fmt.Sprintf(`pos %s [-d <date>] -i <instrument> -q <quantity> -p <price> [-m <memo>]

  Records a %s order. The order is checked against the positions rebuilt from
  the journal, and appended to the journal only if it is accepted.
`, c.Name(), c.side)
}

func (c *orderCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Order date (YYYY-MM-DD or D/M/YYYY)")
	f.StringVar(&c.instrument, "i", "", "Instrument ticker")
	f.StringVar(&c.quantity, "q", "", "Quantity, a positive decimal number")
	f.StringVar(&c.price, "p", "", "Price per unit, in the reporting currency")
	f.StringVar(&c.memo, "m", "", "An optional note")
}

func (c *orderCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.instrument == "" || c.quantity == "" || c.price == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	q, err := decimal.NewFromString(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quantity %q: %v\n", c.quantity, err)
		return subcommands.ExitUsageError
	}
	p, err := decimal.NewFromString(c.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price %q: %v\n", c.price, err)
		return subcommands.ExitUsageError
	}

	ledger, err := openLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading journal: %v\n", err)
		return subcommands.ExitFailure
	}

	order := positions.NewOrder(c.side, day, c.memo, strings.ToUpper(c.instrument), positions.Q(q), positions.M(p, settings.Currency))
	if err := ledger.Record(order); err != nil {
		fmt.Fprintf(os.Stderr, "Error: order rejected: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := appendEntry(settings.Ledger, order); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	log.WithFields(log.Fields{"id": order.ID, "journal": settings.Ledger}).Infof("recorded %s %s %s at %s", order.Side, order.Quantity, order.Instrument, order.Price)
	return subcommands.ExitSuccess
}

// clearCmd records a clear-positions or clear-orders entry.
type clearCmd struct {
	command positions.Command
	date    string
	memo    string
}

func (c *clearCmd) Name() string { return string(c.command) }
func (c *clearCmd) Synopsis() string {
	if c.command == positions.CmdClearOrders {
		return "erase the order history, keeping the positions"
	}
	return "close every position, keeping the order history"
}
func (c *clearCmd) Usage() string {
	return fmt.Sprintf(`pos %s [-d <date>] [-m <memo>]

  %s.
  The reset is appended to the journal: earlier entries stay in the file.
`, c.Name(), c.Synopsis())
}

func (c *clearCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Date of the reset")
	f.StringVar(&c.memo, "m", "", "An optional note")
}

func (c *clearCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	var entry positions.Clear
	switch c.command {
	case positions.CmdClearOrders:
		entry = positions.NewClearOrders(day, c.memo)
	default:
		entry = positions.NewClearPositions(day, c.memo)
	}
	if err := appendEntry(settings.Ledger, entry); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	log.WithField("journal", settings.Ledger).Infof("recorded %s", entry.Command)
	return subcommands.ExitSuccess
}
