package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/positions"
	"github.com/etnz/positions/renderer"
	"github.com/google/subcommands"
)

// positionsCmd displays the open positions.
type positionsCmd struct{}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "display the open positions" }
func (*positionsCmd) Usage() string {
	return `pos positions

  Displays the open positions, in the order they were opened, with their
  average price, their value and the total value.
`
}
func (*positionsCmd) SetFlags(*flag.FlagSet) {}

func (*positionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading journal: %v\n", err)
		return subcommands.ExitFailure
	}
	s := ledger.Snapshot()
	printMarkdown(renderer.PositionsMarkdown(s.Positions, s.TotalValue))
	return subcommands.ExitSuccess
}

// ordersCmd displays the order history.
type ordersCmd struct {
	instrument string
	side       string
	tail       int
}

func (*ordersCmd) Name() string     { return "orders" }
func (*ordersCmd) Synopsis() string { return "display the order history" }
func (*ordersCmd) Usage() string {
	return `pos orders [-i <instrument>] [-side buy|sell] [-tail <n>]

  Displays the recorded orders, in the order they were recorded.
`
}

func (c *ordersCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.instrument, "i", "", "Only orders on this instrument")
	f.StringVar(&c.side, "side", "", "Only buy or sell orders")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N orders")
}

func (c *ordersCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var filters []func(positions.Order) bool
	if c.instrument != "" {
		filters = append(filters, positions.ByInstrument(strings.ToUpper(c.instrument)))
	}
	if c.side != "" {
		side, err := positions.ParseSide(c.side)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		filters = append(filters, positions.BySide(side))
	}

	ledger, err := openLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading journal: %v\n", err)
		return subcommands.ExitFailure
	}
	orders := ledger.Orders(filters...)
	if c.tail > 0 && len(orders) > c.tail {
		orders = orders[len(orders)-c.tail:]
	}
	printMarkdown(renderer.OrdersMarkdown(orders))
	return subcommands.ExitSuccess
}

// valueCmd displays the total value of the open positions.
type valueCmd struct{}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "display the total value of the open positions" }
func (*valueCmd) Usage() string {
	return `pos value

  Displays the sum of average price times quantity over the open positions.
`
}
func (*valueCmd) SetFlags(*flag.FlagSet) {}

func (*valueCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading journal: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ValueMarkdown(ledger.TotalValue()))
	return subcommands.ExitSuccess
}
