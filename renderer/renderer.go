// Package renderer formats ledger state as markdown.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/positions"
)

// PositionsMarkdown renders the open positions and their total value.
func PositionsMarkdown(ps []positions.Position, total positions.Money) string {
	if len(ps) == 0 {
		return "No positions in portfolio.\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# Positions\n\n")
	fmt.Fprintln(&b, "| Instrument | Quantity | Avg Price | Value |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	for _, p := range ps {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			cell(p.Instrument),
			p.Quantity,
			p.AvgPrice,
			p.Value(),
		)
	}
	fmt.Fprintf(&b, "\n**Total value:** %s\n", total)
	return b.String()
}

// OrdersMarkdown renders the order history, in the given order.
func OrdersMarkdown(orders []positions.Order) string {
	if len(orders) == 0 {
		return "No orders in portfolio.\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# Orders\n\n")
	fmt.Fprintln(&b, "| Date | Side | Instrument | Quantity | Price | Amount | Memo |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|:---|")
	for _, o := range orders {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			o.Date,
			o.Side,
			cell(o.Instrument),
			o.Quantity,
			o.Price,
			o.Amount(),
			cell(o.Memo),
		)
	}
	return b.String()
}

// ValueMarkdown renders a one line total.
func ValueMarkdown(total positions.Money) string {
	return fmt.Sprintf("**Total value:** %s\n", total)
}

// cell escapes the table separator.
func cell(s string) string { return strings.ReplaceAll(s, "|", `\|`) }
