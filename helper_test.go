package positions

import (
	"testing"

	"github.com/etnz/positions/date"
	"github.com/google/go-cmp/cmp"
)

// USD is a helper for tests to create dollars from a constant.
func USD(v float64) Money { return M(v, "USD") }

// day is a shorthand for date.MustParse.
func day(s string) date.Date { return date.MustParse(s) }

// cmpOpts compares the package's value types by value.
var cmpOpts = cmp.Options{
	cmp.Comparer(func(a, b Quantity) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b Money) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b date.Date) bool { return a == b }),
}

// record records all orders and fails the test on the first rejection.
func record(t testing.TB, l *Ledger, orders ...Order) {
	t.Helper()
	for _, o := range orders {
		if err := l.Record(o); err != nil {
			t.Fatalf("Record(%v) unexpected error: %v", o, err)
		}
	}
}

func instruments(ps []Position) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Instrument)
	}
	return out
}
