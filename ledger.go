package positions

import (
	"fmt"
	"slices"
	"sync"
)

// Ledger owns the order history and the open positions of a portfolio.
//
// Orders are kept in arrival order. Positions are kept in the order in which
// each instrument was first bought, and there is at most one per instrument.
//
// A Ledger is safe for concurrent use: one mutex guards the whole state, since
// the read-modify-write of an average price cannot be split.
type Ledger struct {
	mu        sync.Mutex
	currency  string
	orders    []Order
	positions map[string]*Position // index open positions by instrument
	opened    []string             // instruments in first-creation order
}

// NewLedger creates an empty ledger reporting in currency (e.g. "USD").
func NewLedger(currency string) *Ledger {
	return &Ledger{
		currency:  currency,
		orders:    make([]Order, 0),
		positions: make(map[string]*Position),
	}
}

// Currency returns the ledger's reporting currency.
func (l *Ledger) Currency() string { return l.currency }

// Record applies an order to the ledger.
//
// A buy opens or grows the position on its instrument. A sell shrinks it,
// and a position sold in full is closed. On success the order is appended to
// the history. On failure the ledger is left untouched and the returned
// *OrderError wraps ErrInvalidOrder, ErrUnknownInstrument or
// ErrInsufficientQuantity.
//
// An order price with no currency is recorded in the ledger's currency.
func (l *Ledger) Record(o Order) error {
	if o.Price.Currency() == "" {
		o.Price = o.Price.withCurrency(l.currency)
	}
	if err := l.validate(o); err != nil {
		return &OrderError{Order: o, Err: err}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	pos, open := l.positions[o.Instrument]
	switch o.Side {
	case Buy:
		if !open {
			l.positions[o.Instrument] = &Position{Instrument: o.Instrument, AvgPrice: o.Price, Quantity: o.Quantity}
			l.opened = append(l.opened, o.Instrument)
		} else {
			pos.buy(o.Price, o.Quantity)
		}
	case Sell:
		if !open {
			return &OrderError{Order: o, Err: ErrUnknownInstrument}
		}
		if o.Quantity.GreaterThan(pos.Quantity) {
			return &OrderError{Order: o, Err: ErrInsufficientQuantity}
		}
		pos.sell(o.Quantity)
		if pos.Quantity.IsZero() {
			l.close(o.Instrument)
		}
	}
	l.orders = append(l.orders, o)
	return nil
}

func (l *Ledger) validate(o Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.Price.Currency() != l.currency {
		return fmt.Errorf("%w: price currency %s does not match ledger currency %s", ErrInvalidOrder, o.Price.Currency(), l.currency)
	}
	return nil
}

// close drops the position on instrument. Must be called with l.mu held.
func (l *Ledger) close(instrument string) {
	delete(l.positions, instrument)
	l.opened = slices.DeleteFunc(l.opened, func(s string) bool { return s == instrument })
}

// Position returns the open position on instrument.
func (l *Ledger) Position(instrument string) (Position, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.positions[instrument]
	if !ok || p.Quantity.IsZero() {
		return Position{}, false
	}
	return *p, true
}

// Positions returns a copy of the open positions, in the order in which they
// were opened. Positions with a zero quantity are never returned.
func (l *Ledger) Positions() []Position {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active()
}

func (l *Ledger) active() []Position {
	out := make([]Position, 0, len(l.opened))
	for _, instrument := range l.opened {
		if p := l.positions[instrument]; !p.Quantity.IsZero() {
			out = append(out, *p)
		}
	}
	return out
}

// Orders returns a copy of the order history in arrival order. When filters
// are given, only orders accepted by all of them are returned.
func (l *Ledger) Orders(filters ...func(Order) bool) []Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Order, 0, len(l.orders))
	for _, o := range l.orders {
		if accept(o, filters) {
			out = append(out, o)
		}
	}
	return out
}

func accept(o Order, filters []func(Order) bool) bool {
	for _, f := range filters {
		if !f(o) {
			return false
		}
	}
	return true
}

// TotalValue is the sum of Value() over Positions().
func (l *Ledger) TotalValue() Money {
	l.mu.Lock()
	defer l.mu.Unlock()
	return total(l.currency, l.active())
}

func total(currency string, positions []Position) Money {
	sum := M(0, currency)
	for _, p := range positions {
		sum = sum.Add(p.Value())
	}
	return sum
}

// ClearPositions closes every position. The order history is kept.
func (l *Ledger) ClearPositions() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.positions)
	l.opened = l.opened[:0]
}

// ClearOrders empties the order history. Positions are kept.
func (l *Ledger) ClearOrders() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.orders = l.orders[:0]
}
