package positions

import (
	"errors"
	"fmt"
)

// Errors reported by Ledger.Record. They are all recoverable: a rejected
// order leaves the ledger exactly as it was.
var (
	// ErrUnknownInstrument is returned when selling an instrument with no open position.
	ErrUnknownInstrument = errors.New("no open position for instrument")
	// ErrInsufficientQuantity is returned when a sell exceeds the open quantity.
	// Partial fills are not supported, the whole order is rejected.
	ErrInsufficientQuantity = errors.New("insufficient quantity to sell")
	// ErrInvalidOrder is returned for malformed orders.
	ErrInvalidOrder = errors.New("invalid order")
)

// OrderError reports the order that a ledger rejected and why.
type OrderError struct {
	Order Order
	Err   error
}

func (e *OrderError) Error() string {
	o := e.Order
	return fmt.Sprintf("%s %s %s on %s: %v", o.Side, o.Quantity, o.Instrument, o.Date, e.Err)
}

func (e *OrderError) Unwrap() error { return e.Err }

// ReplayError lists the journal entries that a replay could not apply.
type ReplayError struct {
	Entries  int     // Entries is the number of entries replayed.
	Rejected []error // Rejected holds one error per rejected entry, in journal order.
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("%d of %d entries rejected: %v", len(e.Rejected), e.Entries, errors.Join(e.Rejected...))
}

func (e *ReplayError) Unwrap() []error { return e.Rejected }
