package positions

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/PaesslerAG/jsonpath"
)

// Snapshot is a consistent, read-only copy of a ledger's state.
type Snapshot struct {
	Currency   string
	Positions  []Position
	Orders     []Order
	TotalValue Money
}

// Snapshot captures the ledger state under a single lock, so positions,
// orders and total value always agree with each other.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	active := l.active()
	return Snapshot{
		Currency:   l.currency,
		Positions:  active,
		Orders:     slices.Clone(l.orders),
		TotalValue: total(l.currency, active),
	}
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("currency", s.Currency)
	w.Append("totalValue", s.TotalValue)
	w.Append("positions", nonNil(s.Positions))
	w.Append("orders", nonNil(s.Orders))
	return w.MarshalJSON()
}

// nonNil makes empty lists encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Query evaluates a JSONPath expression against the JSON form of the
// snapshot, e.g. "$.positions[?(@.quantity > 10)].instrument".
//
// Numbers are returned as float64, objects as map[string]any.
func (s Snapshot) Query(path string) (any, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("could not encode snapshot: %w", err)
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("could not decode snapshot: %w", err)
	}
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", path, err)
	}
	return v, nil
}
