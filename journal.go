package positions

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/etnz/positions/date"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Command identifies the kind of a journal entry.
type Command string

const (
	CmdBuy            Command = "buy"
	CmdSell           Command = "sell"
	CmdClearPositions Command = "clear-positions"
	CmdClearOrders    Command = "clear-orders"
)

// Entry is one line of a journal: an Order or a Clear.
type Entry interface {
	What() Command
	When() date.Date
}

// Clear resets either the positions or the order history of a ledger.
type Clear struct {
	Command Command   `json:"command"`
	Date    date.Date `json:"date"`
	Memo    string    `json:"memo,omitempty"`
}

// NewClearPositions creates an entry closing every position.
func NewClearPositions(day date.Date, memo string) Clear {
	return Clear{Command: CmdClearPositions, Date: day, Memo: memo}
}

// NewClearOrders creates an entry erasing the order history.
func NewClearOrders(day date.Date, memo string) Clear {
	return Clear{Command: CmdClearOrders, Date: day, Memo: memo}
}

func (c Clear) What() Command   { return c.Command }
func (c Clear) When() date.Date { return c.Date }

// Apply performs the reset on l.
func (c Clear) Apply(l *Ledger) error {
	switch c.Command {
	case CmdClearPositions:
		l.ClearPositions()
	case CmdClearOrders:
		l.ClearOrders()
	default:
		return fmt.Errorf("not a clear command: %q", c.Command)
	}
	return nil
}

func (c Clear) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", c.Command)
	w.Append("date", c.Date)
	w.Optional("memo", c.Memo)
	return w.MarshalJSON()
}

// DecodeJournal reads a JSONL journal. Entries are returned in file order,
// which is the order in which they were recorded; they are not sorted by date.
func DecodeJournal(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		b := scanner.Bytes()
		if len(b) == 0 {
			continue
		}
		var id struct {
			Command Command `json:"command"`
		}
		if err := json.Unmarshal(b, &id); err != nil {
			return nil, fmt.Errorf("line %d: could not identify command in %q: %w", line, string(b), err)
		}

		var e Entry
		switch id.Command {
		case CmdBuy, CmdSell:
			var o Order
			if err := json.Unmarshal(b, &o); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			e = o
		case CmdClearPositions, CmdClearOrders:
			var c Clear
			if err := json.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			e = c
		default:
			return nil, fmt.Errorf("line %d: unknown journal command: %q", line, id.Command)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return entries, nil
}

// EncodeEntry writes e as a single JSONL line.
func EncodeEntry(w io.Writer, e Entry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal %s entry: %w", e.What(), err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("failed to write %s entry: %w", e.What(), err)
	}
	return nil
}

// EncodeJournal writes all entries, in order.
func EncodeJournal(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		if err := EncodeEntry(w, e); err != nil {
			return err
		}
	}
	return nil
}

// Replay applies entries to l in order. A rejected order does not stop the
// replay: it is logged and the ledger moves on to the next entry. If any
// entry was rejected, the returned error is a *ReplayError listing them all.
func Replay(l *Ledger, entries []Entry) error {
	var rejected []error
	for i, e := range entries {
		var err error
		switch v := e.(type) {
		case Order:
			err = l.Record(v)
		case Clear:
			err = v.Apply(l)
		default:
			err = fmt.Errorf("unsupported journal entry %T", e)
		}
		if err != nil {
			log.WithFields(log.Fields{"entry": i + 1, "command": e.What(), "date": e.When()}).Warn(err)
			rejected = append(rejected, fmt.Errorf("entry %d: %w", i+1, err))
		}
	}
	if len(rejected) == 0 {
		return nil
	}
	return &ReplayError{Entries: len(entries), Rejected: rejected}
}
