package positions

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/positions/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Side tells whether an order buys or sells.
type Side int

const (
	Buy Side = iota + 1
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// ParseSide parses "buy" or "sell", case insensitive.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown order side: %q", s)
	}
}

// Order is a single buy or sell execution.
//
// Orders are values: the ledger keeps its own copy and never modifies it.
type Order struct {
	ID         string    // ID is a random UUID assigned at construction.
	Date       date.Date // Date is the day the order was executed.
	Instrument string    // Instrument is the ticker symbol.
	Side       Side
	Quantity   Quantity // Quantity is the number of units, always positive.
	Price      Money    // Price is the price paid or received per unit.
	Memo       string   // Memo is an optional note.
}

// NewOrder creates an order with a fresh ID.
func NewOrder(side Side, day date.Date, memo, instrument string, quantity Quantity, price Money) Order {
	return Order{
		ID:         uuid.NewString(),
		Date:       day,
		Instrument: instrument,
		Side:       side,
		Quantity:   quantity,
		Price:      price,
		Memo:       memo,
	}
}

// NewBuy creates a buy order.
func NewBuy(day date.Date, memo, instrument string, quantity Quantity, price Money) Order {
	return NewOrder(Buy, day, memo, instrument, quantity, price)
}

// NewSell creates a sell order.
func NewSell(day date.Date, memo, instrument string, quantity Quantity, price Money) Order {
	return NewOrder(Sell, day, memo, instrument, quantity, price)
}

// What returns the journal command of this order.
func (o Order) What() Command {
	if o.Side == Sell {
		return CmdSell
	}
	return CmdBuy
}

// When returns the order date.
func (o Order) When() date.Date { return o.Date }

// Amount is the total cost (buy) or proceeds (sell) of the order.
func (o Order) Amount() Money { return o.Price.Mul(o.Quantity) }

// Equal reports whether o and p hold the same values.
func (o Order) Equal(p Order) bool {
	return o.ID == p.ID && o.Date == p.Date && o.Instrument == p.Instrument &&
		o.Side == p.Side && o.Quantity.Equal(p.Quantity) && o.Price.Equal(p.Price) && o.Memo == p.Memo
}

// Validate checks the order on its own, independently of any ledger.
// All failures are reported, each wrapping ErrInvalidOrder.
func (o Order) Validate() error {
	var errs []error
	if o.Date.IsZero() {
		errs = append(errs, fmt.Errorf("%w: date is missing", ErrInvalidOrder))
	}
	if strings.TrimSpace(o.Instrument) == "" {
		errs = append(errs, fmt.Errorf("%w: instrument is missing", ErrInvalidOrder))
	}
	if o.Side != Buy && o.Side != Sell {
		errs = append(errs, fmt.Errorf("%w: unknown side %d", ErrInvalidOrder, o.Side))
	}
	if !o.Quantity.IsPositive() {
		errs = append(errs, fmt.Errorf("%w: quantity must be positive, got %s", ErrInvalidOrder, o.Quantity))
	}
	if !o.Price.IsPositive() {
		errs = append(errs, fmt.Errorf("%w: price must be positive, got %s", ErrInvalidOrder, o.Price.Decimal()))
	}
	return errors.Join(errs...)
}

// MarshalJSON writes the order as a journal line object.
func (o Order) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", o.What())
	w.Append("date", o.Date)
	w.Optional("id", o.ID)
	w.Append("instrument", o.Instrument)
	w.Append("quantity", o.Quantity)
	w.Append("price", o.Price.value)
	w.Optional("currency", o.Price.cur)
	w.Optional("memo", o.Memo)
	return w.MarshalJSON()
}

// UnmarshalJSON reads an order written by MarshalJSON.
func (o *Order) UnmarshalJSON(data []byte) error {
	var temp struct {
		Command    Command         `json:"command"`
		Date       date.Date       `json:"date"`
		ID         string          `json:"id"`
		Instrument string          `json:"instrument"`
		Quantity   Quantity        `json:"quantity"`
		Price      decimal.Decimal `json:"price"`
		Currency   string          `json:"currency"`
		Memo       string          `json:"memo"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	side, err := ParseSide(string(temp.Command))
	if err != nil {
		return err
	}
	*o = Order{
		ID:         temp.ID,
		Date:       temp.Date,
		Instrument: temp.Instrument,
		Side:       side,
		Quantity:   temp.Quantity,
		Price:      M(temp.Price, temp.Currency),
		Memo:       temp.Memo,
	}
	return nil
}

// ByInstrument selects orders on instrument.
func ByInstrument(instrument string) func(Order) bool {
	return func(o Order) bool { return o.Instrument == instrument }
}

// BySide selects orders of the given side.
func BySide(side Side) func(Order) bool {
	return func(o Order) bool { return o.Side == side }
}
