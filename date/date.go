// Package date provides a calendar day type used to stamp orders.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// Format is the canonical ISO-8601 layout used to write dates.
const Format = "2006-01-02"

// read layouts, tried in order. The first one is lenient on zero padding
// (2025-7-1), the second accepts the day/month/year notation (1/7/2025).
var layouts = []string{"2006-1-2", "2/1/2006"}

// Date is a day in the proleptic Gregorian calendar. The zero value is
// "no date".
type Date struct {
	y int
	m time.Month
	d int
}

// New returns the normalized Date for year, month and day. Overflowing
// values roll over like time.Date does (New(2025, 1, 32) is February 1st).
func New(year int, month time.Month, day int) Date {
	y, m, d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return Date{y, m, d}
}

// Today returns the current local day.
func Today() Date { return New(time.Now().Date()) }

func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

func (d Date) Year() int          { return d.y }
func (d Date) Month() time.Month  { return d.m }
func (d Date) Day() int           { return d.d }
func (d Date) IsZero() bool       { return d == Date{} }
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }
func (d Date) After(x Date) bool  { return d.time().After(x.time()) }

// Add returns the date n days after d (or before, when n is negative).
func (d Date) Add(n int) Date { return New(d.y, d.m, d.d+n) }

// String formats the date as YYYY-MM-DD. The zero Date is "".
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(Format)
}

// Parse reads a date either as YYYY-M-D or as D/M/YYYY.
func Parse(s string) (Date, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return New(t.Date()), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q want format %q or %q", s, layouts[0], layouts[1])
}

// MustParse is like Parse but panics on error. Meant for tests and constants.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// MarshalJSON writes the date as "YYYY-MM-DD", and the zero Date as "".
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

var (
	_ json.Marshaler   = Date{}
	_ json.Unmarshaler = (*Date)(nil)
)
