package tradelab

import (
	"fmt"
	"math"
	"time"
)

// Direction tells whether a lot profits from a rising (long) or a falling
// (short) price.
type Direction int

const (
	Long Direction = iota
	Short
)

// ParseDirection parses a direction from its string representation.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "long":
		return Long, nil
	case "short":
		return Short, nil
	default:
		return Long, fmt.Errorf("unknown direction %q (must be long or short)", s)
	}
}

func (d Direction) String() string {
	switch d {
	case Long:
		return "long"
	case Short:
		return "short"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Direction) UnmarshalText(text []byte) error {
	v, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Lot is the atomic unit of trade history: one entry into an instrument and,
// once closed, its matching exit. A partial exit is recorded as a separate
// lot, so a lot is never split.
//
// Exit fields are set together or not at all. All monetary fields share one
// currency, the journal's.
type Lot struct {
	ID         string
	Ticker     string
	Direction  Direction
	EntryDate  time.Time
	EntryPrice Money
	Quantity   Quantity
	Fees       Money
	ExitDate   time.Time // zero while the lot is open
	ExitPrice  Money     // zero while the lot is open
	Memo       string
}

// Closed reports whether the lot's exit has been recorded.
func (l Lot) Closed() bool { return !l.ExitDate.IsZero() || !l.ExitPrice.IsZero() }

// Validate checks the lot's structural invariants. It returns an
// *InvalidLotError describing the first violation found.
func (l Lot) Validate() error {
	if l.Ticker == "" {
		return &InvalidLotError{Reason: "missing ticker"}
	}
	if !l.Quantity.IsPositive() {
		return &InvalidLotError{Ticker: l.Ticker, Reason: "quantity must be positive"}
	}
	if !l.EntryPrice.IsPositive() {
		return &InvalidLotError{Ticker: l.Ticker, Reason: "entry price must be positive"}
	}
	if l.Fees.IsNegative() {
		return &InvalidLotError{Ticker: l.Ticker, Reason: "fees cannot be negative"}
	}
	if c := l.Fees.Currency(); c != "" && c != l.EntryPrice.Currency() {
		return &InvalidLotError{Ticker: l.Ticker, Reason: fmt.Sprintf("fees currency %s does not match entry price currency %s", c, l.EntryPrice.Currency())}
	}
	if l.ExitDate.IsZero() != l.ExitPrice.IsZero() {
		return &InvalidLotError{Ticker: l.Ticker, Reason: "exit date and exit price must be set together"}
	}
	if l.Closed() {
		if !l.ExitPrice.IsPositive() {
			return &InvalidLotError{Ticker: l.Ticker, Reason: "exit price must be positive"}
		}
		if l.ExitDate.Before(l.EntryDate) {
			return &InvalidLotError{Ticker: l.Ticker, Reason: "exit date is before entry date"}
		}
	}
	return nil
}

func (l Lot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("id", l.ID)
	w.Append("ticker", l.Ticker)
	w.Append("direction", l.Direction.String())
	w.Append("entryDate", l.EntryDate)
	w.Append("entryPrice", l.EntryPrice)
	w.Append("quantity", l.Quantity)
	w.Append("fees", l.Fees)
	if l.Closed() {
		w.Append("exitDate", l.ExitDate)
		w.Append("exitPrice", l.ExitPrice)
	}
	w.Optional("memo", l.Memo)
	return w.MarshalJSON()
}

// InvalidLotError reports a lot that violates a structural invariant.
type InvalidLotError struct {
	Ticker string
	Reason string
}

func (e *InvalidLotError) Error() string {
	if e.Ticker == "" {
		return "invalid lot: " + e.Reason
	}
	return fmt.Sprintf("invalid lot %s: %s", e.Ticker, e.Reason)
}

// LotView is a lot together with its derived values. Derived values are
// never stored, they are recomputed from the lot itself.
//
// For an open lot the profit fields are not meaningful and are left zero;
// Open marks them as such. HoldingDays of an open lot counts from the entry
// to the reference time passed to NewLotView, for display purposes.
type LotView struct {
	Lot
	EntryValue    Money
	ExitValue     Money
	ProfitLoss    Money
	ProfitLossPct Percent
	HoldingDays   int
	Open          bool
}

// NewLotView computes the derived values of a lot. The now argument is only
// used to measure the age of open lots.
func NewLotView(l Lot, now time.Time) (LotView, error) {
	if err := l.Validate(); err != nil {
		return LotView{}, err
	}
	v := LotView{Lot: l}
	v.EntryValue = l.EntryPrice.Mul(l.Quantity)
	if !l.Closed() {
		v.Open = true
		v.HoldingDays = daysBetween(l.EntryDate, now)
		return v, nil
	}
	v.ExitValue = l.ExitPrice.Mul(l.Quantity)
	gross := l.ExitPrice.Sub(l.EntryPrice)
	if l.Direction == Short {
		gross = l.EntryPrice.Sub(l.ExitPrice)
	}
	v.ProfitLoss = gross.Mul(l.Quantity).Sub(l.Fees)
	v.ProfitLossPct = v.ProfitLoss.PercentOf(v.EntryValue)
	v.HoldingDays = daysBetween(l.EntryDate, l.ExitDate)
	return v, nil
}

// MarshalJSON emits the lot fields plus the derived values. Profit fields
// are omitted for open lots since they are not meaningful there.
func (v LotView) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(v.Lot)
	w.Append("entryValue", v.EntryValue)
	w.Append("holdingPeriodDays", v.HoldingDays)
	w.Append("isOpen", v.Open)
	if !v.Open {
		w.Append("exitValue", v.ExitValue)
		w.Append("profitLoss", v.ProfitLoss)
		w.Append("profitLossPercentage", v.ProfitLossPct)
	}
	return w.MarshalJSON()
}

// daysBetween counts the days from one instant to another, rounding any
// started day up. It is never negative.
func daysBetween(from, to time.Time) int {
	if !to.After(from) {
		return 0
	}
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}
