package tradelab

import (
	"context"
	"time"
)

// Status selects lots by lifecycle in a Filter.
type Status int

const (
	StatusAny Status = iota
	StatusOpen
	StatusClosed
)

// Filter narrows a lot listing. The zero Filter matches everything. Date
// bounds apply to the entry date and are inclusive; a zero bound is open.
type Filter struct {
	Ticker string
	Status Status
	From   time.Time
	To     time.Time
}

// Match reports whether the lot passes the filter.
func (f Filter) Match(l Lot) bool {
	if f.Ticker != "" && f.Ticker != l.Ticker {
		return false
	}
	switch f.Status {
	case StatusOpen:
		if l.Closed() {
			return false
		}
	case StatusClosed:
		if !l.Closed() {
			return false
		}
	}
	if !f.From.IsZero() && l.EntryDate.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && l.EntryDate.After(f.To) {
		return false
	}
	return true
}

// TradeStore is the persistence boundary for lots. The calculators never
// touch it: callers list lots out of a store and hand the slice over.
//
// Create assigns the lot an ID when it has none and returns the stored lot.
// CloseLot records the exit of an open lot. Delete reports whether a lot
// was actually removed.
type TradeStore interface {
	List(ctx context.Context, f Filter) ([]Lot, error)
	Create(ctx context.Context, l Lot) (Lot, error)
	CloseLot(ctx context.Context, id string, exitDate time.Time, exitPrice Money) (Lot, error)
	Delete(ctx context.Context, id string) (bool, error)
}
