package tradelab

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Journal is an ordered log of lot events. It is the plain-text native
// TradeStore: events append, lots materialize from them, and the whole log
// round-trips through a human readable JSONL file.
//
// All amounts in a journal share one currency, declared by an Init event and
// defaulting to USD.
type Journal struct {
	currency    string
	initialized bool
	events      []Event // sorted by date
}

func NewJournal() *Journal {
	return &Journal{currency: "USD"}
}

// Currency returns the journal currency.
func (j *Journal) Currency() string { return j.currency }

// Events iterates the events in chronological order.
func (j *Journal) Events() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for _, e := range j.events {
			if !yield(e) {
				return
			}
		}
	}
}

// Append validates and appends events one by one, then restores the
// chronological order. On error the events validated so far stay appended;
// callers treating the error as fatal should discard the journal.
func (j *Journal) Append(events ...Event) error {
	for _, e := range events {
		v, err := e.Validate(j)
		if err != nil {
			return fmt.Errorf("%s event: %w", e.What(), err)
		}
		j.events = append(j.events, v)
		if init, ok := v.(Init); ok {
			j.currency = init.Currency
			j.initialized = true
		}
	}
	stableSortEvents(j.events)
	return nil
}

// stableSortEvents orders events by date, keeping the original order of
// simultaneous events except that an open always precedes a close of the
// same instant, so replays never see a close before its open.
func stableSortEvents(events []Event) {
	sort.SliceStable(events, func(i, k int) bool {
		a, b := events[i], events[k]
		if !a.When().Equal(b.When()) {
			return a.When().Before(b.When())
		}
		return eventRank(a) < eventRank(b)
	})
}

func eventRank(e Event) int {
	switch e.What() {
	case EventInit:
		return 0
	case EventOpen:
		return 1
	default:
		return 2
	}
}

// Lots materializes the lots from the event log, in entry order.
func (j *Journal) Lots() []Lot {
	lots := make([]Lot, 0, len(j.events))
	index := make(map[string]int)
	for _, e := range j.events {
		switch t := e.(type) {
		case OpenLot:
			index[t.ID] = len(lots)
			lots = append(lots, t.Lot(j.currency))
		case CloseLot:
			if i, ok := index[t.ID]; ok {
				lots[i].ExitDate = t.Date
				lots[i].ExitPrice = M(t.Price, j.currency)
			}
		}
	}
	return lots
}

func (j *Journal) lot(id string) (Lot, bool) {
	for _, l := range j.Lots() {
		if l.ID == id {
			return l, true
		}
	}
	return Lot{}, false
}

var _ TradeStore = (*Journal)(nil)

// List implements TradeStore over the materialized lots.
func (j *Journal) List(_ context.Context, f Filter) ([]Lot, error) {
	var lots []Lot
	for _, l := range j.Lots() {
		if f.Match(l) {
			lots = append(lots, l)
		}
	}
	return lots, nil
}

// Create appends the lot's opening event, and its closing event too when the
// lot already carries an exit (imports of past history). A lot without an id
// gets one.
func (j *Journal) Create(_ context.Context, l Lot) (Lot, error) {
	if c := l.EntryPrice.Currency(); c != "" && c != j.currency {
		return Lot{}, fmt.Errorf("lot currency %s does not match journal currency %s", c, j.currency)
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	events := []Event{NewOpenLot(l.EntryDate, l.Memo, l.ID, l.Ticker, l.Direction, l.EntryPrice.value, l.Quantity, l.Fees.value)}
	if l.Closed() {
		events = append(events, NewCloseLot(l.ExitDate, "", l.ID, l.ExitPrice.value))
	}
	if err := j.Append(events...); err != nil {
		return Lot{}, err
	}
	created, _ := j.lot(l.ID)
	return created, nil
}

// CloseLot appends the closing event of an open lot.
func (j *Journal) CloseLot(_ context.Context, id string, exitDate time.Time, exitPrice Money) (Lot, error) {
	if c := exitPrice.Currency(); c != "" && c != j.currency {
		return Lot{}, fmt.Errorf("exit price currency %s does not match journal currency %s", c, j.currency)
	}
	if err := j.Append(NewCloseLot(exitDate, "", id, exitPrice.value)); err != nil {
		return Lot{}, err
	}
	closed, _ := j.lot(id)
	return closed, nil
}

// Delete removes the lot's events from the log. It reports whether anything
// was removed.
func (j *Journal) Delete(_ context.Context, id string) (bool, error) {
	kept := make([]Event, 0, len(j.events))
	removed := false
	for _, e := range j.events {
		switch t := e.(type) {
		case OpenLot:
			if t.ID == id {
				removed = true
				continue
			}
		case CloseLot:
			if t.ID == id {
				removed = true
				continue
			}
		}
		kept = append(kept, e)
	}
	j.events = kept
	return removed, nil
}

// LoadJournal reads a journal file. A missing file is not an error: it
// yields a fresh journal so the first command can run against a new path.
func LoadJournal(path string) (*Journal, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewJournal(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open journal: %w", err)
	}
	defer f.Close()
	j, err := DecodeJournal(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read journal %q: %w", path, err)
	}
	return j, nil
}

// SaveJournal writes the journal to a file in canonical form, creating the
// parent directory if needed.
func SaveJournal(path string, j *Journal) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create journal directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot write journal: %w", err)
	}
	if err := EncodeJournal(f, j); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
