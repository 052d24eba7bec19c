package tradelab

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventType is a typed string identifying journal events.
type EventType string

const (
	EventInit  EventType = "init"
	EventOpen  EventType = "open"
	EventClose EventType = "close"
)

// Event is one line of the journal: the opening or closing of a lot, or the
// journal initialization.
type Event interface {
	What() EventType // What returns the event type ("open", "close", ...).
	When() time.Time // When returns the instant the event took place.
	Equal(Event) bool
	// Validate checks the event against the journal it is being appended
	// to. It returns the event to store, possibly quick-fixed (missing
	// date, missing lot id).
	Validate(j *Journal) (Event, error)
}

type baseEvent struct {
	Command EventType `json:"command"`
	Date    time.Time `json:"date"`
	Memo    string    `json:"memo,omitempty"`
}

func (e baseEvent) What() EventType { return e.Command }
func (e baseEvent) When() time.Time { return e.Date }

func (e baseEvent) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", e.Command)
	w.Append("date", e.Date)
	w.Optional("memo", e.Memo)
	return w.MarshalJSON()
}

func (e baseEvent) equal(o baseEvent) bool {
	return e.Command == o.Command && e.Date.Equal(o.Date) && e.Memo == o.Memo
}

// Validate sets the date to now if it is zero. It is meant to be called by
// the event validation methods.
func (e *baseEvent) validate() {
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
}

// Init declares the journal currency. At most one per journal; without it
// the journal runs in USD.
type Init struct {
	baseEvent
	Currency string `json:"currency"`
}

// NewInit creates a new Init event.
func NewInit(day time.Time, memo, currency string) Init {
	return Init{
		baseEvent: baseEvent{Command: EventInit, Date: day, Memo: memo},
		Currency:  currency,
	}
}

func (e Init) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(e.baseEvent)
	w.Append("currency", e.Currency)
	return w.MarshalJSON()
}

func (e Init) Equal(other Event) bool {
	o, ok := other.(Init)
	return ok && e.baseEvent.equal(o.baseEvent) && e.Currency == o.Currency
}

// Validate defaults the currency to USD and rejects a second init.
func (e Init) Validate(j *Journal) (Event, error) {
	e.baseEvent.validate()
	if e.Currency == "" {
		e.Currency = "USD"
	}
	if j.initialized {
		return e, fmt.Errorf("journal currency is already %s", j.currency)
	}
	return e, nil
}

// OpenLot records the entry into an instrument. Price and fees are bare
// decimals: the journal currency applies to every event.
type OpenLot struct {
	baseEvent
	ID        string          `json:"id"`
	Ticker    string          `json:"ticker"`
	Direction Direction       `json:"direction"`
	Price     decimal.Decimal `json:"price"`
	Quantity  Quantity        `json:"quantity"`
	Fees      decimal.Decimal `json:"fees"`
}

// NewOpenLot creates a new OpenLot event. An empty id is assigned one during
// validation.
func NewOpenLot(day time.Time, memo, id, ticker string, direction Direction, price decimal.Decimal, quantity Quantity, fees decimal.Decimal) OpenLot {
	return OpenLot{
		baseEvent: baseEvent{Command: EventOpen, Date: day, Memo: memo},
		ID:        id,
		Ticker:    ticker,
		Direction: direction,
		Price:     price,
		Quantity:  quantity,
		Fees:      fees,
	}
}

func (e OpenLot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(e.baseEvent)
	w.Append("id", e.ID)
	w.Append("ticker", e.Ticker)
	w.Append("direction", e.Direction.String())
	w.Append("price", e.Price)
	w.Append("quantity", e.Quantity)
	w.Optional("fees", e.Fees)
	return w.MarshalJSON()
}

func (e OpenLot) Equal(other Event) bool {
	o, ok := other.(OpenLot)
	return ok && e.baseEvent.equal(o.baseEvent) && e.ID == o.ID && e.Ticker == o.Ticker &&
		e.Direction == o.Direction && e.Price.Equal(o.Price) &&
		e.Quantity.Equal(o.Quantity) && e.Fees.Equal(o.Fees)
}

// Lot materializes the event as an open lot in the given currency.
func (e OpenLot) Lot(currency string) Lot {
	return Lot{
		ID:         e.ID,
		Ticker:     e.Ticker,
		Direction:  e.Direction,
		EntryDate:  e.Date,
		EntryPrice: M(e.Price, currency),
		Quantity:   e.Quantity,
		Fees:       M(e.Fees, currency),
		Memo:       e.Memo,
	}
}

// Validate assigns an id when missing, rejects a duplicate id, and checks
// the lot fields.
func (e OpenLot) Validate(j *Journal) (Event, error) {
	e.baseEvent.validate()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if _, ok := j.lot(e.ID); ok {
		return e, fmt.Errorf("lot id %q is already used", e.ID)
	}
	if err := e.Lot(j.currency).Validate(); err != nil {
		return e, err
	}
	return e, nil
}

// CloseLot records the exit of an open lot, identified by its id.
type CloseLot struct {
	baseEvent
	ID    string          `json:"id"`
	Price decimal.Decimal `json:"price"`
}

// NewCloseLot creates a new CloseLot event.
func NewCloseLot(day time.Time, memo, id string, price decimal.Decimal) CloseLot {
	return CloseLot{
		baseEvent: baseEvent{Command: EventClose, Date: day, Memo: memo},
		ID:        id,
		Price:     price,
	}
}

func (e CloseLot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(e.baseEvent)
	w.Append("id", e.ID)
	w.Append("price", e.Price)
	return w.MarshalJSON()
}

func (e CloseLot) Equal(other Event) bool {
	o, ok := other.(CloseLot)
	return ok && e.baseEvent.equal(o.baseEvent) && e.ID == o.ID && e.Price.Equal(o.Price)
}

// Validate checks that the id references an open lot and that the resulting
// closed lot is sound (positive price, exit not before entry).
func (e CloseLot) Validate(j *Journal) (Event, error) {
	e.baseEvent.validate()
	if e.ID == "" {
		return e, errors.New("close event needs a lot id")
	}
	l, ok := j.lot(e.ID)
	if !ok {
		return e, fmt.Errorf("no lot with id %q", e.ID)
	}
	if l.Closed() {
		return e, fmt.Errorf("lot %q is already closed", e.ID)
	}
	l.ExitDate = e.Date
	l.ExitPrice = M(e.Price, j.currency)
	if err := l.Validate(); err != nil {
		return e, err
	}
	return e, nil
}
