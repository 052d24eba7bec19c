package tradelab

import (
	"fmt"
	"sort"
)

// Position is the aggregate exposure of all open lots in one ticker. The
// average entry price is cost weighted, so it is always TotalCost over
// TotalQuantity regardless of the order lots were added in.
type Position struct {
	Ticker            string
	Direction         Direction
	TotalQuantity     Quantity
	TotalCost         Money
	AverageEntryPrice Money
	TotalFees         Money
	Lots              int
}

// MixedDirectionError reports an attempt to mix long and short lots of the
// same ticker in one position.
type MixedDirectionError struct {
	Ticker string
	Have   Direction
	Got    Direction
}

func (e *MixedDirectionError) Error() string {
	return fmt.Sprintf("mixed directions for %s: position is %s, lot is %s", e.Ticker, e.Have, e.Got)
}

// AggregatePositions folds open lots into one position per ticker. Closed
// lots are ignored. Positions are returned sorted by ticker.
//
// All lots of a ticker must share a direction; a conflict is reported as a
// *MixedDirectionError.
func AggregatePositions(lots []Lot) ([]Position, error) {
	byTicker := make(map[string]Position)
	for _, l := range lots {
		if l.Closed() {
			continue
		}
		p, err := byTicker[l.Ticker].AddLot(l)
		if err != nil {
			return nil, err
		}
		byTicker[l.Ticker] = p
	}

	tickers := make([]string, 0, len(byTicker))
	for t := range byTicker {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	positions := make([]Position, 0, len(byTicker))
	for _, t := range tickers {
		positions = append(positions, byTicker[t])
	}
	return positions, nil
}

// AddLot returns the position extended by one open lot. The zero Position is
// a valid starting point. Adding to a fold then deriving the average from the
// running totals guarantees that incremental aggregation equals aggregating
// the whole slice at once.
func (p Position) AddLot(l Lot) (Position, error) {
	if err := l.Validate(); err != nil {
		return Position{}, err
	}
	if l.Closed() {
		return Position{}, fmt.Errorf("lot %s is closed: positions aggregate open lots only", l.Ticker)
	}
	if p.Lots == 0 {
		p.Ticker = l.Ticker
		p.Direction = l.Direction
	} else {
		if p.Ticker != l.Ticker {
			return Position{}, fmt.Errorf("cannot add a %s lot to the %s position", l.Ticker, p.Ticker)
		}
		if p.Direction != l.Direction {
			return Position{}, &MixedDirectionError{Ticker: p.Ticker, Have: p.Direction, Got: l.Direction}
		}
	}
	p.TotalQuantity = p.TotalQuantity.Add(l.Quantity)
	p.TotalCost = p.TotalCost.Add(l.EntryPrice.Mul(l.Quantity))
	p.TotalFees = p.TotalFees.Add(l.Fees)
	p.AverageEntryPrice = p.TotalCost.Div(p.TotalQuantity)
	p.Lots++
	return p, nil
}

func (p Position) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("ticker", p.Ticker)
	w.Append("direction", p.Direction.String())
	w.Append("totalQuantity", p.TotalQuantity)
	w.Append("totalCost", p.TotalCost)
	w.Append("averageEntryPrice", p.AverageEntryPrice)
	w.Append("totalFees", p.TotalFees)
	w.Append("lots", p.Lots)
	return w.MarshalJSON()
}

// PositionView is a position marked against a current price. The price is
// supplied by the caller, positions never fetch data themselves.
type PositionView struct {
	Position
	CurrentPrice     Money
	CurrentValue     Money
	UnrealizedPnL    Money
	UnrealizedPnLPct Percent
}

// WithPrice marks the position against the given price.
func (p Position) WithPrice(current Money) PositionView {
	v := PositionView{Position: p, CurrentPrice: current}
	v.CurrentValue = current.Mul(p.TotalQuantity)
	pnl := v.CurrentValue.Sub(p.TotalCost)
	if p.Direction == Short {
		pnl = p.TotalCost.Sub(v.CurrentValue)
	}
	v.UnrealizedPnL = pnl
	v.UnrealizedPnLPct = pnl.PercentOf(p.TotalCost)
	return v
}

func (v PositionView) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(v.Position)
	w.Append("currentPrice", v.CurrentPrice)
	w.Append("currentValue", v.CurrentValue)
	w.Append("unrealizedPnL", v.UnrealizedPnL)
	w.Append("unrealizedPnLPercentage", v.UnrealizedPnLPct)
	return w.MarshalJSON()
}
