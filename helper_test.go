package tradelab

import "time"

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// day is a helper for test to create a date from consts
func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// long is a helper for test to create a closed long lot in one line.
func long(ticker string, entry time.Time, price float64, qty int, fees float64, exit time.Time, exitPrice float64) Lot {
	return Lot{
		Ticker:     ticker,
		Direction:  Long,
		EntryDate:  entry,
		EntryPrice: USD(price),
		Quantity:   Q(qty),
		Fees:       USD(fees),
		ExitDate:   exit,
		ExitPrice:  USD(exitPrice),
	}
}

// short is the closed short lot counterpart of long.
func short(ticker string, entry time.Time, price float64, qty int, fees float64, exit time.Time, exitPrice float64) Lot {
	l := long(ticker, entry, price, qty, fees, exit, exitPrice)
	l.Direction = Short
	return l
}

// openLot is a helper for test to create a still open lot in one line.
func openLot(ticker string, d Direction, entry time.Time, price float64, qty int) Lot {
	return Lot{
		Ticker:     ticker,
		Direction:  d,
		EntryDate:  entry,
		EntryPrice: USD(price),
		Quantity:   Q(qty),
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
