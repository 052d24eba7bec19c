package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/tradelab"
	md "github.com/nao1215/markdown"
)

func PositionsMarkdown(views []tradelab.PositionView) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Positions")

	if len(views) == 0 {
		doc.PlainText("No open positions.")
		return doc.String()
	}

	// Price columns only appear when at least one position carries a price:
	// the caller may have skipped the market data lookup entirely.
	priced := false
	for _, v := range views {
		if !v.CurrentPrice.IsZero() {
			priced = true
			break
		}
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Ticker", "Dir", "Qty", "Avg Price", "Cost", "Fees", "Lots"},
	}
	if priced {
		table.Alignment = append(table.Alignment, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight)
		table.Header = append(table.Header, "Price", "Value", "Unrealized", "Return")
	}

	for _, v := range views {
		row := []string{
			v.Ticker,
			v.Direction.String(),
			v.TotalQuantity.String(),
			v.AverageEntryPrice.String(),
			v.TotalCost.String(),
			v.TotalFees.String(),
			fmt.Sprintf("%d", v.Lots),
		}
		if priced {
			if v.CurrentPrice.IsZero() {
				row = append(row, "-", "-", "-", "-")
			} else {
				row = append(row,
					v.CurrentPrice.String(),
					v.CurrentValue.String(),
					v.UnrealizedPnL.SignedString(),
					v.UnrealizedPnLPct.SignedString(),
				)
			}
		}
		table.Rows = append(table.Rows, row)
	}
	doc.Table(table)

	return doc.String()
}
