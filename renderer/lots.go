package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/tradelab"
	md "github.com/nao1215/markdown"
)

func LotsMarkdown(views []tradelab.LotView) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Lots")

	var open, closed []tradelab.LotView
	for _, v := range views {
		if v.Open {
			open = append(open, v)
		} else {
			closed = append(closed, v)
		}
	}

	if len(open) > 0 {
		doc.H2("Open")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"ID", "Ticker", "Dir", "Entry", "Qty", "Price", "Value", "Days"},
		}
		for _, v := range open {
			table.Rows = append(table.Rows, []string{
				v.ID,
				v.Ticker,
				v.Direction.String(),
				v.EntryDate.Format("2006-01-02"),
				v.Quantity.String(),
				v.EntryPrice.String(),
				v.EntryValue.String(),
				fmt.Sprintf("%d", v.HoldingDays),
			})
		}
		doc.Table(table)
	}

	if len(closed) > 0 {
		doc.H2("Closed")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignLeft,
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"ID", "Ticker", "Dir", "Entry", "Exit", "Qty", "P&L", "Return", "Days"},
		}
		for _, v := range closed {
			table.Rows = append(table.Rows, []string{
				v.ID,
				v.Ticker,
				v.Direction.String(),
				v.EntryDate.Format("2006-01-02"),
				v.ExitDate.Format("2006-01-02"),
				v.Quantity.String(),
				v.ProfitLoss.SignedString(),
				v.ProfitLossPct.SignedString(),
				fmt.Sprintf("%d", v.HoldingDays),
			})
		}
		doc.Table(table)
	}

	if len(views) == 0 {
		doc.PlainText("No lots recorded.")
	}

	return doc.String()
}
