package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/tradelab"
	md "github.com/nao1215/markdown"
)

// ReportMarkdown renders the full performance report, one section per metric
// family.
func ReportMarkdown(r *tradelab.PerformanceReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Performance Report")

	if r.TotalTrades == 0 {
		doc.PlainText("No closed lots to analyze.")
		return doc.String()
	}

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Closed Trades"), md.Bold(fmt.Sprintf("%d", r.TotalTrades))},
		Rows: [][]string{
			{"Winning / Losing", fmt.Sprintf("%d / %d", r.WinningTrades, r.LosingTrades)},
			{"Win Rate", fmt.Sprintf("%.1f%%", r.WinRate*100)},
			{"Total P&L", r.TotalPnL.SignedString()},
			{"Average Return", r.AverageReturn.SignedString()},
			{"Average Win", r.AverageWin.String()},
			{"Average Loss", r.AverageLoss.String()},
		},
	})

	doc.H2("Risk")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Volatility", r.Volatility.String()},
			{"Downside Deviation", r.DownsideDeviation.String()},
			{"Max Drawdown", r.MaxDrawdown.String()},
			{"Sharpe Ratio", fmt.Sprintf("%.2f", r.SharpeRatio)},
			{"Sortino Ratio", fmt.Sprintf("%.2f", r.SortinoRatio)},
			{"Calmar Ratio", fmt.Sprintf("%.2f", r.CalmarRatio)},
			{"Information Ratio", fmt.Sprintf("%.2f", r.InformationRatio)},
		},
	})

	doc.H2("Factor Attribution")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Factor", "Exposure"},
		Rows: [][]string{
			{"Market Timing", fmt.Sprintf("%.2f", r.MarketTiming)},
			{"Stock Selection", fmt.Sprintf("%.2f", r.StockSelection)},
			{"Sector Allocation", fmt.Sprintf("%.2f", r.SectorAllocation)},
			{"Size", fmt.Sprintf("%.2f", r.SizeFactor)},
			{"Momentum", fmt.Sprintf("%.2f", r.MomentumFactor)},
		},
	})

	if len(r.Periods) > 0 {
		doc.H2("Rolling Windows")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Start", "End", "Return", "Volatility", "Sharpe", "Drawdown"},
		}
		for _, p := range r.Periods {
			table.Rows = append(table.Rows, []string{
				p.Start.Format("2006-01-02"),
				p.End.Format("2006-01-02"),
				p.Return.SignedString(),
				p.Volatility.String(),
				fmt.Sprintf("%.2f", p.Sharpe),
				p.MaxDrawdown.String(),
			})
		}
		doc.Table(table)
		doc.PlainText(fmt.Sprintf("Best window starts %s (%s), worst starts %s (%s).",
			r.BestPeriod.Start.Format("2006-01-02"), r.BestPeriod.Return.SignedString(),
			r.WorstPeriod.Start.Format("2006-01-02"), r.WorstPeriod.Return.SignedString()))
	}

	doc.H2("Behavior")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Average Holding Period", fmt.Sprintf("%.1f days", r.AverageHoldingPeriod)},
			{"Trade Frequency", fmt.Sprintf("%.1f trades/month", r.TradeFrequency)},
			{"Position Sizing Consistency", fmt.Sprintf("%.2f", r.PositionSizingConsistency)},
			{"Risk Tolerance", fmt.Sprintf("%.2f", r.RiskTolerance)},
			{"Emotional Control", fmt.Sprintf("%.2f", r.EmotionalControl)},
		},
	})

	doc.H2("Against Benchmark")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Excess Return", r.ExcessReturn.SignedString()},
			{"Tracking Error", r.TrackingError.String()},
			{"Beta", fmt.Sprintf("%.2f", r.Beta)},
			{"Alpha", r.Alpha.SignedString()},
		},
	})

	return doc.String()
}
