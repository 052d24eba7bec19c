package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradelab"
	"github.com/etnz/tradelab/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	riskFree   float64
	benchmark  float64
	classifier string
	asJSON     bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "compute the performance report over closed lots" }
func (*reportCmd) Usage() string {
	return `report [-rf <rate>] [-benchmark <return>] [-classifier <file>] [-json]

  Computes win rate, P&L, risk metrics, factor attribution, rolling windows,
  behavioral scores and benchmark comparison over the closed lots.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.riskFree, "rf", tradelab.DefaultRiskFreeRate, "Risk-free rate, in percentage points")
	f.Float64Var(&c.benchmark, "benchmark", tradelab.DefaultBenchmarkReturn, "Benchmark return, in percentage points")
	f.StringVar(&c.classifier, "classifier", "", "YAML file mapping tickers to sectors and size tiers")
	f.BoolVar(&c.asJSON, "json", false, "Print the report as JSON instead of markdown")
}

// analyzer builds the analyzer the flags describe.
func (c *reportCmd) analyzer() (*tradelab.Analyzer, error) {
	a := tradelab.NewAnalyzer()
	a.RiskFreeRate = c.riskFree
	a.BenchmarkReturn = c.benchmark
	if c.classifier != "" {
		cls, err := tradelab.LoadClassifier(c.classifier)
		if err != nil {
			return nil, fmt.Errorf("loading classifier: %w", err)
		}
		a.Classifier = cls
	}
	return a, nil
}

// generate lists every lot out of the store and computes the report.
func (c *reportCmd) generate(ctx context.Context) (*tradelab.PerformanceReport, error) {
	a, err := c.analyzer()
	if err != nil {
		return nil, err
	}
	st, err := openStore()
	if err != nil {
		return nil, err
	}
	defer st.Close()
	lots, err := st.List(ctx, tradelab.Filter{})
	if err != nil {
		return nil, err
	}
	return a.PerformanceReport(lots)
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := c.generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.asJSON {
		b, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(b))
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.ReportMarkdown(report))
	return subcommands.ExitSuccess
}
