package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradelab"
	"github.com/etnz/tradelab/renderer"
	"github.com/google/subcommands"
)

// insightsCmd holds the flags for the 'insights' subcommand. It computes the
// same report as 'report' and runs the insight rules over it.
type insightsCmd struct {
	report reportCmd
}

func (*insightsCmd) Name() string     { return "insights" }
func (*insightsCmd) Synopsis() string { return "extract findings from the performance report" }
func (*insightsCmd) Usage() string {
	return `insights [-rf <rate>] [-benchmark <return>] [-classifier <file>]

  Runs the rule-based insight generator over the performance report:
  strengths, weaknesses and recommendations, each with a confidence score.
`
}

func (c *insightsCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.report.riskFree, "rf", tradelab.DefaultRiskFreeRate, "Risk-free rate, in percentage points")
	f.Float64Var(&c.report.benchmark, "benchmark", tradelab.DefaultBenchmarkReturn, "Benchmark return, in percentage points")
	f.StringVar(&c.report.classifier, "classifier", "", "YAML file mapping tickers to sectors and size tiers")
}

func (c *insightsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := c.report.generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.InsightsMarkdown(tradelab.GenerateInsights(report)))
	return subcommands.ExitSuccess
}
