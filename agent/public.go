package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/etnz/tradelab"
	"github.com/etnz/tradelab/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// newFacilitator creates the expert in charge of the conversation.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:        "Facilitator",
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here to understand his trading: what he holds, what his closed trades
			say about his performance, and what he should change. Check the journal first to
			understand which tickers he trades before answering anything about them.

			Devise a plan of questions to ask each expert and come up with the best response
			to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewTrader creates the market context expert, grounded in web search.
func NewTrader() *Expert {
	return &Expert{
		Name: "Trader",
		Description: `This is an expert trader,
		very well aware of all the financial products and institutions,
		and of the latest news about the different funds or companies.
		Ask the Trader whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in trading. You can search and find about anything related to
			financial institutions, companies, markets, funds etc. You leverage Google Search
			to ground your assertions in a solid truth.
			You can get the latest news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewQuant creates the expert in charge of the user's trade journal. It
// reads the journal at path through its function library.
func NewQuant(path string) *Expert {
	lib := []Function{lotsFunc(path), positionsFunc(path), reportFunc(path), insightsFunc(path)}

	return &Expert{
		Name: "Quant",
		Description: `This is the Quant. He is in charge of reading the user's trade journal.
		He can list lots, aggregate open positions, compute the full performance report and
		extract rule-based insights from it.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a quantitative analyst in charge of the user's trade journal.
				You know how to use the Tools to extract the relevant figures: the lots,
				the open positions, the performance report and its insights.
				You are part of a team of experts; yours is everything recorded in the journal.
				Pardon their approximative language and figure out what they meant.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// respond packs a markdown result, or the error, into a function response.
func respond(id, name, output string, err error) *genai.FunctionResponse {
	resp := &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{}}
	if err != nil {
		resp.Response["error"] = err.Error()
		return resp
	}
	resp.Response["output"] = output
	return resp
}

func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q is not a string as expected but %T", key, v)
	}
	return s, nil
}

func lotsFunc(path string) *Func {
	const name = "Lots"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Lots lists the trades recorded in the journal, with entry and exit,
			profit and loss, percentage return and holding days for each.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"ticker": {
						Type:        genai.TypeString,
						Description: "Only list lots of this ticker. All tickers by default.",
					},
					"status": {
						Type:        genai.TypeString,
						Description: `"open", "closed", or empty for both.`,
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of the matching lots.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			f := tradelab.Filter{}
			var err error
			if f.Ticker, err = stringArg(args, "ticker"); err != nil {
				return respond(id, name, "", err)
			}
			status, err := stringArg(args, "status")
			if err != nil {
				return respond(id, name, "", err)
			}
			switch status {
			case "open":
				f.Status = tradelab.StatusOpen
			case "closed":
				f.Status = tradelab.StatusClosed
			case "":
			default:
				return respond(id, name, "", fmt.Errorf("unknown status %q", status))
			}

			j, err := tradelab.LoadJournal(path)
			if err != nil {
				return respond(id, name, "", err)
			}
			lots, err := j.List(ctx, f)
			if err != nil {
				return respond(id, name, "", err)
			}
			views := make([]tradelab.LotView, 0, len(lots))
			for _, l := range lots {
				v, err := tradelab.NewLotView(l, time.Now())
				if err != nil {
					return respond(id, name, "", err)
				}
				views = append(views, v)
			}
			return respond(id, name, renderer.LotsMarkdown(views), nil)
		},
	}
}

func positionsFunc(path string) *Func {
	const name = "Positions"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Positions aggregates the open lots per ticker: total quantity, total
			cost, average entry price and fee total.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of the open positions.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			j, err := tradelab.LoadJournal(path)
			if err != nil {
				return respond(id, name, "", err)
			}
			positions, err := tradelab.AggregatePositions(j.Lots())
			if err != nil {
				return respond(id, name, "", err)
			}
			views := make([]tradelab.PositionView, 0, len(positions))
			for _, p := range positions {
				views = append(views, tradelab.PositionView{Position: p})
			}
			return respond(id, name, renderer.PositionsMarkdown(views), nil)
		},
	}
}

func reportFunc(path string) *Func {
	const name = "Report"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Report computes the performance report over the closed trades:
			win rate, total P&L, risk metrics (volatility, drawdown, Sharpe, Sortino, Calmar),
			factor attribution, rolling windows, behavioral scores and benchmark comparison.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The full performance report, markdown-formatted.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			r, err := journalReport(path)
			if err != nil {
				return respond(id, name, "", err)
			}
			return respond(id, name, renderer.ReportMarkdown(r), nil)
		},
	}
}

func insightsFunc(path string) *Func {
	const name = "Insights"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Insights extracts rule-based findings from the performance report:
			strengths, weaknesses and recommendations with confidence scores.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The insights, markdown-formatted.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			r, err := journalReport(path)
			if err != nil {
				return respond(id, name, "", err)
			}
			return respond(id, name, renderer.InsightsMarkdown(tradelab.GenerateInsights(r)), nil)
		},
	}
}

func journalReport(path string) (*tradelab.PerformanceReport, error) {
	j, err := tradelab.LoadJournal(path)
	if err != nil {
		return nil, err
	}
	return tradelab.NewAnalyzer().PerformanceReport(j.Lots())
}
