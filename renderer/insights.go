package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/tradelab"
	md "github.com/nao1215/markdown"
)

func InsightsMarkdown(insights []tradelab.Insight) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Insights")

	if len(insights) == 0 {
		doc.PlainText("Not enough closed lots to say anything useful yet.")
		return doc.String()
	}

	for _, in := range insights {
		doc.H2(fmt.Sprintf("%s %s", impactMark(in.Impact), in.Title))
		doc.PlainText(in.Description)
		if in.Recommendation != "" {
			doc.PlainText(md.Bold("Recommendation:") + " " + in.Recommendation)
		}
		doc.PlainText(fmt.Sprintf("_%s impact, %d%% confidence_", in.Impact, in.Confidence))
	}

	return doc.String()
}

func impactMark(i tradelab.Impact) string {
	switch i {
	case tradelab.ImpactPositive:
		return "✓"
	case tradelab.ImpactNegative:
		return "✗"
	default:
		return "•"
	}
}
