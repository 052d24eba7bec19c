package tradelab

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Classification buckets used by the factor metrics.
const (
	SectorTechnology = "technology"
	SectorOther      = "other"

	SizeLarge = "large"
	SizeMid   = "mid"
)

// Classification places a ticker in a sector and a market-cap tier.
type Classification struct {
	Sector   string `yaml:"sector" json:"sector"`
	SizeTier string `yaml:"size" json:"sizeTier"`
}

// SecurityClassifier maps tickers to classifications. The factor metrics
// only compare buckets, so any consistent mapping works; implementations
// must return a usable zero-knowledge default for unknown tickers.
type SecurityClassifier interface {
	Classify(ticker string) Classification
}

// StaticClassifier classifies from fixed tables. Unknown tickers fall back
// to SectorOther and SizeMid.
type StaticClassifier struct {
	Sectors map[string]string `yaml:"sectors"`
	Sizes   map[string]string `yaml:"sizes"`
}

func (c *StaticClassifier) Classify(ticker string) Classification {
	cl := Classification{Sector: SectorOther, SizeTier: SizeMid}
	if s, ok := c.Sectors[ticker]; ok {
		cl.Sector = s
	}
	if s, ok := c.Sizes[ticker]; ok {
		cl.SizeTier = s
	}
	return cl
}

// DefaultClassifier returns the built-in tables: a handful of well known
// technology and large-cap tickers. It is intentionally small; load a YAML
// file with LoadClassifier to cover a real universe.
func DefaultClassifier() *StaticClassifier {
	return &StaticClassifier{
		Sectors: map[string]string{
			"AAPL":  SectorTechnology,
			"MSFT":  SectorTechnology,
			"GOOGL": SectorTechnology,
			"AMZN":  SectorTechnology,
			"META":  SectorTechnology,
			"NVDA":  SectorTechnology,
			"TSLA":  SectorTechnology,
			"AMD":   SectorTechnology,
			"CRM":   SectorTechnology,
			"INTC":  SectorTechnology,
		},
		Sizes: map[string]string{
			"AAPL":  SizeLarge,
			"MSFT":  SizeLarge,
			"GOOGL": SizeLarge,
			"AMZN":  SizeLarge,
			"META":  SizeLarge,
			"NVDA":  SizeLarge,
			"BRK.B": SizeLarge,
			"JPM":   SizeLarge,
			"JNJ":   SizeLarge,
			"V":     SizeLarge,
			"XOM":   SizeLarge,
			"WMT":   SizeLarge,
		},
	}
}

// LoadClassifier reads classification tables from a YAML file:
//
//	sectors:
//	  AAPL: technology
//	sizes:
//	  AAPL: large
func LoadClassifier(path string) (*StaticClassifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read classifier file: %w", err)
	}
	c := &StaticClassifier{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("cannot parse classifier file %q: %w", path, err)
	}
	return c, nil
}
