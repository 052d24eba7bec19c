package tradelab

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultClassifier(t *testing.T) {
	c := DefaultClassifier()

	aapl := c.Classify("AAPL")
	if aapl.Sector != SectorTechnology || aapl.SizeTier != SizeLarge {
		t.Errorf("Classify(AAPL) = %+v, want technology/large", aapl)
	}

	// JPM is large cap but not technology.
	jpm := c.Classify("JPM")
	if jpm.Sector != SectorOther || jpm.SizeTier != SizeLarge {
		t.Errorf("Classify(JPM) = %+v, want other/large", jpm)
	}

	unknown := c.Classify("ZZZ")
	if unknown.Sector != SectorOther || unknown.SizeTier != SizeMid {
		t.Errorf("Classify(ZZZ) = %+v, want the other/mid fallback", unknown)
	}
}

func TestLoadClassifier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classifier.yaml")
	file := `sectors:
  SAP: technology
  TTE: energy
sizes:
  SAP: large
`
	if err := os.WriteFile(path, []byte(file), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadClassifier(path)
	if err != nil {
		t.Fatalf("LoadClassifier() error = %v", err)
	}

	sap := c.Classify("SAP")
	if sap.Sector != SectorTechnology || sap.SizeTier != SizeLarge {
		t.Errorf("Classify(SAP) = %+v, want technology/large", sap)
	}
	// TTE has a sector entry only, the size falls back.
	tte := c.Classify("TTE")
	if tte.Sector != "energy" || tte.SizeTier != SizeMid {
		t.Errorf("Classify(TTE) = %+v, want energy/mid", tte)
	}
}

func TestLoadClassifier_Errors(t *testing.T) {
	_, err := LoadClassifier(filepath.Join(t.TempDir(), "none.yaml"))
	if err == nil || !strings.Contains(err.Error(), "cannot read classifier file") {
		t.Errorf("LoadClassifier() error = %v, want a read error", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("sectors: [not, a, map]"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = LoadClassifier(path)
	if err == nil || !strings.Contains(err.Error(), "cannot parse classifier file") {
		t.Errorf("LoadClassifier() error = %v, want a parse error", err)
	}
}
