package tradelab

import (
	"fmt"
	"math"
)

// Percent is a percentage value, in percentage points (2.5 means 2.5%).
type Percent float64

// Equal compares with a small tolerance, enough for values that went
// through float arithmetic.
func (p Percent) Equal(q Percent) bool {
	const tolerance = 1e-4
	return math.Abs(float64(p-q)) < tolerance
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

// SignedString always shows the sign, except for zero rendered as "-".
func (p Percent) SignedString() string {
	s := fmt.Sprintf("%+.2f%%", p)
	if s == "+0.00%" {
		return "-"
	}
	return s
}
