// Package hypothesis implements the comparison tests: paired and
// independent t-tests, one-way ANOVA with uncorrected post-hoc pairs,
// Pearson correlation, and the chi-square test of independence.
package hypothesis

import (
	"fmt"
	"math"
)

// PValueDisplay renders the report threshold bucket for a p-value.
func PValueDisplay(p float64) string {
	switch {
	case p < 0.001:
		return "p < 0.001"
	case p < 0.01:
		return "p < 0.01"
	case p < 0.05:
		return "p < 0.05"
	default:
		return fmt.Sprintf("p = %.3f", p)
	}
}

func cohensDCategory(d float64) string {
	switch abs := math.Abs(d); {
	case abs < 0.2:
		return "Small effect"
	case abs < 0.5:
		return "Medium effect"
	case abs < 0.8:
		return "Large effect"
	default:
		return "Very large effect"
	}
}

func etaSquaredCategory(eta float64) string {
	switch {
	case eta < 0.01:
		return "Small effect"
	case eta < 0.06:
		return "Medium effect"
	default:
		return "Large effect"
	}
}

func cramersVCategory(v float64) string {
	switch {
	case v < 0.1:
		return "Negligible association"
	case v < 0.3:
		return "Small association"
	case v < 0.5:
		return "Medium association"
	default:
		return "Large association"
	}
}

func strengthCategory(r float64) string {
	switch abs := math.Abs(r); {
	case abs < 0.1:
		return "Very weak"
	case abs < 0.3:
		return "Weak"
	case abs < 0.5:
		return "Moderate"
	case abs < 0.7:
		return "Strong"
	default:
		return "Very strong"
	}
}
