package hypothesis

import (
	"fmt"
	"math"
	"strings"

	"statcanvas/domain/core"
	domstats "statcanvas/domain/stats"
	"statcanvas/internal/analysis/categorical"
	"statcanvas/internal/numeric"
)

const chiSquareMinObservations = 5

// ChiSquareTest runs the test of independence over two categorical
// variables. Observations are compared as labels, never coerced to
// numbers, so "1" and "01" are distinct categories. Expected frequencies
// below 5 produce a warning on the result, not a failure.
func ChiSquareTest(var1, var2 core.Sample, name1, name2 string) (*domstats.ChiSquareResult, error) {
	if len(var1) != len(var2) {
		return nil, core.NewLengthMismatchError("chi-square test", len(var1), len(var2))
	}
	if len(var1) < chiSquareMinObservations {
		return nil, core.NewInsufficientDataError("chi-square test", chiSquareMinObservations)
	}

	table := categorical.BuildContingencyTable(var1.Labels(), var2.Labels())
	n := table.N()
	rowTotals := table.RowTotals()
	colTotals := table.ColTotals()

	rows := len(table.Rows)
	cols := len(table.Cols)

	expected := make([][]float64, rows)
	chi2 := 0.0
	var lowExpected []string
	for i := 0; i < rows; i++ {
		expected[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			e := float64(rowTotals[i]) * float64(colTotals[j]) / float64(n)
			expected[i][j] = core.Round3(e)
			if e < 5 {
				lowExpected = append(lowExpected, fmt.Sprintf("Cell(%d,%d): %.1f", i+1, j+1, e))
			}
			if e > 0 {
				o := float64(table.Counts[i][j])
				chi2 += (o - e) * (o - e) / e
			}
		}
	}

	df := (rows - 1) * (cols - 1)
	p := numeric.ChiSquareToP(chi2, df)

	cramersV := 0.0
	if minDim := math.Min(float64(rows-1), float64(cols-1)); minDim > 0 {
		cramersV = math.Sqrt(chi2 / (float64(n) * minDim))
	}

	result := &domstats.ChiSquareResult{
		TestType:            "Chi-square test of independence",
		Variable1:           name1,
		Variable2:           name2,
		ChiSquareStatistic:  core.Round3(chi2),
		DegreesOfFreedom:    df,
		PValue:              p,
		PValueDisplay:       PValueDisplay(p),
		CramersV:            core.Round3(cramersV),
		EffectSizeCategory:  cramersVCategory(cramersV),
		SampleSize:          n,
		ContingencyTable:    table.Counts,
		Categories1:         table.Rows,
		Categories2:         table.Cols,
		ExpectedFrequencies: expected,
	}

	if len(lowExpected) > 0 {
		result.Warning = fmt.Sprintf("Some expected frequencies < 5: %s. Results may be unreliable.",
			strings.Join(lowExpected, ", "))
	}

	return result, nil
}
