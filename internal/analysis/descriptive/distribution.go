package descriptive

import (
	"math"

	"statcanvas/domain/core"
	domstats "statcanvas/domain/stats"
)

// Reference fractions for the 68-95-99.7 rule, in percent.
const (
	expected1StdPct = 68.3
	expected2StdPct = 95.4
)

const normalityNote = "Normal distribution expectation: ~68% within 1 std, ~95% within 2 std. Small mean-median difference suggests symmetry."

// AnalyzeDistribution layers shape, normality, performance, quality and
// variability views atop the descriptive statistics for one variable.
// Requires at least 2 observations.
func AnalyzeDistribution(sample core.Sample, name string) (*domstats.DistributionResult, error) {
	if len(sample) == 0 {
		return nil, core.ErrEmptySample
	}
	values, err := sample.Floats()
	if err != nil {
		return nil, err
	}
	if len(values) < 2 {
		return nil, core.NewInsufficientDataError("distribution analysis", 2)
	}

	m, err := compute(values)
	if err != nil {
		return nil, err
	}

	result := &domstats.DistributionResult{
		VariableName: name,
		AnalysisType: "Single Variable Distribution Analysis",
		Descriptive:  m.result(),
	}

	if m.hasSkew {
		result.Shape = &domstats.ShapeSummary{
			Skewness:         core.Round3(m.skewness),
			ShapeDescription: shapeDescription(m.skewness),
		}
	}

	if m.n >= 8 {
		result.Normality = assessNormality(m)
	}

	if m.pcts != nil {
		result.Performance = performanceView(m)
	}

	result.Quality = qualityView(m)
	result.Variability = variabilityView(m)

	return result, nil
}

func shapeDescription(skew float64) string {
	switch {
	case math.Abs(skew) < 0.5:
		return "Approximately symmetric"
	case skew > 0.5:
		return "Right-skewed (positive skew)"
	default:
		return "Left-skewed (negative skew)"
	}
}

// assessNormality compares the sample against the normal reference
// fractions. This is a descriptive comparison, not a test: it never states
// that the data is or is not normal.
func assessNormality(m *moments) *domstats.NormalitySummary {
	diff := math.Abs(m.mean - m.median)
	relative := 0.0
	if m.std > 0 {
		relative = diff / m.std
	}

	within1, within2 := 0, 0
	for _, v := range m.values {
		d := math.Abs(v - m.mean)
		if d <= m.std {
			within1++
		}
		if d <= 2*m.std {
			within2++
		}
	}
	n := float64(m.n)

	return &domstats.NormalitySummary{
		MeanMedianDifference: core.Round3(diff),
		RelativeDifference:   core.Round3(relative),
		Within1StdPct:        core.Round1(float64(within1) / n * 100),
		Within2StdPct:        core.Round1(float64(within2) / n * 100),
		Expected1StdPct:      expected1StdPct,
		Expected2StdPct:      expected2StdPct,
		Note:                 normalityNote,
	}
}

func performanceView(m *moments) *domstats.PerformanceSummary {
	p50 := m.pcts[50]
	p95 := m.pcts[95]
	ratio := 0.0
	if p50 > 0 {
		ratio = core.Round2(p95 / p50)
	}
	return &domstats.PerformanceSummary{
		P50:        core.Round3(p50),
		P95:        core.Round3(p95),
		P99:        core.Round3(m.pcts[99]),
		P95P50Rate: ratio,
	}
}

func qualityView(m *moments) domstats.QualitySummary {
	if len(m.outliers) == 0 {
		return domstats.QualitySummary{}
	}
	values := make([]float64, len(m.outliers))
	for i, o := range m.outliers {
		values[i] = core.Round3(o)
	}
	return domstats.QualitySummary{
		OutlierCount:      len(m.outliers),
		OutlierPercentage: core.Round1(float64(len(m.outliers)) / float64(m.n) * 100),
		OutlierValues:     values,
	}
}

func variabilityView(m *moments) *domstats.VariabilitySummary {
	cv := 0.0
	if m.hasCV {
		cv = m.cv
	}
	category := "Low variability"
	switch {
	case cv < 10:
		// keep Low
	case cv < 25:
		category = "Moderate variability"
	case cv < 50:
		category = "High variability"
	default:
		category = "Very high variability"
	}
	return &domstats.VariabilitySummary{
		CoefficientOfVariation: core.Round2(cv),
		Category:               category,
	}
}
