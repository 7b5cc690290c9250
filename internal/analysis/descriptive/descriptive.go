// Package descriptive turns a single numeric sample into summary and
// distribution statistics.
package descriptive

import (
	"math"

	"github.com/montanaflynn/stats"

	"statcanvas/domain/core"
	domstats "statcanvas/domain/stats"
	"statcanvas/internal/numeric"
)

var percentilePoints = []int{5, 10, 25, 50, 75, 90, 95, 99}

// moments keeps full-precision intermediates. Result records expose only
// rounded values; dependent computations (distribution analysis) read from
// here instead.
type moments struct {
	values   []float64
	n        int
	mean     float64
	median   float64
	std      float64
	min      float64
	max      float64
	pcts     map[int]float64 // n >= 2
	q1, q3   float64         // n >= 4
	iqr      float64
	outliers []float64
	hasIQR   bool
	cv       float64 // mean != 0
	hasCV    bool
	skewness float64 // n >= 3 and std > 0
	hasSkew  bool
	se       float64 // n > 1
	ciLower  float64
	ciUpper  float64
	hasCI    bool
}

func compute(values []float64) (*moments, error) {
	if len(values) == 0 {
		return nil, core.ErrEmptySample
	}

	m := &moments{values: values, n: len(values)}
	m.mean, _ = stats.Mean(values)
	m.median, _ = stats.Median(values)
	m.min, _ = stats.Min(values)
	m.max, _ = stats.Max(values)
	if m.n > 1 {
		m.std, _ = stats.StandardDeviationSample(values)
	}

	if m.n >= 2 {
		m.pcts = make(map[int]float64, len(percentilePoints))
		for _, p := range percentilePoints {
			m.pcts[p] = numeric.Percentile(values, float64(p))
		}
	}

	if m.n >= 4 {
		m.hasIQR = true
		m.q1 = m.pcts[25]
		m.q3 = m.pcts[75]
		m.iqr = m.q3 - m.q1
		lower := m.q1 - 1.5*m.iqr
		upper := m.q3 + 1.5*m.iqr
		m.outliers = []float64{}
		for _, v := range values {
			if v < lower || v > upper {
				m.outliers = append(m.outliers, v)
			}
		}
	}

	if m.mean != 0 {
		m.hasCV = true
		m.cv = m.std / math.Abs(m.mean) * 100
	}

	if m.n >= 3 && m.std > 0 {
		m.hasSkew = true
		sum := 0.0
		for _, v := range values {
			d := v - m.mean
			sum += d * d * d
		}
		m.skewness = sum / (float64(m.n) * m.std * m.std * m.std)
	}

	if m.n > 1 {
		m.hasCI = true
		m.se = m.std / math.Sqrt(float64(m.n))
		margin := numeric.TCritical(m.n-1) * m.se
		m.ciLower = m.mean - margin
		m.ciUpper = m.mean + margin
	}

	return m, nil
}

func (m *moments) result() *domstats.DescriptiveResult {
	r := &domstats.DescriptiveResult{
		N:        m.n,
		Mean:     core.Round3(m.mean),
		Median:   core.Round3(m.median),
		Std:      core.Round3(m.std),
		Variance: core.Round3(m.std * m.std),
		Min:      core.Round3(m.min),
		Max:      core.Round3(m.max),
		Range:    core.Round3(m.max - m.min),
	}

	if m.pcts != nil {
		r.Percentiles = make(map[string]float64, len(m.pcts))
		for p, v := range m.pcts {
			r.Percentiles[percentileKey(p)] = core.Round3(v)
		}
	}

	if m.hasIQR {
		outliers := make([]float64, len(m.outliers))
		for i, o := range m.outliers {
			outliers[i] = core.Round3(o)
		}
		r.Quartiles = &domstats.QuartileSummary{
			Q1:       core.Round3(m.q1),
			Q3:       core.Round3(m.q3),
			IQR:      core.Round3(m.iqr),
			Outliers: outliers,
		}
	}

	if m.hasCV {
		cv := core.Round2(m.cv)
		r.CoefficientOfVariation = &cv
	}
	if m.hasSkew {
		skew := core.Round3(m.skewness)
		r.Skewness = &skew
	}
	if m.hasCI {
		r.MeanCI = &domstats.ConfidenceInterval{
			StandardError: core.Round3(m.se),
			Lower:         core.Round3(m.ciLower),
			Upper:         core.Round3(m.ciUpper),
		}
	}

	return r
}

func percentileKey(p int) string {
	switch p {
	case 5:
		return "p5"
	case 10:
		return "p10"
	case 25:
		return "p25"
	case 50:
		return "p50"
	case 75:
		return "p75"
	case 90:
		return "p90"
	case 95:
		return "p95"
	default:
		return "p99"
	}
}

// Describe computes descriptive statistics for one variable. Coercion
// failures and empty samples come back as errors, never panics.
func Describe(sample core.Sample) (*domstats.DescriptiveResult, error) {
	if len(sample) == 0 {
		return nil, core.ErrEmptySample
	}
	values, err := sample.Floats()
	if err != nil {
		return nil, err
	}
	m, err := compute(values)
	if err != nil {
		return nil, err
	}
	return m.result(), nil
}
