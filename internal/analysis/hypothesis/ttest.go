package hypothesis

import (
	"math"

	"github.com/montanaflynn/stats"

	"statcanvas/domain/core"
	domstats "statcanvas/domain/stats"
	"statcanvas/internal/numeric"
)

// PairedTTest compares two equal-length samples by their per-pair
// differences. Zero difference variance is a sentinel result, not an
// error: t is ±Inf when the means differ and 0 when every pair is equal.
func PairedTTest(before, after core.Sample) (*domstats.TTestResult, error) {
	if len(before) == 0 || len(after) == 0 {
		return nil, core.ErrEmptySample
	}
	if len(before) != len(after) {
		return nil, core.NewLengthMismatchError("paired t-test", len(before), len(after))
	}

	b, err := before.Floats()
	if err != nil {
		return nil, err
	}
	a, err := after.Floats()
	if err != nil {
		return nil, err
	}

	n := len(b)
	diffs := make([]float64, n)
	for i := range b {
		diffs[i] = b[i] - a[i]
	}

	meanDiff, _ := stats.Mean(diffs)
	stdDiff := 0.0
	if n > 1 {
		stdDiff, _ = stats.StandardDeviationSample(diffs)
	}

	var t float64
	switch {
	case stdDiff > 0:
		t = meanDiff / (stdDiff / math.Sqrt(float64(n)))
	case meanDiff != 0:
		t = math.Inf(sign(meanDiff))
	}

	d := 0.0
	if stdDiff > 0 {
		d = meanDiff / stdDiff
	}

	df := n - 1
	p := numeric.TToP(t, df)

	return &domstats.TTestResult{
		TestType:           "Paired t-test",
		TStatistic:         core.Stat(core.Round3(t)),
		PValue:             p,
		PValueDisplay:      PValueDisplay(p),
		DegreesOfFreedom:   df,
		CohensD:            core.Round3(d),
		EffectSizeCategory: cohensDCategory(d),
		MeanDifference:     core.Round3(meanDiff),
	}, nil
}

// IndependentTTest compares two samples with the pooled-variance formula,
// df = n1+n2-2. Zero pooled variance follows the same sentinel convention
// as the paired test.
func IndependentTTest(group1, group2 core.Sample) (*domstats.TTestResult, error) {
	if len(group1) == 0 || len(group2) == 0 {
		return nil, core.ErrEmptySample
	}

	g1, err := group1.Floats()
	if err != nil {
		return nil, err
	}
	g2, err := group2.Floats()
	if err != nil {
		return nil, err
	}

	n1, n2 := len(g1), len(g2)
	df := n1 + n2 - 2
	if df <= 0 {
		return nil, core.NewInsufficientDataError("independent t-test", 3)
	}

	mean1, _ := stats.Mean(g1)
	mean2, _ := stats.Mean(g2)
	var1 := numeric.Variance(g1, 1)
	var2 := numeric.Variance(g2, 1)

	pooledVar := (float64(n1-1)*var1 + float64(n2-1)*var2) / float64(df)
	pooledStd := math.Sqrt(pooledVar)
	meanDiff := mean1 - mean2

	var t float64
	switch {
	case pooledStd > 0:
		t = meanDiff / (pooledStd * math.Sqrt(1/float64(n1)+1/float64(n2)))
	case meanDiff != 0:
		t = math.Inf(sign(meanDiff))
	}

	d := 0.0
	if pooledStd > 0 {
		d = meanDiff / pooledStd
	}

	p := numeric.TToP(t, df)

	return &domstats.TTestResult{
		TestType:           "Independent t-test",
		TStatistic:         core.Stat(core.Round3(t)),
		PValue:             p,
		PValueDisplay:      PValueDisplay(p),
		DegreesOfFreedom:   df,
		CohensD:            core.Round3(d),
		EffectSizeCategory: cohensDCategory(d),
		MeanDifference:     core.Round3(meanDiff),
	}, nil
}

func sign(x float64) int {
	if x < 0 {
		return -1
	}
	return 1
}
