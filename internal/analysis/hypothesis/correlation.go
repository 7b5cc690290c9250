package hypothesis

import (
	"statcanvas/domain/core"
	domstats "statcanvas/domain/stats"
	"statcanvas/internal/numeric"
)

// CorrelationTest computes the Pearson correlation between two equal-length
// numeric samples with strength and direction buckets. Degenerate inputs
// (zero variance) come back as r=0, p=1 rather than an error.
func CorrelationTest(x, y core.Sample) (*domstats.CorrelationResult, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, core.ErrEmptySample
	}
	if len(x) != len(y) {
		return nil, core.NewLengthMismatchError("correlation", len(x), len(y))
	}

	xs, err := x.Floats()
	if err != nil {
		return nil, err
	}
	ys, err := y.Floats()
	if err != nil {
		return nil, err
	}

	r, p := numeric.PearsonCorrelation(xs, ys)

	direction := "Negative"
	if r > 0 {
		direction = "Positive"
	}

	return &domstats.CorrelationResult{
		Coefficient:      core.Round3(r),
		PValue:           p,
		PValueDisplay:    PValueDisplay(p),
		StrengthCategory: strengthCategory(r),
		Direction:        direction,
		RSquared:         core.Round3(r * r),
		SampleSize:       len(xs),
	}, nil
}
