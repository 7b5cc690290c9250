package hypothesis

import (
	"math"
	"strings"
	"testing"

	"statcanvas/domain/core"
)

func TestPairedTTest_ConsistentImprovement(t *testing.T) {
	before := core.SampleFromFloats([]float64{45, 48, 52, 46, 50, 47, 49, 51})
	after := core.SampleFromFloats([]float64{58, 62, 65, 59, 63, 60, 61, 64})

	r, err := PairedTTest(before, after)
	if err != nil {
		t.Fatalf("PairedTTest failed: %v", err)
	}

	// Differences are before - after, so a consistent increase is negative.
	if float64(r.TStatistic) >= 0 {
		t.Errorf("t statistic = %f, want negative for consistent increase", float64(r.TStatistic))
	}
	if r.DegreesOfFreedom != 7 {
		t.Errorf("df = %d, want n-1 = 7", r.DegreesOfFreedom)
	}
	if math.Abs(r.CohensD) <= 1.0 {
		t.Errorf("|cohens d| = %f, want > 1 for this strong effect", math.Abs(r.CohensD))
	}
	if r.PValue < 0 || r.PValue > 1 {
		t.Errorf("p out of [0,1]: %f", r.PValue)
	}
	if r.MeanDifference >= 0 {
		t.Errorf("mean difference = %f, want negative", r.MeanDifference)
	}
	if r.TestType != "Paired t-test" {
		t.Errorf("test type = %q", r.TestType)
	}
}

func TestPairedTTest_LengthMismatch(t *testing.T) {
	before := core.SampleFromFloats([]float64{1, 2, 3})
	after := core.SampleFromFloats([]float64{1, 2})

	_, err := PairedTTest(before, after)
	if err == nil {
		t.Fatal("mismatched lengths should fail")
	}
	if !strings.Contains(err.Error(), "equal length") {
		t.Errorf("error %q should mention equal length", err.Error())
	}
}

func TestPairedTTest_ZeroVarianceSentinels(t *testing.T) {
	// Constant nonzero shift: t = -Inf, not an error
	before := core.SampleFromFloats([]float64{10, 20, 30})
	after := core.SampleFromFloats([]float64{15, 25, 35})

	r, err := PairedTTest(before, after)
	if err != nil {
		t.Fatalf("constant shift should not fail: %v", err)
	}
	if !math.IsInf(float64(r.TStatistic), -1) {
		t.Errorf("t = %v, want -Inf for constant negative shift", float64(r.TStatistic))
	}

	// Identical samples: t = 0
	same := core.SampleFromFloats([]float64{10, 20, 30})
	r, err = PairedTTest(same, same)
	if err != nil {
		t.Fatalf("identical samples should not fail: %v", err)
	}
	if float64(r.TStatistic) != 0 {
		t.Errorf("t = %v, want 0 for identical samples", float64(r.TStatistic))
	}
	if r.PValue < 0 || r.PValue > 1 {
		t.Errorf("p out of [0,1]: %f", r.PValue)
	}
}

func TestPairedTTest_Empty(t *testing.T) {
	if _, err := PairedTTest(core.Sample{}, core.Sample{}); err == nil {
		t.Fatal("empty samples should fail")
	}
}

func TestIndependentTTest_KnownSeparation(t *testing.T) {
	g1 := core.SampleFromFloats([]float64{10, 12, 11, 13, 12, 11})
	g2 := core.SampleFromFloats([]float64{20, 22, 21, 23, 22, 21})

	r, err := IndependentTTest(g1, g2)
	if err != nil {
		t.Fatalf("IndependentTTest failed: %v", err)
	}

	if r.DegreesOfFreedom != 10 {
		t.Errorf("df = %d, want n1+n2-2 = 10", r.DegreesOfFreedom)
	}
	if float64(r.TStatistic) >= 0 {
		t.Errorf("t = %f, want negative when group1 mean is lower", float64(r.TStatistic))
	}
	if r.MeanDifference != -10 {
		t.Errorf("mean difference = %f, want -10", r.MeanDifference)
	}
	if r.PValue != 0.001 {
		t.Errorf("p = %f, want 0.001 for this separation", r.PValue)
	}
	if r.EffectSizeCategory != "Very large effect" {
		t.Errorf("effect category = %q", r.EffectSizeCategory)
	}
}

func TestIndependentTTest_NonNumeric(t *testing.T) {
	g1 := core.SampleFromStrings([]string{"a", "b"})
	g2 := core.SampleFromFloats([]float64{1, 2})
	if _, err := IndependentTTest(g1, g2); err == nil {
		t.Fatal("non-numeric group should fail")
	}
}

func TestIndependentTTest_TooSmall(t *testing.T) {
	g1 := core.SampleFromFloats([]float64{1})
	g2 := core.SampleFromFloats([]float64{2})
	if _, err := IndependentTTest(g1, g2); err == nil {
		t.Fatal("df <= 0 should fail")
	}
}

func TestPValueDisplay(t *testing.T) {
	cases := []struct {
		p    float64
		want string
	}{
		{0.0005, "p < 0.001"},
		{0.005, "p < 0.01"},
		{0.03, "p < 0.05"},
		{0.1, "p = 0.100"},
		{0.2, "p = 0.200"},
	}
	for _, tc := range cases {
		if got := PValueDisplay(tc.p); got != tc.want {
			t.Errorf("PValueDisplay(%f) = %q, want %q", tc.p, got, tc.want)
		}
	}
}
