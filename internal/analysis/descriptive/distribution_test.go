package descriptive

import (
	"testing"

	"statcanvas/domain/core"
)

func TestAnalyzeDistribution_Symmetric(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90}
	r, err := AnalyzeDistribution(core.SampleFromFloats(values), "latency")
	if err != nil {
		t.Fatalf("AnalyzeDistribution failed: %v", err)
	}

	if r.VariableName != "latency" {
		t.Errorf("variable name = %q", r.VariableName)
	}
	if r.Shape == nil {
		t.Fatal("expected shape block")
	}
	if r.Shape.ShapeDescription != "Approximately symmetric" {
		t.Errorf("shape = %q, want approximately symmetric", r.Shape.ShapeDescription)
	}
}

func TestAnalyzeDistribution_RightSkew(t *testing.T) {
	values := []float64{1, 1, 1, 2, 2, 3, 4, 5, 20, 50}
	r, err := AnalyzeDistribution(core.SampleFromFloats(values), "income")
	if err != nil {
		t.Fatalf("AnalyzeDistribution failed: %v", err)
	}
	if r.Shape == nil {
		t.Fatal("expected shape block")
	}
	if r.Shape.ShapeDescription != "Right-skewed (positive skew)" {
		t.Errorf("shape = %q, want right-skewed", r.Shape.ShapeDescription)
	}
	if r.Shape.Skewness <= 0.5 {
		t.Errorf("skewness = %f, want > 0.5", r.Shape.Skewness)
	}
}

func TestAnalyzeDistribution_NormalityThreshold(t *testing.T) {
	// n=7: below the normality threshold
	small := core.SampleFromFloats([]float64{1, 2, 3, 4, 5, 6, 7})
	r, err := AnalyzeDistribution(small, "x")
	if err != nil {
		t.Fatalf("AnalyzeDistribution failed: %v", err)
	}
	if r.Normality != nil {
		t.Error("n=7 should not produce a normality assessment")
	}

	// n=8: at the threshold
	big := core.SampleFromFloats([]float64{1, 2, 3, 4, 5, 6, 7, 8})
	r, err = AnalyzeDistribution(big, "x")
	if err != nil {
		t.Fatalf("AnalyzeDistribution failed: %v", err)
	}
	if r.Normality == nil {
		t.Fatal("n=8 should produce a normality assessment")
	}
	if r.Normality.Expected1StdPct != 68.3 || r.Normality.Expected2StdPct != 95.4 {
		t.Errorf("reference constants = %f/%f, want 68.3/95.4",
			r.Normality.Expected1StdPct, r.Normality.Expected2StdPct)
	}
	if r.Normality.Within1StdPct < 0 || r.Normality.Within1StdPct > 100 {
		t.Errorf("within-1-std percentage out of range: %f", r.Normality.Within1StdPct)
	}
}

func TestAnalyzeDistribution_PerformanceView(t *testing.T) {
	values := []float64{100, 110, 120, 130, 140, 150, 400, 900}
	r, err := AnalyzeDistribution(core.SampleFromFloats(values), "response_ms")
	if err != nil {
		t.Fatalf("AnalyzeDistribution failed: %v", err)
	}
	if r.Performance == nil {
		t.Fatal("expected performance block")
	}
	if r.Performance.P95 < r.Performance.P50 {
		t.Errorf("p95 %f below p50 %f", r.Performance.P95, r.Performance.P50)
	}
	if r.Performance.P95P50Rate <= 1 {
		t.Errorf("tail ratio should exceed 1 for this sample, got %f", r.Performance.P95P50Rate)
	}
}

func TestAnalyzeDistribution_VariabilityBuckets(t *testing.T) {
	cases := []struct {
		values []float64
		want   string
	}{
		{[]float64{100, 101, 102, 99, 98}, "Low variability"},
		{[]float64{100, 120, 80, 110, 90}, "Moderate variability"},
		{[]float64{100, 160, 40, 130, 70}, "High variability"},
		{[]float64{10, 200, 5, 300, 1}, "Very high variability"},
	}
	for _, tc := range cases {
		r, err := AnalyzeDistribution(core.SampleFromFloats(tc.values), "x")
		if err != nil {
			t.Fatalf("AnalyzeDistribution(%v) failed: %v", tc.values, err)
		}
		if r.Variability == nil {
			t.Fatal("expected variability block")
		}
		if r.Variability.Category != tc.want {
			t.Errorf("variability for %v = %q, want %q (cv=%f)",
				tc.values, r.Variability.Category, tc.want, r.Variability.CoefficientOfVariation)
		}
	}
}

func TestAnalyzeDistribution_QualityView(t *testing.T) {
	clean := []float64{10, 11, 12, 13, 14, 15}
	r, err := AnalyzeDistribution(core.SampleFromFloats(clean), "x")
	if err != nil {
		t.Fatalf("AnalyzeDistribution failed: %v", err)
	}
	if r.Quality.OutlierCount != 0 {
		t.Errorf("clean sample reported %d outliers", r.Quality.OutlierCount)
	}

	dirty := []float64{10, 11, 12, 13, 14, 15, 16, 500}
	r, err = AnalyzeDistribution(core.SampleFromFloats(dirty), "x")
	if err != nil {
		t.Fatalf("AnalyzeDistribution failed: %v", err)
	}
	if r.Quality.OutlierCount != 1 {
		t.Errorf("expected 1 outlier, got %d", r.Quality.OutlierCount)
	}
	if r.Quality.OutlierPercentage != 12.5 {
		t.Errorf("outlier percentage = %f, want 12.5", r.Quality.OutlierPercentage)
	}
}

func TestAnalyzeDistribution_RequiresTwoObservations(t *testing.T) {
	_, err := AnalyzeDistribution(core.SampleFromFloats([]float64{1}), "x")
	if err == nil {
		t.Fatal("single observation should fail distribution analysis")
	}
	if !core.IsInputShapeError(err) {
		t.Errorf("expected input shape error, got %v", err)
	}
}
