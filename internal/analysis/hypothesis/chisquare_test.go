package hypothesis

import (
	"math"
	"strings"
	"testing"

	"statcanvas/domain/core"
)

func repeatLabel(label string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = label
	}
	return out
}

func TestChiSquareTest_BalancedTableNoAssociation(t *testing.T) {
	// ["A","A","B","B"]*4 crossed with ["X","Y","X","Y"]*4: every cell is 4
	var v1, v2 []string
	for i := 0; i < 4; i++ {
		v1 = append(v1, "A", "A", "B", "B")
		v2 = append(v2, "X", "Y", "X", "Y")
	}

	r, err := ChiSquareTest(core.SampleFromStrings(v1), core.SampleFromStrings(v2), "var1", "var2")
	if err != nil {
		t.Fatalf("ChiSquareTest failed: %v", err)
	}

	if math.Abs(r.ChiSquareStatistic) > 1e-9 {
		t.Errorf("balanced table chi2 = %f, want 0", r.ChiSquareStatistic)
	}
	if math.Abs(r.CramersV) > 1e-9 {
		t.Errorf("balanced table V = %f, want 0", r.CramersV)
	}
	if r.DegreesOfFreedom != 1 {
		t.Errorf("df = %d, want 1 for 2x2", r.DegreesOfFreedom)
	}
	if r.SampleSize != 16 {
		t.Errorf("n = %d, want 16", r.SampleSize)
	}
}

func TestChiSquareTest_StrongAssociation(t *testing.T) {
	v1 := append(repeatLabel("A", 10), repeatLabel("B", 10)...)
	v2 := append(repeatLabel("X", 10), repeatLabel("Y", 10)...)

	r, err := ChiSquareTest(core.SampleFromStrings(v1), core.SampleFromStrings(v2), "group", "outcome")
	if err != nil {
		t.Fatalf("ChiSquareTest failed: %v", err)
	}

	if r.ChiSquareStatistic <= 10 {
		t.Errorf("chi2 = %f, want > 10 for perfect association", r.ChiSquareStatistic)
	}
	if r.CramersV <= 0.8 {
		t.Errorf("V = %f, want > 0.8", r.CramersV)
	}
	if r.EffectSizeCategory != "Large association" {
		t.Errorf("effect category = %q, want Large association", r.EffectSizeCategory)
	}
	if r.PValue < 0 || r.PValue > 1 {
		t.Errorf("p out of [0,1]: %f", r.PValue)
	}
}

func TestChiSquareTest_DegreesOfFreedomLargeTable(t *testing.T) {
	// 5 row categories x 4 column categories, 20 balanced observations
	var v1, v2 []string
	rows := []string{"r1", "r2", "r3", "r4", "r5"}
	cols := []string{"c1", "c2", "c3", "c4"}
	for i := 0; i < 20; i++ {
		v1 = append(v1, rows[i%5])
		v2 = append(v2, cols[i%4])
	}

	r, err := ChiSquareTest(core.SampleFromStrings(v1), core.SampleFromStrings(v2), "a", "b")
	if err != nil {
		t.Fatalf("ChiSquareTest failed: %v", err)
	}
	if r.DegreesOfFreedom != 12 {
		t.Errorf("df = %d, want (5-1)*(4-1) = 12", r.DegreesOfFreedom)
	}
	if len(r.Categories1) != 5 || len(r.Categories2) != 4 {
		t.Errorf("category axes = %d x %d, want 5 x 4", len(r.Categories1), len(r.Categories2))
	}
}

func TestChiSquareTest_InsufficientObservations(t *testing.T) {
	v1 := core.SampleFromStrings([]string{"A", "B"})
	v2 := core.SampleFromStrings([]string{"X", "Y"})

	_, err := ChiSquareTest(v1, v2, "a", "b")
	if err == nil {
		t.Fatal("2 observations should fail")
	}
	if !strings.Contains(err.Error(), "at least 5 observations") {
		t.Errorf("error %q should mention the observation minimum", err.Error())
	}
}

func TestChiSquareTest_LengthMismatch(t *testing.T) {
	v1 := core.SampleFromStrings([]string{"A", "B", "A"})
	v2 := core.SampleFromStrings([]string{"X", "Y"})

	_, err := ChiSquareTest(v1, v2, "a", "b")
	if err == nil {
		t.Fatal("mismatched lengths should fail")
	}
	if !strings.Contains(err.Error(), "equal length") {
		t.Errorf("error %q should mention equal length", err.Error())
	}
}

// Numeric-looking strings stay labels: the table dimension is the count of
// distinct labels, not a numeric range.
func TestChiSquareTest_NumericStringsStayCategorical(t *testing.T) {
	v1 := core.SampleFromStrings([]string{"1", "2", "3", "1", "2", "3", "1", "2"})
	v2 := core.SampleFromStrings([]string{"10", "20", "10", "20", "10", "20", "10", "20"})

	r, err := ChiSquareTest(v1, v2, "code", "zone")
	if err != nil {
		t.Fatalf("ChiSquareTest failed: %v", err)
	}
	if len(r.Categories1) != 3 {
		t.Errorf("var1 categories = %v, want 3 distinct labels", r.Categories1)
	}
	if len(r.Categories2) != 2 {
		t.Errorf("var2 categories = %v, want 2 distinct labels", r.Categories2)
	}
	if r.DegreesOfFreedom != 2 {
		t.Errorf("df = %d, want 2", r.DegreesOfFreedom)
	}
}

func TestChiSquareTest_LowExpectedFrequencyWarning(t *testing.T) {
	v1 := core.SampleFromStrings([]string{"A", "A", "A", "B", "B"})
	v2 := core.SampleFromStrings([]string{"X", "X", "Y", "X", "Y"})

	r, err := ChiSquareTest(v1, v2, "a", "b")
	if err != nil {
		t.Fatalf("ChiSquareTest failed: %v", err)
	}
	if r.Warning == "" {
		t.Fatal("expected a low-frequency warning for this tiny table")
	}
	if !strings.Contains(r.Warning, "expected frequencies < 5") {
		t.Errorf("warning %q should explain the issue", r.Warning)
	}
}

func TestChiSquareTest_CarriesTable(t *testing.T) {
	v1 := append(repeatLabel("A", 6), repeatLabel("B", 6)...)
	var v2 []string
	for i := 0; i < 12; i++ {
		if i%2 == 0 {
			v2 = append(v2, "X")
		} else {
			v2 = append(v2, "Y")
		}
	}

	r, err := ChiSquareTest(core.SampleFromStrings(v1), core.SampleFromStrings(v2), "a", "b")
	if err != nil {
		t.Fatalf("ChiSquareTest failed: %v", err)
	}
	if len(r.ContingencyTable) != 2 || len(r.ContingencyTable[0]) != 2 {
		t.Fatalf("contingency table shape = %v", r.ContingencyTable)
	}
	if len(r.ExpectedFrequencies) != 2 {
		t.Fatalf("expected frequency shape = %v", r.ExpectedFrequencies)
	}

	total := 0
	for _, row := range r.ContingencyTable {
		for _, c := range row {
			total += c
		}
	}
	if total != r.SampleSize {
		t.Errorf("cell sum %d != sample size %d", total, r.SampleSize)
	}
}
