package stats

import (
	"bytes"
	"encoding/json"

	"statcanvas/domain/core"
)

// ============================================================================
// ANALYSIS TYPES
// ============================================================================

// AnalysisType identifies which engine pipeline handles a request
type AnalysisType string

const (
	TypeAuto                     AnalysisType = "auto"
	TypeDescriptive              AnalysisType = "descriptive_analysis"
	TypeComprehensiveDescriptive AnalysisType = "comprehensive_descriptive"
	TypePairedComparison         AnalysisType = "paired_comparison"
	TypeTwoGroupComparison       AnalysisType = "two_group_comparison"
	TypeAnova                    AnalysisType = "anova_analysis"
	TypeMultiGroupComparison     AnalysisType = "multi_group_comparison"
	TypeCorrelation              AnalysisType = "correlation_analysis"
	TypeChiSquare                AnalysisType = "chi_square_test"
	TypeFrequency                AnalysisType = "frequency_analysis"
)

// ============================================================================
// DESCRIPTIVE RESULTS
// ============================================================================

// QuartileSummary is the IQR block, present only when n >= 4.
// Outliers lie outside [q1-1.5*iqr, q3+1.5*iqr] and may be empty.
type QuartileSummary struct {
	Q1       float64   `json:"q1"`
	Q3       float64   `json:"q3"`
	IQR      float64   `json:"iqr"`
	Outliers []float64 `json:"outliers"`
}

// ConfidenceInterval is the 95% CI for the mean, present only when n > 1.
type ConfidenceInterval struct {
	StandardError float64 `json:"mean_se"`
	Lower         float64 `json:"mean_ci_95_lower"`
	Upper         float64 `json:"mean_ci_95_upper"`
}

// DescriptiveResult holds presentation-rounded summary statistics for one
// numeric variable. Std uses the n-1 denominator. All floats are rounded to
// 3 decimals (CV to 2); engines that need full precision recompute from the
// raw sample rather than reading these fields back.
type DescriptiveResult struct {
	N        int     `json:"n"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Std      float64 `json:"std"`
	Variance float64 `json:"variance"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Range    float64 `json:"range"`

	// Percentiles at 5,10,25,50,75,90,95,99, keyed "p5".."p99"; n >= 2 only.
	Percentiles map[string]float64 `json:"percentiles,omitempty"`

	Quartiles              *QuartileSummary    `json:"quartiles,omitempty"`
	CoefficientOfVariation *float64            `json:"coefficient_of_variation,omitempty"`
	Skewness               *float64            `json:"skewness,omitempty"`
	MeanCI                 *ConfidenceInterval `json:"mean_ci,omitempty"`
}

// ============================================================================
// DISTRIBUTION RESULTS
// ============================================================================

// ShapeSummary classifies the distribution from its skewness.
type ShapeSummary struct {
	Skewness         float64 `json:"skewness"`
	ShapeDescription string  `json:"shape_description"`
}

// NormalitySummary compares the sample against normal-reference constants.
// It is descriptive only and never claims the data is or is not normal.
type NormalitySummary struct {
	MeanMedianDifference float64 `json:"mean_median_difference"`
	RelativeDifference   float64 `json:"relative_difference"`
	Within1StdPct        float64 `json:"within_1_std_pct"`
	Within2StdPct        float64 `json:"within_2_std_pct"`
	Expected1StdPct      float64 `json:"expected_1std_pct"`
	Expected2StdPct      float64 `json:"expected_2std_pct"`
	Note                 string  `json:"normality_note"`
}

// PerformanceSummary exposes the latency-style percentile view.
type PerformanceSummary struct {
	P50        float64 `json:"p50_median"`
	P95        float64 `json:"p95"`
	P99        float64 `json:"p99"`
	P95P50Rate float64 `json:"p95_p50_ratio"`
}

// QualitySummary surfaces the outlier block for data-quality review.
type QualitySummary struct {
	OutlierCount      int       `json:"outlier_count"`
	OutlierPercentage float64   `json:"outlier_percentage"`
	OutlierValues     []float64 `json:"outlier_values,omitempty"`
}

// VariabilitySummary buckets the coefficient of variation.
type VariabilitySummary struct {
	CoefficientOfVariation float64 `json:"coefficient_of_variation"`
	Category               string  `json:"variability_category"`
}

// DistributionResult layers interpretation atop the descriptive statistics
// for a single numeric variable.
type DistributionResult struct {
	VariableName string              `json:"variable_name"`
	AnalysisType string              `json:"analysis_type"`
	Descriptive  *DescriptiveResult  `json:"descriptive_statistics"`
	Shape        *ShapeSummary       `json:"distribution_shape,omitempty"`
	Normality    *NormalitySummary   `json:"normality_assessment,omitempty"`
	Performance  *PerformanceSummary `json:"performance_metrics,omitempty"`
	Quality      QualitySummary      `json:"data_quality"`
	Variability  *VariabilitySummary `json:"variability_analysis,omitempty"`
}

// ============================================================================
// HYPOTHESIS TEST RESULTS
// ============================================================================

// TTestResult covers paired and independent t-tests. TStatistic can be
// ±Inf when the variance degenerates to zero; that is a sentinel, not an
// error, and it must survive JSON encoding.
type TTestResult struct {
	TestType           string    `json:"test_type"`
	TStatistic         core.Stat `json:"t_statistic"`
	PValue             float64   `json:"p_value"`
	PValueDisplay      string    `json:"p_value_display"`
	DegreesOfFreedom   int       `json:"degrees_of_freedom"`
	CohensD            float64   `json:"cohens_d"`
	EffectSizeCategory string    `json:"effect_size_category"`
	MeanDifference     float64   `json:"mean_difference"`
}

// PosthocComparison is one uncorrected pairwise t-test after a significant
// omnibus ANOVA.
type PosthocComparison struct {
	Comparison     string  `json:"comparison"`
	MeanDifference float64 `json:"mean_difference"`
	PValue         float64 `json:"p_value"`
	Significant    bool    `json:"significant"`
}

// AnovaResult is a one-way ANOVA. Posthoc comparisons are populated only
// when the omnibus p < 0.05 and there are more than two groups; they carry
// no multiple-comparison correction.
type AnovaResult struct {
	TestType           string              `json:"test_type"`
	FStatistic         core.Stat           `json:"f_statistic"`
	PValue             float64             `json:"p_value"`
	PValueDisplay      string              `json:"p_value_display"`
	DFBetween          int                 `json:"df_between"`
	DFWithin           int                 `json:"df_within"`
	EtaSquared         float64             `json:"eta_squared"`
	EffectSizeCategory string              `json:"effect_size_category"`
	Posthoc            []PosthocComparison `json:"posthoc_comparisons"`
}

// CorrelationResult is a Pearson correlation with strength and direction
// buckets.
type CorrelationResult struct {
	Coefficient      float64 `json:"correlation_coefficient"`
	PValue           float64 `json:"p_value"`
	PValueDisplay    string  `json:"p_value_display"`
	StrengthCategory string  `json:"strength_category"`
	Direction        string  `json:"direction"`
	RSquared         float64 `json:"r_squared"`
	SampleSize       int     `json:"sample_size"`
}

// ChiSquareResult is a chi-square test of independence over two categorical
// variables, carrying the contingency table it was computed from.
type ChiSquareResult struct {
	TestType            string      `json:"test_type"`
	Variable1           string      `json:"variable_1"`
	Variable2           string      `json:"variable_2"`
	ChiSquareStatistic  float64     `json:"chi_square_statistic"`
	DegreesOfFreedom    int         `json:"degrees_of_freedom"`
	PValue              float64     `json:"p_value"`
	PValueDisplay       string      `json:"p_value_display"`
	CramersV            float64     `json:"cramers_v"`
	EffectSizeCategory  string      `json:"effect_size_category"`
	SampleSize          int         `json:"sample_size"`
	ContingencyTable    [][]int     `json:"contingency_table"`
	Categories1         []string    `json:"categories_1"`
	Categories2         []string    `json:"categories_2"`
	ExpectedFrequencies [][]float64 `json:"expected_frequencies"`
	Warning             string      `json:"warning,omitempty"`
}

// ============================================================================
// CATEGORICAL RESULTS
// ============================================================================

// ContingencyTable cross-tabulates two categorical variables. Both axes are
// sorted lexicographically so the table is deterministic regardless of
// input order; the cell sum equals the sample size.
type ContingencyTable struct {
	Rows   []string `json:"rows"`
	Cols   []string `json:"cols"`
	Counts [][]int  `json:"counts"`
}

// RowTotals returns per-row marginal totals.
func (t *ContingencyTable) RowTotals() []int {
	totals := make([]int, len(t.Counts))
	for i, row := range t.Counts {
		for _, c := range row {
			totals[i] += c
		}
	}
	return totals
}

// ColTotals returns per-column marginal totals.
func (t *ContingencyTable) ColTotals() []int {
	totals := make([]int, len(t.Cols))
	for _, row := range t.Counts {
		for j, c := range row {
			totals[j] += c
		}
	}
	return totals
}

// N returns the total observation count.
func (t *ContingencyTable) N() int {
	n := 0
	for _, row := range t.Counts {
		for _, c := range row {
			n += c
		}
	}
	return n
}

// CategoryCount is one category with its occurrence count, ordered by the
// stable descending-count sort of the frequency distribution.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// FrequencyResult summarizes one categorical variable.
type FrequencyResult struct {
	VariableName      string             `json:"variable_name"`
	AnalysisType      string             `json:"analysis_type"`
	TotalObservations int                `json:"total_observations"`
	UniqueCategories  int                `json:"unique_categories"`
	Frequencies       []CategoryCount    `json:"frequencies"`
	Proportions       map[string]float64 `json:"proportions"`
	ModeCategory      string             `json:"mode_category"`
	ModeCount         int                `json:"mode_count"`
	ModeProportion    float64            `json:"mode_proportion"`
	Entropy           float64            `json:"entropy"`
	MaxEntropy        float64            `json:"max_entropy"`
	EntropyRatio      *float64           `json:"entropy_ratio,omitempty"`
}

// ============================================================================
// RESULT BAG
// ============================================================================

// Entry is a tagged outcome: either a populated result record or an error.
// The JSON form of a failed entry is {"error": "..."} to match the
// formatter contract.
type Entry struct {
	Result interface{}
	Err    error
}

// Ok wraps a successful result.
func Ok(result interface{}) Entry {
	return Entry{Result: result}
}

// Fail wraps an analysis error.
func Fail(err error) Entry {
	return Entry{Err: err}
}

// Failed reports whether the entry carries an error.
func (e Entry) Failed() bool {
	return e.Err != nil
}

func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Err != nil {
		return json.Marshal(map[string]string{"error": e.Err.Error()})
	}
	return json.Marshal(e.Result)
}

// ResultBag maps result-role keys (t_test, anova, correlation, chi_square,
// descriptive_<name>, frequency_<name>, distribution_<name>) to entries,
// preserving insertion order for deterministic reports.
type ResultBag struct {
	keys    []string
	entries map[string]Entry
}

// NewResultBag creates an empty bag.
func NewResultBag() *ResultBag {
	return &ResultBag{entries: make(map[string]Entry)}
}

// Set stores an entry under a role key.
func (b *ResultBag) Set(key string, entry Entry) {
	if _, ok := b.entries[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.entries[key] = entry
}

// Get returns the entry for a role key.
func (b *ResultBag) Get(key string) (Entry, bool) {
	e, ok := b.entries[key]
	return e, ok
}

// Keys returns role keys in insertion order.
func (b *ResultBag) Keys() []string {
	return b.keys
}

// Len returns the number of entries.
func (b *ResultBag) Len() int {
	if b == nil {
		return 0
	}
	return len(b.keys)
}

// MarshalJSON renders the bag as a JSON object in insertion order.
func (b *ResultBag) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range b.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(b.entries[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ============================================================================
// ANALYSIS RECORDS
// ============================================================================

// VariableOverview is the lightweight per-variable snapshot kept in history
// for aggregate reporting.
type VariableOverview struct {
	Type         string   `json:"type"` // "numerical" or "categorical"
	SampleSize   int      `json:"sample_size"`
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	Mean         *float64 `json:"mean,omitempty"`
	UniqueValues *int     `json:"unique_values,omitempty"`
}

// AnalysisRecord is one orchestrator call: what was asked, what ran, and
// what came out. Records are append-only and never mutated.
type AnalysisRecord struct {
	ID            core.ID                     `json:"id"`
	RequestedType AnalysisType                `json:"requested_type"`
	ResolvedType  AnalysisType                `json:"analysis_type"`
	DataOverview  map[string]VariableOverview `json:"data_overview,omitempty"`
	GroupOverview map[string]VariableOverview `json:"group_overview,omitempty"`
	Results       *ResultBag                  `json:"results"`
	CreatedAt     core.Timestamp              `json:"created_at"`
}
