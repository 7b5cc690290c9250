// Package report renders analysis records into client-facing structures.
// Formatting is mechanical: it regroups fields and never recomputes or
// mutates any statistic.
package report

import (
	"fmt"

	"statcanvas/domain/core"
	"statcanvas/domain/stats"
)

// AnalysisReport is the formatted view of a single analysis call. Sections
// holds one block per result-bag entry, in bag order.
type AnalysisReport struct {
	AnalysisType stats.AnalysisType `json:"analysis_type"`
	Sections     []Section          `json:"sections"`
	Note         string             `json:"note,omitempty"`
}

// Section pairs a result role with its formatted content.
type Section struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

// DescriptiveReport regroups a DescriptiveResult into reader-facing blocks.
type DescriptiveReport struct {
	SampleSize         int                       `json:"sample_size"`
	CentralTendency    map[string]float64        `json:"central_tendency"`
	Variability        map[string]float64        `json:"variability"`
	Percentiles        map[string]float64        `json:"percentiles,omitempty"`
	ConfidenceInterval *stats.ConfidenceInterval `json:"confidence_interval,omitempty"`
	Quartiles          *stats.QuartileSummary    `json:"quartiles,omitempty"`
	Skewness           *float64                  `json:"skewness,omitempty"`
}

type failedSection struct {
	Error string `json:"error"`
}

// FormatAnalysis builds the per-call report for one record. An empty result
// bag yields a note instead of sections.
func FormatAnalysis(record *stats.AnalysisRecord) *AnalysisReport {
	rep := &AnalysisReport{AnalysisType: record.ResolvedType}
	if record.Results.Len() == 0 {
		rep.Note = "No results produced for this analysis."
		return rep
	}
	for _, key := range record.Results.Keys() {
		entry, _ := record.Results.Get(key)
		rep.Sections = append(rep.Sections, Section{Role: key, Content: formatEntry(entry)})
	}
	return rep
}

func formatEntry(entry stats.Entry) interface{} {
	if entry.Failed() {
		return failedSection{Error: entry.Err.Error()}
	}
	if d, ok := entry.Result.(*stats.DescriptiveResult); ok {
		return formatDescriptive(d)
	}
	return entry.Result
}

func formatDescriptive(d *stats.DescriptiveResult) *DescriptiveReport {
	variability := map[string]float64{
		"std":      d.Std,
		"variance": d.Variance,
		"min":      d.Min,
		"max":      d.Max,
		"range":    d.Range,
	}
	if d.CoefficientOfVariation != nil {
		variability["coefficient_of_variation"] = *d.CoefficientOfVariation
	}
	return &DescriptiveReport{
		SampleSize: d.N,
		CentralTendency: map[string]float64{
			"mean":   d.Mean,
			"median": d.Median,
		},
		Variability:        variability,
		Percentiles:        d.Percentiles,
		ConfidenceInterval: d.MeanCI,
		Quartiles:          d.Quartiles,
		Skewness:           d.Skewness,
	}
}

// ============================================================================
// CONVERSATION REPORT
// ============================================================================

// TTestSummary is one t-test in the conversation aggregate.
type TTestSummary struct {
	AnalysisID    core.ID   `json:"analysis_id"`
	TestType      string    `json:"test_type"`
	TStatistic    core.Stat `json:"t_statistic"`
	PValueDisplay string    `json:"p_value_display"`
	EffectSize    string    `json:"effect_size"`
	Significant   bool      `json:"significant"`
}

// CorrelationSummary is one correlation in the conversation aggregate.
type CorrelationSummary struct {
	AnalysisID    core.ID `json:"analysis_id"`
	Coefficient   float64 `json:"correlation_coefficient"`
	PValueDisplay string  `json:"p_value_display"`
	Strength      string  `json:"strength"`
	Direction     string  `json:"direction"`
}

// GroupComparisonSummary is one ANOVA in the conversation aggregate.
type GroupComparisonSummary struct {
	AnalysisID    core.ID   `json:"analysis_id"`
	FStatistic    core.Stat `json:"f_statistic"`
	PValueDisplay string    `json:"p_value_display"`
	EtaSquared    float64   `json:"eta_squared"`
	PosthocCount  int       `json:"posthoc_count"`
	Significant   bool      `json:"significant"`
}

// CategoricalSummary is one chi-square test in the conversation aggregate.
type CategoricalSummary struct {
	AnalysisID    core.ID `json:"analysis_id"`
	Variables     string  `json:"variables"`
	ChiSquare     float64 `json:"chi_square_statistic"`
	PValueDisplay string  `json:"p_value_display"`
	CramersV      float64 `json:"cramers_v"`
	Association   string  `json:"association"`
}

// AnalysisSummary is the per-record detail block with input overviews.
type AnalysisSummary struct {
	ID            core.ID                           `json:"id"`
	AnalysisType  stats.AnalysisType                `json:"analysis_type"`
	DataOverview  map[string]stats.VariableOverview `json:"data_overview,omitempty"`
	GroupOverview map[string]stats.VariableOverview `json:"group_overview,omitempty"`
	ResultCount   int                               `json:"result_count"`
	FailedResults []string                          `json:"failed_results,omitempty"`
	CreatedAt     core.Timestamp                    `json:"created_at"`
}

// SummaryStatistics counts outcomes across the whole conversation.
type SummaryStatistics struct {
	TotalTests            int `json:"total_tests"`
	SignificantResults    int `json:"significant_results"`
	EffectSizesCalculated int `json:"effect_sizes_calculated"`
	FailedAnalyses        int `json:"failed_analyses"`
}

// ConversationReport aggregates every analysis run in one conversation.
type ConversationReport struct {
	ConversationID      core.ConversationID      `json:"conversation_id"`
	TotalAnalyses       int                      `json:"total_analyses"`
	TTests              []TTestSummary           `json:"t_tests,omitempty"`
	Correlations        []CorrelationSummary     `json:"correlations,omitempty"`
	GroupComparisons    []GroupComparisonSummary `json:"group_comparisons,omitempty"`
	CategoricalAnalyses []CategoricalSummary     `json:"categorical_analyses,omitempty"`
	Analyses            []AnalysisSummary        `json:"analyses"`
	Summary             SummaryStatistics        `json:"summary_statistics"`
	Note                string                   `json:"note,omitempty"`
}

// BuildConversationReport walks the conversation history and groups test
// outcomes by kind.
func BuildConversationReport(id core.ConversationID, records []stats.AnalysisRecord) *ConversationReport {
	rep := &ConversationReport{
		ConversationID: id,
		TotalAnalyses:  len(records),
	}
	if len(records) == 0 {
		rep.Note = "No analyses recorded for this conversation."
		return rep
	}

	for _, record := range records {
		summary := AnalysisSummary{
			ID:            record.ID,
			AnalysisType:  record.ResolvedType,
			DataOverview:  record.DataOverview,
			GroupOverview: record.GroupOverview,
			ResultCount:   record.Results.Len(),
			CreatedAt:     record.CreatedAt,
		}
		for _, key := range record.Results.Keys() {
			entry, _ := record.Results.Get(key)
			if entry.Failed() {
				summary.FailedResults = append(summary.FailedResults, key)
				rep.Summary.FailedAnalyses++
				continue
			}
			collectResult(rep, record.ID, entry.Result)
		}
		rep.Analyses = append(rep.Analyses, summary)
	}
	return rep
}

func collectResult(rep *ConversationReport, id core.ID, result interface{}) {
	switch r := result.(type) {
	case *stats.TTestResult:
		rep.TTests = append(rep.TTests, TTestSummary{
			AnalysisID:    id,
			TestType:      r.TestType,
			TStatistic:    r.TStatistic,
			PValueDisplay: r.PValueDisplay,
			EffectSize:    r.EffectSizeCategory,
			Significant:   r.PValue < 0.05,
		})
		rep.Summary.TotalTests++
		rep.Summary.EffectSizesCalculated++
		if r.PValue < 0.05 {
			rep.Summary.SignificantResults++
		}
	case *stats.CorrelationResult:
		rep.Correlations = append(rep.Correlations, CorrelationSummary{
			AnalysisID:    id,
			Coefficient:   r.Coefficient,
			PValueDisplay: r.PValueDisplay,
			Strength:      r.StrengthCategory,
			Direction:     r.Direction,
		})
		rep.Summary.TotalTests++
		if r.PValue < 0.05 {
			rep.Summary.SignificantResults++
		}
	case *stats.AnovaResult:
		rep.GroupComparisons = append(rep.GroupComparisons, GroupComparisonSummary{
			AnalysisID:    id,
			FStatistic:    r.FStatistic,
			PValueDisplay: r.PValueDisplay,
			EtaSquared:    r.EtaSquared,
			PosthocCount:  len(r.Posthoc),
			Significant:   r.PValue < 0.05,
		})
		rep.Summary.TotalTests++
		rep.Summary.EffectSizesCalculated++
		if r.PValue < 0.05 {
			rep.Summary.SignificantResults++
		}
	case *stats.ChiSquareResult:
		rep.CategoricalAnalyses = append(rep.CategoricalAnalyses, CategoricalSummary{
			AnalysisID:    id,
			Variables:     fmt.Sprintf("%s vs %s", r.Variable1, r.Variable2),
			ChiSquare:     r.ChiSquareStatistic,
			PValueDisplay: r.PValueDisplay,
			CramersV:      r.CramersV,
			Association:   r.EffectSizeCategory,
		})
		rep.Summary.TotalTests++
		rep.Summary.EffectSizesCalculated++
		if r.PValue < 0.05 {
			rep.Summary.SignificantResults++
		}
	}
}
