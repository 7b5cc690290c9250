package app

import (
	"fmt"

	"statcanvas/domain/core"
	"statcanvas/domain/stats"
	"statcanvas/internal"
	"statcanvas/internal/analysis/categorical"
	"statcanvas/internal/analysis/descriptive"
	"statcanvas/internal/analysis/detect"
	"statcanvas/internal/analysis/hypothesis"
	"statcanvas/ports"
)

// AnalyzeRequest carries one analysis call. Either Data or Groups must be
// populated; AnalysisType may be "auto" or empty to let the detector decide.
type AnalyzeRequest struct {
	ConversationID core.ConversationID
	Data           *core.Samples
	Groups         *core.Samples
	AnalysisType   stats.AnalysisType
}

// Analyzer runs statistical analyses and records every call, including
// failed ones, in conversation history.
type Analyzer struct {
	history ports.HistoryStore
	log     *internal.Logger
}

func NewAnalyzer(history ports.HistoryStore, log *internal.Logger) *Analyzer {
	if log == nil {
		log = internal.NewDefaultLogger()
	}
	return &Analyzer{history: history, log: log}
}

// Analyze resolves the analysis type, runs every computation the type calls
// for, and appends the resulting record to conversation history. Individual
// computation failures land in the result bag as error entries; only an
// empty request is rejected outright.
func (a *Analyzer) Analyze(req AnalyzeRequest) (*stats.AnalysisRecord, error) {
	if samplesEmpty(req.Data) && samplesEmpty(req.Groups) {
		return nil, fmt.Errorf("analyze: no data or groups provided")
	}

	requested := req.AnalysisType
	if requested == "" {
		requested = stats.TypeAuto
	}
	resolved := requested
	if resolved == stats.TypeAuto {
		resolved = detect.Detect(req.Data, req.Groups)
		a.log.Debug("auto-detected analysis type %s", resolved)
	}

	bag := a.dispatch(resolved, req.Data, req.Groups)

	record := &stats.AnalysisRecord{
		ID:            core.NewID(),
		RequestedType: requested,
		ResolvedType:  resolved,
		DataOverview:  buildOverview(req.Data),
		GroupOverview: buildOverview(req.Groups),
		Results:       bag,
		CreatedAt:     core.Now(),
	}

	if a.history != nil {
		a.history.Append(req.ConversationID, *record)
	}
	return record, nil
}

// History returns the analysis records for a conversation in call order.
func (a *Analyzer) History(id core.ConversationID) []stats.AnalysisRecord {
	if a.history == nil {
		return nil
	}
	return a.history.History(id)
}

func (a *Analyzer) dispatch(t stats.AnalysisType, data, groups *core.Samples) *stats.ResultBag {
	bag := stats.NewResultBag()

	switch t {
	case stats.TypeDescriptive:
		for _, name := range namesOf(data) {
			s, _ := data.Get(name)
			r, err := descriptive.Describe(s)
			bag.Set("descriptive_"+name, entryOf(r, err))
		}

	case stats.TypeComprehensiveDescriptive:
		for _, name := range namesOf(data) {
			s, _ := data.Get(name)
			r, err := descriptive.AnalyzeDistribution(s, name)
			bag.Set("distribution_"+name, entryOf(r, err))
		}

	case stats.TypePairedComparison:
		before, okB := getSample(data, "before")
		after, okA := getSample(data, "after")
		if okB && okA {
			r, err := descriptive.Describe(before)
			bag.Set("descriptive_before", entryOf(r, err))
			r, err = descriptive.Describe(after)
			bag.Set("descriptive_after", entryOf(r, err))
			tt, err := hypothesis.PairedTTest(before, after)
			bag.Set("t_test", entryOf(tt, err))
		} else {
			bag.Set("t_test", stats.Fail(fmt.Errorf("paired comparison requires 'before' and 'after' variables")))
		}

	case stats.TypeTwoGroupComparison:
		names := namesOf(groups)
		for _, name := range names {
			s, _ := groups.Get(name)
			r, err := descriptive.Describe(s)
			bag.Set("descriptive_"+name, entryOf(r, err))
		}
		if len(names) >= 2 {
			g1, _ := groups.Get(names[0])
			g2, _ := groups.Get(names[1])
			tt, err := hypothesis.IndependentTTest(g1, g2)
			bag.Set("t_test", entryOf(tt, err))
		} else {
			bag.Set("t_test", stats.Fail(fmt.Errorf("two group comparison requires at least 2 groups")))
		}

	case stats.TypeAnova, stats.TypeMultiGroupComparison:
		for _, name := range namesOf(groups) {
			s, _ := groups.Get(name)
			r, err := descriptive.Describe(s)
			bag.Set("descriptive_"+name, entryOf(r, err))
		}
		an, err := hypothesis.OneWayAnova(groups)
		bag.Set("anova", entryOf(an, err))

	case stats.TypeCorrelation:
		names := namesOf(data)
		for _, name := range names {
			s, _ := data.Get(name)
			r, err := descriptive.Describe(s)
			bag.Set("descriptive_"+name, entryOf(r, err))
		}
		if len(names) >= 2 {
			v1, _ := data.Get(names[0])
			v2, _ := data.Get(names[1])
			cr, err := hypothesis.CorrelationTest(v1, v2)
			bag.Set("correlation", entryOf(cr, err))
		} else {
			bag.Set("correlation", stats.Fail(fmt.Errorf("correlation requires 2 variables")))
		}

	case stats.TypeChiSquare:
		names := namesOf(data)
		if len(names) >= 2 {
			v1, _ := data.Get(names[0])
			v2, _ := data.Get(names[1])
			fr, err := categorical.FrequencyDistribution(v1.Labels(), names[0])
			bag.Set("frequency_"+names[0], entryOf(fr, err))
			fr, err = categorical.FrequencyDistribution(v2.Labels(), names[1])
			bag.Set("frequency_"+names[1], entryOf(fr, err))
			cs, err := hypothesis.ChiSquareTest(v1, v2, names[0], names[1])
			bag.Set("chi_square", entryOf(cs, err))
		} else {
			bag.Set("chi_square", stats.Fail(fmt.Errorf("chi-square test requires 2 variables")))
		}

	case stats.TypeFrequency:
		names := namesOf(data)
		if len(names) >= 1 {
			s, _ := data.Get(names[0])
			fr, err := categorical.FrequencyDistribution(s.Labels(), names[0])
			bag.Set("frequency_"+names[0], entryOf(fr, err))
		}

	default:
		a.log.Warn("unknown analysis type %q, returning empty results", t)
	}

	return bag
}

// buildOverview summarizes each variable for the history record without
// rerunning full analyses.
func buildOverview(samples *core.Samples) map[string]stats.VariableOverview {
	if samplesEmpty(samples) {
		return nil
	}
	overview := make(map[string]stats.VariableOverview, samples.Len())
	for _, name := range samples.Names() {
		s, _ := samples.Get(name)
		overview[name] = overviewOf(s)
	}
	return overview
}

func overviewOf(s core.Sample) stats.VariableOverview {
	if s.IsCategorical() {
		unique := make(map[string]struct{}, len(s))
		for _, v := range s {
			unique[v.Label] = struct{}{}
		}
		n := len(unique)
		return stats.VariableOverview{
			Type:         "categorical",
			SampleSize:   len(s),
			UniqueValues: &n,
		}
	}
	values, err := s.Floats()
	if err != nil || len(values) == 0 {
		return stats.VariableOverview{Type: "categorical", SampleSize: len(s)}
	}
	min, max, sum := values[0], values[0], 0.0
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	mean := core.Round2(sum / float64(len(values)))
	return stats.VariableOverview{
		Type:       "numerical",
		SampleSize: len(values),
		Min:        &min,
		Max:        &max,
		Mean:       &mean,
	}
}

func entryOf(result interface{}, err error) stats.Entry {
	if err != nil {
		return stats.Fail(err)
	}
	return stats.Ok(result)
}

func samplesEmpty(s *core.Samples) bool {
	return s == nil || s.Len() == 0
}

func namesOf(s *core.Samples) []string {
	if s == nil {
		return nil
	}
	return s.Names()
}

func getSample(s *core.Samples, name string) (core.Sample, bool) {
	if s == nil {
		return nil, false
	}
	return s.Get(name)
}
