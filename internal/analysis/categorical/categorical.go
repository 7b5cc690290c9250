// Package categorical builds contingency tables and frequency
// distributions over label sequences.
package categorical

import (
	"math"
	"sort"

	"statcanvas/domain/core"
	domstats "statcanvas/domain/stats"
)

// BuildContingencyTable cross-tabulates two equal-length label sequences.
// Both axes are sorted lexicographically so the table layout depends only
// on the category sets, never on input order. Cells count exact
// co-occurrences by paired index.
func BuildContingencyTable(var1, var2 []string) *domstats.ContingencyTable {
	rows := uniqueSorted(var1)
	cols := uniqueSorted(var2)

	rowIdx := indexOf(rows)
	colIdx := indexOf(cols)

	counts := make([][]int, len(rows))
	for i := range counts {
		counts[i] = make([]int, len(cols))
	}
	for i := range var1 {
		counts[rowIdx[var1[i]]][colIdx[var2[i]]]++
	}

	return &domstats.ContingencyTable{Rows: rows, Cols: cols, Counts: counts}
}

func uniqueSorted(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			out = append(out, l)
		}
	}
	sort.Strings(out)
	return out
}

func indexOf(sorted []string) map[string]int {
	idx := make(map[string]int, len(sorted))
	for i, s := range sorted {
		idx[s] = i
	}
	return idx
}

// FrequencyDistribution summarizes one categorical variable: counts sorted
// descending (stable, so ties keep first-seen order), proportions, mode,
// and Shannon entropy in bits.
func FrequencyDistribution(labels []string, name string) (*domstats.FrequencyResult, error) {
	if len(labels) == 0 {
		return nil, core.ErrEmptySample
	}

	counts := make(map[string]int, len(labels))
	var firstSeen []string
	for _, l := range labels {
		if _, ok := counts[l]; !ok {
			firstSeen = append(firstSeen, l)
		}
		counts[l]++
	}

	ordered := make([]domstats.CategoryCount, 0, len(firstSeen))
	for _, cat := range firstSeen {
		ordered = append(ordered, domstats.CategoryCount{Category: cat, Count: counts[cat]})
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Count > ordered[j].Count
	})

	total := len(labels)
	unique := len(firstSeen)

	proportions := make(map[string]float64, unique)
	entropy := 0.0
	for cat, count := range counts {
		p := float64(count) / float64(total)
		proportions[cat] = core.Round3(p)
		entropy -= p * math.Log2(p)
	}

	mode := ordered[0]

	result := &domstats.FrequencyResult{
		VariableName:      name,
		AnalysisType:      "Frequency Distribution Analysis",
		TotalObservations: total,
		UniqueCategories:  unique,
		Frequencies:       ordered,
		Proportions:       proportions,
		ModeCategory:      mode.Category,
		ModeCount:         mode.Count,
		ModeProportion:    core.Round3(float64(mode.Count) / float64(total)),
		Entropy:           core.Round3(entropy),
	}

	if unique > 1 {
		maxEntropy := math.Log2(float64(unique))
		ratio := core.Round3(entropy / maxEntropy)
		result.MaxEntropy = core.Round3(maxEntropy)
		result.EntropyRatio = &ratio
	}

	return result, nil
}
