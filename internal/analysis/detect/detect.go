// Package detect picks the analysis type from the shape of the supplied
// data and groups. It is a pure function of input shape: counts, the
// before/after naming convention, and the categorical classifier.
package detect

import (
	"statcanvas/domain/core"
	domstats "statcanvas/domain/stats"
)

// Detect resolves "auto" requests against a fixed decision table,
// evaluated in strict priority order: groups first, then data, then the
// single-variable default (unreachable in normal use but kept as the
// documented fallback).
func Detect(data, groups *core.Samples) domstats.AnalysisType {
	if groups.Len() > 2 {
		return domstats.TypeAnova
	}
	if groups.Len() == 2 {
		return domstats.TypeTwoGroupComparison
	}

	switch n := data.Len(); {
	case n == 0:
		return domstats.TypeComprehensiveDescriptive
	case data.Has("before") && data.Has("after"):
		return domstats.TypePairedComparison
	case n == 1:
		sample, _ := data.Get(data.Names()[0])
		if sample.IsCategorical() {
			return domstats.TypeFrequency
		}
		return domstats.TypeComprehensiveDescriptive
	case n == 2:
		first, _ := data.Get(data.Names()[0])
		second, _ := data.Get(data.Names()[1])
		if first.IsCategorical() && second.IsCategorical() {
			return domstats.TypeChiSquare
		}
		return domstats.TypeCorrelation
	default:
		// Three or more variables: correlate the first two.
		return domstats.TypeCorrelation
	}
}
