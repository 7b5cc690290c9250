package hypothesis

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/combin"

	"statcanvas/domain/core"
	domstats "statcanvas/domain/stats"
	"statcanvas/internal/numeric"
)

// OneWayAnova partitions variance between and within the named groups.
// F is +Inf when the within-group mean square is zero. Post-hoc pairwise
// t-tests run only when the omnibus p < 0.05 and there are more than two
// groups; the pairs are uncorrected for multiple comparisons, which is a
// documented limitation of this procedure.
func OneWayAnova(groups *core.Samples) (*domstats.AnovaResult, error) {
	if groups.Len() == 0 {
		return nil, core.ErrEmptySample
	}

	names := groups.Names()
	k := len(names)

	groupValues := make([][]float64, k)
	groupMeans := make([]float64, k)
	var all []float64
	for i, name := range names {
		sample, _ := groups.Get(name)
		if len(sample) == 0 {
			return nil, core.ErrEmptySample
		}
		values, err := sample.Floats()
		if err != nil {
			return nil, err
		}
		groupValues[i] = values
		groupMeans[i], _ = stats.Mean(values)
		all = append(all, values...)
	}

	grandMean, _ := stats.Mean(all)
	totalN := len(all)

	ssBetween, ssWithin := 0.0, 0.0
	for i, values := range groupValues {
		d := groupMeans[i] - grandMean
		ssBetween += float64(len(values)) * d * d
		for _, v := range values {
			w := v - groupMeans[i]
			ssWithin += w * w
		}
	}

	dfBetween := k - 1
	dfWithin := totalN - k

	msBetween, msWithin := 0.0, 0.0
	if dfBetween > 0 {
		msBetween = ssBetween / float64(dfBetween)
	}
	if dfWithin > 0 {
		msWithin = ssWithin / float64(dfWithin)
	}

	f := math.Inf(1)
	if msWithin > 0 {
		f = msBetween / msWithin
	}

	p := numeric.FToP(f)

	etaSquared := 0.0
	if ssBetween+ssWithin > 0 {
		etaSquared = ssBetween / (ssBetween + ssWithin)
	}

	posthoc := []domstats.PosthocComparison{}
	if p < 0.05 && k > 2 {
		posthoc = posthocComparisons(groups, names, groupMeans)
	}

	return &domstats.AnovaResult{
		TestType:           "One-way ANOVA",
		FStatistic:         core.Stat(core.Round3(f)),
		PValue:             p,
		PValueDisplay:      PValueDisplay(p),
		DFBetween:          dfBetween,
		DFWithin:           dfWithin,
		EtaSquared:         core.Round3(etaSquared),
		EffectSizeCategory: etaSquaredCategory(etaSquared),
		Posthoc:            posthoc,
	}, nil
}

// posthocComparisons runs an independent t-test for every unordered pair
// of groups.
func posthocComparisons(groups *core.Samples, names []string, means []float64) []domstats.PosthocComparison {
	pairs := combin.Combinations(len(names), 2)
	out := make([]domstats.PosthocComparison, 0, len(pairs))

	for _, pair := range pairs {
		i, j := pair[0], pair[1]
		sample1, _ := groups.Get(names[i])
		sample2, _ := groups.Get(names[j])

		pValue := 1.0
		if result, err := IndependentTTest(sample1, sample2); err == nil {
			pValue = result.PValue
		}

		out = append(out, domstats.PosthocComparison{
			Comparison:     fmt.Sprintf("%s vs %s", names[i], names[j]),
			MeanDifference: core.Round3(means[i] - means[j]),
			PValue:         pValue,
			Significant:    pValue < 0.05,
		})
	}
	return out
}
