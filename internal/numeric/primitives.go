// Package numeric holds the shared statistical primitives under the
// analysis engines.
//
// The p-value paths (TToP, ChiSquareToP, FToP) and the t-critical table are
// deliberately coarse threshold lookups rather than distribution CDF
// inversions. Downstream report buckets and the recorded expectations
// depend on these exact thresholds, so they are a known precision tradeoff,
// not a place to substitute distuv.
package numeric

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Percentile computes the p-th percentile (0-100) with linear interpolation
// at rank k=(n-1)*p/100, clamping to the first or last element when the
// interpolated index leaves the sample. The caller guarantees a non-empty
// sample.
func Percentile(values []float64, p float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	n := len(sorted)
	k := float64(n-1) * p / 100
	floorK := int(math.Floor(k))
	ceilK := floorK + 1

	if ceilK >= n {
		return sorted[n-1]
	}
	if floorK < 0 {
		return sorted[0]
	}
	return sorted[floorK] + (k-float64(floorK))*(sorted[ceilK]-sorted[floorK])
}

// Variance is the sum of squared deviations over (n - ddof). It returns 0
// when n <= ddof instead of dividing by zero.
func Variance(values []float64, ddof int) float64 {
	n := len(values)
	if n <= ddof {
		return 0
	}
	mean, _ := stats.Mean(values)
	sum := 0.0
	for _, x := range values {
		d := x - mean
		sum += d * d
	}
	return sum / float64(n-ddof)
}

// tTable holds two-tailed critical values at alpha=0.05.
var tTable = map[int]float64{
	1: 12.706, 2: 4.303, 3: 3.182, 4: 2.776, 5: 2.571,
	6: 2.447, 7: 2.365, 8: 2.306, 9: 2.262, 10: 2.228,
	15: 2.131, 20: 2.086, 25: 2.060, 30: 2.042,
}

var tTableKeys = func() []int {
	keys := make([]int, 0, len(tTable))
	for k := range tTable {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}()

// TCritical approximates the two-tailed t critical value at alpha=0.05.
// Exact for tabulated df, 1.96 (normal approximation) for df>30, linear
// interpolation between the nearest table keys otherwise.
func TCritical(df int) float64 {
	if v, ok := tTable[df]; ok {
		return v
	}
	if df > 30 {
		return 1.96
	}
	lower, upper := tTableKeys[0], tTableKeys[len(tTableKeys)-1]
	for _, k := range tTableKeys {
		if k < df {
			lower = k
		}
		if k > df {
			upper = k
			break
		}
	}
	ratio := float64(df-lower) / float64(upper-lower)
	return tTable[lower] + ratio*(tTable[upper]-tTable[lower])
}

// TToP approximates a two-tailed p-value from a t statistic. The buckets
// ignore df entirely.
func TToP(t float64, df int) float64 {
	absT := math.Abs(t)
	switch {
	case absT > 3.5:
		return 0.001
	case absT > 2.8:
		return 0.01
	case absT > 2.0:
		return 0.05
	case absT > 1.5:
		return 0.1
	default:
		return 0.2
	}
}

// chiSquareBuckets maps low-df critical values to p buckets: thresholds are
// the 0.001/0.01/0.05/0.1 upper-tail critical values for df 1..3.
var chiSquareBuckets = map[int][4]float64{
	1: {10.83, 6.64, 3.84, 2.71},
	2: {13.82, 9.21, 5.99, 4.61},
	3: {16.27, 11.34, 7.81, 6.25},
}

// ChiSquareToP approximates an upper-tail p-value for a chi-square
// statistic. df 1..3 use literal critical tables; higher df use the rough
// normal approximation df + k*sqrt(2*df).
func ChiSquareToP(chi2 float64, df int) float64 {
	if b, ok := chiSquareBuckets[df]; ok {
		switch {
		case chi2 > b[0]:
			return 0.001
		case chi2 > b[1]:
			return 0.01
		case chi2 > b[2]:
			return 0.05
		case chi2 > b[3]:
			return 0.1
		default:
			return 0.2
		}
	}

	spread := math.Sqrt(2 * float64(df))
	switch {
	case chi2 > float64(df)+3.09*spread:
		return 0.001
	case chi2 > float64(df)+2.32*spread:
		return 0.01
	case chi2 > float64(df)+1.64*spread:
		return 0.05
	default:
		return 0.1
	}
}

// FToP approximates a p-value from a one-way ANOVA F statistic.
func FToP(f float64) float64 {
	switch {
	case f > 5.0:
		return 0.001
	case f > 3.5:
		return 0.01
	case f > 2.5:
		return 0.05
	default:
		return 0.1
	}
}

// PearsonCorrelation returns r and an approximate two-tailed p-value.
// Degenerate inputs (n<2, mismatched lengths, zero variance in either
// sample) yield (0, 1) rather than an error. |r|=1 maps to p=0.001 to
// avoid the division by zero in the t transform.
func PearsonCorrelation(x, y []float64) (r, pValue float64) {
	n := len(x)
	if n != len(y) || n < 2 {
		return 0, 1
	}

	meanX, _ := stats.Mean(x)
	meanY, _ := stats.Mean(y)
	sumSqX, sumSqY := 0.0, 0.0
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sumSqX += dx * dx
		sumSqY += dy * dy
	}
	if sumSqX == 0 || sumSqY == 0 {
		return 0, 1
	}

	r = stat.Correlation(x, y, nil)

	if math.Abs(r) >= 1 {
		return r, 0.001
	}
	t := r * math.Sqrt(float64(n-2)/(1-r*r))
	return r, TToP(t, n-2)
}
