package core

import (
	"fmt"
	"math"
	"strconv"
)

// Round3 rounds to 3 decimal places for presentation. Engines keep full
// precision internally and round only when populating result records.
func Round3(x float64) float64 {
	return roundTo(x, 3)
}

// Round2 rounds to 2 decimal places (coefficient of variation).
func Round2(x float64) float64 {
	return roundTo(x, 2)
}

// Round1 rounds to 1 decimal place (percentage fields).
func Round1(x float64) float64 {
	return roundTo(x, 1)
}

func roundTo(x float64, places int) float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}
	shift := math.Pow(10, float64(places))
	return math.Round(x*shift) / shift
}

// Stat is a float64 whose JSON form survives infinities. Degenerate
// computations produce sentinel ±Inf statistics and encoding/json refuses
// to marshal those, so infinite values render as quoted strings instead.
type Stat float64

func (s Stat) MarshalJSON() ([]byte, error) {
	f := float64(s)
	switch {
	case math.IsInf(f, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Infinity"`), nil
	case math.IsNaN(f):
		return []byte("null"), nil
	default:
		return []byte(fmt.Sprintf("%g", f)), nil
	}
}

func (s *Stat) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"Infinity"`:
		*s = Stat(math.Inf(1))
		return nil
	case `"-Infinity"`:
		*s = Stat(math.Inf(-1))
		return nil
	case "null":
		*s = Stat(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*s = Stat(f)
	return nil
}
