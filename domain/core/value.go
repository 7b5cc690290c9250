package core

import (
	"fmt"
	"strconv"
)

// Value is a single observation, typed once at ingestion. A value ingested
// from a string keeps its label even when the label happens to parse as a
// number: categorical analyses must never coerce "1" into 1.0.
type Value struct {
	Label      string
	Num        float64
	fromString bool
	parses     bool
}

// NumericValue wraps a native number.
func NumericValue(f float64) Value {
	return Value{
		Label:  strconv.FormatFloat(f, 'g', -1, 64),
		Num:    f,
		parses: true,
	}
}

// StringValue wraps a raw label, probing once whether it reads as a number.
func StringValue(s string) Value {
	f, err := strconv.ParseFloat(s, 64)
	return Value{
		Label:      s,
		Num:        f,
		fromString: true,
		parses:     err == nil,
	}
}

// ValueOf converts an arbitrary decoded JSON scalar into a Value.
func ValueOf(v interface{}) (Value, error) {
	switch x := v.(type) {
	case float64:
		return NumericValue(x), nil
	case int:
		return NumericValue(float64(x)), nil
	case string:
		return StringValue(x), nil
	case bool:
		if x {
			return StringValue("true"), nil
		}
		return StringValue("false"), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", v)
	}
}

// IsCategoricalLabel reports whether this value counts toward a categorical
// sample: a string that does not read as a number. Native numbers and
// numeric-looking strings both disqualify.
func (v Value) IsCategoricalLabel() bool {
	return v.fromString && !v.parses
}

// Float returns the numeric reading of the value.
func (v Value) Float() (float64, error) {
	if !v.parses {
		return 0, fmt.Errorf("%w: %q", ErrNonNumeric, v.Label)
	}
	return v.Num, nil
}

// Sample is an ordered sequence of observations for one variable.
type Sample []Value

// SampleFromFloats builds a numeric sample.
func SampleFromFloats(vals []float64) Sample {
	s := make(Sample, len(vals))
	for i, v := range vals {
		s[i] = NumericValue(v)
	}
	return s
}

// SampleFromStrings builds a sample from raw labels (CSV/XLSX cells).
func SampleFromStrings(vals []string) Sample {
	s := make(Sample, len(vals))
	for i, v := range vals {
		s[i] = StringValue(v)
	}
	return s
}

// SampleFromValues builds a sample from decoded JSON scalars.
func SampleFromValues(vals []interface{}) (Sample, error) {
	s := make(Sample, len(vals))
	for i, raw := range vals {
		v, err := ValueOf(raw)
		if err != nil {
			return nil, err
		}
		s[i] = v
	}
	return s, nil
}

// IsCategorical reports whether every element is a non-numeric string.
// An empty sample is not categorical.
func (s Sample) IsCategorical() bool {
	if len(s) == 0 {
		return false
	}
	for _, v := range s {
		if !v.IsCategoricalLabel() {
			return false
		}
	}
	return true
}

// Floats coerces the whole sample to numbers, failing on the first value
// that has no numeric reading.
func (s Sample) Floats() ([]float64, error) {
	out := make([]float64, len(s))
	for i, v := range s {
		f, err := v.Float()
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// Labels returns the string form of every observation.
func (s Sample) Labels() []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = v.Label
	}
	return out
}

// Samples maps variable or group names to their observations while keeping
// the caller's name order, which drives deterministic dispatch (correlation
// uses the first two variables, chi-square names variables by position).
type Samples struct {
	names map[string]Sample
	order []string
}

// NewSamples creates an empty collection.
func NewSamples() *Samples {
	return &Samples{names: make(map[string]Sample)}
}

// Set inserts or replaces a named sample, preserving first-insertion order.
func (s *Samples) Set(name string, sample Sample) {
	if _, ok := s.names[name]; !ok {
		s.order = append(s.order, name)
	}
	s.names[name] = sample
}

// Get returns the sample for a name.
func (s *Samples) Get(name string) (Sample, bool) {
	if s == nil {
		return nil, false
	}
	sample, ok := s.names[name]
	return sample, ok
}

// Names returns variable names in insertion order.
func (s *Samples) Names() []string {
	if s == nil {
		return nil
	}
	return s.order
}

// Len returns the number of variables.
func (s *Samples) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Has reports whether a name is present.
func (s *Samples) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.names[name]
	return ok
}
