package core

import (
	"strconv"
	"strings"
)

// Series is one named measurement column: an ordered sequence of raw values
// as they appeared in the source file. Instrument files mix numeric columns
// (voltage, current, capacity) with text columns (timestamps, range codes),
// so values are kept as text and a numeric view is built on demand.
type Series struct {
	values []string

	// memoized numeric view, dropped on every Append
	floats   []float64
	floatErr error
	parsed   bool
}

// Append adds one value to the end of the series.
func (s *Series) Append(raw string) {
	s.values = append(s.values, raw)
	s.floats = nil
	s.floatErr = nil
	s.parsed = false
}

// Len returns the number of values in the series.
func (s *Series) Len() int {
	return len(s.values)
}

// Value returns the raw value at index i.
func (s *Series) Value(i int) string {
	return s.values[i]
}

// Strings returns the ordered raw values. The returned slice is a copy, so
// callers cannot corrupt the column by mutating it.
func (s *Series) Strings() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

// Float64s returns the series as float64 values. The conversion is memoized:
// repeated calls return equal sequences without re-parsing. Fails with
// ErrNonNumeric if any value does not parse.
func (s *Series) Float64s() ([]float64, error) {
	if !s.parsed {
		s.floats, s.floatErr = parseFloats(s.values)
		s.parsed = true
	}
	if s.floatErr != nil {
		return nil, s.floatErr
	}
	out := make([]float64, len(s.floats))
	copy(out, s.floats)
	return out, nil
}

// IsNumeric reports whether every value in the series parses as a float64.
// An empty series is not numeric.
func (s *Series) IsNumeric() bool {
	if s.Len() == 0 {
		return false
	}
	_, err := s.Float64s()
	return err == nil
}

// Last returns the final value of the series as a float64. Used for
// end-of-step quantities such as discharge capacity.
func (s *Series) Last() (float64, error) {
	if s.Len() == 0 {
		return 0, ErrNonNumeric
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s.values[len(s.values)-1]), 64)
	if err != nil {
		return 0, ErrNonNumeric
	}
	return f, nil
}

func parseFloats(values []string) ([]float64, error) {
	out := make([]float64, len(values))
	for i, v := range values {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, ErrNonNumeric
		}
		out[i] = f
	}
	return out, nil
}
