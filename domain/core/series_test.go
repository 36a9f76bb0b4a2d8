package core

import (
	"errors"
	"testing"
)

func TestSeries_Float64s(t *testing.T) {
	tests := []struct {
		name      string
		values    []string
		want      []float64
		expectErr bool
	}{
		{
			name:   "plain numeric values",
			values: []string{"3.6", "3.7", "3.8"},
			want:   []float64{3.6, 3.7, 3.8},
		},
		{
			name:   "scientific notation and padding",
			values: []string{" 3.76061E+000", "1e-3 "},
			want:   []float64{3.76061, 0.001},
		},
		{
			name:      "timestamp column is not numeric",
			values:    []string{"11/05/2021 01:02:03.000"},
			expectErr: true,
		},
		{
			name:      "one bad value rejects the column",
			values:    []string{"1.0", "oops", "3.0"},
			expectErr: true,
		},
		{
			name:   "empty series parses to nothing",
			values: nil,
			want:   []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Series
			for _, v := range tt.values {
				s.Append(v)
			}
			got, err := s.Float64s()
			if tt.expectErr {
				if !errors.Is(err, ErrNonNumeric) {
					t.Fatalf("Float64s() error = %v, want ErrNonNumeric", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Float64s() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Float64s() returned %d values, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Float64s()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSeries_Float64sIsIdempotent(t *testing.T) {
	var s Series
	s.Append("1.5")
	s.Append("2.5")

	first, err := s.Float64s()
	if err != nil {
		t.Fatalf("first Float64s() error = %v", err)
	}
	// mutating the returned slice must not leak into the series
	first[0] = 99

	second, err := s.Float64s()
	if err != nil {
		t.Fatalf("second Float64s() error = %v", err)
	}
	if second[0] != 1.5 || second[1] != 2.5 {
		t.Errorf("second Float64s() = %v, want [1.5 2.5]", second)
	}
}

func TestSeries_AppendInvalidatesNumericView(t *testing.T) {
	var s Series
	s.Append("1.0")
	if _, err := s.Float64s(); err != nil {
		t.Fatalf("Float64s() error = %v", err)
	}

	s.Append("2.0")
	got, err := s.Float64s()
	if err != nil {
		t.Fatalf("Float64s() after Append error = %v", err)
	}
	if len(got) != 2 || got[1] != 2.0 {
		t.Errorf("Float64s() after Append = %v, want [1 2]", got)
	}

	s.Append("text")
	if _, err := s.Float64s(); !errors.Is(err, ErrNonNumeric) {
		t.Errorf("Float64s() after non-numeric Append = %v, want ErrNonNumeric", err)
	}
}

func TestSeries_IsNumeric(t *testing.T) {
	var empty Series
	if empty.IsNumeric() {
		t.Error("empty series reported numeric")
	}

	var numeric Series
	numeric.Append("3.14")
	if !numeric.IsNumeric() {
		t.Error("numeric series reported non-numeric")
	}

	var text Series
	text.Append("Rest")
	if text.IsNumeric() {
		t.Error("text series reported numeric")
	}
}

func TestSeries_Last(t *testing.T) {
	var s Series
	if _, err := s.Last(); !errors.Is(err, ErrNonNumeric) {
		t.Errorf("Last() on empty series = %v, want ErrNonNumeric", err)
	}

	s.Append("1.0")
	s.Append("2.5")
	got, err := s.Last()
	if err != nil {
		t.Fatalf("Last() error = %v", err)
	}
	if got != 2.5 {
		t.Errorf("Last() = %v, want 2.5", got)
	}
}

func TestSeries_StringsReturnsCopy(t *testing.T) {
	var s Series
	s.Append("a")
	s.Append("b")

	got := s.Strings()
	got[0] = "mutated"
	if s.Value(0) != "a" {
		t.Errorf("mutating Strings() result changed the series: %q", s.Value(0))
	}
}
