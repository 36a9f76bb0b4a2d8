package analysis

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"primed/domain/core"
	"primed/domain/cycler"
	"primed/domain/eis"
)

// ColumnSummary is the descriptive statistics of one numeric column.
type ColumnSummary struct {
	Column   string
	Count    int
	Mean     float64
	StdDev   float64
	Min      float64
	Max      float64
	Median   float64
	Q25      float64
	Q75      float64
	Skewness float64
}

func (c ColumnSummary) String() string {
	return fmt.Sprintf("%s: n=%d mean=%.6g std=%.6g min=%.6g max=%.6g", c.Column, c.Count, c.Mean, c.StdDev, c.Min, c.Max)
}

// SummarizeSeries computes descriptive statistics for one column. Fails
// with ErrNonNumeric for text columns.
func SummarizeSeries(name string, series *core.Series) (ColumnSummary, error) {
	data, err := series.Float64s()
	if err != nil {
		return ColumnSummary{}, fmt.Errorf("column %q: %w", name, err)
	}
	if len(data) == 0 {
		return ColumnSummary{}, fmt.Errorf("column %q: no data", name)
	}

	summary := ColumnSummary{Column: name, Count: len(data)}
	if summary.Mean, err = stats.Mean(data); err != nil {
		return ColumnSummary{}, err
	}
	if summary.StdDev, err = stats.StandardDeviation(data); err != nil {
		return ColumnSummary{}, err
	}
	if summary.Min, err = stats.Min(data); err != nil {
		return ColumnSummary{}, err
	}
	if summary.Max, err = stats.Max(data); err != nil {
		return ColumnSummary{}, err
	}
	if summary.Median, err = stats.Median(data); err != nil {
		return ColumnSummary{}, err
	}
	if summary.Q25, err = stats.Percentile(data, 25); err != nil {
		return ColumnSummary{}, err
	}
	if summary.Q75, err = stats.Percentile(data, 75); err != nil {
		return ColumnSummary{}, err
	}
	summary.Skewness = stat.Skew(data, nil)
	return summary, nil
}

// SummarizeStep summarizes the named columns of a cycler step.
func SummarizeStep(step *cycler.Step, columns ...string) ([]ColumnSummary, error) {
	out := make([]ColumnSummary, 0, len(columns))
	for _, name := range columns {
		series, err := step.Column(name)
		if err != nil {
			return nil, err
		}
		summary, err := SummarizeSeries(name, series)
		if err != nil {
			return nil, err
		}
		out = append(out, summary)
	}
	return out, nil
}

// SummarizeSweep summarizes the named columns of an impedance sweep.
func SummarizeSweep(sweep *eis.Sweep, columns ...string) ([]ColumnSummary, error) {
	out := make([]ColumnSummary, 0, len(columns))
	for _, name := range columns {
		series, err := sweep.Column(name)
		if err != nil {
			return nil, err
		}
		summary, err := SummarizeSeries(name, series)
		if err != nil {
			return nil, err
		}
		out = append(out, summary)
	}
	return out, nil
}
