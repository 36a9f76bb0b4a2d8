// Package cycler holds the in-memory hierarchy for battery cycling-tester
// data: Step -> Cycle -> Cell -> Batch. Containers are built incrementally
// by the file readers and navigated column-wise by analysis code.
package cycler

import (
	"fmt"

	"primed/domain/core"
	"primed/domain/eis"
)

// Step is one phase within a cycle, e.g. a constant-current discharge or a
// rest. It holds the step's time-series measurements as named columns, all
// of equal length, in chronological row order.
type Step struct {
	StepIndex int
	StepType  string
	Name      string

	// SOH/SOE are assigned by analysis from a reference discharge step;
	// -1 means not assigned (the cycle had no reference step)
	SOH float64
	SOE float64

	table  core.Table
	sweeps []*eis.Sweep
}

// NewStep creates an empty step. The step type is the caller's category
// label from the step selection, e.g. "characterization".
func NewStep(stepIndex int, stepType string) *Step {
	return &Step{StepIndex: stepIndex, StepType: stepType, SOH: -1, SOE: -1}
}

func (s *Step) String() string {
	return fmt.Sprintf("Step %d (%s): %d rows", s.StepIndex, s.StepType, s.NumRows())
}

// SetHeaders declares the step's columns in file order.
func (s *Step) SetHeaders(headers []string) {
	s.table.SetHeaders(headers)
}

// Headers returns the step's column names in file order.
func (s *Step) Headers() []string {
	return s.table.Headers()
}

// Column returns a named measurement column, e.g. "Voltage(V)". Fails with
// ErrColumnNotFound if the name is absent from this step's header set.
func (s *Step) Column(name string) (*core.Series, error) {
	return s.table.Column(name)
}

// AppendRow adds one data row, matched positionally to the headers.
func (s *Step) AppendRow(values []string) error {
	return s.table.AppendRow(values)
}

// NumRows returns the step's row count.
func (s *Step) NumRows() int {
	return s.table.NumRows()
}

// Records returns the step as a header row plus data rows, shaped like the
// source file.
func (s *Step) Records() [][]string {
	return s.table.Records()
}

// AttachSweep records an impedance sweep taken during this step. The step
// does not own the sweep; it stays owned by its EIS hierarchy. Attaching
// the same sweep twice is a no-op, so re-running a merge cannot duplicate
// the relation. Returns whether the sweep was newly attached.
func (s *Step) AttachSweep(sweep *eis.Sweep) bool {
	for _, sw := range s.sweeps {
		if sw == sweep {
			return false
		}
	}
	s.sweeps = append(s.sweeps, sweep)
	return true
}

// Sweeps returns the impedance sweeps attached to this step.
func (s *Step) Sweeps() []*eis.Sweep {
	out := make([]*eis.Sweep, len(s.sweeps))
	copy(out, s.sweeps)
	return out
}
