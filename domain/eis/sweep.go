// Package eis holds the in-memory hierarchy for electrochemical impedance
// spectroscopy data: Sweep -> Cycle -> Cell, mirroring the cycler hierarchy.
// Impedance files do not self-describe channel, cycle or cell, so those
// identities come from the caller (usually decoded from the filename).
package eis

import (
	"fmt"
	"time"

	"primed/domain/core"
)

// StepRef identifies the cycler step a sweep was matched to during merge.
// Sweeps are owned by their EIS hierarchy; the merge only records this
// lookup relation.
type StepRef struct {
	CellNumber    int
	ChannelNumber int
	CycleIndex    int
	StepIndex     int
}

// Sweep is a single impedance measurement: a frequency sweep taken at one
// state of charge during one cycler step.
type Sweep struct {
	Name      string
	SOC       float64
	StepIndex int

	// scalar metadata discovered in the source file; zero when the file
	// does not carry it and the reader is not in strict mode
	AcquiredAt time.Time
	OCV        float64

	// Temperature is assigned after merge from the cycler's temperature
	// channel; the impedance file itself does not record it
	Temperature float64

	table  core.Table
	loaded bool
	refs   []StepRef
}

// NewSweep creates an empty sweep. The SOC is a fraction of full charge and
// must be in [0, 1].
func NewSweep(name string, soc float64, stepIndex int) (*Sweep, error) {
	if soc < 0 || soc > 1 {
		return nil, core.NewSOCRangeError(soc)
	}
	return &Sweep{Name: name, SOC: soc, StepIndex: stepIndex}, nil
}

func (s *Sweep) String() string {
	return fmt.Sprintf("Sweep %s: soc=%g step=%d points=%d", s.Name, s.SOC, s.StepIndex, s.NumPoints())
}

// SetData installs the parsed frequency table. A sweep is read exactly once;
// loading a second file into the same sweep fails with ErrSweepLoaded and a
// failed parse must never call this, so no partial sweep is ever retained.
func (s *Sweep) SetData(table core.Table) error {
	if s.loaded {
		return fmt.Errorf("%w: %s", core.ErrSweepLoaded, s.Name)
	}
	s.table = table
	s.loaded = true
	return nil
}

// Loaded reports whether the sweep holds parsed file data.
func (s *Sweep) Loaded() bool {
	return s.loaded
}

// Column returns a named measurement column, e.g. "Freq (Hz)".
func (s *Sweep) Column(name string) (*core.Series, error) {
	return s.table.Column(name)
}

// Headers returns the sweep's column names in file order.
func (s *Sweep) Headers() []string {
	return s.table.Headers()
}

// NumPoints returns the number of frequency points in the sweep.
func (s *Sweep) NumPoints() int {
	return s.table.NumRows()
}

// Records returns the sweep as a header row plus data rows.
func (s *Sweep) Records() [][]string {
	return s.table.Records()
}

// AddStepRef records the back-link to a matched cycler step. Adding the
// same reference twice is a no-op, which keeps the merge idempotent.
func (s *Sweep) AddStepRef(ref StepRef) bool {
	for _, r := range s.refs {
		if r == ref {
			return false
		}
	}
	s.refs = append(s.refs, ref)
	return true
}

// StepRefs returns the cycler steps this sweep was matched to. Empty until
// a merge finds a counterpart; more than one entry means the step index
// repeated within the matched cycle (an interrupted step resumed later).
func (s *Sweep) StepRefs() []StepRef {
	out := make([]StepRef, len(s.refs))
	copy(out, s.refs)
	return out
}
