package cycler

import "primed/domain/core"

// StepSelection maps a caller-defined category label to the step indices to
// retain while reading a cycler file, e.g.
//
//	StepSelection{"characterization": {6, 7, 10}, "degradation": {25}}
//
// Rows whose step index belongs to no category are discarded without error.
// The category label becomes the StepType of the steps it selects.
type StepSelection map[string][]int

// Validate rejects a selection that would retain nothing. An empty
// selection would make every parse silently produce an empty cell, so it is
// a configuration error caught before any row is read.
func (s StepSelection) Validate() error {
	if len(s) == 0 {
		return core.NewConfigError("step selection is empty")
	}
	for _, indices := range s {
		if len(indices) > 0 {
			return nil
		}
	}
	return core.NewConfigError("step selection contains no step indices")
}

// Contains reports whether the step index is retained by any category.
func (s StepSelection) Contains(stepIndex int) bool {
	for _, indices := range s {
		for _, idx := range indices {
			if idx == stepIndex {
				return true
			}
		}
	}
	return false
}

// StepType returns the category label that selects the step index, or ""
// when no category does.
func (s StepSelection) StepType(stepIndex int) string {
	for label, indices := range s {
		for _, idx := range indices {
			if idx == stepIndex {
				return label
			}
		}
	}
	return ""
}
