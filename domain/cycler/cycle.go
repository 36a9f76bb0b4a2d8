package cycler

import (
	"fmt"

	"primed/domain/core"
)

// Cycle is one charge/discharge repetition within a test. Steps are kept in
// appearance order from the source file, which is not necessarily sorted by
// step index: the tester revisits a step index when an interrupted step is
// resumed, so an index can occur more than once.
type Cycle struct {
	CycleIndex int
	Name       string

	steps []*Step
}

func NewCycle(cycleIndex int, steps ...*Step) *Cycle {
	c := &Cycle{CycleIndex: cycleIndex}
	c.steps = append(c.steps, steps...)
	return c
}

func (c *Cycle) String() string {
	return fmt.Sprintf("Cycle %d: %d steps", c.CycleIndex, len(c.steps))
}

// AddStep appends a step to the cycle.
func (c *Cycle) AddStep(step *Step) {
	c.steps = append(c.steps, step)
}

// Steps returns the cycle's steps in insertion order.
func (c *Cycle) Steps() []*Step {
	out := make([]*Step, len(c.steps))
	copy(out, c.steps)
	return out
}

// StepsByIndex returns every step with the given step index, in insertion
// order. The result may be empty, and may hold more than one step when the
// index repeated within the cycle.
func (c *Cycle) StepsByIndex(stepIndex int) []*Step {
	var out []*Step
	for _, s := range c.steps {
		if s.StepIndex == stepIndex {
			out = append(out, s)
		}
	}
	return out
}

// Step returns the first step with the given index, or ErrStepNotFound.
func (c *Cycle) Step(stepIndex int) (*Step, error) {
	for _, s := range c.steps {
		if s.StepIndex == stepIndex {
			return s, nil
		}
	}
	return nil, core.NewStepNotFoundError(stepIndex)
}

// LastStep returns the most recently added step, or false when the cycle is
// empty. Readers use it to continue a step split across files.
func (c *Cycle) LastStep() (*Step, bool) {
	if len(c.steps) == 0 {
		return nil, false
	}
	return c.steps[len(c.steps)-1], true
}

// Len returns the number of steps in the cycle.
func (c *Cycle) Len() int {
	return len(c.steps)
}
