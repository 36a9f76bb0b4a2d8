package eis

import "fmt"

// Cycle groups the sweeps taken during one charge/discharge cycle. A cycle
// may hold several sweeps at different states of charge, in measurement
// order.
type Cycle struct {
	CycleNumber int
	Name        string

	sweeps []*Sweep
}

func NewCycle(cycleNumber int, sweeps ...*Sweep) *Cycle {
	c := &Cycle{CycleNumber: cycleNumber}
	c.sweeps = append(c.sweeps, sweeps...)
	return c
}

func (c *Cycle) String() string {
	return fmt.Sprintf("EIS Cycle %d: %d sweeps", c.CycleNumber, len(c.sweeps))
}

// AddSweep appends a sweep to the cycle.
func (c *Cycle) AddSweep(sweep *Sweep) {
	c.sweeps = append(c.sweeps, sweep)
}

// Sweeps returns the cycle's sweeps in insertion order.
func (c *Cycle) Sweeps() []*Sweep {
	out := make([]*Sweep, len(c.sweeps))
	copy(out, c.sweeps)
	return out
}

// Len returns the number of sweeps in the cycle.
func (c *Cycle) Len() int {
	return len(c.sweeps)
}
