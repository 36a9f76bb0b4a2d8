package eis

import (
	"fmt"

	"primed/domain/core"
)

// Cell groups the impedance cycles measured on one physical battery. The
// (cell number, channel number) pair matches the cycler-side Cell the data
// belongs to.
type Cell struct {
	CellNumber    int
	ChannelNumber int
	Name          string

	cycles []*Cycle
}

func NewCell(cellNumber, channelNumber int, cycles ...*Cycle) *Cell {
	c := &Cell{CellNumber: cellNumber, ChannelNumber: channelNumber}
	c.cycles = append(c.cycles, cycles...)
	return c
}

func (c *Cell) String() string {
	return fmt.Sprintf("EIS Cell %d on channel %d: %d cycles", c.CellNumber, c.ChannelNumber, len(c.cycles))
}

// AddCycle appends a cycle to the cell.
func (c *Cell) AddCycle(cycle *Cycle) {
	c.cycles = append(c.cycles, cycle)
}

// Cycles returns the cell's cycles in insertion order.
func (c *Cell) Cycles() []*Cycle {
	out := make([]*Cycle, len(c.cycles))
	copy(out, c.cycles)
	return out
}

// Cycle returns the cycle with the given cycle number, or ErrCycleNotFound.
func (c *Cell) Cycle(cycleNumber int) (*Cycle, error) {
	for _, cy := range c.cycles {
		if cy.CycleNumber == cycleNumber {
			return cy, nil
		}
	}
	return nil, core.NewCycleNotFoundError(cycleNumber)
}

// Len returns the number of cycles in the cell.
func (c *Cell) Len() int {
	return len(c.cycles)
}
