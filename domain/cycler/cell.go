package cycler

import (
	"fmt"

	"primed/domain/core"
)

// Cell is one physical battery under test on one instrument channel. It
// owns the cycles parsed for that channel, in cycle-index order, because
// parsing is sequential over already-ordered files.
type Cell struct {
	CellNumber    int
	ChannelNumber int

	cycles []*Cycle

	// fileHeaders is the header row recorded by the reader; the derived
	// set is the union over child steps, memoized until invalidated
	fileHeaders    []string
	derivedHeaders []string
	headersDirty   bool
}

func NewCell(cellNumber, channelNumber int, cycles ...*Cycle) *Cell {
	c := &Cell{CellNumber: cellNumber, ChannelNumber: channelNumber, headersDirty: true}
	c.cycles = append(c.cycles, cycles...)
	return c
}

func (c *Cell) String() string {
	return fmt.Sprintf("Cell %d on channel %d: %d cycles", c.CellNumber, c.ChannelNumber, len(c.cycles))
}

// AddCycle appends a cycle to the cell and invalidates the header cache.
func (c *Cell) AddCycle(cycle *Cycle) {
	c.cycles = append(c.cycles, cycle)
	c.headersDirty = true
}

// Cycles returns the cell's cycles in insertion order.
func (c *Cell) Cycles() []*Cycle {
	out := make([]*Cycle, len(c.cycles))
	copy(out, c.cycles)
	return out
}

// Cycle returns the cycle with the given cycle index, or ErrCycleNotFound.
func (c *Cell) Cycle(cycleIndex int) (*Cycle, error) {
	for _, cy := range c.cycles {
		if cy.CycleIndex == cycleIndex {
			return cy, nil
		}
	}
	return nil, core.NewCycleNotFoundError(cycleIndex)
}

// LastCycle returns the most recently added cycle, or false when the cell
// is empty. Readers use it to continue a cycle split across files.
func (c *Cell) LastCycle() (*Cycle, bool) {
	if len(c.cycles) == 0 {
		return nil, false
	}
	return c.cycles[len(c.cycles)-1], true
}

// Len returns the number of cycles in the cell.
func (c *Cell) Len() int {
	return len(c.cycles)
}

// SetFileHeaders records the header row of the most recent source file.
func (c *Cell) SetFileHeaders(headers []string) {
	c.fileHeaders = make([]string, len(headers))
	copy(c.fileHeaders, headers)
	c.headersDirty = true
}

// Headers returns the cell's available column names: the recorded file
// headers followed by any extra columns found on child steps, in first-seen
// order. The union is memoized; mutating steps after load requires
// InvalidateHeaders for the change to be visible here.
func (c *Cell) Headers() []string {
	if c.headersDirty {
		c.derivedHeaders = c.computeHeaders()
		c.headersDirty = false
	}
	out := make([]string, len(c.derivedHeaders))
	copy(out, c.derivedHeaders)
	return out
}

// InvalidateHeaders drops the memoized header union so the next Headers
// call recomputes it from the current children.
func (c *Cell) InvalidateHeaders() {
	c.headersDirty = true
}

func (c *Cell) computeHeaders() []string {
	seen := make(map[string]struct{}, len(c.fileHeaders))
	union := make([]string, 0, len(c.fileHeaders))
	for _, h := range c.fileHeaders {
		if _, ok := seen[h]; !ok {
			seen[h] = struct{}{}
			union = append(union, h)
		}
	}
	for _, cy := range c.cycles {
		for _, s := range cy.Steps() {
			for _, h := range s.Headers() {
				if _, ok := seen[h]; !ok {
					seen[h] = struct{}{}
					union = append(union, h)
				}
			}
		}
	}
	return union
}
