package cycler

import (
	"fmt"

	"primed/domain/core"
)

// Batch groups the cells loaded together in one run, typically one cell per
// tester channel of a test campaign.
type Batch struct {
	RunID core.RunID

	cells []*Cell
}

func NewBatch(cells ...*Cell) *Batch {
	b := &Batch{RunID: core.NewRunID()}
	b.cells = append(b.cells, cells...)
	return b
}

func (b *Batch) String() string {
	return fmt.Sprintf("Batch %s: %d cells", b.RunID, len(b.cells))
}

// AddCell appends a cell to the batch.
func (b *Batch) AddCell(cell *Cell) {
	b.cells = append(b.cells, cell)
}

// Cells returns the batch's cells in insertion order.
func (b *Batch) Cells() []*Cell {
	out := make([]*Cell, len(b.cells))
	copy(out, b.cells)
	return out
}

// Cell returns the cell with the given cell number, or ErrCellNotFound.
func (b *Batch) Cell(cellNumber int) (*Cell, error) {
	for _, c := range b.cells {
		if c.CellNumber == cellNumber {
			return c, nil
		}
	}
	return nil, core.NewCellNotFoundError(cellNumber)
}

// CellByChannel returns the cell on the given channel, or ErrCellNotFound.
func (b *Batch) CellByChannel(channelNumber int) (*Cell, error) {
	for _, c := range b.cells {
		if c.ChannelNumber == channelNumber {
			return c, nil
		}
	}
	return nil, core.NewCellNotFoundError(channelNumber)
}

// Len returns the number of cells in the batch.
func (b *Batch) Len() int {
	return len(b.cells)
}
