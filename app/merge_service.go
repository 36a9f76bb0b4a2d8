package app

import (
	"fmt"

	"primed/domain/cycler"
	"primed/domain/eis"
	"primed/internal"
)

// UnmatchedReason says why a sweep found no structural counterpart.
type UnmatchedReason string

const (
	UnmatchedNoCell  UnmatchedReason = "no cell with matching cell/channel number"
	UnmatchedNoCycle UnmatchedReason = "no cycle with matching cycle number"
	UnmatchedNoStep  UnmatchedReason = "no step with matching step index"
)

// UnmatchedSweep records one sweep the merge could not place.
type UnmatchedSweep struct {
	Sweep         *eis.Sweep
	CellNumber    int
	ChannelNumber int
	CycleNumber   int
	Reason        UnmatchedReason
}

func (u UnmatchedSweep) String() string {
	return fmt.Sprintf("sweep %q (cell %d, channel %d, cycle %d, step %d): %s",
		u.Sweep.Name, u.CellNumber, u.ChannelNumber, u.CycleNumber, u.Sweep.StepIndex, u.Reason)
}

// MergeReport is the outcome of one merge run. Unmatched sweeps are
// collected rather than raised: one unresolved sweep never aborts the rest
// of the batch.
type MergeReport struct {
	// Matched counts sweeps placed on at least one step
	Matched int
	// Attached counts new step<->sweep links created; zero on a re-run
	// over already merged data
	Attached int
	// Unmatched lists sweeps with no structural counterpart
	Unmatched []UnmatchedSweep
}

// MergeService cross-references impedance sweeps against cycling-tester
// steps. Sweeps carry no cell or cycle identity of their own, so the match
// runs on the identities their EIS hierarchy was built with: the EIS cell's
// (cell number, channel number), the EIS cycle's cycle number, and the
// sweep's recorded step index.
type MergeService struct {
	logger *internal.Logger
}

// NewMergeService creates a merge service.
func NewMergeService(logger *internal.Logger) *MergeService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &MergeService{logger: logger}
}

// Merge attaches every sweep in eisCells to its matching step in cells.
// When the step index repeats inside the matched cycle (an interrupted step
// resumed later) the sweep is attached to all occurrences: ambiguous
// attribution is preferable to silent loss. The merge is idempotent;
// re-running it creates no duplicate back-references.
func (m *MergeService) Merge(eisCells []*eis.Cell, cells []*cycler.Cell) *MergeReport {
	report := &MergeReport{}

	for _, eisCell := range eisCells {
		cell := findCell(cells, eisCell.CellNumber, eisCell.ChannelNumber)
		for _, eisCycle := range eisCell.Cycles() {
			for _, sweep := range eisCycle.Sweeps() {
				m.mergeSweep(report, cell, eisCell, eisCycle, sweep)
			}
		}
	}

	m.logger.Info("[Merge] %d sweeps matched, %d new attachments, %d unmatched",
		report.Matched, report.Attached, len(report.Unmatched))
	return report
}

func (m *MergeService) mergeSweep(report *MergeReport, cell *cycler.Cell, eisCell *eis.Cell, eisCycle *eis.Cycle, sweep *eis.Sweep) {
	reject := func(reason UnmatchedReason) {
		u := UnmatchedSweep{
			Sweep:         sweep,
			CellNumber:    eisCell.CellNumber,
			ChannelNumber: eisCell.ChannelNumber,
			CycleNumber:   eisCycle.CycleNumber,
			Reason:        reason,
		}
		report.Unmatched = append(report.Unmatched, u)
		m.logger.Warn("[Merge] unmatched %s", u)
	}

	if cell == nil {
		reject(UnmatchedNoCell)
		return
	}
	cycle, err := cell.Cycle(eisCycle.CycleNumber)
	if err != nil {
		reject(UnmatchedNoCycle)
		return
	}
	steps := cycle.StepsByIndex(sweep.StepIndex)
	if len(steps) == 0 {
		reject(UnmatchedNoStep)
		return
	}

	report.Matched++
	for _, step := range steps {
		if step.AttachSweep(sweep) {
			report.Attached++
		}
		sweep.AddStepRef(eis.StepRef{
			CellNumber:    cell.CellNumber,
			ChannelNumber: cell.ChannelNumber,
			CycleIndex:    cycle.CycleIndex,
			StepIndex:     step.StepIndex,
		})
	}
}

func findCell(cells []*cycler.Cell, cellNumber, channelNumber int) *cycler.Cell {
	for _, c := range cells {
		if c.CellNumber == cellNumber && c.ChannelNumber == channelNumber {
			return c
		}
	}
	return nil
}
