// Package ports defines the interfaces the application services consume,
// keeping the services independent of the concrete file-format adapters.
package ports

import (
	"primed/domain/cycler"
	"primed/domain/eis"
)

// CyclerReaderPort reads raw cycling-tester files into Cell containers.
type CyclerReaderPort interface {
	// ReadCSV loads one per-channel delimited file into cell, retaining
	// only rows selected by sel.
	ReadCSV(cell *cycler.Cell, path string, sel cycler.StepSelection) error

	// ReadWorkbook loads a multi-sheet workbook, one channel per sheet.
	ReadWorkbook(path string, sel cycler.StepSelection) ([]*cycler.Cell, error)
}

// SweepReaderPort reads raw impedance files into Sweep containers.
type SweepReaderPort interface {
	// ReadFile loads one impedance file into sweep. A sweep is read
	// exactly once.
	ReadFile(sweep *eis.Sweep, path string) error
}
