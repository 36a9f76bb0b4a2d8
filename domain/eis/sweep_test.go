package eis

import (
	"errors"
	"testing"

	"primed/domain/core"
)

func TestNewSweep_SOCValidation(t *testing.T) {
	tests := []struct {
		name      string
		soc       float64
		expectErr bool
	}{
		{"empty", 0, false},
		{"half", 0.5, false},
		{"full", 1, false},
		{"negative", -0.1, true},
		{"above full", 1.01, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSweep("s", tt.soc, 14)
			if tt.expectErr {
				if !errors.Is(err, core.ErrSOCRange) {
					t.Errorf("NewSweep(soc=%v) error = %v, want ErrSOCRange", tt.soc, err)
				}
				return
			}
			if err != nil {
				t.Errorf("NewSweep(soc=%v) error = %v", tt.soc, err)
			}
		})
	}
}

func TestSweep_SetDataIsReadOnce(t *testing.T) {
	sweep, err := NewSweep("chan001 cycle003 step014", 0.5, 14)
	if err != nil {
		t.Fatalf("NewSweep() error = %v", err)
	}
	if sweep.Loaded() {
		t.Fatal("new sweep reports loaded")
	}

	var table core.Table
	table.SetHeaders([]string{"Freq (Hz)", "Zreal (ohm)"})
	if err := table.AppendRow([]string{"100000", "0.02"}); err != nil {
		t.Fatalf("AppendRow() error = %v", err)
	}

	if err := sweep.SetData(table); err != nil {
		t.Fatalf("SetData() error = %v", err)
	}
	if !sweep.Loaded() || sweep.NumPoints() != 1 {
		t.Errorf("loaded sweep: Loaded()=%v NumPoints()=%d", sweep.Loaded(), sweep.NumPoints())
	}

	if err := sweep.SetData(table); !errors.Is(err, core.ErrSweepLoaded) {
		t.Errorf("second SetData() error = %v, want ErrSweepLoaded", err)
	}
}

func TestSweep_AddStepRefDeduplicates(t *testing.T) {
	sweep, _ := NewSweep("s", 0.5, 14)
	ref := StepRef{CellNumber: 1, ChannelNumber: 1, CycleIndex: 3, StepIndex: 14}

	if !sweep.AddStepRef(ref) {
		t.Fatal("first AddStepRef() = false")
	}
	if sweep.AddStepRef(ref) {
		t.Fatal("duplicate AddStepRef() = true")
	}
	if sweep.AddStepRef(StepRef{CellNumber: 1, ChannelNumber: 1, CycleIndex: 3, StepIndex: 15}) == false {
		t.Fatal("distinct AddStepRef() = false")
	}
	if got := sweep.StepRefs(); len(got) != 2 {
		t.Errorf("StepRefs() count = %d, want 2", len(got))
	}
}

func TestCell_CycleLookup(t *testing.T) {
	cell := NewCell(1, 2)
	cycle := NewCycle(3)
	cell.AddCycle(cycle)

	got, err := cell.Cycle(3)
	if err != nil || got != cycle {
		t.Errorf("Cycle(3) = %v, %v", got, err)
	}
	if _, err := cell.Cycle(4); !errors.Is(err, core.ErrCycleNotFound) {
		t.Errorf("Cycle(4) error = %v, want ErrCycleNotFound", err)
	}
}
