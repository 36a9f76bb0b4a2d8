package cycler

import (
	"errors"
	"testing"

	"primed/domain/core"
	"primed/domain/eis"
)

func TestStep_ColumnAccess(t *testing.T) {
	step := NewStep(14, "characterization")
	step.SetHeaders([]string{"Voltage(V)", "Current(A)"})
	if err := step.AppendRow([]string{"3.61", "-1.00"}); err != nil {
		t.Fatalf("AppendRow() error = %v", err)
	}
	if err := step.AppendRow([]string{"3.59", "-1.00"}); err != nil {
		t.Fatalf("AppendRow() error = %v", err)
	}

	col, err := step.Column("Voltage(V)")
	if err != nil {
		t.Fatalf("Column() error = %v", err)
	}
	values, err := col.Float64s()
	if err != nil {
		t.Fatalf("Float64s() error = %v", err)
	}
	if len(values) != 2 || values[0] != 3.61 {
		t.Errorf("voltage column = %v", values)
	}

	if _, err := step.Column("nope"); !errors.Is(err, core.ErrColumnNotFound) {
		t.Errorf("missing column error = %v, want ErrColumnNotFound", err)
	}
}

func TestStep_HealthDefaultsUnassigned(t *testing.T) {
	step := NewStep(25, "degradation")
	if step.SOH != -1 || step.SOE != -1 {
		t.Errorf("new step SOH/SOE = %v/%v, want -1/-1", step.SOH, step.SOE)
	}
}

func TestStep_AttachSweepIsIdempotent(t *testing.T) {
	step := NewStep(14, "characterization")
	sweep, err := eis.NewSweep("chan001 cycle003 step014", 0.5, 14)
	if err != nil {
		t.Fatalf("NewSweep() error = %v", err)
	}

	if !step.AttachSweep(sweep) {
		t.Fatal("first AttachSweep() = false")
	}
	if step.AttachSweep(sweep) {
		t.Fatal("second AttachSweep() of the same sweep = true")
	}
	if got := step.Sweeps(); len(got) != 1 || got[0] != sweep {
		t.Errorf("Sweeps() = %v, want exactly the attached sweep", got)
	}
}

func TestStep_AttachSweepDistinguishesSweeps(t *testing.T) {
	step := NewStep(14, "characterization")
	a, _ := eis.NewSweep("a", 0.5, 14)
	b, _ := eis.NewSweep("b", 0.2, 14)

	step.AttachSweep(a)
	step.AttachSweep(b)
	if len(step.Sweeps()) != 2 {
		t.Errorf("Sweeps() count = %d, want 2", len(step.Sweeps()))
	}
}
