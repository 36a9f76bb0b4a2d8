package analysis

import (
	"testing"

	"primed/domain/core"
	"primed/domain/cycler"
)

func stepWithSOH(soh float64) *cycler.Step {
	step := cycler.NewStep(14, "characterization")
	step.SOH = soh
	return step
}

func stepWithTemperature(stepIndex int, tempC string) *cycler.Step {
	step := cycler.NewStep(stepIndex, "characterization")
	step.SetHeaders([]string{ColBatteryTemp})
	if err := step.AppendRow([]string{tempC}); err != nil {
		panic(err)
	}
	return step
}

func TestCollectSteps(t *testing.T) {
	cellA := cycler.NewCell(1, 1)
	cellA.AddCycle(cycler.NewCycle(1, cycler.NewStep(14, "a"), cycler.NewStep(6, "b")))
	cellA.AddCycle(cycler.NewCycle(2, cycler.NewStep(14, "a")))
	cellB := cycler.NewCell(2, 2)
	cellB.AddCycle(cycler.NewCycle(1, cycler.NewStep(14, "a"), cycler.NewStep(14, "a")))
	batch := cycler.NewBatch(cellA, cellB)

	got := CollectSteps(batch, 14)
	if len(got) != 4 {
		t.Fatalf("CollectSteps() returned %d steps, want 4", len(got))
	}
	for _, s := range got {
		if s.StepIndex != 14 {
			t.Errorf("collected step with index %d", s.StepIndex)
		}
	}
}

func TestFilterBySOH(t *testing.T) {
	steps := []*cycler.Step{
		stepWithSOH(0.995), // healthy
		stepWithSOH(0.872), // mid fade
		stepWithSOH(0.878), // same bin as above
		stepWithSOH(-1),    // never assigned
	}

	bins, err := FilterBySOH(steps, 1, 77, 101)
	if err != nil {
		t.Fatalf("FilterBySOH() error = %v", err)
	}

	if got := bins[0.99]; len(got) != 1 || got[0] != steps[0] {
		t.Errorf("bin 0.99 = %v, want the healthy step", got)
	}
	if got := bins[0.87]; len(got) != 2 {
		t.Errorf("bin 0.87 holds %d steps, want 2", len(got))
	}

	total := 0
	for _, bin := range bins {
		total += len(bin)
	}
	if total != 3 {
		t.Errorf("binned %d steps, want 3: unassigned SOH must land nowhere", total)
	}
}

func TestFilterBySOH_ConfigValidation(t *testing.T) {
	steps := []*cycler.Step{stepWithSOH(0.9)}

	if _, err := FilterBySOH(steps, 0, 77, 101); !core.IsConfigError(err) {
		t.Errorf("zero width error = %v, want config error", err)
	}
	if _, err := FilterBySOH(steps, 1, 101, 77); !core.IsConfigError(err) {
		t.Errorf("inverted bounds error = %v, want config error", err)
	}
}

func TestFilterByTemperature(t *testing.T) {
	cell := cycler.NewCell(1, 7)
	cell.AddCycle(cycler.NewCycle(1, stepWithTemperature(14, "25.3")))
	cell.AddCycle(cycler.NewCycle(2, stepWithTemperature(14, "39.8")))

	// no temperature column at all; uneven instrumentation is not an error
	bare := cycler.NewStep(14, "characterization")
	bare.SetHeaders([]string{"Voltage(V)"})
	cell.AddCycle(cycler.NewCycle(3, bare))

	batch := cycler.NewBatch(cell)
	got := FilterByTemperature(batch, 14, 20, 30)

	steps, ok := got[7]
	if !ok {
		t.Fatal("channel 7 missing from result")
	}
	if len(steps) != 1 {
		t.Fatalf("channel 7 retained %d steps, want 1", len(steps))
	}
	if steps[0].StepIndex != 14 {
		t.Errorf("retained step index = %d", steps[0].StepIndex)
	}
}

func TestFilterByTemperature_RoundsToNearestDegree(t *testing.T) {
	cell := cycler.NewCell(1, 1)
	cell.AddCycle(cycler.NewCycle(1, stepWithTemperature(14, "29.6"))) // rounds to 30
	batch := cycler.NewBatch(cell)

	if got := FilterByTemperature(batch, 14, 20, 30)[1]; len(got) != 0 {
		t.Errorf("29.6C rounds to the exclusive bound, got %d steps", len(got))
	}
	if got := FilterByTemperature(batch, 14, 20, 31)[1]; len(got) != 1 {
		t.Errorf("30C inside (20, 31), got %d steps", len(got))
	}
}
