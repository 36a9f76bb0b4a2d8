package cycler

import (
	"errors"
	"reflect"
	"testing"

	"primed/domain/core"
)

func TestCell_CycleLookup(t *testing.T) {
	cell := NewCell(1, 3)
	cycle := NewCycle(7)
	cell.AddCycle(cycle)

	got, err := cell.Cycle(7)
	if err != nil {
		t.Fatalf("Cycle(7) error = %v", err)
	}
	if got != cycle {
		t.Error("Cycle(7) returned a different cycle")
	}

	_, err = cell.Cycle(8)
	if !errors.Is(err, core.ErrCycleNotFound) {
		t.Errorf("Cycle(8) error = %v, want ErrCycleNotFound", err)
	}
}

func TestCell_LastCycle(t *testing.T) {
	cell := NewCell(1, 1)
	if _, ok := cell.LastCycle(); ok {
		t.Error("LastCycle() on empty cell reported a cycle")
	}

	cell.AddCycle(NewCycle(1))
	last := NewCycle(2)
	cell.AddCycle(last)
	got, ok := cell.LastCycle()
	if !ok || got != last {
		t.Error("LastCycle() did not return the most recent cycle")
	}
}

func TestCell_HeadersUnion(t *testing.T) {
	cell := NewCell(1, 1)
	cell.SetFileHeaders([]string{"Date_Time", "Voltage(V)"})

	cycle := NewCycle(1)
	step := NewStep(5, "a")
	step.SetHeaders([]string{"Voltage(V)", "Current(A)"})
	cycle.AddStep(step)
	cell.AddCycle(cycle)

	want := []string{"Date_Time", "Voltage(V)", "Current(A)"}
	if got := cell.Headers(); !reflect.DeepEqual(got, want) {
		t.Errorf("Headers() = %v, want %v", got, want)
	}
}

func TestCell_HeadersMemoization(t *testing.T) {
	cell := NewCell(1, 1)
	cell.SetFileHeaders([]string{"Voltage(V)"})

	cycle := NewCycle(1)
	cell.AddCycle(cycle)
	if got := cell.Headers(); len(got) != 1 {
		t.Fatalf("Headers() = %v, want one header", got)
	}

	// a step added behind the cache's back is invisible until invalidated
	step := NewStep(5, "a")
	step.SetHeaders([]string{"Voltage(V)", "Current(A)"})
	cycle.AddStep(step)
	if got := cell.Headers(); len(got) != 1 {
		t.Fatalf("Headers() after silent mutation = %v, want the cached result", got)
	}

	cell.InvalidateHeaders()
	if got := cell.Headers(); len(got) != 2 {
		t.Errorf("Headers() after InvalidateHeaders() = %v, want both columns", got)
	}
}

func TestCell_AddCycleInvalidatesHeaderCache(t *testing.T) {
	cell := NewCell(1, 1)
	cell.SetFileHeaders([]string{"Voltage(V)"})
	_ = cell.Headers()

	cycle := NewCycle(1)
	step := NewStep(5, "a")
	step.SetHeaders([]string{"Current(A)"})
	cycle.AddStep(step)
	cell.AddCycle(cycle)

	want := []string{"Voltage(V)", "Current(A)"}
	if got := cell.Headers(); !reflect.DeepEqual(got, want) {
		t.Errorf("Headers() after AddCycle = %v, want %v", got, want)
	}
}
