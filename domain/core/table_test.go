package core

import (
	"errors"
	"reflect"
	"testing"
)

func TestTable_ColumnLookup(t *testing.T) {
	var tbl Table
	tbl.SetHeaders([]string{"Voltage(V)", "Current(A)"})
	if err := tbl.AppendRow([]string{"3.6", "1.2"}); err != nil {
		t.Fatalf("AppendRow() error = %v", err)
	}

	col, err := tbl.Column("Voltage(V)")
	if err != nil {
		t.Fatalf("Column() error = %v", err)
	}
	if col.Value(0) != "3.6" {
		t.Errorf("Column value = %q, want %q", col.Value(0), "3.6")
	}

	_, err = tbl.Column("Pressure(bar)")
	if !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("missing column error = %v, want ErrColumnNotFound", err)
	}
	if !IsNotFoundError(err) {
		t.Errorf("IsNotFoundError() = false for %v", err)
	}
}

func TestTable_ColumnLookupIsIdempotent(t *testing.T) {
	var tbl Table
	tbl.SetHeaders([]string{"Voltage(V)"})
	for _, v := range []string{"3.6", "3.7"} {
		if err := tbl.AppendRow([]string{v}); err != nil {
			t.Fatalf("AppendRow() error = %v", err)
		}
	}

	first, err := tbl.Column("Voltage(V)")
	if err != nil {
		t.Fatalf("first Column() error = %v", err)
	}
	second, err := tbl.Column("Voltage(V)")
	if err != nil {
		t.Fatalf("second Column() error = %v", err)
	}
	if !reflect.DeepEqual(first.Strings(), second.Strings()) {
		t.Errorf("repeated lookups differ: %v vs %v", first.Strings(), second.Strings())
	}
}

func TestTable_AppendRowWidth(t *testing.T) {
	var tbl Table
	tbl.SetHeaders([]string{"a", "b", "c"})

	if err := tbl.AppendRow([]string{"1", "2"}); !errors.Is(err, ErrRowWidth) {
		t.Fatalf("short row error = %v, want ErrRowWidth", err)
	}
	if tbl.NumRows() != 0 {
		t.Errorf("rejected row still counted: NumRows() = %d", tbl.NumRows())
	}

	if err := tbl.AppendRow([]string{"1", "2", "3"}); err != nil {
		t.Fatalf("AppendRow() error = %v", err)
	}
	if tbl.NumRows() != 1 {
		t.Errorf("NumRows() = %d, want 1", tbl.NumRows())
	}
}

func TestTable_Records(t *testing.T) {
	var tbl Table
	tbl.SetHeaders([]string{"Voltage(V)", "Current(A)"})
	rows := [][]string{
		{"3.6", "1.0"},
		{"3.7", "0.5"},
	}
	for _, row := range rows {
		if err := tbl.AppendRow(row); err != nil {
			t.Fatalf("AppendRow() error = %v", err)
		}
	}

	got := tbl.Records()
	want := [][]string{
		{"Voltage(V)", "Current(A)"},
		{"3.6", "1.0"},
		{"3.7", "0.5"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Records() = %v, want %v", got, want)
	}
}

func TestTable_SetHeadersKeepsExistingColumns(t *testing.T) {
	var tbl Table
	tbl.SetHeaders([]string{"a"})
	if err := tbl.AppendRow([]string{"1"}); err != nil {
		t.Fatalf("AppendRow() error = %v", err)
	}

	tbl.SetHeaders([]string{"a", "b"})
	col, err := tbl.Column("a")
	if err != nil {
		t.Fatalf("Column() error = %v", err)
	}
	if col.Len() != 1 || col.Value(0) != "1" {
		t.Errorf("existing column lost after SetHeaders: %v", col.Strings())
	}
	if !tbl.HasColumn("b") {
		t.Error("new header not registered")
	}
}
