// Package testkit writes deterministic raw-file fixtures for the reader
// and merge tests: per-channel CSV exports, characterization workbooks and
// impedance DTA files shaped like the lab instruments' real output.
package testkit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// B6Headers is the header row of a per-channel CSV export. The auxiliary
// temperature header carries the raw instrument name on purpose; readers
// normalize it.
var B6Headers = []string{
	"Date_Time",
	"Test_Time(s)",
	"Step_Time(s)",
	"Step_Index",
	"Cycle_Index",
	"Voltage(V)",
	"Current(A)",
	"Charge_Capacity(Ah)",
	"Discharge_Capacity(Ah)",
	"Charge_Energy(Wh)",
	"Discharge_Energy(Wh)",
	"Internal Resistance(Ohm)",
	"Aux_Temperature(C)_1",
}

// LeafHeaders is the space-separated header convention of the
// characterization workbooks.
var LeafHeaders = []string{
	"Date Time",
	"Test Time (s)",
	"Step Time (s)",
	"Step Index",
	"Cycle Index",
	"Voltage (V)",
	"Current (A)",
	"Discharge Capacity (Ah)",
	"Aux_Temperature(C)_1",
}

// StepBlock describes one contiguous run of rows sharing a cycle and step
// index. Blocks are written in order, so repeating a step index later in
// the same cycle reproduces an interrupted-then-resumed step.
type StepBlock struct {
	Cycle int
	Step  int
	Rows  int
}

// cyclerRow renders one deterministic data row. Values vary with the row
// counter so column data is distinguishable across rows and blocks.
func cyclerRow(headers []string, block StepBlock, rowInBlock, seq int) []string {
	row := make([]string, len(headers))
	for i := range headers {
		switch i {
		case 0:
			row[i] = fmt.Sprintf("11/05/2021 01:%02d:%02d.000", seq/60%60, seq%60)
		case 1:
			row[i] = fmt.Sprintf("%.1f", float64(seq))
		case 2:
			row[i] = fmt.Sprintf("%.1f", float64(rowInBlock))
		case 3:
			row[i] = fmt.Sprintf("%d", block.Step)
		case 4:
			row[i] = fmt.Sprintf("%d", block.Cycle)
		default:
			row[i] = fmt.Sprintf("%.4f", 3.6+0.01*float64(i)+0.001*float64(seq))
		}
	}
	return row
}

// WriteB6CSV writes a CSV cycler fixture and returns its path.
func WriteB6CSV(t *testing.T, dir, name string, blocks ...StepBlock) string {
	t.Helper()
	var b strings.Builder
	b.WriteString(strings.Join(B6Headers, ","))
	b.WriteString("\n")
	seq := 0
	for _, blk := range blocks {
		for i := 0; i < blk.Rows; i++ {
			b.WriteString(strings.Join(cyclerRow(B6Headers, blk, i, seq), ","))
			b.WriteString("\n")
			seq++
		}
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}

// WriteCSV writes an arbitrary delimited fixture from explicit rows.
func WriteCSV(t *testing.T, dir, name string, rows ...[]string) string {
	t.Helper()
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}

// WriteLeafWorkbook writes a characterization workbook with one sheet per
// channel plus a leading info sheet, and returns its path.
func WriteLeafWorkbook(t *testing.T, dir, name string, channels []int, blocks ...StepBlock) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	info := f.GetSheetName(0)
	f.SetCellValue(info, "A1", "Test summary")

	for _, ch := range channels {
		sheet := fmt.Sprintf("Channel_%d", ch)
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("new sheet %s: %v", sheet, err)
		}
		headerRow := make([]interface{}, len(LeafHeaders))
		for i, h := range LeafHeaders {
			headerRow[i] = h
		}
		if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
			t.Fatalf("write headers: %v", err)
		}
		seq := 0
		rowNum := 2
		for _, blk := range blocks {
			for i := 0; i < blk.Rows; i++ {
				values := cyclerRow(LeafHeaders, blk, i, seq)
				row := make([]interface{}, len(values))
				for j, v := range values {
					row[j] = v
				}
				if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNum), &row); err != nil {
					t.Fatalf("write row: %v", err)
				}
				seq++
				rowNum++
			}
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook %s: %v", path, err)
	}
	return path
}

// DTAOptions controls the impedance fixture's shape.
type DTAOptions struct {
	// Points is the number of frequency rows; default 4
	Points int
	// OmitMetadata drops the DATE/TIME/EOC preamble lines
	OmitMetadata bool
	// OmitTable drops the ZCURVE block entirely
	OmitTable bool
	// TruncateTable ends the file right after the header row
	TruncateTable bool
	// CorruptRow makes one data cell non-numeric
	CorruptRow bool
}

var dtaColumns = []string{"Pt", "Time", "Freq", "Zreal", "Zimag", "Zsig", "Zmod", "Zphz", "Idc", "Vdc", "IERange"}

// WriteDTA writes an impedance DTA fixture and returns its path.
func WriteDTA(t *testing.T, dir, name string, opts DTAOptions) string {
	t.Helper()
	points := opts.Points
	if points == 0 {
		points = 4
	}

	var b strings.Builder
	b.WriteString("EXPLAIN\n")
	b.WriteString("TAG\tEISPOT\n")
	if !opts.OmitMetadata {
		b.WriteString("DATE\tLABEL\t3/2/2022\tDate\n")
		b.WriteString("TIME\tLABEL\t13:57:28\tTime\n")
		b.WriteString("EOC\tQUANT\t3.76061E+000\tOpen Circuit(V)\n")
	}
	if !opts.OmitTable {
		b.WriteString(fmt.Sprintf("ZCURVE\tTABLE\t%d\n", points))
		b.WriteString("\t" + strings.Join(dtaColumns, "\t") + "\n")
		if !opts.TruncateTable {
			b.WriteString("\t#\ts\tHz\tohm\tohm\tV\tohm\t°\tA\tV\t#\n")
			for i := 0; i < points; i++ {
				row := []string{
					fmt.Sprintf("%d", i),
					fmt.Sprintf("%d", i+1),
					fmt.Sprintf("%.2f", 100000.0/float64(1+i*9)),
					fmt.Sprintf("%.7f", 0.02+0.001*float64(i)),
					fmt.Sprintf("%.7f", -0.003+0.0005*float64(i)),
					"1",
					fmt.Sprintf("%.7f", 0.021+0.001*float64(i)),
					fmt.Sprintf("%.4f", -7.5+float64(i)),
					"0.0018",
					"3.7605",
					"12",
				}
				if opts.CorruptRow && i == points-1 {
					row[3] = "not-a-number"
				}
				b.WriteString("\t" + strings.Join(row, "\t") + "\n")
			}
		}
	}
	b.WriteString("EXPERIMENTDONE\n")

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}
