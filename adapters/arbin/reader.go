// Package arbin reads raw Arbin cycling-tester files into the cycler
// containers. Two layouts are supported: per-channel CSV exports and
// multi-sheet characterization workbooks (one sheet per channel).
package arbin

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"primed/domain/core"
	"primed/domain/cycler"
	"primed/internal"
)

// Reader parses cycler files and populates Cell containers.
type Reader struct {
	format Format
	logger *internal.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithFormat selects an explicit file format instead of header inference.
func WithFormat(format Format) Option {
	return func(r *Reader) { r.format = format }
}

// WithLogger replaces the default logger.
func WithLogger(logger *internal.Logger) Option {
	return func(r *Reader) { r.logger = logger }
}

// NewReader creates a cycler file reader.
func NewReader(opts ...Option) *Reader {
	r := &Reader{format: FormatAuto, logger: internal.DefaultLogger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadCSV reads one per-channel CSV export into cell, keeping only rows
// whose step index is retained by the selection. Cycles and steps are
// created on demand in first-seen order; a cell that already holds cycles
// resumes from its last cycle and step, so a test split across several
// files loads into one coherent hierarchy.
//
// The whole file is validated before the cell is touched: a missing
// required column, a ragged row or an unparseable step/cycle index rejects
// the file and leaves the cell exactly as it was.
func (r *Reader) ReadCSV(cell *cycler.Cell, path string, sel cycler.StepSelection) error {
	if err := sel.Validate(); err != nil {
		return err
	}

	headers, rows, err := readDelimited(path)
	if err != nil {
		return err
	}
	headers = normalizeHeaders(headers)

	parsed, err := validateRows(path, headers, rows, r.format)
	if err != nil {
		return err
	}

	r.logger.Debug("[Arbin] %s: %d columns, %d rows", path, len(headers), len(rows))
	routeRows(cell, headers, parsed, sel, r.logger)
	cell.SetFileHeaders(headers)
	return nil
}

// readDelimited reads a comma-delimited file line by line. Arbin exports
// contain non-UTF-8 bytes in the auxiliary headers, so lines are split
// directly rather than going through encoding-sensitive CSV machinery; the
// files themselves never quote fields.
func readDelimited(path string) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, core.NewFileFormatErrorf(path, "cannot open: %v", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var headers []string
	var rows [][]string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if headers == nil {
			headers = fields
			continue
		}
		rows = append(rows, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, core.NewFileFormatErrorf(path, "read failed: %v", err)
	}
	if headers == nil {
		return nil, nil, core.NewFileFormatError(path, "file has no header row")
	}
	return headers, rows, nil
}

// parsedRow carries one data row with its routing indices already decoded.
type parsedRow struct {
	stepIndex  int
	cycleIndex int
	values     []string
}

// validateRows checks the whole file against the format before any
// container is mutated: required columns present, every row as wide as the
// header, every step/cycle index an integer.
func validateRows(path string, headers []string, rows [][]string, format Format) ([]parsedRow, error) {
	spec, err := resolveFormat(format, headers, path)
	if err != nil {
		return nil, err
	}

	stepCol, cycleCol := -1, -1
	for i, h := range headers {
		switch h {
		case spec.stepIndex:
			stepCol = i
		case spec.cycleIndex:
			cycleCol = i
		}
	}

	parsed := make([]parsedRow, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(headers) {
			return nil, core.NewFileFormatErrorf(path, "row %d has %d fields, want %d", i+2, len(row), len(headers))
		}
		stepIndex, err := parseIndex(row[stepCol])
		if err != nil {
			return nil, core.NewFileFormatErrorf(path, "row %d: bad step index %q", i+2, row[stepCol])
		}
		cycleIndex, err := parseIndex(row[cycleCol])
		if err != nil {
			return nil, core.NewFileFormatErrorf(path, "row %d: bad cycle index %q", i+2, row[cycleCol])
		}
		parsed = append(parsed, parsedRow{stepIndex: stepIndex, cycleIndex: cycleIndex, values: row})
	}
	return parsed, nil
}

// parseIndex decodes an integer column that some exports write as "5" and
// others as "5.0".
func parseIndex(v string) (int, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// routeRows distributes validated rows into the cell's hierarchy. A change
// of cycle index opens a new cycle; a retained step index different from
// the current one opens a new step, so a step index revisited later in the
// cycle produces a second Step entry rather than merging into the first;
// repeats of the current index append to the open step. Rows whose step
// index is not retained are discarded and close the open step.
func routeRows(cell *cycler.Cell, headers []string, rows []parsedRow, sel cycler.StepSelection, logger *internal.Logger) {
	var curCycle *cycler.Cycle
	var curStep *cycler.Step
	curCycleIndex, curStepIndex := 0, 0

	// resume from the last cycle/step when earlier files already
	// populated the cell
	if lc, ok := cell.LastCycle(); ok {
		curCycle, curCycleIndex = lc, lc.CycleIndex
		if ls, ok := lc.LastStep(); ok {
			if headersEqual(ls.Headers(), headers) {
				curStep, curStepIndex = ls, ls.StepIndex
			} else {
				logger.Warn("[Arbin] header row changed between files for cell %d; not resuming open step", cell.CellNumber)
			}
		}
	}

	for _, row := range rows {
		if row.cycleIndex != curCycleIndex || curCycle == nil {
			curStepIndex = 0
			curStep = nil
			curCycleIndex = row.cycleIndex
			curCycle = cycler.NewCycle(curCycleIndex)
			cell.AddCycle(curCycle)
			logger.Debug("[Arbin] cell %d: cycle %d", cell.CellNumber, curCycleIndex)
		}
		switch {
		case sel.Contains(row.stepIndex) && row.stepIndex != curStepIndex:
			curStepIndex = row.stepIndex
			curStep = cycler.NewStep(curStepIndex, sel.StepType(curStepIndex))
			curStep.SetHeaders(headers)
			curStep.AppendRow(row.values) //nolint:errcheck // widths validated upfront
			curCycle.AddStep(curStep)
		case sel.Contains(row.stepIndex):
			curStep.AppendRow(row.values) //nolint:errcheck // widths validated upfront
		default:
			curStepIndex = 0
			curStep = nil
		}
	}
	cell.InvalidateHeaders()
}

func headersEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
