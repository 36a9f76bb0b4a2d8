// Package gamry reads Gamry potentiostat DTA output files into impedance
// Sweep containers. A DTA file is tagged text: scalar metadata lines
// followed by one frequency-sweep table introduced by the ZCURVE tag.
package gamry

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"primed/domain/core"
	"primed/domain/eis"
	"primed/internal"
)

// Metadata tags recognized in the file preamble.
const (
	tagDate   = "DATE"
	tagTime   = "TIME"
	tagEOC    = "EOC"
	tagZCurve = "ZCURVE"
)

// Reader parses DTA files and populates Sweep containers.
type Reader struct {
	strictMetadata bool
	logger         *internal.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithStrictMetadata makes missing optional metadata (date, time, open
// circuit voltage) a parse error instead of leaving zero values.
func WithStrictMetadata() Option {
	return func(r *Reader) { r.strictMetadata = true }
}

// WithLogger replaces the default logger.
func WithLogger(logger *internal.Logger) Option {
	return func(r *Reader) { r.logger = logger }
}

// NewReader creates a DTA file reader.
func NewReader(opts ...Option) *Reader {
	r := &Reader{logger: internal.DefaultLogger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadFile parses one DTA file into sweep. The whole table is validated
// before the sweep is touched, so a malformed or truncated file rejects
// cleanly and the sweep retains no partial data. A sweep can be read only
// once.
func (r *Reader) ReadFile(sweep *eis.Sweep, path string) error {
	if sweep.Loaded() {
		return fmt.Errorf("%w: %s", core.ErrSweepLoaded, sweep.Name)
	}

	file, err := os.Open(path)
	if err != nil {
		return core.NewFileFormatErrorf(path, "cannot open: %v", err)
	}
	defer file.Close()

	parsed, err := parseDTA(path, file)
	if err != nil {
		return err
	}

	if r.strictMetadata {
		if parsed.date == "" || parsed.clock == "" {
			return core.NewFileFormatError(path, "missing DATE/TIME metadata")
		}
		if !parsed.hasEOC {
			return core.NewFileFormatError(path, "missing EOC metadata")
		}
	}
	if parsed.date != "" && parsed.clock != "" {
		// Gamry writes month/day/year with no zero padding
		at, err := time.Parse("1/2/2006 15:04:05", parsed.date+" "+parsed.clock)
		if err != nil {
			return core.NewFileFormatErrorf(path, "bad DATE/TIME metadata: %v", err)
		}
		sweep.AcquiredAt = at
	}
	sweep.OCV = parsed.ocv

	if err := sweep.SetData(parsed.table); err != nil {
		return err
	}
	r.logger.Debug("[Gamry] %s: %d frequency points", path, sweep.NumPoints())
	return nil
}

type dtaFile struct {
	table  core.Table
	date   string
	clock  string
	ocv    float64
	hasEOC bool
}

func parseDTA(path string, file *os.File) (*dtaFile, error) {
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	out := &dtaFile{}
	var headers []string
	inTable := false

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		if !inTable {
			fields := strings.Split(line, "\t")
			switch fields[0] {
			case tagDate:
				if len(fields) >= 3 {
					out.date = strings.TrimSpace(fields[2])
				}
			case tagTime:
				if len(fields) >= 3 {
					out.clock = strings.TrimSpace(fields[2])
				}
			case tagEOC:
				if len(fields) >= 3 {
					v, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
					if err != nil {
						return nil, core.NewFileFormatErrorf(path, "bad EOC value %q", fields[2])
					}
					out.ocv = v
					out.hasEOC = true
				}
			case tagZCurve:
				inTable = true
			}
			continue
		}

		// inside the ZCURVE block: header row, units row, then data
		if !strings.HasPrefix(line, "\t") {
			break // table ends at the first untabbed line
		}
		fields := strings.Split(strings.TrimPrefix(line, "\t"), "\t")
		switch {
		case headers == nil:
			if fields[0] != "Pt" {
				return nil, core.NewFileFormatErrorf(path, "expected table header, got %q", fields[0])
			}
			headers = fields
		case !out.tableStarted():
			if fields[0] != "#" {
				return nil, core.NewFileFormatError(path, "table units row missing")
			}
			if len(fields) != len(headers) {
				return nil, core.NewFileFormatError(path, "units row width does not match header")
			}
			out.table.SetHeaders(joinUnits(headers, fields))
		default:
			if len(fields) != len(headers) {
				return nil, core.NewFileFormatErrorf(path, "data row has %d fields, want %d", len(fields), len(headers))
			}
			for _, f := range fields {
				if _, err := strconv.ParseFloat(strings.TrimSpace(f), 64); err != nil {
					return nil, core.NewFileFormatErrorf(path, "non-numeric value %q in data table", f)
				}
			}
			out.table.AppendRow(fields) //nolint:errcheck // width checked above
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, core.NewFileFormatErrorf(path, "read failed: %v", err)
	}

	if !inTable {
		return nil, core.NewFileFormatError(path, "no ZCURVE data table found")
	}
	if headers == nil || out.table.NumColumns() == 0 {
		return nil, core.NewFileFormatError(path, "ZCURVE table truncated")
	}
	if out.table.NumRows() == 0 {
		return nil, core.NewFileFormatError(path, "ZCURVE table has no data rows")
	}
	return out, nil
}

func (d *dtaFile) tableStarted() bool {
	return d.table.NumColumns() > 0
}

// joinUnits merges the header row with the units row beneath it, matching
// the column naming the lab's tooling expects: "Freq" over "Hz" becomes
// "Freq (Hz)". The phase column's degree symbol is replaced with a stable
// ASCII name.
func joinUnits(headers, units []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		if h == "Zphz" {
			out[i] = "Zphz (degrees)"
			continue
		}
		out[i] = h + " (" + units[i] + ")"
	}
	return out
}
