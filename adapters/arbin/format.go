package arbin

import (
	"strings"

	"primed/domain/core"
)

// Format selects the cycler file's column-naming convention.
type Format int

const (
	// FormatAuto infers the format from the header row
	FormatAuto Format = iota
	// FormatB6 is the per-channel CSV export convention (Step_Index,
	// Cycle_Index, Date_Time, ...)
	FormatB6
	// FormatLeaf is the characterization workbook convention with
	// space-separated header names (Step Index, Cycle Index, ...)
	FormatLeaf
)

func (f Format) String() string {
	switch f {
	case FormatB6:
		return "B6"
	case FormatLeaf:
		return "Leaf"
	default:
		return "auto"
	}
}

// formatSpec names the columns a format is recognized and routed by. All
// other columns are carried through untouched; only these two are required.
type formatSpec struct {
	format     Format
	stepIndex  string
	cycleIndex string
}

var formatSpecs = []formatSpec{
	{format: FormatB6, stepIndex: "Step_Index", cycleIndex: "Cycle_Index"},
	{format: FormatLeaf, stepIndex: "Step Index", cycleIndex: "Cycle Index"},
}

// resolveFormat picks the format spec for a header row. Explicit formats
// are validated against the headers; FormatAuto tries each known
// convention. A header row matching no convention is a file format error:
// it indicates a wrong or corrupted file, never something to skip silently.
func resolveFormat(format Format, headers []string, path string) (formatSpec, error) {
	index := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		index[h] = struct{}{}
	}
	for _, spec := range formatSpecs {
		if format != FormatAuto && spec.format != format {
			continue
		}
		_, hasStep := index[spec.stepIndex]
		_, hasCycle := index[spec.cycleIndex]
		if hasStep && hasCycle {
			return spec, nil
		}
		if format != FormatAuto {
			missing := spec.stepIndex
			if hasStep {
				missing = spec.cycleIndex
			}
			return formatSpec{}, core.NewFileFormatErrorf(path, "required column %q not found", missing)
		}
	}
	return formatSpec{}, core.NewFileFormatError(path, "no step/cycle index columns for any known format")
}

// normalizeHeaders trims whitespace and replaces the auxiliary temperature
// channel headers. The raw Arbin headers embed a degree symbol whose byte
// encoding differs between exports, so they are rewritten to stable names.
func normalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))
		switch {
		case strings.HasPrefix(h, "Aux") && strings.HasSuffix(h, "_1"):
			h = "Battery_Temperature(C)"
		case strings.HasPrefix(h, "Aux") && strings.HasSuffix(h, "_2"):
			h = "Chamber_Temperature(C)"
		}
		out[i] = h
	}
	return out
}
