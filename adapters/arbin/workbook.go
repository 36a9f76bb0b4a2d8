package arbin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"primed/domain/core"
	"primed/domain/cycler"
)

// ReadWorkbook reads a characterization workbook in which each channel's
// data lives on its own sheet named "Channel_<n>". The first sheet is the
// tester's info page and is skipped. Returns one populated Cell per channel
// sheet; since the workbook carries no separate cell numbering, the channel
// number doubles as the cell number.
//
// Any malformed sheet rejects the whole workbook: partial results would be
// indistinguishable from a complete load.
func (r *Reader) ReadWorkbook(path string, sel cycler.StepSelection) ([]*cycler.Cell, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, core.NewFileFormatErrorf(path, "cannot open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) < 2 {
		return nil, core.NewFileFormatError(path, "workbook has no channel sheets")
	}

	var cells []*cycler.Cell
	for _, sheet := range sheets[1:] {
		channel, err := channelFromSheetName(sheet)
		if err != nil {
			return nil, core.NewFileFormatErrorf(path, "sheet %q: %v", sheet, err)
		}

		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, core.NewFileFormatErrorf(path, "sheet %q: %v", sheet, err)
		}
		if len(rows) < 2 {
			return nil, core.NewFileFormatErrorf(path, "sheet %q has no data rows", sheet)
		}

		headers := normalizeHeaders(rows[0])
		data := padRows(rows[1:], len(headers))
		parsed, err := validateRows(path, headers, data, r.format)
		if err != nil {
			return nil, err
		}

		cell := cycler.NewCell(channel, channel)
		routeRows(cell, headers, parsed, sel, r.logger)
		cell.SetFileHeaders(headers)
		cells = append(cells, cell)
		r.logger.Info("[Arbin] %s sheet %q: %d cycles for channel %d", path, sheet, cell.Len(), channel)
	}
	return cells, nil
}

// channelFromSheetName extracts n from sheet names like "Channel_7" or
// "Channel_7_1".
func channelFromSheetName(name string) (int, error) {
	parts := strings.Split(name, "_")
	if len(parts) < 2 {
		return 0, fmt.Errorf("sheet name has no channel number")
	}
	return strconv.Atoi(parts[1])
}

// padRows right-pads sheet rows to the header width. excelize drops
// trailing empty cells, so short rows are completed with empty strings
// rather than rejected.
func padRows(rows [][]string, width int) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) >= width {
			out[i] = row
			continue
		}
		padded := make([]string, width)
		copy(padded, row)
		out[i] = padded
	}
	return out
}
