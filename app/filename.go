package app

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
)

// Impedance files carry their channel, cycle and step identity only in the
// filename, as fixed-width zero-padded tokens:
//
//	B6T10V0_Chan001_Cycle003_Step014.DTA
//
// The parsers never look at filenames; decoding happens here, on the
// orchestration side, and the merge receives plain integers.
var sweepFilePattern = regexp.MustCompile(`(?i)_Chan(\d{3})_Cycle(\d{3})_Step(\d{3})\.DTA$`)

// SweepFileInfo is the identity decoded from an impedance filename.
type SweepFileInfo struct {
	ChannelNumber int
	CycleNumber   int
	StepIndex     int
}

// ParseSweepFilename decodes the channel/cycle/step tokens from an
// impedance file path. Fails when the name does not follow the campaign's
// naming convention.
func ParseSweepFilename(path string) (SweepFileInfo, error) {
	name := filepath.Base(path)
	m := sweepFilePattern.FindStringSubmatch(name)
	if m == nil {
		return SweepFileInfo{}, fmt.Errorf("filename %q does not match the sweep naming convention", name)
	}
	channel, _ := strconv.Atoi(m[1])
	cycle, _ := strconv.Atoi(m[2])
	step, _ := strconv.Atoi(m[3])
	return SweepFileInfo{ChannelNumber: channel, CycleNumber: cycle, StepIndex: step}, nil
}
