// Package app wires the file readers and the merge engine into batch-level
// operations: load every channel of a test campaign, then cross-reference
// the impedance sweeps against the cycling data.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"primed/domain/cycler"
	"primed/domain/eis"
	"primed/internal"
	"primed/ports"
)

// ChannelSpec names the raw-data locations for one tester channel.
type ChannelSpec struct {
	CellNumber    int
	ChannelNumber int

	// CyclerDirs are read in order; files inside each are ordered by the
	// numeric sequence token in their name, which is chronological
	CyclerDirs []string

	// SweepDirs hold the impedance files; entries whose filename decodes
	// to a different channel are skipped
	SweepDirs []string
}

// LoadRequest describes one batch load.
type LoadRequest struct {
	Channels  []ChannelSpec
	Selection cycler.StepSelection

	// SweepSOC is the caller-supplied state-of-charge hint recorded on
	// every loaded sweep; impedance files do not self-describe it
	SweepSOC float64

	// ContinueOnError skips files that fail to parse (logged) instead of
	// aborting the load. Previously parsed files always stay intact.
	ContinueOnError bool
}

// LoadResult is the assembled output of one batch load.
type LoadResult struct {
	Batch    *cycler.Batch
	EISCells []*eis.Cell
	Report   *MergeReport

	// SkippedFiles lists files dropped under ContinueOnError
	SkippedFiles []string
}

// LoadService orchestrates a full campaign load. Channels are independent,
// so each one is read on its own goroutine; the containers themselves stay
// single-threaded because every goroutine owns its channel's cell outright.
type LoadService struct {
	cyclerReader ports.CyclerReaderPort
	sweepReader  ports.SweepReaderPort
	merge        *MergeService
	logger       *internal.Logger
}

// NewLoadService creates a load service.
func NewLoadService(cyclerReader ports.CyclerReaderPort, sweepReader ports.SweepReaderPort, logger *internal.Logger) *LoadService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &LoadService{
		cyclerReader: cyclerReader,
		sweepReader:  sweepReader,
		merge:        NewMergeService(logger),
		logger:       logger,
	}
}

// LoadBatch loads every channel, merges the impedance sweeps into the
// cycling hierarchy and returns the combined structure.
func (s *LoadService) LoadBatch(ctx context.Context, req LoadRequest) (*LoadResult, error) {
	if err := req.Selection.Validate(); err != nil {
		return nil, err
	}

	cells := make([]*cycler.Cell, len(req.Channels))
	eisCells := make([]*eis.Cell, len(req.Channels))
	skipped := make([][]string, len(req.Channels))

	g, ctx := errgroup.WithContext(ctx)
	for i, ch := range req.Channels {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cell, cellSkipped, err := s.loadChannel(ch, req)
			if err != nil {
				return err
			}
			eisCell, eisSkipped, err := s.loadSweeps(ch, req)
			if err != nil {
				return err
			}
			cells[i] = cell
			eisCells[i] = eisCell
			skipped[i] = append(cellSkipped, eisSkipped...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := cycler.NewBatch(cells...)
	result := &LoadResult{
		Batch:    batch,
		EISCells: eisCells,
		Report:   s.merge.Merge(eisCells, cells),
	}
	for _, files := range skipped {
		result.SkippedFiles = append(result.SkippedFiles, files...)
	}
	s.logger.Info("[Load] run %s: %d cells, %d skipped files", batch.RunID, batch.Len(), len(result.SkippedFiles))
	return result, nil
}

func (s *LoadService) loadChannel(ch ChannelSpec, req LoadRequest) (*cycler.Cell, []string, error) {
	cell := cycler.NewCell(ch.CellNumber, ch.ChannelNumber)
	var skipped []string
	for _, dir := range ch.CyclerDirs {
		files, err := chronologicalFiles(dir, ".csv")
		if err != nil {
			return nil, nil, err
		}
		for _, path := range files {
			if err := s.cyclerReader.ReadCSV(cell, path, req.Selection); err != nil {
				if !req.ContinueOnError {
					return nil, nil, err
				}
				s.logger.Warn("[Load] skipping cycler file: %v", err)
				skipped = append(skipped, path)
			}
		}
	}
	return cell, skipped, nil
}

func (s *LoadService) loadSweeps(ch ChannelSpec, req LoadRequest) (*eis.Cell, []string, error) {
	eisCell := eis.NewCell(ch.CellNumber, ch.ChannelNumber)
	var skipped []string
	for _, dir := range ch.SweepDirs {
		files, err := sweepFiles(dir, ch.ChannelNumber)
		if err != nil {
			return nil, nil, err
		}
		for _, f := range files {
			name := fmt.Sprintf("chan%03d cycle%03d step%03d", f.info.ChannelNumber, f.info.CycleNumber, f.info.StepIndex)
			sweep, err := eis.NewSweep(name, req.SweepSOC, f.info.StepIndex)
			if err != nil {
				return nil, nil, err
			}
			if err := s.sweepReader.ReadFile(sweep, f.path); err != nil {
				if !req.ContinueOnError {
					return nil, nil, err
				}
				s.logger.Warn("[Load] skipping impedance file: %v", err)
				skipped = append(skipped, f.path)
				continue
			}
			cycleFor(eisCell, f.info.CycleNumber).AddSweep(sweep)
		}
	}
	return eisCell, skipped, nil
}

// cycleFor finds or creates the EIS cycle with the given number.
func cycleFor(cell *eis.Cell, cycleNumber int) *eis.Cycle {
	if cy, err := cell.Cycle(cycleNumber); err == nil {
		return cy
	}
	cy := eis.NewCycle(cycleNumber)
	cell.AddCycle(cy)
	return cy
}

// chronologicalFiles lists the files with the given extension, ordered by
// the numeric sequence token the tester appends to the name
// ("..._Channel_1.3.csv" sorts after "..._Channel_1.2.csv").
func chronologicalFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot list %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Slice(files, func(i, j int) bool {
		si, sj := sequenceToken(files[i]), sequenceToken(files[j])
		if si != sj {
			return si < sj
		}
		return files[i] < files[j]
	})
	return files, nil
}

// sequenceToken extracts the numeric token before the extension; files
// without one sort first.
func sequenceToken(path string) int {
	parts := strings.Split(filepath.Base(path), ".")
	if len(parts) < 3 {
		return -1
	}
	n, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		return -1
	}
	return n
}

type sweepFile struct {
	path string
	info SweepFileInfo
}

// sweepFiles lists the channel's impedance files in cycle order. Files for
// other channels share the same folder and are skipped; files that do not
// follow the naming convention are an error because nothing else carries
// their identity.
func sweepFiles(dir string, channelNumber int) ([]sweepFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot list %s: %w", dir, err)
	}
	var files []sweepFile
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".dta") {
			continue
		}
		info, err := ParseSweepFilename(e.Name())
		if err != nil {
			return nil, err
		}
		if info.ChannelNumber != channelNumber {
			continue
		}
		files = append(files, sweepFile{path: filepath.Join(dir, e.Name()), info: info})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].info.CycleNumber < files[j].info.CycleNumber
	})
	return files, nil
}
