package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"primed/adapters/arbin"
	"primed/adapters/gamry"
	"primed/app"
	"primed/domain/cycler"
	"primed/internal"
	"primed/internal/analysis"
	"primed/internal/config"
)

func main() {
	var (
		cellNumber    = flag.Int("cell", 1, "cell number for the loaded channel")
		channelNumber = flag.Int("channel", 1, "tester channel number")
		cyclerDir     = flag.String("cycler-dir", "", "folder with cycler CSV exports (default: <data dir>/cycler)")
		sweepDir      = flag.String("sweep-dir", "", "folder with impedance DTA files (default: <data dir>/eis)")
		workbook      = flag.String("workbook", "", "characterization workbook to load instead of CSV folders")
		steps         = flag.String("steps", "", "step selection, e.g. \"Discharge=5,6;Charge=2\"")
		soc           = flag.Float64("soc", 0, "state of charge recorded on every loaded sweep (0..1)")
		healthStep    = flag.Int("health-step", 0, "step index to assign SOH/SOE onto (0 disables)")
		healthRef     = flag.Int("health-ref", 0, "reference discharge step index for SOH/SOE")
		format        = flag.String("format", "auto", "cycler column convention: auto, b6 or leaf")
		keepGoing     = flag.Bool("continue", false, "skip unreadable files instead of aborting")
	)
	flag.Parse()

	// Best effort: the environment wins over the .env file.
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	sel, err := parseSelection(*steps)
	if err != nil {
		log.Fatalf("invalid -steps: %v", err)
	}

	cyclerFormat, err := parseFormat(*format)
	if err != nil {
		log.Fatalf("invalid -format: %v", err)
	}

	if *cyclerDir == "" {
		*cyclerDir = filepath.Join(cfg.Data.RootDir, "cycler")
	}
	if *sweepDir == "" {
		*sweepDir = filepath.Join(cfg.Data.RootDir, "eis")
	}

	logger := internal.NewDefaultLogger()

	if *workbook != "" {
		cyclerReader := arbin.NewReader(arbin.WithFormat(cyclerFormat), arbin.WithLogger(logger))
		cells, err := cyclerReader.ReadWorkbook(*workbook, sel)
		if err != nil {
			log.Fatalf("load workbook: %v", err)
		}
		batch := cycler.NewBatch(cells...)
		fmt.Printf("run %s\n", batch.RunID)
		for _, cell := range batch.Cells() {
			fmt.Printf("channel %d: %d cycles\n", cell.ChannelNumber, cell.Len())
		}
		return
	}

	gamryOpts := []gamry.Option{gamry.WithLogger(logger)}
	if cfg.Data.StrictMetadata {
		gamryOpts = append(gamryOpts, gamry.WithStrictMetadata())
	}

	svc := app.NewLoadService(
		arbin.NewReader(arbin.WithFormat(cyclerFormat), arbin.WithLogger(logger)),
		gamry.NewReader(gamryOpts...),
		logger,
	)

	result, err := svc.LoadBatch(context.Background(), app.LoadRequest{
		Channels: []app.ChannelSpec{{
			CellNumber:    *cellNumber,
			ChannelNumber: *channelNumber,
			CyclerDirs:    []string{*cyclerDir},
			SweepDirs:     []string{*sweepDir},
		}},
		Selection:       sel,
		SweepSOC:        *soc,
		ContinueOnError: *keepGoing,
	})
	if err != nil {
		log.Fatalf("load: %v", err)
	}

	if *healthStep > 0 {
		if cfg.Data.NominalCapacityAh > 0 {
			if err := analysis.AssignSOH(result.Batch, *healthStep, *healthRef, cfg.Data.NominalCapacityAh); err != nil {
				log.Fatalf("assign SOH: %v", err)
			}
		}
		if cfg.Data.NominalEnergyWh > 0 {
			if err := analysis.AssignSOE(result.Batch, *healthStep, *healthRef, cfg.Data.NominalEnergyWh); err != nil {
				log.Fatalf("assign SOE: %v", err)
			}
		}
		if err := analysis.AssignTemperature(result.Batch, *healthStep, *healthRef); err != nil {
			logger.Warn("temperature assignment: %v", err)
		}
	}

	printSummary(result)
	if *healthStep > 0 {
		printHealth(result.Batch, *healthStep)
	}
	if len(result.Report.Unmatched) > 0 {
		os.Exit(1)
	}
}

func printHealth(batch *cycler.Batch, stepIndex int) {
	for _, step := range analysis.CollectSteps(batch, stepIndex) {
		fmt.Printf("step %d: SOH=%.4f SOE=%.4f\n", step.StepIndex, step.SOH, step.SOE)
	}
}

// parseSelection decodes "Discharge=5,6;Charge=2" into a step selection.
func parseSelection(s string) (cycler.StepSelection, error) {
	sel := cycler.StepSelection{}
	for _, group := range strings.Split(s, ";") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		name, list, ok := strings.Cut(group, "=")
		if !ok {
			return nil, fmt.Errorf("%q is not of the form type=index,index", group)
		}
		var indices []int
		for _, tok := range strings.Split(list, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(tok))
			if err != nil {
				return nil, fmt.Errorf("%q is not a step index", tok)
			}
			indices = append(indices, n)
		}
		sel[strings.TrimSpace(name)] = indices
	}
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	return sel, nil
}

func parseFormat(s string) (arbin.Format, error) {
	switch strings.ToLower(s) {
	case "auto":
		return arbin.FormatAuto, nil
	case "b6":
		return arbin.FormatB6, nil
	case "leaf":
		return arbin.FormatLeaf, nil
	}
	return arbin.FormatAuto, fmt.Errorf("unknown format %q", s)
}

func printSummary(result *app.LoadResult) {
	fmt.Printf("run %s\n", result.Batch.RunID)
	for _, cell := range result.Batch.Cells() {
		fmt.Printf("cell %d (channel %d): %d cycles\n", cell.CellNumber, cell.ChannelNumber, cell.Len())
	}
	fmt.Printf("sweeps matched: %d, attached: %d, unmatched: %d\n",
		result.Report.Matched, result.Report.Attached, len(result.Report.Unmatched))
	for _, u := range result.Report.Unmatched {
		fmt.Printf("  unmatched: %s\n", u)
	}
	if len(result.SkippedFiles) > 0 {
		skipped := append([]string(nil), result.SkippedFiles...)
		sort.Strings(skipped)
		fmt.Printf("skipped files:\n")
		for _, f := range skipped {
			fmt.Printf("  %s\n", f)
		}
	}
}
