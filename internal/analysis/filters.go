package analysis

import (
	"math"

	"primed/domain/core"
	"primed/domain/cycler"
)

// CollectSteps gathers every step with the given index across the whole
// batch, in cell/cycle order.
func CollectSteps(batch *cycler.Batch, stepIndex int) []*cycler.Step {
	var out []*cycler.Step
	for _, cell := range batch.Cells() {
		for _, cycle := range cell.Cycles() {
			out = append(out, cycle.StepsByIndex(stepIndex)...)
		}
	}
	return out
}

// FilterBySOH bins steps by their assigned state of health. Bins are
// widthPercent wide between lowerPercent and upperPercent and keyed by the
// bin's lower bound as a fraction, so widthPercent=1 between 77 and 101
// yields keys 0.77, 0.78, ... 1.00. Steps whose SOH was never assigned
// (-1) land in no bin.
func FilterBySOH(steps []*cycler.Step, widthPercent, lowerPercent, upperPercent int) (map[float64][]*cycler.Step, error) {
	if widthPercent <= 0 {
		return nil, core.NewConfigError("SOH bin width must be positive")
	}
	if lowerPercent >= upperPercent {
		return nil, core.NewConfigError("SOH lower bound must be below upper bound")
	}
	out := make(map[float64][]*cycler.Step)
	for lower := lowerPercent; lower < upperPercent; lower += widthPercent {
		lo := float64(lower) / 100
		hi := float64(lower+widthPercent) / 100
		var bin []*cycler.Step
		for _, s := range steps {
			if s.SOH > lo && s.SOH < hi {
				bin = append(bin, s)
			}
		}
		out[lo] = bin
	}
	return out, nil
}

// FilterByTemperature retains, per channel, the steps with the given index
// whose battery temperature (last reading, rounded to the nearest degree)
// lies strictly inside the range. Cycles missing the step or the
// temperature column are skipped; uneven instrumentation across a campaign
// is normal, not an error.
func FilterByTemperature(batch *cycler.Batch, stepIndex int, lowC, highC float64) map[int][]*cycler.Step {
	out := make(map[int][]*cycler.Step)
	for _, cell := range batch.Cells() {
		channel := cell.ChannelNumber
		out[channel] = nil
		for _, cycle := range cell.Cycles() {
			for _, step := range cycle.StepsByIndex(stepIndex) {
				col, err := step.Column(ColBatteryTemp)
				if err != nil {
					continue
				}
				temp, err := col.Last()
				if err != nil {
					continue
				}
				if r := math.Round(temp); r > lowC && r < highC {
					out[channel] = append(out[channel], step)
				}
			}
		}
	}
	return out
}
