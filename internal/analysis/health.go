// Package analysis derives battery-health quantities and summary
// statistics from an assembled batch. Nothing here reads files; it works on
// the containers the readers and the merge produced.
package analysis

import (
	"primed/domain/core"
	"primed/domain/cycler"
)

// Column names the health calculations read.
const (
	ColDischargeCapacity = "Discharge_Capacity(Ah)"
	ColDischargeEnergy   = "Discharge_Energy(Wh)"
	ColBatteryTemp       = "Battery_Temperature(C)"
)

// AssignSOH computes each cycle's state of health from the final discharge
// capacity of the reference step and stores it on every step with index
// stepIndex in that cycle. Cycles without the reference step get -1, so
// partial cycles (power outages, aborted runs) stay visible instead of
// poisoning downstream filters.
func AssignSOH(batch *cycler.Batch, stepIndex, refStepIndex int, nominalCapacityAh float64) error {
	if nominalCapacityAh <= 0 {
		return core.NewConfigError("nominal capacity must be positive")
	}
	return assignHealth(batch, stepIndex, refStepIndex, ColDischargeCapacity, nominalCapacityAh, func(s *cycler.Step, v float64) {
		s.SOH = v
	})
}

// AssignSOE is AssignSOH for state of energy, from the final discharge
// energy against the nominal energy capacity in Wh.
func AssignSOE(batch *cycler.Batch, stepIndex, refStepIndex int, nominalEnergyWh float64) error {
	if nominalEnergyWh <= 0 {
		return core.NewConfigError("nominal energy capacity must be positive")
	}
	return assignHealth(batch, stepIndex, refStepIndex, ColDischargeEnergy, nominalEnergyWh, func(s *cycler.Step, v float64) {
		s.SOE = v
	})
}

func assignHealth(batch *cycler.Batch, stepIndex, refStepIndex int, column string, nominal float64, set func(*cycler.Step, float64)) error {
	for _, cell := range batch.Cells() {
		for _, cycle := range cell.Cycles() {
			value := -1.0
			if refSteps := cycle.StepsByIndex(refStepIndex); len(refSteps) > 0 {
				col, err := refSteps[0].Column(column)
				if err != nil {
					return err
				}
				last, err := col.Last()
				if err != nil {
					return err
				}
				value = last / nominal
			}
			for _, step := range cycle.StepsByIndex(stepIndex) {
				set(step, value)
			}
		}
	}
	return nil
}

// AssignTemperature copies each cycle's battery temperature (the last
// reading of the reference step) onto the sweeps attached to steps with
// index stepIndex. Cycles without the reference step leave the sweeps'
// temperature untouched.
func AssignTemperature(batch *cycler.Batch, stepIndex, refStepIndex int) error {
	for _, cell := range batch.Cells() {
		for _, cycle := range cell.Cycles() {
			refSteps := cycle.StepsByIndex(refStepIndex)
			if len(refSteps) == 0 {
				continue
			}
			// the reading closest to the sweep is the last one before it
			col, err := refSteps[len(refSteps)-1].Column(ColBatteryTemp)
			if err != nil {
				return err
			}
			temp, err := col.Last()
			if err != nil {
				return err
			}
			for _, step := range cycle.StepsByIndex(stepIndex) {
				for _, sweep := range step.Sweeps() {
					sweep.Temperature = temp
				}
			}
		}
	}
	return nil
}
