package physics

import (
	"errors"
	"math"
)

// ErrInfeasible indicates that a requested instantaneous power cannot be
// drawn from or pushed into the battery pack at the given terminal
// voltage. The enclosing race run is infeasible at this point, not
// malformed; callers treat it as a prunable search branch, never a
// fatal condition.
var ErrInfeasible = errors.New("physics: battery power request infeasible at this voltage")

// Battery models state-of-charge, terminal voltage, and internal-
// resistance loss.
type Battery struct {
	EnergyCapacityWh float64
	PackResistance   float64 // Ω
	MinVoltage       float64
	MaxVoltage       float64
}

// StateOfCharge returns energyRemaining / EnergyCapacityWh. Not
// clamped: stationary charging can push energyRemaining above capacity,
// and the resulting SOC is used as-is to query voltage.
func (b Battery) StateOfCharge(energyRemaining float64) float64 {
	return energyRemaining / b.EnergyCapacityWh
}

// CurrentVoltage returns the affine terminal voltage at the given SOC.
func (b Battery) CurrentVoltage(soc float64) float64 {
	return b.MinVoltage + soc*(b.MaxVoltage-b.MinVoltage)
}

// PowerLoss solves for the I²R loss at the given net power demand and
// SOC. netPowerDemanded >= 0 is a discharge; negative is a charge. If
// the quadratic's discriminant is negative, the pack cannot source or
// sink the requested power at this voltage and ErrInfeasible is
// returned.
func (b Battery) PowerLoss(netPowerDemanded, soc float64) (float64, error) {
	voltage := b.CurrentVoltage(soc)
	resistance := b.PackResistance

	var current float64
	if netPowerDemanded >= 0 {
		discriminant := voltage*voltage + 4*resistance*netPowerDemanded
		if discriminant < 0 {
			return 0, ErrInfeasible
		}
		current = (-voltage + math.Sqrt(discriminant)) / (2 * resistance)
	} else {
		absPower := -netPowerDemanded
		discriminant := voltage*voltage - 4*resistance*absPower
		if discriminant < 0 {
			return 0, ErrInfeasible
		}
		current = (voltage - math.Sqrt(discriminant)) / (2 * resistance)
	}

	return current * current * resistance, nil
}

// State holds the mutable energy-remaining tracked across a single
// simulator run. One instance is owned exclusively by a RaceRunner run.
type State struct {
	EnergyRemainingWh float64
}

// NewState initializes battery state to full capacity.
func NewState(capacityWh float64) *State {
	return &State{EnergyRemainingWh: capacityWh}
}

// UpdateEnergyRemaining applies a signed energy delta (Wh).
func (s *State) UpdateEnergyRemaining(deltaWh float64) {
	s.EnergyRemainingWh += deltaWh
}
