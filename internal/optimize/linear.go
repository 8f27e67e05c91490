package optimize

import kitlog "github.com/go-kit/kit/log"

// LinearSearch sweeps speed from cfg.MinimumSpeed to cfg.MaximumSpeed
// inclusive in increments of cfg.SpeedStep, tracking the highest speed
// at which the oracle reports a finite racetime.
type LinearSearch struct {
	Config Config
	Oracle Oracle
	Logger kitlog.Logger
}

// OptimizeRace returns the fastest feasible speed found in sweep order,
// or (Output{}, false, nil) if none is feasible. A fatal Oracle error
// (one not wrapping race.ErrInfeasible) aborts the sweep immediately
// and is returned rather than pruned.
func (o LinearSearch) OptimizeRace() (Output, bool, error) {
	var bestSpeed, bestRacetime float64

	for speed := o.Config.MinimumSpeed; speed <= o.Config.MaximumSpeed; speed += o.Config.SpeedStep {
		racetime, err := o.Oracle.CalculateRacetime(speed)
		if fatal(err) {
			return Output{}, false, err
		}
		if o.Logger != nil {
			o.Logger.Log("level", "debug", "speed", speed, "feasible", err == nil)
		}
		if err == nil {
			bestSpeed = speed
			bestRacetime = racetime
		}
	}

	if bestSpeed == 0 {
		return Output{}, false, nil
	}
	if o.Logger != nil {
		o.Logger.Log("level", "info", "message", "linear search converged", "speed", bestSpeed, "racetime", bestRacetime)
	}
	return Output{RacetimeS: bestRacetime, SpeedMS: bestSpeed}, true, nil
}
