package optimize

import kitlog "github.com/go-kit/kit/log"

// BinarySearch assumes feasibility is monotone non-increasing in speed
// over [MinimumSpeed, MaximumSpeed] and converges on the maximal
// feasible speed under that assumption.
type BinarySearch struct {
	Config Config
	Oracle Oracle
	Logger kitlog.Logger
}

// OptimizeRace converges by bisection, then re-verifies the converged
// speed: the simulator is monotone in smooth regimes but not strictly
// so at day boundaries, where a slightly higher speed can complete a
// segment inside the day and trigger a checkpoint dwell. If
// verification fails, best_speed is stepped back by one precision and
// re-verified once more before giving up. A fatal Oracle error (one not
// wrapping race.ErrInfeasible) aborts the search immediately and is
// returned rather than pruned.
func (o BinarySearch) OptimizeRace() (Output, bool, error) {
	low, high := o.Config.MinimumSpeed, o.Config.MaximumSpeed
	var bestSpeed, bestRacetime float64

	for high-low > o.Config.Precision {
		mid := (low + high) / 2

		racetime, err := o.Oracle.CalculateRacetime(mid)
		if fatal(err) {
			return Output{}, false, err
		}
		if o.Logger != nil {
			o.Logger.Log("level", "debug", "speed", mid, "feasible", err == nil)
		}
		if err == nil {
			bestSpeed = mid
			bestRacetime = racetime
			low = mid
		} else {
			high = mid
		}
	}

	if bestSpeed == 0 {
		return Output{}, false, nil
	}

	if _, err := o.Oracle.CalculateRacetime(bestSpeed); err != nil {
		if fatal(err) {
			return Output{}, false, err
		}

		bestSpeed -= o.Config.Precision

		fallbackRacetime, err := o.Oracle.CalculateRacetime(bestSpeed)
		if err != nil {
			if fatal(err) {
				return Output{}, false, err
			}
			if o.Logger != nil {
				o.Logger.Log("level", "warning", "message", "binary search verification and step-back both failed")
			}
			return Output{}, false, nil
		}
		bestRacetime = fallbackRacetime
	}

	if o.Logger != nil {
		o.Logger.Log("level", "info", "message", "binary search converged", "speed", bestSpeed, "racetime", bestRacetime)
	}
	return Output{RacetimeS: bestRacetime, SpeedMS: bestSpeed}, true, nil
}
