// Package optimize searches over candidate constant target ground
// speeds, using race.Runner as the feasibility oracle, for the highest
// speed at which the vehicle completes the route without depleting its
// battery.
package optimize

import (
	"errors"

	"github.com/kevinxc1/flsim/internal/race"
)

// Config is the shared, closed set of recognized optimizer options.
type Config struct {
	MinimumSpeed float64 // m/s
	MaximumSpeed float64 // m/s
	Precision    float64 // m/s; binary search only
	SpeedStep    float64 // m/s; linear search only
}

// Output is the result of a feasible optimization: the elapsed race
// time and the speed that achieved it.
type Output struct {
	RacetimeS float64
	SpeedMS   float64
}

// Oracle runs the simulator at a candidate speed, returning the
// elapsed racetime, race.ErrInfeasible (or a wrapping error) if the
// speed is not achievable, or any other error if the run itself is
// malformed (a weather query out of bounds, for instance).
type Oracle interface {
	CalculateRacetime(speed float64) (float64, error)
}

// fatal reports whether err is something other than the expected
// per-speed infeasibility signal: a weather.ErrBounds or similar error
// that the optimizer must not silently prune, since it indicates the
// run itself cannot be evaluated rather than that this speed fails.
func fatal(err error) bool {
	return err != nil && !errors.Is(err, race.ErrInfeasible)
}
