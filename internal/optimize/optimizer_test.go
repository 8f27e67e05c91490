package optimize

import (
	"errors"
	"math"
	"testing"

	"github.com/kevinxc1/flsim/internal/race"
)

// thresholdOracle is feasible (returns distance/speed as the racetime)
// for every speed <= maxFeasibleSpeed, and infeasible above it: a
// monotone-non-increasing feasibility predicate in speed, matching the
// assumption both optimizer strategies rely on. It reports infeasible
// speeds the same way race.Runner does, via race.ErrInfeasible.
type thresholdOracle struct {
	maxFeasibleSpeed float64
	distance         float64
}

func (o thresholdOracle) CalculateRacetime(speed float64) (float64, error) {
	if speed > o.maxFeasibleSpeed {
		return 0, race.ErrInfeasible
	}
	return o.distance / speed, nil
}

// fatalOracle always reports a non-infeasibility error, standing in for
// a malformed run (e.g. a weather query out of bounds) that must abort
// the search rather than be pruned as just another infeasible speed.
type fatalOracle struct {
	err error
}

func (o fatalOracle) CalculateRacetime(speed float64) (float64, error) {
	return 0, o.err
}

func TestLinearSearchFindsHighestFeasibleOnGrid(t *testing.T) {
	oracle := thresholdOracle{maxFeasibleSpeed: 17.3, distance: 1000}
	cfg := Config{MinimumSpeed: 5, MaximumSpeed: 30, SpeedStep: 0.5}
	out, ok, err := LinearSearch{Config: cfg, Oracle: oracle}.OptimizeRace()
	if err != nil {
		t.Fatalf("OptimizeRace: %v", err)
	}
	if !ok {
		t.Fatal("LinearSearch reported infeasible")
	}
	if out.SpeedMS != 17 {
		t.Errorf("SpeedMS = %v, want 17 (highest grid point <= 17.3)", out.SpeedMS)
	}
}

func TestLinearSearchNoneFeasible(t *testing.T) {
	oracle := thresholdOracle{maxFeasibleSpeed: 1, distance: 1000}
	cfg := Config{MinimumSpeed: 5, MaximumSpeed: 30, SpeedStep: 0.5}
	_, ok, err := LinearSearch{Config: cfg, Oracle: oracle}.OptimizeRace()
	if err != nil {
		t.Fatalf("OptimizeRace: %v", err)
	}
	if ok {
		t.Error("expected no feasible speed")
	}
}

func TestBinarySearchConvergesNearThreshold(t *testing.T) {
	oracle := thresholdOracle{maxFeasibleSpeed: 17.3, distance: 1000}
	cfg := Config{MinimumSpeed: 5, MaximumSpeed: 30, Precision: 0.01}
	out, ok, err := BinarySearch{Config: cfg, Oracle: oracle}.OptimizeRace()
	if err != nil {
		t.Fatalf("OptimizeRace: %v", err)
	}
	if !ok {
		t.Fatal("BinarySearch reported infeasible")
	}
	if math.Abs(out.SpeedMS-17.3) > 0.02 {
		t.Errorf("SpeedMS = %v, want within 0.02 of 17.3", out.SpeedMS)
	}
}

func TestOptimizerAgreement(t *testing.T) {
	oracle := thresholdOracle{maxFeasibleSpeed: 22.0, distance: 1000}
	binCfg := Config{MinimumSpeed: 5, MaximumSpeed: 30, Precision: 0.01}
	linCfg := Config{MinimumSpeed: 5, MaximumSpeed: 30, SpeedStep: 0.05}

	binOut, binOK, binErr := BinarySearch{Config: binCfg, Oracle: oracle}.OptimizeRace()
	linOut, linOK, linErr := LinearSearch{Config: linCfg, Oracle: oracle}.OptimizeRace()
	if binErr != nil || linErr != nil {
		t.Fatalf("OptimizeRace errors: binary=%v linear=%v", binErr, linErr)
	}
	if !binOK || !linOK {
		t.Fatal("expected both optimizers to report feasible")
	}
	if math.Abs(binOut.SpeedMS-linOut.SpeedMS) > linCfg.SpeedStep+binCfg.Precision {
		t.Errorf("binary=%v linear=%v disagree by more than step+precision", binOut.SpeedMS, linOut.SpeedMS)
	}
}

func TestLinearSearchPropagatesFatalError(t *testing.T) {
	wantErr := errors.New("optimize: test weather bounds error")
	oracle := fatalOracle{err: wantErr}
	cfg := Config{MinimumSpeed: 5, MaximumSpeed: 30, SpeedStep: 0.5}

	_, ok, err := LinearSearch{Config: cfg, Oracle: oracle}.OptimizeRace()
	if ok {
		t.Error("expected ok=false on fatal error")
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("OptimizeRace error = %v, want wrapping %v", err, wantErr)
	}
}

func TestBinarySearchPropagatesFatalError(t *testing.T) {
	wantErr := errors.New("optimize: test weather bounds error")
	oracle := fatalOracle{err: wantErr}
	cfg := Config{MinimumSpeed: 5, MaximumSpeed: 30, Precision: 0.01}

	_, ok, err := BinarySearch{Config: cfg, Oracle: oracle}.OptimizeRace()
	if ok {
		t.Error("expected ok=false on fatal error")
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("OptimizeRace error = %v, want wrapping %v", err, wantErr)
	}
}
