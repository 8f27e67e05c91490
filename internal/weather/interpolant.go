package weather

import (
	"fmt"
	"sort"

	"github.com/kevinxc1/flsim/internal/physics"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// grid is a regular (time × station) sample lattice for one loaded
// weather file, backed by a bilinear interpolant over six fields.
type grid struct {
	startTime float64
	times     []float64 // ascending, shared across all stations
	stations  []float64 // ascending weather-station coordinates

	ghi, windNS, windEW, airTemp, pressure, airDensity *mat.Dense
}

// valueAt bilinearly interpolates field at (time, station), clamping
// both axes to the grid's own sampled range.
func (g *grid) valueAt(field *mat.Dense, time, station float64) float64 {
	ti, tf := bracket(g.times, time)
	si, sf := bracket(g.stations, station)

	// A single-sample axis has no upper neighbour; bracket returns a zero
	// fraction for it, so the lower sample stands in for the upper one.
	ti1, si1 := ti+1, si+1
	if len(g.times) == 1 {
		ti1 = ti
	}
	if len(g.stations) == 1 {
		si1 = si
	}

	v00 := field.At(ti, si)
	v01 := field.At(ti, si1)
	v10 := field.At(ti1, si)
	v11 := field.At(ti1, si1)

	v0 := v00*(1-sf) + v01*sf
	v1 := v10*(1-sf) + v11*sf
	return v0*(1-tf) + v1*tf
}

// bracket returns the lower index i such that values[i] <= x <=
// values[i+1] (clamped to the array's bounds) and the fractional
// position f in [0, 1] between values[i] and values[i+1].
func bracket(values []float64, x float64) (int, float64) {
	if len(values) == 1 {
		return 0, 0
	}
	lo, hi := floats.Min(values), floats.Max(values)
	if x <= lo {
		return 0, 0
	}
	if x >= hi {
		return len(values) - 2, 1
	}
	i := sort.SearchFloat64s(values, x)
	if i == 0 {
		return 0, 0
	}
	i-- // values[i] <= x
	span := values[i+1] - values[i]
	if span == 0 {
		return i, 0
	}
	return i, (x - values[i]) / span
}

func (g *grid) dataPointAt(time, station float64) DataPoint {
	return DataPoint{
		Wind: physics.FromCartesianComponents(
			g.valueAt(g.windNS, time, station),
			g.valueAt(g.windEW, time, station),
		),
		Irradiance:             g.valueAt(g.ghi, time, station),
		AirTemperature:         g.valueAt(g.airTemp, time, station),
		SurfacePressure:        g.valueAt(g.pressure, time, station),
		AirDensity:             g.valueAt(g.airDensity, time, station),
		ReciprocalSpeedOfSound: reciprocalSpeedOfSound,
	}
}

// Weather is an immutable, shared, read-only collection of weather
// grids queried by station and absolute time. Concurrent reads are
// safe; there is no interior mutability after construction.
type Weather struct {
	grids []*grid // sorted by startTime ascending
}

// GetWeatherAt returns the interpolated weather state at (station,
// time). Returns ErrBounds if time precedes the earliest grid's start
// time.
func (w *Weather) GetWeatherAt(station, time float64) (DataPoint, error) {
	idx := sort.Search(len(w.grids), func(i int) bool {
		return w.grids[i].startTime > time
	})
	if idx == 0 {
		return DataPoint{}, ErrBounds
	}
	g := w.grids[idx-1]
	return g.dataPointAt(time, station), nil
}

// GetWeatherDuring returns the pairwise average of GetWeatherAt at
// tStart and tEnd.
func (w *Weather) GetWeatherDuring(station, tStart, tEnd float64) (DataPoint, error) {
	start, err := w.GetWeatherAt(station, tStart)
	if err != nil {
		return DataPoint{}, err
	}
	end, err := w.GetWeatherAt(station, tEnd)
	if err != nil {
		return DataPoint{}, err
	}
	return average(start, end), nil
}

func validateRegularGrid(stationCount, rowCount int) error {
	if stationCount == 0 {
		return fmt.Errorf("weather: no stations present")
	}
	if rowCount%stationCount != 0 {
		return fmt.Errorf("weather: %d rows does not divide evenly across %d stations; grid is not regular", rowCount, stationCount)
	}
	return nil
}
