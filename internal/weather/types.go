package weather

import (
	"errors"

	"github.com/kevinxc1/flsim/internal/physics"
)

// ErrBounds indicates a weather query at a time preceding the earliest
// loaded spline's start time. Surfaced to the caller; fatal for the
// enclosing run.
var ErrBounds = errors.New("weather: query time precedes earliest station data")

// reciprocalSpeedOfSound is the constant the original computes from its
// temperature model; the core never consumes it, but it is carried
// through for parity with downstream reporting.
const reciprocalSpeedOfSound = 0.0029154519

// DataPoint is a weather sample: wind, irradiance, and atmospheric
// state at a station and instant.
type DataPoint struct {
	Wind                  physics.VelocityVector
	Irradiance            float64 // GHI, W/m²
	AirTemperature        float64 // °C
	SurfacePressure       float64
	AirDensity            float64 // kg/m³
	ReciprocalSpeedOfSound float64
}

// average returns the componentwise mean of two data points. Wind
// averages via its Cartesian components.
func average(a, b DataPoint) DataPoint {
	return DataPoint{
		Wind: physics.FromCartesianComponents(
			(a.Wind.NorthSouth()+b.Wind.NorthSouth())/2,
			(a.Wind.EastWest()+b.Wind.EastWest())/2,
		),
		Irradiance:             (a.Irradiance + b.Irradiance) / 2,
		AirTemperature:         (a.AirTemperature + b.AirTemperature) / 2,
		SurfacePressure:        (a.SurfacePressure + b.SurfacePressure) / 2,
		AirDensity:             (a.AirDensity + b.AirDensity) / 2,
		ReciprocalSpeedOfSound: (a.ReciprocalSpeedOfSound + b.ReciprocalSpeedOfSound) / 2,
	}
}
