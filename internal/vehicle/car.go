// Package vehicle aggregates the solar car's physical subsystems into
// a single immutable record.
package vehicle

import "github.com/kevinxc1/flsim/internal/physics"

// SolarCar is the flat, immutable aggregate of a solar car's physical
// subsystems. No dynamic dispatch is required: the set of subsystems is
// fixed by the vehicle class this simulator targets.
type SolarCar struct {
	Aerobody   physics.Aerobody
	Array      physics.Array
	Battery    physics.Battery
	Motor      physics.Motor
	Tire       physics.Tire
	MassKg     float64
	WheelRadiusM float64
}
