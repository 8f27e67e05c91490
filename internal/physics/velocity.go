// Package physics implements the solar car's component-level physics
// laws: apparent wind, aerodynamic drag, tire rolling resistance, motor
// power consumption, array output, and battery terminal behavior.
package physics

import "math"

// VelocityVector is a 2-D planar velocity stored as (north_south,
// east_west) components in m/s.
type VelocityVector struct {
	northSouth float64
	eastWest   float64
}

// FromCartesianComponents builds a VelocityVector from its north-south
// and east-west components.
func FromCartesianComponents(northSouth, eastWest float64) VelocityVector {
	return VelocityVector{northSouth: northSouth, eastWest: eastWest}
}

// FromPolarComponents builds a VelocityVector from a speed and heading,
// where heading 0 is due north and π/2 is due east.
func FromPolarComponents(speed, heading float64) VelocityVector {
	return VelocityVector{
		northSouth: speed * math.Cos(heading),
		eastWest:   speed * math.Sin(heading),
	}
}

// NorthSouth returns the north-south component in m/s.
func (v VelocityVector) NorthSouth() float64 { return v.northSouth }

// EastWest returns the east-west component in m/s.
func (v VelocityVector) EastWest() float64 { return v.eastWest }

// Magnitude returns the Euclidean norm of the velocity.
func (v VelocityVector) Magnitude() float64 {
	return math.Hypot(v.northSouth, v.eastWest)
}

// Heading returns atan2(eastWest, northSouth) normalized to [0, 2π).
func (v VelocityVector) Heading() float64 {
	angle := math.Atan2(v.eastWest, v.northSouth)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// AngleBetween returns the signed angle in [-π, π] from v to other.
// Returns 0 if either vector has zero magnitude.
func (v VelocityVector) AngleBetween(other VelocityVector) float64 {
	if v.Magnitude() == 0 || other.Magnitude() == 0 {
		return 0
	}
	return math.Atan2(
		v.eastWest*other.northSouth-v.northSouth*other.eastWest,
		v.northSouth*other.northSouth+v.eastWest*other.eastWest,
	)
}

// average returns the componentwise mean of two velocity vectors.
func average(a, b VelocityVector) VelocityVector {
	return VelocityVector{
		northSouth: (a.northSouth + b.northSouth) / 2,
		eastWest:   (a.eastWest + b.eastWest) / 2,
	}
}

// ApparentWindVector is the polar apparent wind seen by the car: speed
// in m/s and yaw in radians, positive yaw to starboard.
type ApparentWindVector struct {
	Speed float64
	Yaw   float64
}
