// Package race implements the per-segment physics composition and the
// whole-race state machine: the simulator core the Optimizer uses as
// its feasibility oracle.
package race

import (
	"github.com/kevinxc1/flsim/internal/physics"
	"github.com/kevinxc1/flsim/internal/route"
	"github.com/kevinxc1/flsim/internal/vehicle"
	"github.com/kevinxc1/flsim/internal/weather"
)

// SegmentRunner composes the physics laws on a single segment at a
// constant target ground speed, returning the battery-side net power
// over that segment.
type SegmentRunner struct {
	Car vehicle.SolarCar
}

// resistiveForce returns the sum of rolling resistance, aerodynamic
// drag, and the gravity component along grade for one segment at
// speed.
func (r SegmentRunner) resistiveForce(segment route.Segment, w weather.DataPoint, speed float64) float64 {
	tireLoad := (r.Car.MassKg / 3) * segment.Gravity
	rollingResistanceTotal := 3 * r.Car.Tire.RollingResistance(tireLoad, speed, nil)

	carVelocity := physics.FromPolarComponents(speed, segment.Heading)
	apparent := r.Car.Aerobody.GetWind(w.Wind, carVelocity)
	drag := r.Car.Aerobody.AerodynamicDrag(apparent, w.AirDensity)

	gravityForce := r.Car.MassKg * segment.GravityTimesSineRoadInclineAngle

	return rollingResistanceTotal + drag + gravityForce
}

// powerOut returns the motor's total electrical power draw (W) to
// maintain speed over segment.
func (r SegmentRunner) powerOut(segment route.Segment, w weather.DataPoint, speed float64) float64 {
	force := r.resistiveForce(segment, w, speed)
	angularSpeed := speed / r.Car.WheelRadiusM
	torque := force * r.Car.WheelRadiusM
	return r.Car.Motor.PowerConsumed(angularSpeed, torque)
}

// powerIn returns the array's electrical power output (W) under w.
func (r SegmentRunner) powerIn(w weather.DataPoint) float64 {
	return r.Car.Array.PowerIn(w.Irradiance)
}

// PowerNet returns the rate of change of battery energy (W),
// charging-positive: a negative value means net discharge. Returns
// physics.ErrInfeasible if the battery cannot source or sink the
// instantaneous net power demand at this SOC.
func (r SegmentRunner) PowerNet(segment route.Segment, w weather.DataPoint, soc, speed float64) (float64, error) {
	powerDemand := r.powerOut(segment, w, speed) - r.powerIn(w)

	loss, err := r.Car.Battery.PowerLoss(powerDemand, soc)
	if err != nil {
		return 0, err
	}

	return -(powerDemand + loss), nil
}
