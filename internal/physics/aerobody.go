package physics

import "math"

// Aerobody models apparent-wind computation and aerodynamic drag for a
// fixed drag coefficient and frontal area.
type Aerobody struct {
	DragCoefficient float64
	FrontalArea     float64
}

// GetWind computes the apparent wind seen by the car given the
// meteorological ("from") reported wind and the car's ground velocity.
//
// The reported wind is a "from" vector; it is negated to obtain the
// true-wind ("to") vector before the car's velocity is subtracted.
func (a Aerobody) GetWind(reportedWind, carVelocity VelocityVector) ApparentWindVector {
	trueWind := FromCartesianComponents(-reportedWind.NorthSouth(), -reportedWind.EastWest())

	apparentWindVelocity := FromCartesianComponents(
		trueWind.NorthSouth()-carVelocity.NorthSouth(),
		trueWind.EastWest()-carVelocity.EastWest(),
	)

	apparentWindDirection := FromCartesianComponents(
		-apparentWindVelocity.NorthSouth(),
		-apparentWindVelocity.EastWest(),
	)

	return ApparentWindVector{
		Speed: apparentWindVelocity.Magnitude(),
		Yaw:   carVelocity.AngleBetween(apparentWindDirection),
	}
}

// AerodynamicDrag returns the drag force (N) from the apparent wind and
// local air density.
//
// This mirrors the reference model exactly: the wind component opposing
// the car is attenuated by cos²(yaw) rather than decomposed vectorially.
func (a Aerobody) AerodynamicDrag(apparentWind ApparentWindVector, airDensity float64) float64 {
	windComponent := apparentWind.Speed * math.Cos(apparentWind.Yaw)
	return 0.5 * airDensity * windComponent * windComponent * a.DragCoefficient * a.FrontalArea
}
