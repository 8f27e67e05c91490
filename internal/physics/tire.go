package physics

import "math"

// Tire implements the SAE-J2452-style rolling-resistance law.
type Tire struct {
	Alpha              float64
	Beta               float64
	A                  float64
	B                  float64
	C                  float64
	TirePressureAtSTC  float64 // kPa
}

// RollingResistance returns the rolling-resistance force (N) for a
// single tire given its vertical load (N) and the vehicle ground speed
// (m/s). If pressureKPa is nil, the STC pressure is used.
func (t Tire) RollingResistance(tireLoad, vehicleSpeed float64, pressureKPa *float64) float64 {
	pressure := t.TirePressureAtSTC
	if pressureKPa != nil {
		pressure = *pressureKPa
	}

	speedKmh := vehicleSpeed * 3.6

	pressureTerm := math.Pow(pressure, t.Alpha)
	loadTerm := math.Pow(tireLoad, t.Beta)
	speedTerm := t.A + t.B*speedKmh + t.C*speedKmh*speedKmh

	return pressureTerm * loadTerm * speedTerm
}
