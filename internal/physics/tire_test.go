package physics

import (
	"math"
	"testing"
)

func TestRollingResistanceDefaultPressure(t *testing.T) {
	tire := Tire{Alpha: -8.77003, Beta: 7.68916, A: 5.65872, B: -7.02049e-6, C: 0.175593, TirePressureAtSTC: 181.903}
	tireLoad := (159.339 / 3) * 9.80449
	got := tire.RollingResistance(tireLoad, 19.459, nil)
	speedKmh := 19.459 * 3.6
	want := math.Pow(181.903, tire.Alpha) * math.Pow(tireLoad, tire.Beta) * (tire.A + tire.B*speedKmh + tire.C*speedKmh*speedKmh)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("RollingResistance = %v, want %v", got, want)
	}
}

func TestRollingResistancePressureOverride(t *testing.T) {
	tire := Tire{Alpha: 1, Beta: 1, A: 1, B: 0, C: 0, TirePressureAtSTC: 200}
	override := 150.0
	got := tire.RollingResistance(10, 0, &override)
	want := 150.0 * 10
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("RollingResistance with override = %v, want %v", got, want)
	}
}
