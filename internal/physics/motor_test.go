package physics

import "testing"

func TestMotorPowerConsumedModuleVariant(t *testing.T) {
	m := Motor{HysteresisLoss: 2.86961, EddyCurrentLossCoefficient: 0.00171711}
	angularSpeed, torque := 52.0, 10.0
	got := m.PowerConsumed(angularSpeed, torque)
	want := angularSpeed*torque + m.HysteresisLoss + m.EddyCurrentLossCoefficient*angularSpeed
	if got != want {
		t.Errorf("PowerConsumed = %v, want %v (eddy term must be additive, not folded into mechanical power)", got, want)
	}
}

func TestMotorPowerConsumedNegativeTorque(t *testing.T) {
	m := Motor{HysteresisLoss: 1, EddyCurrentLossCoefficient: 0.1}
	got := m.PowerConsumed(10, -5)
	want := 10*-5.0 + 1 + 0.1*10
	if got != want {
		t.Errorf("PowerConsumed with negative torque = %v, want %v", got, want)
	}
}
