package race

import (
	"math"
	"testing"

	"github.com/kevinxc1/flsim/internal/physics"
	"github.com/kevinxc1/flsim/internal/route"
	"github.com/kevinxc1/flsim/internal/vehicle"
	"github.com/kevinxc1/flsim/internal/weather"
)

func s1Car() vehicle.SolarCar {
	return vehicle.SolarCar{
		Aerobody: physics.Aerobody{DragCoefficient: 0.00541143, FrontalArea: 3.42548},
		Array:    physics.Array{AreaM2: 4.63645, EfficiencyPercent: 22.3886},
		Battery: physics.Battery{
			EnergyCapacityWh: 6105.03,
			PackResistance:   0.660223,
			MinVoltage:       71.3779,
			MaxVoltage:       148.606,
		},
		Motor: physics.Motor{HysteresisLoss: 2.86961, EddyCurrentLossCoefficient: 0.00171711},
		Tire: physics.Tire{
			Alpha: -8.77003, Beta: 7.68916,
			A: 5.65872, B: -7.02049e-6, C: 0.175593,
			TirePressureAtSTC: 181.903,
		},
		MassKg:       159.339,
		WheelRadiusM: 0.374048,
	}
}

func s1Segment() route.Segment {
	return route.Segment{
		Heading:                          5.18201,
		Gravity:                          9.80449,
		GravityTimesSineRoadInclineAngle: -3.84563,
	}
}

func s1Weather() weather.DataPoint {
	return weather.DataPoint{
		Wind:       physics.FromPolarComponents(13.8307, 3.90525),
		Irradiance: 215.042,
		AirDensity: 1.20163,
	}
}

// TestResistiveForceSanity reproduces the reference golden scenario S1.
func TestResistiveForceSanity(t *testing.T) {
	r := SegmentRunner{Car: s1Car()}
	got := r.resistiveForce(s1Segment(), s1Weather(), 19.459)
	want := 29945.2
	if math.Abs(got-want) > math.Abs(want)*1e-3 {
		t.Errorf("resistiveForce = %v, want ~%v", got, want)
	}
}

func TestPowerNetPropagatesInfeasibility(t *testing.T) {
	car := s1Car()
	car.Battery.PackResistance = 1
	car.Battery.MinVoltage = 100
	car.Battery.MaxVoltage = 100
	r := SegmentRunner{Car: car}

	// Force an enormous power demand so the battery cannot charge it.
	segment := route.Segment{Heading: 0, Gravity: 0, GravityTimesSineRoadInclineAngle: 0}
	w := weather.DataPoint{Irradiance: 1e9, AirDensity: 0}
	if _, err := r.PowerNet(segment, w, 1, 0.001); err != physics.ErrInfeasible {
		t.Errorf("PowerNet = _, %v, want physics.ErrInfeasible", err)
	}
}
