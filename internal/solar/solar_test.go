package solar

import (
	"math"
	"testing"

	"github.com/kevinxc1/flsim/internal/route"
)

func TestAtReturnsAnglesInRange(t *testing.T) {
	coord := route.GeographicalCoordinate{LatitudeDeg: 39.7392, LongitudeDeg: -104.9903}
	// 2026-06-09 12:00:00 UTC, about 05:00 local mean solar time at this
	// longitude.
	pos := At(coord, 1781006400)

	if pos.AzimuthRad < 0 || pos.AzimuthRad >= 2*math.Pi {
		t.Errorf("AzimuthRad = %v, want [0, 2*pi)", pos.AzimuthRad)
	}
	if pos.AltitudeRad < -math.Pi/2 || pos.AltitudeRad > math.Pi/2 {
		t.Errorf("AltitudeRad = %v, want [-pi/2, pi/2]", pos.AltitudeRad)
	}
}

func TestAtIsDeterministic(t *testing.T) {
	coord := route.GeographicalCoordinate{LatitudeDeg: 10, LongitudeDeg: 20}
	a := At(coord, 1700000000)
	b := At(coord, 1700000000)
	if a != b {
		t.Errorf("At is not deterministic: %v vs %v", a, b)
	}
}
