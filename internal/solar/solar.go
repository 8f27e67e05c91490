// Package solar computes the sun's apparent position for reporting
// purposes only. It is never consulted by the feasibility predicate in
// internal/race; the original spec's irradiance inputs come from
// measured weather data, not a derived sun-angle model.
package solar

import (
	"math"
	"time"

	"github.com/kevinxc1/flsim/internal/route"
	meeuscoord "github.com/soniakeys/meeus/coord"
	"github.com/soniakeys/meeus/globe"
	"github.com/soniakeys/meeus/julian"
	meeussidereal "github.com/soniakeys/meeus/sidereal"
	meeussolar "github.com/soniakeys/meeus/solar"
	"github.com/soniakeys/unit"
)

// Position is the sun's horizontal-coordinate position at an instant
// and location: azimuth measured from north, and altitude above the
// horizon, both in radians.
type Position struct {
	AzimuthRad  float64
	AltitudeRad float64
}

// At computes the sun's apparent azimuth and altitude at the given
// geographical coordinate and absolute-seconds timestamp. The sun's
// apparent equatorial position (Meeus ch. 25, nutation and aberration
// applied) comes from meeus/solar; Greenwich apparent sidereal time
// (ch. 12) comes from meeus/sidereal; both feed meeus/coord's
// equatorial-to-horizontal transform (ch. 13).
func At(coordinate route.GeographicalCoordinate, unixSeconds float64) Position {
	t := time.Unix(int64(unixSeconds), 0).UTC()
	jd := julian.TimeToJD(t)

	ra, dec := meeussolar.ApparentEquatorial(jd)
	eq := meeuscoord.Equatorial{RA: ra, Dec: dec}

	// globe.Coord longitude is positive west; route.GeographicalCoordinate
	// is positive east.
	site := globe.Coord{
		Lat: unit.AngleFromDeg(coordinate.LatitudeDeg),
		Lon: unit.AngleFromDeg(-coordinate.LongitudeDeg),
	}

	st := meeussidereal.Apparent(jd)
	var hz meeuscoord.Horizontal
	hz.EqToHz(&eq, &site, st)

	// meeus/coord's azimuth is measured westward from south (Meeus ch.
	// 13 convention); Position documents azimuth from north, so rotate
	// it into that convention.
	azimuthFromNorth := math.Mod(hz.Az.Rad()+math.Pi+2*math.Pi, 2*math.Pi)

	return Position{AzimuthRad: azimuthFromNorth, AltitudeRad: hz.Alt.Rad()}
}
