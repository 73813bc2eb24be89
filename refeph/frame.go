package refeph

import (
	"math"

	"github.com/caelundas/caelundas/kepler"
)

// obliquitySin/obliquityCos mirror the same J2000 mean-obliquity constants
// kepler.Orbit uses internally to rotate perifocal positions into the ICRF
// (equatorial) frame; kepler.Orbit doesn't expose the ecliptic-frame
// position, so eclipticPositionAU applies the inverse of that same
// rotation to recover it (the rotation matrix is orthogonal, so its
// inverse is its transpose, i.e. flipping the sign of the off-diagonal
// terms).
const (
	obliquitySin = 0.3977771559319137062
	obliquityCos = 0.9174820620691818140
)

// eclipticPositionAU returns a body's heliocentric position in the J2000
// ecliptic frame (AU), undoing kepler.Orbit.PositionAU's ecliptic-to-ICRF
// rotation.
func eclipticPositionAU(o *kepler.Orbit, tdbJD float64) [3]float64 {
	eq := o.PositionAU(tdbJD)
	return [3]float64{
		eq[0],
		obliquityCos*eq[1] + obliquitySin*eq[2],
		-obliquitySin*eq[1] + obliquityCos*eq[2],
	}
}

// vecSub and vecLen are the small vector helpers the heliocentric ->
// geocentric conversion and the phase-angle geometry need.
func vecSub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func vecLen(a [3]float64) float64 {
	return math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
}

// eclipticLonLat converts an ecliptic Cartesian vector to longitude
// (0-360) and latitude in degrees.
func eclipticLonLat(v [3]float64) (lonDeg, latDeg float64) {
	lonDeg = math.Atan2(v[1], v[0]) * 180.0 / math.Pi
	if lonDeg < 0 {
		lonDeg += 360.0
	}
	horiz := math.Hypot(v[0], v[1])
	latDeg = math.Atan2(v[2], horiz) * 180.0 / math.Pi
	return
}

// eclipticToEquatorial rotates an ecliptic Cartesian vector into the
// mean-equatorial (ICRF-ish) frame via the forward J2000 obliquity
// rotation, the same one kepler.Orbit applies to perifocal positions.
func eclipticToEquatorial(v [3]float64) [3]float64 {
	return [3]float64{
		v[0],
		obliquityCos*v[1] - obliquitySin*v[2],
		obliquitySin*v[1] + obliquityCos*v[2],
	}
}

// raDec converts an equatorial Cartesian vector to right ascension (hours,
// 0-24) and declination (degrees).
func raDec(v [3]float64) (raHours, decDeg float64) {
	ra := math.Atan2(v[1], v[0]) * 180.0 / math.Pi
	if ra < 0 {
		ra += 360.0
	}
	raHours = ra / 15.0
	decDeg = math.Atan2(v[2], math.Hypot(v[0], v[1])) * 180.0 / math.Pi
	return
}

// angularSepDeg is the spherical law of cosines: the angle between two
// (longitude, latitude) points on the sky.
func angularSepDeg(lonA, latA, lonB, latB float64) float64 {
	d2r := math.Pi / 180.0
	a1, a2 := latA*d2r, latB*d2r
	dl := (lonB - lonA) * d2r
	cosSep := math.Sin(a1)*math.Sin(a2) + math.Cos(a1)*math.Cos(a2)*math.Cos(dl)
	cosSep = math.Max(-1.0, math.Min(1.0, cosSep))
	return math.Acos(cosSep) * 180.0 / math.Pi
}

func diameterDeg(radiusKm, distanceKm float64) float64 {
	return 2.0 * math.Asin(radiusKm/distanceKm) * 180.0 / math.Pi
}

func normalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360.0)
	if deg < 0 {
		deg += 360.0
	}
	return deg
}
