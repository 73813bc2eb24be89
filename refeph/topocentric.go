package refeph

import (
	"math"

	"github.com/caelundas/caelundas/coord"
)

// standardTempC and standardPressureMbar feed coord.Refract a fixed
// standard atmosphere; the Provider interface has no slot for site
// weather, so every observer gets the same refraction model.
const (
	standardTempC        = 10.0
	standardPressureMbar = 1010.0
)

// topocentricAltAz converts a geocentric ecliptic (longitude, latitude)
// direction to apparent topocentric azimuth/elevation for an
// observer at (latDeg, lonDeg), reusing coord.GAST for sidereal time and
// coord.Refract for the atmospheric correction. It skips the full
// precession/nutation/polar-motion chain a true-state-vector transform would
// apply: at the arcminute accuracy this reference backend already works at,
// the extra correction terms are smaller than the position error already
// present in the mean elements, so a direct mean-equinox-of-date transform
// is used instead.
func topocentricAltAz(eclLonDeg, eclLatDeg float64, jdUT1, observerLatDeg, observerLonDeg float64) (azDeg, elevDeg float64) {
	r := math.Pi / 180.0
	lon, lat := eclLonDeg*r, eclLatDeg*r
	v := [3]float64{
		math.Cos(lat) * math.Cos(lon),
		math.Cos(lat) * math.Sin(lon),
		math.Sin(lat),
	}
	eq := eclipticToEquatorial(v)
	raHours, decDeg := raDec(eq)

	gastDeg := coord.GAST(jdUT1)
	haDeg := normalizeDeg(gastDeg + observerLonDeg - raHours*15.0)

	ha := haDeg * r
	dec := decDeg * r
	obsLat := observerLatDeg * r

	sinAlt := math.Sin(dec)*math.Sin(obsLat) + math.Cos(dec)*math.Cos(obsLat)*math.Cos(ha)
	sinAlt = math.Max(-1.0, math.Min(1.0, sinAlt))
	altRad := math.Asin(sinAlt)

	cosAz := (math.Sin(dec) - math.Sin(altRad)*math.Sin(obsLat)) / (math.Cos(altRad) * math.Cos(obsLat))
	cosAz = math.Max(-1.0, math.Min(1.0, cosAz))
	azRad := math.Acos(cosAz)
	azDeg = azRad * 180.0 / math.Pi
	if math.Sin(ha) > 0 {
		azDeg = 360.0 - azDeg
	}

	trueAltDeg := altRad * 180.0 / math.Pi
	elevDeg = coord.Refract(trueAltDeg, standardTempC, standardPressureMbar)
	return
}
