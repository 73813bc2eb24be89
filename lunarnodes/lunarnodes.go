// Package lunarnodes computes the mean ecliptic longitude of the Moon's
// ascending node, the point body.NorthNode tracks — a mathematical point on
// the Moon's mean orbital plane, not a physical body, so refeph only ever
// needs a longitude out of this package, never a latitude or distance.
package lunarnodes

import "math"

const j2000JD = 2451545.0

// MeanLunarNodes returns the mean North and South node ecliptic longitudes
// (degrees) for the given TDB Julian date, a standard mean-elements
// polynomial (Meeus ch. 47's Ω) rather than anything read off a binary
// ephemeris. The South Node is always exactly opposite the North Node;
// caelundas only tracks the North Node as a distinct body (body.NorthNode),
// so refeph's northNodeLonDeg discards the southLon return value, but both
// are computed and tested here since they share one formula.
func MeanLunarNodes(tdbJD float64) (northLon, southLon float64) {
	T := (tdbJD - j2000JD) / 36525.0

	omega := 125.04452 - 1934.136261*T + 0.0020708*T*T + T*T*T/450000.0

	northLon = math.Mod(omega, 360.0)
	if northLon < 0 {
		northLon += 360.0
	}
	southLon = math.Mod(northLon+180.0, 360.0)
	return
}
