package refeph

import "github.com/caelundas/caelundas/lunarnodes"

// meanLunarApogeeDeg returns the mean ecliptic longitude of the lunar
// apogee ("Black Moon Lilith" in the astrological convention body.Apogee
// tracks), the point opposite perigee in the Moon's mean elliptical orbit.
// Written in the same independently-derived style lunarnodes.go notes for
// itself: a standard mean-elements polynomial (Meeus ch. 45's Π), not
// ported from any external ephemeris library.
func meanLunarApogeeDeg(tdbJD float64) float64 {
	T := (tdbJD - j2000JD) / 36525.0
	perigee := 83.3532465 + 4069.0137287*T - 0.0103200*T*T -
		T*T*T/80053.0 + T*T*T*T/18999000.0
	return normalizeDeg(perigee + 180.0)
}

// northNodeLonDeg returns body.NorthNode's mean ecliptic longitude.
func northNodeLonDeg(tdbJD float64) float64 {
	north, _ := lunarnodes.MeanLunarNodes(tdbJD)
	return north
}

// These two points have no physical extent, distance, or illumination:
// detectors only ever ask for their Longitude (sign ingress, aspects, and
// pattern composition), so Point.LatitudeDeg etc. are left
// zero for them; that's a correct, not a missing, value.
