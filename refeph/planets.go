package refeph

import (
	"math"

	"github.com/caelundas/caelundas/body"
)

// bodyKey maps the tracked Body enum to the string keys elements.go's
// tables are indexed by.
var bodyKey = map[body.Body]string{
	body.Mercury: "Mercury", body.Venus: "Venus", body.Mars: "Mars",
	body.Jupiter: "Jupiter", body.Saturn: "Saturn", body.Uranus: "Uranus",
	body.Neptune: "Neptune", body.Pluto: "Pluto",
	body.Chiron: "Chiron", body.Ceres: "Ceres", body.Pallas: "Pallas",
	body.Juno: "Juno", body.Vesta: "Vesta", body.Halley: "Halley",
	body.Lilith: "Lilith",
}

// physicalRadiusKm holds a mean physical radius for apparent-diameter
// computation. Halley's nucleus has no meaningful radius and gets a nominal
// few-km placeholder. The mean lunar apogee point (body.Apogee) has no
// entry: it is handled in nodes.go, which never populates DiameterDeg.
var physicalRadiusKm = map[body.Body]float64{
	body.Mercury: 2439.7, body.Venus: 6051.8, body.Mars: 3389.5,
	body.Jupiter: 69911.0, body.Saturn: 58232.0, body.Uranus: 25362.0,
	body.Neptune: 24622.0, body.Pluto: 1188.3,
	body.Chiron: 110.0, body.Ceres: 469.7, body.Pallas: 256.0,
	body.Juno: 127.0, body.Vesta: 262.7, body.Halley: 5.5,
	body.Lilith: 9.0,
}

var fixedBodies = map[body.Body]bool{
	body.Chiron: true, body.Ceres: true, body.Pallas: true,
	body.Juno: true, body.Vesta: true, body.Halley: true,
	body.Lilith: true,
}

// planetHelioEclAU returns a planet or minor body's heliocentric ecliptic
// position in AU at tdbJD, dispatching to the secular mean-element table
// for the eight major planets or the fixed osculating-element table for
// the asteroids and comet.
func planetHelioEclAU(b body.Body, tdbJD float64) [3]float64 {
	key := bodyKey[b]
	if fixedBodies[b] {
		orb := orbitFor(key)
		return eclipticPositionAU(&orb, tdbJD)
	}
	orb := planetOrbitAt(key, tdbJD)
	return eclipticPositionAU(&orb, tdbJD)
}

// planetPoint computes a planet or minor body's geocentric ecliptic
// longitude, latitude, distance, apparent diameter, and illuminated
// fraction (phase) at tdbJD.
func planetPoint(b body.Body, tdbJD float64) (lonDeg, latDeg, distanceAU, diamDeg, illum float64) {
	earth := planetOrbitAt("Earth", tdbJD)
	earthHelio := eclipticPositionAU(&earth, tdbJD)
	bodyHelio := planetHelioEclAU(b, tdbJD)

	geo := vecSub(bodyHelio, earthHelio)
	lonDeg, latDeg = eclipticLonLat(geo)
	distanceAU = vecLen(geo)

	radius, ok := physicalRadiusKm[b]
	if ok {
		diamDeg = diameterDeg(radius, distanceAU*auKm)
	}

	r := vecLen(bodyHelio)     // Sun-body distance
	delta := distanceAU        // Earth-body distance
	bigR := vecLen(earthHelio) // Sun-Earth distance
	cosPhase := (r*r + delta*delta - bigR*bigR) / (2 * r * delta)
	cosPhase = math.Max(-1.0, math.Min(1.0, cosPhase))
	phaseAngle := math.Acos(cosPhase)
	illum = (1.0 + math.Cos(phaseAngle)) / 2.0
	return
}
