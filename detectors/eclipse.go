package detectors

import (
	"fmt"
	"math"
	"time"

	"github.com/caelundas/caelundas/body"
	"github.com/caelundas/caelundas/ephemeris"
	"github.com/caelundas/caelundas/event"
	"github.com/caelundas/caelundas/geometry"
)

// Physical constants and the Danjon atmospheric enlargement factor, carried
// over unchanged from the teacher's shadow-cone eclipse geometry.
const (
	sunRadiusKm   = 695700.0
	earthRadiusKm = 6371.0
	moonRadiusKm  = 1737.4
	auKm          = 149597870.7
	danjonFactor  = 1.02
)

// Eclipse kinds, ordered by severity.
const (
	Penumbral = "Penumbral"
	Partial   = "Partial"
	Total     = "Total"
	Annular   = "Annular"
)

// sphericalKm converts an ecliptic (longitude, latitude, distance) triple
// into a Cartesian vector in km, the form geometry.IntersectLineSphere
// expects.
func sphericalKm(lonDeg, latDeg, distKm float64) [3]float64 {
	r := math.Pi / 180.0
	lon, lat := lonDeg*r, latDeg*r
	return [3]float64{
		distKm * math.Cos(lat) * math.Cos(lon),
		distKm * math.Cos(lat) * math.Sin(lon),
		distKm * math.Sin(lat),
	}
}

func vecLenKm(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func vecScale(v [3]float64, s float64) [3]float64 {
	return [3]float64{v[0] * s, v[1] * s, v[2] * s}
}

func vecUnit(v [3]float64) [3]float64 {
	l := vecLenKm(v)
	if l == 0 {
		return v
	}
	return vecScale(v, 1/l)
}

func vecDot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// shadowDepth places a sphere of radiusKm along axisUnit at distance
// alongKm from the origin (the local flat-cone approximation of a shadow
// cone's cross-section at one particular range), then uses
// geometry.IntersectLineSphere to test whether the line toward testVec
// passes through it at testVec's own distance. Returns the perpendicular
// distance (km) from the shadow axis to testVec at that range, plus
// whether testVec's own distance lies between the line's near/far
// intersections (i.e. testVec's body is literally inside the shadow
// sphere, not just aligned with its axis).
func shadowDepth(testVec, axisUnit [3]float64, alongKm, radiusKm float64) (perpDistKm float64, inside bool) {
	center := vecScale(axisUnit, alongKm)
	near, far := geometry.IntersectLineSphere(testVec, center, radiusKm)
	testDistKm := vecLenKm(testVec)
	inside = !math.IsNaN(near) && testDistKm >= near && testDistKm <= far

	tClosest := vecDot(center, vecUnit(testVec))
	centerLen := vecLenKm(center)
	d2 := centerLen*centerLen - tClosest*tClosest
	if d2 < 0 {
		d2 = 0
	}
	perpDistKm = math.Sqrt(d2)
	return
}

// LunarEclipse detects the Moon crossing Earth's umbral or penumbral
// shadow at full moon, via the teacher's geometry.IntersectLineSphere: the
// shadow is modeled as a sphere centered on the antisolar axis at the
// Moon's current range, sized by the teacher's linear shadow-cone radius
// formula enlarged by the Danjon factor.
func LunarEclipse(acc *ephemeris.Accessor, t time.Time) ([]event.Event, error) {
	sun, err := acc.Point(body.Sun, t)
	if err != nil {
		return nil, err
	}
	moon, err := acc.Point(body.Moon, t)
	if err != nil {
		return nil, err
	}

	moonDistKm := moon.DistanceAU * auKm
	sunDistKm := sun.DistanceAU * auKm
	moonVec := sphericalKm(moon.LongitudeDeg, moon.LatitudeDeg, moonDistKm)
	sunVec := sphericalKm(sun.LongitudeDeg, sun.LatitudeDeg, sunDistKm)
	antisolarUnit := vecScale(vecUnit(sunVec), -1)

	rUmbraKm := (earthRadiusKm - moonDistKm*(sunRadiusKm-earthRadiusKm)/sunDistKm) * danjonFactor
	rPenumbraKm := (earthRadiusKm + moonDistKm*(sunRadiusKm+earthRadiusKm)/sunDistKm) * danjonFactor

	umbralPerp, _ := shadowDepth(moonVec, antisolarUnit, moonDistKm, rUmbraKm)
	penumbralPerp, _ := shadowDepth(moonVec, antisolarUnit, moonDistKm, rPenumbraKm)

	umbralMag := (rUmbraKm + moonRadiusKm - umbralPerp) / (2 * moonRadiusKm)
	penumbralMag := (rPenumbraKm + moonRadiusKm - penumbralPerp) / (2 * moonRadiusKm)

	var kind string
	switch {
	case umbralMag >= 1.0:
		kind = Total
	case umbralMag > 0:
		kind = Partial
	case penumbralMag > 0:
		kind = Penumbral
	default:
		return nil, nil
	}

	return eclipseBoundaryEvent(acc, t, body.Moon, "Lunar Eclipse", kind, "🌘", umbralPerp)
}

// SolarEclipse detects the Moon's disk overlapping the Sun's disk at new
// moon, as seen geocentrically. This is the supplemented solar-eclipse
// feature (SPEC_FULL §5.1); the teacher repo only covered lunar eclipses.
// The Moon's shadow is modeled the same way as LunarEclipse's: a sphere
// along the Sun-Moon axis at the Moon's range, sized by the Sun's angular
// radius projected to a linear size at that range plus the Moon's own
// radius. Topocentric parallax (needed for annularity/totality at a
// specific observer location) is outside this geocentric model.
func SolarEclipse(acc *ephemeris.Accessor, t time.Time) ([]event.Event, error) {
	sun, err := acc.Point(body.Sun, t)
	if err != nil {
		return nil, err
	}
	moon, err := acc.Point(body.Moon, t)
	if err != nil {
		return nil, err
	}

	moonDistKm := moon.DistanceAU * auKm
	sunVec := sphericalKm(sun.LongitudeDeg, sun.LatitudeDeg, sun.DistanceAU*auKm)
	moonVec := sphericalKm(moon.LongitudeDeg, moon.LatitudeDeg, moonDistKm)
	sunUnit := vecUnit(sunVec)

	sunRadiusDeg := sun.DiameterDeg / 2
	moonRadiusDeg := moon.DiameterDeg / 2
	sunLinearRadiusAtMoonKm := moonDistKm * math.Tan(sunRadiusDeg*math.Pi/180.0)

	perp, _ := shadowDepth(moonVec, sunUnit, moonDistKm, sunLinearRadiusAtMoonKm+moonRadiusKm)
	sepDeg := math.Atan2(perp, moonDistKm) * 180.0 / math.Pi

	if sepDeg >= sunRadiusDeg+moonRadiusDeg {
		return nil, nil
	}

	var kind string
	switch {
	case moonRadiusDeg >= sunRadiusDeg && sepDeg <= moonRadiusDeg-sunRadiusDeg:
		kind = Total
	case moonRadiusDeg < sunRadiusDeg && sepDeg <= sunRadiusDeg-moonRadiusDeg:
		kind = Annular
	default:
		kind = Partial
	}

	return eclipseBoundaryEvent(acc, t, body.Sun, "Solar Eclipse", kind, "🌒", sepDeg)
}

// eclipseBoundaryEvent only fires once per eclipse, at the minute of
// closest approach: this requires prev/next comparison of the separation
// function, since the classification above (Penumbral/Partial/Total/
// Annular) holds across a span of several minutes.
func eclipseBoundaryEvent(acc *ephemeris.Accessor, t time.Time, b body.Body, family, kind, emoji string, sep float64) ([]event.Event, error) {
	solar := family == "Solar Eclipse"
	prevSep, okPrev := nearbySeparation(acc, t.Add(-minute), solar)
	nextSep, okNext := nearbySeparation(acc, t.Add(minute), solar)
	if !okPrev || !okNext {
		return nil, nil
	}
	if !(sep <= prevSep && sep <= nextSep) {
		return nil, nil
	}

	description := fmt.Sprintf("%s: shadow-axis separation %.1f km at maximum eclipse.", family, sep)
	if solar {
		description = fmt.Sprintf("%s: Sun-Moon separation %.4f° at maximum eclipse.", family, sep)
	}
	return []event.Event{{
		Start:       t,
		End:         t,
		Summary:     fmt.Sprintf("%s %s %s (%s)", emoji, family, kind, b),
		Description: description,
		Categories:  []string{"Astronomy", "Eclipse", family, kind},
	}}, nil
}

// nearbySeparation recomputes the same separation eclipseBoundaryEvent
// compares across T-1/T/T+1 (the shadow-axis perpendicular distance in km
// for a lunar eclipse, the Sun-Moon angular separation in degrees for a
// solar one), without re-deriving the eclipse kind.
func nearbySeparation(acc *ephemeris.Accessor, t time.Time, solar bool) (float64, bool) {
	sun, errS := acc.Point(body.Sun, t)
	moon, errM := acc.Point(body.Moon, t)
	if errS != nil || errM != nil {
		return 0, false
	}
	moonDistKm := moon.DistanceAU * auKm
	moonVec := sphericalKm(moon.LongitudeDeg, moon.LatitudeDeg, moonDistKm)
	sunVec := sphericalKm(sun.LongitudeDeg, sun.LatitudeDeg, sun.DistanceAU*auKm)

	if solar {
		perp, _ := shadowDepth(moonVec, vecUnit(sunVec), moonDistKm, 0)
		return math.Atan2(perp, moonDistKm) * 180.0 / math.Pi, true
	}
	antisolarUnit := vecScale(vecUnit(sunVec), -1)
	perp, _ := shadowDepth(moonVec, antisolarUnit, moonDistKm, 0)
	return perp, true
}
