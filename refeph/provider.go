package refeph

import (
	"time"

	"github.com/caelundas/caelundas/body"
	"github.com/caelundas/caelundas/ephemeris"
	"github.com/caelundas/caelundas/timescale"
)

// Provider is a reference ephemeris.Provider backed entirely by the
// low-precision formulas and kepler.Orbit propagation in this package. It
// never reads a file or calls out to a network ephemeris service; every
// value is computed fresh, minute by minute, from the requested range.
type Provider struct{}

// Ephemeris implements ephemeris.Provider. It never returns a gap: every
// body in bodies gets a Point for every whole minute in [start, end].
func (Provider) Ephemeris(loc ephemeris.Location, start, end time.Time, bodies []body.Body) (map[body.Body]map[time.Time]ephemeris.Point, error) {
	out := make(map[body.Body]map[time.Time]ephemeris.Point, len(bodies))
	for _, b := range bodies {
		out[b] = make(map[time.Time]ephemeris.Point)
	}

	for t := start.Truncate(time.Minute); !t.After(end); t = t.Add(time.Minute) {
		jdUTC := timescale.TimeToJDUTC(t)
		jdTT := timescale.UTCToTT(jdUTC)
		jdTDB := jdTT + timescale.TDBMinusTT(jdTT)/timescale.SecPerDay
		jdUT1 := timescale.TTToUT1(jdTT)

		for _, b := range bodies {
			p := pointFor(b, jdTDB)
			az, el := topocentricAltAz(p.LongitudeDeg, p.LatitudeDeg, jdUT1, loc.LatitudeDeg, loc.LongitudeDeg)
			p.AzimuthDeg = az
			p.ElevationDeg = el
			out[b][t] = p
		}
	}
	return out, nil
}

// pointFor dispatches to the body-family-specific position formula and
// fills in whatever fields are meaningful for that body.
func pointFor(b body.Body, tdbJD float64) ephemeris.Point {
	switch b {
	case body.Sun:
		lon, lat, dist, diam := sunPoint(tdbJD)
		return ephemeris.Point{LongitudeDeg: lon, LatitudeDeg: lat, DistanceAU: dist, DiameterDeg: diam, IlluminationFrac: 1.0}
	case body.Moon:
		lon, lat, dist, diam, illum := moonPoint(tdbJD)
		return ephemeris.Point{LongitudeDeg: lon, LatitudeDeg: lat, DistanceAU: dist, DiameterDeg: diam, IlluminationFrac: illum}
	case body.NorthNode:
		return ephemeris.Point{LongitudeDeg: northNodeLonDeg(tdbJD)}
	case body.Apogee:
		return ephemeris.Point{LongitudeDeg: meanLunarApogeeDeg(tdbJD)}
	default:
		lon, lat, dist, diam, illum := planetPoint(b, tdbJD)
		return ephemeris.Point{LongitudeDeg: lon, LatitudeDeg: lat, DistanceAU: dist, DiameterDeg: diam, IlluminationFrac: illum}
	}
}
