// Package ephemeris defines the typed accessor the detection engine reads
// ephemeris values through: a (body, timestamp) -> scalar lookup, backed by
// a margin-extended cache of whatever a Provider returns.
//
// The Provider itself is the external collaborator described in spec §6 —
// this package never computes a position; it only shapes and caches
// whatever a concrete Provider produces. See the refeph package for one
// concrete (reference/demo) Provider implementation.
package ephemeris

import (
	"fmt"
	"time"

	"github.com/caelundas/caelundas/body"
)

// Margin is the window the accessor extends both ends of a requested range
// by, so that any detector evaluating a three-point or ±30-minute window at
// the range boundary still has data (component B, spec §4.B).
const Margin = 30 * time.Minute

// Kind identifies which scalar field of a Point is being requested.
type Kind int

const (
	Longitude Kind = iota
	Latitude
	Azimuth
	Elevation
	Diameter
	Distance
	Illumination
)

// Point holds every ephemeris scalar known for one (body, timestamp) pair.
// Not every field is meaningful for every body (e.g. NorthNode has no
// diameter or illumination); callers ask only for the fields their detector
// needs via Accessor.Get.
type Point struct {
	LongitudeDeg     float64 // ecliptic longitude, 0-360, wraps
	LatitudeDeg      float64 // ecliptic latitude
	AzimuthDeg       float64 // topocentric azimuth, 0-360
	ElevationDeg     float64 // topocentric elevation (altitude)
	DiameterDeg      float64 // apparent angular diameter
	DistanceAU       float64 // geocentric distance
	IlluminationFrac float64 // 0-1
}

// Get returns the requested scalar from the point.
func (p Point) Get(k Kind) float64 {
	switch k {
	case Longitude:
		return p.LongitudeDeg
	case Latitude:
		return p.LatitudeDeg
	case Azimuth:
		return p.AzimuthDeg
	case Elevation:
		return p.ElevationDeg
	case Diameter:
		return p.DiameterDeg
	case Distance:
		return p.DistanceAU
	case Illumination:
		return p.IlluminationFrac
	default:
		panic(fmt.Sprintf("ephemeris: unknown kind %d", k))
	}
}

// Location is a ground observer position plus the IANA timezone used for
// calendar output.
type Location struct {
	LatitudeDeg  float64
	LongitudeDeg float64
	TimeZone     string // IANA zone, e.g. "America/New_York"
}

// Provider is the external ephemeris collaborator (spec §6). Given a
// location and a [start, end] UTC range already extended by Margin, it must
// return, for every requested body, a value for every minute in the range.
// Missing minutes or fields are a fatal error (contract in spec §6).
type Provider interface {
	Ephemeris(loc Location, start, end time.Time, bodies []body.Body) (map[body.Body]map[time.Time]Point, error)
}

// GapError is returned when a Provider's response is missing a minute or a
// body the caller required. It is always fatal to the minute's detection
// for the affected body/pair (spec §7: "Ephemeris gap").
type GapError struct {
	Body body.Body
	At   time.Time
}

func (e *GapError) Error() string {
	return fmt.Sprintf("ephemeris: missing value for %s at %s", e.Body, e.At.Format(time.RFC3339))
}

// Accessor is the O(1)-lookup typed cache described in spec §4.B: a
// per-body hash from a minute timestamp to its Point, built once from a
// Provider response over a margin-extended range.
type Accessor struct {
	start, end time.Time // requested range, NOT margin-extended
	data       map[body.Body]map[time.Time]Point
}

// Load fetches [start-Margin, end+Margin] from provider and builds an
// Accessor over it.
func Load(provider Provider, loc Location, start, end time.Time, bodies []body.Body) (*Accessor, error) {
	data, err := provider.Ephemeris(loc, start.Add(-Margin), end.Add(Margin), bodies)
	if err != nil {
		return nil, fmt.Errorf("ephemeris: provider failed: %w", err)
	}
	return &Accessor{start: start, end: end, data: data}, nil
}

// Point returns the full Point for body b at minute t, or a *GapError if
// missing.
func (a *Accessor) Point(b body.Body, t time.Time) (Point, error) {
	byBody, ok := a.data[b]
	if !ok {
		return Point{}, &GapError{Body: b, At: t}
	}
	p, ok := byBody[t.Truncate(time.Minute)]
	if !ok {
		return Point{}, &GapError{Body: b, At: t}
	}
	return p, nil
}

// Get returns a single scalar field for body b at minute t, or a *GapError.
func (a *Accessor) Get(b body.Body, t time.Time, k Kind) (float64, error) {
	p, err := a.Point(b, t)
	if err != nil {
		return 0, err
	}
	return p.Get(k), nil
}

// Minutes iterates every minute in [start, end) in order, inclusive of
// start and exclusive of end, matching the driver loop's "for minute T in
// [day, day+24h)" convention (spec §4.I).
func Minutes(start, end time.Time) []time.Time {
	var out []time.Time
	for t := start; t.Before(end); t = t.Add(time.Minute) {
		out = append(out, t)
	}
	return out
}
