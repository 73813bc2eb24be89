package detectors

import (
	"time"

	"github.com/caelundas/caelundas/body"
	"github.com/caelundas/caelundas/ephemeris"
)

// fakeProvider serves canned Points from a per-body, per-minute table so
// detector tests can drive exact T-1/T/T+1 sequences without depending on
// refeph's real formulas.
type fakeProvider struct {
	points map[body.Body]map[time.Time]ephemeris.Point
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{points: make(map[body.Body]map[time.Time]ephemeris.Point)}
}

func (p *fakeProvider) set(b body.Body, t time.Time, pt ephemeris.Point) {
	if p.points[b] == nil {
		p.points[b] = make(map[time.Time]ephemeris.Point)
	}
	p.points[b][t] = pt
}

func (p *fakeProvider) Ephemeris(loc ephemeris.Location, start, end time.Time, bodies []body.Body) (map[body.Body]map[time.Time]ephemeris.Point, error) {
	out := make(map[body.Body]map[time.Time]ephemeris.Point)
	for _, b := range bodies {
		out[b] = make(map[time.Time]ephemeris.Point)
		for t, pt := range p.points[b] {
			if !t.Before(start) && !t.After(end) {
				out[b][t] = pt
			}
		}
	}
	return out, nil
}

func mustLoad(p *fakeProvider, start, end time.Time, bodies []body.Body) *ephemeris.Accessor {
	acc, err := ephemeris.Load(p, ephemeris.Location{}, start, end, bodies)
	if err != nil {
		panic(err)
	}
	return acc
}
