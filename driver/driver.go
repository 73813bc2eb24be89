// Package driver is the day-by-day, then minute-by-minute orchestration
// loop (component I) that ties every other package together, exactly per
// spec §4.I's pseudocode.
package driver

import (
	"fmt"
	"time"

	"github.com/caelundas/caelundas/angular"
	"github.com/caelundas/caelundas/aspect"
	"github.com/caelundas/caelundas/aspectgraph"
	"github.com/caelundas/caelundas/body"
	"github.com/caelundas/caelundas/detectors"
	"github.com/caelundas/caelundas/ephemeris"
	"github.com/caelundas/caelundas/event"
	"github.com/caelundas/caelundas/pairer"
	"github.com/caelundas/caelundas/pattern"
	"github.com/caelundas/caelundas/sink"
)

// Logger is the minimal structured-logging surface the driver needs. The
// teacher itself never logs (its examples print straight to stdout with
// fmt), so the ambient logging choice is grounded on the pack's only
// astrology-domain web service, laureano57-astroeph-api, which depends on
// github.com/rs/zerolog; cmd/caelundas wires a *zerolog.Logger in here
// through this narrow interface rather than the driver depending on
// zerolog directly.
type Logger interface {
	Warn(msg string, args ...any)
}

// Run walks [start, end) one day at a time, feeding every simple detector
// and the pairwise-aspect detector minute by minute, composing patterns
// against the live aspect graph, and finally running the duration pairer
// over the complete event stream.
func Run(provider ephemeris.Provider, loc ephemeris.Location, start, end time.Time, log Logger) (*sink.Sink, error) {
	s := sink.New()
	graph := aspectgraph.New()

	for day := start; day.Before(end); day = day.Add(24 * time.Hour) {
		dayEnd := day.Add(24 * time.Hour)
		if dayEnd.After(end) {
			dayEnd = end
		}

		acc, err := ephemeris.Load(provider, loc, day, dayEnd, body.All)
		if err != nil {
			return nil, fmt.Errorf("driver: loading ephemeris for day %s: %w", day, err)
		}

		for _, t := range ephemeris.Minutes(day, dayEnd) {
			instantaneous, err := runSimpleDetectors(acc, t)
			if err != nil {
				log.Warn("simple detector error", "time", t, "error", err)
			}

			pairEvents, err := runPairwiseAspects(acc, graph, t)
			if err != nil {
				log.Warn("pairwise aspect detector error", "time", t, "error", err)
			}
			instantaneous = append(instantaneous, pairEvents...)

			s.Upsert(instantaneous...)

			active := graph.ActiveAt(t)
			compound, err := pattern.Compose(acc, active, t)
			if err != nil {
				log.Warn("compound pattern composer error", "time", t, "error", err)
			}
			s.Upsert(compound...)
		}
	}

	all := s.All()
	result := pairer.Pair(all)
	for _, w := range result.Warnings {
		log.Warn(w.Message)
	}
	s.Upsert(result.Spans...)

	return s, nil
}

// runSimpleDetectors runs every component-C detector for one minute.
func runSimpleDetectors(acc *ephemeris.Accessor, t time.Time) ([]event.Event, error) {
	var out []event.Event
	var firstErr error
	record := func(evs []event.Event, err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
		out = append(out, evs...)
	}

	for _, b := range body.Planetary {
		record(detectors.SignIngress(acc, b, t))
		record(detectors.DecanIngress(acc, b, t))
		record(detectors.PeakIngress(acc, b, t))
	}
	for _, b := range append([]body.Body{body.NorthNode, body.Apogee}, body.MinorBodies...) {
		record(detectors.SignIngress(acc, b, t))
	}

	record(detectors.AnnualSolarCycle(acc, t))
	record(detectors.MonthlyLunarPhase(acc, t))
	record(detectors.SolarApsis(acc, t))
	record(detectors.LunarApsis(acc, t))
	record(detectors.DailyCycle(acc, body.Sun, t))
	record(detectors.DailyCycle(acc, body.Moon, t))
	record(detectors.LunarEclipse(acc, t))
	record(detectors.SolarEclipse(acc, t))

	for _, b := range retrogradeEligibleBodies() {
		record(detectors.RetrogradeStation(acc, b, t))
	}
	for _, b := range detectors.PlanetaryPhaseBodies {
		record(detectors.PlanetaryPhase(acc, b, t))
	}

	return out, firstErr
}

// retrogradeEligibleBodies excludes the Sun (never retrograde by
// construction) and the two lunar geometry points (their "motion" is a
// slow nodal/apsidal regression, not a body whose station is a notable
// event in this system).
func retrogradeEligibleBodies() []body.Body {
	var out []body.Body
	for _, b := range body.All {
		if b == body.Sun || b == body.NorthNode || b == body.Apogee {
			continue
		}
		out = append(out, b)
	}
	return out
}

// runPairwiseAspects runs component D for every body pair and every family
// applicable to that pair, folding each result into the live aspect graph
// (component E) as it goes.
func runPairwiseAspects(acc *ephemeris.Accessor, graph *aspectgraph.Graph, t time.Time) ([]event.Event, error) {
	var out []event.Event
	var firstErr error

	for _, family := range aspect.Families() {
		bodies := aspect.BodiesForFamily(family)
		for i := 0; i < len(bodies); i++ {
			for j := i + 1; j < len(bodies); j++ {
				a, b := bodies[i], bodies[j]
				prev, okPrev, err := longitudePair(acc, a, b, t.Add(-time.Minute))
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
					continue
				}
				cur, okCur, err := longitudePair(acc, a, b, t)
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
					continue
				}
				next, okNext, err := longitudePair(acc, a, b, t.Add(time.Minute))
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
					continue
				}
				if !okPrev || !okCur || !okNext {
					continue // missing T±1 is fatal to this minute's detection for this pair (spec §4.D)
				}

				d, detected := aspect.DetectPair(family, a, b, prev, cur, next)
				if !detected {
					// DetectPair reports nothing both for a pair out of orb
					// and for one still in orb between its transition
					// minutes; only the former closes the pair's open edge.
					sep := angular.Angle(cur.A, cur.B)
					inOrb := false
					for _, kinds := range [][]aspect.Kind{aspect.MajorKinds, aspect.MinorKinds, aspect.SpecialtyKinds} {
						for _, k := range kinds {
							inOrb = inOrb || (k.Family == family && k.InOrb(sep))
						}
					}
					if inOrb {
						continue
					}
				}
				graph.Observe(family, a, b, t, d, detected)
				if !detected {
					continue
				}
				out = append(out, event.Event{
					Start:       t,
					End:         t,
					Summary:     d.Summary(),
					Description: fmt.Sprintf("%s %s %s %s, %s.", d.Body1, d.Kind.Name, d.Body2, family, d.Phase),
					Categories:  []string{"Astronomy", "Astrology", "Simple Aspect", family.String(), d.Kind.Name, d.Phase.String(), d.Body1.String(), d.Body2.String()},
				})
			}
		}
	}
	return out, firstErr
}

func longitudePair(acc *ephemeris.Accessor, a, b body.Body, t time.Time) (aspect.LongitudePair, bool, error) {
	la, err := acc.Get(a, t, ephemeris.Longitude)
	if err != nil {
		if _, isGap := err.(*ephemeris.GapError); isGap {
			return aspect.LongitudePair{}, false, nil
		}
		return aspect.LongitudePair{}, false, err
	}
	lb, err := acc.Get(b, t, ephemeris.Longitude)
	if err != nil {
		if _, isGap := err.(*ephemeris.GapError); isGap {
			return aspect.LongitudePair{}, false, nil
		}
		return aspect.LongitudePair{}, false, err
	}
	return aspect.LongitudePair{A: la, B: lb}, true, nil
}
