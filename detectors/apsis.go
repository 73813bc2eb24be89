package detectors

import (
	"fmt"
	"time"

	"github.com/caelundas/caelundas/angular"
	"github.com/caelundas/caelundas/body"
	"github.com/caelundas/caelundas/ephemeris"
	"github.com/caelundas/caelundas/event"
)

// SolarApsis fires when the Sun-Earth distance reaches a strict local
// extremum over the three-point window at T (spec §4.C). Aphelion is the
// maximum, perihelion the minimum.
func SolarApsis(acc *ephemeris.Accessor, t time.Time) ([]event.Event, error) {
	return distanceApsis(acc, body.Sun, t, "Solar", "☀️")
}

// LunarApsis fires when the Moon's geocentric distance reaches a strict
// local extremum: apogee (maximum) or perigee (minimum). This is the
// supplemented "lunar apogee/perigee" feature (SPEC_FULL §5.2).
func LunarApsis(acc *ephemeris.Accessor, t time.Time) ([]event.Event, error) {
	return distanceApsis(acc, body.Moon, t, "Lunar", "🌙")
}

func distanceApsis(acc *ephemeris.Accessor, b body.Body, t time.Time, label, emoji string) ([]event.Event, error) {
	prev, err := acc.Get(b, t.Add(-minute), ephemeris.Distance)
	if err != nil {
		return nil, nil
	}
	cur, err := acc.Get(b, t, ephemeris.Distance)
	if err != nil {
		return nil, err
	}
	next, err := acc.Get(b, t.Add(minute), ephemeris.Distance)
	if err != nil {
		return nil, nil
	}

	var kind string
	switch {
	case angular.IsMaximum(prev, cur, next):
		kind = "Aphelion"
		if label == "Lunar" {
			kind = "Apogee"
		}
	case angular.IsMinimum(prev, cur, next):
		kind = "Perihelion"
		if label == "Lunar" {
			kind = "Perigee"
		}
	default:
		return nil, nil
	}

	return []event.Event{{
		Start:       t,
		End:         t,
		Summary:     fmt.Sprintf("%s %s %s", emoji, b, kind),
		Description: fmt.Sprintf("%s reaches %s distance %.6f AU.", b, kind, cur),
		Categories:  []string{"Astronomy", label + " Apsis", kind, b.String()},
	}}, nil
}
