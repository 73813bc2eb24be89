package detectors

import (
	"fmt"
	"time"

	"github.com/caelundas/caelundas/body"
	"github.com/caelundas/caelundas/ephemeris"
	"github.com/caelundas/caelundas/event"
)

// signedDelta returns b-a as a signed value in (-180, 180], handling the
// 360° wrap, i.e. the body's instantaneous velocity in degrees/minute.
func signedDelta(a, b float64) float64 {
	d := b - a
	for d <= -180 {
		d += 360
	}
	for d > 180 {
		d -= 360
	}
	return d
}

// RetrogradeStation detects a sign change in the first difference of b's
// ecliptic longitude: +→− is a station retrograde, −→+ is a station direct
// (spec §4.C).
func RetrogradeStation(acc *ephemeris.Accessor, b body.Body, t time.Time) ([]event.Event, error) {
	lon2, err := acc.Get(b, t.Add(-2*minute), ephemeris.Longitude)
	if err != nil {
		return nil, nil
	}
	lon1, err := acc.Get(b, t.Add(-minute), ephemeris.Longitude)
	if err != nil {
		return nil, nil
	}
	lon0, err := acc.Get(b, t, ephemeris.Longitude)
	if err != nil {
		return nil, err
	}

	prevVelocity := signedDelta(lon2, lon1)
	curVelocity := signedDelta(lon1, lon0)

	if prevVelocity == 0 || curVelocity == 0 {
		return nil, nil
	}

	var kind, emoji string
	switch {
	case prevVelocity > 0 && curVelocity < 0:
		kind, emoji = "Station Retrograde", "℞"
	case prevVelocity < 0 && curVelocity > 0:
		kind, emoji = "Station Direct", "▶"
	default:
		return nil, nil
	}

	return []event.Event{{
		Start:       t,
		End:         t,
		Summary:     fmt.Sprintf("%s %s %s", emoji, b, kind),
		Description: fmt.Sprintf("%s's apparent motion reverses (%s).", b, kind),
		Categories:  []string{"Astronomy", "Astrology", "Retrograde Station", kind, b.String()},
	}}, nil
}
