package detectors

import (
	"fmt"
	"time"

	"github.com/caelundas/caelundas/angular"
	"github.com/caelundas/caelundas/body"
	"github.com/caelundas/caelundas/ephemeris"
	"github.com/caelundas/caelundas/event"
)

const windowMinutes = 30

// windowExtremum reports whether cur's illumination at t is a strict
// extremum (min if wantMin, else max) across the full ±30-minute window,
// per spec §4.C's New/Full Moon rule ("strict minimum/maximum over the
// full 30-minute window on both sides"). Unlike the plain three-point
// IsMaximum/IsMinimum, every sample in the window must agree, not just the
// immediate neighbors — this is what makes spec §8 property 10 hold: a
// flat illumination curve across the window fires nothing.
func windowExtremum(acc *ephemeris.Accessor, t time.Time, wantMin bool) (cur float64, ok bool) {
	curVal, err := acc.Get(body.Moon, t, ephemeris.Illumination)
	if err != nil {
		return 0, false
	}
	strictlyBeyond := false
	for m := -windowMinutes; m <= windowMinutes; m++ {
		if m == 0 {
			continue
		}
		v, err := acc.Get(body.Moon, t.Add(time.Duration(m)*minute), ephemeris.Illumination)
		if err != nil {
			return 0, false
		}
		if wantMin {
			if v < curVal {
				return 0, false
			}
			if v > curVal {
				strictlyBeyond = true
			}
		} else {
			if v > curVal {
				return 0, false
			}
			if v < curVal {
				strictlyBeyond = true
			}
		}
	}
	return curVal, strictlyBeyond
}

// MonthlyLunarPhase detects the four quarter phases of the lunar cycle from
// the Moon's illumination fraction (spec §4.C).
func MonthlyLunarPhase(acc *ephemeris.Accessor, t time.Time) ([]event.Event, error) {
	var out []event.Event

	if cur, ok := windowExtremum(acc, t, true); ok && cur < 0.5 {
		out = append(out, lunarPhaseEvent(t, "New", "🌑", cur))
	}
	if cur, ok := windowExtremum(acc, t, false); ok && cur > 0.5 {
		out = append(out, lunarPhaseEvent(t, "Full", "🌕", cur))
	}

	prev, err := acc.Get(body.Moon, t.Add(-minute), ephemeris.Illumination)
	if err != nil {
		return out, nil
	}
	cur, err := acc.Get(body.Moon, t, ephemeris.Illumination)
	if err != nil {
		return out, err
	}

	// First/Last Quarter are the 50%-illumination crossings (elongation 90°,
	// where moonPoint's illum = (1-cos(elongation))/2 evaluates to exactly
	// 0.5), not 25%/75%: waxing illumination rising through 0.5 is First
	// Quarter (between New and Full), waning illumination falling through
	// 0.5 is Last Quarter (between Full and New). See DESIGN.md.
	const quarterThreshold = 0.5
	waxing := angular.ThresholdCrossingUp(quarterThreshold, prev, cur) && cur > prev
	waning := angular.ThresholdCrossingDown(quarterThreshold, prev, cur) && cur < prev
	switch {
	case waxing:
		out = append(out, lunarPhaseEvent(t, "First Quarter", "🌓", cur))
	case waning:
		out = append(out, lunarPhaseEvent(t, "Last Quarter", "🌗", cur))
	}

	return out, nil
}

func lunarPhaseEvent(t time.Time, name, emoji string, illum float64) event.Event {
	return event.Event{
		Start:       t,
		End:         t,
		Summary:     fmt.Sprintf("%s %s Moon", emoji, name),
		Description: fmt.Sprintf("Moon illumination fraction %.4f.", illum),
		Categories:  []string{"Astronomy", "Astrology", "Monthly Lunar Cycle", name, body.Moon.String()},
	}
}
