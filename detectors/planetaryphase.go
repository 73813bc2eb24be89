package detectors

import (
	"fmt"
	"math"
	"time"

	"github.com/caelundas/caelundas/angular"
	"github.com/caelundas/caelundas/body"
	"github.com/caelundas/caelundas/ephemeris"
	"github.com/caelundas/caelundas/event"
)

// PlanetaryPhaseBodies are the bodies whose apparition cycle relative to the
// Sun is tracked: Venus, Mercury, Mars (spec §4.C).
var PlanetaryPhaseBodies = []body.Body{body.Venus, body.Mercury, body.Mars}

// elongation is the Sun-body angle, signed: positive means the body trails
// east of the Sun (an evening object), negative means it leads west (a
// morning object).
func elongation(sunLon, bodyLon float64) float64 {
	return signedDelta(sunLon, bodyLon)
}

// PlanetaryPhase evaluates b's apparition-cycle events for one minute from
// three independent checks: a sign change of the elongation (conjunction),
// a local maximum of the elongation's magnitude (greatest elongation), and
// a local maximum of the brightness proxy (greatest brilliancy). The body's
// velocity sign (direct/retrograde motion) is not consulted, and no state
// is carried from one minute to the next.
func PlanetaryPhase(acc *ephemeris.Accessor, b body.Body, t time.Time) ([]event.Event, error) {
	var out []event.Event

	if ev, ok, err := conjunctionEvent(acc, b, t); err != nil {
		return nil, err
	} else if ok {
		out = append(out, ev)
	}

	if ev, ok, err := greatestElongationEvent(acc, b, t); err != nil {
		return nil, err
	} else if ok {
		out = append(out, ev)
	}

	if ev, ok, err := greatestBrilliancyEvent(acc, b, t); err != nil {
		return nil, err
	} else if ok {
		out = append(out, ev)
	}

	return out, nil
}

// conjunctionEvent fires when elongation crosses zero: the illumination
// fraction at that instant distinguishes a superior conjunction (far side of
// the Sun, near-full disk) from an inferior one (near side, near-new disk),
// and the sign the elongation settles into afterward names the apparition
// that begins (Evening Star if positive, Morning Star if negative).
func conjunctionEvent(acc *ephemeris.Accessor, b body.Body, t time.Time) (event.Event, bool, error) {
	sunPrev, err := acc.Get(body.Sun, t.Add(-minute), ephemeris.Longitude)
	if err != nil {
		return event.Event{}, false, nil
	}
	bodyPrev, err := acc.Get(b, t.Add(-minute), ephemeris.Longitude)
	if err != nil {
		return event.Event{}, false, nil
	}
	sunCur, err := acc.Get(body.Sun, t, ephemeris.Longitude)
	if err != nil {
		return event.Event{}, false, err
	}
	bodyCur, err := acc.Get(b, t, ephemeris.Longitude)
	if err != nil {
		return event.Event{}, false, err
	}
	illumCur, err := acc.Get(b, t, ephemeris.Illumination)
	if err != nil {
		return event.Event{}, false, err
	}

	prevElong := elongation(sunPrev, bodyPrev)
	curElong := elongation(sunCur, bodyCur)
	// The ±180° wrap of a signed elongation (an outer planet at opposition)
	// also flips the sign; only a crossing near zero is a conjunction.
	if (prevElong <= 0) == (curElong <= 0) || math.Abs(curElong) > 90 {
		return event.Event{}, false, nil
	}

	conjKind := "Inferior Conjunction"
	if illumCur > 0.5 {
		conjKind = "Superior Conjunction"
	}
	apparition := "Evening Star"
	if curElong < 0 {
		apparition = "Morning Star"
	}

	return event.Event{
		Start:       t,
		End:         t,
		Summary:     fmt.Sprintf("%s %s %s", b.Symbol(), b, conjKind),
		Description: fmt.Sprintf("%s passes %s; begins its %s apparition.", b, conjKind, apparition),
		Categories:  []string{"Astronomy", "Astrology", "Planetary Phase", conjKind, apparition, b.String()},
	}, true, nil
}

// greatestElongationEvent fires when the body's angular distance from the
// Sun reaches a local extremum, i.e. the elongation magnitude peaks before
// the body turns back toward conjunction.
func greatestElongationEvent(acc *ephemeris.Accessor, b body.Body, t time.Time) (event.Event, bool, error) {
	prevMag, okPrev := elongationMagnitude(acc, b, t.Add(-minute))
	curMag, okCur := elongationMagnitude(acc, b, t)
	nextMag, okNext := elongationMagnitude(acc, b, t.Add(minute))
	if !okPrev {
		return event.Event{}, false, nil
	}
	if !okCur {
		return event.Event{}, false, fmt.Errorf("missing elongation for %s at %s", b, t)
	}
	if !okNext {
		return event.Event{}, false, nil
	}
	if !angular.IsMaximum(prevMag, curMag, nextMag) {
		return event.Event{}, false, nil
	}

	sunCur, err := acc.Get(body.Sun, t, ephemeris.Longitude)
	if err != nil {
		return event.Event{}, false, err
	}
	bodyCur, err := acc.Get(b, t, ephemeris.Longitude)
	if err != nil {
		return event.Event{}, false, err
	}
	side := "Eastern"
	if elongation(sunCur, bodyCur) < 0 {
		side = "Western"
	}

	return event.Event{
		Start:       t,
		End:         t,
		Summary:     fmt.Sprintf("%s %s Greatest %s Elongation", b.Symbol(), b, side),
		Description: fmt.Sprintf("%s reaches greatest %s elongation of %.3f°.", b, side, curMag),
		Categories:  []string{"Astronomy", "Astrology", "Planetary Phase", "Greatest Elongation", side, b.String()},
	}, true, nil
}

func elongationMagnitude(acc *ephemeris.Accessor, b body.Body, t time.Time) (float64, bool) {
	sunLon, err := acc.Get(body.Sun, t, ephemeris.Longitude)
	if err != nil {
		return 0, false
	}
	bodyLon, err := acc.Get(b, t, ephemeris.Longitude)
	if err != nil {
		return 0, false
	}
	return math.Abs(elongation(sunLon, bodyLon)), true
}

// greatestBrilliancyEvent fires at a local maximum of a brightness proxy
// (illumination fraction times apparent disk area), which peaks on the
// crescent side between greatest elongation and inferior conjunction.
func greatestBrilliancyEvent(acc *ephemeris.Accessor, b body.Body, t time.Time) (event.Event, bool, error) {
	prevB, okPrev := brightnessProxy(acc, b, t.Add(-minute))
	curB, okCur := brightnessProxy(acc, b, t)
	nextB, okNext := brightnessProxy(acc, b, t.Add(minute))
	if !okPrev || !okNext {
		return event.Event{}, false, nil
	}
	if !okCur {
		return event.Event{}, false, fmt.Errorf("missing brightness inputs for %s at %s", b, t)
	}
	if !angular.IsMaximum(prevB, curB, nextB) {
		return event.Event{}, false, nil
	}

	return event.Event{
		Start:       t,
		End:         t,
		Summary:     fmt.Sprintf("%s %s Greatest Brilliancy", b.Symbol(), b),
		Description: fmt.Sprintf("%s reaches its brightest apparition.", b),
		Categories:  []string{"Astronomy", "Astrology", "Planetary Phase", "Greatest Brilliancy", b.String()},
	}, true, nil
}

func brightnessProxy(acc *ephemeris.Accessor, b body.Body, t time.Time) (float64, bool) {
	illum, err := acc.Get(b, t, ephemeris.Illumination)
	if err != nil {
		return 0, false
	}
	diam, err := acc.Get(b, t, ephemeris.Diameter)
	if err != nil {
		return 0, false
	}
	return illum * diam * diam, true
}
