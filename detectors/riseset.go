package detectors

import (
	"fmt"
	"time"

	"github.com/caelundas/caelundas/angular"
	"github.com/caelundas/caelundas/body"
	"github.com/caelundas/caelundas/ephemeris"
	"github.com/caelundas/caelundas/event"
)

// twilightLevel is one of the four elevation thresholds the daily cycle
// detector watches (spec §4.C): 0° (rise/set), -6° (civil), -12°
// (nautical), -18° (astronomical). The source did not fully specify the
// twilight/rise-set threshold-crossing semantics (see DESIGN.md, "Open
// question decisions"); this mirrors the monthly-lunar-phase crossing rule,
// as decided there.
type twilightLevel struct {
	ThresholdDeg float64
	UpName       string // name when crossing upward through this threshold
	DownName     string // name when crossing downward
	Tag          string
}

var twilightLevels = []twilightLevel{
	{0, "Rise", "Set", "Horizon"},
	{-6, "Civil Dawn", "Civil Dusk", "Civil Twilight"},
	{-12, "Nautical Dawn", "Nautical Dusk", "Nautical Twilight"},
	{-18, "Astronomical Dawn", "Astronomical Dusk", "Astronomical Twilight"},
}

// DailyCycle detects rise, set, culmination, and the three twilight bands
// for b (conventionally Sun or Moon) from topocentric elevation, using the
// same threshold-crossing rule as the monthly lunar phase detector (spec
// §4.C, §9 open question).
func DailyCycle(acc *ephemeris.Accessor, b body.Body, t time.Time) ([]event.Event, error) {
	prevElev, err := acc.Get(b, t.Add(-minute), ephemeris.Elevation)
	if err != nil {
		return nil, nil
	}
	curElev, err := acc.Get(b, t, ephemeris.Elevation)
	if err != nil {
		return nil, err
	}
	nextElev, err := acc.Get(b, t.Add(minute), ephemeris.Elevation)
	if err != nil {
		nextElev = curElev // boundary minute: treat as flat, culmination still detectable via prev only
	}

	var out []event.Event
	for _, lvl := range twilightLevels {
		if angular.ThresholdCrossingUp(lvl.ThresholdDeg, prevElev, curElev) {
			out = append(out, dailyCycleEvent(t, b, lvl.UpName, lvl.Tag, curElev))
		}
		if angular.ThresholdCrossingDown(lvl.ThresholdDeg, prevElev, curElev) {
			out = append(out, dailyCycleEvent(t, b, lvl.DownName, lvl.Tag, curElev))
		}
	}

	if angular.IsMaximum(prevElev, curElev, nextElev) {
		out = append(out, dailyCycleEvent(t, b, "Upper Culmination", "Culmination", curElev))
	}
	if angular.IsMinimum(prevElev, curElev, nextElev) {
		out = append(out, dailyCycleEvent(t, b, "Lower Culmination", "Culmination", curElev))
	}

	return out, nil
}

func dailyCycleEvent(t time.Time, b body.Body, name, tag string, elevDeg float64) event.Event {
	return event.Event{
		Start:       t,
		End:         t,
		Summary:     fmt.Sprintf("%s %s %s", b.Symbol(), b, name),
		Description: fmt.Sprintf("%s elevation %.3f° at %s.", b, elevDeg, name),
		Categories:  []string{"Astronomy", "Daily Cycle", tag, name, b.String()},
	}
}
