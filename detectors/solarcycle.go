package detectors

import (
	"fmt"
	"time"

	"github.com/caelundas/caelundas/angular"
	"github.com/caelundas/caelundas/body"
	"github.com/caelundas/caelundas/ephemeris"
	"github.com/caelundas/caelundas/event"
)

// hexadecan is one of the sixteen fixed solar-longitude thresholds, 22.5°
// apart, spec §4.C's "annual solar cycle".
type hexadecan struct {
	ThresholdDeg float64
	Name         string
}

// Hexadecans lists all sixteen thresholds in order: the eight
// cardinal/cross-quarter points (every 45°) plus the eight intermediate
// hexadecans (the odd multiples of 22.5°).
var Hexadecans = []hexadecan{
	{0, "Vernal Equinox"},
	{22.5, "First Hexadecan"},
	{45, "Beltane"},
	{67.5, "Second Hexadecan"},
	{90, "Summer Solstice"},
	{112.5, "Third Hexadecan"},
	{135, "Lammas"},
	{157.5, "Fourth Hexadecan"},
	{180, "Autumn Equinox"},
	{202.5, "Fifth Hexadecan"},
	{225, "Samhain"},
	{247.5, "Sixth Hexadecan"},
	{270, "Winter Solstice"},
	{292.5, "Seventh Hexadecan"},
	{315, "Imbolc"},
	{337.5, "Eighth Hexadecan"},
}

var hexadecanEmoji = map[string]string{
	"Vernal Equinox": "🌸", "Summer Solstice": "☀️", "Autumn Equinox": "🍂", "Winter Solstice": "❄️",
	"Beltane": "🔥", "Lammas": "🌾", "Samhain": "🎃", "Imbolc": "🕯️",
}

// AnnualSolarCycle fires whenever the Sun's ecliptic longitude crosses one
// of the sixteen hexadecan thresholds. The 0° case uses the wrap rule (spec
// §4.C); every other threshold uses the plain upward-crossing rule.
func AnnualSolarCycle(acc *ephemeris.Accessor, t time.Time) ([]event.Event, error) {
	prevLon, err := acc.Get(body.Sun, t.Add(-minute), ephemeris.Longitude)
	if err != nil {
		return nil, nil
	}
	curLon, err := acc.Get(body.Sun, t, ephemeris.Longitude)
	if err != nil {
		return nil, err
	}

	var out []event.Event
	for _, h := range Hexadecans {
		var fires bool
		if h.ThresholdDeg == 0 {
			fires = angular.WrapCrossingDown(prevLon, curLon)
		} else {
			fires = angular.ThresholdCrossingUp(h.ThresholdDeg, prevLon, curLon)
		}
		if !fires {
			continue
		}
		emoji := hexadecanEmoji[h.Name]
		if emoji == "" {
			emoji = "🌞"
		}
		out = append(out, event.Event{
			Start:       t,
			End:         t,
			Summary:     fmt.Sprintf("%s %s", emoji, h.Name),
			Description: fmt.Sprintf("Sun's ecliptic longitude crosses %.1f°.", h.ThresholdDeg),
			Categories:  []string{"Astronomy", "Astrology", "Annual Solar Cycle", h.Name},
		})
		// Spec §8 property 9: no other 0°-threshold event fires at the
		// same moment; thresholds are 22.5° apart so only one can match
		// per minute under normal solar motion (~1°/day).
		break
	}
	return out, nil
}
