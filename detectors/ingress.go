// Package detectors implements every component-C simple-event detector:
// ingress, the annual solar cycle, solar and lunar apsis, monthly lunar
// phase, eclipses, the daily solar/lunar cycle (twilight, rise/set,
// culmination), retrograde stations, and planetary phase.
//
// Every detector is invoked once per minute T with access to T-1 (and,
// where noted, T+1) through an ephemeris.Accessor, and returns the (zero or
// more) events it fires at T. None of them mutate shared state; the driver
// is responsible for writing their output to the sink.
package detectors

import (
	"fmt"
	"math"
	"time"

	"github.com/caelundas/caelundas/body"
	"github.com/caelundas/caelundas/ephemeris"
	"github.com/caelundas/caelundas/event"
)

const minute = time.Minute

// subdivision describes one zodiac-width ingress detector: Sign (30°),
// Decan (10°), or Peak (15°). All three coexist and never merge (spec
// §4.C).
type subdivision struct {
	name    string
	widthDeg float64
}

var (
	signSubdivision  = subdivision{name: "Sign", widthDeg: 30}
	decanSubdivision = subdivision{name: "Decan", widthDeg: 10}
	peakSubdivision  = subdivision{name: "Peak", widthDeg: 15}
)

func cellIndex(lonDeg, widthDeg float64) int {
	return int(math.Floor(lonDeg / widthDeg))
}

// signNames indexes the twelve 30°-wide zodiac signs.
var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

func signSymbol(idx int) string {
	symbols := [12]string{"♈", "♉", "♊", "♋", "♌", "♍", "♎", "♏", "♐", "♑", "♒", "♓"}
	return symbols[((idx%12)+12)%12]
}

// Ingress detects b entering a new zodiac subdivision between T-1 and T
// (spec §4.C "Sign/Decan/Peak ingress"), handling the 360°→0° wrap.
func Ingress(acc *ephemeris.Accessor, b body.Body, t time.Time, sub subdivision) ([]event.Event, error) {
	prevLon, err := acc.Get(b, t.Add(-minute), ephemeris.Longitude)
	if err != nil {
		return nil, nil // missing T-1 is a skip for this minute, not fatal globally
	}
	curLon, err := acc.Get(b, t, ephemeris.Longitude)
	if err != nil {
		return nil, err
	}

	prevCell := cellIndex(prevLon, sub.widthDeg)
	curCell := cellIndex(curLon, sub.widthDeg)
	if prevCell == curCell {
		return nil, nil
	}

	cellsPerCircle := int(360 / sub.widthDeg)
	signIdx := cellIndex(curLon, 30) % 12

	summary := fmt.Sprintf("%s %s enters %s %s", b.Symbol(), b, sub.name, cellName(sub, curCell, cellsPerCircle))
	return []event.Event{{
		Start:       t,
		End:         t,
		Summary:     summary,
		Description: fmt.Sprintf("%s ingresses a new %s at %.4f° ecliptic longitude.", b, sub.name, curLon),
		Categories:  []string{"Astronomy", "Astrology", "Ingress", sub.name + " Ingress", b.String(), signNames[signIdx], signSymbol(signIdx)},
	}}, nil
}

func cellName(sub subdivision, cell, cellsPerCircle int) string {
	idx := ((cell % cellsPerCircle) + cellsPerCircle) % cellsPerCircle
	if sub.name == "Sign" {
		return signNames[idx]
	}
	return fmt.Sprintf("%s %d", sub.name, idx+1)
}

// SignIngress, DecanIngress, and PeakIngress are the three ingress
// detectors spec §4.C requires to coexist without merging.
func SignIngress(acc *ephemeris.Accessor, b body.Body, t time.Time) ([]event.Event, error) {
	return Ingress(acc, b, t, signSubdivision)
}

func DecanIngress(acc *ephemeris.Accessor, b body.Body, t time.Time) ([]event.Event, error) {
	return Ingress(acc, b, t, decanSubdivision)
}

func PeakIngress(acc *ephemeris.Accessor, b body.Body, t time.Time) ([]event.Event, error) {
	return Ingress(acc, b, t, peakSubdivision)
}
