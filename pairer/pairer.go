// Package pairer is the duration pairer (component G): it runs once, after
// the full time range has been walked, turning forming/dissolving boundary
// events into closed span events.
package pairer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/caelundas/caelundas/event"
)

// Warning is one dropped or re-paired event the pairer could not match
// cleanly, surfaced to the caller instead of silently discarded (spec §4.G:
// "unpaired tails are reported and dropped").
type Warning struct {
	Message string
}

// Result is the pairer's output: the new span events plus anything it had
// to drop along the way.
type Result struct {
	Spans    []event.Event
	Warnings []Warning
}

const (
	formingTag    = "Forming"
	dissolvingTag = "Dissolving"
	lunarCycleTag = "Monthly Lunar Cycle"
	solarApsisTag = "Solar Apsis"
	lunarApsisTag = "Lunar Apsis"
)

// Pair runs all of the pairing rules spec §4.G describes over the full
// flat event stream and returns the resulting span events plus passthrough
// events unaffected by any of them (ingresses, retrograde stations,
// planetary-phase conjunctions/elongations, eclipses, twilight crossings).
func Pair(events []event.Event) Result {
	var result Result

	var boundary, lunarPhase, solarApsis, lunarApsis, passthrough []event.Event
	for _, e := range events {
		switch {
		case e.HasCategory(formingTag) || e.HasCategory(dissolvingTag):
			boundary = append(boundary, e)
		case e.HasCategory(lunarCycleTag):
			lunarPhase = append(lunarPhase, e)
		case e.HasCategory(solarApsisTag):
			solarApsis = append(solarApsis, e)
		case e.HasCategory(lunarApsisTag):
			lunarApsis = append(lunarApsis, e)
		default:
			passthrough = append(passthrough, e)
		}
	}

	boundarySpans, warnings := pairBoundaryFamilies(boundary)
	result.Spans = append(result.Spans, boundarySpans...)
	result.Warnings = append(result.Warnings, warnings...)

	result.Spans = append(result.Spans, pairConsecutive(lunarPhase)...)
	result.Spans = append(result.Spans, pairApsis(solarApsis)...)
	result.Spans = append(result.Spans, pairApsis(lunarApsis)...)
	result.Spans = append(result.Spans, passthrough...)

	return result
}

// familyKey groups a boundary event by everything except its phase tag:
// the same (bodies, aspect-or-pattern kind) combination forming now and
// dissolving later must produce the same key so they pair up.
func familyKey(e event.Event) string {
	kept := make([]string, 0, len(e.Categories))
	for _, c := range e.Categories {
		if c == formingTag || c == dissolvingTag || c == "Exact" {
			continue
		}
		kept = append(kept, c)
	}
	sort.Strings(kept)
	return strings.Join(kept, "|")
}

func pairBoundaryFamilies(boundary []event.Event) ([]event.Event, []Warning) {
	forming := make(map[string][]event.Event)
	dissolving := make(map[string][]event.Event)
	var keys []string
	seen := make(map[string]bool)

	for _, e := range boundary {
		key := familyKey(e)
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
		if e.HasCategory(formingTag) {
			forming[key] = append(forming[key], e)
		} else {
			dissolving[key] = append(dissolving[key], e)
		}
	}
	sort.Strings(keys)

	var spans []event.Event
	var warnings []Warning
	for _, key := range keys {
		f := forming[key]
		d := dissolving[key]
		event.SortByStart(f)
		event.SortByStart(d)

		i, j := 0, 0
		for i < len(f) && j < len(d) {
			if !d[j].Start.After(f[i].Start) {
				warnings = append(warnings, Warning{Message: fmt.Sprintf(
					"pairer: dropping out-of-order dissolving %q at %s (not after forming at %s), re-pairing against next dissolving",
					d[j].Summary, d[j].Start, f[i].Start)})
				j++
				continue
			}
			spans = append(spans, event.Event{
				Start:       f[i].Start,
				End:         d[j].Start,
				Summary:     f[i].Summary,
				Description: f[i].Description,
				Categories:  event.WithoutCategory(f[i].Categories, formingTag),
			})
			i++
			j++
		}
		for ; i < len(f); i++ {
			warnings = append(warnings, Warning{Message: fmt.Sprintf(
				"pairer: unpaired forming tail %q at %s dropped", f[i].Summary, f[i].Start)})
		}
		for ; j < len(d); j++ {
			warnings = append(warnings, Warning{Message: fmt.Sprintf(
				"pairer: unpaired dissolving tail %q at %s dropped", d[j].Summary, d[j].Start)})
		}
	}
	return spans, warnings
}

// pairConsecutive implements the lunar-phase special case (spec §4.G):
// pairing is by consecutive sort order rather than forming/dissolving,
// describing the phase that was just entered at event[i] until event[i+1].
func pairConsecutive(events []event.Event) []event.Event {
	if len(events) < 2 {
		return nil
	}
	sorted := append([]event.Event{}, events...)
	event.SortByStart(sorted)

	spans := make([]event.Event, 0, len(sorted)-1)
	for i := 0; i < len(sorted)-1; i++ {
		spans = append(spans, event.Event{
			Start:       sorted[i].Start,
			End:         sorted[i+1].Start,
			Summary:     sorted[i].Summary,
			Description: sorted[i].Description,
			Categories:  sorted[i].Categories,
		})
	}
	return spans
}

// pairApsis implements the solar/lunar-apsis dual span case (spec §4.G):
// apsides of opposite kind naturally alternate in time (distance can only
// have one kind of extremum before reaching the other), so every adjacent
// pair in chronological order whose kinds differ produces a span: Advancing
// when distance is shrinking toward the minimum, Retreating when it is
// growing back out. The lunar apogee/perigee cycle (the supplemented
// feature, SPEC_FULL §5.2) follows the same rule by the same physical
// argument.
func pairApsis(events []event.Event) []event.Event {
	if len(events) < 2 {
		return nil
	}
	sorted := append([]event.Event{}, events...)
	event.SortByStart(sorted)

	var spans []event.Event
	for i := 0; i < len(sorted)-1; i++ {
		a, b := sorted[i], sorted[i+1]
		aMax := isMaximumApsis(a)
		bMax := isMaximumApsis(b)
		if aMax == bMax {
			continue // same kind twice in a row: a minute-resolution artifact, skip
		}
		tag := "Retreating" // minimum distance growing back out toward maximum
		if aMax && !bMax {
			tag = "Advancing" // maximum distance shrinking toward minimum
		}
		spans = append(spans, event.Event{
			Start:       a.Start,
			End:         b.Start,
			Summary:     fmt.Sprintf("%s (%s)", a.Summary, tag),
			Description: fmt.Sprintf("%s, %s toward %s.", a.Description, tag, b.Summary),
			Categories:  append(append([]string{}, a.Categories...), tag),
		})
	}
	return spans
}

func isMaximumApsis(e event.Event) bool {
	return e.HasCategory("Aphelion") || e.HasCategory("Apogee")
}
