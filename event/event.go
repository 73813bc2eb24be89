// Package event defines the Event record every detector, the composer, and
// the pairer produce, and the identity rule ("summary, start") the sink
// coalesces on.
package event

import (
	"sort"
	"time"
)

// Event is an instantaneous or span record ready for the sink and, from
// there, the iCalendar serializer.
//
// Identity is (Summary, Start): two Events with the same identity coalesce
// on write, last-write-wins for every other field (spec §3).
type Event struct {
	Start       time.Time
	End         time.Time // equal to Start for instantaneous events
	Summary     string
	Description string
	Categories  []string // ordered for display only; membership is what matters
}

// Key is the sink's coalescing identity for e.
type Key struct {
	Summary string
	Start   time.Time
}

// ID returns e's coalescing key.
func (e Event) ID() Key { return Key{Summary: e.Summary, Start: e.Start} }

// Instantaneous reports whether e has no duration (End == Start).
func (e Event) Instantaneous() bool { return e.End.Equal(e.Start) }

// HasCategory reports whether e is tagged with cat.
func (e Event) HasCategory(cat string) bool {
	for _, c := range e.Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// WithoutCategory returns a copy of e's categories with cat removed. Used by
// the duration pairer to drop the phase tag ("Forming"/"Dissolving") when
// turning a boundary event into a span event.
func WithoutCategory(cats []string, cat string) []string {
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		if c != cat {
			out = append(out, c)
		}
	}
	return out
}

// SortByStart sorts events ascending by start time. Events with equal start
// times keep their relative (insertion) order, matching spec §5's ordering
// guarantee: "multiple events at the same start are output in insertion
// order".
func SortByStart(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
}
