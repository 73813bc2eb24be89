// Package sink implements the event store (component H): a map keyed by
// (summary, start) with upsert-coalescing writes and two read paths, a
// full ascending read and a point-in-time active-span query. The live
// pairwise-aspect graph query (component E) is a distinct, smaller store —
// see package aspectgraph — since a sink-wide span query cannot answer
// "active at T" for events that are still instantaneous at write time.
//
// Per spec §5, the sink is the only shared mutable state in the system and
// is accessed exclusively by the single-threaded driver loop. Every method
// still takes the mutex below, so calls from several goroutines are
// serialized rather than racing.
package sink

import (
	"sync"
	"time"

	"github.com/caelundas/caelundas/event"
)

// SimpleAspectCategory and CompoundAspectCategory are the two tags that
// distinguish a pairwise-aspect event from a compound-pattern event once
// both have been written to the sink (spec §4.E, §6).
const (
	SimpleAspectCategory   = "Simple Aspect"
	CompoundAspectCategory = "Compound Aspect"
)

// Sink is the event store.
type Sink struct {
	mu     sync.Mutex
	events map[event.Key]event.Event
	// order records first-write order per key, so SortByStart's
	// "same start -> insertion order" guarantee holds deterministically.
	order []event.Key
}

// New creates an empty Sink.
func New() *Sink {
	return &Sink{events: make(map[event.Key]event.Event)}
}

// Upsert writes events into the sink. Writing the same (summary, start) key
// twice overwrites every field of the stored event with the latest values
// (last-write-wins); upserting the same events slice twice is idempotent
// (spec §8 property 6).
func (s *Sink) Upsert(events ...event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range events {
		k := e.ID()
		if _, exists := s.events[k]; !exists {
			s.order = append(s.order, k)
		}
		s.events[k] = e
	}
}

// All returns every stored event, ascending by start time, ties broken by
// first-insertion order.
func (s *Sink) All() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]event.Event, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.events[k])
	}
	event.SortByStart(out)
	return out
}

// ActiveAt returns every event whose [Start, End] contains t. If
// requireCategory is non-empty, only events carrying that category are
// returned; events carrying any of excludeCategories are always dropped.
// Once the duration pairer (component G) has run and turned boundary
// events into real spans, this can answer the same "active at T" question
// package aspectgraph answers live during the minute-by-minute walk.
func (s *Sink) ActiveAt(t time.Time, requireCategory string, excludeCategories ...string) []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []event.Event
	for _, k := range s.order {
		e := s.events[k]
		if t.Before(e.Start) || e.End.Before(t) {
			continue
		}
		if requireCategory != "" && !e.HasCategory(requireCategory) {
			continue
		}
		excluded := false
		for _, c := range excludeCategories {
			if e.HasCategory(c) {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		out = append(out, e)
	}
	event.SortByStart(out)
	return out
}
