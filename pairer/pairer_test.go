package pairer

import (
	"testing"
	"time"

	"github.com/caelundas/caelundas/event"
)

func at(min int) time.Time {
	return time.Date(2024, 1, 1, 0, min, 0, 0, time.UTC)
}

func TestPair_FormingDissolvingProducesSpan(t *testing.T) {
	events := []event.Event{
		{Start: at(0), End: at(0), Summary: "Sun Trine Moon", Categories: []string{"Simple Aspect", "Trine", "Sun", "Moon", "Forming"}},
		{Start: at(10), End: at(10), Summary: "Sun Trine Moon", Categories: []string{"Simple Aspect", "Trine", "Sun", "Moon", "Dissolving"}},
	}
	result := Pair(events)
	if len(result.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", result.Warnings)
	}
	if len(result.Spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(result.Spans))
	}
	span := result.Spans[0]
	if !span.Start.Equal(at(0)) || !span.End.Equal(at(10)) {
		t.Errorf("span = [%s, %s], want [%s, %s]", span.Start, span.End, at(0), at(10))
	}
	if span.HasCategory("Forming") {
		t.Error("span should not retain the Forming tag")
	}
}

func TestPair_UnpairedFormingTailWarns(t *testing.T) {
	events := []event.Event{
		{Start: at(0), End: at(0), Summary: "X", Categories: []string{"Forming", "X"}},
	}
	result := Pair(events)
	if len(result.Spans) != 0 {
		t.Errorf("expected no spans, got %d", len(result.Spans))
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(result.Warnings))
	}
}

func TestPair_OutOfOrderDissolvingRepairs(t *testing.T) {
	events := []event.Event{
		{Start: at(5), End: at(5), Summary: "X", Categories: []string{"X", "Dissolving"}},
		{Start: at(10), End: at(10), Summary: "X", Categories: []string{"X", "Forming"}},
		{Start: at(20), End: at(20), Summary: "X", Categories: []string{"X", "Dissolving"}},
	}
	result := Pair(events)
	if len(result.Spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(result.Spans))
	}
	if !result.Spans[0].Start.Equal(at(10)) || !result.Spans[0].End.Equal(at(20)) {
		t.Errorf("span = [%s, %s], want [%s, %s]", result.Spans[0].Start, result.Spans[0].End, at(10), at(20))
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning for the dropped out-of-order dissolving, got %d", len(result.Warnings))
	}
}

func TestPair_LunarPhaseConsecutivePairing(t *testing.T) {
	events := []event.Event{
		{Start: at(0), End: at(0), Summary: "New Moon", Description: "d1", Categories: []string{"Monthly Lunar Cycle"}},
		{Start: at(30), End: at(30), Summary: "First Quarter", Description: "d2", Categories: []string{"Monthly Lunar Cycle"}},
		{Start: at(60), End: at(60), Summary: "Full Moon", Description: "d3", Categories: []string{"Monthly Lunar Cycle"}},
	}
	result := Pair(events)
	if len(result.Spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(result.Spans))
	}
	if result.Spans[0].Summary != "New Moon" || !result.Spans[0].End.Equal(at(30)) {
		t.Errorf("first span = %+v", result.Spans[0])
	}
}

func TestPair_ApsisAlternationTagsAdvancingAndRetreating(t *testing.T) {
	events := []event.Event{
		{Start: at(0), End: at(0), Summary: "Perihelion", Categories: []string{"Solar Apsis", "Perihelion"}},
		{Start: at(100), End: at(100), Summary: "Aphelion", Categories: []string{"Solar Apsis", "Aphelion"}},
		{Start: at(200), End: at(200), Summary: "Perihelion", Categories: []string{"Solar Apsis", "Perihelion"}},
	}
	result := Pair(events)
	if len(result.Spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(result.Spans))
	}
	if result.Spans[0].Summary != "Perihelion (Retreating)" {
		t.Errorf("first span summary = %q", result.Spans[0].Summary)
	}
	if result.Spans[1].Summary != "Aphelion (Advancing)" {
		t.Errorf("second span summary = %q", result.Spans[1].Summary)
	}
}

func TestPair_PassthroughEventsUnaffected(t *testing.T) {
	e := event.Event{Start: at(0), End: at(0), Summary: "Venus enters Gemini", Categories: []string{"Sign Ingress"}}
	result := Pair([]event.Event{e})
	if len(result.Spans) != 1 || result.Spans[0].Summary != e.Summary {
		t.Errorf("passthrough event not preserved: %+v", result.Spans)
	}
}
