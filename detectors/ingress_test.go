package detectors

import (
	"testing"
	"time"

	"github.com/caelundas/caelundas/body"
	"github.com/caelundas/caelundas/ephemeris"
)

func TestSignIngress_FiresOnCrossingAndSetsSignCategory(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Minute)
	tMinus1 := start
	tCur := start.Add(time.Minute)

	p := newFakeProvider()
	p.set(body.Venus, tMinus1, ephemeris.Point{LongitudeDeg: 29.9})
	p.set(body.Venus, tCur, ephemeris.Point{LongitudeDeg: 30.1})

	acc := mustLoad(p, start, end, []body.Body{body.Venus})

	evs, err := SignIngress(acc, body.Venus, tCur)
	if err != nil {
		t.Fatalf("SignIngress error = %v", err)
	}
	if len(evs) != 1 {
		t.Fatalf("got %d events, want 1", len(evs))
	}
	e := evs[0]
	if !e.HasCategory("Taurus") {
		t.Errorf("expected Taurus category, got %v", e.Categories)
	}
	if !e.HasCategory("Sign Ingress") {
		t.Errorf("expected Sign Ingress category, got %v", e.Categories)
	}
}

func TestSignIngress_NoCrossingFiresNothing(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Minute)
	tMinus1 := start
	tCur := start.Add(time.Minute)

	p := newFakeProvider()
	p.set(body.Venus, tMinus1, ephemeris.Point{LongitudeDeg: 10.0})
	p.set(body.Venus, tCur, ephemeris.Point{LongitudeDeg: 10.5})

	acc := mustLoad(p, start, end, []body.Body{body.Venus})

	evs, err := SignIngress(acc, body.Venus, tCur)
	if err != nil {
		t.Fatalf("SignIngress error = %v", err)
	}
	if len(evs) != 0 {
		t.Errorf("got %d events, want 0", len(evs))
	}
}

func TestDecanIngress_FinerGranularityFiresMoreOften(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Minute)
	tMinus1 := start
	tCur := start.Add(time.Minute)

	p := newFakeProvider()
	p.set(body.Venus, tMinus1, ephemeris.Point{LongitudeDeg: 9.9})
	p.set(body.Venus, tCur, ephemeris.Point{LongitudeDeg: 10.1})

	acc := mustLoad(p, start, end, []body.Body{body.Venus})

	decanEvs, err := DecanIngress(acc, body.Venus, tCur)
	if err != nil {
		t.Fatalf("DecanIngress error = %v", err)
	}
	if len(decanEvs) != 1 {
		t.Fatalf("got %d decan events, want 1", len(decanEvs))
	}

	signEvs, err := SignIngress(acc, body.Venus, tCur)
	if err != nil {
		t.Fatalf("SignIngress error = %v", err)
	}
	if len(signEvs) != 0 {
		t.Errorf("crossing a decan boundary within the same sign should not fire a sign ingress, got %d", len(signEvs))
	}
}

func TestSignIngress_MissingPriorMinuteSkipsSilently(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(time.Minute)
	tCur := start

	p := newFakeProvider()
	p.set(body.Venus, tCur, ephemeris.Point{LongitudeDeg: 30.1})

	acc := mustLoad(p, start, end, []body.Body{body.Venus})

	evs, err := SignIngress(acc, body.Venus, tCur)
	if err != nil {
		t.Fatalf("expected nil error for missing T-1, got %v", err)
	}
	if len(evs) != 0 {
		t.Errorf("expected no events when T-1 is unavailable, got %d", len(evs))
	}
}
