package detectors

import (
	"testing"
	"time"

	"github.com/caelundas/caelundas/body"
	"github.com/caelundas/caelundas/ephemeris"
)

func TestMonthlyLunarPhase_FirstQuarterOnUpwardCrossing(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Minute)
	tMinus1, tCur := start, start.Add(time.Minute)

	p := newFakeProvider()
	p.set(body.Moon, tMinus1, ephemeris.Point{IlluminationFrac: 0.49})
	p.set(body.Moon, tCur, ephemeris.Point{IlluminationFrac: 0.51})

	acc := mustLoad(p, start, end, []body.Body{body.Moon})

	evs, err := MonthlyLunarPhase(acc, tCur)
	if err != nil {
		t.Fatalf("MonthlyLunarPhase error = %v", err)
	}
	found := false
	for _, e := range evs {
		if e.HasCategory("First Quarter") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a First Quarter event, got %+v", evs)
	}
}

func TestMonthlyLunarPhase_LastQuarterOnDownwardCrossing(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Minute)
	tMinus1, tCur := start, start.Add(time.Minute)

	p := newFakeProvider()
	p.set(body.Moon, tMinus1, ephemeris.Point{IlluminationFrac: 0.51})
	p.set(body.Moon, tCur, ephemeris.Point{IlluminationFrac: 0.49})

	acc := mustLoad(p, start, end, []body.Body{body.Moon})

	evs, err := MonthlyLunarPhase(acc, tCur)
	if err != nil {
		t.Fatalf("MonthlyLunarPhase error = %v", err)
	}
	found := false
	for _, e := range evs {
		if e.HasCategory("Last Quarter") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a Last Quarter event, got %+v", evs)
	}
}

func TestMonthlyLunarPhase_NewMoonOnStrictWindowMinimum(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	center := start.Add(40 * time.Minute)
	end := start.Add(80 * time.Minute)

	p := newFakeProvider()
	for m := -windowMinutes; m <= windowMinutes; m++ {
		v := 0.01 + 0.001*float64(abs(m)) // strict minimum at center, symmetric rise outward
		p.set(body.Moon, center.Add(time.Duration(m)*time.Minute), ephemeris.Point{IlluminationFrac: v})
	}
	acc := mustLoad(p, start, end, []body.Body{body.Moon})

	evs, err := MonthlyLunarPhase(acc, center)
	if err != nil {
		t.Fatalf("MonthlyLunarPhase error = %v", err)
	}
	found := false
	for _, e := range evs {
		if e.HasCategory("New") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a New Moon event at the strict window minimum, got %+v", evs)
	}
}

func TestMonthlyLunarPhase_FlatWindowFiresNothing(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	center := start.Add(40 * time.Minute)
	end := start.Add(80 * time.Minute)

	p := newFakeProvider()
	for m := -windowMinutes; m <= windowMinutes; m++ {
		p.set(body.Moon, center.Add(time.Duration(m)*time.Minute), ephemeris.Point{IlluminationFrac: 0.5})
	}
	acc := mustLoad(p, start, end, []body.Body{body.Moon})

	evs, err := MonthlyLunarPhase(acc, center)
	if err != nil {
		t.Fatalf("MonthlyLunarPhase error = %v", err)
	}
	if len(evs) != 0 {
		t.Errorf("a flat illumination window should fire nothing, got %+v", evs)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
