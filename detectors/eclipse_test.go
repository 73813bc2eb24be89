package detectors

import (
	"testing"
	"time"

	"github.com/caelundas/caelundas/body"
	"github.com/caelundas/caelundas/ephemeris"
)

const testMoonDistanceAU = 384400.0 / auKm

func TestLunarEclipse_TotalWhenMoonOnAntisolarAxis(t *testing.T) {
	start := time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)
	tCur := start.Add(time.Minute)
	end := start.Add(2 * time.Minute)

	p := newFakeProvider()
	for i, off := range []float64{0.02, 0.0, 0.02} {
		ts := start.Add(time.Duration(i) * time.Minute)
		p.set(body.Sun, ts, ephemeris.Point{LongitudeDeg: 0, LatitudeDeg: 0, DistanceAU: 1.0})
		p.set(body.Moon, ts, ephemeris.Point{LongitudeDeg: 180 + off, LatitudeDeg: 0, DistanceAU: testMoonDistanceAU})
	}
	acc := mustLoad(p, start, end, []body.Body{body.Sun, body.Moon})

	evs, err := LunarEclipse(acc, tCur)
	if err != nil {
		t.Fatalf("LunarEclipse error = %v", err)
	}
	if len(evs) != 1 {
		t.Fatalf("got %d events, want 1", len(evs))
	}
	if !evs[0].HasCategory(Total) {
		t.Errorf("expected a Total lunar eclipse, got %+v", evs[0].Categories)
	}
}

func TestLunarEclipse_NoEventWhenMoonFarFromAntisolarAxis(t *testing.T) {
	start := time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)
	tCur := start.Add(time.Minute)
	end := start.Add(2 * time.Minute)

	p := newFakeProvider()
	for i := 0; i < 3; i++ {
		ts := start.Add(time.Duration(i) * time.Minute)
		p.set(body.Sun, ts, ephemeris.Point{LongitudeDeg: 0, LatitudeDeg: 0, DistanceAU: 1.0})
		p.set(body.Moon, ts, ephemeris.Point{LongitudeDeg: 90, LatitudeDeg: 5, DistanceAU: testMoonDistanceAU})
	}
	acc := mustLoad(p, start, end, []body.Body{body.Sun, body.Moon})

	evs, err := LunarEclipse(acc, tCur)
	if err != nil {
		t.Fatalf("LunarEclipse error = %v", err)
	}
	if len(evs) != 0 {
		t.Errorf("expected no eclipse far from full moon geometry, got %+v", evs)
	}
}

func TestSolarEclipse_TotalWhenAligned(t *testing.T) {
	start := time.Date(2024, 4, 8, 0, 0, 0, 0, time.UTC)
	tCur := start.Add(time.Minute)
	end := start.Add(2 * time.Minute)

	p := newFakeProvider()
	for i, off := range []float64{0.03, 0.0, 0.03} {
		ts := start.Add(time.Duration(i) * time.Minute)
		p.set(body.Sun, ts, ephemeris.Point{LongitudeDeg: 0, LatitudeDeg: 0, DistanceAU: 1.0, DiameterDeg: 0.53})
		p.set(body.Moon, ts, ephemeris.Point{LongitudeDeg: off, LatitudeDeg: 0, DistanceAU: testMoonDistanceAU, DiameterDeg: 0.56})
	}
	acc := mustLoad(p, start, end, []body.Body{body.Sun, body.Moon})

	evs, err := SolarEclipse(acc, tCur)
	if err != nil {
		t.Fatalf("SolarEclipse error = %v", err)
	}
	if len(evs) != 1 {
		t.Fatalf("got %d events, want 1", len(evs))
	}
	if !evs[0].HasCategory(Total) {
		t.Errorf("expected a Total solar eclipse, got %+v", evs[0].Categories)
	}
}

func TestSolarEclipse_NoEventAtNewMoonFarFromNode(t *testing.T) {
	start := time.Date(2024, 4, 8, 0, 0, 0, 0, time.UTC)
	tCur := start.Add(time.Minute)
	end := start.Add(2 * time.Minute)

	p := newFakeProvider()
	for i := 0; i < 3; i++ {
		ts := start.Add(time.Duration(i) * time.Minute)
		p.set(body.Sun, ts, ephemeris.Point{LongitudeDeg: 0, LatitudeDeg: 0, DistanceAU: 1.0, DiameterDeg: 0.53})
		p.set(body.Moon, ts, ephemeris.Point{LongitudeDeg: 1.0, LatitudeDeg: 4.0, DistanceAU: testMoonDistanceAU, DiameterDeg: 0.56})
	}
	acc := mustLoad(p, start, end, []body.Body{body.Sun, body.Moon})

	evs, err := SolarEclipse(acc, tCur)
	if err != nil {
		t.Fatalf("SolarEclipse error = %v", err)
	}
	if len(evs) != 0 {
		t.Errorf("expected no solar eclipse far from the node, got %+v", evs)
	}
}
