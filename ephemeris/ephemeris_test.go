package ephemeris

import (
	"testing"
	"time"

	"github.com/caelundas/caelundas/body"
)

type fixtureProvider struct {
	data map[body.Body]map[time.Time]Point
}

func (f fixtureProvider) Ephemeris(loc Location, start, end time.Time, bodies []body.Body) (map[body.Body]map[time.Time]Point, error) {
	return f.data, nil
}

func TestAccessor_MarginWindow(t *testing.T) {
	base := time.Date(2024, 3, 20, 3, 0, 0, 0, time.UTC)
	data := map[body.Body]map[time.Time]Point{
		body.Sun: {
			base.Add(-Margin): {LongitudeDeg: 1},
			base:               {LongitudeDeg: 2},
			base.Add(Margin):   {LongitudeDeg: 3},
		},
	}
	acc, err := Load(fixtureProvider{data: data}, Location{}, base, base, []body.Body{body.Sun})
	if err != nil {
		t.Fatal(err)
	}
	if v, err := acc.Get(body.Sun, base.Add(-Margin), Longitude); err != nil || v != 1 {
		t.Errorf("margin-start lookup: got %v, err %v", v, err)
	}
	if v, err := acc.Get(body.Sun, base.Add(Margin), Longitude); err != nil || v != 3 {
		t.Errorf("margin-end lookup: got %v, err %v", v, err)
	}
}

func TestAccessor_GapIsFatal(t *testing.T) {
	base := time.Date(2024, 3, 20, 3, 0, 0, 0, time.UTC)
	acc, err := Load(fixtureProvider{data: map[body.Body]map[time.Time]Point{}}, Location{}, base, base, []body.Body{body.Sun})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := acc.Get(body.Sun, base, Longitude); err == nil {
		t.Error("expected a GapError for a missing minute")
	} else if _, ok := err.(*GapError); !ok {
		t.Errorf("expected *GapError, got %T", err)
	}
}

func TestMinutes_HalfOpenRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Minute)
	got := Minutes(start, end)
	if len(got) != 3 {
		t.Fatalf("expected 3 minutes, got %d", len(got))
	}
	if got[0] != start || got[2] != start.Add(2*time.Minute) {
		t.Errorf("unexpected minute sequence: %v", got)
	}
}
