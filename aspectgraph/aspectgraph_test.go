package aspectgraph

import (
	"testing"
	"time"

	"github.com/caelundas/caelundas/aspect"
	"github.com/caelundas/caelundas/body"
)

func at(min int) time.Time {
	return time.Date(2024, 1, 1, 0, min, 0, 0, time.UTC)
}

func TestObserve_FormingOpensEdgeUntilNoneCloses(t *testing.T) {
	g := New()
	d := aspect.Detection{Kind: aspect.Trine, Phase: aspect.Forming}
	g.Observe(aspect.Major, body.Sun, body.Moon, at(0), d, true)

	active := g.ActiveAt(at(0))
	if len(active) != 1 {
		t.Fatalf("got %d active edges, want 1", len(active))
	}
	if active[0].Kind != aspect.Trine {
		t.Errorf("active edge kind = %v, want Trine", active[0].Kind)
	}

	g.Observe(aspect.Major, body.Sun, body.Moon, at(1), aspect.Detection{}, false)
	if len(g.ActiveAt(at(1))) != 0 {
		t.Error("edge should close once a non-detection is observed")
	}
}

func TestObserve_ExactAndDissolvingKeepEdgeOpen(t *testing.T) {
	g := New()
	g.Observe(aspect.Major, body.Sun, body.Moon, at(0), aspect.Detection{Kind: aspect.Square, Phase: aspect.Forming}, true)
	g.Observe(aspect.Major, body.Sun, body.Moon, at(1), aspect.Detection{Kind: aspect.Square, Phase: aspect.Exact}, true)
	g.Observe(aspect.Major, body.Sun, body.Moon, at(2), aspect.Detection{Kind: aspect.Square, Phase: aspect.Dissolving}, true)

	active := g.ActiveAt(at(2))
	if len(active) != 1 {
		t.Fatalf("got %d active edges, want 1", len(active))
	}
	if !active[0].Start.Equal(at(0)) {
		t.Errorf("edge Start = %s, want %s", active[0].Start, at(0))
	}
	if !active[0].End.Equal(at(2)) {
		t.Errorf("edge End = %s, want %s", active[0].End, at(2))
	}
}

func TestObserve_KeyIsOrderIndependent(t *testing.T) {
	g := New()
	g.Observe(aspect.Major, body.Moon, body.Sun, at(0), aspect.Detection{Kind: aspect.Trine, Phase: aspect.Forming}, true)
	g.Observe(aspect.Major, body.Sun, body.Moon, at(1), aspect.Detection{}, false)

	if len(g.ActiveAt(at(1))) != 0 {
		t.Error("observing the reversed pair should close the same canonicalized edge")
	}
}

func TestObserve_DistinctFamiliesTrackedIndependently(t *testing.T) {
	g := New()
	g.Observe(aspect.Major, body.Sun, body.Moon, at(0), aspect.Detection{Kind: aspect.Trine, Phase: aspect.Forming}, true)
	g.Observe(aspect.Minor, body.Sun, body.Moon, at(0), aspect.Detection{Kind: aspect.Quincunx, Phase: aspect.Forming}, true)

	active := g.ActiveAt(at(0))
	if len(active) != 2 {
		t.Fatalf("got %d active edges, want 2 (one per family)", len(active))
	}
}
