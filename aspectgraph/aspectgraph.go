// Package aspectgraph is the aspect graph store (component E): it ingests
// pairwise-aspect detections minute by minute and answers "which aspect
// edges are currently active", the input to the compound pattern composer.
//
// Pairwise-aspect events are instantaneous (forming/exact/dissolving fire
// only at transition minutes), so "active at T" cannot be answered by a
// literal [start,end] span query against those point events alone. The
// graph instead tracks, per (body pair, family) key, the open interval
// between a forming (or an exact with no preceding forming, e.g. at the
// start of a run) and the matching dissolving, extending it forward each
// minute classification keeps the pair in orb. This mirrors the sink's
// span-query contract (spec §4.E) without requiring the duration pairer
// (§4.G) to have already run.
package aspectgraph

import (
	"sync"
	"time"

	"github.com/caelundas/caelundas/aspect"
	"github.com/caelundas/caelundas/body"
)

// Key identifies one tracked edge: a canonicalized body pair within one
// aspect family. A pair can be simultaneously tracked under more than one
// family (e.g. Sun-Moon could in principle carry both a Major and a
// Specialty edge), so Family is part of the key.
type Key struct {
	Body1, Body2 body.Body
	Family       aspect.Family
}

// Edge is one currently (or, immediately after a dissolving, just-closed)
// active pairwise aspect.
type Edge struct {
	Key
	Kind  aspect.Kind
	Start time.Time
	End   time.Time
}

// Graph tracks open aspect edges. Its methods serialize on an internal
// mutex; in practice the single-threaded driver loop owns it (spec §5).
type Graph struct {
	mu   sync.Mutex
	open map[Key]Edge
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{open: make(map[Key]Edge)}
}

// Observe folds one minute's pairwise-aspect detection into the graph. Call
// it immediately after aspect.DetectPair for every minute that either fires
// a detection or finds the pair out of orb for every kind in the family;
// a "no detection" (phase None) closes any edge that was open for that
// key. The driver skips minutes where the pair stays in orb without a
// transition, so an open edge persists across them.
func (g *Graph) Observe(family aspect.Family, a, b body.Body, t time.Time, d aspect.Detection, detected bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	lo, hi, _ := body.Canonicalize(a, b)
	key := Key{Body1: lo, Body2: hi, Family: family}

	if !detected {
		delete(g.open, key)
		return
	}

	switch d.Phase {
	case aspect.Forming:
		g.open[key] = Edge{Key: key, Kind: d.Kind, Start: t, End: t}
	case aspect.Exact:
		e, ok := g.open[key]
		if !ok {
			e = Edge{Key: key, Kind: d.Kind, Start: t}
		}
		e.End = t
		g.open[key] = e
	case aspect.Dissolving:
		// Still in orb at T (only T+1 leaves it), so the edge stays open
		// through this minute's ActiveAt query; the next minute's
		// now-out-of-orb (None) observation is what closes it.
		e, ok := g.open[key]
		if !ok {
			e = Edge{Key: key, Kind: d.Kind, Start: t}
		}
		e.End = t
		g.open[key] = e
	default:
		delete(g.open, key)
	}
}

// ActiveAt returns every edge currently open. Call it immediately after the
// minute's Observe calls for T complete, per the driver loop's ordering
// (spec §4.I): the returned edges are exactly E_T, the candidate set the
// compound pattern composer groups by aspect kind.
func (g *Graph) ActiveAt(t time.Time) []Edge {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]Edge, 0, len(g.open))
	for _, e := range g.open {
		out = append(out, e)
	}
	return out
}
