// Package pattern is the compound pattern composer (component F): given the
// aspect graph's active edges at minute T, it finds t-squares, yods, grand
// trines, grand crosses, kites, pentagrams, hexagrams, and stelliums, and
// classifies each as forming or dissolving.
package pattern

import (
	"fmt"
	"sort"
	"time"

	"github.com/caelundas/caelundas/angular"
	"github.com/caelundas/caelundas/aspect"
	"github.com/caelundas/caelundas/aspectgraph"
	"github.com/caelundas/caelundas/body"
	"github.com/caelundas/caelundas/ephemeris"
	"github.com/caelundas/caelundas/event"
)

// presenceOrbDeg is the flat orb used for the three-snapshot
// forming/dissolving presence check at the pattern level, independent of
// the aspect family's own configured orb used to build the candidate edge
// set. The source hard-codes this regardless of which aspect kinds make up
// the pattern (spec §9 open question); preserved here rather than
// "corrected" to each kind's own orb, with both tolerances left visible and
// configurable so a mismatch between candidate discovery and presence
// classification can be observed and tested rather than silently hidden.
const presenceOrbDeg = 8.0

// Instance is one compound pattern found at a minute.
type Instance struct {
	Kind   string
	Bodies []body.Body // canonical order, smallest-Body first
	Focal  *body.Body  // nil if the pattern has no distinguished focal/apex body
	Phase  aspect.Phase
}

// Compose runs the composer for one minute T against the aspect graph's
// currently active edges (spec §4.F). acc must cover T-1..T+1 for every
// body referenced by active, since structured-pattern phase classification
// recomputes presence directly from raw longitudes at the neighboring
// minutes rather than from the graph.
func Compose(acc *ephemeris.Accessor, active []aspectgraph.Edge, t time.Time) ([]event.Event, error) {
	byKind := groupByKind(active)

	var out []event.Event
	add := func(evs []event.Event, err error) error {
		if err != nil {
			return err
		}
		out = append(out, evs...)
		return nil
	}

	if err := add(composeTSquares(acc, byKind, t)); err != nil {
		return nil, err
	}
	if err := add(composeYods(acc, byKind, t)); err != nil {
		return nil, err
	}
	trines := findTriangles(byKind[aspect.Trine.Name])
	if err := add(composeGrandTrines(acc, trines, t)); err != nil {
		return nil, err
	}
	if err := add(composeGrandCrosses(acc, byKind, t)); err != nil {
		return nil, err
	}
	if err := add(composeKites(acc, byKind, trines, t)); err != nil {
		return nil, err
	}
	if err := add(composePentagrams(acc, byKind, t)); err != nil {
		return nil, err
	}
	if err := add(composeHexagrams(acc, byKind, t)); err != nil {
		return nil, err
	}
	if err := add(composeStelliums(acc, byKind[aspect.Conjunct.Name], t)); err != nil {
		return nil, err
	}

	return out, nil
}

func groupByKind(edges []aspectgraph.Edge) map[string][]aspectgraph.Edge {
	m := make(map[string][]aspectgraph.Edge)
	for _, e := range edges {
		m[e.Kind.Name] = append(m[e.Kind.Name], e)
	}
	return m
}

func hasEdge(edges []aspectgraph.Edge, a, b body.Body) bool {
	lo, hi, _ := body.Canonicalize(a, b)
	for _, e := range edges {
		if e.Body1 == lo && e.Body2 == hi {
			return true
		}
	}
	return false
}

// candidateBodies lists the distinct bodies appearing in a set of edges.
func candidateBodies(edges []aspectgraph.Edge) []body.Body {
	seen := make(map[body.Body]bool)
	var out []body.Body
	for _, e := range edges {
		if !seen[e.Body1] {
			seen[e.Body1] = true
			out = append(out, e.Body1)
		}
		if !seen[e.Body2] {
			seen[e.Body2] = true
			out = append(out, e.Body2)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// angleAt returns the angular separation between a and b at t, using
// whichever ecliptic longitudes the accessor has.
func angleAt(acc *ephemeris.Accessor, a, b body.Body, t time.Time) (float64, error) {
	la, err := acc.Get(a, t, ephemeris.Longitude)
	if err != nil {
		return 0, err
	}
	lb, err := acc.Get(b, t, ephemeris.Longitude)
	if err != nil {
		return 0, err
	}
	return angular.Angle(la, lb), nil
}

func inPresenceOrb(acc *ephemeris.Accessor, a, b body.Body, targetDeg float64, t time.Time) (bool, error) {
	ang, err := angleAt(acc, a, b, t)
	if err != nil {
		return false, err
	}
	d := ang - targetDeg
	if d < 0 {
		d = -d
	}
	return d <= presenceOrbDeg, nil
}

// classifyPresence applies the structured-pattern forming/dissolving rule
// (spec §4.F): present(T) is required; present(T) with the predicate false
// at T-1 is forming, false at T+1 is dissolving. present is re-evaluated
// independently at each of the three minutes using the flat presence orb.
func classifyPresence(present func(t time.Time) (bool, error), t time.Time) (aspect.Phase, error) {
	cur, err := present(t)
	if err != nil {
		return aspect.None, err
	}
	if !cur {
		return aspect.None, nil
	}
	prev, err := present(t.Add(-time.Minute))
	if err != nil {
		return aspect.None, nil // boundary minute, neither side decidable
	}
	next, err := present(t.Add(time.Minute))
	if err != nil {
		return aspect.None, nil
	}
	switch {
	case !prev:
		return aspect.Forming, nil
	case !next:
		return aspect.Dissolving, nil
	default:
		return aspect.None, nil
	}
}

func sortedBodies(bs ...body.Body) []body.Body {
	out := append([]body.Body{}, bs...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func composeTSquares(acc *ephemeris.Accessor, byKind map[string][]aspectgraph.Edge, t time.Time) ([]event.Event, error) {
	var out []event.Event
	squares := byKind[aspect.Square.Name]
	for _, opp := range byKind[aspect.Opposite.Name] {
		a, b := opp.Body1, opp.Body2
		for _, c := range candidateBodies(squares) {
			if c == a || c == b {
				continue
			}
			if !hasEdge(squares, a, c) || !hasEdge(squares, b, c) {
				continue
			}
			present := func(t2 time.Time) (bool, error) {
				okOpp, err := inPresenceOrb(acc, a, b, aspect.Opposite.TargetDeg, t2)
				if err != nil || !okOpp {
					return false, err
				}
				okSq1, err := inPresenceOrb(acc, a, c, aspect.Square.TargetDeg, t2)
				if err != nil || !okSq1 {
					return false, err
				}
				return inPresenceOrb(acc, b, c, aspect.Square.TargetDeg, t2)
			}
			phase, err := classifyPresence(present, t)
			if err != nil {
				return nil, err
			}
			if phase == aspect.None {
				continue
			}
			focal := c
			out = append(out, patternEvent(t, "T-Square", sortedBodies(a, b, c), &focal, phase))
		}
	}
	return out, nil
}

func composeYods(acc *ephemeris.Accessor, byKind map[string][]aspectgraph.Edge, t time.Time) ([]event.Event, error) {
	var out []event.Event
	quincunxes := byKind[aspect.Quincunx.Name]
	for _, sex := range byKind[aspect.Sextile.Name] {
		a, b := sex.Body1, sex.Body2
		for _, c := range candidateBodies(quincunxes) {
			if c == a || c == b {
				continue
			}
			if !hasEdge(quincunxes, a, c) || !hasEdge(quincunxes, b, c) {
				continue
			}
			apex := c
			present := func(t2 time.Time) (bool, error) {
				okSex, err := inPresenceOrb(acc, a, b, aspect.Sextile.TargetDeg, t2)
				if err != nil || !okSex {
					return false, err
				}
				okQ1, err := inPresenceOrb(acc, a, apex, aspect.Quincunx.TargetDeg, t2)
				if err != nil || !okQ1 {
					return false, err
				}
				return inPresenceOrb(acc, b, apex, aspect.Quincunx.TargetDeg, t2)
			}
			phase, err := classifyPresence(present, t)
			if err != nil {
				return nil, err
			}
			if phase == aspect.None {
				continue
			}
			out = append(out, patternEvent(t, "Yod", sortedBodies(a, b, apex), &apex, phase))
		}
	}
	return out, nil
}

// triangle is three mutually trine bodies.
type triangle struct{ A, B, C body.Body }

func findTriangles(trineEdges []aspectgraph.Edge) []triangle {
	var out []triangle
	bodies := candidateBodies(trineEdges)
	combos := angular.Combinations(bodies, 3)
	for _, combo := range combos {
		a, b, c := combo[0], combo[1], combo[2]
		if hasEdge(trineEdges, a, b) && hasEdge(trineEdges, b, c) && hasEdge(trineEdges, a, c) {
			out = append(out, triangle{a, b, c})
		}
	}
	return out
}

func composeGrandTrines(acc *ephemeris.Accessor, triangles []triangle, t time.Time) ([]event.Event, error) {
	var out []event.Event
	for _, tr := range triangles {
		present := func(t2 time.Time) (bool, error) {
			for _, pair := range [][2]body.Body{{tr.A, tr.B}, {tr.B, tr.C}, {tr.A, tr.C}} {
				ok, err := inPresenceOrb(acc, pair[0], pair[1], aspect.Trine.TargetDeg, t2)
				if err != nil || !ok {
					return false, err
				}
			}
			return true, nil
		}
		phase, err := classifyPresence(present, t)
		if err != nil {
			return nil, err
		}
		if phase == aspect.None {
			continue
		}
		out = append(out, patternEvent(t, "Grand Trine", sortedBodies(tr.A, tr.B, tr.C), nil, phase))
	}
	return out, nil
}

func composeGrandCrosses(acc *ephemeris.Accessor, byKind map[string][]aspectgraph.Edge, t time.Time) ([]event.Event, error) {
	var out []event.Event
	oppositions := byKind[aspect.Opposite.Name]
	squares := byKind[aspect.Square.Name]
	for i := 0; i < len(oppositions); i++ {
		for j := i + 1; j < len(oppositions); j++ {
			o1, o2 := oppositions[i], oppositions[j]
			a, b, c, d := o1.Body1, o1.Body2, o2.Body1, o2.Body2
			if a == c || a == d || b == c || b == d {
				continue // need four distinct bodies
			}
			if !hasEdge(squares, a, c) || !hasEdge(squares, a, d) || !hasEdge(squares, b, c) || !hasEdge(squares, b, d) {
				continue
			}
			present := func(t2 time.Time) (bool, error) {
				pairs := [][2]body.Body{{a, b}, {c, d}}
				for _, pair := range pairs {
					ok, err := inPresenceOrb(acc, pair[0], pair[1], aspect.Opposite.TargetDeg, t2)
					if err != nil || !ok {
						return false, err
					}
				}
				squarePairs := [][2]body.Body{{a, c}, {a, d}, {b, c}, {b, d}}
				for _, pair := range squarePairs {
					ok, err := inPresenceOrb(acc, pair[0], pair[1], aspect.Square.TargetDeg, t2)
					if err != nil || !ok {
						return false, err
					}
				}
				return true, nil
			}
			phase, err := classifyPresence(present, t)
			if err != nil {
				return nil, err
			}
			if phase == aspect.None {
				continue
			}
			out = append(out, patternEvent(t, "Grand Cross", sortedBodies(a, b, c, d), nil, phase))
		}
	}
	return out, nil
}

func composeKites(acc *ephemeris.Accessor, byKind map[string][]aspectgraph.Edge, triangles []triangle, t time.Time) ([]event.Event, error) {
	var out []event.Event
	oppositions := byKind[aspect.Opposite.Name]
	sextiles := byKind[aspect.Sextile.Name]
	for _, tr := range triangles {
		for _, base := range []body.Body{tr.A, tr.B, tr.C} {
			others := otherTwo(tr, base)
			for _, opp := range oppositions {
				var d body.Body
				switch {
				case opp.Body1 == base:
					d = opp.Body2
				case opp.Body2 == base:
					d = opp.Body1
				default:
					continue
				}
				if d == tr.A || d == tr.B || d == tr.C {
					continue
				}
				if !hasEdge(sextiles, d, others[0]) || !hasEdge(sextiles, d, others[1]) {
					continue
				}
				apex := d
				present := func(t2 time.Time) (bool, error) {
					for _, pair := range [][2]body.Body{{tr.A, tr.B}, {tr.B, tr.C}, {tr.A, tr.C}} {
						ok, err := inPresenceOrb(acc, pair[0], pair[1], aspect.Trine.TargetDeg, t2)
						if err != nil || !ok {
							return false, err
						}
					}
					ok, err := inPresenceOrb(acc, base, apex, aspect.Opposite.TargetDeg, t2)
					if err != nil || !ok {
						return false, err
					}
					ok, err = inPresenceOrb(acc, apex, others[0], aspect.Sextile.TargetDeg, t2)
					if err != nil || !ok {
						return false, err
					}
					return inPresenceOrb(acc, apex, others[1], aspect.Sextile.TargetDeg, t2)
				}
				phase, err := classifyPresence(present, t)
				if err != nil {
					return nil, err
				}
				if phase == aspect.None {
					continue
				}
				out = append(out, patternEvent(t, "Kite", sortedBodies(tr.A, tr.B, tr.C, apex), &apex, phase))
			}
		}
	}
	return out, nil
}

func otherTwo(tr triangle, base body.Body) [2]body.Body {
	all := []body.Body{tr.A, tr.B, tr.C}
	var rest [2]body.Body
	i := 0
	for _, b := range all {
		if b == base {
			continue
		}
		rest[i] = b
		i++
	}
	return rest
}

// composePentagrams finds 5-body subsets where all 10 pairs are quintile or
// biquintile (spec §4.F). Candidates are drawn only from bodies that
// already appear in at least one quintile/biquintile edge, bounding the
// combinatorial search per the spec's pre-filter guidance.
func composePentagrams(acc *ephemeris.Accessor, byKind map[string][]aspectgraph.Edge, t time.Time) ([]event.Event, error) {
	edges := append(append([]aspectgraph.Edge{}, byKind[aspect.Quintile.Name]...), byKind[aspect.Biquintile.Name]...)
	bodies := candidateBodies(edges)
	if len(bodies) < 5 {
		return nil, nil
	}
	var out []event.Event
	for _, combo := range angular.Combinations(bodies, 5) {
		ok := true
		for i := 0; i < len(combo) && ok; i++ {
			for j := i + 1; j < len(combo) && ok; j++ {
				if !hasEdge(edges, combo[i], combo[j]) {
					ok = false
				}
			}
		}
		if !ok {
			continue
		}
		present := func(t2 time.Time) (bool, error) {
			for i := 0; i < len(combo); i++ {
				for j := i + 1; j < len(combo); j++ {
					ang, err := angleAt(acc, combo[i], combo[j], t2)
					if err != nil {
						return false, err
					}
					if !closeToEither(ang, aspect.Quintile.TargetDeg, aspect.Biquintile.TargetDeg, presenceOrbDeg) {
						return false, nil
					}
				}
			}
			return true, nil
		}
		phase, err := classifyPresence(present, t)
		if err != nil {
			return nil, err
		}
		if phase == aspect.None {
			continue
		}
		out = append(out, patternEvent(t, "Pentagram", sortedBodies(combo...), nil, phase))
	}
	return out, nil
}

func closeToEither(angle, target1, target2, orb float64) bool {
	d1 := angle - target1
	if d1 < 0 {
		d1 = -d1
	}
	d2 := angle - target2
	if d2 < 0 {
		d2 = -d2
	}
	return d1 <= orb || d2 <= orb
}

// composeHexagrams finds 6-body subsets forming the canonical hexagram:
// three interlocking oppositions, six trines, six sextiles (spec §4.F).
// Candidates are bodies appearing in an opposition edge, since every
// hexagram vertex participates in exactly one opposition.
func composeHexagrams(acc *ephemeris.Accessor, byKind map[string][]aspectgraph.Edge, t time.Time) ([]event.Event, error) {
	oppositions := byKind[aspect.Opposite.Name]
	trines := byKind[aspect.Trine.Name]
	sextiles := byKind[aspect.Sextile.Name]
	bodies := candidateBodies(oppositions)
	if len(bodies) < 6 {
		return nil, nil
	}
	var out []event.Event
	for _, combo := range angular.Combinations(bodies, 6) {
		oppCount := 0
		for i := 0; i < len(combo); i++ {
			for j := i + 1; j < len(combo); j++ {
				a, b := combo[i], combo[j]
				switch {
				case hasEdge(oppositions, a, b):
					oppCount++
				case hasEdge(trines, a, b):
				case hasEdge(sextiles, a, b):
				default:
					oppCount = -1
				}
			}
			if oppCount < 0 {
				break
			}
		}
		if oppCount != 3 {
			continue
		}
		combo := combo
		present := func(t2 time.Time) (bool, error) {
			for i := 0; i < len(combo); i++ {
				for j := i + 1; j < len(combo); j++ {
					a, b := combo[i], combo[j]
					ang, err := angleAt(acc, a, b, t2)
					if err != nil {
						return false, err
					}
					var target float64
					switch {
					case hasEdge(oppositions, a, b):
						target = aspect.Opposite.TargetDeg
					case hasEdge(trines, a, b):
						target = aspect.Trine.TargetDeg
					default:
						target = aspect.Sextile.TargetDeg
					}
					d := ang - target
					if d < 0 {
						d = -d
					}
					if d > presenceOrbDeg {
						return false, nil
					}
				}
			}
			return true, nil
		}
		phase, err := classifyPresence(present, t)
		if err != nil {
			return nil, err
		}
		if phase == aspect.None {
			continue
		}
		out = append(out, patternEvent(t, "Hexagram", sortedBodies(combo...), nil, phase))
	}
	return out, nil
}

// composeStelliums finds maximal cliques of size >= 3 in the conjunction
// subgraph (spec §4.F): bodies are grouped into connected components first
// (cheap), then each component's subsets are clique-checked, bounding work
// to components actually containing conjunctions this minute.
func composeStelliums(acc *ephemeris.Accessor, conjunctions []aspectgraph.Edge, t time.Time) ([]event.Event, error) {
	components := connectedComponents(conjunctions)
	var out []event.Event
	for _, comp := range components {
		if len(comp) < 3 {
			continue
		}
		cliques := maximalCliques(comp, conjunctions)
		for _, clique := range cliques {
			if len(clique) < 3 {
				continue
			}
			clique := clique
			present := func(t2 time.Time) (bool, error) {
				for i := 0; i < len(clique); i++ {
					for j := i + 1; j < len(clique); j++ {
						ok, err := inPresenceOrb(acc, clique[i], clique[j], aspect.Conjunct.TargetDeg, t2)
						if err != nil || !ok {
							return false, err
						}
					}
				}
				return true, nil
			}
			phase, err := classifyPresence(present, t)
			if err != nil {
				return nil, err
			}
			if phase == aspect.None {
				continue
			}
			bodies := sortedBodies(clique...)
			out = append(out, stelliumEvent(t, bodies, phase))
		}
	}
	return out, nil
}

func connectedComponents(edges []aspectgraph.Edge) [][]body.Body {
	parent := make(map[body.Body]body.Body)
	var find func(body.Body) body.Body
	find = func(x body.Body) body.Body {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b body.Body) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}
	for _, e := range edges {
		if _, ok := parent[e.Body1]; !ok {
			parent[e.Body1] = e.Body1
		}
		if _, ok := parent[e.Body2]; !ok {
			parent[e.Body2] = e.Body2
		}
		union(e.Body1, e.Body2)
	}
	groups := make(map[body.Body][]body.Body)
	for b := range parent {
		r := find(b)
		groups[r] = append(groups[r], b)
	}
	var out [][]body.Body
	for _, g := range groups {
		out = append(out, g)
	}
	return out
}

// maximalCliques brute-forces cliques within one small connected component
// (the conjunction subgraph's components are expected to be tiny: a
// stellium of the full 19-body set would already be astronomically
// improbable). It returns only maximal cliques, not every sub-clique.
func maximalCliques(comp []body.Body, edges []aspectgraph.Edge) [][]body.Body {
	var all []body.Body
	all = append(all, comp...)
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })

	var cliques [][]body.Body
	for k := len(all); k >= 3; k-- {
		for _, combo := range angular.Combinations(all, k) {
			if isClique(combo, edges) && !subsetOfAny(combo, cliques) {
				cliques = append(cliques, combo)
			}
		}
	}
	return cliques
}

func isClique(bodies []body.Body, edges []aspectgraph.Edge) bool {
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if !hasEdge(edges, bodies[i], bodies[j]) {
				return false
			}
		}
	}
	return true
}

func subsetOfAny(bodies []body.Body, cliques [][]body.Body) bool {
	for _, c := range cliques {
		if len(c) <= len(bodies) {
			continue
		}
		contains := true
		for _, b := range bodies {
			found := false
			for _, cb := range c {
				if cb == b {
					found = true
					break
				}
			}
			if !found {
				contains = false
				break
			}
		}
		if contains {
			return true
		}
	}
	return false
}

func patternEvent(t time.Time, kind string, bodies []body.Body, focal *body.Body, phase aspect.Phase) event.Event {
	glyphs := ""
	names := ""
	for i, b := range bodies {
		glyphs += b.Symbol()
		if i > 0 {
			names += ", "
		}
		names += b.String()
	}
	categories := []string{"Astronomy", "Astrology", "Compound Aspect", arityTag(len(bodies)), kind, phase.String()}
	for _, b := range bodies {
		categories = append(categories, b.String())
	}
	if focal != nil {
		categories = append(categories, focal.String()+" Focal")
	}
	return event.Event{
		Start:       t,
		End:         t,
		Summary:     fmt.Sprintf("%s %s %s (%s)", phaseEmoji(phase), glyphs, kind, phase),
		Description: fmt.Sprintf("%s among %s.", kind, names),
		Categories:  categories,
	}
}

func stelliumEvent(t time.Time, bodies []body.Body, phase aspect.Phase) event.Event {
	glyphs := ""
	names := ""
	for i, b := range bodies {
		glyphs += b.Symbol()
		if i > 0 {
			names += ", "
		}
		names += b.String()
	}
	categories := []string{"Astronomy", "Astrology", "Compound Aspect", arityTag(len(bodies)), "Stellium", phase.String()}
	for _, b := range bodies {
		categories = append(categories, b.String())
	}
	return event.Event{
		Start:       t,
		End:         t,
		Summary:     fmt.Sprintf("%s %s Stellium (%s)", phaseEmoji(phase), glyphs, phase),
		Description: fmt.Sprintf("Stellium among %s.", names),
		Categories:  categories,
	}
}

func arityTag(n int) string {
	return fmt.Sprintf("%d Body", n)
}

func phaseEmoji(p aspect.Phase) string {
	if p == aspect.Forming {
		return "🔺"
	}
	return "🔻"
}
