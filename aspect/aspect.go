// Package aspect defines the named angle classes bodies can form (major,
// minor, specialty), their orbs, and the pairwise-aspect detector
// (component D): for every body pair and every minute, classify which
// aspect (if any) is in orb and whether it is forming, exact, or
// dissolving.
package aspect

import (
	"fmt"

	"github.com/caelundas/caelundas/angular"
	"github.com/caelundas/caelundas/body"
)

// Family groups aspects that are evaluated against the same body set and
// that never overlap within a minute for a given pair (spec §4.D: "at most
// one aspect from a given family fires per pair per minute").
type Family int

const (
	Major Family = iota
	Minor
	Specialty
)

func (f Family) String() string {
	switch f {
	case Major:
		return "Major Aspect"
	case Minor:
		return "Minor Aspect"
	case Specialty:
		return "Specialty Aspect"
	default:
		return "Aspect"
	}
}

// Kind is a named angle class, e.g. Square, Trine, Quintile.
type Kind struct {
	Name      string
	TargetDeg float64
	OrbDeg    float64
	Family    Family
}

// Canonical aspect kinds, targets, and orbs (spec §3).
var (
	Conjunct = Kind{Name: "conjunct", TargetDeg: 0, OrbDeg: 8, Family: Major}
	Sextile  = Kind{Name: "sextile", TargetDeg: 60, OrbDeg: 6, Family: Major}
	Square   = Kind{Name: "square", TargetDeg: 90, OrbDeg: 8, Family: Major}
	Trine    = Kind{Name: "trine", TargetDeg: 120, OrbDeg: 8, Family: Major}
	Opposite = Kind{Name: "opposite", TargetDeg: 180, OrbDeg: 8, Family: Major}

	Semisextile   = Kind{Name: "semisextile", TargetDeg: 30, OrbDeg: 3, Family: Minor}
	Semisquare    = Kind{Name: "semisquare", TargetDeg: 45, OrbDeg: 3, Family: Minor}
	Sesquiquadrate = Kind{Name: "sesquiquadrate", TargetDeg: 135, OrbDeg: 3, Family: Minor}
	Quincunx      = Kind{Name: "quincunx", TargetDeg: 150, OrbDeg: 3, Family: Minor}

	Quintile   = Kind{Name: "quintile", TargetDeg: 72, OrbDeg: 2, Family: Specialty}
	Biquintile = Kind{Name: "biquintile", TargetDeg: 144, OrbDeg: 2, Family: Specialty}
	Septile    = Kind{Name: "septile", TargetDeg: 360.0 / 7.0, OrbDeg: 1, Family: Specialty}
	Novile     = Kind{Name: "novile", TargetDeg: 40, OrbDeg: 1, Family: Specialty}
	Decile     = Kind{Name: "decile", TargetDeg: 36, OrbDeg: 1, Family: Specialty}
	Undecile   = Kind{Name: "undecile", TargetDeg: 360.0 / 11.0, OrbDeg: 1, Family: Specialty}
	Tredecile  = Kind{Name: "tredecile", TargetDeg: 108, OrbDeg: 1, Family: Specialty}
)

// MajorKinds, MinorKinds, and SpecialtyKinds are the aspects evaluated for
// each family. Target aspects within a family are assumed non-overlapping
// in their orb bands under these orb choices (spec §4.D.4).
var (
	MajorKinds     = []Kind{Conjunct, Sextile, Square, Trine, Opposite}
	MinorKinds     = []Kind{Semisextile, Semisquare, Sesquiquadrate, Quincunx}
	SpecialtyKinds = []Kind{Quintile, Biquintile, Septile, Novile, Decile, Undecile, Tredecile}
)

func kindsFor(f Family) []Kind {
	switch f {
	case Major:
		return MajorKinds
	case Minor:
		return MinorKinds
	case Specialty:
		return SpecialtyKinds
	default:
		return nil
	}
}

func bodiesFor(f Family) []body.Body {
	if f == Major {
		return body.MajorAspectBodies
	}
	return body.MinorAspectBodies
}

// InOrb reports whether separation angle is within the kind's orb.
func (k Kind) InOrb(angle float64) bool {
	return absf(angle-k.TargetDeg) <= k.OrbDeg
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Phase is the three-way classification of where in its orb window an
// aspect (or, in the pattern package, a compound pattern) currently sits.
type Phase int

const (
	None Phase = iota
	Forming
	Exact
	Dissolving
)

func (p Phase) String() string {
	switch p {
	case Forming:
		return "Forming"
	case Exact:
		return "Exact"
	case Dissolving:
		return "Dissolving"
	default:
		return "None"
	}
}

// Sample is the three-point window a pairwise-aspect detection is
// classified from.
type Sample struct {
	Prev, Cur, Next float64 // separation angle in degrees, at T-1, T, T+1
}

// Classify implements spec §4.D.3's three-point phase classifier, applied
// uniformly: it is also reused by the compound-pattern composer (as a
// predicate over "does the pattern hold" rather than "is the angle in
// orb") and is the single function the design notes ask for in place of
// three implicit booleans.
func Classify(k Kind, s Sample) Phase {
	inPrev := k.InOrb(s.Prev)
	inCur := k.InOrb(s.Cur)
	inNext := k.InOrb(s.Next)

	if !inCur {
		return None
	}

	dPrev := absf(s.Prev - k.TargetDeg)
	dCur := absf(s.Cur - k.TargetDeg)
	dNext := absf(s.Next - k.TargetDeg)

	if dCur <= dPrev && dCur <= dNext && dCur < dPrev && dCur < dNext {
		return Exact
	}
	if inCur && !inPrev {
		return Forming
	}
	if inCur && !inNext {
		return Dissolving
	}
	return None
}

// Detection is one pairwise-aspect classification result.
type Detection struct {
	Body1, Body2 body.Body // canonicalized, Body1 < Body2
	Kind         Kind
	Phase        Phase
}

// LongitudePair holds the ecliptic longitudes of both bodies of a pair at
// one minute.
type LongitudePair struct {
	A, B float64
}

// DetectPair runs every kind in family against the three-minute angle
// samples for a pair and returns at most one Detection (spec §4.D.4: "at
// most one aspect from a given family fires per pair per minute").
//
// prev/cur/next are the pair's longitudes at T-1, T, T+1. Missing values
// are the caller's responsibility to have already turned into a skip
// (spec §4.D: "missing ephemeris values at T±1 are fatal to this minute's
// detection for the affected pair").
func DetectPair(family Family, a, b body.Body, prev, cur, next LongitudePair) (Detection, bool) {
	lo, hi, _ := body.Canonicalize(a, b)

	sample := Sample{
		Prev: angular.Angle(prev.A, prev.B),
		Cur:  angular.Angle(cur.A, cur.B),
		Next: angular.Angle(next.A, next.B),
	}

	for _, k := range kindsFor(family) {
		if phase := Classify(k, sample); phase != None {
			return Detection{Body1: lo, Body2: hi, Kind: k, Phase: phase}, true
		}
	}
	return Detection{}, false
}

// Families returns every aspect family, in the order the driver tests them;
// the driver pairs each with its own body list via BodiesForFamily (spec
// §4.D: "families may have different body lists").
func Families() []Family { return []Family{Major, Minor, Specialty} }

// BodiesForFamily exposes bodiesFor for the driver's pair-enumeration loop.
func BodiesForFamily(f Family) []body.Body { return bodiesFor(f) }

// Summary renders a pairwise-aspect detection's event summary, e.g.
// "♀ Venus square Mars (Forming)".
func (d Detection) Summary() string {
	return fmt.Sprintf("%s %s %s %s (%s)", d.Body1.Symbol(), d.Body1, d.Kind.Name, d.Body2, d.Phase)
}
