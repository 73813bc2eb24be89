// Package angular provides the numeric primitives every detector in this
// repository is built on: shortest-arc angular separation, three-point
// extremum and threshold-crossing tests on noisy per-minute samples, and
// lexicographic k-combinations for the compound-pattern composer.
//
// These are deliberately simple, discrete-sample primitives rather than the
// continuous-function extrema search the teacher package they are adapted
// from (goeph's search package) performed: the driver already samples the
// ephemeris once per minute, so detectors only ever need a three-point
// (previous/current/next) window, never a golden-section refinement.
package angular

// Angle returns the shortest arc between two ecliptic longitudes a and b,
// in [0, 180]. This is the angular-separation invariant every aspect
// membership test is built on: |ShortestArc(α) - target| <= orb.
func Angle(a, b float64) float64 {
	d := a - b
	for d < 0 {
		d += 360
	}
	for d >= 360 {
		d -= 360
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}

// IsMaximum reports whether cur is a strict local maximum of the three-point
// window (prev, cur, nxt).
//
// The comparison is deliberately asymmetric: cur must be strictly greater
// than prev, but only greater-or-equal to nxt. This breaks ties on a flat
// plateau in favor of the first minute of the plateau and prevents the same
// plateau from re-triggering the detector on every subsequent minute.
func IsMaximum(prev, cur, nxt float64) bool {
	return cur > prev && cur >= nxt
}

// IsMinimum reports whether cur is a strict local minimum of the three-point
// window, with the same plateau tie-break as IsMaximum.
func IsMinimum(prev, cur, nxt float64) bool {
	return cur < prev && cur <= nxt
}

// ThresholdCrossingUp reports whether the signal crossed thr upward between
// prev and cur: prev was strictly below thr and cur is at or above it.
func ThresholdCrossingUp(thr, prev, cur float64) bool {
	return prev < thr && cur >= thr
}

// ThresholdCrossingDown reports whether the signal crossed thr downward
// between prev and cur: prev was strictly above thr and cur is at or below
// it.
func ThresholdCrossingDown(thr, prev, cur float64) bool {
	return prev > thr && cur <= thr
}

// WrapCrossingDown detects the 360°→0° ecliptic-longitude wrap: prev was in
// the upper half of the circle and cur has wrapped into the lower half.
// This is the rule the vernal-equinox/Aries-ingress class of detectors uses
// in place of a plain threshold crossing, since the "threshold" for those
// detectors sits exactly at the 0°/360° discontinuity.
func WrapCrossingDown(prev, cur float64) bool {
	return cur < 180 && prev > 180
}

// Combinations returns every k-subset of s, in lexicographic order of
// index. Used by the compound-pattern composer to enumerate candidate
// body tuples (bounded by small anchor-and-grow searches, never a bare
// C(19,6) sweep — see the pattern package).
func Combinations[T any](s []T, k int) [][]T {
	n := len(s)
	if k < 0 || k > n {
		return nil
	}
	if k == 0 {
		return [][]T{{}}
	}

	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	var out [][]T
	for {
		combo := make([]T, k)
		for i, j := range idx {
			combo[i] = s[j]
		}
		out = append(out, combo)

		// Advance idx to the next lexicographic combination.
		i := k - 1
		for i >= 0 && idx[i] == i+n-k {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
	return out
}
