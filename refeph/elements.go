// Package refeph is a reference (not flight-grade) ephemeris.Provider: a
// self-contained, dependency-free position backend built from the
// low-precision formulas in Meeus's Astronomical Algorithms and the
// teacher's own kepler.Orbit propagator, so the rest of the module has
// something concrete to run against without a binary ephemeris kernel.
//
// It deliberately trades precision for having no external data file: every
// body's position is a short trigonometric series (Moon), a mean-elements
// polynomial (the lunar node and apogee points), or a kepler.Orbit seeded
// with approximate mean elements (everything else; the Sun is the negated
// heliocentric position of Earth's orbit).
// Good to within a few arcminutes near the elements' epoch, drifting slowly
// thereafter — fine for a minute-resolution event detector, not for mission
// navigation.
package refeph

import "github.com/caelundas/caelundas/kepler"

// j2000JD is the TDB Julian date of the J2000.0 epoch, the reference epoch
// every element set below is quoted at.
const j2000JD = 2451545.0

// auKm is the IAU astronomical unit in km.
const auKm = 149597870.7

// planetElements holds the low-precision mean orbital elements (Standish
// 1992 / Meeus Table 31.a) for the eight major planets, referred to the
// mean ecliptic and equinox of J2000, each with its own linear secular
// rate per Julian century. kepler.Orbit wants a single epoch's elements,
// so elementsAt evaluates the linear terms at the requested time and feeds
// kepler.Orbit the result.
type planetElements struct {
	aAU, aDot       float64 // semi-major axis, AU and AU/century
	e, eDot         float64 // eccentricity
	iDeg, iDot      float64 // inclination, deg and deg/century
	lonDeg, lonDot  float64 // mean longitude L, deg and deg/century
	periDeg, periD  float64 // longitude of perihelion (varpi), deg and deg/century
	nodeDeg, nodeD  float64 // longitude of ascending node, deg and deg/century
}

var meanElements = map[string]planetElements{
	"Mercury": {0.38709927, 0.00000037, 0.20563593, 0.00001906, 7.00497902, -0.00594749, 252.25032350, 149472.67411175, 77.45779628, 0.16047689, 48.33076593, -0.12534081},
	"Venus":   {0.72333566, 0.00000390, 0.00677672, -0.00004107, 3.39467605, -0.00078890, 181.97909950, 58517.81538729, 131.60246718, 0.00268329, 76.67984255, -0.27769418},
	"Earth":   {1.00000261, 0.00000562, 0.01671123, -0.00004392, -0.00001531, -0.01294668, 100.46457166, 35999.37244981, 102.93768193, 0.32327364, 0.0, 0.0},
	"Mars":    {1.52371034, 0.00001847, 0.09339410, 0.00007882, 1.84969142, -0.00813131, -4.55343205, 19140.30268499, -23.94362959, 0.44441088, 49.55953891, -0.29257343},
	"Jupiter": {5.20288700, -0.00011607, 0.04838624, -0.00013253, 1.30439695, -0.00183714, 34.39644051, 3034.74612775, 14.72847983, 0.21252668, 100.47390909, 0.20469106},
	"Saturn":  {9.53667594, -0.00125060, 0.05386179, -0.00050991, 2.48599187, 0.00193609, 49.95424423, 1222.49362201, 92.59887831, -0.41897216, 113.66242448, -0.28867794},
	"Uranus":  {19.18916464, -0.00196176, 0.04725744, -0.00004397, 0.77263783, -0.00242939, 313.23810451, 428.48202785, 170.95427630, 0.40805281, 74.01692503, 0.04240589},
	"Neptune": {30.06992276, 0.00026291, 0.00859048, 0.00005105, 1.77004347, 0.00035372, -55.12002969, 218.45945325, 44.96476227, -0.32241464, 131.78422574, -0.00508664},
	"Pluto":   {39.48211675, -0.00031596, 0.24882730, 0.00005170, 17.14001206, 0.00004818, 238.92903833, 145.20780515, 224.06891629, -0.04062942, 110.30393684, -0.01183482},
}

// minorBodyElements holds fixed (non-secular) osculating elements for the
// five numbered asteroids, Chiron, and Halley, each quoted at its own
// epoch (JPL Small-Body Database, epoch rounded to the nearest standard
// osculation date near 2023). Accuracy degrades the further tdbJD strays
// from Epoch, same caveat as any two-body propagation of a perturbed orbit.
type minorElements struct {
	epochJD                          float64
	aAU, e, iDeg, nodeDeg, argDeg, maDeg float64
}

var fixedElements = map[string]minorElements{
	"Ceres":  {2460000.5, 2.7666, 0.0785, 10.594, 80.30, 73.60, 130.93},
	"Pallas": {2460000.5, 2.7721, 0.2302, 34.832, 172.90, 310.05, 95.93},
	"Juno":   {2460000.5, 2.6685, 0.2562, 12.992, 169.85, 248.14, 300.57},
	"Vesta":  {2460000.5, 2.3617, 0.0889, 7.154, 103.81, 151.66, 85.58},
	"Chiron": {2460000.5, 13.6367, 0.3816, 6.9291, 209.29, 339.49, 123.06},
	"Halley": {2439907.5, 17.9435, 0.9671, 162.26, 58.42, 111.33, 0}, // periapsis time used instead of MA; see halleyOrbit
	// 1181 Lilith, the numbered minor planet that lends the body its name;
	// not to be confused with body.Apogee, the mean-lunar-apogee point
	// ("Black Moon Lilith") computed in nodes.go from lunar theory instead
	// of orbital elements.
	"Lilith": {2460000.5, 2.7614, 0.1161, 5.875, 344.78, 180.25, 170.00},
}

// halleyPeriapsisJD is Halley's most recent perihelion passage (1986-02-09
// TDB); kepler.Orbit propagates comets from periapsis time rather than a
// mean anomaly at epoch, since their mean motion over centuries is poorly
// represented by a linear element.
const halleyPeriapsisJD = 2446470.5

// body.Apogee (the mean lunar apogee point) is not a physical body with
// orbital elements of its own; see nodes.go for its longitude formula
// instead. It has no entry here.

// orbitFor builds a kepler.Orbit for a named planet or minor body at its
// canonical reference epoch/elements.
func orbitFor(name string) kepler.Orbit {
	if el, ok := fixedElements[name]; ok {
		o := kepler.Orbit{
			SemiMajorAxisAU: el.aAU,
			Eccentricity:    el.e,
			InclinationDeg:  el.iDeg,
			LongAscNodeDeg:  el.nodeDeg,
			ArgPeriapsisDeg: el.argDeg,
			MeanAnomalyDeg:  el.maDeg,
			EpochJD:         el.epochJD,
		}
		if name == "Halley" {
			o.PeriapsisTimeJD = halleyPeriapsisJD
		}
		return o
	}
	panic("refeph: no fixed elements for " + name)
}

// planetOrbitAt evaluates the secular planetary elements at tdbJD and
// returns a kepler.Orbit configured with mean anomaly (not periapsis time,
// since these bodies' mean motion is fast and well represented linearly).
func planetOrbitAt(name string, tdbJD float64) kepler.Orbit {
	el := meanElements[name]
	T := (tdbJD - j2000JD) / 36525.0

	a := el.aAU + el.aDot*T
	e := el.e + el.eDot*T
	i := el.iDeg + el.iDot*T
	lon := el.lonDeg + el.lonDot*T
	peri := el.periDeg + el.periD*T
	node := el.nodeDeg + el.nodeD*T

	argPeri := peri - node
	meanAnomaly := lon - peri

	return kepler.Orbit{
		SemiMajorAxisAU: a,
		Eccentricity:    e,
		InclinationDeg:  i,
		LongAscNodeDeg:  node,
		ArgPeriapsisDeg: argPeri,
		MeanAnomalyDeg:  meanAnomaly,
		EpochJD:         tdbJD,
	}
}
