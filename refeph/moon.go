package refeph

import "math"

const (
	moonRadiusKm   = 1737.4
	moonMeanDistKm = 385000.56
)

// moonFundamentalArgs returns the five fundamental lunar arguments (Meeus
// ch. 47) in degrees for the given TDB Julian date: L' (mean longitude), D
// (mean elongation from the Sun), M (Sun's mean anomaly), M' (Moon's mean
// anomaly), and F (Moon's argument of latitude).
func moonFundamentalArgs(tdbJD float64) (lp, d, m, mp, f float64) {
	T := (tdbJD - j2000JD) / 36525.0
	lp = 218.3164477 + 481267.88123421*T - 0.0015786*T*T + T*T*T/538841.0
	d = 297.8501921 + 445267.1114034*T - 0.0018819*T*T + T*T*T/545868.0
	m = 357.5291092 + 35999.0502909*T - 0.0001536*T*T + T*T*T/24490000.0
	mp = 134.9633964 + 477198.8675055*T + 0.0087414*T*T + T*T*T/69699.0
	f = 93.2720950 + 483202.0175233*T - 0.0036539*T*T - T*T*T/3526000.0
	return
}

// moonLonLatDistKm evaluates the abridged Meeus ch. 47 periodic series
// (the 10, 5, and 8 largest-amplitude terms respectively) for the Moon's
// geocentric ecliptic longitude, latitude, and distance. Good to roughly
// an arcminute in longitude/latitude and tens of km in distance near the
// present era, degrading slowly outside it.
func moonLonLatDistKm(tdbJD float64) (lonDeg, latDeg, distKm float64) {
	lp, d, m, mp, f := moonFundamentalArgs(tdbJD)
	r := math.Pi / 180.0
	sd, sm, smp, sf := d*r, m*r, mp*r, f*r

	sumL := 6.288774*math.Sin(smp) +
		1.274027*math.Sin(2*sd-smp) +
		0.658314*math.Sin(2*sd) +
		0.213618*math.Sin(2*smp) -
		0.185116*math.Sin(sm) -
		0.114332*math.Sin(2*sf) +
		0.058793*math.Sin(2*sd-2*smp) +
		0.057066*math.Sin(2*sd-sm-smp) +
		0.053322*math.Sin(2*sd+smp) +
		0.045758*math.Sin(2*sd-sm)

	sumB := 5.128122*math.Sin(sf) +
		0.280602*math.Sin(smp+sf) +
		0.277693*math.Sin(smp-sf) +
		0.173237*math.Sin(2*sd-sf) +
		0.055413*math.Sin(2*sd+sf-smp)

	sumR := -20905.355*math.Cos(smp) -
		3699.111*math.Cos(2*sd-smp) -
		2955.968*math.Cos(2*sd) -
		569.925*math.Cos(2*smp) +
		246.158*math.Cos(2*sd-2*smp) -
		204.586*math.Cos(sm-smp) -
		170.733*math.Cos(2*sd+smp) -
		152.138*math.Cos(2*sd+sm-smp)

	lonDeg = normalizeDeg(lp + sumL)
	latDeg = sumB
	distKm = moonMeanDistKm + sumR
	return
}

// moonPoint computes the Moon's geocentric ecliptic longitude, latitude,
// distance (converted to AU to match the Point contract), apparent
// diameter, and illuminated fraction at tdbJD.
func moonPoint(tdbJD float64) (lonDeg, latDeg, distanceAU, diamDeg, illum float64) {
	lon, lat, distKm := moonLonLatDistKm(tdbJD)
	sunLon, sunLat, _, _ := sunPoint(tdbJD)

	lonDeg, latDeg = lon, lat
	distanceAU = distKm / auKm
	diamDeg = diameterDeg(moonRadiusKm, distKm)

	elongation := angularSepDeg(sunLon, sunLat, lon, lat)
	illum = (1.0 - math.Cos(elongation*math.Pi/180.0)) / 2.0
	return
}
