// Package timescale converts between civil UTC time and the Julian date
// scales the orbit propagator and topocentric transform need: TT
// (Terrestrial Time, uniform, what Kepler's equation is solved in) and UT1
// (Earth-rotation time, what GAST needs).
package timescale

import (
	"math"
	"time"
)

const (
	// SecPerDay is the number of seconds in a day, used throughout this
	// package to convert second-valued offsets into JD-valued ones.
	SecPerDay = 86400.0

	j2000JD = 2451545.0
	// ttMinusTAISec is the fixed historical offset between TT and TAI.
	ttMinusTAISec = 32.184
)

// leapSecondEntry is one (effective JD, TAI-UTC seconds) row of the IERS
// leap second table. Only post-1972 entries are listed; UTC did not exist
// in its current form before then.
type leapSecondEntry struct {
	jd     float64
	offset float64
}

var leapSeconds = []leapSecondEntry{
	{2441317.5, 10}, // 1972-01-01
	{2441499.5, 11}, // 1972-07-01
	{2441683.5, 12}, // 1973-01-01
	{2442048.5, 13}, // 1974-01-01
	{2442413.5, 14}, // 1975-01-01
	{2442778.5, 15}, // 1976-01-01
	{2443144.5, 16}, // 1977-01-01
	{2443509.5, 17}, // 1978-01-01
	{2443874.5, 18}, // 1979-01-01
	{2444239.5, 19}, // 1980-01-01
	{2444786.5, 20}, // 1981-07-01
	{2445151.5, 21}, // 1982-07-01
	{2445516.5, 22}, // 1983-07-01
	{2446247.5, 23}, // 1985-07-01
	{2447161.5, 24}, // 1988-01-01
	{2447892.5, 25}, // 1990-01-01
	{2448257.5, 26}, // 1991-01-01
	{2448804.5, 27}, // 1992-07-01
	{2449169.5, 28}, // 1993-07-01
	{2449534.5, 29}, // 1994-07-01
	{2450083.5, 30}, // 1996-01-01
	{2450630.5, 31}, // 1997-07-01
	{2451179.5, 32}, // 1999-01-01
	{2453736.5, 33}, // 2006-01-01
	{2454832.5, 34}, // 2009-01-01
	{2456109.5, 35}, // 2012-07-01
	{2457204.5, 36}, // 2015-07-01
	{2457754.5, 37}, // 2017-01-01
}

// LeapSecondOffset returns TAI-UTC in seconds at the given UTC Julian date.
// Dates before the table's first entry return the first entry's offset;
// dates after the last return the last (no leap second has been announced
// past it).
func LeapSecondOffset(jdUTC float64) float64 {
	if jdUTC < leapSeconds[0].jd {
		return leapSeconds[0].offset
	}
	offset := leapSeconds[0].offset
	for _, e := range leapSeconds {
		if jdUTC < e.jd {
			break
		}
		offset = e.offset
	}
	return offset
}

// deltaTEntry is one (year, ΔT seconds) row of the historical/predicted
// ΔT = TT - UT1 table (Espenak & Meeus polynomial fits, tabulated).
type deltaTEntry struct {
	year float64
	dt   float64
}

var deltaTTable = []deltaTEntry{
	{1800, 13.3600}, {1800, 18.3670}, {1850, 7.6200}, {1900, -2.7900},
	{1950, 29.0700}, {1955, 31.1000}, {1960, 33.1500}, {1965, 35.7300},
	{1970, 40.1800}, {1975, 45.4800}, {1980, 50.5400}, {1985, 54.3400},
	{1990, 56.8600}, {1995, 60.7800}, {2000, 63.8290}, {2005, 64.6900},
	{2010, 66.0700}, {2015, 68.1000}, {2020, 69.3600}, {2100, 93.0000},
	{2200, 180.0000},
}

// DeltaT interpolates ΔT = TT - UT1 in seconds for a decimal year,
// clamping to the table's first/last entry outside its range.
func DeltaT(year float64) float64 {
	n := len(deltaTTable)
	if year <= deltaTTable[0].year {
		return deltaTTable[0].dt
	}
	if year >= deltaTTable[n-1].year {
		return deltaTTable[n-1].dt
	}
	idx := 0
	for idx < n-1 && deltaTTable[idx+1].year <= year {
		idx++
	}
	if idx >= n-1 {
		idx = n - 2
	}
	lo, hi := deltaTTable[idx], deltaTTable[idx+1]
	if hi.year == lo.year {
		return lo.dt
	}
	frac := (year - lo.year) / (hi.year - lo.year)
	return lo.dt + frac*(hi.dt-lo.dt)
}

// TimeToJDUTC converts a civil time.Time (any location) to a UTC Julian
// date.
func TimeToJDUTC(t time.Time) float64 {
	u := t.UTC()
	days := float64(u.Unix()) / SecPerDay
	days += float64(u.Nanosecond()) / (SecPerDay * 1e9)
	return 2440587.5 + days
}

// UTCToTT converts a UTC Julian date to TT: TT = UTC + (TAI-UTC) + 32.184s.
func UTCToTT(jdUTC float64) float64 {
	offsetSec := LeapSecondOffset(jdUTC) + ttMinusTAISec
	return jdUTC + offsetSec/SecPerDay
}

// TTToUT1 converts a TT Julian date to UT1 using the ΔT table.
func TTToUT1(jdTT float64) float64 {
	year := 2000.0 + (jdTT-j2000JD)/365.25
	return jdTT - DeltaT(year)/SecPerDay
}

// TDBMinusTT returns TDB-TT in seconds, a periodic term with ~1.7ms
// amplitude driven by Earth's orbital eccentricity (Fairhead & Bretagnon
// approximation, truncated to its dominant term).
func TDBMinusTT(jdTT float64) float64 {
	T := (jdTT - j2000JD) / 36525.0
	g := (357.53 + 35999.05*T) * math.Pi / 180.0
	return 0.001658*math.Sin(g) + 0.000014*math.Sin(2*g)
}
