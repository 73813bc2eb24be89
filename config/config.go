// Package config reads the environment-variable-driven run configuration
// spec §6 describes. The teacher's own examples/*/main.go programs are
// hand-wired main functions with no flag or config library (see
// SPEC_FULL.md §4.L), so this loader matches that idiom: plain os.Getenv
// calls, fatal at startup on anything malformed (spec §7).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/caelundas/caelundas/ephemeris"
)

// dateLayout is the expected format for START_DATE/END_DATE: a bare
// calendar date, interpreted at midnight in the run's timezone.
const dateLayout = "2006-01-02"

// RunConfig is the parsed configuration for one end-to-end run.
type RunConfig struct {
	Location  ephemeris.Location
	Start     time.Time // UTC
	End       time.Time // UTC, exclusive
	OutputDir string
}

// Load reads LATITUDE, LONGITUDE, TIMEZONE, START_DATE, END_DATE, and the
// optional OUTPUT_DIR from the environment. Any missing required variable
// or malformed value is returned as an error; the caller (cmd/caelundas)
// treats this as a fatal startup error per spec §7.
func Load() (RunConfig, error) {
	lat, err := requiredFloat("LATITUDE")
	if err != nil {
		return RunConfig{}, err
	}
	if lat < -90 || lat > 90 {
		return RunConfig{}, fmt.Errorf("config: LATITUDE %f out of range [-90,90]", lat)
	}

	lon, err := requiredFloat("LONGITUDE")
	if err != nil {
		return RunConfig{}, err
	}
	if lon < -180 || lon > 180 {
		return RunConfig{}, fmt.Errorf("config: LONGITUDE %f out of range [-180,180]", lon)
	}

	tz := os.Getenv("TIMEZONE")
	if tz == "" {
		return RunConfig{}, fmt.Errorf("config: TIMEZONE is required")
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return RunConfig{}, fmt.Errorf("config: TIMEZONE %q is not a known IANA zone: %w", tz, err)
	}

	startStr := os.Getenv("START_DATE")
	if startStr == "" {
		return RunConfig{}, fmt.Errorf("config: START_DATE is required")
	}
	start, err := time.ParseInLocation(dateLayout, startStr, loc)
	if err != nil {
		return RunConfig{}, fmt.Errorf("config: START_DATE %q is malformed: %w", startStr, err)
	}

	endStr := os.Getenv("END_DATE")
	if endStr == "" {
		return RunConfig{}, fmt.Errorf("config: END_DATE is required")
	}
	end, err := time.ParseInLocation(dateLayout, endStr, loc)
	if err != nil {
		return RunConfig{}, fmt.Errorf("config: END_DATE %q is malformed: %w", endStr, err)
	}
	if !end.After(start) {
		return RunConfig{}, fmt.Errorf("config: END_DATE %q must be after START_DATE %q", endStr, startStr)
	}

	outDir := os.Getenv("OUTPUT_DIR")
	if outDir == "" {
		outDir = "."
	}

	return RunConfig{
		Location: ephemeris.Location{
			LatitudeDeg:  lat,
			LongitudeDeg: lon,
			TimeZone:     tz,
		},
		Start:     start.UTC(),
		End:       end.UTC(),
		OutputDir: outDir,
	}, nil
}

func requiredFloat(name string) (float64, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, fmt.Errorf("config: %s is required", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s %q is not a number: %w", name, raw, err)
	}
	return v, nil
}

// ICSFileName returns the combined-calendar output file name spec §6 names:
// caelundas_<start>-<end>.ics.
func (c RunConfig) ICSFileName() string {
	return fmt.Sprintf("caelundas_%s-%s.ics", c.Start.Format(dateLayout), c.End.Format(dateLayout))
}
