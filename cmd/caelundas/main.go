// Command caelundas runs the full minute-by-minute detection sweep over
// [START_DATE, END_DATE) at the configured location and writes the
// combined iCalendar output plus one per-category intermediate file into
// OUTPUT_DIR, per spec.md §6.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caelundas/caelundas/config"
	"github.com/caelundas/caelundas/driver"
	"github.com/caelundas/caelundas/event"
	"github.com/caelundas/caelundas/ical"
	"github.com/caelundas/caelundas/refeph"
	"github.com/rs/zerolog"
)

// zerologAdapter satisfies driver.Logger through zerolog's fluent builder,
// the way a caller narrows a wide logging library down to the small
// interface a package actually needs.
type zerologAdapter struct {
	log zerolog.Logger
}

func (z zerologAdapter) Warn(msg string, args ...any) {
	ev := z.log.Warn()
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", args[i])
		}
		ev = ev.Interface(key, args[i+1])
	}
	ev.Msg(msg)
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("caelundas: configuration error")
		os.Exit(1)
	}

	s, err := driver.Run(refeph.Provider{}, cfg.Location, cfg.Start, cfg.End, zerologAdapter{log: log})
	if err != nil {
		log.Error().Err(err).Msg("caelundas: run failed")
		os.Exit(1)
	}

	events := ical.SortedForOutput(s.All())

	if err := writeCombinedCalendar(events, cfg); err != nil {
		log.Error().Err(err).Msg("caelundas: writing combined calendar")
		os.Exit(1)
	}
	if err := writeCategoryFiles(events, cfg.OutputDir); err != nil {
		log.Error().Err(err).Msg("caelundas: writing per-category files")
		os.Exit(1)
	}

	log.Info().Int("events", len(events)).Msg("caelundas: run complete")
}

func writeCombinedCalendar(events []event.Event, cfg config.RunConfig) error {
	doc := ical.Serialize(events, ical.Config{
		CalName:     "caelundas",
		CalDesc:     fmt.Sprintf("Astrological events, %s to %s", cfg.Start.Format("2006-01-02"), cfg.End.Format("2006-01-02")),
		Location:    cfg.Location,
		GeneratedAt: cfg.Start,
	})
	path := filepath.Join(cfg.OutputDir, cfg.ICSFileName())
	return os.WriteFile(path, []byte(doc), 0o644)
}

// genericCategories are the blanket tags every event carries ("Astronomy",
// and "Astrology" on top of that for the astrology-specific detectors);
// neither names a detector family on its own, so splitFamilyCategory skips
// past both to find the tag that actually distinguishes one detector's
// output from another's.
var genericCategories = map[string]bool{"Astronomy": true, "Astrology": true}

// splitFamilyCategory returns the first category tag that isn't one of the
// blanket tags every event carries, e.g. "Simple Aspect", "Ingress",
// "Solar Apsis", or "Eclipse". Detectors don't agree on which index that
// tag lands at (apsis and eclipse events put it right after "Astronomy";
// most others also carry "Astrology" first), so this walks the list
// instead of assuming a fixed position.
func splitFamilyCategory(categories []string) (string, bool) {
	for _, c := range categories {
		if !genericCategories[c] {
			return c, true
		}
	}
	return "", false
}

// writeCategoryFiles splits events by detector family (the category tag
// that actually distinguishes e.g. ingresses from retrograde stations, not
// the blanket "Astronomy"/"Astrology" tags every event shares) into one
// CSV file per family, the per-category intermediate output spec.md §6
// names alongside the combined .ics. encoding/csv is stdlib: no
// CSV-writing library appears anywhere in the retrieved corpus, and the
// format here (start, end, summary, description, categories) is too plain to warrant
// pulling one in.
func writeCategoryFiles(events []event.Event, outputDir string) error {
	byCategory := make(map[string][]event.Event)
	for _, e := range events {
		family, ok := splitFamilyCategory(e.Categories)
		if !ok {
			continue
		}
		byCategory[family] = append(byCategory[family], e)
	}

	for category, evs := range byCategory {
		path := filepath.Join(outputDir, fmt.Sprintf("caelundas_%s.csv", sanitizeFileName(category)))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("main: creating %s: %w", path, err)
		}

		w := csv.NewWriter(f)
		if err := w.Write([]string{"start", "end", "summary", "description", "categories"}); err != nil {
			f.Close()
			return err
		}
		for _, e := range evs {
			record := []string{
				e.Start.Format("2006-01-02T15:04:05Z"),
				e.End.Format("2006-01-02T15:04:05Z"),
				e.Summary,
				e.Description,
				strings.Join(e.Categories, "|"),
			}
			if err := w.Write(record); err != nil {
				f.Close()
				return err
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

func sanitizeFileName(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	var b strings.Builder
	for _, r := range s {
		if r == '_' || r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
