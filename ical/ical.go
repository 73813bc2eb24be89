// Package ical serializes a flat event stream into an RFC 5545 VCALENDAR
// document (spec §6). No iCalendar library appears anywhere in the
// retrieved corpus, and the wire format this spec demands — a literal,
// non-hashed UID built from (summary, description, start, end), bare
// YYYYMMDDTHHmmss timestamps, and a VTIMEZONE block with exact DST RRULEs
// for exactly one zone — is precise enough that hand-writing it directly
// against the RFC is safer than guessing at a generic library's defaults.
package ical

import (
	"fmt"
	"strings"
	"time"

	"github.com/caelundas/caelundas/ephemeris"
	"github.com/caelundas/caelundas/event"
)

const timestampLayout = "20060102T150405"

// Config carries the calendar-level metadata spec §6 asks for.
type Config struct {
	CalName     string
	CalDesc     string // optional, empty omits X-WR-CALDESC
	Location    ephemeris.Location
	GeneratedAt time.Time // stamped onto DTSTAMP/CREATED/LAST-MODIFIED
}

// Serialize renders events (already sorted by the caller, per spec §5) as
// a complete VCALENDAR document.
func Serialize(events []event.Event, cfg Config) string {
	var b strings.Builder
	w := &lineWriter{b: &b}

	w.prop("BEGIN", "VCALENDAR")
	w.prop("VERSION", "2.0")
	w.prop("PRODID", "-//caelundas//astrological event engine//EN")
	w.prop("CALSCALE", "GREGORIAN")
	w.prop("METHOD", "PUBLISH")
	w.prop("X-WR-CALNAME", cfg.CalName)
	if cfg.CalDesc != "" {
		w.prop("X-WR-CALDESC", cfg.CalDesc)
	}
	if cfg.Location.TimeZone != "" {
		w.prop("X-WR-TIMEZONE", cfg.Location.TimeZone)
		writeVTimezone(w, cfg.Location.TimeZone)
	}

	loc := time.UTC
	if cfg.Location.TimeZone != "" {
		if l, err := time.LoadLocation(cfg.Location.TimeZone); err == nil {
			loc = l
		}
	}

	for _, e := range events {
		writeVEvent(w, e, cfg.Location.TimeZone, loc, cfg.GeneratedAt)
	}

	w.prop("END", "VCALENDAR")
	return b.String()
}

func writeVEvent(w *lineWriter, e event.Event, tzid string, loc *time.Location, generatedAt time.Time) {
	w.prop("BEGIN", "VEVENT")
	w.prop("UID", uidFor(e))
	w.prop("DTSTAMP", generatedAt.UTC().Format(timestampLayout))

	start := e.Start.In(loc)
	end := e.End.In(loc)
	if tzid != "" {
		w.propParam("DTSTART", "TZID", tzid, start.Format(timestampLayout))
		w.propParam("DTEND", "TZID", tzid, end.Format(timestampLayout))
	} else {
		w.prop("DTSTART", start.Format(timestampLayout))
		w.prop("DTEND", end.Format(timestampLayout))
	}

	w.prop("SUMMARY", escapeText(e.Summary))
	w.prop("DESCRIPTION", escapeText(e.Description))
	w.prop("STATUS", "CONFIRMED")
	w.prop("CLASS", "PUBLIC")
	w.prop("TRANSP", "TRANSPARENT")
	if len(e.Categories) > 0 {
		cats := make([]string, len(e.Categories))
		for i, c := range e.Categories {
			cats[i] = escapeText(c)
		}
		w.prop("CATEGORIES", strings.Join(cats, ","))
	}
	w.prop("SEQUENCE", "0")
	w.prop("LAST-MODIFIED", generatedAt.UTC().Format(timestampLayout))
	w.prop("CREATED", generatedAt.UTC().Format(timestampLayout))
	w.prop("END", "VEVENT")
}

// uidFor implements spec §8 property 8: UID is a deterministic, literal
// (not hashed) function of (summary, description, start[, end]).
func uidFor(e event.Event) string {
	parts := []string{e.Summary, e.Description, e.Start.UTC().Format(time.RFC3339)}
	if !e.End.Equal(e.Start) {
		parts = append(parts, e.End.UTC().Format(time.RFC3339))
	}
	return strings.Join(parts, "::")
}

// escapeText applies the RFC 5545 §3.3.11 TEXT escaping rules: backslash,
// semicolon, and comma are backslash-escaped; newlines become literal
// "\n".
func escapeText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

// SortedForOutput is a small convenience wrapper so callers don't need to
// import package event just to sort before calling Serialize.
func SortedForOutput(events []event.Event) []event.Event {
	out := append([]event.Event{}, events...)
	event.SortByStart(out)
	return out
}

// lineWriter emits RFC 5545 content lines with CRLF line endings and
// §3.1's line folding (continuation lines indented by one space once a
// logical line exceeds 75 octets).
type lineWriter struct {
	b *strings.Builder
}

func (w *lineWriter) prop(name, value string) {
	w.writeFolded(name + ":" + value)
}

func (w *lineWriter) propParam(name, paramName, paramValue, value string) {
	w.writeFolded(fmt.Sprintf("%s;%s=%s:%s", name, paramName, paramValue, value))
}

func (w *lineWriter) writeFolded(line string) {
	const maxOctets = 75
	if len(line) <= maxOctets {
		w.b.WriteString(line)
		w.b.WriteString("\r\n")
		return
	}
	first := true
	for len(line) > 0 {
		n := maxOctets
		if first {
			first = false
		} else {
			w.b.WriteString(" ")
			n = maxOctets - 1
		}
		if n > len(line) {
			n = len(line)
		}
		w.b.WriteString(line[:n])
		w.b.WriteString("\r\n")
		line = line[n:]
	}
}
