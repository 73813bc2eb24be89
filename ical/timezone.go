package ical

// writeVTimezone emits a VTIMEZONE block. America/New_York is the one zone
// spec §6 calls out as authoritative, with the actual post-2007 U.S. DST
// rule (second Sunday in March -> first Sunday in November); every other
// zone gets a bare stub carrying only its TZID, since modeling every IANA
// zone's historical DST rules is explicitly out of scope.
func writeVTimezone(w *lineWriter, tzid string) {
	w.prop("BEGIN", "VTIMEZONE")
	w.prop("TZID", tzid)

	if tzid != "America/New_York" {
		w.prop("END", "VTIMEZONE")
		return
	}

	w.prop("BEGIN", "STANDARD")
	w.prop("DTSTART", "19701101T020000")
	w.prop("TZOFFSETFROM", "-0400")
	w.prop("TZOFFSETTO", "-0500")
	w.prop("TZNAME", "EST")
	w.prop("RRULE", "FREQ=YEARLY;BYMONTH=11;BYDAY=1SU")
	w.prop("END", "STANDARD")

	w.prop("BEGIN", "DAYLIGHT")
	w.prop("DTSTART", "19700308T020000")
	w.prop("TZOFFSETFROM", "-0500")
	w.prop("TZOFFSETTO", "-0400")
	w.prop("TZNAME", "EDT")
	w.prop("RRULE", "FREQ=YEARLY;BYMONTH=3;BYDAY=2SU")
	w.prop("END", "DAYLIGHT")

	w.prop("END", "VTIMEZONE")
}
