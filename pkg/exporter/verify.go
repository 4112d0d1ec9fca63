package exporter

import (
	"fmt"
	"strings"

	ics "github.com/arran4/golang-ical"
)

// VerifyReport summarizes a calendar document that was read back
type VerifyReport struct {
	Events    int
	Timezones int
	// DuplicateUIDs counts events whose UID was already used by an earlier
	// event. Overlapping week lists of one course produce these.
	DuplicateUIDs int
}

// Verify parses a generated calendar with an independent iCalendar reader
// and checks every event carries a UID, a summary and both DTSTART and DTEND.
// Repeated UIDs are counted in the report rather than rejected.
func Verify(doc string) (VerifyReport, error) {
	cal, err := ics.ParseCalendar(strings.NewReader(doc))
	if err != nil {
		return VerifyReport{}, fmt.Errorf("generated calendar does not parse: %w", err)
	}

	var report VerifyReport
	for _, comp := range cal.Components {
		if _, ok := comp.(*ics.VTimezone); ok {
			report.Timezones++
		}
	}

	seen := make(map[string]bool)
	for _, ev := range cal.Events() {
		report.Events++

		uid := ev.Id()
		if uid == "" {
			return report, fmt.Errorf("event %d has no UID", report.Events)
		}
		if seen[uid] {
			report.DuplicateUIDs++
		}
		seen[uid] = true

		for _, prop := range []ics.ComponentProperty{
			ics.ComponentPropertySummary,
			ics.ComponentPropertyDtStart,
			ics.ComponentPropertyDtEnd,
		} {
			if p := ev.GetProperty(prop); p == nil || p.Value == "" {
				return report, fmt.Errorf("event %s is missing %s", uid, prop)
			}
		}
	}

	return report, nil
}
