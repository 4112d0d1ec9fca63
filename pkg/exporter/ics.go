package exporter

import (
	"fmt"
	"io"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/baibanqin/xjtlu-ebridge-html-to-ics/pkg/grid"
)

const (
	prodID    = "-//gridcal//XJTLU Timetable Grid HTML to ICS//CN"
	foldLimit = 75

	localLayout = "20060102T150405"
	utcLayout   = "20060102T150405Z"
)

// Options controls calendar-level fields of the generated document
type Options struct {
	CalendarName string
	TZID         string
	// Now is written as DTSTAMP on every event.
	Now time.Time
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	`;`, `\;`,
	`,`, `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
)

// escapeText escapes a TEXT property value.
func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// foldLine splits a content line longer than 75 characters into a first
// line of 75 characters followed by continuation lines that start with a
// single space.
func foldLine(line string) string {
	r := []rune(line)
	if len(r) <= foldLimit {
		return line
	}

	var chunks []string
	for len(r) > foldLimit {
		chunks = append(chunks, string(r[:foldLimit]))
		r = append([]rune{' '}, r[foldLimit:]...)
	}
	chunks = append(chunks, string(r))
	return strings.Join(chunks, "\r\n")
}

// GenerateICS expands the courses from week1 and writes the calendar to w.
func GenerateICS(courses []grid.Course, week1 time.Time, opts Options, w io.Writer) error {
	doc := EncodeICS(Expand(courses, week1), opts)
	if _, err := io.WriteString(w, doc); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	return nil
}

// EncodeICS serializes the occurrences into an iCalendar document with CRLF
// line endings. Event times are floating local times qualified by opts.TZID.
func EncodeICS(occs []Occurrence, opts Options) string {
	var lines []string
	add := func(line string) {
		lines = append(lines, foldLine(line))
	}

	stamp := opts.Now.UTC().Format(utcLayout)

	add("BEGIN:VCALENDAR")
	add("PRODID:" + prodID)
	add("VERSION:2.0")
	add("CALSCALE:GREGORIAN")
	add("METHOD:PUBLISH")
	add("X-WR-CALNAME:" + escapeText(opts.CalendarName))
	add("X-WR-TIMEZONE:" + opts.TZID)

	offset, abbr := standardZone(opts.TZID, opts.Now)
	add("BEGIN:VTIMEZONE")
	add("TZID:" + opts.TZID)
	add("X-LIC-LOCATION:" + opts.TZID)
	add("BEGIN:STANDARD")
	add("TZOFFSETFROM:" + offset)
	add("TZOFFSETTO:" + offset)
	add("TZNAME:" + abbr)
	add("DTSTART:19700101T000000")
	add("END:STANDARD")
	add("END:VTIMEZONE")

	for _, occ := range occs {
		c := occ.Course

		add("BEGIN:VEVENT")
		add("UID:" + occ.UID)
		add("DTSTAMP:" + stamp)
		add("SUMMARY:" + escapeText(c.Name))
		add(fmt.Sprintf("DTSTART;TZID=%s:%s", opts.TZID, localStamp(occ.Date, c.StartTime)))
		add(fmt.Sprintf("DTEND;TZID=%s:%s", opts.TZID, localStamp(occ.Date, c.EndTime)))
		if c.Location != "" {
			add("LOCATION:" + escapeText(c.Location))
		}
		add("DESCRIPTION:" + escapeText(describe(c)))
		add("STATUS:CONFIRMED")
		add("TRANSP:OPAQUE")
		add("END:VEVENT")
	}

	add("END:VCALENDAR")
	return strings.Join(lines, "\r\n") + "\r\n"
}

func describe(c grid.Course) string {
	var parts []string
	if c.Teacher != "" {
		parts = append(parts, "Teacher: "+c.Teacher)
	}
	parts = append(parts, "Weeks: "+c.WeeksString())
	if c.Extra != "" {
		parts = append(parts, "Raw: "+c.Extra)
	}
	return strings.Join(parts, "\n")
}

func localStamp(date time.Time, clock grid.Clock) string {
	t := time.Date(date.Year(), date.Month(), date.Day(), clock.Hour, clock.Minute, 0, 0, time.UTC)
	return t.Format(localLayout)
}

// standardZone returns the UTC offset ("+0800") and abbreviation of tzid's
// standard time in now's year: the smaller of the January and July offsets,
// so zones on daylight saving time in either hemisphere report standard
// time. Unknown zones fall back to China Standard Time.
func standardZone(tzid string, now time.Time) (string, string) {
	loc, err := time.LoadLocation(tzid)
	if tzid == "" || err != nil {
		return "+0800", "CST"
	}

	year := now.Year()
	if now.IsZero() {
		year = 2000
	}
	abbr, secs := time.Date(year, time.January, 1, 0, 0, 0, 0, loc).Zone()
	if julyAbbr, julySecs := time.Date(year, time.July, 1, 0, 0, 0, 0, loc).Zone(); julySecs < secs {
		abbr, secs = julyAbbr, julySecs
	}
	sign := '+'
	if secs < 0 {
		sign = '-'
		secs = -secs
	}
	return fmt.Sprintf("%c%02d%02d", sign, secs/3600, (secs%3600)/60), abbr
}
