package exporter

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baibanqin/xjtlu-ebridge-html-to-ics/pkg/grid"
)

var (
	testWeek1 = time.Date(2024, time.February, 26, 0, 0, 0, 0, time.UTC)
	testNow   = time.Date(2024, time.March, 1, 8, 30, 15, 0, time.UTC)
)

func lecture() grid.Course {
	return grid.Course{
		Name:      "CPT101 Lecture",
		Weekday:   3,
		StartTime: grid.Clock{Hour: 9},
		EndTime:   grid.Clock{Hour: 10, Minute: 50},
		Weeks:     []int{1, 3},
		Location:  "SA-101",
		Teacher:   "Dr. Alice Wang",
		Extra:     "Dr. Alice Wang | SA-101 | Week: 1,3 | 09:00-10:50",
	}
}

func testOptions() Options {
	return Options{CalendarName: "XJTLU Timetable", TZID: "Asia/Shanghai", Now: testNow}
}

func TestExpand(t *testing.T) {
	occs := Expand([]grid.Course{lecture()}, testWeek1)
	require.Len(t, occs, 2)

	assert.Equal(t, "2024-02-28", occs[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2024-03-13", occs[1].Date.Format("2006-01-02"))
	assert.Equal(t, time.Wednesday, occs[1].Date.Weekday())
}

func TestExpandIgnoresAnchorClockAndZone(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	week1 := time.Date(2024, time.February, 26, 23, 59, 0, 0, loc)

	occs := Expand([]grid.Course{lecture()}, week1)
	require.Len(t, occs, 2)
	assert.Equal(t, "2024-02-28", occs[0].Date.Format("2006-01-02"))
}

func TestMakeUID(t *testing.T) {
	occs := Expand([]grid.Course{lecture()}, testWeek1)

	assert.Equal(t, "0e6753d8fb9d9e1cf4b0@local.xjtlu", occs[0].UID)
	assert.Equal(t, "9f10d2460a6dc562ac33@local.xjtlu", occs[1].UID)

	// Weeks and extra text are not part of the identity.
	other := lecture()
	other.Weeks = []int{1}
	other.Extra = ""
	assert.Equal(t, occs[0].UID, MakeUID(other, occs[0].Date))

	other.Location = "SA-102"
	assert.NotEqual(t, occs[0].UID, MakeUID(other, occs[0].Date))
}

func TestEscapeText(t *testing.T) {
	assert.Equal(t, `a\\b\;c\,d\ne`, escapeText("a\\b;c,d\ne"))
	assert.Equal(t, `x\ny`, escapeText("x\r\ny"))
	assert.Equal(t, "plain", escapeText("plain"))
}

func TestFoldLine(t *testing.T) {
	exact := strings.Repeat("a", 75)
	assert.Equal(t, exact, foldLine(exact))

	line := strings.Repeat("a", 75) + "Z"
	assert.Equal(t, strings.Repeat("a", 75)+"\r\n Z", foldLine(line))

	long := "DESCRIPTION:" + strings.Repeat("高等数学", 40)
	folded := foldLine(long)
	physical := strings.Split(folded, "\r\n")
	require.Greater(t, len(physical), 2)
	for i, p := range physical {
		assert.LessOrEqual(t, utf8.RuneCountInString(p), 75)
		if i > 0 {
			assert.True(t, strings.HasPrefix(p, " "))
		}
	}

	var unfolded strings.Builder
	for i, p := range physical {
		if i > 0 {
			p = p[1:]
		}
		unfolded.WriteString(p)
	}
	assert.Equal(t, long, unfolded.String())
}

func TestEncodeICS(t *testing.T) {
	occs := Expand([]grid.Course{lecture()}, testWeek1)
	doc := EncodeICS(occs, testOptions())

	require.True(t, strings.HasSuffix(doc, "END:VCALENDAR\r\n"))
	assert.NotContains(t, strings.ReplaceAll(doc, "\r\n", ""), "\n", "all line breaks are CRLF")

	lines := strings.Split(strings.TrimSuffix(doc, "\r\n"), "\r\n")
	assert.Equal(t, []string{
		"BEGIN:VCALENDAR",
		"PRODID:-//gridcal//XJTLU Timetable Grid HTML to ICS//CN",
		"VERSION:2.0",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"X-WR-CALNAME:XJTLU Timetable",
		"X-WR-TIMEZONE:Asia/Shanghai",
		"BEGIN:VTIMEZONE",
		"TZID:Asia/Shanghai",
		"X-LIC-LOCATION:Asia/Shanghai",
		"BEGIN:STANDARD",
		"TZOFFSETFROM:+0800",
		"TZOFFSETTO:+0800",
		"TZNAME:CST",
		"DTSTART:19700101T000000",
		"END:STANDARD",
		"END:VTIMEZONE",
		"BEGIN:VEVENT",
		"UID:0e6753d8fb9d9e1cf4b0@local.xjtlu",
		"DTSTAMP:20240301T083015Z",
		"SUMMARY:CPT101 Lecture",
		"DTSTART;TZID=Asia/Shanghai:20240228T090000",
		"DTEND;TZID=Asia/Shanghai:20240228T105000",
		"LOCATION:SA-101",
	}, lines[:24])

	assert.Equal(t, 2, strings.Count(doc, "BEGIN:VEVENT\r\n"))
	assert.Equal(t, 2, strings.Count(doc, "DTSTAMP:20240301T083015Z\r\n"))
	assert.Contains(t, doc, "DTSTART;TZID=Asia/Shanghai:20240313T090000\r\n")
	assert.Contains(t, doc, "STATUS:CONFIRMED\r\nTRANSP:OPAQUE\r\nEND:VEVENT\r\n")

	unfolded := strings.ReplaceAll(doc, "\r\n ", "")
	assert.Contains(t, unfolded,
		`DESCRIPTION:Teacher: Dr. Alice Wang\nWeeks: 1\,3\nRaw: Dr. Alice Wang | SA-101 | Week: 1\,3 | 09:00-10:50`)
}

func TestEncodeICSOptionalFields(t *testing.T) {
	c := lecture()
	c.Teacher = ""
	c.Location = ""
	c.Extra = ""
	c.Name = "Lab; Group A, B"
	c.Weeks = []int{2}

	doc := EncodeICS(Expand([]grid.Course{c}, testWeek1), testOptions())

	assert.NotContains(t, doc, "\r\nLOCATION:")
	assert.Contains(t, doc, "X-LIC-LOCATION:Asia/Shanghai\r\n")
	assert.Contains(t, doc, "DESCRIPTION:Weeks: 2\r\n")
	assert.Contains(t, doc, `SUMMARY:Lab\; Group A\, B`+"\r\n")
}

func TestEncodeICSDeterministic(t *testing.T) {
	courses := []grid.Course{lecture()}

	first := EncodeICS(Expand(courses, testWeek1), testOptions())
	second := EncodeICS(Expand(courses, testWeek1), testOptions())
	assert.Equal(t, first, second)
}

func TestEncodeICSUnknownZoneFallsBack(t *testing.T) {
	opts := testOptions()
	opts.TZID = "Mars/Olympus_Mons"

	doc := EncodeICS(nil, opts)
	assert.Contains(t, doc, "TZOFFSETTO:+0800\r\nTZNAME:CST\r\n")
	assert.Contains(t, doc, "TZID:Mars/Olympus_Mons\r\n")
	assert.NotContains(t, doc, "BEGIN:VEVENT")
}

func TestStandardZone(t *testing.T) {
	offset, abbr := standardZone("America/New_York", testNow)
	assert.Equal(t, "-0500", offset)
	assert.Equal(t, "EST", abbr)

	offset, _ = standardZone("Asia/Kolkata", testNow)
	assert.Equal(t, "+0530", offset)

	// Southern hemisphere: January is daylight saving time.
	offset, abbr = standardZone("Australia/Sydney", testNow)
	assert.Equal(t, "+1000", offset)
	assert.Equal(t, "AEST", abbr)

	offset, _ = standardZone("Asia/Shanghai", testNow)
	assert.Equal(t, "+0800", offset)
}

func TestEncodeICSFoldsLongSummary(t *testing.T) {
	c := lecture()
	c.Name = strings.Repeat("Advanced Topics in Computer Science ", 4)
	c.Weeks = []int{1}

	doc := EncodeICS(Expand([]grid.Course{c}, testWeek1), testOptions())
	for _, line := range strings.Split(doc, "\r\n") {
		assert.LessOrEqual(t, utf8.RuneCountInString(line), 75)
	}
	assert.Contains(t, strings.ReplaceAll(doc, "\r\n ", ""), "SUMMARY:"+c.Name+"\r\n")
}

func TestGenerateICS(t *testing.T) {
	var buf bytes.Buffer
	err := GenerateICS([]grid.Course{lecture()}, testWeek1, testOptions(), &buf)
	require.NoError(t, err)

	assert.Equal(t, EncodeICS(Expand([]grid.Course{lecture()}, testWeek1), testOptions()), buf.String())
}
