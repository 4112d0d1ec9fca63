package grid

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// slotMinutes is the length of one grid row in the timetable page layout.
const slotMinutes = 30

var dayCodes = map[string]int{
	"MON": 1,
	"TUE": 2,
	"WED": 3,
	"THU": 4,
	"FRI": 5,
	"SAT": 6,
	"SUN": 7,
}

var (
	// ErrNoCourses is returned by CheckResult when nothing could be extracted.
	ErrNoCourses = errors.New("no course records were parsed from the HTML")
	// ErrTimeAxisLeak means a course title is a bare time label, which only
	// happens when the selectors matched the grid's time axis.
	ErrTimeAxisLeak = errors.New("time-axis labels were parsed as course names")
)

// Extract parses a saved timetable grid page. Each div.event inside a
// td.day-cell becomes at most one Course; blocks that cannot be resolved are
// reported in Result.Skipped rather than failing the whole page.
func Extract(r io.Reader, maxWeek int) (Result, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var res Result
	var parsed []parsedBlock

	// Only event blocks are parsed so that time-axis labels stay out.
	doc.Find("td.day-cell > div.event").Each(func(i int, block *goquery.Selection) {
		res.Blocks++
		course, skip := parseBlock(i, block, maxWeek)
		if skip != nil {
			res.Skipped = append(res.Skipped, *skip)
			return
		}
		dayCode, _ := block.Parent().Attr("data-day")
		parsed = append(parsed, parsedBlock{course: course, index: i, day: dayCode})
	})

	res.Courses, res.Skipped = deduplicateCourses(parsed, res.Skipped)
	return res, nil
}

type parsedBlock struct {
	course Course
	index  int
	day    string
}

func parseBlock(index int, block *goquery.Selection, maxWeek int) (Course, *SkippedBlock) {
	cell := block.Parent()
	dayCode, _ := cell.Attr("data-day")
	skip := func(title string, reason SkipReason, detail string) (Course, *SkippedBlock) {
		return Course{}, &SkippedBlock{Index: index, Day: dayCode, Title: title, Reason: reason, Detail: detail}
	}

	weekday, ok := dayCodes[strings.ToUpper(strings.TrimSpace(dayCode))]
	if !ok {
		return skip("", SkipUnknownDay, "")
	}

	title := textOf(block)
	if name := block.Find(".event-name").First(); name.Length() > 0 {
		title = textOf(name)
	}
	if title == "" {
		return skip(title, SkipEmptyTitle, "")
	}
	if IsTimeLabel(title) {
		return skip(title, SkipTimeTitle, "")
	}

	var infoLines []string
	block.Find(".event-info").Each(func(_ int, info *goquery.Selection) {
		if line := textOf(info); line != "" {
			infoLines = append(infoLines, line)
		}
	})

	var weeksText, timeText string
	var misc []string
	for _, line := range infoLines {
		switch {
		case strings.HasPrefix(strings.ToLower(line), "week:"):
			weeksText = strings.TrimSpace(strings.SplitN(line, ":", 2)[1])
		case containsTimeRange(line):
			timeText = line
		default:
			misc = append(misc, line)
		}
	}
	teacher, location := assignTeacherLocation(misc)

	tr, found, timeErr := ParseTimeRange(timeText)
	weeks := ParseWeeks(weeksText, maxWeek)

	if !found || timeErr != nil {
		if fallback, ok, err := slotFallback(cell); ok {
			tr, found, timeErr = fallback, true, nil
		} else if err != nil {
			timeErr = err
		}
	}

	switch {
	case timeErr != nil:
		return skip(title, SkipBadTime, timeErr.Error())
	case !found:
		return skip(title, SkipNoTime, "")
	case len(weeks) == 0:
		return skip(title, SkipNoWeeks, weeksText)
	}

	return Course{
		Name:      title,
		Weekday:   weekday,
		StartTime: tr.Start,
		EndTime:   tr.End,
		Weeks:     weeks,
		Location:  location,
		Teacher:   teacher,
		Extra:     strings.Join(infoLines, " | "),
	}, nil
}

// assignTeacherLocation maps unclassified info lines by position. The page
// lists teacher lines before the location, so with three or more lines all
// but the last are joined as the teacher.
func assignTeacherLocation(misc []string) (teacher, location string) {
	switch len(misc) {
	case 0:
		return "", ""
	case 1:
		return misc[0], ""
	case 2:
		return misc[0], misc[1]
	default:
		return strings.Join(misc[:len(misc)-1], " | "), misc[len(misc)-1]
	}
}

// slotFallback derives a time range from the day cell's data-time and rowspan
// attributes. ok is false when either attribute is missing or unusable.
func slotFallback(cell *goquery.Selection) (TimeRange, bool, error) {
	startAttr, hasStart := cell.Attr("data-time")
	spanAttr, hasSpan := cell.Attr("rowspan")
	if !hasStart || startAttr == "" || !hasSpan || !isDigits(spanAttr) {
		return TimeRange{}, false, nil
	}

	start, err := ParseClock(startAttr)
	if err != nil {
		return TimeRange{}, false, err
	}
	span, err := strconv.Atoi(spanAttr)
	if err != nil {
		return TimeRange{}, false, nil
	}

	return TimeRange{Start: start, End: start.AddMinutes(slotMinutes * span)}, true, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// textOf returns the normalized text of a selection, with a space between
// every text node so that adjacent inline elements do not run together.
func textOf(sel *goquery.Selection) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return Normalize(strings.Join(parts, " "))
}

// deduplicateCourses keeps the first course for every key and records the
// rest as skipped duplicates.
func deduplicateCourses(blocks []parsedBlock, skipped []SkippedBlock) ([]Course, []SkippedBlock) {
	seen := make(map[string]bool)
	unique := []Course{}

	for _, b := range blocks {
		k := b.course.key()
		if seen[k] {
			skipped = append(skipped, SkippedBlock{
				Index:  b.index,
				Day:    b.day,
				Title:  b.course.Name,
				Reason: SkipDuplicate,
			})
			continue
		}
		seen[k] = true
		unique = append(unique, b.course)
	}

	return unique, skipped
}

// CheckResult rejects extraction results that should not be written out:
// an empty result, or one where a course title is a bare time label.
func CheckResult(res Result) error {
	if len(res.Courses) == 0 {
		return ErrNoCourses
	}

	leaked := 0
	for _, c := range res.Courses {
		if IsTimeLabel(c.Name) {
			leaked++
		}
	}
	if leaked > 0 {
		return fmt.Errorf("%w (%d records)", ErrTimeAxisLeak, leaked)
	}
	return nil
}
