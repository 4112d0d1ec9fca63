package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock is a time of day with minute precision
type Clock struct {
	Hour   int
	Minute int
}

// String formats the clock as "HH:MM"
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Minutes returns the number of minutes since midnight
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// AddMinutes returns the clock shifted by n minutes, wrapping around midnight.
func (c Clock) AddMinutes(n int) Clock {
	total := ((c.Minutes()+n)%(24*60) + 24*60) % (24 * 60)
	return Clock{Hour: total / 60, Minute: total % 60}
}

// TimeRange is a start/end pair. Start is not guaranteed to be before End.
type TimeRange struct {
	Start Clock
	End   Clock
}

// Course is one timetable entry: a course held on a weekday at a fixed time
// for a set of teaching weeks.
type Course struct {
	Name      string
	Weekday   int // Monday=1 ... Sunday=7
	StartTime Clock
	EndTime   Clock
	Weeks     []int // ascending, distinct
	Location  string
	Teacher   string
	Extra     string // every info line of the event block joined with " | "
}

// WeeksString returns the weeks joined with commas, e.g. "1,3,5"
func (c Course) WeeksString() string {
	parts := make([]string, len(c.Weeks))
	for i, w := range c.Weeks {
		parts[i] = strconv.Itoa(w)
	}
	return strings.Join(parts, ",")
}

// key identifies a course for deduplication.
func (c Course) key() string {
	return strings.Join([]string{
		strings.ToLower(c.Name),
		strconv.Itoa(c.Weekday),
		c.StartTime.String(),
		c.EndTime.String(),
		c.WeeksString(),
		strings.ToLower(c.Location),
		strings.ToLower(c.Teacher),
	}, "\x00")
}

// SkipReason explains why an event block did not produce a course
type SkipReason string

const (
	SkipUnknownDay SkipReason = "unknown day code"
	SkipEmptyTitle SkipReason = "empty title"
	SkipTimeTitle  SkipReason = "title is a time label"
	SkipBadTime    SkipReason = "malformed time"
	SkipNoTime     SkipReason = "no time range"
	SkipNoWeeks    SkipReason = "no teaching weeks"
	SkipDuplicate  SkipReason = "duplicate"
)

// SkippedBlock describes an event block that was dropped during extraction
type SkippedBlock struct {
	Index  int    // position of the block in document order
	Day    string // raw data-day attribute
	Title  string
	Reason SkipReason
	Detail string
}

// Result is the outcome of extracting a timetable grid
type Result struct {
	Courses []Course
	Skipped []SkippedBlock
	Blocks  int // event blocks seen
}
