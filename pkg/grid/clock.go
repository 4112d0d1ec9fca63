package grid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

	// Either side of a range may be joined by a dash-like character or 至 ("to").
	rangePattern = regexp.MustCompile(`(\d{1,2}:\d{2})\s*(?:-|~|–|—|至)\s*(\d{1,2}:\d{2})`)
)

// FormatError reports a time-of-day string that could not be parsed
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid time format: %q", e.Input)
}

// ParseClock parses "H:MM" or "HH:MM", optionally surrounded by whitespace.
func ParseClock(s string) (Clock, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Clock{}, &FormatError{Input: s}
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return Clock{}, &FormatError{Input: s}
	}

	return Clock{Hour: hour, Minute: minute}, nil
}

// ParseTimeRange finds the first "HH:MM - HH:MM" in s. ok is false when no
// range is present; err is set when a range matched but a side is invalid.
func ParseTimeRange(s string) (tr TimeRange, ok bool, err error) {
	m := rangePattern.FindStringSubmatch(Normalize(s))
	if m == nil {
		return TimeRange{}, false, nil
	}

	start, err := ParseClock(m[1])
	if err != nil {
		return TimeRange{}, true, err
	}
	end, err := ParseClock(m[2])
	if err != nil {
		return TimeRange{}, true, err
	}

	return TimeRange{Start: start, End: end}, true, nil
}

// containsTimeRange reports whether s looks like it carries a time range.
func containsTimeRange(s string) bool {
	return rangePattern.MatchString(s)
}

// IsTimeLabel reports whether s is a bare "H:MM" label, as found on the
// time axis of the grid.
func IsTimeLabel(s string) bool {
	return clockPattern.MatchString(s)
}
