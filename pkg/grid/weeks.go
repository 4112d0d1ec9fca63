package grid

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

var (
	weekRangePattern  = regexp.MustCompile(`(\d{1,2})\s*-\s*(\d{1,2})`)
	weekSinglePattern = regexp.MustCompile(`\b(\d{1,2})\b`)

	// Applied after width.Narrow, which maps full-width commas, parentheses
	// and tildes to ASCII and may turn 、 into the half-width ､.
	weekPunctuation = strings.NewReplacer(
		"、", ",",
		"､", ",",
		"~", "-",
		"—", "-",
		"–", "-",
		"至", "-",
	)

	everyWeekMarkers = []string{"every week", "每周", "全周"}
	oddWeekMarkers   = []string{"单周", "(单)", "odd"}
	evenWeekMarkers  = []string{"双周", "(双)", "even"}
)

// ParseWeeks turns week shorthand such as "1-5,7,单周" or "Week 1-16" into
// the sorted teaching weeks in [1, maxWeek] it denotes. Text that carries no
// week numbers yields an empty slice.
func ParseWeeks(text string, maxWeek int) []int {
	s := strings.ToLower(Normalize(text))
	if s == "" {
		return []int{}
	}
	s = weekPunctuation.Replace(width.Narrow.String(s))

	if containsAny(s, everyWeekMarkers) {
		return weekSpan(1, maxWeek)
	}

	oddOnly := containsAny(s, oddWeekMarkers)
	evenOnly := containsAny(s, evenWeekMarkers)

	set := make(map[int]struct{})
	for _, m := range weekRangePattern.FindAllStringSubmatch(s, -1) {
		from, _ := strconv.Atoi(m[1])
		to, _ := strconv.Atoi(m[2])
		if from > to {
			from, to = to, from
		}
		for w := from; w <= to; w++ {
			set[w] = struct{}{}
		}
	}

	rest := weekRangePattern.ReplaceAllString(s, " ")
	for _, m := range weekSinglePattern.FindAllStringSubmatch(rest, -1) {
		w, _ := strconv.Atoi(m[1])
		set[w] = struct{}{}
	}

	weeks := make([]int, 0, len(set))
	for w := range set {
		if w >= 1 && w <= maxWeek {
			weeks = append(weeks, w)
		}
	}
	sort.Ints(weeks)

	// Both filters apply when both markers are present.
	if oddOnly {
		weeks = filterWeeks(weeks, func(w int) bool { return w%2 == 1 })
	}
	if evenOnly {
		weeks = filterWeeks(weeks, func(w int) bool { return w%2 == 0 })
	}

	return weeks
}

func weekSpan(from, to int) []int {
	weeks := []int{}
	for w := from; w <= to; w++ {
		weeks = append(weeks, w)
	}
	return weeks
}

func filterWeeks(weeks []int, keep func(int) bool) []int {
	out := weeks[:0]
	for _, w := range weeks {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
