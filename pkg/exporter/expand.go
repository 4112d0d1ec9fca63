package exporter

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"time"

	"github.com/baibanqin/xjtlu-ebridge-html-to-ics/pkg/grid"
)

// uidDomain is appended to every generated UID.
const uidDomain = "local.xjtlu"

// Occurrence is one dated instance of a course
type Occurrence struct {
	Course grid.Course
	Date   time.Time // midnight UTC of the class day; only the date is meaningful
	UID    string
}

// Expand produces one occurrence per teaching week of every course, in
// course order then week order. week1 is the Monday of teaching week 1.
func Expand(courses []grid.Course, week1 time.Time) []Occurrence {
	anchor := time.Date(week1.Year(), week1.Month(), week1.Day(), 0, 0, 0, 0, time.UTC)

	var occs []Occurrence
	for _, c := range courses {
		for _, week := range c.Weeks {
			date := anchor.AddDate(0, 0, (week-1)*7+(c.Weekday-1))
			occs = append(occs, Occurrence{
				Course: c,
				Date:   date,
				UID:    MakeUID(c, date),
			})
		}
	}
	return occs
}

// MakeUID derives a stable identifier for one occurrence of a course from
// its name, date, times, location and teacher. The same occurrence always
// yields the same UID so calendar clients update instead of duplicating.
func MakeUID(c grid.Course, date time.Time) string {
	seed := strings.Join([]string{
		c.Name,
		date.Format("2006-01-02"),
		c.StartTime.String() + ":00",
		c.EndTime.String() + ":00",
		c.Location,
		c.Teacher,
	}, "|")

	sum := sha1.Sum([]byte(seed))
	return hex.EncodeToString(sum[:])[:20] + "@" + uidDomain
}
