package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/baibanqin/xjtlu-ebridge-html-to-ics/pkg/grid"
)

// PreviewHeader lists the columns of the preview export
var PreviewHeader = []string{"course", "weekday", "start_time", "end_time", "weeks", "location", "teacher", "extra"}

func previewRow(c grid.Course) []string {
	return []string{
		c.Name,
		strconv.Itoa(c.Weekday),
		c.StartTime.String(),
		c.EndTime.String(),
		c.WeeksString(),
		c.Location,
		c.Teacher,
		c.Extra,
	}
}

// WritePreviewCSV writes one row per course. The file starts with a UTF-8
// byte order mark so spreadsheet programs pick the right encoding.
func WritePreviewCSV(courses []grid.Course, w io.Writer) error {
	if _, err := io.WriteString(w, "\uFEFF"); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(PreviewHeader); err != nil {
		return err
	}
	for _, c := range courses {
		if err := cw.Write(previewRow(c)); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return nil
}

// WeekdayName returns the English name for weekday 1 (Monday) to 7 (Sunday).
func WeekdayName(weekday int) string {
	if weekday < 1 || weekday > 7 {
		return strconv.Itoa(weekday)
	}
	return time.Weekday(weekday % 7).String()
}

func shortDay(weekday int) string {
	name := WeekdayName(weekday)
	if len(name) > 3 {
		return name[:3]
	}
	return name
}

// RenderPreviewTable renders the courses as a terminal table.
func RenderPreviewTable(courses []grid.Course, accent lipgloss.Style) string {
	headerStyle := accent.Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(accent).
		Headers("Course", "Day", "Time", "Weeks", "Location", "Teacher").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, c := range courses {
		t.Row(
			c.Name,
			shortDay(c.Weekday),
			c.StartTime.String()+"-"+c.EndTime.String(),
			c.WeeksString(),
			c.Location,
			c.Teacher,
		)
	}

	return t.Render()
}

// RenderSkippedTable lists the event blocks that did not produce a course.
func RenderSkippedTable(skipped []grid.SkippedBlock, accent lipgloss.Style) string {
	title := cases.Title(language.English)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(accent).
		Headers("#", "Day", "Title", "Reason", "Detail").
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, s := range skipped {
		t.Row(strconv.Itoa(s.Index), s.Day, s.Title, title.String(string(s.Reason)), s.Detail)
	}

	return t.Render()
}
