// Package convert runs the whole HTML-to-calendar pipeline: read the saved
// page, extract courses, write the preview and the calendar file.
package convert

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/baibanqin/xjtlu-ebridge-html-to-ics/pkg/exporter"
	"github.com/baibanqin/xjtlu-ebridge-html-to-ics/pkg/grid"
)

// Options describes one conversion run
type Options struct {
	HTMLPath   string
	Output     string
	PreviewCSV string // empty disables the preview file

	Week1        time.Time
	MaxWeek      int
	CalendarName string
	TZID         string
	Now          time.Time

	Logger *zap.Logger
}

// Summary reports what a run produced
type Summary struct {
	Result grid.Result
	Events int
	// DuplicateUIDs counts events sharing a UID with an earlier event.
	DuplicateUIDs int
	OutputPath    string
	PreviewPath   string
}

// Parse reads and extracts the timetable page without writing anything.
// Extraction results that must not be exported are returned together with
// the CheckResult error so callers can still show what was found.
func Parse(path string, maxWeek int, logger *zap.Logger) (grid.Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	page, err := grid.LoadHTML(path)
	if err != nil {
		return grid.Result{}, err
	}

	start := time.Now()
	res, err := grid.Extract(strings.NewReader(page), maxWeek)
	if err != nil {
		return grid.Result{}, err
	}

	for _, s := range res.Skipped {
		logger.Debug("skipped event block",
			zap.Int("index", s.Index),
			zap.String("day", s.Day),
			zap.String("title", s.Title),
			zap.String("reason", string(s.Reason)),
			zap.String("detail", s.Detail),
		)
	}
	logger.Info("extraction finished",
		zap.String("html", path),
		zap.Int("blocks", res.Blocks),
		zap.Int("courses", len(res.Courses)),
		zap.Int("skipped", len(res.Skipped)),
		zap.Duration("took", time.Since(start)),
	)

	return res, grid.CheckResult(res)
}

// Run converts the page at opts.HTMLPath. Nothing is written when the
// extraction result fails grid.CheckResult or the calendar fails to verify.
func Run(opts Options) (*Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	res, err := Parse(opts.HTMLPath, opts.MaxWeek, logger)
	summary := &Summary{Result: res}
	if err != nil {
		return summary, err
	}

	var doc bytes.Buffer
	err = exporter.GenerateICS(res.Courses, opts.Week1, exporter.Options{
		CalendarName: opts.CalendarName,
		TZID:         opts.TZID,
		Now:          opts.Now,
	}, &doc)
	if err != nil {
		return summary, err
	}

	report, err := exporter.Verify(doc.String())
	if err != nil {
		return summary, err
	}
	summary.Events = report.Events
	summary.DuplicateUIDs = report.DuplicateUIDs
	logger.Debug("calendar verified", zap.Int("events", report.Events), zap.Int("timezones", report.Timezones))
	if report.DuplicateUIDs > 0 {
		logger.Warn("repeated event UIDs", zap.Int("duplicates", report.DuplicateUIDs))
	}

	// Files are only written once the calendar has been encoded and verified.
	if opts.PreviewCSV != "" {
		path, err := writeFile(opts.PreviewCSV, func(f *os.File) error {
			return exporter.WritePreviewCSV(res.Courses, f)
		})
		if err != nil {
			return summary, fmt.Errorf("failed to write preview: %w", err)
		}
		summary.PreviewPath = path
	}

	// The document already uses CRLF, so it is written byte for byte.
	path, err := writeFile(opts.Output, func(f *os.File) error {
		_, err := doc.WriteTo(f)
		return err
	})
	if err != nil {
		return summary, fmt.Errorf("failed to write calendar: %w", err)
	}
	summary.OutputPath = path

	logger.Info("calendar written", zap.String("path", path), zap.Int("events", summary.Events))
	return summary, nil
}

func writeFile(path string, write func(f *os.File) error) (string, error) {
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := write(file); err != nil {
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}
