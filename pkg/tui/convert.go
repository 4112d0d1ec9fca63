package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"go.uber.org/zap"

	"github.com/baibanqin/xjtlu-ebridge-html-to-ics/pkg/config"
	"github.com/baibanqin/xjtlu-ebridge-html-to-ics/pkg/convert"
	"github.com/baibanqin/xjtlu-ebridge-html-to-ics/pkg/exporter"
	"github.com/baibanqin/xjtlu-ebridge-html-to-ics/pkg/grid"
)

// RunConvertTUI asks for the saved page and semester settings, then writes
// the calendar and preview files.
func RunConvertTUI(logger *zap.Logger) error {
	fmt.Println(accentStyle.Render("Welcome to the XJTLU Timetable Converter!"))

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	htmlPath := "saved_resource.html"
	week1 := cfg.Week1
	name := cfg.CalendarName
	tz := cfg.Timezone
	maxWeek := strconv.Itoa(cfg.MaxWeek)
	output := cfg.Output
	saveDefaults := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Saved timetable page").
				Description("The HTML file saved from the Timetable Plus grid view").
				Value(&htmlPath).
				Validate(validateHTMLPath),
			huh.NewInput().
				Title("Monday of teaching week 1").
				Placeholder("YYYY-MM-DD").
				Value(&week1).
				Validate(validateWeek1),
			huh.NewInput().
				Title("Maximum teaching week").
				Value(&maxWeek).
				Validate(validateMaxWeek),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Calendar name").
				Value(&name),
			huh.NewInput().
				Title("Timezone").
				Value(&tz).
				Validate(validateTimezone),
			huh.NewInput().
				Title("Output file name").
				Value(&output).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("file name cannot be empty")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Save these settings as defaults?").
				Value(&saveDefaults),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	if !strings.HasSuffix(output, ".ics") {
		output += ".ics"
	}
	anchor, _ := config.ParseWeek1(week1)
	weeks, _ := strconv.Atoi(maxWeek)

	if saveDefaults {
		cfg.Week1 = week1
		cfg.CalendarName = name
		cfg.Timezone = tz
		cfg.MaxWeek = weeks
		cfg.Output = output
		if err := config.Save(cfg); err != nil {
			return err
		}
	}

	var summary *convert.Summary
	var runErr error

	_ = spinner.New().
		Title("Parsing timetable...").
		Action(func() {
			summary, runErr = convert.Run(convert.Options{
				HTMLPath:     htmlPath,
				Output:       output,
				PreviewCSV:   cfg.PreviewCSV,
				Week1:        anchor,
				MaxWeek:      weeks,
				CalendarName: name,
				TZID:         tz,
				Now:          time.Now(),
				Logger:       logger,
			})
		}).
		Run()

	if runErr != nil {
		if summary != nil && len(summary.Result.Skipped) > 0 {
			fmt.Println(exporter.RenderSkippedTable(summary.Result.Skipped, accentStyle))
		}
		return runErr
	}

	PrintSummary(summary)
	return nil
}

// RunPreviewTUI parses a saved page and shows the courses without writing files.
func RunPreviewTUI(logger *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	htmlPath := "saved_resource.html"
	maxWeek := strconv.Itoa(cfg.MaxWeek)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Saved timetable page").
				Value(&htmlPath).
				Validate(validateHTMLPath),
			huh.NewInput().
				Title("Maximum teaching week").
				Value(&maxWeek).
				Validate(validateMaxWeek),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}
	weeks, _ := strconv.Atoi(maxWeek)

	var res grid.Result
	var parseErr error

	_ = spinner.New().
		Title("Parsing timetable...").
		Action(func() {
			res, parseErr = convert.Parse(htmlPath, weeks, logger)
		}).
		Run()

	PrintPreview(res)
	return parseErr
}

// PrintSummary reports the files written by a conversion run.
func PrintSummary(s *convert.Summary) {
	fmt.Println(accentStyle.Render(fmt.Sprintf("\nSuccess! Parsed %d course records into %d calendar events.", len(s.Result.Courses), s.Events)))
	fmt.Printf("ICS file written to: %s\n", s.OutputPath)
	if s.PreviewPath != "" {
		fmt.Printf("Preview CSV written to: %s\n", s.PreviewPath)
	}
	if s.DuplicateUIDs > 0 {
		fmt.Printf("Events sharing a UID: %d (a course is listed with overlapping weeks)\n", s.DuplicateUIDs)
	}
	if n := len(s.Result.Skipped); n > 0 {
		fmt.Printf("Skipped event blocks: %d (run `gridcal preview` for details)\n", n)
	}

	courses := s.Result.Courses
	if len(courses) > 10 {
		courses = courses[:10]
	}
	fmt.Println("\nFirst parsed records:")
	for _, c := range courses {
		fmt.Printf("- %s | %s | %s-%s | weeks=%s | loc=%s | teacher=%s\n",
			c.Name, exporter.WeekdayName(c.Weekday), c.StartTime, c.EndTime, c.WeeksString(), c.Location, c.Teacher)
	}
}

// PrintPreview shows the extracted courses and every skipped block.
func PrintPreview(res grid.Result) {
	fmt.Println(accentStyle.Render(fmt.Sprintf("Event blocks: %d | Courses: %d | Skipped: %d", res.Blocks, len(res.Courses), len(res.Skipped))))

	if len(res.Courses) > 0 {
		fmt.Println(exporter.RenderPreviewTable(res.Courses, accentStyle))
	} else {
		fmt.Println(errorStyle.Render("No course records were parsed from the HTML file."))
	}

	if len(res.Skipped) > 0 {
		fmt.Println(accentStyle.Render("\nSkipped event blocks"))
		fmt.Println(exporter.RenderSkippedTable(res.Skipped, accentStyle))
	}
}

func validateHTMLPath(s string) error {
	if s == "" {
		return fmt.Errorf("path cannot be empty")
	}
	info, err := os.Stat(s)
	if err != nil {
		return fmt.Errorf("file not found: %s", s)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", s)
	}
	return nil
}

func validateWeek1(s string) error {
	_, err := config.ParseWeek1(s)
	return err
}

func validateMaxWeek(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 99 {
		return fmt.Errorf("must be a number between 1 and 99")
	}
	return nil
}

func validateTimezone(s string) error {
	if s == "" {
		return fmt.Errorf("timezone cannot be empty")
	}
	if _, err := time.LoadLocation(s); err != nil {
		return fmt.Errorf("unknown timezone: %s", s)
	}
	return nil
}
