package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/baibanqin/xjtlu-ebridge-html-to-ics/pkg/config"
	"github.com/baibanqin/xjtlu-ebridge-html-to-ics/pkg/convert"
	"github.com/baibanqin/xjtlu-ebridge-html-to-ics/pkg/tui"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Convert a saved timetable page to an ICS file",
	Long: `Parse the Timetable Plus grid page saved from e-Bridge and write one
calendar event per course per teaching week. Flags override the values
saved with "gridcal config".`,
	Example: `  gridcal export --html saved_resource.html --week1 2024-02-26
  gridcal export --html page.html --week1 2024-09-09 --max-week 14 --out autumn.ics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		opts, err := exportOptions(cmd.Flags(), cfg)
		if err != nil {
			return err
		}
		opts.Logger = logger
		opts.Now = time.Now()

		var summary *convert.Summary
		var runErr error

		_ = spinner.New().
			Title(fmt.Sprintf("Converting %s...", opts.HTMLPath)).
			Action(func() {
				summary, runErr = convert.Run(opts)
			}).
			Run()

		if runErr != nil {
			return runErr
		}

		tui.PrintSummary(summary)
		return nil
	},
}

// exportOptions merges the saved configuration with explicitly set flags.
func exportOptions(flags *pflag.FlagSet, cfg *config.AppConfig) (convert.Options, error) {
	htmlPath, _ := flags.GetString("html")
	opts := convert.Options{
		HTMLPath:     htmlPath,
		Output:       cfg.Output,
		PreviewCSV:   cfg.PreviewCSV,
		MaxWeek:      cfg.MaxWeek,
		CalendarName: cfg.CalendarName,
		TZID:         cfg.Timezone,
	}
	merged := *cfg

	if flags.Changed("week1") {
		merged.Week1, _ = flags.GetString("week1")
	}
	if flags.Changed("out") {
		opts.Output, _ = flags.GetString("out")
	}
	if flags.Changed("preview-csv") {
		opts.PreviewCSV, _ = flags.GetString("preview-csv")
	}
	if flags.Changed("calendar-name") {
		opts.CalendarName, _ = flags.GetString("calendar-name")
	}
	if flags.Changed("tz") {
		opts.TZID, _ = flags.GetString("tz")
	}
	if flags.Changed("max-week") {
		opts.MaxWeek, _ = flags.GetInt("max-week")
	}

	anchor, err := merged.Week1Date()
	if err != nil {
		return opts, err
	}
	opts.Week1 = anchor

	if opts.MaxWeek < 1 {
		return opts, fmt.Errorf("max-week must be at least 1, got %d", opts.MaxWeek)
	}
	if opts.TZID == "" {
		return opts, fmt.Errorf("timezone cannot be empty")
	}
	if opts.Output == "" {
		return opts, fmt.Errorf("output path cannot be empty")
	}

	return opts, nil
}

func addExportFlags(flags *pflag.FlagSet) {
	flags.String("html", "", "Path to the saved timetable HTML file")
	flags.String("week1", "", "Monday of teaching week 1 (YYYY-MM-DD)")
	flags.StringP("out", "o", config.DefaultOutput, "Output ICS file path")
	flags.String("calendar-name", config.DefaultCalendarName, "Calendar display name")
	flags.String("tz", config.DefaultTimezone, "IANA timezone for event times")
	flags.Int("max-week", config.DefaultMaxWeek, "Highest teaching week number to keep")
	flags.String("preview-csv", config.DefaultPreviewCSV, "Preview CSV path (empty to disable)")
}

func init() {
	rootCmd.AddCommand(exportCmd)

	addExportFlags(exportCmd.Flags())
	exportCmd.MarkFlagRequired("html")
}
