package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/baibanqin/xjtlu-ebridge-html-to-ics/pkg/config"
	"github.com/baibanqin/xjtlu-ebridge-html-to-ics/pkg/convert"
	"github.com/baibanqin/xjtlu-ebridge-html-to-ics/pkg/exporter"
	"github.com/baibanqin/xjtlu-ebridge-html-to-ics/pkg/tui"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the courses parsed from a saved timetable page",
	Long: `Parse the saved page and print every extracted course and every
skipped event block without writing a calendar.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		htmlPath, _ := cmd.Flags().GetString("html")
		maxWeek := cfg.MaxWeek
		if cmd.Flags().Changed("max-week") {
			maxWeek, _ = cmd.Flags().GetInt("max-week")
		}
		if maxWeek < 1 {
			return fmt.Errorf("max-week must be at least 1, got %d", maxWeek)
		}

		res, parseErr := convert.Parse(htmlPath, maxWeek, logger)
		tui.GetTheme()
		tui.PrintPreview(res)

		if csvPath, _ := cmd.Flags().GetString("csv"); csvPath != "" && len(res.Courses) > 0 {
			file, err := os.Create(csvPath)
			if err != nil {
				return fmt.Errorf("failed to create preview file: %w", err)
			}
			defer file.Close()

			if err := exporter.WritePreviewCSV(res.Courses, file); err != nil {
				return fmt.Errorf("failed to write preview: %w", err)
			}
			fmt.Printf("Preview CSV written to: %s\n", csvPath)
		}

		return parseErr
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().String("html", "", "Path to the saved timetable HTML file")
	previewCmd.Flags().Int("max-week", config.DefaultMaxWeek, "Highest teaching week number to keep")
	previewCmd.Flags().String("csv", "", "Also write the parsed records to this CSV file")
	previewCmd.MarkFlagRequired("html")
}
