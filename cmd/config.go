package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/baibanqin/xjtlu-ebridge-html-to-ics/pkg/config"
	"github.com/baibanqin/xjtlu-ebridge-html-to-ics/pkg/tui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage gridcal configuration",
	Long:  "View or edit your saved defaults (week 1 Monday, calendar name, timezone and week range).",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		changed, err := applyConfigFlags(cmd.Flags(), cfg)
		if err != nil {
			return err
		}

		// If no flags are given, launch the interactive TUI flow
		if !changed {
			return tui.RunConfigTUI()
		}

		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Println("✅ Configuration saved.")
		return nil
	},
}

func applyConfigFlags(flags *pflag.FlagSet, cfg *config.AppConfig) (bool, error) {
	changed := false

	if flags.Changed("week1") {
		week1, _ := flags.GetString("week1")
		if _, err := config.ParseWeek1(week1); err != nil {
			return false, err
		}
		cfg.Week1 = week1
		changed = true
	}
	if flags.Changed("tz") {
		tz, _ := flags.GetString("tz")
		if _, err := time.LoadLocation(tz); err != nil {
			return false, fmt.Errorf("unknown timezone %q: %w", tz, err)
		}
		cfg.Timezone = tz
		changed = true
	}
	if flags.Changed("calendar-name") {
		cfg.CalendarName, _ = flags.GetString("calendar-name")
		changed = true
	}
	if flags.Changed("max-week") {
		maxWeek, _ := flags.GetInt("max-week")
		if maxWeek < 1 {
			return false, fmt.Errorf("max-week must be at least 1, got %d", maxWeek)
		}
		cfg.MaxWeek = maxWeek
		changed = true
	}

	cfg.Normalize()
	return changed, nil
}

func addConfigFlags(flags *pflag.FlagSet) {
	flags.String("week1", "", "Save the Monday of teaching week 1 (YYYY-MM-DD)")
	flags.String("tz", "", "Save the default timezone")
	flags.String("calendar-name", "", "Save the default calendar name")
	flags.Int("max-week", 0, "Save the highest teaching week number")
}

func init() {
	rootCmd.AddCommand(configCmd)
	addConfigFlags(configCmd.Flags())
}
