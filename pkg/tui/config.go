package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/baibanqin/xjtlu-ebridge-html-to-ics/pkg/config"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI() error {
	for {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("Set Semester Start (Week 1 Monday)", "week1"),
						huh.NewOption("Set Calendar Defaults", "calendar"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back to Main Menu", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		switch action {
		case "back":
			return nil
		case "theme":
			err = runSetThemeTUI(cfg)
		case "week1":
			err = runSetWeek1TUI(cfg)
		case "calendar":
			err = runSetCalendarTUI(cfg)
		case "view":
			fmt.Println(accentStyle.Render("\n--- Current Configuration (~/.gridcal.yaml) ---"))
			fmt.Print(describeConfig(cfg))
			fmt.Println()
		}

		if err != nil {
			return err
		}
	}
}

func describeConfig(cfg *config.AppConfig) string {
	var b strings.Builder
	if cfg.Week1 == "" {
		b.WriteString("Week 1 Monday: Not set\n")
	} else {
		fmt.Fprintf(&b, "Week 1 Monday: %s\n", cfg.Week1)
	}
	fmt.Fprintf(&b, "Calendar Name: %s\n", cfg.CalendarName)
	fmt.Fprintf(&b, "Timezone: %s\n", cfg.Timezone)
	fmt.Fprintf(&b, "Max Week: %d\n", cfg.MaxWeek)
	fmt.Fprintf(&b, "Output: %s\n", cfg.Output)
	fmt.Fprintf(&b, "Preview CSV: %s\n", cfg.PreviewCSV)
	fmt.Fprintf(&b, "Accent Color: %s\n", cfg.AccentColor)
	return b.String()
}

func runSetWeek1TUI(cfg *config.AppConfig) error {
	input := cfg.Week1

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter the Monday of teaching week 1").
				Description("Every week number on the timetable is counted from this date.").
				Placeholder("e.g. 2024-02-26").
				Value(&input).
				Validate(validateWeek1),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Week1 = input
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Week 1 now starts on: %s\n", input)))
	return nil
}

func runSetCalendarTUI(cfg *config.AppConfig) error {
	name := cfg.CalendarName
	tz := cfg.Timezone
	maxWeek := strconv.Itoa(cfg.MaxWeek)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Calendar name").
				Value(&name),
			huh.NewSelect[string]().
				Title("Timezone").
				Options(
					huh.NewOption("Asia/Shanghai (Suzhou campus)", "Asia/Shanghai"),
					huh.NewOption("Asia/Hong_Kong", "Asia/Hong_Kong"),
					huh.NewOption("Europe/London", "Europe/London"),
					huh.NewOption("UTC", "UTC"),
				).
				Value(&tz),
			huh.NewInput().
				Title("Maximum teaching week").
				Value(&maxWeek).
				Validate(validateMaxWeek),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.CalendarName = strings.TrimSpace(name)
	cfg.Timezone = tz
	cfg.MaxWeek, _ = strconv.Atoi(strings.TrimSpace(maxWeek))
	cfg.Normalize()

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Calendar defaults saved: %s (%s, %d weeks)\n", cfg.CalendarName, cfg.Timezone, cfg.MaxWeek)))
	return nil
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

func validateHex(str string) error {
	if len(str) != 7 || !strings.HasPrefix(str, "#") {
		return fmt.Errorf("must be a valid 6-character hex code starting with #")
	}
	if _, err := strconv.ParseUint(str[1:], 16, 32); err != nil {
		return fmt.Errorf("must be a valid 6-character hex code starting with #")
	}
	return nil
}

func runSetThemeTUI(cfg *config.AppConfig) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color for gridcal").
				Description("Select a curated Charm style or choose Custom to enter your own Hex.").
				Options(
					huh.NewOption(fmt.Sprintf("%s Lavender", colorBlock("99")), "99"),
					huh.NewOption(fmt.Sprintf("%s Sakura Pink", colorBlock("205")), "205"),
					huh.NewOption(fmt.Sprintf("%s Ocean Blue", colorBlock("86")), "86"),
					huh.NewOption(fmt.Sprintf("%s Matrix Green", colorBlock("42")), "42"),
					huh.NewOption("✨ Custom Hex Code", "custom"),
				).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter a Hex Color Code").
					Description("Include the `#` symbol. Example: #FF00FF").
					Placeholder("#").
					Value(&hexInput).
					Validate(validateHex),
			),
		).WithTheme(GetTheme())

		if err := hexForm.Run(); err != nil {
			return err
		}
		cfg.AccentColor = hexInput
	} else {
		cfg.AccentColor = input
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ The theme color is now saved.\n"))
	return nil
}
