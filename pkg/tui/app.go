package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/baibanqin/xjtlu-ebridge-html-to-ics/pkg/config"
)

const (
	defaultAccent = "99"
	mutedBorder   = "238"
	errorColor    = "196"
)

// Package-level styles used by the print helpers. GetTheme refreshes
// accentStyle from the saved accent color.
var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(errorColor)).Bold(true)
)

func savedAccent() string {
	cfg, err := config.Load()
	if err != nil || cfg.AccentColor == "" {
		return defaultAccent
	}
	return cfg.AccentColor
}

// GetTheme builds the form theme from the saved accent color and updates
// the package accent style to match.
func GetTheme() *huh.Theme {
	accent := savedAccent()
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(accent))
	return GetCustomTheme(accent)
}

// GetCustomTheme returns the Charm theme recolored with accent.
func GetCustomTheme(accent string) *huh.Theme {
	t := huh.ThemeCharm()
	c := lipgloss.Color(accent)

	t.Focused.Base = t.Focused.Base.Border(lipgloss.RoundedBorder()).BorderForeground(c).Padding(0, 1)
	t.Focused.Title = t.Focused.Title.Foreground(c).Bold(true)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(c)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(c)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(c)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(c)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(lipgloss.Color("0")).Background(c)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(lipgloss.Color(errorColor))

	t.Blurred.Base = t.Blurred.Base.Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(mutedBorder)).Padding(0, 1)

	return t
}

// RunTUI shows the main menu and dispatches to the chosen flow.
func RunTUI(logger *zap.Logger) error {
	var action string

	menu := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What would you like to do?").
				Options(
					huh.NewOption("📅 Convert Timetable to ICS", "convert"),
					huh.NewOption("🔍 Preview Parsed Timetable", "preview"),
					huh.NewOption("⚙️ Settings", "config"),
				).
				Value(&action),
		),
	).WithTheme(GetTheme())

	if err := menu.Run(); err != nil {
		return err
	}

	switch action {
	case "preview":
		return RunPreviewTUI(logger)
	case "config":
		return RunConfigTUI()
	default:
		return RunConvertTUI(logger)
	}
}
