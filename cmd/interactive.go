package cmd

import (
	"github.com/spf13/cobra"

	"github.com/baibanqin/xjtlu-ebridge-html-to-ics/pkg/tui"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive TUI",
	Long:  `Launch the Text User Interface to pick a saved page, preview the parsed courses, and export them interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.RunTUI(logger)
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
