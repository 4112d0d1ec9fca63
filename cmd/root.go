package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/baibanqin/xjtlu-ebridge-html-to-ics/pkg/grid"
	"github.com/baibanqin/xjtlu-ebridge-html-to-ics/pkg/logging"
)

// Process exit codes.
const (
	exitFailure    = 1
	exitNoCourses  = 2
	exitAxisLeaked = 3
)

var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "gridcal",
	Short: "Convert a saved XJTLU timetable page into an ICS calendar",
	Long: `gridcal reads the Timetable Plus grid page saved from XJTLU e-Bridge
and turns every course block into weekly calendar events that can be
imported into any calendar application.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger = logging.New(verbose)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log every skipped event block")
}

// exitCode maps a command error onto the process exit status.
func exitCode(err error) int {
	switch {
	case errors.Is(err, grid.ErrNoCourses):
		return exitNoCourses
	case errors.Is(err, grid.ErrTimeAxisLeak):
		return exitAxisLeaked
	default:
		return exitFailure
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}
