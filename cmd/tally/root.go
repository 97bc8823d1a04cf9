package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	tallylog "github.com/davetashner/tally/internal/log"
)

// Global flag values.
var (
	verbose   bool
	quiet     bool
	noColor   bool
	logFormat string
)

// rootCmd is the base command for tally.
var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "Turn checklist exports into a progress dashboard",
	Long: `Tally reads checklist exports from a task board (JSON documents with
checklists of "<city>\t<points>" items) and reports progress against a
delivery date: percent complete, calendar and business days left, and the
points per day and per person needed to finish on time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if err := tallylog.SetupFormat(verbose, quiet, logFormat); err != nil {
			return exitError(ExitInvalidArgs, "tally: %v", err)
		}
		if noColor {
			color.NoColor = true
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", tallylog.FormatText, "log format: text or json")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
