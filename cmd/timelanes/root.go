package main

import (
	"github.com/spf13/cobra"

	applog "timelanes/internal/log"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
)

// rootCmd is the base command for timelanes.
var rootCmd = &cobra.Command{
	Use:   "timelanes",
	Short: "Render alternating-lane timeline charts",
	Long: `Timelanes turns time-stamped records into a horizontal timeline chart:
events are placed along a time axis and alternately above and below it in
four lanes, with circular glyphs for point events, elongated pill glyphs
for ranged events, and gradient connector bars tying each event to the
axis.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		applog.Setup(verbose, quiet)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
