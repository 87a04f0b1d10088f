package cli

import (
	"github.com/Petkomat/srt-manipulator/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "srt-manipulator",
	Short: "Retime subtitle files with anchor corrections or a constant offset",
	Long: `srt-manipulator rewrites the timestamps of subtitle files.

Corrections come either from a file of old@new anchor pairs, interpolated
linearly between anchors, or from a constant offset in seconds.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
