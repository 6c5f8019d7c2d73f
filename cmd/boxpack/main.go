// boxpack: 2D box-packing optimizer
//
// Packs unit-grid rectangles into as few fixed-size square boxes as
// possible, using local search, simulated annealing or greedy construction.
//
// Build:
//   go build -o boxpack ./cmd/boxpack

package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "boxpack",
		Short:         "2D box-packing optimizer",
		Long:          "boxpack packs rectangles into as few fixed-size square boxes as possible.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(*cobra.Command, []string) {
			logrus.SetLevel(logrus.InfoLevel)
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newBenchCmd())
	return cmd
}
