package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/optalgo/boxpack/internal/bench"
)

func newBenchCmd() *cobra.Command {
	var (
		ticks   int
		seed    int64
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the benchmark suite and write a CSV report",
		RunE: func(cmd *cobra.Command, args []string) error {
			results := bench.Run(bench.DefaultCases(seed), ticks)

			out := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			if err := bench.WriteCSV(out, results); err != nil {
				return err
			}
			if outPath != "" {
				logrus.WithField("path", outPath).Info("wrote benchmark results")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&ticks, "ticks", 500, "tick budget per run")
	cmd.Flags().Int64Var(&seed, "seed", 42, "base seed for instance generation")
	cmd.Flags().StringVar(&outPath, "out", "", "CSV output path (default stdout)")
	return cmd
}
