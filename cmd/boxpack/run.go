package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/optalgo/boxpack/internal/engine"
	"github.com/optalgo/boxpack/internal/export"
	"github.com/optalgo/boxpack/internal/model"
)

func newRunCmd() *cobra.Command {
	var (
		sideLength   int
		rectCount    int
		minW, maxW   int
		minH, maxH   int
		seed         int64
		ticks        int
		algorithm    string
		neighborhood string
		selection    string
		pngPath      string
		pdfPath      string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate a problem instance and optimize it",
		RunE: func(cmd *cobra.Command, args []string) error {
			problem := model.NewProblem(sideLength, rectCount,
				model.SizeRange{Min: minW, Max: maxW},
				model.SizeRange{Min: minH, Max: maxH},
				seed)

			log := logrus.WithFields(logrus.Fields{
				"instance": problem.ID,
				"side":     sideLength,
				"rects":    rectCount,
			})

			algKind, err := engine.ParseAlgorithm(algorithm)
			if err != nil {
				return err
			}

			var alg engine.Algorithm
			switch algKind {
			case engine.KindGreedy:
				selKind, err := engine.ParseSelection(selection)
				if err != nil {
					return err
				}
				alg = engine.NewGreedySearch(problem.Solution(), selKind)
			default:
				nbKind, err := engine.ParseNeighborhood(neighborhood)
				if err != nil {
					return err
				}
				if algKind == engine.KindLocalSearch {
					alg = engine.NewLocalSearch(problem.Solution(), nbKind, seed)
				} else {
					alg = engine.NewSimulatedAnnealing(problem.Solution(), nbKind, seed)
				}
			}

			log.WithField("algorithm", algKind).Info("starting search")
			start := time.Now()
			done := 0
			for done < ticks && alg.Tick() {
				done++
				if done%100 == 0 {
					log.WithFields(logrus.Fields{
						"tick":  done,
						"boxes": alg.CurrentSolution().BoxCount(),
					}).Info("progress")
				}
			}
			elapsed := time.Since(start)

			s := alg.CurrentSolution()
			log.WithFields(logrus.Fields{
				"ticks":   done,
				"boxes":   s.BoxCount(),
				"valid":   s.IsValid(),
				"elapsed": elapsed,
			}).Info("search finished")
			fmt.Fprintln(cmd.OutOrStdout(), s)

			title := fmt.Sprintf("boxpack %s (%s)", problem.ID, algKind)
			if pngPath != "" {
				if err := export.RenderPNG(pngPath, s); err != nil {
					return fmt.Errorf("render png: %w", err)
				}
				log.WithField("path", pngPath).Info("wrote PNG")
			}
			if pdfPath != "" {
				if err := export.RenderPDF(pdfPath, s, title); err != nil {
					return fmt.Errorf("render pdf: %w", err)
				}
				log.WithField("path", pdfPath).Info("wrote PDF")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&sideLength, "side", 15, "box side length")
	cmd.Flags().IntVar(&rectCount, "rects", 50, "number of rectangles to generate")
	cmd.Flags().IntVar(&minW, "min-width", 1, "minimum rectangle width")
	cmd.Flags().IntVar(&maxW, "max-width", 8, "maximum rectangle width")
	cmd.Flags().IntVar(&minH, "min-height", 1, "minimum rectangle height")
	cmd.Flags().IntVar(&maxH, "max-height", 8, "maximum rectangle height")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed for generation and search")
	cmd.Flags().IntVar(&ticks, "ticks", 1000, "tick budget")
	cmd.Flags().StringVar(&algorithm, "algorithm", "local-search",
		fmt.Sprintf("search algorithm (%v)", engine.AlgorithmNames()))
	cmd.Flags().StringVar(&neighborhood, "neighborhood", "geometric",
		fmt.Sprintf("neighborhood strategy (%v)", engine.NeighborhoodNames()))
	cmd.Flags().StringVar(&selection, "selection", "by-area",
		fmt.Sprintf("greedy selection schema (%v)", engine.SelectionNames()))
	cmd.Flags().StringVar(&pngPath, "png", "", "write the final packing as PNG")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write the final packing as PDF report")
	return cmd
}
