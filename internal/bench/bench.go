// Package bench runs the search algorithms against a suite of generated
// problem instances and reports how they did. It drives the engine only
// through Problem construction and the Tick loop, the same way the CLI does.
package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/maruel/natural"
	"github.com/sirupsen/logrus"

	"github.com/optalgo/boxpack/internal/engine"
	"github.com/optalgo/boxpack/internal/model"
)

// Case is one named problem instance of the suite.
type Case struct {
	Name       string
	SideLength int
	RectCount  int
	Widths     model.SizeRange
	Heights    model.SizeRange
	Seed       int64
}

// Result is the outcome of one algorithm/strategy combination on one case.
type Result struct {
	RunID     string
	Case      string
	Algorithm string
	Strategy  string
	Ticks     int
	Boxes     int
	Valid     bool
	Elapsed   time.Duration
}

// DefaultCases returns the standard suite: instance sizes that finish in
// seconds but still separate the strategies.
func DefaultCases(seed int64) []Case {
	return []Case{
		{Name: "small-10", SideLength: 10, RectCount: 25, Widths: model.SizeRange{Min: 1, Max: 7}, Heights: model.SizeRange{Min: 1, Max: 7}, Seed: seed},
		{Name: "small-15", SideLength: 15, RectCount: 40, Widths: model.SizeRange{Min: 2, Max: 9}, Heights: model.SizeRange{Min: 2, Max: 9}, Seed: seed + 1},
		{Name: "medium-20", SideLength: 20, RectCount: 80, Widths: model.SizeRange{Min: 2, Max: 12}, Heights: model.SizeRange{Min: 2, Max: 12}, Seed: seed + 2},
	}
}

// Run executes every search combination on every case with the given tick
// budget and returns the results sorted by case name (natural order), then
// algorithm and strategy.
func Run(cases []Case, maxTicks int) []Result {
	log := logrus.WithField("component", "bench")

	type combo struct {
		algorithm engine.AlgorithmKind
		strategy  string
		build     func(*model.Solution, int64) engine.Algorithm
	}
	var combos []combo
	for _, nk := range []engine.NeighborhoodKind{engine.KindGeometric, engine.KindGeometricOverlap, engine.KindPermutation} {
		nk := nk
		combos = append(combos,
			combo{engine.KindLocalSearch, nk.String(), func(s *model.Solution, seed int64) engine.Algorithm {
				return engine.NewLocalSearch(s, nk, seed)
			}},
			combo{engine.KindSimulatedAnnealing, nk.String(), func(s *model.Solution, seed int64) engine.Algorithm {
				return engine.NewSimulatedAnnealing(s, nk, seed)
			}},
		)
	}
	for _, sk := range []engine.SelectionKind{engine.KindByArea, engine.KindBySpace} {
		sk := sk
		combos = append(combos, combo{engine.KindGreedy, sk.String(), func(s *model.Solution, _ int64) engine.Algorithm {
			return engine.NewGreedySearch(s, sk)
		}})
	}

	var results []Result
	for _, c := range cases {
		for _, cb := range combos {
			problem := model.NewProblem(c.SideLength, c.RectCount, c.Widths, c.Heights, c.Seed)
			alg := cb.build(problem.Solution(), c.Seed)

			start := time.Now()
			ticks := 0
			for ticks < maxTicks && alg.Tick() {
				ticks++
			}
			elapsed := time.Since(start)

			s := alg.CurrentSolution()
			r := Result{
				RunID:     uuid.New().String()[:8],
				Case:      c.Name,
				Algorithm: cb.algorithm.String(),
				Strategy:  cb.strategy,
				Ticks:     ticks,
				Boxes:     s.BoxCount(),
				Valid:     s.IsValid(),
				Elapsed:   elapsed,
			}
			results = append(results, r)
			log.WithFields(logrus.Fields{
				"run":       r.RunID,
				"case":      r.Case,
				"algorithm": r.Algorithm,
				"strategy":  r.Strategy,
				"boxes":     r.Boxes,
				"ticks":     r.Ticks,
				"elapsed":   r.Elapsed,
			}).Info("finished run")
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Case != results[j].Case {
			return natural.Less(results[i].Case, results[j].Case)
		}
		if results[i].Algorithm != results[j].Algorithm {
			return results[i].Algorithm < results[j].Algorithm
		}
		return results[i].Strategy < results[j].Strategy
	})
	return results
}

// WriteCSV writes the results as CSV with a header row.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"run_id", "case", "algorithm", "strategy", "ticks", "boxes", "valid", "elapsed_ms"}); err != nil {
		return err
	}
	for _, r := range results {
		record := []string{
			r.RunID,
			r.Case,
			r.Algorithm,
			r.Strategy,
			strconv.Itoa(r.Ticks),
			strconv.Itoa(r.Boxes),
			strconv.FormatBool(r.Valid),
			fmt.Sprintf("%.1f", float64(r.Elapsed.Microseconds())/1000),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
