package engine

import (
	"fmt"

	"github.com/optalgo/boxpack/internal/model"
)

// Algorithm is a tick-driven search over one solution. Tick advances by one
// step and reports whether the algorithm can still make progress; callers
// own the termination policy beyond that (tick budgets, wall-clock limits).
type Algorithm interface {
	Tick() bool
	CurrentSolution() *model.Solution
}

// AlgorithmKind names one of the closed set of search algorithms.
type AlgorithmKind int

const (
	KindLocalSearch AlgorithmKind = iota
	KindSimulatedAnnealing
	KindGreedy
)

func (k AlgorithmKind) String() string {
	switch k {
	case KindLocalSearch:
		return "local-search"
	case KindSimulatedAnnealing:
		return "annealing"
	case KindGreedy:
		return "greedy"
	default:
		return fmt.Sprintf("AlgorithmKind(%d)", int(k))
	}
}

// ParseAlgorithm resolves an algorithm name from the CLI or a config value.
func ParseAlgorithm(name string) (AlgorithmKind, error) {
	switch name {
	case "local-search":
		return KindLocalSearch, nil
	case "annealing":
		return KindSimulatedAnnealing, nil
	case "greedy":
		return KindGreedy, nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q (want local-search, annealing or greedy)", name)
	}
}

// AlgorithmNames lists the valid ParseAlgorithm inputs.
func AlgorithmNames() []string {
	return []string{"local-search", "annealing", "greedy"}
}

// bestScored returns all moves whose score ties for best. The slice is never
// empty for non-empty input.
func bestScored(moves []ScoredMove) []ScoredMove {
	best := []ScoredMove{moves[0]}
	for _, m := range moves[1:] {
		switch {
		case m.Score.Better(best[0].Score):
			best = append(best[:0], m)
		case m.Score.Equal(best[0].Score):
			best = append(best, m)
		}
	}
	return best
}
