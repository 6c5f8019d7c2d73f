package engine

import (
	"fmt"

	"github.com/optalgo/boxpack/internal/model"
)

// NeighborhoodKind names one of the closed set of neighborhood strategies.
type NeighborhoodKind int

const (
	KindGeometric NeighborhoodKind = iota
	KindGeometricOverlap
	KindPermutation
)

func (k NeighborhoodKind) String() string {
	switch k {
	case KindGeometric:
		return "geometric"
	case KindGeometricOverlap:
		return "geometric-overlap"
	case KindPermutation:
		return "permutation"
	default:
		return fmt.Sprintf("NeighborhoodKind(%d)", int(k))
	}
}

// ParseNeighborhood resolves a strategy name from the CLI or a config value.
func ParseNeighborhood(name string) (NeighborhoodKind, error) {
	switch name {
	case "geometric":
		return KindGeometric, nil
	case "geometric-overlap":
		return KindGeometricOverlap, nil
	case "permutation":
		return KindPermutation, nil
	default:
		return 0, fmt.Errorf("unknown neighborhood %q (want geometric, geometric-overlap or permutation)", name)
	}
}

// NeighborhoodNames lists the valid ParseNeighborhood inputs.
func NeighborhoodNames() []string {
	return []string{"geometric", "geometric-overlap", "permutation"}
}

// Neighborhood enumerates candidate moves with their resulting scores for a
// solution. Implementations are stateful (call counters, worker pools) and
// belong to exactly one algorithm instance.
type Neighborhood interface {
	// Kind identifies the strategy.
	Kind() NeighborhoodKind
	// Initialize prepares a solution for this strategy. Only the
	// permutation neighborhood does real work here: it needs the layout in
	// decoded (first-fit packed) form before index-based moves make sense.
	Initialize(s *model.Solution)
	// Neighbors returns the scored candidate moves for the solution.
	Neighbors(s *model.Solution) []ScoredMove
	// CurrentScore scores the solution on this strategy's own scale, so the
	// algorithms can compare it against candidate move scores.
	CurrentScore(s *model.Solution) model.Score
}

// NewNeighborhood constructs the strategy for a kind.
func NewNeighborhood(kind NeighborhoodKind) Neighborhood {
	switch kind {
	case KindGeometric:
		return NewGeometricNeighborhood(WorkerCount())
	case KindGeometricOverlap:
		return NewGeometricOverlapNeighborhood(WorkerCount())
	case KindPermutation:
		return NewPermutationNeighborhood()
	default:
		panic(fmt.Sprintf("engine: unknown neighborhood kind %d", int(kind)))
	}
}

// SelectionKind names one of the closed set of greedy selection schemas.
type SelectionKind int

const (
	KindByArea SelectionKind = iota
	KindBySpace
)

func (k SelectionKind) String() string {
	switch k {
	case KindByArea:
		return "by-area"
	case KindBySpace:
		return "by-space"
	default:
		return fmt.Sprintf("SelectionKind(%d)", int(k))
	}
}

// ParseSelection resolves a selection schema name.
func ParseSelection(name string) (SelectionKind, error) {
	switch name {
	case "by-area":
		return KindByArea, nil
	case "by-space":
		return KindBySpace, nil
	default:
		return 0, fmt.Errorf("unknown selection schema %q (want by-area or by-space)", name)
	}
}

// SelectionNames lists the valid ParseSelection inputs.
func SelectionNames() []string {
	return []string{"by-area", "by-space"}
}

// SelectionSchema picks the next rectangle from the unprocessed pool and
// decides where it goes. The returned move has the rectangle's position
// already set.
type SelectionSchema interface {
	Kind() SelectionKind
	Select(s *model.Solution, unprocessed []*model.Rectangle) *SelectionMove
}

// NewSelectionSchema constructs the schema for a kind.
func NewSelectionSchema(kind SelectionKind) SelectionSchema {
	switch kind {
	case KindByArea:
		return ByAreaSelection{}
	case KindBySpace:
		return BySpaceSelection{}
	default:
		panic(fmt.Sprintf("engine: unknown selection kind %d", int(kind)))
	}
}
