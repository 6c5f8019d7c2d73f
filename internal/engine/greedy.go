package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/optalgo/boxpack/internal/model"
)

// GreedySearch builds a packing constructively. At creation the solution is
// dissolved into a pool of unplaced rectangles; every tick the selection
// schema picks one rectangle and a position for it, until the pool is empty.
type GreedySearch struct {
	solution    *model.Solution
	schema      SelectionSchema
	unprocessed []*model.Rectangle
	log         *logrus.Entry
}

// NewGreedySearch creates a greedy construction over the solution's
// rectangles using the given selection schema. The solution's current layout
// is discarded.
func NewGreedySearch(s *model.Solution, kind SelectionKind) *GreedySearch {
	return &GreedySearch{
		solution:    s,
		schema:      NewSelectionSchema(kind),
		unprocessed: s.ToGreedyQueue(),
		log: logrus.WithFields(logrus.Fields{
			"algorithm": "greedy",
			"selection": kind.String(),
		}),
	}
}

// SetStrategy swaps the selection schema between ticks. Rectangles already
// placed stay where they are; only the remaining pool sees the new schema.
func (a *GreedySearch) SetStrategy(kind SelectionKind) {
	a.schema = NewSelectionSchema(kind)
	a.log = a.log.WithField("selection", kind.String())
}

// CurrentSolution returns the solution under construction.
func (a *GreedySearch) CurrentSolution() *model.Solution { return a.solution }

// Done reports whether every rectangle has been placed.
func (a *GreedySearch) Done() bool { return len(a.unprocessed) == 0 }

// Tick places the next rectangle. Returns false once the pool is empty.
func (a *GreedySearch) Tick() bool {
	if len(a.unprocessed) == 0 {
		return false
	}

	move := a.schema.Select(a.solution, a.unprocessed)
	if move == nil {
		return false
	}
	if !move.Apply(a.solution) {
		panic("engine: selection schema proposed an infeasible insertion")
	}

	for i, r := range a.unprocessed {
		if r.ID == move.Rect.ID {
			a.unprocessed = append(a.unprocessed[:i], a.unprocessed[i+1:]...)
			break
		}
	}

	a.log.WithFields(logrus.Fields{
		"rect":      move.Rect.ID,
		"box":       move.BoxID,
		"remaining": len(a.unprocessed),
	}).Debug("placed rectangle")
	return true
}
