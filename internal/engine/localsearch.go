package engine

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/optalgo/boxpack/internal/model"
)

// LocalSearch is steepest-descent search: every tick it applies the best
// move its neighborhood offers, breaking ties uniformly at random. It keeps
// applying the best move even when it is not an improvement; the
// neighborhoods' anti-cycling (recency queue, overlap ratchet) is what stops
// it from oscillating in place.
type LocalSearch struct {
	solution     *model.Solution
	neighborhood Neighborhood
	rng          *rand.Rand
	stuck        bool
	log          *logrus.Entry
}

// NewLocalSearch creates a local search over the solution with the given
// neighborhood strategy. The seed drives tie-breaking only.
func NewLocalSearch(s *model.Solution, kind NeighborhoodKind, seed int64) *LocalSearch {
	a := &LocalSearch{
		solution: s,
		rng:      rand.New(rand.NewSource(seed)),
		log:      logrus.WithField("algorithm", "local-search"),
	}
	a.SetStrategy(kind)
	return a
}

// SetStrategy swaps the neighborhood, re-initializing the solution for it
// and clearing the stuck state so the search resumes.
func (a *LocalSearch) SetStrategy(kind NeighborhoodKind) {
	a.neighborhood = NewNeighborhood(kind)
	a.neighborhood.Initialize(a.solution)
	a.stuck = false
	a.log = a.log.WithField("neighborhood", kind.String())
}

// CurrentSolution returns the solution being searched.
func (a *LocalSearch) CurrentSolution() *model.Solution { return a.solution }

// Tick applies the best available move. Returns false once the neighborhood
// offers nothing, after which the search stays stuck until SetStrategy.
func (a *LocalSearch) Tick() bool {
	if a.stuck {
		return false
	}

	moves := a.neighborhood.Neighbors(a.solution)
	if len(moves) == 0 {
		a.stuck = true
		a.log.Info("stuck, neighborhood exhausted")
		return false
	}

	best := bestScored(moves)
	pick := best[a.rng.Intn(len(best))]
	if !pick.Move.Apply(a.solution) {
		// A scored move that no longer applies means the neighborhood scored
		// against stale state; treat it like exhaustion.
		a.stuck = true
		a.log.Warn("stuck, best move no longer applicable")
		return false
	}

	a.log.WithFields(logrus.Fields{"score": pick.Score, "ties": len(best)}).Debug("applied best move")
	return true
}
