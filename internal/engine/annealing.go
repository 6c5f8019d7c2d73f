package engine

import (
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/optalgo/boxpack/internal/model"
)

// Annealing schedule. The temperature drops geometrically after a fixed
// number of ticks at each level.
const (
	annealStartTemp = 100.0
	annealTempSteps = 10
	annealCooling   = 0.95
)

// SimulatedAnnealing picks one random neighbor per tick. Improvements are
// always taken; a worsening move is taken with probability
// exp(-delta/temperature), where delta is the increase of the score's
// dominant component.
type SimulatedAnnealing struct {
	solution     *model.Solution
	neighborhood Neighborhood
	rng          *rand.Rand

	temperature float64
	stepsAtTemp int

	log *logrus.Entry
}

// NewSimulatedAnnealing creates an annealing search over the solution with
// the given neighborhood strategy.
func NewSimulatedAnnealing(s *model.Solution, kind NeighborhoodKind, seed int64) *SimulatedAnnealing {
	a := &SimulatedAnnealing{
		solution: s,
		rng:      rand.New(rand.NewSource(seed)),
		log:      logrus.WithField("algorithm", "annealing"),
	}
	a.SetStrategy(kind)
	return a
}

// SetStrategy swaps the neighborhood, re-initializing the solution for it
// and restarting the cooling schedule from the start temperature.
func (a *SimulatedAnnealing) SetStrategy(kind NeighborhoodKind) {
	a.neighborhood = NewNeighborhood(kind)
	a.neighborhood.Initialize(a.solution)
	a.temperature = annealStartTemp
	a.stepsAtTemp = 0
	a.log = a.log.WithField("neighborhood", kind.String())
}

// CurrentSolution returns the solution being searched.
func (a *SimulatedAnnealing) CurrentSolution() *model.Solution { return a.solution }

// Temperature returns the current temperature of the schedule.
func (a *SimulatedAnnealing) Temperature() float64 { return a.temperature }

// Tick samples one neighbor and decides acceptance. Returns false only when
// the neighborhood offers no moves at all.
func (a *SimulatedAnnealing) Tick() bool {
	moves := a.neighborhood.Neighbors(a.solution)
	if len(moves) == 0 {
		a.log.Info("no neighbors to sample")
		return false
	}

	candidate := moves[a.rng.Intn(len(moves))]
	current := a.neighborhood.CurrentScore(a.solution)

	accept := candidate.Score.Better(current)
	if !accept {
		delta := candidate.Score.Components()[0] - current.Components()[0]
		accept = a.rng.Float64() < math.Exp(-delta/a.temperature)
	}

	if accept && !candidate.Move.Apply(a.solution) {
		accept = false
	}

	a.stepsAtTemp++
	if a.stepsAtTemp >= annealTempSteps {
		a.stepsAtTemp = 0
		a.temperature *= annealCooling
		a.log.WithField("temperature", a.temperature).Debug("cooled")
	}

	a.log.WithFields(logrus.Fields{
		"accepted": accept,
		"score":    candidate.Score,
	}).Debug("sampled neighbor")
	return true
}
