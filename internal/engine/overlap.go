package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/optalgo/boxpack/internal/model"
)

// Overlap relaxation schedule: after every full pass over the rectangles
// the permissible overlap decays multiplicatively, then snaps to zero once
// it is close enough that the remaining tolerance cannot matter.
const (
	overlapDecay = 0.8
	overlapFloor = 0.01
)

// GeometricOverlapNeighborhood is the overlap-tolerant variant of the
// geometric neighborhood. It searches all coordinates of every box (not
// just adjacent ones) and inserts without a free-space check, so the search
// can start from a degenerate everything-overlapping state and anneal
// toward validity as the permissible overlap ratchets down.
type GeometricOverlapNeighborhood struct {
	workers   int
	callCount int
	log       *logrus.Entry
}

// NewGeometricOverlapNeighborhood creates the strategy with a fixed
// worker-pool size.
func NewGeometricOverlapNeighborhood(workers int) *GeometricOverlapNeighborhood {
	return &GeometricOverlapNeighborhood{
		workers: workers,
		log:     logrus.WithField("neighborhood", "geometric-overlap"),
	}
}

func (n *GeometricOverlapNeighborhood) Kind() NeighborhoodKind { return KindGeometricOverlap }

// Initialize is a no-op; the relaxation starts on the first Neighbors call.
func (n *GeometricOverlapNeighborhood) Initialize(*model.Solution) {}

// CurrentScore scores the solution on the overlap-aware scale.
func (n *GeometricOverlapNeighborhood) CurrentScore(s *model.Solution) model.Score {
	return s.OverlapAwareScore()
}

// Neighbors enumerates overlap-tolerant relocation moves. The first call
// opens the relaxation at 100% permissible overlap; every time all
// rectangles have had a turn the tolerance is tightened by the schedule.
func (n *GeometricOverlapNeighborhood) Neighbors(s *model.Solution) []ScoredMove {
	if n.callCount == 0 {
		s.CurrentlyPermissibleOverlap = 1.0
	}
	n.callCount++

	if n.callCount >= s.RectCount() {
		n.callCount = 1
		next := s.CurrentlyPermissibleOverlap * overlapDecay
		if next < overlapFloor {
			next = 0
		}
		s.CurrentlyPermissibleOverlap = next
		n.log.WithField("overlap", next).Info("tightened permissible overlap")
	}

	prio, refs := partitionRects(s)
	if prio != nil {
		if moves := n.generateForRects(s, []rectRef{*prio}); len(moves) > 0 {
			return moves
		}
	}

	moves := scatterGather(s, refs, n.workers, n.generateForRects)
	n.log.WithFields(logrus.Fields{
		"rects":   len(refs),
		"moves":   len(moves),
		"overlap": s.CurrentlyPermissibleOverlap,
	}).Debug("neighborhood explored")
	return moves
}

// generateForRects produces overlap-tolerant moves across all coordinates
// of every box, with the same box-count early return and new-box escape
// valve as the strict neighborhood.
func (n *GeometricOverlapNeighborhood) generateForRects(s *model.Solution, refs []rectRef) []ScoredMove {
	currentScore := s.OverlapAwareScore()
	var moves []ScoredMove

	for _, ref := range refs {
		box := s.Box(ref.BoxID)
		if box == nil {
			continue
		}
		rect := box.Rect(ref.RectID)
		if rect == nil {
			continue
		}

		for _, targetID := range s.BoxIDs() {
			for x := 0; x < s.SideLength(); x++ {
				for y := 0; y < s.SideLength(); y++ {
					for _, flip := range []bool{false, true} {
						origin := model.Point{X: x, Y: y}
						if skipCandidate(s, rect, ref.BoxID, targetID, origin, flip) {
							continue
						}

						move := NewGeometricOverlapMove(ref.RectID, ref.BoxID, targetID, x, y, flip)
						score := s.PotentialScore(move, overlapScorer)
						moves = append(moves, ScoredMove{Move: move, Score: score})

						if score.(model.OverlapScore).BoxCount < currentScore.BoxCount {
							n.log.Debug("early return with box-count decrease")
							return moves
						}
					}
				}
			}
		}

		spawn := NewGeometricOverlapMove(ref.RectID, ref.BoxID, s.MaxBoxID()+1, 0, 0, false)
		moves = append(moves, ScoredMove{Move: spawn, Score: s.PotentialScore(spawn, overlapScorer)})
	}
	return moves
}

func overlapScorer(s *model.Solution) model.Score {
	return s.OverlapAwareScore()
}
