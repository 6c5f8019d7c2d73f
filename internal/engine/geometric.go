package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/optalgo/boxpack/internal/model"
)

// GeometricNeighborhood relocates rectangles to coordinates adjacent to
// existing rectangle boundaries. Restricting origins to the adjacency set
// instead of all free cells is a deliberate pruning heuristic: good
// rearrangements cluster near existing boundaries, and the smaller search
// space is what keeps a tick affordable.
type GeometricNeighborhood struct {
	workers int
	log     *logrus.Entry
}

// NewGeometricNeighborhood creates the strategy with a fixed worker-pool
// size for parallel scoring.
func NewGeometricNeighborhood(workers int) *GeometricNeighborhood {
	return &GeometricNeighborhood{
		workers: workers,
		log:     logrus.WithField("neighborhood", "geometric"),
	}
}

func (n *GeometricNeighborhood) Kind() NeighborhoodKind { return KindGeometric }

// Initialize is a no-op; geometric moves work on any layout.
func (n *GeometricNeighborhood) Initialize(*model.Solution) {}

// CurrentScore scores a solution on the canonical scale.
func (n *GeometricNeighborhood) CurrentScore(s *model.Solution) model.Score {
	return s.Score()
}

// Neighbors enumerates relocation moves for the solution. When some box
// holds exactly one rectangle that was not moved recently, only moves for
// that rectangle are generated, in the hope of eliminating the box
// outright. Otherwise all not-recently-moved rectangles are explored,
// fanned out across the worker pool.
func (n *GeometricNeighborhood) Neighbors(s *model.Solution) []ScoredMove {
	prio, refs := partitionRects(s)

	if prio != nil {
		if moves := n.generateForRects(s, []rectRef{*prio}); len(moves) > 0 {
			n.log.WithField("moves", len(moves)).Debug("priority rectangle explored")
			return moves
		}
	}

	moves := scatterGather(s, refs, n.workers, n.generateForRects)
	n.log.WithFields(logrus.Fields{"rects": len(refs), "moves": len(moves)}).Debug("neighborhood explored")
	return moves
}

// generateForRects produces scored moves for the given rectangles. Returns
// early as soon as a move strictly decreases the box count; searching past
// such a win is wasted work.
func (n *GeometricNeighborhood) generateForRects(s *model.Solution, refs []rectRef) []ScoredMove {
	currentScore := s.Score()
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
			target := s.Box(targetID)
			for _, origin := range target.AdjacentCoordinates().Sorted() {
				for _, flip := range []bool{false, true} {
					if skipCandidate(s, rect, ref.BoxID, targetID, origin, flip) {
						continue
					}

					move := NewGeometricMove(ref.RectID, ref.BoxID, targetID, origin.X, origin.Y, flip)
					score := s.PotentialScore(move, packScorer)
					if !score.Valid() {
						continue
					}
					moves = append(moves, ScoredMove{Move: move, Score: score})

					if currentScore.Valid() && score.(model.PackScore).BoxCount < currentScore.BoxCount {
						n.log.Debug("early return with box-count decrease")
						return moves
					}
				}
			}
		}

		// Escape valve: the rectangle can always open a fresh box at the
		// origin.
		spawn := NewGeometricMove(ref.RectID, ref.BoxID, s.MaxBoxID()+1, 0, 0, false)
		if score := s.PotentialScore(spawn, packScorer); score.Valid() {
			moves = append(moves, ScoredMove{Move: spawn, Score: score})
		}
	}
	return moves
}

func packScorer(s *model.Solution) model.Score {
	return s.Score()
}

// partitionRects walks the boxes in id order and returns a priority
// rectangle (the occupant of a single-rectangle box, if one exists and was
// not recently moved) plus the work list of all other not-recently-moved
// rectangles.
func partitionRects(s *model.Solution) (*rectRef, []rectRef) {
	var prio *rectRef
	var refs []rectRef
	for _, box := range s.OrderedBoxes() {
		for _, rect := range box.Rects() {
			if s.RecentlyMoved(rect.ID) {
				continue
			}
			if box.Len() == 1 && prio == nil {
				prio = &rectRef{BoxID: box.ID, RectID: rect.ID}
				continue
			}
			refs = append(refs, rectRef{BoxID: box.ID, RectID: rect.ID})
		}
	}
	return prio, refs
}

// skipCandidate filters out relocations that cannot help: overflows past
// the box bounds, the identity move, and flips of squares.
func skipCandidate(s *model.Solution, rect *model.Rectangle, fromBoxID, toBoxID int, origin model.Point, flip bool) bool {
	w, h := rect.Width(), rect.Height()
	if flip {
		w, h = h, w
	}
	if origin.X+w > s.SideLength() || origin.Y+h > s.SideLength() {
		return true
	}
	if fromBoxID == toBoxID && rect.X() == origin.X && rect.Y() == origin.Y && !flip {
		return true
	}
	if flip && rect.Width() == rect.Height() {
		return true
	}
	return false
}
