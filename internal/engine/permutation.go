package engine

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/optalgo/boxpack/internal/model"
)

// PermutationNeighborhood searches the space of flattened rectangle
// orderings instead of coordinate space. Moves are ranked by a cheap local
// fit heuristic (PermScore) rather than the global solution score, because
// every candidate would otherwise need a full layout reconstruction to be
// scored.
type PermutationNeighborhood struct {
	log *logrus.Entry
}

// NewPermutationNeighborhood creates the strategy.
func NewPermutationNeighborhood() *PermutationNeighborhood {
	return &PermutationNeighborhood{
		log: logrus.WithField("neighborhood", "permutation"),
	}
}

func (n *PermutationNeighborhood) Kind() NeighborhoodKind { return KindPermutation }

// Initialize re-packs the solution from its rectangles sorted by area
// descending. Index-based moves only make sense once the layout is in
// decoded (first-fit packed) form.
func (n *PermutationNeighborhood) Initialize(s *model.Solution) {
	rects := s.FlattenedRects()
	sort.SliceStable(rects, func(i, j int) bool {
		return rects[i].Area() > rects[j].Area()
	})
	s.ReplaceBoxes(decodeRectList(rects, s.SideLength()))
	n.log.WithField("boxes", s.BoxCount()).Debug("initialized first-fit decreasing layout")
}

// CurrentScore returns the neutral baseline on the permutation scale.
func (n *PermutationNeighborhood) CurrentScore(*model.Solution) model.Score {
	return model.PermScore{}
}

// Neighbors runs two passes over the flattened order; the first non-empty
// pass wins. The fill pass looks for a later rectangle that fits into an
// earlier box's free space. The compaction pass measures how far each
// rectangle's free neighborhood extends rightward and downward and proposes
// swapping in a later, larger rectangle that fits the extended footprint.
func (n *PermutationNeighborhood) Neighbors(s *model.Solution) []ScoredMove {
	moves := n.fillMoves(s)
	if len(moves) == 0 {
		moves = n.compactionMoves(s)
	}
	n.log.WithField("moves", len(moves)).Debug("neighborhood explored")
	return moves
}

// fillMoves proposes pulling a later rectangle forward into an earlier
// box's free space. One proposal is enough: fill moves dominate the
// permutation score scale, so the first hit is the one that would be
// applied anyway.
func (n *PermutationNeighborhood) fillMoves(s *model.Solution) []ScoredMove {
	rects := s.FlattenedRects()

	for i, anchor := range rects {
		box := s.Box(anchor.BoxID)
		if box == nil {
			continue
		}

		// Cheap pre-check: nothing can fill a box without free space.
		maxW, maxH := box.BiggestPlaceableRect()
		if maxW == 0 || maxH == 0 {
			continue
		}

		for j := i + 1; j < len(rects); j++ {
			candidate := rects[j]
			if candidate.BoxID <= anchor.BoxID {
				continue
			}
			if !fitsEither(candidate, maxW, maxH) {
				continue
			}
			if !box.FitRectCompress(candidate, false) {
				continue
			}

			// The reconstruction fallback swaps the candidate with a
			// rectangle of the box right after the one being filled, pushing
			// the candidate forward in the order. Without a partner the
			// identity permutation still works: the first-fit decode pulls
			// the candidate into the earlier box's free space by itself.
			k := swapPartnerIndex(rects, i+1, anchor.BoxID+1, anchor.ID, candidate.ID)
			if k < 0 {
				k = j
			}

			move := NewFillMove(k, j, candidate, anchor.BoxID)
			score := model.NewFillPermScore(anchor.BoxID, candidate, s.SideLength())
			return []ScoredMove{{Move: move, Score: score}}
		}
	}
	return nil
}

// swapPartnerIndex finds the first flattened position at or after start
// whose rectangle lives in wantBoxID and is neither of the two rects
// already involved.
func swapPartnerIndex(rects []*model.Rectangle, start, wantBoxID, anchorID, candidateID int) int {
	for k := start; k < len(rects); k++ {
		r := rects[k]
		if r.ID == anchorID || r.ID == candidateID {
			continue
		}
		if r.BoxID == wantBoxID {
			return k
		}
	}
	return -1
}

// compactionMoves proposes swapping each rectangle with a later, larger one
// that exactly fits the free space extending right and down from it.
func (n *PermutationNeighborhood) compactionMoves(s *model.Solution) []ScoredMove {
	rects := s.FlattenedRects()
	var moves []ScoredMove

	for i, rect := range rects {
		box := s.Box(rect.BoxID)
		if box == nil {
			continue
		}
		availX, availY := freeExtent(s, box, rect)

		for j := i + 1; j < len(rects); j++ {
			other := rects[j]

			// Unflipped: other must dominate rect in both dimensions and
			// still fit the extended footprint.
			if other.Width() > rect.Width() || other.Height() > rect.Height() {
				if other.Width() >= rect.Width() && other.Height() >= rect.Height() &&
					other.Width() <= availX && other.Height() <= availY {
					moves = append(moves, ScoredMove{
						Move:  NewSwapMove(i, j, false),
						Score: model.NewSwapPermScore(rect, other),
					})
					continue
				}
			}

			// Flipped.
			if other.Height() > rect.Width() || other.Width() > rect.Height() {
				if other.Height() >= rect.Width() && other.Width() >= rect.Height() &&
					other.Height() <= availX && other.Width() <= availY {
					moves = append(moves, ScoredMove{
						Move:  NewSwapMove(i, j, true),
						Score: model.NewSwapPermScore(rect, other),
					})
				}
			}
		}
	}
	return moves
}

// freeExtent measures how far the free space extends rightward and downward
// from a rectangle, including the rectangle's own footprint.
func freeExtent(s *model.Solution, box *model.Box, rect *model.Rectangle) (availX, availY int) {
	free := box.FreeCoordinates()
	availX = rect.Width()
	availY = rect.Height()

	for x := rect.X() + rect.Width(); x < s.SideLength(); x++ {
		columnFree := true
		for y := rect.Y(); y < rect.Y()+rect.Height(); y++ {
			if !free.Has(model.Point{X: x, Y: y}) {
				columnFree = false
				break
			}
		}
		if !columnFree {
			break
		}
		availX++
	}

	for y := rect.Y() + rect.Height(); y < s.SideLength(); y++ {
		rowFree := true
		for x := rect.X(); x < rect.X()+rect.Width(); x++ {
			if !free.Has(model.Point{X: x, Y: y}) {
				rowFree = false
				break
			}
		}
		if !rowFree {
			break
		}
		availY++
	}
	return availX, availY
}
