package engine

import (
	"fmt"

	"github.com/optalgo/boxpack/internal/model"
)

// PermutationMove operates on the flattened rectangle ordering (boxes in id
// order, rectangles in insertion order) rather than on coordinates. A swap
// move exchanges two positions (optionally flipping the first) and then
// rebuilds the whole box layout with first-fit placement over the new order.
// A fill move instead tries to push one rectangle directly into a target
// box's free space, falling back to the swap-and-rebuild path when the
// direct placement fails.
type PermutationMove struct {
	FirstIdx  int
	SecondIdx int
	Flip      bool

	// Fill moves carry the rectangle to relocate and the box to fill.
	IsFill      bool
	FillBoxID   int
	FilledRect  *model.Rectangle

	applied bool

	// Undo bookkeeping for the direct fill path.
	direct     bool
	oldBoxID   int
	oldX, oldY int
	oldWidth   int
}

// NewSwapMove builds a compaction swap of the rectangles at the two
// flattened positions. With flip set, the rectangle ending up at firstIdx is
// flipped as well.
func NewSwapMove(firstIdx, secondIdx int, flip bool) *PermutationMove {
	return &PermutationMove{FirstIdx: firstIdx, SecondIdx: secondIdx, Flip: flip}
}

// NewFillMove builds a fill of targetBoxID with rect, with the swap of the
// two flattened positions as reconstruction fallback.
func NewFillMove(firstIdx, secondIdx int, rect *model.Rectangle, targetBoxID int) *PermutationMove {
	return &PermutationMove{
		FirstIdx:   firstIdx,
		SecondIdx:  secondIdx,
		IsFill:     true,
		FillBoxID:  targetBoxID,
		FilledRect: rect,
	}
}

// Apply performs the move. A swap of a position with itself without a flip
// is a no-op and fails.
func (m *PermutationMove) Apply(s *model.Solution) bool {
	if m.FirstIdx == m.SecondIdx && !m.Flip && !m.IsFill {
		return false
	}

	if m.IsFill && m.applyDirectFill(s) {
		m.direct = true
		m.applied = true
		return true
	}
	m.direct = false

	if !m.applyReconstruct(s) {
		return false
	}
	m.applied = true
	return true
}

// applyDirectFill moves the fill rectangle straight into the target box via
// first-fit compression, recording everything needed for an exact undo.
func (m *PermutationMove) applyDirectFill(s *model.Solution) bool {
	target := s.Box(m.FillBoxID)
	if target == nil {
		return false
	}
	source := s.Box(m.FilledRect.BoxID)
	if source == nil {
		return false
	}

	// Cheap feasibility pre-check before touching any state.
	w, h := target.BiggestPlaceableRect()
	if !fitsEither(m.FilledRect, w, h) {
		return false
	}

	m.oldBoxID = source.ID
	m.oldX, m.oldY = m.FilledRect.X(), m.FilledRect.Y()
	m.oldWidth = m.FilledRect.Width()

	rect := source.RemoveRect(m.FilledRect.ID)
	if !target.FitRectCompress(rect, true) {
		rect.MoveTo(m.oldX, m.oldY)
		source.AddRect(rect, false)
		return false
	}

	if source.Len() == 0 {
		s.RemoveBox(source.ID)
	}
	return true
}

// applyReconstruct swaps the flattened positions and rebuilds every box from
// the permuted order.
func (m *PermutationMove) applyReconstruct(s *model.Solution) bool {
	rects := s.FlattenedRects()
	if m.FirstIdx >= len(rects) || m.SecondIdx >= len(rects) {
		return false
	}

	if m.FirstIdx != m.SecondIdx {
		rects[m.FirstIdx], rects[m.SecondIdx] = rects[m.SecondIdx], rects[m.FirstIdx]
	}
	if m.Flip {
		rects[m.FirstIdx].Flip()
	}

	s.ReplaceBoxes(decodeRectList(rects, s.SideLength()))
	return true
}

// Undo reverses the move. The swap-and-rebuild path is its own inverse: the
// same swap restores the previous order and the decoder is deterministic.
func (m *PermutationMove) Undo(s *model.Solution) {
	if !m.applied {
		panic("engine: undo of a permutation move that was never applied")
	}
	m.applied = false

	if !m.direct {
		if !m.applyReconstruct(s) {
			panic("engine: permutation undo failed to reconstruct")
		}
		return
	}

	target := s.Box(m.FillBoxID)
	rect := target.RemoveRect(m.FilledRect.ID)
	if rect.Width() != m.oldWidth {
		rect.Flip()
	}
	rect.MoveTo(m.oldX, m.oldY)

	if oldBox := s.Box(m.oldBoxID); oldBox != nil {
		oldBox.AddRect(rect, false)
	} else {
		s.AddBox(model.NewBox(m.oldBoxID, s.SideLength(), rect))
	}
}

// decodeRectList re-packs a linear rectangle order into boxes with first-fit
// compression, opening a new box whenever the current one cannot take the
// next rectangle.
func decodeRectList(rects []*model.Rectangle, sideLength int) []*model.Box {
	boxes := []*model.Box{model.NewBox(0, sideLength)}
	current := boxes[0]
	for _, rect := range rects {
		if current.FitRectCompress(rect, true) {
			continue
		}
		current = model.NewBox(len(boxes), sideLength)
		if !current.FitRectCompress(rect, true) {
			panic(fmt.Sprintf("engine: rectangle %v does not fit an empty box of side %d", rect, sideLength))
		}
		boxes = append(boxes, current)
	}
	return boxes
}

// fitsEither reports whether the rectangle fits a w x h footprint in either
// orientation.
func fitsEither(r *model.Rectangle, w, h int) bool {
	if r.Width() <= w && r.Height() <= h {
		return true
	}
	return r.Height() <= w && r.Width() <= h
}
