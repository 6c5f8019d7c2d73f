package engine

import (
	"github.com/optalgo/boxpack/internal/model"
)

// SelectionMove inserts a rectangle from the greedy algorithm's unprocessed
// pool into a box at a position the selection schema precomputed. Undo takes
// it out again; returning it to the pool is the algorithm's job.
type SelectionMove struct {
	Rect  *model.Rectangle
	BoxID int

	createdBox bool
	applied    bool
}

// NewSelectionMove builds an insertion of rect into the box with the given
// id. The rectangle's origin must already be set to the intended position.
func NewSelectionMove(rect *model.Rectangle, boxID int) *SelectionMove {
	return &SelectionMove{Rect: rect, BoxID: boxID}
}

// Apply inserts the rectangle, spawning the box if it does not exist yet.
func (m *SelectionMove) Apply(s *model.Solution) bool {
	box := s.Box(m.BoxID)
	m.createdBox = box == nil
	if m.createdBox {
		box = model.NewBox(m.BoxID, s.SideLength())
		s.AddBox(box)
	}
	if !box.AddRect(m.Rect, true) {
		if m.createdBox {
			s.RemoveBox(m.BoxID)
		}
		return false
	}
	m.applied = true
	return true
}

// Undo removes the rectangle again and drops the box if this move spawned
// it.
func (m *SelectionMove) Undo(s *model.Solution) {
	if !m.applied {
		panic("engine: undo of a selection move that was never applied")
	}
	box := s.Box(m.BoxID)
	rect := box.RemoveRect(m.Rect.ID)
	rect.BoxID = -1
	if box.Len() == 0 && m.createdBox {
		s.RemoveBox(m.BoxID)
	}
	m.applied = false
}
