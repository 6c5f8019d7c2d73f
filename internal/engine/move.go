// Package engine implements the search side of the box-packing optimizer:
// reversible moves, neighborhood generators, selection schemas and the
// algorithms that drive them tick by tick.
package engine

import (
	"fmt"

	"github.com/optalgo/boxpack/internal/model"
)

// ScoredMove pairs a candidate move with the score the solution would have
// after applying it.
type ScoredMove struct {
	Move  model.Move
	Score model.Score
}

// GeometricMove relocates one rectangle from its box to a target coordinate
// in another (or the same) box, optionally flipping it. A target box id
// beyond the current maximum spawns a fresh box; this is how the geometric
// neighborhoods open new boxes. When the source box runs empty it is removed
// from the solution.
type GeometricMove struct {
	RectID    int
	FromBoxID int
	ToBoxID   int
	NewX      int
	NewY      int
	Flip      bool

	// allowOverlap disables the free-space check on insertion. Set by the
	// overlap-relaxation neighborhood only.
	allowOverlap bool

	oldX       int
	oldY       int
	createdBox bool
	applied    bool
}

// NewGeometricMove builds a strict (overlap-checked) relocation move.
func NewGeometricMove(rectID, fromBoxID, toBoxID, newX, newY int, flip bool) *GeometricMove {
	return &GeometricMove{
		RectID:    rectID,
		FromBoxID: fromBoxID,
		ToBoxID:   toBoxID,
		NewX:      newX,
		NewY:      newY,
		Flip:      flip,
	}
}

// NewGeometricOverlapMove builds a relocation move that tolerates overlap.
// Validity is judged by the overlap-aware score instead of the insertion
// check.
func NewGeometricOverlapMove(rectID, fromBoxID, toBoxID, newX, newY int, flip bool) *GeometricMove {
	m := NewGeometricMove(rectID, fromBoxID, toBoxID, newX, newY, flip)
	m.allowOverlap = true
	return m
}

// Apply relocates the rectangle. Returns false and restores the previous
// state exactly if the target box has no room.
func (m *GeometricMove) Apply(s *model.Solution) bool {
	fromBox := s.Box(m.FromBoxID)
	if fromBox == nil {
		panic(fmt.Sprintf("engine: geometric move from unknown box %d", m.FromBoxID))
	}
	rect := fromBox.RemoveRect(m.RectID)

	m.oldX, m.oldY = rect.X(), rect.Y()
	rect.MoveTo(m.NewX, m.NewY)
	if m.Flip {
		rect.Flip()
	}

	toBox := s.Box(m.ToBoxID)
	m.createdBox = toBox == nil
	if m.createdBox {
		toBox = model.NewBox(m.ToBoxID, s.SideLength())
		s.AddBox(toBox)
	}

	if !toBox.AddRect(rect, !m.allowOverlap) {
		// Roll back completely: restore orientation and origin, re-insert
		// into the source box, drop a box we just spawned.
		if m.Flip {
			rect.Flip()
		}
		rect.MoveTo(m.oldX, m.oldY)
		fromBox.AddRect(rect, false)
		if m.createdBox {
			s.RemoveBox(m.ToBoxID)
		}
		return false
	}

	s.MarkMoved(m.RectID)
	if fromBox.Len() == 0 {
		s.RemoveBox(m.FromBoxID)
	}
	m.applied = true
	return true
}

// Undo reverses a successful Apply exactly.
func (m *GeometricMove) Undo(s *model.Solution) {
	if !m.applied {
		panic("engine: undo of a geometric move that was never applied")
	}

	toBox := s.Box(m.ToBoxID)
	rect := toBox.RemoveRect(m.RectID)
	if toBox.Len() == 0 {
		s.RemoveBox(m.ToBoxID)
	}

	if m.Flip {
		rect.Flip()
	}
	rect.MoveTo(m.oldX, m.oldY)
	s.UnmarkMoved()

	// The apply may have deleted the source box when it ran empty.
	if fromBox := s.Box(m.FromBoxID); fromBox != nil {
		fromBox.AddRect(rect, false)
	} else {
		s.AddBox(model.NewBox(m.FromBoxID, s.SideLength(), rect))
	}
	m.applied = false
}

// decreasesBoxCount reports whether this move would remove a box: the
// rectangle is the last one in its box, it targets a different box, and the
// target has room. The geometric neighborhood stops searching once it finds
// such a move.
func (m *GeometricMove) decreasesBoxCount(s *model.Solution) bool {
	if m.FromBoxID == m.ToBoxID {
		return false
	}
	fromBox := s.Box(m.FromBoxID)
	if fromBox == nil || fromBox.Len() != 1 {
		return false
	}
	toBox := s.Box(m.ToBoxID)
	if toBox == nil {
		return false
	}

	probe := fromBox.Rect(m.RectID).Clone()
	probe.MoveTo(m.NewX, m.NewY)
	if m.Flip {
		probe.Flip()
	}
	return toBox.FreeCoordinates().ContainsAll(probe.Coordinates())
}
