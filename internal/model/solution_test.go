package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// relocateMove is a minimal Move for exercising the apply/score/undo triad.
type relocateMove struct {
	boxID, rectID int
	toX, toY      int
	fail          bool

	oldX, oldY int
}

func (m *relocateMove) Apply(s *Solution) bool {
	if m.fail {
		return false
	}
	r := s.Box(m.boxID).Rect(m.rectID)
	m.oldX, m.oldY = r.X(), r.Y()
	r.MoveTo(m.toX, m.toY)
	return true
}

func (m *relocateMove) Undo(s *Solution) {
	s.Box(m.boxID).Rect(m.rectID).MoveTo(m.oldX, m.oldY)
}

func TestFullyOverlappingRectanglesAreInvalid(t *testing.T) {
	box := NewBox(0, 5,
		NewRectangle(0, 0, 3, 3, 0),
		NewRectangle(0, 0, 3, 3, 1),
	)
	s := NewSolution(5, []*Box{box})

	assert.False(t, s.IsValid())
	assert.False(t, s.Score().Valid())
	assert.Equal(t, 2, s.IllegalOverlapCount())
}

func TestDisjointRectanglesAreValid(t *testing.T) {
	box := NewBox(0, 6,
		NewRectangle(0, 0, 3, 3, 0),
		NewRectangle(3, 0, 3, 3, 1),
	)
	s := NewSolution(6, []*Box{box})

	require.True(t, s.IsValid())
	score := s.Score()
	assert.True(t, score.Valid())
	assert.Equal(t, 1, score.BoxCount)
}

func TestOverflowingRectangleMakesSolutionInvalid(t *testing.T) {
	box := NewBox(0, 5, NewRectangle(3, 0, 3, 3, 0))
	s := NewSolution(5, []*Box{box})

	assert.False(t, s.IsValid())
}

func TestPermissibleOverlapRelaxesValidity(t *testing.T) {
	box := NewBox(0, 5,
		NewRectangle(0, 0, 3, 3, 0),
		NewRectangle(2, 0, 3, 3, 1),
	)
	s := NewSolution(5, []*Box{box})

	require.False(t, s.IsValid())

	// 3 shared cells over 18 combined is a sixth; a half is permissible.
	s.CurrentlyPermissibleOverlap = 0.5
	assert.True(t, s.IsValid())
	assert.Zero(t, s.IllegalOverlapCount())
}

func TestBoxEntropy(t *testing.T) {
	even := NewSolution(5, []*Box{
		NewBox(0, 5, NewRectangle(0, 0, 1, 1, 0), NewRectangle(1, 0, 1, 1, 1)),
		NewBox(1, 5, NewRectangle(0, 0, 1, 1, 2), NewRectangle(1, 0, 1, 1, 3)),
	})
	assert.InDelta(t, 1.0, even.BoxEntropy(), 1e-9, "even split over two boxes is one bit")

	single := NewSolution(5, []*Box{
		NewBox(0, 5, NewRectangle(0, 0, 1, 1, 0), NewRectangle(1, 0, 1, 1, 1)),
	})
	assert.Zero(t, single.BoxEntropy())
}

func TestPotentialScoreRestoresTheSolution(t *testing.T) {
	box := NewBox(0, 6, NewRectangle(0, 0, 2, 2, 0), NewRectangle(2, 0, 2, 2, 1))
	s := NewSolution(6, []*Box{box})
	before := s.String()

	move := &relocateMove{boxID: 0, rectID: 1, toX: 4, toY: 4}
	score := s.PotentialScore(move, func(s *Solution) Score { return s.Score() })

	assert.True(t, score.Valid())
	assert.Equal(t, before, s.String(), "apply/score/undo must leave no trace")
}

func TestPotentialScoreOfInfeasibleMove(t *testing.T) {
	box := NewBox(0, 6, NewRectangle(0, 0, 2, 2, 0))
	s := NewSolution(6, []*Box{box})

	score := s.PotentialScore(&relocateMove{fail: true}, func(s *Solution) Score { return s.Score() })
	assert.False(t, score.Valid())
}

func TestRecencyQueueEvictsOldest(t *testing.T) {
	boxes := make([]*Box, 4)
	for i := range boxes {
		boxes[i] = NewBox(i, 5, NewRectangle(0, 0, 1, 1, i))
	}
	// Four rectangles give the queue capacity two.
	s := NewSolution(5, boxes)

	s.MarkMoved(1)
	s.MarkMoved(2)
	s.MarkMoved(3)

	assert.False(t, s.RecentlyMoved(1), "oldest entry is evicted")
	assert.True(t, s.RecentlyMoved(2))
	assert.True(t, s.RecentlyMoved(3))

	s.UnmarkMoved()
	assert.False(t, s.RecentlyMoved(3))
	assert.True(t, s.RecentlyMoved(2))
}

func TestToGreedyQueueDrainsEverything(t *testing.T) {
	s := NewSolution(5, []*Box{
		NewBox(0, 5, NewRectangle(0, 0, 2, 2, 0)),
		NewBox(1, 5, NewRectangle(0, 0, 3, 3, 1)),
	})

	rects := s.ToGreedyQueue()

	require.Len(t, rects, 2)
	assert.Equal(t, 0, rects[0].ID, "drained in box id order")
	for _, r := range rects {
		assert.Equal(t, -1, r.BoxID)
	}
	assert.Zero(t, s.BoxCount())
	assert.Zero(t, s.RectCount())
}

func TestSolutionCloneSharesNothing(t *testing.T) {
	s := NewSolution(6, []*Box{
		NewBox(0, 6, NewRectangle(0, 0, 2, 2, 0), NewRectangle(2, 0, 2, 2, 1)),
		NewBox(1, 6, NewRectangle(0, 0, 2, 2, 2), NewRectangle(2, 0, 2, 2, 3)),
	})
	s.MarkMoved(0)

	c := s.Clone()
	c.Box(0).Rect(1).MoveTo(4, 4)
	c.MarkMoved(1)

	assert.Equal(t, 2, s.Box(0).Rect(1).X())
	assert.Equal(t, 4, c.Box(0).Rect(1).X())
	assert.False(t, s.RecentlyMoved(1))
	assert.True(t, c.RecentlyMoved(0), "recency history is carried over")
}

func TestBoxBookkeeping(t *testing.T) {
	s := NewSolution(5, nil)
	assert.Equal(t, -1, s.MaxBoxID())

	s.AddBox(NewBox(3, 5))
	s.AddBox(NewBox(1, 5))
	assert.Equal(t, []int{1, 3}, s.BoxIDs())
	assert.Equal(t, 3, s.MaxBoxID())

	assert.Panics(t, func() { s.AddBox(NewBox(1, 5)) }, "duplicate box id")
	assert.Panics(t, func() { s.RemoveBox(7) }, "removing an absent box")

	removed := s.RemoveBox(3)
	assert.Equal(t, 3, removed.ID)
	assert.Equal(t, 1, s.BoxCount())
}

func TestFlattenedRectsWalkBoxesInOrder(t *testing.T) {
	s := NewSolution(5, []*Box{
		NewBox(1, 5, NewRectangle(0, 0, 1, 1, 10)),
		NewBox(0, 5, NewRectangle(0, 0, 1, 1, 20), NewRectangle(1, 0, 1, 1, 21)),
	})

	ids := []int{}
	for _, r := range s.FlattenedRects() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int{20, 21, 10}, ids)
}
