package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optalgo/boxpack/internal/model"
)

func TestGeometricNeighborsFindMergingMove(t *testing.T) {
	s := twoSingleBoxes(t)
	n := NewGeometricNeighborhood(1)

	moves := n.Neighbors(s)
	require.NotEmpty(t, moves)

	merged := false
	for _, m := range moves {
		score := m.Score.(model.PackScore)
		require.True(t, score.Valid(), "the strict neighborhood only offers valid moves")
		if score.BoxCount == 1 {
			merged = true
		}
	}
	assert.True(t, merged, "relocating either rectangle can empty a box")
}

func TestGeometricNeighborsLeaveNoTrace(t *testing.T) {
	s := twoSingleBoxes(t)
	before := s.String()

	NewGeometricNeighborhood(1).Neighbors(s)

	assert.Equal(t, before, s.String())
}

func TestGeometricNeighborsRespectRecency(t *testing.T) {
	s := model.NewSolution(5, []*model.Box{
		model.NewBox(0, 5, model.NewRectangle(0, 0, 2, 2, 0), model.NewRectangle(2, 0, 2, 2, 1)),
		model.NewBox(1, 5, model.NewRectangle(0, 0, 2, 2, 2), model.NewRectangle(2, 0, 2, 2, 3)),
	})
	s.MarkMoved(0)
	s.MarkMoved(1)

	prio, refs := partitionRects(s)
	assert.Nil(t, prio, "no single-occupant box here")
	require.Len(t, refs, 2)
	for _, ref := range refs {
		assert.NotContains(t, []int{0, 1}, ref.RectID, "recently moved rectangles sit out")
	}
}

func TestPartitionRectsPrefersSoleOccupants(t *testing.T) {
	s := model.NewSolution(5, []*model.Box{
		model.NewBox(0, 5, model.NewRectangle(0, 0, 2, 2, 0), model.NewRectangle(2, 0, 2, 2, 1)),
		model.NewBox(1, 5, model.NewRectangle(0, 0, 2, 2, 2)),
	})

	prio, refs := partitionRects(s)
	require.NotNil(t, prio)
	assert.Equal(t, 2, prio.RectID)
	assert.Equal(t, 1, prio.BoxID)
	assert.Len(t, refs, 2)
}

func TestSkipCandidate(t *testing.T) {
	s := twoSingleBoxes(t)
	rect := s.Box(0).Rect(0)

	assert.True(t, skipCandidate(s, rect, 0, 1, model.Point{X: 4, Y: 0}, false), "overflow")
	assert.True(t, skipCandidate(s, rect, 0, 0, model.Point{X: 0, Y: 0}, false), "identity move")
	assert.True(t, skipCandidate(s, rect, 0, 1, model.Point{X: 0, Y: 0}, true), "square flip")
	assert.False(t, skipCandidate(s, rect, 0, 1, model.Point{X: 2, Y: 0}, false))
}

func TestGeometricNeighborsOfferSpawnEscape(t *testing.T) {
	// A single full box: the only legal relocation opens a fresh box.
	s := model.NewSolution(3, []*model.Box{
		model.NewBox(0, 3, model.NewRectangle(0, 0, 3, 3, 0)),
	})

	moves := NewGeometricNeighborhood(1).Neighbors(s)
	require.NotEmpty(t, moves)
	for _, m := range moves {
		gm := m.Move.(*GeometricMove)
		assert.Equal(t, 1, gm.ToBoxID, "only the new-box escape move remains")
	}
}
