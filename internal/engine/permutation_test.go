package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optalgo/boxpack/internal/model"
)

func TestPermutationInitializeRepacksByAreaDescending(t *testing.T) {
	p := model.NewProblem(8, 6, model.SizeRange{Min: 1, Max: 4}, model.SizeRange{Min: 1, Max: 4}, 3)
	s := p.Solution()
	require.Equal(t, 6, s.BoxCount(), "one box per rectangle before decoding")

	NewPermutationNeighborhood().Initialize(s)

	assert.True(t, s.IsValid())
	assert.Equal(t, 6, s.RectCount())
	assert.Less(t, s.BoxCount(), 6, "first-fit decreasing consolidates the trivial layout")
}

func TestPermutationPrefersFillMoves(t *testing.T) {
	s := model.NewSolution(5, []*model.Box{
		model.NewBox(0, 5, model.NewRectangle(0, 0, 3, 3, 0)),
		model.NewBox(1, 5, model.NewRectangle(0, 0, 2, 2, 1)),
	})
	n := NewPermutationNeighborhood()

	moves := n.Neighbors(s)

	require.Len(t, moves, 1, "the fill pass emits exactly one proposal")
	score := moves[0].Score.(model.PermScore)
	assert.True(t, score.IsFill)
	assert.Equal(t, 0, score.FillBoxID)

	require.True(t, moves[0].Move.Apply(s))
	assert.Equal(t, 1, s.BoxCount())
	assert.True(t, s.IsValid())
}

func TestPermutationFallsBackToCompaction(t *testing.T) {
	// The 3x3 cannot fill box 0's L-shaped gap, but it can replace the 2x2
	// whose free neighborhood extends far enough.
	s := model.NewSolution(4, []*model.Box{
		model.NewBox(0, 4, model.NewRectangle(0, 0, 2, 2, 0)),
		model.NewBox(1, 4, model.NewRectangle(0, 0, 3, 3, 1)),
	})
	n := NewPermutationNeighborhood()

	moves := n.Neighbors(s)

	require.NotEmpty(t, moves)
	for _, m := range moves {
		score := m.Score.(model.PermScore)
		assert.False(t, score.IsFill)
		assert.Equal(t, 5, score.SizeDifference, "swap gain is the area difference")
	}

	before := s.String()
	require.True(t, moves[0].Move.Apply(s))
	assert.True(t, s.IsValid())
	moves[0].Move.Undo(s)
	assert.Equal(t, before, s.String())
}

func TestPermutationIsSilentWithoutCandidates(t *testing.T) {
	s := model.NewSolution(4, []*model.Box{
		model.NewBox(0, 4, model.NewRectangle(0, 0, 2, 2, 0)),
	})

	assert.Empty(t, NewPermutationNeighborhood().Neighbors(s))
}

func TestFreeExtent(t *testing.T) {
	s := model.NewSolution(5, []*model.Box{
		model.NewBox(0, 5, model.NewRectangle(0, 0, 2, 2, 0), model.NewRectangle(0, 2, 5, 3, 1)),
	})
	box := s.Box(0)

	// Rightward of the 2x2 everything in its rows is free; downward is
	// blocked by the wide rectangle.
	availX, availY := freeExtent(s, box, box.Rect(0))
	assert.Equal(t, 5, availX)
	assert.Equal(t, 2, availY)
}
