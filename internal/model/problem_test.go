package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProblemGeneratesOneRectPerBox(t *testing.T) {
	p := NewProblem(10, 6, SizeRange{Min: 1, Max: 4}, SizeRange{Min: 2, Max: 5}, 7)

	assert.Len(t, p.ID, 8)
	s := p.Solution()
	require.Equal(t, 6, s.BoxCount())
	require.Equal(t, 6, s.RectCount())
	require.True(t, s.IsValid(), "the trivial start layout is always valid")

	for _, b := range s.OrderedBoxes() {
		require.Equal(t, 1, b.Len())
		r := b.Rects()[0]
		assert.Zero(t, r.X())
		assert.Zero(t, r.Y())
		assert.GreaterOrEqual(t, r.Width(), 1)
		assert.LessOrEqual(t, r.Width(), 4)
		assert.GreaterOrEqual(t, r.Height(), 2)
		assert.LessOrEqual(t, r.Height(), 5)
	}
}

func TestNewProblemIsDeterministicPerSeed(t *testing.T) {
	a := NewProblem(10, 8, SizeRange{Min: 1, Max: 6}, SizeRange{Min: 1, Max: 6}, 42)
	b := NewProblem(10, 8, SizeRange{Min: 1, Max: 6}, SizeRange{Min: 1, Max: 6}, 42)

	ra := a.Solution().FlattenedRects()
	rb := b.Solution().FlattenedRects()
	require.Len(t, rb, len(ra))
	for i := range ra {
		assert.Equal(t, ra[i].Width(), rb[i].Width())
		assert.Equal(t, ra[i].Height(), rb[i].Height())
	}

	c := NewProblem(10, 8, SizeRange{Min: 1, Max: 6}, SizeRange{Min: 1, Max: 6}, 43)
	assert.NotEqual(t, a.ID, c.ID)
}

func TestNewProblemRejectsImpossibleRanges(t *testing.T) {
	assert.Panics(t, func() {
		NewProblem(5, 3, SizeRange{Min: 1, Max: 6}, SizeRange{Min: 1, Max: 3}, 1)
	}, "width range exceeding the side length")
	assert.Panics(t, func() {
		NewProblem(5, 0, SizeRange{Min: 1, Max: 3}, SizeRange{Min: 1, Max: 3}, 1)
	}, "zero rectangles")
	assert.Panics(t, func() {
		NewProblem(0, 3, SizeRange{Min: 1, Max: 3}, SizeRange{Min: 1, Max: 3}, 1)
	}, "zero side length")
}
