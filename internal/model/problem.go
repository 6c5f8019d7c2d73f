package model

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// SizeRange is an inclusive range of rectangle side lengths.
type SizeRange struct {
	Min int
	Max int
}

// Random draws a uniform value from the range.
func (r SizeRange) Random(rng *rand.Rand) int {
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

// Problem is one instance of the box-packing problem: the generation
// parameters plus the current solution being searched. The solution starts
// trivial, with every rectangle in its own box at the origin.
type Problem struct {
	ID         string
	SideLength int
	RectCount  int
	Widths     SizeRange
	Heights    SizeRange

	solution *Solution
}

// NewProblem generates a random problem instance. Dimensions are drawn
// uniformly from the given ranges; the ranges must fit the box side length,
// otherwise no packing could ever be valid.
func NewProblem(sideLength, rectCount int, widths, heights SizeRange, seed int64) *Problem {
	if sideLength <= 0 {
		panic(fmt.Sprintf("model: side length must be positive, got %d", sideLength))
	}
	if rectCount <= 0 {
		panic(fmt.Sprintf("model: rect count must be positive, got %d", rectCount))
	}
	for _, r := range []SizeRange{widths, heights} {
		if r.Min <= 0 || r.Min > r.Max || r.Max > sideLength {
			panic(fmt.Sprintf("model: size range %d..%d does not fit side length %d", r.Min, r.Max, sideLength))
		}
	}

	rng := rand.New(rand.NewSource(seed))
	boxes := make([]*Box, 0, rectCount)
	for i := 0; i < rectCount; i++ {
		rect := NewRectangle(0, 0, widths.Random(rng), heights.Random(rng), i)
		boxes = append(boxes, NewBox(i, sideLength, rect))
	}

	return &Problem{
		ID:         uuid.New().String()[:8],
		SideLength: sideLength,
		RectCount:  rectCount,
		Widths:     widths,
		Heights:    heights,
		solution:   NewSolution(sideLength, boxes),
	}
}

// Solution returns the current solution. Algorithms mutate it in place.
func (p *Problem) Solution() *Solution {
	return p.solution
}
