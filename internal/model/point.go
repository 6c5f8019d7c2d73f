// Package model holds the geometric state of the box-packing problem:
// rectangles, boxes, solutions and the scores used to rank them.
package model

import "sort"

// Point is one cell on the integer unit grid.
type Point struct {
	X int
	Y int
}

// PointSet is a set of grid cells. All derived geometry (coverage, free
// space, adjacency) is expressed through these sets.
type PointSet map[Point]struct{}

// NewPointSet creates an empty set with room for n points.
func NewPointSet(n int) PointSet {
	return make(PointSet, n)
}

// GridPoints returns the full sideLength x sideLength cell grid.
func GridPoints(sideLength int) PointSet {
	s := make(PointSet, sideLength*sideLength)
	for x := 0; x < sideLength; x++ {
		for y := 0; y < sideLength; y++ {
			s[Point{x, y}] = struct{}{}
		}
	}
	return s
}

// Add inserts a point into the set.
func (s PointSet) Add(p Point) {
	s[p] = struct{}{}
}

// Has reports whether the point is in the set.
func (s PointSet) Has(p Point) bool {
	_, ok := s[p]
	return ok
}

// Delete removes a point from the set.
func (s PointSet) Delete(p Point) {
	delete(s, p)
}

// AddAll inserts every point of other into the set.
func (s PointSet) AddAll(other PointSet) {
	for p := range other {
		s[p] = struct{}{}
	}
}

// DeleteAll removes every point of other from the set.
func (s PointSet) DeleteAll(other PointSet) {
	for p := range other {
		delete(s, p)
	}
}

// Xor replaces the set with its symmetric difference against other.
// Points present in both sets cancel out.
func (s PointSet) Xor(other PointSet) {
	for p := range other {
		if _, ok := s[p]; ok {
			delete(s, p)
		} else {
			s[p] = struct{}{}
		}
	}
}

// ContainsAll reports whether other is a subset of this set.
func (s PointSet) ContainsAll(other PointSet) bool {
	if len(other) > len(s) {
		return false
	}
	for p := range other {
		if _, ok := s[p]; !ok {
			return false
		}
	}
	return true
}

// Equal reports whether both sets hold exactly the same points.
func (s PointSet) Equal(other PointSet) bool {
	if len(s) != len(other) {
		return false
	}
	return s.ContainsAll(other)
}

// Clone returns an independent copy of the set.
func (s PointSet) Clone() PointSet {
	c := make(PointSet, len(s))
	for p := range s {
		c[p] = struct{}{}
	}
	return c
}

// Sorted returns the points in row-major order (x first, then y).
// Neighborhood enumeration iterates sets in this order so that runs with a
// fixed seed stay reproducible.
func (s PointSet) Sorted() []Point {
	points := make([]Point, 0, len(s))
	for p := range s {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].X != points[j].X {
			return points[i].X < points[j].X
		}
		return points[i].Y < points[j].Y
	})
	return points
}
