package model

import "fmt"

// Box is one fixed-size square container of rectangles. It owns the
// rectangles stored in it and maintains three derived views incrementally:
// the free cells, the cells adjacent to placed rectangle boundaries (the
// candidate-origin search space), and the incident edge count used as a
// compactness proxy. A single dirty flag covers all three; they are always
// recomputed together.
type Box struct {
	ID int

	sideLength int
	rects      []*Rectangle

	free          PointSet
	adjacent      PointSet
	incidentEdges int
	dirty         bool

	// NeedsRedraw signals a rendering layer that this box changed.
	NeedsRedraw bool
}

// NewBox creates a box and places the given rectangles in it without overlap
// checks. Reconstruction paths (move undo, permutation decode) rely on being
// able to rebuild a box from known-good rectangles.
func NewBox(id, sideLength int, rects ...*Rectangle) *Box {
	if sideLength <= 0 {
		panic(fmt.Sprintf("model: box %d must have a positive side length, got %d", id, sideLength))
	}
	b := &Box{
		ID:          id,
		sideLength:  sideLength,
		dirty:       true,
		NeedsRedraw: true,
	}
	for _, r := range rects {
		b.AddRect(r, false)
	}
	return b
}

// SideLength returns the fixed side length of this box.
func (b *Box) SideLength() int { return b.sideLength }

// Len returns the number of rectangles in this box.
func (b *Box) Len() int { return len(b.rects) }

// Rects returns the rectangles in insertion order. The returned slice is the
// box's own backing storage and must not be modified by the caller.
func (b *Box) Rects() []*Rectangle { return b.rects }

// Rect returns the rectangle with the given id, or nil if it is not here.
func (b *Box) Rect(id int) *Rectangle {
	for _, r := range b.rects {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// SetID renumbers the box and updates the back-references of its rectangles.
func (b *Box) SetID(id int) {
	b.ID = id
	for _, r := range b.rects {
		r.BoxID = id
	}
}

// AddRect places a rectangle in this box. With checkOverlap set it fails
// (returning false, with no mutation) unless the rectangle's cells are a
// subset of the currently free cells. The checkOverlap=false escape hatch
// exists for the overlap-relaxation neighborhood and for reconstruction.
func (b *Box) AddRect(r *Rectangle, checkOverlap bool) bool {
	if checkOverlap && !b.FreeCoordinates().ContainsAll(r.Coordinates()) {
		return false
	}
	r.BoxID = b.ID
	b.rects = append(b.rects, r)
	b.dirty = true
	b.NeedsRedraw = true
	return true
}

// RemoveRect removes the rectangle with the given id and returns ownership
// of it. Removing an absent id is a caller bug and panics.
func (b *Box) RemoveRect(id int) *Rectangle {
	for i, r := range b.rects {
		if r.ID == id {
			b.rects = append(b.rects[:i], b.rects[i+1:]...)
			b.dirty = true
			b.NeedsRedraw = true
			return r
		}
	}
	panic(fmt.Sprintf("model: box %d has no rectangle %d to remove", b.ID, id))
}

// FreeCoordinates returns the cells not covered by any rectangle.
func (b *Box) FreeCoordinates() PointSet {
	b.recalculate()
	return b.free
}

// AdjacentCoordinates returns the cells that touch placed rectangle
// boundaries or the box's top/left border. These form the candidate-origin
// search space of the geometric neighborhood.
func (b *Box) AdjacentCoordinates() PointSet {
	b.recalculate()
	return b.adjacent
}

// IncidentEdgeCount returns the number of boundary cells shared by at least
// two rectangles plus the border-touching rectangle sides.
func (b *Box) IncidentEdgeCount() int {
	b.recalculate()
	return b.incidentEdges
}

// recalculate recomputes all three derived views together and clears the
// dirty flag. Mutators only ever set the flag; this is the single place it
// is cleared.
func (b *Box) recalculate() {
	if !b.dirty {
		return
	}
	b.recalculateAdjacent()
	b.recalculateFree()
	b.recalculateIncidentEdges()
	b.dirty = false
}

func (b *Box) recalculateAdjacent() {
	b.adjacent = NewPointSet(4 * b.sideLength)

	// Seed with the top and left box border so empty boxes still offer
	// origins along their edges.
	for i := 0; i <= b.sideLength; i++ {
		b.adjacent.Add(Point{i, 0})
		b.adjacent.Add(Point{0, i})
	}

	// Xor of all edge outlines cancels cells shared between two touching
	// rectangles, leaving only the exposed boundary.
	for _, r := range b.rects {
		b.adjacent.Xor(r.Edges())
	}
	// Xor also cancels corners where 3 or 4 outlines meet, which are valid
	// origins, so add every corner back.
	for _, r := range b.rects {
		b.adjacent.AddAll(r.Corners())
	}
}

func (b *Box) recalculateFree() {
	b.free = GridPoints(b.sideLength)
	for _, r := range b.rects {
		b.free.DeleteAll(r.Coordinates())
	}
}

func (b *Box) recalculateIncidentEdges() {
	b.incidentEdges = 0

	counts := make(map[Point]int)
	for _, r := range b.rects {
		for p := range r.Edges() {
			counts[p]++
		}
		// Sides flush with the box border count directly.
		if r.X() == 0 || r.X()+r.Width() == b.sideLength {
			b.incidentEdges += r.Height()
		}
		if r.Y() == 0 || r.Y()+r.Height() == b.sideLength {
			b.incidentEdges += r.Width()
		}
	}

	// Each occurrence beyond the first marks a cell shared between outlines.
	for _, c := range counts {
		if c > 1 {
			b.incidentEdges += c - 1
		}
	}
}

// FitRectCompress scans the free cells in row-major order and tries the
// rectangle at each origin in both orientations, taking the first fit. With
// apply set, the rectangle is moved (and possibly flipped) and inserted.
// Permutation decoding uses this to greedily re-pack a linear rectangle
// order.
func (b *Box) FitRectCompress(r *Rectangle, apply bool) bool {
	free := b.FreeCoordinates()
	for _, origin := range free.Sorted() {
		if b.fitsAt(free, origin, r.Width(), r.Height()) {
			if apply {
				r.MoveTo(origin.X, origin.Y)
				b.AddRect(r, true)
			}
			return true
		}
		if r.Width() != r.Height() && b.fitsAt(free, origin, r.Height(), r.Width()) {
			if apply {
				r.Flip()
				r.MoveTo(origin.X, origin.Y)
				b.AddRect(r, true)
			}
			return true
		}
	}
	return false
}

// fitsAt reports whether a width x height footprint at origin is entirely
// within the free set.
func (b *Box) fitsAt(free PointSet, origin Point, width, height int) bool {
	if origin.X+width > b.sideLength || origin.Y+height > b.sideLength {
		return false
	}
	for x := origin.X; x < origin.X+width; x++ {
		for y := origin.Y; y < origin.Y+height; y++ {
			if !free.Has(Point{x, y}) {
				return false
			}
		}
	}
	return true
}

// BiggestPlaceableRect returns the dimensions of the largest rectangle that
// can currently be placed in this box. For every free cell the footprint is
// greedily extended along x then y and separately along y then x; the larger
// area wins. Used as a fast feasibility pre-check before fill-type
// permutation moves.
func (b *Box) BiggestPlaceableRect() (width, height int) {
	free := b.FreeCoordinates()
	bestArea := 0
	for _, origin := range free.Sorted() {
		for _, xFirst := range []bool{true, false} {
			w, h := expandFootprint(free, origin, xFirst)
			if w*h > bestArea {
				bestArea = w * h
				width, height = w, h
			}
		}
	}
	return width, height
}

// expandFootprint grows a rectangle from origin, first along the primary
// axis as far as cells are free, then along the secondary axis as long as
// every cell of the extended row (or column) is free.
func expandFootprint(free PointSet, origin Point, xFirst bool) (width, height int) {
	if xFirst {
		width = 0
		for free.Has(Point{origin.X + width, origin.Y}) {
			width++
		}
		height = 1
	grow:
		for {
			for x := origin.X; x < origin.X+width; x++ {
				if !free.Has(Point{x, origin.Y + height}) {
					break grow
				}
			}
			height++
		}
		return width, height
	}

	height = 0
	for free.Has(Point{origin.X, origin.Y + height}) {
		height++
	}
	width = 1
growY:
	for {
		for y := origin.Y; y < origin.Y+height; y++ {
			if !free.Has(Point{origin.X + width, y}) {
				break growY
			}
		}
		width++
	}
	return width, height
}

// Clone returns a deep copy of the box and its rectangles.
func (b *Box) Clone() *Box {
	c := &Box{
		ID:          b.ID,
		sideLength:  b.sideLength,
		rects:       make([]*Rectangle, len(b.rects)),
		dirty:       true,
		NeedsRedraw: b.NeedsRedraw,
	}
	for i, r := range b.rects {
		c.rects[i] = r.Clone()
	}
	return c
}

func (b *Box) String() string {
	s := fmt.Sprintf("%d:", b.ID)
	for _, r := range b.rects {
		s += " " + r.String()
	}
	return s
}
