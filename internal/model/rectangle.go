package model

import "fmt"

// Rectangle is one axis-aligned rectangle to be fitted into boxes.
// Its origin and orientation are mutated only through MoveTo and Flip, which
// invalidate the cached derived sets. BoxID is an advisory back-reference to
// the owning box, never an owning pointer.
type Rectangle struct {
	ID    int
	BoxID int

	x      int
	y      int
	width  int
	height int

	coords  PointSet
	edges   PointSet
	corners PointSet
	dirty   bool
}

// NewRectangle creates a rectangle at the given origin. Degenerate input is
// a caller bug and panics rather than poisoning the packing logic.
func NewRectangle(x, y, width, height, id int) *Rectangle {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("model: rectangle %d must have positive dimensions, got %dx%d", id, width, height))
	}
	if x < 0 || y < 0 {
		panic(fmt.Sprintf("model: rectangle %d must have a non-negative origin, got (%d,%d)", id, x, y))
	}
	return &Rectangle{
		ID:     id,
		BoxID:  -1,
		x:      x,
		y:      y,
		width:  width,
		height: height,
		dirty:  true,
	}
}

func (r *Rectangle) X() int      { return r.x }
func (r *Rectangle) Y() int      { return r.y }
func (r *Rectangle) Width() int  { return r.width }
func (r *Rectangle) Height() int { return r.height }

// Area returns width times height.
func (r *Rectangle) Area() int {
	return r.width * r.height
}

// MoveTo relocates the origin and invalidates the derived caches.
func (r *Rectangle) MoveTo(x, y int) {
	if x < 0 || y < 0 {
		panic(fmt.Sprintf("model: rectangle %d moved to negative origin (%d,%d)", r.ID, x, y))
	}
	r.x = x
	r.y = y
	r.dirty = true
}

// Flip swaps width and height in place and invalidates the derived caches.
func (r *Rectangle) Flip() {
	r.width, r.height = r.height, r.width
	r.dirty = true
}

// Overlaps reports whether this rectangle overlaps other beyond the
// permissible fraction of their combined area. A threshold of zero means any
// shared cell counts. A rectangle never overlaps itself.
func (r *Rectangle) Overlaps(other *Rectangle, permissibleOverlap float64) bool {
	if r.ID == other.ID {
		return false
	}

	// Bounding boxes disjoint, nothing more to check.
	xOverlap := min(r.x+r.width, other.x+other.width) - max(r.x, other.x)
	yOverlap := min(r.y+r.height, other.y+other.height) - max(r.y, other.y)
	if xOverlap <= 0 || yOverlap <= 0 {
		return false
	}

	if permissibleOverlap == 0 {
		return true
	}
	intersection := float64(xOverlap * yOverlap)
	return intersection/float64(r.Area()+other.Area()) > permissibleOverlap
}

// Coordinates returns the set of cells covered by this rectangle,
// lazily recomputed after a move or flip.
func (r *Rectangle) Coordinates() PointSet {
	r.recompute()
	return r.coords
}

// Edges returns the closed boundary outline of this rectangle, inclusive of
// the one-past-end row and column on each side.
func (r *Rectangle) Edges() PointSet {
	r.recompute()
	return r.edges
}

// Corners returns the four extreme points of the outline.
func (r *Rectangle) Corners() PointSet {
	r.recompute()
	return r.corners
}

func (r *Rectangle) recompute() {
	if !r.dirty {
		return
	}

	r.coords = NewPointSet(r.width * r.height)
	for x := r.x; x < r.x+r.width; x++ {
		for y := r.y; y < r.y+r.height; y++ {
			r.coords.Add(Point{x, y})
		}
	}

	// The outline includes the far row and column so that two touching
	// rectangles share edge cells.
	r.edges = NewPointSet(2*(r.width+r.height) + 4)
	for x := r.x; x <= r.x+r.width; x++ {
		r.edges.Add(Point{x, r.y})
		r.edges.Add(Point{x, r.y + r.height})
	}
	for y := r.y; y <= r.y+r.height; y++ {
		r.edges.Add(Point{r.x, y})
		r.edges.Add(Point{r.x + r.width, y})
	}

	r.corners = NewPointSet(4)
	r.corners.Add(Point{r.x, r.y})
	r.corners.Add(Point{r.x + r.width, r.y})
	r.corners.Add(Point{r.x, r.y + r.height})
	r.corners.Add(Point{r.x + r.width, r.y + r.height})

	r.dirty = false
}

// Clone returns an independent copy. Derived sets are recomputed on demand
// in the copy instead of being duplicated.
func (r *Rectangle) Clone() *Rectangle {
	return &Rectangle{
		ID:     r.ID,
		BoxID:  r.BoxID,
		x:      r.x,
		y:      r.y,
		width:  r.width,
		height: r.height,
		dirty:  true,
	}
}

func (r *Rectangle) String() string {
	return fmt.Sprintf("[%d: (%d+%d/%d+%d)]", r.ID, r.x, r.width, r.y, r.height)
}
