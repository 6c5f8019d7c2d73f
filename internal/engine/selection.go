package engine

import (
	"math"

	"github.com/optalgo/boxpack/internal/model"
)

// ByAreaSelection places the largest remaining rectangle at the first free
// origin (row-major) of the lowest-id box that takes it, without flipping.
// Big rectangles go in while boxes are still empty; the small ones left at
// the end plug the remaining gaps.
type ByAreaSelection struct{}

func (ByAreaSelection) Kind() SelectionKind { return KindByArea }

// Select picks the next insertion, or nil when the pool is empty.
func (ByAreaSelection) Select(s *model.Solution, unprocessed []*model.Rectangle) *SelectionMove {
	rect := largestByArea(unprocessed)
	if rect == nil {
		return nil
	}

	for _, box := range s.OrderedBoxes() {
		free := box.FreeCoordinates()
		for _, origin := range free.Sorted() {
			if footprintFits(free, origin, rect.Width(), rect.Height(), box.SideLength()) {
				rect.MoveTo(origin.X, origin.Y)
				return NewSelectionMove(rect, box.ID)
			}
		}
	}

	rect.MoveTo(0, 0)
	return NewSelectionMove(rect, s.MaxBoxID()+1)
}

// BySpaceSelection works the other way around: it walks the free gaps of
// the existing boxes and picks the rectangle that fills the current gap
// with the least slack. Gaps get closed while rectangles that could close
// them are still available.
type BySpaceSelection struct{}

func (BySpaceSelection) Kind() SelectionKind { return KindBySpace }

// Select picks the next insertion, or nil when the pool is empty. Candidate
// gaps are tried per box in column order; the first gap some rectangle fits
// wins. When no gap takes any rectangle, the largest one opens a new box,
// creating the most new free space to select into.
func (BySpaceSelection) Select(s *model.Solution, unprocessed []*model.Rectangle) *SelectionMove {
	if len(unprocessed) == 0 {
		return nil
	}

	for _, box := range s.OrderedBoxes() {
		free := box.FreeCoordinates()
		for _, origin := range columnOrigins(free, box.SideLength()) {
			availW, availH := availableFootprint(free, origin)
			rect := bestFitting(unprocessed, availW, availH)
			if rect == nil {
				continue
			}
			rect.MoveTo(origin.X, origin.Y)
			return NewSelectionMove(rect, box.ID)
		}
	}

	rect := largestByArea(unprocessed)
	rect.MoveTo(0, 0)
	return NewSelectionMove(rect, s.MaxBoxID()+1)
}

// columnOrigins returns the topmost free cell of every x-column that has
// one, in x order.
func columnOrigins(free model.PointSet, sideLength int) []model.Point {
	var origins []model.Point
	for x := 0; x < sideLength; x++ {
		for y := 0; y < sideLength; y++ {
			if free.Has(model.Point{X: x, Y: y}) {
				origins = append(origins, model.Point{X: x, Y: y})
				break
			}
		}
	}
	return origins
}

// availableFootprint expands from origin rightward as far as cells are
// free, then downward as long as the full row stays free.
func availableFootprint(free model.PointSet, origin model.Point) (width, height int) {
	for free.Has(model.Point{X: origin.X + width, Y: origin.Y}) {
		width++
	}
	if width == 0 {
		return 0, 0
	}
	height = 1
grow:
	for {
		for x := origin.X; x < origin.X+width; x++ {
			if !free.Has(model.Point{X: x, Y: origin.Y + height}) {
				break grow
			}
		}
		height++
	}
	return width, height
}

// bestFitting returns the rectangle that fits the footprint with minimal
// slack, comparing (width slack, height slack) lexicographically. Nil when
// nothing fits. Orientation is kept as-is; this schema never flips.
func bestFitting(rects []*model.Rectangle, availW, availH int) *model.Rectangle {
	var best *model.Rectangle
	bestDW, bestDH := math.MaxInt, math.MaxInt

	for _, r := range rects {
		if r.Width() > availW || r.Height() > availH {
			continue
		}
		dw, dh := availW-r.Width(), availH-r.Height()
		if dw < bestDW || (dw == bestDW && dh < bestDH) {
			best = r
			bestDW, bestDH = dw, dh
		}
	}
	return best
}

// largestByArea returns the largest rectangle in the pool, or nil for an
// empty pool. Ties keep the earlier entry.
func largestByArea(rects []*model.Rectangle) *model.Rectangle {
	var best *model.Rectangle
	for _, r := range rects {
		if best == nil || r.Area() > best.Area() {
			best = r
		}
	}
	return best
}

// footprintFits reports whether a width x height footprint at origin lies
// entirely in the free set and inside the box bounds.
func footprintFits(free model.PointSet, origin model.Point, width, height, sideLength int) bool {
	if origin.X+width > sideLength || origin.Y+height > sideLength {
		return false
	}
	for x := origin.X; x < origin.X+width; x++ {
		for y := origin.Y; y < origin.Y+height; y++ {
			if !free.Has(model.Point{X: x, Y: y}) {
				return false
			}
		}
	}
	return true
}
