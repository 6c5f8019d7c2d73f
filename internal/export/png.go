package export

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/optalgo/boxpack/internal/model"
)

// Raster layout: pixels per unit cell and the gap between box tiles.
const (
	pxPerCell = 24
	tileGap   = 16
)

var (
	canvasBackground = color.NRGBA{R: 40, G: 42, B: 46, A: 255}
	tileBackground   = color.NRGBA{R: 235, G: 235, B: 235, A: 255}
)

// RenderPNG writes the solution as one image: box tiles on a near-square
// grid, each rectangle filled with its palette color and inset by one pixel
// so adjacent rectangles stay distinguishable.
func RenderPNG(path string, s *model.Solution) error {
	boxes := s.OrderedBoxes()
	if len(boxes) == 0 {
		return fmt.Errorf("no boxes to render")
	}

	cols := int(math.Ceil(math.Sqrt(float64(len(boxes)))))
	rows := (len(boxes) + cols - 1) / cols
	tileSide := s.SideLength() * pxPerCell

	canvas := imaging.New(
		cols*tileSide+(cols+1)*tileGap,
		rows*tileSide+(rows+1)*tileGap,
		canvasBackground,
	)

	for i, box := range boxes {
		x := tileGap + (i%cols)*(tileSide+tileGap)
		y := tileGap + (i/cols)*(tileSide+tileGap)
		canvas = imaging.Paste(canvas, renderTile(box), image.Pt(x, y))
		box.NeedsRedraw = false
	}

	return imaging.Save(canvas, path)
}

// renderTile rasterizes one box.
func renderTile(box *model.Box) image.Image {
	side := box.SideLength() * pxPerCell
	tile := imaging.New(side, side, tileBackground)

	for _, r := range box.Rects() {
		c := rectColors[r.ID%len(rectColors)]
		fill := imaging.New(
			r.Width()*pxPerCell-2,
			r.Height()*pxPerCell-2,
			color.NRGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 255},
		)
		tile = imaging.Paste(tile, fill, image.Pt(r.X()*pxPerCell+1, r.Y()*pxPerCell+1))
	}
	return tile
}
