// Package export renders finished packings for human inspection: a raster
// PNG of all boxes and a paginated PDF report. Display only; nothing
// written here is ever read back.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/optalgo/boxpack/internal/model"
)

// rectColor is an RGB fill color for a placed rectangle.
type rectColor struct {
	R, G, B int
}

// rectColors is the shared palette; rectangles cycle through it by id, so a
// rectangle keeps its color across pages and formats.
var rectColors = []rectColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	captionH     = 5.0
	boxGap       = 6.0
	drawAreaTop  = marginTop + headerHeight + 5.0

	boxColumns  = 4
	boxRows     = 2
	boxesPerPage = boxColumns * boxRows
)

// RenderPDF writes a paginated report of the solution: a grid of box
// diagrams, eight per page, with a score summary in the header.
func RenderPDF(path string, s *model.Solution, title string) error {
	boxes := s.OrderedBoxes()
	if len(boxes) == 0 {
		return fmt.Errorf("no boxes to render")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pages := (len(boxes) + boxesPerPage - 1) / boxesPerPage
	for page := 0; page < pages; page++ {
		start := page * boxesPerPage
		end := start + boxesPerPage
		if end > len(boxes) {
			end = len(boxes)
		}
		pdf.AddPage()
		renderBoxPage(pdf, s, boxes[start:end], title, page+1, pages)
	}

	return pdf.OutputFileAndClose(path)
}

// renderBoxPage draws up to boxesPerPage box diagrams on the current page.
func renderBoxPage(pdf *fpdf.Fpdf, s *model.Solution, boxes []*model.Box, title string, pageNum, pageCount int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	header := fmt.Sprintf("%s (page %d/%d)", title, pageNum, pageCount)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, header, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Boxes: %d | Rectangles: %d | %v", s.BoxCount(), s.RectCount(), s.Score())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom
	cellW := (drawWidth - (boxColumns-1)*boxGap) / boxColumns
	cellH := (drawHeight - (boxRows-1)*boxGap) / boxRows

	scale := math.Min(cellW, cellH-captionH) / float64(s.SideLength())
	side := float64(s.SideLength()) * scale

	for i, box := range boxes {
		col := i % boxColumns
		row := i / boxColumns
		x := marginLeft + float64(col)*(cellW+boxGap) + (cellW-side)/2
		y := drawAreaTop + float64(row)*(cellH+boxGap)
		renderBox(pdf, box, x, y, scale)

		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(80, 80, 80)
		pdf.SetXY(x, y+side+1)
		caption := fmt.Sprintf("Box %d: %d rects", box.ID, box.Len())
		pdf.CellFormat(side, 4, caption, "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
}

// renderBox draws one box diagram: the square outline plus a filled,
// labeled rectangle per placed rectangle.
func renderBox(pdf *fpdf.Fpdf, box *model.Box, x, y, scale float64) {
	side := float64(box.SideLength()) * scale

	pdf.SetFillColor(245, 245, 245)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.4)
	pdf.Rect(x, y, side, side, "FD")

	for _, r := range box.Rects() {
		col := rectColors[r.ID%len(rectColors)]
		rw := float64(r.Width()) * scale
		rh := float64(r.Height()) * scale
		rx := x + float64(r.X())*scale
		ry := y + float64(r.Y())*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		pdf.Rect(rx, ry, rw, rh, "FD")

		if rw > 8 && rh > 5 {
			pdf.SetFont("Helvetica", "", labelFontSize(rw, rh))
			pdf.SetTextColor(0, 0, 0)
			label := fmt.Sprintf("%dx%d", r.Width(), r.Height())
			labelW := pdf.GetStringWidth(label)
			if labelW < rw-1 {
				pdf.SetXY(rx+(rw-labelW)/2, ry+rh/2-2)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
		}
	}
	box.NeedsRedraw = false
}

// labelFontSize returns an appropriate font size for a rectangle of the
// given rendered dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 25:
		return 8
	case minDim > 12:
		return 7
	default:
		return 6
	}
}
