package maze

import (
	"image/color"
	"io"

	"github.com/fogleman/gg"
)

// DefaultScale is the side of one cell in pixels when DrawPNG gets no scale.
const DefaultScale = 16

var (
	wallColor  = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	pathColor  = color.RGBA{R: 220, G: 60, B: 60, A: 255}
	startColor = color.RGBA{R: 0, G: 170, B: 0, A: 255}
	goalColor  = color.RGBA{R: 0, G: 90, B: 220, A: 255}
)

// DrawPNG writes the maze as a PNG image with path drawn as a line through
// the cell centers. Each cell is scale pixels wide.
func (m *Maze) DrawPNG(w io.Writer, path []CellPosition, scale int) error {
	if scale <= 0 {
		scale = DefaultScale
	}
	s := float64(scale)

	dc := gg.NewContext(max(m.cols, 1)*scale, max(m.rows, 1)*scale)
	dc.SetColor(color.White)
	dc.Clear()

	dc.SetColor(wallColor)
	for _, row := range m.grid {
		for _, cell := range row {
			if cell.IsWall() {
				dc.DrawRectangle(float64(cell.Position.Col)*s, float64(cell.Position.Row)*s, s, s)
			}
		}
	}
	dc.Fill()

	center := func(p CellPosition) (float64, float64) {
		return float64(p.Col)*s + s/2, float64(p.Row)*s + s/2
	}

	if len(path) > 1 {
		dc.SetColor(pathColor)
		dc.SetLineWidth(s / 3)
		dc.MoveTo(center(path[0]))
		for _, p := range path[1:] {
			dc.LineTo(center(p))
		}
		dc.Stroke()
	}

	for _, goal := range m.goals {
		x, y := center(goal)
		dc.DrawCircle(x, y, s/2.5)
	}
	dc.SetColor(goalColor)
	dc.Fill()

	if start, ok := m.Start(); ok {
		x, y := center(start)
		dc.DrawCircle(x, y, s/2.5)
		dc.SetColor(startColor)
		dc.Fill()
	}

	return dc.EncodePNG(w)
}
