package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw paints the canvas onto a terminal screen using half-block cells: each
// cell shows two canvas rows, the upper one as ▀ foreground and the lower
// one as background. Rows are read top-down so that the canvas, whose
// origin is bottom-left, appears upright.
func (c *Canvas) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := c.height - 1 - (row-area.Min.Y)*2
		botY := topY - 1

		for col := area.Min.X; col < area.Max.X && col-area.Min.X < c.width; col++ {
			x := col - area.Min.X
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(c.At(x, topY)),
					Bg: rgbaToColor(c.At(x, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts a pixel to a terminal color; transparent pixels keep
// the terminal's default.
func rgbaToColor(c Color) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// TerminalRenderer presents canvases on a terminal.
type TerminalRenderer struct {
	term *uv.Terminal
	cols int
	rows int
}

// NewTerminalRenderer creates a renderer for a terminal of cols × rows cells.
func NewTerminalRenderer(term *uv.Terminal, cols, rows int) *TerminalRenderer {
	return &TerminalRenderer{term: term, cols: cols, rows: rows}
}

// CanvasSize returns the canvas dimensions that fill the terminal: one pixel
// per column and two per row.
func (t *TerminalRenderer) CanvasSize() (width, height int) {
	return t.cols, t.rows * 2
}

// Render draws the canvas into the terminal's cell buffer.
func (t *TerminalRenderer) Render(c *Canvas) {
	c.Draw(t.term, uv.Rect(0, 0, t.cols, t.rows))
}

// Flush writes pending cell changes to the terminal.
func (t *TerminalRenderer) Flush() error {
	return t.term.Display()
}
