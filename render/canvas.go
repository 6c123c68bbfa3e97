package render

import (
	"github.com/gdamore/tcell/v2"
)

// Canvas is a Surface backed by a tcell screen.
// A virtual pixel resolution is scaled onto a rectangle of terminal cells
// starting at the top-left corner.
type Canvas struct {
	screen        tcell.Screen
	width, height int // virtual pixels
	cols, rows    int // terminal cells in use
	background    RGB
}

// NewCanvas maps width x height virtual pixels onto cols x rows cells
func NewCanvas(screen tcell.Screen, width, height, cols, rows int, background RGB) *Canvas {
	c := &Canvas{
		screen:     screen,
		width:      width,
		height:     height,
		background: background,
	}
	c.Resize(cols, rows)
	return c
}

// Resize changes the cell area, e.g. after a terminal resize event
func (c *Canvas) Resize(cols, rows int) {
	c.cols = max(cols, 0)
	c.rows = max(rows, 0)
}

func (c *Canvas) Size() (int, int) { return c.width, c.height }

// Cells returns the terminal area the canvas draws into
func (c *Canvas) Cells() (int, int) { return c.cols, c.rows }

func (c *Canvas) Clear() {
	style := tcell.StyleDefault.Background(c.background.Tcell())
	for y := 0; y < c.rows; y++ {
		for x := 0; x < c.cols; x++ {
			c.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// FillRect covers every cell the rectangle maps to; a non-empty rectangle covers at least one cell
func (c *Canvas) FillRect(x, y, w, h int, b Brush) {
	if w <= 0 || h <= 0 || c.width <= 0 || c.height <= 0 {
		return
	}

	c0, c1 := span(x, w, c.width, c.cols)
	r0, r1 := span(y, h, c.height, c.rows)
	style := c.style(b)

	for row := max(r0, 0); row < min(r1, c.rows); row++ {
		for col := max(c0, 0); col < min(c1, c.cols); col++ {
			c.screen.SetContent(col, row, b.Glyph, nil, style)
		}
	}
}

// DrawLine plots the cells a segment between two pixel positions crosses
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, b Brush) {
	if c.width <= 0 || c.height <= 0 {
		return
	}

	sx := float64(c.cols) / float64(c.width)
	sy := float64(c.rows) / float64(c.height)
	style := c.style(b)

	// Sample pixel centers so a line along a pixel row stays in one cell row
	TraceLine(
		(float64(x0)+0.5)*sx, (float64(y0)+0.5)*sy,
		(float64(x1)+0.5)*sx, (float64(y1)+0.5)*sy,
		func(col, row int) bool {
			if col >= 0 && col < c.cols && row >= 0 && row < c.rows {
				c.screen.SetContent(col, row, b.Glyph, nil, style)
			}
			return true
		},
	)
}

func (c *Canvas) Present() {
	c.screen.Show()
}

func (c *Canvas) style(b Brush) tcell.Style {
	return tcell.StyleDefault.Foreground(b.Color.Tcell()).Background(c.background.Tcell())
}

// span maps [pos, pos+size) in pixels to a half-open cell range
func span(pos, size, pixels, cells int) (int, int) {
	lo := floorDiv(pos*cells, pixels)
	hi := floorDiv((pos+size)*cells, pixels)
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
