// Package render turns abstract draw requests into output on a concrete surface.
package render

// Surface accepts the draw requests a frame produces.
// Coordinates are virtual pixels with the origin top-left; Size reports the virtual resolution.
type Surface interface {
	Size() (width, height int)
	Clear()
	DrawLine(x0, y0, x1, y1 int, b Brush)
	FillRect(x, y, w, h int, b Brush)
	Present()
}
