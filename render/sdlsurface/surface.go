//go:build sdl

// Package sdlsurface draws frames into an SDL2 window.
package sdlsurface

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/lixenwraith/raycaster/render"
)

// Surface adapts an SDL renderer; virtual pixels are window pixels
type Surface struct {
	renderer      *sdl.Renderer
	width, height int
	background    render.RGB
	err           error
}

func New(renderer *sdl.Renderer, width, height int, background render.RGB) *Surface {
	return &Surface{renderer: renderer, width: width, height: height, background: background}
}

func (s *Surface) Size() (int, int) { return s.width, s.height }

func (s *Surface) Clear() {
	s.color(s.background)
	s.trap(s.renderer.Clear())
}

func (s *Surface) DrawLine(x0, y0, x1, y1 int, b render.Brush) {
	s.color(b.Color)
	s.trap(s.renderer.DrawLine(int32(x0), int32(y0), int32(x1), int32(y1)))
}

func (s *Surface) FillRect(x, y, w, h int, b render.Brush) {
	if w <= 0 || h <= 0 {
		return
	}
	s.color(b.Color)
	s.trap(s.renderer.FillRect(&sdl.Rect{X: int32(x), Y: int32(y), W: int32(w), H: int32(h)}))
}

func (s *Surface) Present() {
	s.renderer.Present()
}

// Err returns the first renderer error since creation
func (s *Surface) Err() error { return s.err }

func (s *Surface) color(c render.RGB) {
	s.trap(s.renderer.SetDrawColor(c.R, c.G, c.B, 0xFF))
}

func (s *Surface) trap(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}
