package game

import (
	"math"
	"testing"

	"github.com/lixenwraith/raycaster/config"
	"github.com/lixenwraith/raycaster/constants"
	"github.com/lixenwraith/raycaster/grid"
	"github.com/lixenwraith/raycaster/projection"
	"github.com/lixenwraith/raycaster/raycast"
	"github.com/lixenwraith/raycaster/render"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

type soundCounter struct {
	bumps, steps int
}

func (s *soundCounter) Bump() { s.bumps++ }
func (s *soundCounter) Step() { s.steps++ }

type rect struct {
	x, y, w, h int
	brush      render.Brush
}

// recordSurface captures draw requests instead of drawing them
type recordSurface struct {
	width, height int
	lines         int
	rects         []rect
	clears        int
	presents      int
}

func (r *recordSurface) Size() (int, int) { return r.width, r.height }
func (r *recordSurface) Clear() { r.clears++ }
func (r *recordSurface) DrawLine(x0, y0, x1, y1 int, b render.Brush) { r.lines++ }
func (r *recordSurface) FillRect(x, y, w, h int, b render.Brush) {
	r.rects = append(r.rects, rect{x, y, w, h, b})
}
func (r *recordSurface) Present() { r.presents++ }

func columnAt(distance float64, side raycast.Axis) projection.Column {
	return projection.Column{Distance: distance, Side: side}
}

func newTestSession(t *testing.T, mutate func(*config.Config)) (*Session, *soundCounter) {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	m := grid.Default()
	if err := cfg.ValidateStart(m); err != nil {
		t.Fatalf("Invalid test start: %v", err)
	}
	sounds := &soundCounter{}
	return NewSession(cfg, m, sounds), sounds
}

func TestApplyMovement(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		x, z, r float64
	}{
		{"Idle", Input{}, 80, 80, 0},
		{"Forward", Input{Forward: 1}, 80, 82, 0},
		{"Backward", Input{Forward: -1}, 80, 78, 0},
		{"Strafe right", Input{Strafe: 1}, 82, 80, 0},
		{"Strafe left", Input{Strafe: -1}, 78, 80, 0},
		{"Turn right", Input{Turn: 1}, 80, 80, 0.2},
		{"Turn left", Input{Turn: -3}, 80, 80, -0.2},
		{"Walk before turn", Input{Forward: 5, Turn: 1}, 80, 82, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t, nil)
			s.Apply(tt.in)
			p := s.Pose()
			if !near(p.X, tt.x) || !near(p.Z, tt.z) || !near(p.Heading, tt.r) {
				t.Errorf("Expected (%v, %v, %v), got (%v, %v, %v)", tt.x, tt.z, tt.r, p.X, p.Z, p.Heading)
			}
		})
	}
}

func TestApplyStepSound(t *testing.T) {
	s, sounds := newTestSession(t, nil)
	if moved := s.Apply(Input{Turn: 1}); moved {
		t.Error("Expected turning not to count as a move")
	}
	if moved := s.Apply(Input{Forward: 1}); !moved {
		t.Error("Expected forward to move")
	}
	if sounds.steps != 1 || sounds.bumps != 0 {
		t.Errorf("Expected one step and no bump, got %d steps %d bumps", sounds.steps, sounds.bumps)
	}
}

func TestCollisionRefusesMove(t *testing.T) {
	// Ring wall face is at z=64; 8 units away equals the collision radius
	s, sounds := newTestSession(t, func(c *config.Config) { c.Start.Z = 72 })

	if moved := s.Apply(Input{Forward: -1}); moved {
		t.Error("Expected move into the wall to be refused")
	}
	if p := s.Pose(); p.Z != 72 {
		t.Errorf("Expected camera to stay at z=72, got %v", p.Z)
	}
	if sounds.bumps != 1 || sounds.steps != 0 {
		t.Errorf("Expected one bump and no step, got %d bumps %d steps", sounds.bumps, sounds.steps)
	}

	// Away from the wall is free
	if moved := s.Apply(Input{Forward: 1}); !moved {
		t.Error("Expected move away from the wall")
	}
}

func TestCollisionKeepsRadius(t *testing.T) {
	s, _ := newTestSession(t, func(c *config.Config) { c.Start.Z = 80 })
	for i := 0; i < 20; i++ {
		s.Apply(Input{Forward: -1})
	}
	// Last accepted step starts 10 units from the face: 64 + 8
	if p := s.Pose(); !near(p.Z, 72) {
		t.Errorf("Expected camera to stop at z=72, got %v", p.Z)
	}
}

func TestCollisionIgnoresRenderBounds(t *testing.T) {
	// Screen bounds stop rays at z=480, well short of the far wall at z=960
	s, sounds := newTestSession(t, func(c *config.Config) {
		c.Start.Z = 80
		c.Bounds = config.BoundsScreen
	})
	for i := 0; i < 600; i++ {
		s.Apply(Input{Forward: 1})
	}
	p := s.Pose()
	if !near(p.Z, 952) {
		t.Errorf("Expected camera to stop at z=952, got %v", p.Z)
	}
	if sounds.bumps == 0 {
		t.Error("Expected bumps against the far wall")
	}
	col, row := grid.CellOf(p.X, p.Z, 64)
	if s.grid.Solid(col, row) {
		t.Errorf("Expected camera on an open tile, got (%d, %d)", col, row)
	}
}

func TestCollisionRefusesLeavingMap(t *testing.T) {
	// Open border: nothing but the map extent stops the camera
	m, err := grid.Parse([]string{
		"...",
		"...",
		"...",
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	cfg := config.Default()
	cfg.Start = config.Start{X: 96, Z: 160}
	sounds := &soundCounter{}
	s := NewSession(cfg, m, sounds)
	for i := 0; i < 40; i++ {
		s.Apply(Input{Forward: 1})
	}
	if p := s.Pose(); p.Z >= 192 {
		t.Errorf("Expected camera inside map depth 192, got z=%v", p.Z)
	}
	if sounds.bumps == 0 {
		t.Error("Expected bump at the map edge")
	}
}

func TestCollisionDisabled(t *testing.T) {
	s, sounds := newTestSession(t, func(c *config.Config) {
		c.Start.Z = 72
		c.Collision = false
	})
	s.Apply(Input{Forward: -1})
	if p := s.Pose(); !near(p.Z, 70) {
		t.Errorf("Expected free movement to z=70, got %v", p.Z)
	}
	if sounds.bumps != 0 {
		t.Error("Expected no bump with collision disabled")
	}
}

func TestToggleMap(t *testing.T) {
	s, _ := newTestSession(t, nil)
	if !s.ShowMap() {
		t.Fatal("Expected overlay shown by default")
	}
	s.Apply(Input{ToggleMap: true})
	if s.ShowMap() {
		t.Error("Expected overlay hidden after toggle")
	}
	s.Apply(Input{ToggleMap: true})
	if !s.ShowMap() {
		t.Error("Expected overlay shown after second toggle")
	}
}

func TestGoalReached(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.SetGoal(grid.Cell{Col: 1, Row: 2})

	s.Apply(Input{Forward: 1})
	if s.Reached() {
		t.Fatal("Expected goal not reached inside start tile")
	}

	// Row 2 starts at z=128
	for i := 0; i < 30 && !s.Reached(); i++ {
		s.Apply(Input{Forward: 1})
	}
	if !s.Reached() {
		t.Errorf("Expected goal reached, camera at %+v", s.Pose())
	}
}

func TestScan(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.Scan()

	hits := s.Hits()
	if len(hits) != 60 {
		t.Fatalf("Expected 60 rays, got %d", len(hits))
	}

	// Center ray looks straight down +Z to the far ring
	center := hits[30]
	if !center.Blocked || !near(center.Z, 960) || !near(center.Distance, 880) {
		t.Errorf("Expected center hit at z=960 distance 880, got %+v", center)
	}

	for i, h := range hits {
		if !h.Blocked {
			t.Errorf("Ray %d escaped a closed map: %+v", i, h)
		}
	}
}

func TestScanUsesPoseSnapshot(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.Scan()
	want := s.Hits()[0]

	// Moving after a scan does not change the stored rays until the next scan
	s.camera.Turn(1)
	if got := s.Hits()[0]; got != want {
		t.Errorf("Expected stored hit unchanged, got %+v", got)
	}

	s.Scan()
	expect := raycast.Cast(s.grid, 80, 80, s.view.RayAngle(0, 1), 64, 1024, 1024)
	if got := s.Hits()[0]; got != expect {
		t.Errorf("Expected rescan from new heading, got %+v want %+v", got, expect)
	}
}

func TestDrawColumns(t *testing.T) {
	s, _ := newTestSession(t, func(c *config.Config) { c.ShowMap = false })
	s.Scan()

	surface := &recordSurface{width: 640, height: 480}
	s.Draw(surface)

	if surface.clears != 1 || surface.presents != 1 {
		t.Errorf("Expected one clear and one present, got %d and %d", surface.clears, surface.presents)
	}
	if surface.lines != 0 {
		t.Errorf("Expected no lines in projected view, got %d", surface.lines)
	}
	if len(surface.rects) != 60 {
		t.Fatalf("Expected 60 wall columns, got %d", len(surface.rects))
	}

	// floor(64*480/880) = 34
	center := surface.rects[30]
	if center.x != 300 || center.w != 10 || center.h != 34 || center.y != 223 {
		t.Errorf("Expected center column {300 223 10 34}, got %+v", center)
	}
	if center.brush.Glyph != constants.ShadeGlyphs[len(constants.ShadeGlyphs)-1] {
		t.Errorf("Expected farthest shade for a distant wall, got %q", center.brush.Glyph)
	}
}

func TestWallBrushShading(t *testing.T) {
	s, _ := newTestSession(t, nil)

	nearCol := s.wallBrush(columnAt(32, raycast.AxisZ))
	farCol := s.wallBrush(columnAt(640, raycast.AxisZ))
	sideCol := s.wallBrush(columnAt(32, raycast.AxisX))

	if nearCol.Glyph != constants.ShadeGlyphs[0] {
		t.Errorf("Expected solid glyph up close, got %q", nearCol.Glyph)
	}
	if farCol.Color.R >= nearCol.Color.R {
		t.Errorf("Expected far wall darker: near %v far %v", nearCol.Color, farCol.Color)
	}
	if sideCol.Color.R >= nearCol.Color.R {
		t.Errorf("Expected X face darker: Z %v X %v", nearCol.Color, sideCol.Color)
	}
}

func TestWallBrushFadesToBackground(t *testing.T) {
	s, _ := newTestSession(t, nil)

	// 1000 cells away the wall keeps well under 1% of its own color
	far := s.wallBrush(columnAt(64000, raycast.AxisZ)).Color
	channels := [][2]uint8{{far.R, Background.R}, {far.G, Background.G}, {far.B, Background.B}}
	for i, c := range channels {
		if diff := int(c[0]) - int(c[1]); diff < -2 || diff > 2 {
			t.Errorf("Channel %d: expected near background %d, got %d", i, c[1], c[0])
		}
	}

	// A distant wall keeps the background's red rather than going black
	if far.R < Background.R {
		t.Errorf("Expected red at least %d, got %d", Background.R, far.R)
	}
}

func TestDrawOverlay(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.SetGoal(grid.Cell{Col: 14, Row: 14})
	s.Scan()

	// Surface matches the world so overlay pixels equal world units
	surface := &recordSurface{width: 1024, height: 1024}
	s.Draw(surface)

	// 17 vertical and 17 horizontal grid lines, one per ray, one heading line
	if want := 17 + 17 + 60 + 1; surface.lines != want {
		t.Errorf("Expected %d lines, got %d", want, surface.lines)
	}

	walls := 0
	for row := 0; row < s.grid.Rows(); row++ {
		for col := 0; col < s.grid.Cols(); col++ {
			if s.grid.Solid(col, row) {
				walls++
			}
		}
	}
	// Walls, goal, camera
	if want := walls + 2; len(surface.rects) != want {
		t.Fatalf("Expected %d rects, got %d", want, len(surface.rects))
	}

	goal := surface.rects[walls]
	if goal.x != 14*64 || goal.y != 14*64 || goal.w != 64 || goal.brush.Glyph != constants.GlyphGoal {
		t.Errorf("Unexpected goal marker %+v", goal)
	}

	camera := surface.rects[len(surface.rects)-1]
	if camera.x != 78 || camera.y != 78 || camera.w != 4 || camera.h != 4 {
		t.Errorf("Expected camera marker at (78, 78) size 4, got %+v", camera)
	}
}

func TestDrawOverlayScalesLargeMap(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.Scan()

	surface := &recordSurface{width: 512, height: 512}
	s.Draw(surface)

	// Half scale: cell (0, 0) wall covers 32 pixels
	first := surface.rects[0]
	if first.x != 0 || first.y != 0 || first.w != 32 {
		t.Errorf("Expected half-scale wall cell, got %+v", first)
	}
}
