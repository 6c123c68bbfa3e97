// Package game drives the raycaster: it applies input to the camera, casts
// one ray per column and draws the result on a render surface.
package game

import (
	"log"
	"math"

	"github.com/lixenwraith/raycaster/config"
	"github.com/lixenwraith/raycaster/constants"
	"github.com/lixenwraith/raycaster/entity"
	"github.com/lixenwraith/raycaster/grid"
	"github.com/lixenwraith/raycaster/projection"
	"github.com/lixenwraith/raycaster/raycast"
	"github.com/lixenwraith/raycaster/render"
)

// Sounds receives movement feedback
type Sounds interface {
	Bump()
	Step()
}

type silent struct{}

func (silent) Bump() {}
func (silent) Step() {}

// Background is the clear color surfaces are created with
var Background = render.RGB{R: 20, G: 0, B: 0}

// Palette
var (
	colorGrid   = render.RGB{R: 90, G: 90, B: 90}
	colorWall   = render.RGB{R: 170, G: 170, B: 190}
	colorCamera = render.RGBWhite
	colorRay    = render.RGB{R: 230, G: 200, B: 60}
	colorGoal   = render.RGB{R: 60, G: 220, B: 90}
)

// Session is one running view of a map
type Session struct {
	grid   *grid.Map
	camera *entity.Entity
	view   projection.View

	boundsX, boundsZ float64
	moveSpeed        float64
	turnSpeed        float64
	collision        bool
	radius           float64

	showMap bool
	sounds  Sounds

	goal    grid.Cell
	hasGoal bool
	reached bool

	// Last scan, one entry per column
	pose   entity.Pose
	angles []float64
	hits   []raycast.Hit
}

// NewSession places the camera at the configured start pose; sounds may be nil
func NewSession(cfg *config.Config, m *grid.Map, sounds Sounds) *Session {
	if sounds == nil {
		sounds = silent{}
	}
	bx, bz := cfg.BoundsFor(m)
	view := projection.View{
		Width:      cfg.ScreenWidth,
		Height:     cfg.ScreenHeight,
		FOVDegrees: cfg.FOVDegrees,
		CellSize:   cfg.CellSize,
	}
	return &Session{
		grid:      m,
		camera:    entity.New(cfg.Start.X, cfg.Start.Z, cfg.Start.Heading),
		view:      view,
		boundsX:   bx,
		boundsZ:   bz,
		moveSpeed: cfg.MoveSpeed,
		turnSpeed: cfg.TurnSpeed,
		collision: cfg.Collision,
		radius:    cfg.CollisionRadius,
		showMap:   cfg.ShowMap,
		sounds:    sounds,
		angles:    make([]float64, view.Rays()),
		hits:      make([]raycast.Hit, view.Rays()),
	}
}

// SetGoal marks a tile the camera is trying to reach
func (s *Session) SetGoal(c grid.Cell) {
	s.goal = c
	s.hasGoal = true
	s.reached = false
}

func (s *Session) Pose() entity.Pose { return s.camera.Pose() }

func (s *Session) ShowMap() bool { return s.showMap }

// Reached reports whether the camera has stood on the goal tile
func (s *Session) Reached() bool { return s.reached }

func (s *Session) View() projection.View { return s.view }

// Hits returns the rays of the last Scan; the slice is reused by the next one
func (s *Session) Hits() []raycast.Hit { return s.hits }

// Apply moves the camera once for this frame: walk, then strafe, then turn.
// It reports whether the position changed.
func (s *Session) Apply(in Input) bool {
	if in.ToggleMap {
		s.showMap = !s.showMap
		log.Printf("overlay toggled: show_map=%v", s.showMap)
	}

	moved := false
	if in.Forward != 0 {
		step := sign(in.Forward) * s.moveSpeed
		heading := s.camera.R
		if step < 0 {
			heading += math.Pi
		}
		if s.clear(heading, math.Abs(step)) {
			s.camera.MoveForward(step)
			moved = true
		}
	}

	if in.Strafe != 0 {
		// MoveStrafe with a positive distance goes left
		step := -sign(in.Strafe) * s.moveSpeed
		heading := s.camera.R - math.Pi/2
		if step < 0 {
			heading += math.Pi
		}
		if s.clear(heading, math.Abs(step)) {
			s.camera.MoveStrafe(step)
			moved = true
		}
	}

	if in.Turn != 0 {
		s.camera.Turn(sign(in.Turn) * s.turnSpeed)
	}

	if moved {
		s.sounds.Step()
		s.checkGoal()
	}
	return moved
}

// clear casts along heading and refuses a step that would end inside the collision radius of a wall.
// Movement is checked against the map's own extent, not the render bounds, so a wider
// render window never lets the camera leave the grid.
func (s *Session) clear(heading, step float64) bool {
	if !s.collision {
		return true
	}
	worldX, worldZ := s.grid.WorldSize(s.view.CellSize)

	nx := s.camera.X + math.Sin(heading)*step
	nz := s.camera.Z + math.Cos(heading)*step
	if !(nx > 0 && nx < worldX && nz > 0 && nz < worldZ) {
		log.Printf("move refused at (%.1f, %.1f) heading %.2f: leaves map extent %.0fx%.0f",
			s.camera.X, s.camera.Z, heading, worldX, worldZ)
		s.sounds.Bump()
		return false
	}

	ahead := raycast.Cast(s.grid, s.camera.X, s.camera.Z, heading, s.view.CellSize, worldX, worldZ)
	if ahead.Blocked && ahead.Distance < step+s.radius {
		log.Printf("move refused at (%.1f, %.1f) heading %.2f: wall tile (%d, %d) at %.1f",
			s.camera.X, s.camera.Z, heading, ahead.Col, ahead.Row, ahead.Distance)
		s.sounds.Bump()
		return false
	}
	return true
}

func (s *Session) checkGoal() {
	if !s.hasGoal || s.reached {
		return
	}
	col, row := grid.CellOf(s.camera.X, s.camera.Z, s.view.CellSize)
	if col == s.goal.Col && row == s.goal.Row {
		s.reached = true
		log.Printf("goal (%d, %d) reached", col, row)
	}
}

// Scan casts one ray per column from a single pose snapshot
func (s *Session) Scan() {
	s.pose = s.camera.Pose()
	for i := range s.hits {
		angle := s.view.RayAngle(i, s.pose.Heading)
		s.angles[i] = angle
		s.hits[i] = raycast.Cast(s.grid, s.pose.X, s.pose.Z, angle, s.view.CellSize, s.boundsX, s.boundsZ)
	}
}

// Draw renders the last scan as either the map overlay or the projected view
func (s *Session) Draw(surface render.Surface) {
	surface.Clear()
	if s.showMap {
		s.drawOverlay(surface)
	} else {
		s.drawColumns(surface)
	}
	surface.Present()
}

func (s *Session) drawColumns(surface render.Surface) {
	for i, hit := range s.hits {
		col, ok := s.view.Column(i, hit, s.angles[i], s.pose.Heading)
		if !ok {
			continue
		}
		surface.FillRect(col.X, col.Y, col.Width, col.Height, s.wallBrush(col))
	}
}

// wallBrush fades toward the background with distance; faces on X lines are dimmer so corners read
func (s *Session) wallBrush(col projection.Column) render.Brush {
	cells := col.Distance / s.view.CellSize
	shade := min(int(cells/constants.ShadeDistanceCells), len(constants.ShadeGlyphs)-1)

	base := colorWall
	if col.Side == raycast.AxisX {
		base = base.Scale(0.75)
	}
	factor := 1.0 / (1.0 + cells*0.15)
	return render.Brush{Glyph: constants.ShadeGlyphs[shade], Color: Background.Blend(base, factor)}
}

func (s *Session) drawOverlay(surface render.Surface) {
	cell := s.view.CellSize
	worldW, worldZ := s.grid.WorldSize(cell)

	// World units map 1:1 to pixels unless the map is larger than the surface
	w, h := surface.Size()
	scale := min(1.0, float64(w)/worldW, float64(h)/worldZ)
	px := func(v float64) int { return int(math.Floor(v * scale)) }

	gridBrush := render.Brush{Glyph: constants.GlyphGridLine, Color: colorGrid}
	for x := 0.0; x <= worldW; x += cell {
		surface.DrawLine(px(x), 0, px(x), px(worldZ), gridBrush)
	}
	for z := 0.0; z <= worldZ; z += cell {
		surface.DrawLine(0, px(z), px(worldW), px(z), gridBrush)
	}

	wallBrush := render.Brush{Glyph: constants.GlyphWall, Color: colorWall}
	size := px(cell)
	for row := 0; row < s.grid.Rows(); row++ {
		for col := 0; col < s.grid.Cols(); col++ {
			if s.grid.Solid(col, row) {
				surface.FillRect(px(float64(col)*cell), px(float64(row)*cell), size, size, wallBrush)
			}
		}
	}

	if s.hasGoal {
		goalBrush := render.Brush{Glyph: constants.GlyphGoal, Color: colorGoal}
		surface.FillRect(px(float64(s.goal.Col)*cell), px(float64(s.goal.Row)*cell), size, size, goalBrush)
	}

	rayBrush := render.Brush{Glyph: constants.GlyphRay, Color: colorRay}
	cx, cz := px(s.pose.X), px(s.pose.Z)
	for _, hit := range s.hits {
		surface.DrawLine(cx, cz, px(hit.X), px(hit.Z), rayBrush)
	}

	dx, dz := math.Sin(s.pose.Heading), math.Cos(s.pose.Heading)
	headX := px(s.pose.X + dx*constants.HeadingLineLength)
	headZ := px(s.pose.Z + dz*constants.HeadingLineLength)
	surface.DrawLine(cx, cz, headX, headZ, render.Brush{Glyph: constants.GlyphHeading, Color: colorCamera})

	half := constants.CameraMarkerSize / 2
	surface.FillRect(cx-half, cz-half, constants.CameraMarkerSize, constants.CameraMarkerSize,
		render.Brush{Glyph: constants.GlyphCamera, Color: colorCamera})
}
