package entity

import "math"

const (
	fullTurn    = 2 * math.Pi
	quarterTurn = math.Pi / 2
)

// Pose is a read-only snapshot of an entity used for one frame
type Pose struct {
	X, Z    float64
	Heading float64
}

// Entity is a viewer or actor in world space.
// Heading 0 faces +Z, increasing heading rotates toward +X.
type Entity struct {
	X, Z float64
	// Y is the vertical coordinate, reserved for vertical look and not read by raycasting
	Y float64
	R float64
}

// New creates an entity at (x, z) facing heading
func New(x, z, heading float64) *Entity {
	return &Entity{X: x, Z: z, R: heading}
}

// MoveForward advances along the heading, negative distance walks backwards
func (e *Entity) MoveForward(distance float64) {
	e.X += math.Sin(e.R) * distance
	e.Z += math.Cos(e.R) * distance
}

// MoveStrafe moves sideways, positive distance goes a quarter turn counter to heading
func (e *Entity) MoveStrafe(distance float64) {
	e.X += math.Sin(e.R-quarterTurn) * distance
	e.Z += math.Cos(e.R-quarterTurn) * distance
}

// Turn rotates by delta radians and wraps once so heading stays in (-2π, 2π)
func (e *Entity) Turn(delta float64) {
	e.R += delta
	if e.R >= fullTurn {
		e.R -= fullTurn
	} else if e.R < -fullTurn {
		e.R += fullTurn
	}
}

// Direction returns the unit heading vector (x, z)
func (e *Entity) Direction() (float64, float64) {
	return math.Sin(e.R), math.Cos(e.R)
}

func (e *Entity) Pose() Pose {
	return Pose{X: e.X, Z: e.Z, Heading: e.R}
}
