// Package raycast walks rays through a tile grid using DDA traversal.
package raycast

import (
	"math"
)

// Occupancy is the tile lookup a ray is traced against
type Occupancy interface {
	TileAt(col, row int) uint8
}

// Axis identifies which family of grid lines a ray crossed last
type Axis uint8

const (
	AxisNone Axis = iota // ray never left its origin
	AxisX                // crossed a vertical line (constant X)
	AxisZ                // crossed a horizontal line (constant Z)
)

// Hit is the outcome of one cast
type Hit struct {
	X, Z     float64 // end point in world units
	Distance float64 // travel along the ray
	Col, Row int     // tile occupied at the end point
	Blocked  bool    // stopped on a wall rather than leaving the bounds
	Side     Axis
}

// Cast traces a ray from (originX, originZ) at angle until it enters an
// occupied tile or leaves the rectangle (0, boundsX) x (0, boundsZ).
// Angle 0 points along +Z, increasing angle rotates toward +X.
//
// The bounds test runs before every tile lookup, so with bounds inside the
// map extent no out-of-range tile is ever read. When both axes tie for the
// next crossing, the Z axis is stepped.
//
// Precondition: sin(angle) and cos(angle) are not both zero, which holds for
// every finite angle. Non-finite input fails the bounds test or is cut off
// after the step count any finite ray could need.
func Cast(m Occupancy, originX, originZ, angle, cellSize, boundsX, boundsZ float64) Hit {
	dirX := math.Sin(angle)
	dirZ := math.Cos(angle)

	// Offset selects the far edge of the current tile when moving positive
	offX, stepX := 0, -1
	if dirX > 0 {
		offX, stepX = 1, 1
	}
	offZ, stepZ := 0, -1
	if dirZ > 0 {
		offZ, stepZ = 1, 1
	}

	// Index of the next grid line to cross on each axis
	lineX := int(math.Floor(originX/cellSize)) + offX
	lineZ := int(math.Floor(originZ/cellSize)) + offZ

	h := Hit{X: originX, Z: originZ}
	maxSteps := int(math.Ceil(boundsX/cellSize)) + int(math.Ceil(boundsZ/cellSize)) + 2

	for step := 0; step <= maxSteps; step++ {
		h.Col, h.Row = lineX-offX, lineZ-offZ

		// Negated inside test: NaN positions count as outside
		if !(h.X > 0 && h.X < boundsX && h.Z > 0 && h.Z < boundsZ) {
			return h
		}
		if m.TileAt(h.Col, h.Row) != 0 {
			h.Blocked = true
			return h
		}

		deltaX, deltaZ := math.Inf(1), math.Inf(1)
		if dirX != 0 {
			deltaX = (float64(lineX)*cellSize - h.X) / dirX
		}
		if dirZ != 0 {
			deltaZ = (float64(lineZ)*cellSize - h.Z) / dirZ
		}

		var t float64
		h.Side = nearerAxis(deltaX, deltaZ)
		if h.Side == AxisX {
			t = deltaX
			lineX += stepX
		} else {
			t = deltaZ
			lineZ += stepZ
		}

		h.Distance += t
		h.X += dirX * t
		h.Z += dirZ * t
	}

	return h
}

// nearerAxis picks the axis whose grid line is reached first, Z on ties
func nearerAxis(deltaX, deltaZ float64) Axis {
	if deltaX < deltaZ {
		return AxisX
	}
	return AxisZ
}
