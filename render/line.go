package render

import "math"

// TraceLine visits every cell a segment from (x0, y0) to (x1, y1) passes through.
// Coordinates are in cell units; cell (i, j) covers [i, i+1) x [j, j+1).
// Uses Supercover DDA so no touched cell is skipped; a corner crossing visits
// the diagonal cell directly. Returning false from visit stops the walk.
func TraceLine(x0, y0, x1, y1 float64, visit func(x, y int) bool) {
	for _, v := range [4]float64{x0, y0, x1, y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return
		}
	}

	cx, cy := int(math.Floor(x0)), int(math.Floor(y0))
	targetX, targetY := int(math.Floor(x1)), int(math.Floor(y1))

	dx, dy := x1-x0, y1-y0
	stepX, stepY := 1, 1
	if dx < 0 {
		stepX = -1
	}
	if dy < 0 {
		stepY = -1
	}

	// Parametric distance to the next line on each axis and between lines
	tMaxX, tDeltaX := math.Inf(1), math.Inf(1)
	if dx != 0 {
		tDeltaX = math.Abs(1 / dx)
		if stepX > 0 {
			tMaxX = (math.Floor(x0) + 1 - x0) * tDeltaX
		} else {
			tMaxX = (x0 - math.Floor(x0)) * tDeltaX
		}
	}
	tMaxY, tDeltaY := math.Inf(1), math.Inf(1)
	if dy != 0 {
		tDeltaY = math.Abs(1 / dy)
		if stepY > 0 {
			tMaxY = (math.Floor(y0) + 1 - y0) * tDeltaY
		} else {
			tMaxY = (y0 - math.Floor(y0)) * tDeltaY
		}
	}

	if !visit(cx, cy) {
		return
	}

	// Each pass moves at least one index toward its target, so the loop is bounded
	for cx != targetX || cy != targetY {
		switch {
		case tMaxX < tMaxY:
			if cx != targetX {
				cx += stepX
				tMaxX += tDeltaX
			} else {
				cy += stepY
				tMaxY += tDeltaY
			}
		case tMaxX > tMaxY:
			if cy != targetY {
				cy += stepY
				tMaxY += tDeltaY
			} else {
				cx += stepX
				tMaxX += tDeltaX
			}
		default:
			if cx != targetX {
				cx += stepX
				tMaxX += tDeltaX
			}
			if cy != targetY {
				cy += stepY
				tMaxY += tDeltaY
			}
		}

		if !visit(cx, cy) {
			return
		}
	}
}
