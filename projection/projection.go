// Package projection turns ray hits into screen-space wall columns.
package projection

import (
	"math"

	"github.com/lixenwraith/raycaster/raycast"
)

const degree = math.Pi / 180

// View describes the image plane: screen size in pixels, one ray per degree of field of view
type View struct {
	Width, Height int
	FOVDegrees    int
	CellSize      float64
}

// Column is a drawable wall segment for one ray
type Column struct {
	X, Y          int
	Width, Height int
	Distance      float64 // fisheye-corrected
	Side          raycast.Axis
}

// Correct removes fisheye distortion: distance projected onto the view direction
func Correct(distance, rayAngle, heading float64) float64 {
	return distance * math.Cos(heading-rayAngle)
}

// ColumnWidth is the pixel width assigned to each one-degree ray
func (v View) ColumnWidth() int {
	if v.FOVDegrees <= 0 {
		return 0
	}
	return v.Width / v.FOVDegrees
}

// Rays returns the number of columns per frame
func (v View) Rays() int { return v.FOVDegrees }

// RayAngle returns the cast angle for column i in [0, FOVDegrees).
// Angles step one degree across [-fov/2, fov/2) around heading.
func (v View) RayAngle(i int, heading float64) float64 {
	return heading + float64(i-v.FOVDegrees/2)*degree
}

// WallHeight converts a corrected distance to a wall height in pixels.
// Heights are clamped to the screen; ok is false when nothing should be drawn.
func (v View) WallHeight(corrected float64) (height int, ok bool) {
	if !(corrected > 0) {
		return 0, false
	}

	h := math.Floor(v.CellSize * float64(v.Height) / corrected)
	if h >= float64(v.Height) {
		return v.Height, v.Height > 0
	}
	if h <= 0 {
		return 0, false
	}
	return int(h), true
}

// Column places the wall for ray i, centered vertically.
// ok is false for rays that found no wall.
func (v View) Column(i int, hit raycast.Hit, rayAngle, heading float64) (Column, bool) {
	if hit.Distance <= 0 || !hit.Blocked {
		return Column{}, false
	}

	corrected := Correct(hit.Distance, rayAngle, heading)
	h, ok := v.WallHeight(corrected)
	if !ok {
		return Column{}, false
	}

	w := v.ColumnWidth()
	return Column{
		X:        i * w,
		Y:        v.Height/2 - h/2,
		Width:    w,
		Height:   h,
		Distance: corrected,
		Side:     hit.Side,
	}, true
}
