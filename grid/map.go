package grid

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Tile codes
const (
	Open uint8 = 0
	Wall uint8 = 1
)

var (
	ErrEmpty      = errors.New("grid: map has no cells")
	ErrRagged     = errors.New("grid: rows differ in length")
	ErrOpenBorder = errors.New("grid: outer ring must be wall")
)

// Map is an immutable tile occupancy grid.
// Columns follow world X, rows follow world Z.
type Map struct {
	cols, rows int
	cells      []uint8 // row-major
}

// New copies tiles into a Map. tiles is indexed [row][col].
// The outermost ring must be nonzero so every ray terminates on a wall.
func New(tiles [][]uint8) (*Map, error) {
	if len(tiles) == 0 || len(tiles[0]) == 0 {
		return nil, ErrEmpty
	}

	rows, cols := len(tiles), len(tiles[0])
	m := &Map{cols: cols, rows: rows, cells: make([]uint8, cols*rows)}

	for r, line := range tiles {
		if len(line) != cols {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", r, len(line), cols, ErrRagged)
		}
		copy(m.cells[r*cols:], line)
	}

	for c := 0; c < cols; c++ {
		if m.cells[c] == Open || m.cells[(rows-1)*cols+c] == Open {
			return nil, fmt.Errorf("column %d: %w", c, ErrOpenBorder)
		}
	}
	for r := 0; r < rows; r++ {
		if m.cells[r*cols] == Open || m.cells[r*cols+cols-1] == Open {
			return nil, fmt.Errorf("row %d: %w", r, ErrOpenBorder)
		}
	}

	return m, nil
}

// Cols returns the number of tiles along X
func (m *Map) Cols() int { return m.cols }

// Rows returns the number of tiles along Z
func (m *Map) Rows() int { return m.rows }

// TileAt returns the tile code at (col, row).
// Indices outside the map read as Wall.
func (m *Map) TileAt(col, row int) uint8 {
	if col < 0 || col >= m.cols || row < 0 || row >= m.rows {
		return Wall
	}
	return m.cells[row*m.cols+col]
}

// Solid reports whether (col, row) blocks rays
func (m *Map) Solid(col, row int) bool {
	return m.TileAt(col, row) != Open
}

// WorldSize returns the map extent in world units
func (m *Map) WorldSize(cellSize float64) (width, depth float64) {
	return float64(m.cols) * cellSize, float64(m.rows) * cellSize
}

// Cell addresses one tile
type Cell struct {
	Col, Row int
}

// Center returns the world position at the middle of the tile
func (c Cell) Center(cellSize float64) (x, z float64) {
	return (float64(c.Col) + 0.5) * cellSize, (float64(c.Row) + 0.5) * cellSize
}

// CellOf returns the tile containing world position (x, z)
func CellOf(x, z, cellSize float64) (col, row int) {
	return int(math.Floor(x / cellSize)), int(math.Floor(z / cellSize))
}

// String renders the map as text rows, '#' for code 1, digits for other walls, '.' for open
func (m *Map) String() string {
	var sb strings.Builder
	sb.Grow((m.cols + 1) * m.rows)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			switch t := m.TileAt(c, r); {
			case t == Open:
				sb.WriteByte('.')
			case t == Wall:
				sb.WriteByte('#')
			case t <= 9:
				sb.WriteByte('0' + t)
			default:
				sb.WriteByte('#')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
