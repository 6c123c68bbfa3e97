package grid

import (
	"fmt"
	"strings"
)

// defaultLayout is the 16x16 demo maze: a walled ring around an interior box
var defaultLayout = []string{
	"################",
	"#..............#",
	"#..............#",
	"#..............#",
	"#...#########..#",
	"#...#.......#..#",
	"#...#.......#..#",
	"#...#.......#..#",
	"#...#.......#..#",
	"#...#.......#..#",
	"#...#.......#..#",
	"#...#.......#..#",
	"#...#########..#",
	"#..............#",
	"#..............#",
	"################",
}

// Default returns the built-in demo maze
func Default() *Map {
	m, err := Parse(defaultLayout)
	if err != nil {
		panic(fmt.Sprintf("grid: default layout invalid: %v", err))
	}
	return m
}

// DefaultLayout returns a copy of the demo maze rows
func DefaultLayout() []string {
	return append([]string(nil), defaultLayout...)
}

// Parse builds a Map from text rows.
// '#' is code 1, '1'-'9' set the code explicitly, '.', ' ' and '0' are open.
// Blank leading/trailing rows are ignored.
func Parse(lines []string) (*Map, error) {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}

	tiles := make([][]uint8, 0, end-start)
	for i, line := range lines[start:end] {
		row := make([]uint8, 0, len(line))
		for j, ch := range line {
			switch {
			case ch == '#':
				row = append(row, Wall)
			case ch >= '1' && ch <= '9':
				row = append(row, uint8(ch-'0'))
			case ch == '.' || ch == ' ' || ch == '0':
				row = append(row, Open)
			default:
				return nil, fmt.Errorf("grid: line %d col %d: unknown tile %q", start+i+1, j+1, ch)
			}
		}
		tiles = append(tiles, row)
	}

	return New(tiles)
}
