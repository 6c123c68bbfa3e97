// Command maze-generator prints a generated maze, either as a preview or as a
// TOML fragment that raycaster -config accepts.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/raycaster/config"
	"github.com/lixenwraith/raycaster/grid"
	"github.com/lixenwraith/raycaster/maze"
)

// mazeFile is the part of a raycaster config a maze fills in
type mazeFile struct {
	CellSize float64      `toml:"cell_size"`
	Map      []string     `toml:"map"`
	Start    config.Start `toml:"start"`
	Goal     config.Goal  `toml:"goal"`
}

func main() {
	cols := flag.Int("cols", 21, "Width in tiles [odd preferred]")
	rows := flag.Int("rows", 21, "Height in tiles [odd preferred]")
	braid := flag.Float64("braid", 0.1, "Braiding factor [0.0 - 1.0]")
	seed := flag.Int64("seed", 0, "Seed, 0 for time based")
	cell := flag.Float64("cell", 64, "Cell size written to the TOML output")
	asTOML := flag.Bool("toml", false, "Write a config fragment instead of a preview")
	flag.Parse()

	cfg := maze.Config{
		Cols:     *cols,
		Rows:     *rows,
		Braiding: min(max(*braid, 0), 1),
		Seed:     *seed,
	}

	startT := time.Now()
	res := maze.Generate(cfg)
	dur := time.Since(startT)

	m, err := grid.New(res.Tiles)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generated maze rejected: %v\n", err)
		os.Exit(1)
	}

	if *asTOML {
		err = writeTOML(os.Stdout, m, res, *cell)
	} else {
		fmt.Printf("Done in %v\n", dur)
		fmt.Printf("Grid Dimensions: %dx%d\n", m.Cols(), m.Rows())
		err = preview(os.Stdout, m, res)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Write failed: %v\n", err)
		os.Exit(1)
	}
}

// preview draws walls as blocks with S at the entrance and E at the exit
func preview(w io.Writer, m *grid.Map, res maze.Result) error {
	var sb strings.Builder
	for y := 0; y < m.Rows(); y++ {
		for x := 0; x < m.Cols(); x++ {
			p := maze.Point{X: x, Y: y}
			switch {
			case p == res.Start:
				sb.WriteByte('S')
			case p == res.Goal:
				sb.WriteByte('E')
			case m.Solid(x, y):
				sb.WriteRune('█')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// writeTOML encodes the maze with a start pose centered on the entrance tile and the exit as goal
func writeTOML(w io.Writer, m *grid.Map, res maze.Result, cellSize float64) error {
	start := grid.Cell{Col: res.Start.X, Row: res.Start.Y}
	x, z := start.Center(cellSize)

	return toml.NewEncoder(w).Encode(mazeFile{
		CellSize: cellSize,
		Map:      strings.Fields(m.String()),
		Start:    config.Start{X: x, Z: z},
		Goal:     config.Goal{Col: res.Goal.X, Row: res.Goal.Y},
	})
}
