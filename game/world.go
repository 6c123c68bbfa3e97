package game

import (
	"fmt"

	"github.com/lixenwraith/raycaster/config"
	"github.com/lixenwraith/raycaster/grid"
	"github.com/lixenwraith/raycaster/maze"
)

// LoadMap returns the configured or generated map and its goal, if any.
// A generated maze also moves the start pose to its entrance and replaces
// the configured goal with its exit.
func LoadMap(cfg *config.Config) (*grid.Map, *grid.Cell, error) {
	if !cfg.Maze.Enabled {
		m, err := grid.Parse(cfg.Map)
		if err != nil {
			return nil, nil, fmt.Errorf("map: %w", err)
		}
		if cfg.Goal == nil {
			return m, nil, nil
		}
		if err := cfg.ValidateGoal(m); err != nil {
			return nil, nil, fmt.Errorf("map: %w", err)
		}
		return m, &grid.Cell{Col: cfg.Goal.Col, Row: cfg.Goal.Row}, nil
	}

	res := maze.Generate(maze.Config{
		Cols:     cfg.Maze.Cols,
		Rows:     cfg.Maze.Rows,
		Braiding: cfg.Maze.Braiding,
		Seed:     cfg.Maze.Seed,
	})
	m, err := grid.New(res.Tiles)
	if err != nil {
		return nil, nil, fmt.Errorf("maze: %w", err)
	}

	start := grid.Cell{Col: res.Start.X, Row: res.Start.Y}
	cfg.Start.X, cfg.Start.Z = start.Center(cfg.CellSize)
	goal := grid.Cell{Col: res.Goal.X, Row: res.Goal.Y}
	cfg.Goal = &config.Goal{Col: goal.Col, Row: goal.Row}
	return m, &goal, nil
}
