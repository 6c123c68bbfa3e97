// Package config holds startup settings for the raycaster.
// Values resolve as defaults, then a TOML file, then RAYCASTER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/lixenwraith/raycaster/grid"
)

var ErrInvalid = errors.New("invalid config")

// Bounds modes
const (
	BoundsMap    = "map"
	BoundsScreen = "screen"
)

type Start struct {
	X       float64 `toml:"x"`
	Z       float64 `toml:"z"`
	Heading float64 `toml:"heading"`
}

// Goal is the tile a fixed map asks the camera to reach
type Goal struct {
	Col int `toml:"col"`
	Row int `toml:"row"`
}

type Maze struct {
	Enabled  bool    `toml:"enabled"`
	Cols     int     `toml:"cols"`
	Rows     int     `toml:"rows"`
	Braiding float64 `toml:"braiding"`
	Seed     int64   `toml:"seed"`
}

type Audio struct {
	Enabled    bool    `toml:"enabled"`
	Volume     float64 `toml:"volume"`
	SampleRate int     `toml:"sample_rate"`
}

type Config struct {
	ScreenWidth  int     `toml:"screen_width"`
	ScreenHeight int     `toml:"screen_height"`
	CellSize     float64 `toml:"cell_size"`
	FOVDegrees   int     `toml:"fov_degrees"`
	FrameRate    int     `toml:"frame_rate"`

	MoveSpeed float64 `toml:"move_speed"`
	TurnSpeed float64 `toml:"turn_speed"`

	ShowMap bool   `toml:"show_map"`
	Bounds  string `toml:"bounds"`

	Collision       bool    `toml:"collision"`
	CollisionRadius float64 `toml:"collision_radius"`

	Start Start    `toml:"start"`
	Goal  *Goal    `toml:"goal"`
	Map   []string `toml:"map"`
	Maze  Maze     `toml:"maze"`
	Audio Audio    `toml:"audio"`

	Debug bool `toml:"-"`
}

// Default returns the demo settings: 640x480 view, 64-unit cells, 60° field of view
func Default() *Config {
	return &Config{
		ScreenWidth:     640,
		ScreenHeight:    480,
		CellSize:        64,
		FOVDegrees:      60,
		FrameRate:       30,
		MoveSpeed:       2,
		TurnSpeed:       0.2,
		ShowMap:         true,
		Bounds:          BoundsMap,
		Collision:       true,
		CollisionRadius: 8,
		Start:           Start{X: 80, Z: 80},
		Map:             grid.DefaultLayout(),
		Maze: Maze{
			Cols:     21,
			Rows:     21,
			Braiding: 0.1,
		},
		Audio: Audio{
			Enabled:    true,
			Volume:     0.5,
			SampleRate: 44100,
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("config: %s: unknown key %q: %w", path, undecoded[0].String(), ErrInvalid)
		}
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides fields from RAYCASTER_* variables; malformed values are ignored
func (c *Config) ApplyEnv() {
	if v := os.Getenv("RAYCASTER_FOV"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.FOVDegrees = n
		}
	}

	if v := os.Getenv("RAYCASTER_CELL_SIZE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.CellSize = f
		}
	}

	if v := os.Getenv("RAYCASTER_FRAME_RATE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.FrameRate = n
		}
	}

	if v := os.Getenv("RAYCASTER_AUDIO_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = b
		}
	}

	// Volume 0-100 mapped to 0.0-1.0
	if v := os.Getenv("RAYCASTER_VOLUME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Audio.Volume = min(max(float64(n)/100.0, 0), 1)
		}
	}
}

// Validate checks the settings that would make projection or traversal degenerate
func (c *Config) Validate() error {
	switch {
	case c.ScreenWidth <= 0 || c.ScreenHeight <= 0:
		return fmt.Errorf("screen %dx%d: %w", c.ScreenWidth, c.ScreenHeight, ErrInvalid)
	case !(c.CellSize > 0):
		return fmt.Errorf("cell_size %v: %w", c.CellSize, ErrInvalid)
	case c.FOVDegrees <= 0 || c.FOVDegrees >= 180:
		return fmt.Errorf("fov_degrees %d outside (0, 180): %w", c.FOVDegrees, ErrInvalid)
	case c.FOVDegrees > c.ScreenWidth:
		return fmt.Errorf("fov_degrees %d exceeds screen_width %d: %w", c.FOVDegrees, c.ScreenWidth, ErrInvalid)
	case c.FrameRate <= 0:
		return fmt.Errorf("frame_rate %d: %w", c.FrameRate, ErrInvalid)
	case c.Bounds != BoundsMap && c.Bounds != BoundsScreen:
		return fmt.Errorf("bounds %q: %w", c.Bounds, ErrInvalid)
	case c.CollisionRadius < 0:
		return fmt.Errorf("collision_radius %v: %w", c.CollisionRadius, ErrInvalid)
	case c.Maze.Enabled && (c.Maze.Cols < 5 || c.Maze.Rows < 5):
		return fmt.Errorf("maze %dx%d smaller than 5x5: %w", c.Maze.Cols, c.Maze.Rows, ErrInvalid)
	case c.Audio.SampleRate <= 0:
		return fmt.Errorf("audio sample_rate %d: %w", c.Audio.SampleRate, ErrInvalid)
	}
	return nil
}

// ValidateStart checks that the start pose lies on an open tile of m
func (c *Config) ValidateStart(m *grid.Map) error {
	col, row := grid.CellOf(c.Start.X, c.Start.Z, c.CellSize)
	if col < 0 || col >= m.Cols() || row < 0 || row >= m.Rows() {
		return fmt.Errorf("start (%v, %v) outside map: %w", c.Start.X, c.Start.Z, ErrInvalid)
	}
	if m.Solid(col, row) {
		return fmt.Errorf("start (%v, %v) inside wall tile (%d, %d): %w", c.Start.X, c.Start.Z, col, row, ErrInvalid)
	}
	return nil
}

// ValidateGoal checks that a configured goal is an open tile of m; no goal is valid
func (c *Config) ValidateGoal(m *grid.Map) error {
	if c.Goal == nil {
		return nil
	}
	col, row := c.Goal.Col, c.Goal.Row
	if col < 0 || col >= m.Cols() || row < 0 || row >= m.Rows() {
		return fmt.Errorf("goal (%d, %d) outside map: %w", col, row, ErrInvalid)
	}
	if m.Solid(col, row) {
		return fmt.Errorf("goal (%d, %d) is a wall tile: %w", col, row, ErrInvalid)
	}
	return nil
}

// BoundsFor returns the rectangle rays may travel in
func (c *Config) BoundsFor(m *grid.Map) (float64, float64) {
	if c.Bounds == BoundsScreen {
		return float64(c.ScreenWidth), float64(c.ScreenHeight)
	}
	return m.WorldSize(c.CellSize)
}
