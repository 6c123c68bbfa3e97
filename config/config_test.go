package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/raycaster/grid"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "raycaster.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected default config to validate, got %v", err)
	}

	m, err := grid.Parse(cfg.Map)
	if err != nil {
		t.Fatalf("Expected default map to parse, got %v", err)
	}
	if err := cfg.ValidateStart(m); err != nil {
		t.Errorf("Expected default start to be open, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
fov_degrees = 90
cell_size = 32.0
bounds = "screen"
show_map = false
map = [
  "#####",
  "#...#",
  "#####",
]

[start]
x = 48.0
z = 40.0
heading = 1.5

[audio]
enabled = false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.FOVDegrees != 90 || cfg.CellSize != 32 || cfg.Bounds != BoundsScreen || cfg.ShowMap {
		t.Errorf("Top-level keys not applied: %+v", cfg)
	}
	if cfg.Start != (Start{X: 48, Z: 40, Heading: 1.5}) {
		t.Errorf("Expected start override, got %+v", cfg.Start)
	}
	if len(cfg.Map) != 3 || cfg.Map[1] != "#...#" {
		t.Errorf("Expected 3-row map, got %q", cfg.Map)
	}
	if cfg.Audio.Enabled {
		t.Error("Expected audio disabled")
	}
	// Untouched keys keep defaults
	if cfg.ScreenWidth != 640 || cfg.Audio.SampleRate != 44100 {
		t.Errorf("Expected defaults preserved, got width=%d rate=%d", cfg.ScreenWidth, cfg.Audio.SampleRate)
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, "fov = 60\n")
	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid for unknown key, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.FOVDegrees != 60 {
		t.Errorf("Expected default fov, got %d", cfg.FOVDegrees)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("RAYCASTER_FOV", "72")
	t.Setenv("RAYCASTER_CELL_SIZE", "16")
	t.Setenv("RAYCASTER_FRAME_RATE", "not-a-number")
	t.Setenv("RAYCASTER_AUDIO_ENABLED", "false")
	t.Setenv("RAYCASTER_VOLUME", "150")

	cfg := Default()
	cfg.ApplyEnv()

	if cfg.FOVDegrees != 72 || cfg.CellSize != 16 {
		t.Errorf("Expected env overrides, got fov=%d cell=%v", cfg.FOVDegrees, cfg.CellSize)
	}
	if cfg.FrameRate != 30 {
		t.Errorf("Expected malformed frame rate ignored, got %d", cfg.FrameRate)
	}
	if cfg.Audio.Enabled || cfg.Audio.Volume != 1 {
		t.Errorf("Expected audio off with clamped volume, got %+v", cfg.Audio)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Zero width", func(c *Config) { c.ScreenWidth = 0 }},
		{"Zero cell", func(c *Config) { c.CellSize = 0 }},
		{"Zero fov", func(c *Config) { c.FOVDegrees = 0 }},
		{"Fov 180", func(c *Config) { c.FOVDegrees = 180 }},
		{"Fov wider than screen", func(c *Config) { c.ScreenWidth = 40 }},
		{"Zero frame rate", func(c *Config) { c.FrameRate = 0 }},
		{"Unknown bounds", func(c *Config) { c.Bounds = "world" }},
		{"Negative radius", func(c *Config) { c.CollisionRadius = -1 }},
		{"Tiny maze", func(c *Config) { c.Maze.Enabled = true; c.Maze.Cols = 3 }},
		{"Zero sample rate", func(c *Config) { c.Audio.SampleRate = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestValidateStart(t *testing.T) {
	m := grid.Default()
	tests := []struct {
		name string
		x, z float64
		ok   bool
	}{
		{"Open", 80, 80, true},
		{"Box interior", 500, 500, true},
		{"Ring", 10, 80, false},
		{"Interior wall", 300, 260, false},
		{"Outside", -5, 80, false},
		{"Far outside", 5000, 80, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Start.X, cfg.Start.Z = tt.x, tt.z
			err := cfg.ValidateStart(m)
			if (err == nil) != tt.ok {
				t.Errorf("Expected ok=%v, got %v", tt.ok, err)
			}
		})
	}
}

func TestLoadGoal(t *testing.T) {
	path := writeConfig(t, `
[goal]
col = 14
row = 2
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Goal == nil || *cfg.Goal != (Goal{Col: 14, Row: 2}) {
		t.Errorf("Expected goal (14, 2), got %+v", cfg.Goal)
	}

	if cfg, _ := Load(""); cfg.Goal != nil {
		t.Errorf("Expected no goal by default, got %+v", cfg.Goal)
	}
}

func TestValidateGoal(t *testing.T) {
	m := grid.Default()
	tests := []struct {
		name string
		goal *Goal
		ok   bool
	}{
		{"None", nil, true},
		{"Open", &Goal{Col: 14, Row: 14}, true},
		{"Box interior", &Goal{Col: 8, Row: 8}, true},
		{"Ring", &Goal{Col: 0, Row: 5}, false},
		{"Interior wall", &Goal{Col: 4, Row: 6}, false},
		{"Negative", &Goal{Col: -1, Row: 1}, false},
		{"Past edge", &Goal{Col: 16, Row: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Goal = tt.goal
			err := cfg.ValidateGoal(m)
			if (err == nil) != tt.ok {
				t.Errorf("Expected ok=%v, got %v", tt.ok, err)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestBoundsFor(t *testing.T) {
	m := grid.Default()
	cfg := Default()

	if bx, bz := cfg.BoundsFor(m); bx != 1024 || bz != 1024 {
		t.Errorf("Expected map bounds 1024x1024, got %vx%v", bx, bz)
	}

	cfg.Bounds = BoundsScreen
	if bx, bz := cfg.BoundsFor(m); bx != 640 || bz != 480 {
		t.Errorf("Expected screen bounds 640x480, got %vx%v", bx, bz)
	}
}
