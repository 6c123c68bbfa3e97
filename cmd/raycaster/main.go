// Command raycaster walks a grid map in the terminal, drawing either a top-down
// overlay of the rays or the projected wall columns.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/raycaster/audio"
	"github.com/lixenwraith/raycaster/config"
	"github.com/lixenwraith/raycaster/game"
)

type options struct {
	configPath string
	debug      bool
	maze       bool
	seed       int64
	noMap      bool
	colorMode  string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("raycaster", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "TOML config file")
	fs.BoolVar(&opts.debug, "debug", false, "Write logs to "+logDir+"/"+logFileName)
	fs.BoolVar(&opts.maze, "maze", false, "Generate a maze instead of the configured map")
	fs.Int64Var(&opts.seed, "seed", 0, "Maze seed, 0 for time based")
	fs.BoolVar(&opts.noMap, "nomap", false, "Start in the projected view")
	fs.StringVar(&opts.colorMode, "color", "auto", "Color mode: auto, truecolor, 256")
	err := fs.Parse(args)
	return opts, err
}

// apply lays command-line choices over the loaded config
func (o options) apply(cfg *config.Config) {
	cfg.Debug = o.debug
	if o.maze {
		cfg.Maze.Enabled = true
	}
	if o.seed != 0 {
		cfg.Maze.Seed = o.seed
	}
	if o.noMap {
		cfg.ShowMap = false
	}
}

// applyColorMode steers tcell's color detection through its environment switches
func applyColorMode(mode string) {
	switch mode {
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case "truecolor", "true", "24bit":
		os.Setenv("COLORTERM", "truecolor")
	}
}

func main() {
	var screen tcell.Screen

	// Panic Recovery: restore the terminal before printing the crash
	defer func() {
		if r := recover(); r != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Fprintf(os.Stderr, "\n\x1b[31mRAYCASTER CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	opts.apply(cfg)

	logFile := setupLogging(cfg.Debug)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	m, goal, err := game.LoadMap(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build map: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateStart(m); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	log.Printf("map %dx%d cell=%v fov=%d bounds=%s maze=%v start=(%v, %v, %v)",
		m.Cols(), m.Rows(), cfg.CellSize, cfg.FOVDegrees, cfg.Bounds, cfg.Maze.Enabled,
		cfg.Start.X, cfg.Start.Z, cfg.Start.Heading)

	applyColorMode(opts.colorMode)
	screen, err = tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	// Non-fatal, the walk works without sound
	player := audio.NewPlayer(cfg.Audio)
	if err := player.Init(); err != nil {
		log.Printf("Audio initialization failed: %v (continuing without audio)", err)
	}
	defer player.Close()

	session := game.NewSession(cfg, m, player)
	if goal != nil {
		session.SetGoal(*goal)
	}

	game.NewTerminal(screen, session, cfg.FrameRate).Run()
}
