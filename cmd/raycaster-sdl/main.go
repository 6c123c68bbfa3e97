//go:build sdl

// Command raycaster-sdl runs the raycaster in an SDL2 window with held-key movement.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/lixenwraith/raycaster/audio"
	"github.com/lixenwraith/raycaster/config"
	"github.com/lixenwraith/raycaster/game"
	"github.com/lixenwraith/raycaster/render/sdlsurface"
)

// held tracks keys between key-down and key-up
type held struct {
	up, down, left, right   bool
	strafeLeft, strafeRight bool
}

func (h held) input() game.Input {
	var in game.Input
	if h.up {
		in.Forward++
	}
	if h.down {
		in.Forward--
	}
	if h.right {
		in.Turn++
	}
	if h.left {
		in.Turn--
	}
	if h.strafeRight {
		in.Strafe++
	}
	if h.strafeLeft {
		in.Strafe--
	}
	return in
}

func (h *held) set(sym sdl.Keycode, down bool) {
	switch sym {
	case sdl.K_w, sdl.K_UP:
		h.up = down
	case sdl.K_s, sdl.K_DOWN:
		h.down = down
	case sdl.K_a, sdl.K_LEFT:
		h.left = down
	case sdl.K_d, sdl.K_RIGHT:
		h.right = down
	case sdl.K_COMMA:
		h.strafeLeft = down
	case sdl.K_PERIOD:
		h.strafeRight = down
	}
}

func main() {
	configPath := flag.String("config", "", "TOML config file")
	mazeFlag := flag.Bool("maze", false, "Generate a maze instead of the configured map")
	seedFlag := flag.Int64("seed", 0, "Maze seed, 0 for time based")
	noMapFlag := flag.Bool("nomap", false, "Start in the projected view")
	flag.Parse()

	// A window leaves stderr free, so logs go there
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.Maze.Enabled = cfg.Maze.Enabled || *mazeFlag
	if *seedFlag != 0 {
		cfg.Maze.Seed = *seedFlag
	}
	if *noMapFlag {
		cfg.ShowMap = false
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	m, goal, err := game.LoadMap(cfg)
	if err != nil {
		log.Fatalf("Failed to build map: %v", err)
	}
	if err := cfg.ValidateStart(m); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		log.Fatalf("Failed to initialize SDL: %v", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow("Raycaster", sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.ScreenWidth), int32(cfg.ScreenHeight), sdl.WINDOW_SHOWN)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer renderer.Destroy()

	player := audio.NewPlayer(cfg.Audio)
	if err := player.Init(); err != nil {
		log.Printf("Audio initialization failed: %v (continuing without audio)", err)
	}
	defer player.Close()

	session := game.NewSession(cfg, m, player)
	if goal != nil {
		session.SetGoal(*goal)
	}
	surface := sdlsurface.New(renderer, cfg.ScreenWidth, cfg.ScreenHeight, game.Background)
	delay := uint32(1000 / cfg.FrameRate)

	var keys held
	for {
		toggle := false
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return
			case *sdl.KeyboardEvent:
				down := e.State == sdl.PRESSED
				switch e.Keysym.Sym {
				case sdl.K_ESCAPE:
					return
				case sdl.K_TAB:
					toggle = toggle != (down && e.Repeat == 0)
				default:
					keys.set(e.Keysym.Sym, down)
				}
			}
		}

		in := keys.input()
		in.ToggleMap = toggle
		session.Apply(in)
		session.Scan()
		session.Draw(surface)
		if err := surface.Err(); err != nil {
			log.Printf("Render failed: %v", err)
			return
		}

		sdl.Delay(delay)
	}
}
