package game

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/raycaster/constants"
	"github.com/lixenwraith/raycaster/render"
)

// Terminal runs a Session on a tcell screen.
// Terminals report key presses without releases, so every press is one frame of intent.
type Terminal struct {
	screen  tcell.Screen
	session *Session
	canvas  *render.Canvas
	input   Input
	period  time.Duration

	// FPS counter
	frames   int
	fps      int
	fpsStart time.Time
}

// NewTerminal lays a canvas over the screen, leaving the bottom rows for the status line
func NewTerminal(screen tcell.Screen, session *Session, frameRate int) *Terminal {
	view := session.View()
	t := &Terminal{
		screen:   screen,
		session:  session,
		canvas:   render.NewCanvas(screen, view.Width, view.Height, 0, 0, Background),
		period:   time.Second / time.Duration(max(frameRate, 1)),
		fpsStart: time.Now(),
	}
	t.resize()
	return t
}

func (t *Terminal) resize() {
	cols, rows := t.screen.Size()
	t.canvas.Resize(cols, rows-constants.StatusRows)
}

// HandleEvent folds one event into the pending input; false means quit
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			t.input.Forward = 1
		case tcell.KeyDown:
			t.input.Forward = -1
		case tcell.KeyLeft:
			t.input.Turn = -1
		case tcell.KeyRight:
			t.input.Turn = 1
		case tcell.KeyTab:
			t.input.ToggleMap = !t.input.ToggleMap
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'w', 'W':
				t.input.Forward = 1
			case 's', 'S':
				t.input.Forward = -1
			case 'a', 'A':
				t.input.Turn = -1
			case 'd', 'D':
				t.input.Turn = 1
			case ',', '<':
				t.input.Strafe = -1
			case '.', '>':
				t.input.Strafe = 1
			}
		}

	case *tcell.EventResize:
		t.screen.Sync()
		t.resize()
	}

	return true
}

// Frame applies pending input, casts, draws and shows one frame.
// The status line sits below the canvas, so it is drawn first and shown with the canvas.
func (t *Terminal) Frame() {
	t.session.Apply(t.input)
	t.input.Reset()
	t.session.Scan()

	if _, rows := t.canvas.Cells(); rows >= constants.MinCanvasRows {
		t.drawStatus()
		t.session.Draw(t.canvas)
	} else {
		t.screen.Clear()
		t.drawStatus()
		t.screen.Show()
	}

	t.frames++
	if elapsed := time.Since(t.fpsStart); elapsed >= time.Second {
		t.fps = int(float64(t.frames) / elapsed.Seconds())
		t.frames = 0
		t.fpsStart = time.Now()
	}
}

func (t *Terminal) drawStatus() {
	cols, rows := t.screen.Size()
	if rows <= 0 {
		return
	}
	y := rows - 1

	pose := t.session.Pose()
	mode := "3D"
	if t.session.ShowMap() {
		mode = "MAP"
	}
	text := fmt.Sprintf(" %-3s x=%.0f z=%.0f r=%.2f fps=%d  [tab] map [esc] quit", mode, pose.X, pose.Z, pose.Heading, t.fps)
	if t.session.Reached() {
		text += "  GOAL"
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	x := 0
	for _, r := range text {
		if x >= cols {
			break
		}
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < cols; x++ {
		t.screen.SetContent(x, y, ' ', nil, style)
	}
}

// Run loops until a quit key; the event poller stops when the screen is finalized
func (t *Terminal) Run() {
	ticker := time.NewTicker(t.period)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	log.Printf("frame loop started: %v per frame", t.period)
	t.Frame()
	for {
		select {
		case ev := <-eventChan:
			if !t.HandleEvent(ev) {
				log.Printf("quit requested")
				return
			}

		case <-ticker.C:
			t.Frame()
		}
	}
}
