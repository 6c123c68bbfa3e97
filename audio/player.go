// Package audio plays short sound effects for camera movement.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/raycaster/config"
	"github.com/lixenwraith/raycaster/constants"
)

// Player feeds effects into a mixer on the speaker.
// A nil or uninitialized Player accepts every call and stays silent.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	volume      float64
	enabled     bool
	initialized bool
	lastBump    time.Time
	lastStep    time.Time
	now         func() time.Time
}

// NewPlayer creates a player from audio settings; Init starts playback
func NewPlayer(cfg config.Audio) *Player {
	return &Player{
		mixer:   &beep.Mixer{},
		rate:    beep.SampleRate(cfg.SampleRate),
		volume:  cfg.Volume,
		enabled: cfg.Enabled,
		now:     time.Now,
	}
}

// Init opens the speaker. A disabled player returns nil without touching the device.
func (p *Player) Init() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.initialized {
		return nil
	}

	if err := speaker.Init(p.rate, p.rate.N(constants.SpeakerBuffer)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Bump plays the wall collision sound
func (p *Player) Bump() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready(&p.lastBump, constants.MinBumpGap) {
		return
	}
	p.enqueue(CreateBumpSound(p.volume, p.rate))
}

// Step plays a footstep
func (p *Player) Step() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready(&p.lastStep, constants.MinStepGap) {
		return
	}
	p.enqueue(CreateStepSound(p.volume, p.rate))
}

// Close stops playback and releases the device
func (p *Player) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// ready reports whether a sound may play now and records the time if so.
// Caller holds p.mu.
func (p *Player) ready(last *time.Time, gap time.Duration) bool {
	if !p.initialized {
		return false
	}
	now := p.now()
	if !last.IsZero() && now.Sub(*last) < gap {
		return false
	}
	*last = now
	return true
}

// The mixer is read by the speaker goroutine
func (p *Player) enqueue(s beep.Streamer) {
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}
