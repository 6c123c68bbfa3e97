package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/raycaster/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a streamer producing duration worth of a single wave
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + int64(duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	release      int
	totalSamples int
}

// NewEnvelope shapes s with attack and release ramps over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)

	return &envelope{
		streamer:     s,
		attack:       att,
		release:      rel,
		totalSamples: total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if remaining := e.totalSamples - e.position; len(samples) > remaining {
		samples = samples[:remaining]
	}

	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.release

	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.position >= releaseStart && e.release > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.release)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume becomes a silent effect
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateBumpSound generates a low thud for walking into a wall
func CreateBumpSound(volume float64, rate beep.SampleRate) beep.Streamer {
	body := NewOscillator(constants.BumpSoundFreq, constants.BumpSoundDuration, WaveSine, rate)
	bodyShaped := NewEnvelope(body, constants.BumpSoundDuration, constants.BumpSoundAttack, constants.BumpSoundRelease, rate)

	// Short square overtone gives the thud an edge on small speakers
	edge := NewOscillator(constants.BumpSoundFreq*2, constants.BumpSoundDuration, WaveSquare, rate)
	edgeShaped := NewEnvelope(edge, constants.BumpSoundDuration, constants.BumpSoundAttack, constants.BumpSoundRelease/2, rate)

	mixed := beep.Mix(
		newVolume(bodyShaped, 0.8),
		newVolume(edgeShaped, 0.2),
	)
	return newVolume(mixed, volume)
}

// CreateStepSound generates a soft noise tick for a footstep
func CreateStepSound(volume float64, rate beep.SampleRate) beep.Streamer {
	noise := NewOscillator(0, constants.StepSoundDuration, WaveNoise, rate)
	shaped := NewEnvelope(noise, constants.StepSoundDuration, constants.StepSoundAttack, constants.StepSoundRelease, rate)
	return newVolume(shaped, volume*0.3)
}
