package constants

import "time"

// Audio Engine Timing
const (
	// SpeakerBuffer is the latency of the speaker buffer
	SpeakerBuffer = 100 * time.Millisecond

	// MinStepGap is the minimum gap between footstep sounds; held keys repeat every frame
	MinStepGap = 180 * time.Millisecond

	// MinBumpGap is the minimum gap between bump sounds while pressing into a wall
	MinBumpGap = 250 * time.Millisecond
)

// Bump Sound Timing
const (
	BumpSoundDuration = 90 * time.Millisecond
	BumpSoundAttack   = 4 * time.Millisecond
	BumpSoundRelease  = 60 * time.Millisecond
	BumpSoundFreq     = 70.0
)

// Step Sound Timing
const (
	StepSoundDuration = 40 * time.Millisecond
	StepSoundAttack   = 2 * time.Millisecond
	StepSoundRelease  = 30 * time.Millisecond
)
