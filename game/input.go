package game

// Input is the intent collected between two frames.
// Axis fields use only their sign: positive is forward, right strafe, right turn.
type Input struct {
	Forward   int
	Strafe    int
	Turn      int
	ToggleMap bool
}

// Reset clears the intent after a frame consumed it
func (in *Input) Reset() {
	*in = Input{}
}

// Idle reports whether the input asks for nothing
func (in Input) Idle() bool {
	return in == (Input{})
}

func sign(v int) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
