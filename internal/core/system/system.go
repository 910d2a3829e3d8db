package system

import "time"

// Updatable receives one Tick per frame with the elapsed time since the
// previous frame. Implementations must be comparable (pointer receivers).
type Updatable interface {
	Tick(dt time.Duration)
}

// Initializable gets one-time setup before its first frame.
type Initializable interface {
	Initialize()
}
