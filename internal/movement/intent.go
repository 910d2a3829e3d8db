package movement

import "math"

// Intent is one frame of already-resolved input.
type Intent struct {
	Horizontal float64 // [-1, 1]
	Vertical   float64 // [-1, 1]
	Jump       bool
	Dash       bool
}

// Clamped returns the intent with both axes limited to [-1, 1]. NaN axes
// read as 0.
func (in Intent) Clamped() Intent {
	in.Horizontal = clampAxis(in.Horizontal)
	in.Vertical = clampAxis(in.Vertical)
	return in
}

func clampAxis(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}

// IntentSource supplies the intent for the current frame. It is sampled
// exactly once per Controller tick.
type IntentSource interface {
	Intent() Intent
}

// IntentFunc adapts a function to IntentSource.
type IntentFunc func() Intent

func (f IntentFunc) Intent() Intent { return f() }

// Observer is notified synchronously when the moving/stationary
// classification flips.
type Observer interface {
	OnMovementStateChanged(moving bool)
}
