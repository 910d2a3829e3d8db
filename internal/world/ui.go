package world

import "gonum.org/v1/gonum/spatial/r2"

// ColorHint tells the UI how to tint a floating damage number.
type ColorHint uint8

const (
	ColorDamage ColorHint = iota
	ColorLethal
	ColorHeal
)

func (c ColorHint) String() string {
	switch c {
	case ColorLethal:
		return "lethal"
	case ColorHeal:
		return "heal"
	default:
		return "damage"
	}
}

// UI is the presentation collaborator, looked up from the service registry.
// Every call is fire-and-forget.
type UI interface {
	ShowDamageText(pos r2.Vec, amount float64, color ColorHint)
	UpdateHealth(current, max float64)
	ShowVictory()
	ShowDefeat()
}
