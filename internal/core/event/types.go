package event

import "gonum.org/v1/gonum/spatial/r2"

// DeathCause says how a hostile died.
type DeathCause int

const (
	CauseHealth   DeathCause = iota // health reached zero (dash, decay, external damage)
	CauseJumpKill                   // stomped from above
)

func (c DeathCause) String() string {
	switch c {
	case CauseJumpKill:
		return "jump_kill"
	default:
		return "health"
	}
}

// DamageDealt is emitted whenever a discrete hit lands on the player.
type DamageDealt struct {
	Position r2.Vec
	Amount   float64
}

type HostileSpawned struct {
	Slot     int
	Position r2.Vec
}

type HostileKilled struct {
	Slot  int
	Cause DeathCause
}

// LevelWon fires once when the player reaches the goal.
type LevelWon struct{}

// PlayerDied fires once per player life.
type PlayerDied struct{}
