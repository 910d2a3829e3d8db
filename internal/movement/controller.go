// Package movement integrates velocity for a controlled body: horizontal
// acceleration toward the input target, a jump arc under gravity, and an
// edge-triggered dash burst. It also classifies the body as moving or
// stationary for consumers such as the move-or-die health rule.
package movement

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ashgrove/dashcore/internal/core/event"
	"github.com/ashgrove/dashcore/internal/physics"
)

const nearZero = 1e-6

type Config struct {
	MaxSpeed    float64 // units/s
	Accel       float64 // units/s²
	Decel       float64 // units/s²
	JumpImpulse float64 // units/s
	Gravity     float64 // units/s²

	// The ground probe is a square of half-size ProbeRadius centred
	// ProbeOffset below the body's bottom edge.
	ProbeOffset float64
	ProbeRadius float64

	DashSpeed    float64
	DashDuration time.Duration
	DashCooldown time.Duration
	// DashDamping is the share of MaxSpeed kept horizontally when a dash
	// ends.
	DashDamping float64

	MoveThreshold float64
	DefaultFacing r2.Vec
	// SnapDepth bounds how far a falling body may sink into ground before
	// it is lifted back onto the surface.
	SnapDepth float64
}

// DefaultConfig returns a responsive platformer feel.
func DefaultConfig() Config {
	return Config{
		MaxSpeed:      6,
		Accel:         40,
		Decel:         60,
		JumpImpulse:   12,
		Gravity:       30,
		ProbeOffset:   0.05,
		ProbeRadius:   0.1,
		DashSpeed:     15,
		DashDuration:  200 * time.Millisecond,
		DashCooldown:  time.Second,
		DashDamping:   0.5,
		MoveThreshold: 0.01,
		DefaultFacing: r2.Vec{X: 1},
		SnapDepth:     0.75,
	}
}

// Controller moves one body. It satisfies system.Updatable.
type Controller struct {
	cfg   Config
	body  *physics.Body
	input IntentSource

	velocity r2.Vec
	grounded bool
	moving   bool

	dashing      bool
	dashLeft     float64
	dashCooldown float64
	dashDir      r2.Vec

	prevJump bool
	prevDash bool

	observers event.Listeners[Observer]
}

// New creates a controller for body reading input. A nil input leaves
// the body to gravity alone.
func New(body *physics.Body, input IntentSource, cfg Config) *Controller {
	if r2.Norm(cfg.DefaultFacing) < nearZero {
		cfg.DefaultFacing = r2.Vec{X: 1}
	}
	cfg.DefaultFacing = r2.Unit(cfg.DefaultFacing)
	return &Controller{cfg: cfg, body: body, input: input}
}

// AddObserver registers o for moving/stationary transitions.
func (c *Controller) AddObserver(o Observer) *event.Subscription {
	return c.observers.Subscribe(o)
}

func (c *Controller) Body() *physics.Body { return c.body }
func (c *Controller) Velocity() r2.Vec     { return c.velocity }
func (c *Controller) IsDashing() bool      { return c.dashing }
func (c *Controller) IsGrounded() bool     { return c.grounded }
func (c *Controller) IsMoving() bool       { return c.moving }

// DashDirection is the unit direction of the current or last dash.
func (c *Controller) DashDirection() r2.Vec { return c.dashDir }

// SetVerticalVelocity overrides vertical speed, e.g. for a stomp bounce.
func (c *Controller) SetVerticalVelocity(vy float64) {
	c.velocity.Y = vy
}

// SetInput swaps the intent source.
func (c *Controller) SetInput(in IntentSource) { c.input = in }

// Stop zeroes velocity and cancels any dash in progress.
func (c *Controller) Stop() {
	c.velocity = r2.Vec{}
	c.dashing = false
	c.dashLeft = 0
}

func (c *Controller) Tick(dt time.Duration) {
	sec := dt.Seconds()
	if sec <= 0 {
		return
	}

	var in Intent
	if c.input != nil {
		in = c.input.Intent().Clamped()
	}
	jumpEdge := in.Jump && !c.prevJump
	dashEdge := in.Dash && !c.prevDash
	c.prevJump, c.prevDash = in.Jump, in.Dash

	c.grounded = c.probeGround()
	if c.dashCooldown > 0 {
		c.dashCooldown -= sec
	}

	switch {
	case c.dashing:
		c.dashLeft -= sec
		if c.dashLeft > 0 {
			c.velocity = r2.Scale(c.cfg.DashSpeed, c.dashDir)
		} else {
			c.endDash()
		}
	case dashEdge && c.dashCooldown <= 0:
		c.startDash(in)
	default:
		c.integrate(in, jumpEdge, sec)
	}

	c.step(sec)
	c.classify()
}

func (c *Controller) startDash(in Intent) {
	dir := r2.Vec{X: in.Horizontal, Y: in.Vertical}
	if r2.Norm(dir) < nearZero {
		dir = r2.Vec{X: c.velocity.X}
	}
	if r2.Norm(dir) < nearZero {
		dir = c.cfg.DefaultFacing
	}
	c.dashDir = r2.Unit(dir)
	c.dashing = true
	c.dashLeft = c.cfg.DashDuration.Seconds()
	c.dashCooldown = c.cfg.DashCooldown.Seconds()
	c.velocity = r2.Scale(c.cfg.DashSpeed, c.dashDir)
}

func (c *Controller) endDash() {
	c.dashing = false
	c.dashLeft = 0
	if c.grounded {
		c.velocity.Y = 0
	}
	c.velocity.X = c.dashDir.X * c.cfg.MaxSpeed * c.cfg.DashDamping
}

func (c *Controller) integrate(in Intent, jumpEdge bool, sec float64) {
	target := in.Horizontal * c.cfg.MaxSpeed
	rate := c.cfg.Decel
	if math.Abs(target) > nearZero && (c.velocity.X*target >= 0) && math.Abs(target) > math.Abs(c.velocity.X) {
		rate = c.cfg.Accel
	}
	c.velocity.X = approach(c.velocity.X, target, rate*sec)

	switch {
	case c.grounded && jumpEdge:
		c.velocity.Y = c.cfg.JumpImpulse
	case !c.grounded:
		c.velocity.Y -= c.cfg.Gravity * sec
	case c.velocity.Y < 0:
		c.velocity.Y = 0
	}
}

// step moves the body one axis at a time: walls stop horizontal motion,
// ground catches a falling body.
func (c *Controller) step(sec float64) {
	if c.body == nil {
		return
	}
	if dx := c.velocity.X * sec; dx != 0 {
		c.body.Translate(r2.Vec{X: dx})
		c.resolveWalls(dx)
	}
	if dy := c.velocity.Y * sec; dy != 0 {
		c.body.Translate(r2.Vec{Y: dy})
	}
	if c.velocity.Y <= 0 && c.body.SnapToGround(c.cfg.SnapDepth) {
		c.grounded = true
		if !c.dashing {
			c.velocity.Y = 0
		}
	}
}

func (c *Controller) resolveWalls(dx float64) {
	bounds := c.body.Bounds()
	for _, w := range c.body.Space().Query(bounds, physics.TagWall) {
		wb := w.Bounds()
		if dx > 0 {
			c.body.Translate(r2.Vec{X: wb.MinX() - bounds.MaxX()})
		} else {
			c.body.Translate(r2.Vec{X: wb.MaxX() - bounds.MinX()})
		}
		bounds = c.body.Bounds()
		if !c.dashing {
			c.velocity.X = 0
		}
	}
}

func (c *Controller) probeGround() bool {
	if c.body == nil {
		return false
	}
	b := c.body.Bounds()
	r := c.cfg.ProbeRadius
	probe := physics.RectAt(r2.Vec{X: b.Center().X, Y: b.Bottom() - c.cfg.ProbeOffset}, 2*r, 2*r)
	return c.body.Space().Probe(probe, physics.TagGround)
}

func (c *Controller) classify() {
	t := c.cfg.MoveThreshold
	moving := math.Abs(c.velocity.X) > t || !c.grounded || math.Abs(c.velocity.Y) > t || c.dashing
	if moving == c.moving {
		return
	}
	c.moving = moving
	c.observers.Each(func(o Observer) { o.OnMovementStateChanged(moving) })
}

func approach(v, target, maxDelta float64) float64 {
	if math.Abs(target-v) <= maxDelta {
		return target
	}
	if target > v {
		return v + maxDelta
	}
	return v - maxDelta
}
