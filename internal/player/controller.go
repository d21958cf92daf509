// Package player owns the first-person collider and its kinematic state, and
// advances it each frame: gravity, input acceleration, damping, jumping, the
// tentative move, collision resolution and the abyss safety net.
package player

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/event"
	"walksim/internal/input"
	"walksim/internal/physics"
)

// Defaults tuned for a human-scale world (units are meters, seconds).
const (
	DefaultHeight    = 1.7
	DefaultRadius    = 0.35
	DefaultGravity   = 20.0
	DefaultJumpSpeed = 8.0

	// Ground control is much stronger than air control.
	DefaultGroundAccel = 25.0
	DefaultAirAccel    = 8.0

	// Damping is the horizontal velocity fraction retained after one second,
	// applied as damping^dt so behavior is frame-rate independent.
	DefaultGroundDamping = 0.02
	DefaultAirDamping    = 0.65

	// Steps longer than this are clamped before integrating; slow frames must
	// not tunnel the capsule through thin geometry.
	DefaultMaxDeltaTime = 0.05

	DefaultAbyssY     = -25.0
	DefaultEyeOffset  = 0.1
	DefaultPitchLimit = 89.0 * math32.Pi / 180.0

	// groundSnapSpeed presses a grounded capsule gently into the floor so the
	// next resolve pass sees the contact again.
	groundSnapSpeed = 0.1
)

// State is the kinematic snapshot exposed to the camera rig and any
// telemetry overlay.
type State struct {
	Position rl.Vector3 // feet point (base of the capsule)
	Velocity rl.Vector3
	OnFloor  bool
}

// SpawnReset describes one teleport recovery, fired whenever the collider
// falls below the abyss threshold.
type SpawnReset struct {
	From rl.Vector3 // feet position when the abyss check tripped
	To   rl.Vector3 // spawn position restored
}

// Controller integrates player motion. It owns the capsule and kinematic
// state exclusively for the duration of a step; nothing else mutates them.
type Controller struct {
	Capsule  physics.Capsule
	Velocity rl.Vector3
	OnFloor  bool

	// Look state in radians. Yaw rotates input into the movement frame;
	// pitch is clamped so the view can never invert.
	Yaw   float32
	Pitch float32

	Height float32
	Radius float32

	Gravity       float32
	JumpSpeed     float32
	GroundAccel   float32
	AirAccel      float32
	GroundDamping float32
	AirDamping    float32
	MaxDeltaTime  float32
	AbyssY        float32
	EyeOffset     float32
	PitchLimit    float32

	// SpawnReset fires on every teleport recovery.
	SpawnReset event.EventWithArg[SpawnReset]

	resolver    *physics.Resolver
	spawn       rl.Vector3 // feet position restored on reset
	lastResolve physics.ResolveResult
}

// NewController creates a controller standing at spawn (a feet position) with
// default tuning.
func NewController(resolver *physics.Resolver, spawn rl.Vector3) *Controller {
	c := &Controller{
		Height:        DefaultHeight,
		Radius:        DefaultRadius,
		Gravity:       DefaultGravity,
		JumpSpeed:     DefaultJumpSpeed,
		GroundAccel:   DefaultGroundAccel,
		AirAccel:      DefaultAirAccel,
		GroundDamping: DefaultGroundDamping,
		AirDamping:    DefaultAirDamping,
		MaxDeltaTime:  DefaultMaxDeltaTime,
		AbyssY:        DefaultAbyssY,
		EyeOffset:     DefaultEyeOffset,
		PitchLimit:    DefaultPitchLimit,
		resolver:      resolver,
		spawn:         spawn,
	}
	c.Capsule = physics.NewCapsule(spawn, c.Height, c.Radius)
	return c
}

// Resize rebuilds the capsule with new dimensions, keeping the feet in place.
func (c *Controller) Resize(height, radius float32) {
	feet := c.Position()
	c.Height = height
	c.Radius = radius
	c.Capsule = physics.NewCapsule(feet, height, radius)
}

// Teleport moves the collider's feet to the given position without touching
// velocity.
func (c *Controller) Teleport(feet rl.Vector3) {
	c.Capsule = physics.NewCapsule(feet, c.Height, c.Radius)
}

// SetSpawn changes the position restored by teleport recovery.
func (c *Controller) SetSpawn(feet rl.Vector3) {
	c.spawn = feet
}

// Position returns the feet point (base of the capsule).
func (c *Controller) Position() rl.Vector3 {
	p := c.Capsule.Bottom
	p.Y -= c.Radius
	return p
}

// EyePoint is where the view camera sits: the top of the capsule minus a
// small offset.
func (c *Controller) EyePoint() rl.Vector3 {
	p := c.Capsule.Top
	p.Y += c.Radius - c.EyeOffset
	return p
}

// State returns the kinematic snapshot for external readers.
func (c *Controller) State() State {
	return State{
		Position: c.Position(),
		Velocity: c.Velocity,
		OnFloor:  c.OnFloor,
	}
}

// LastResolve reports the outcome of the most recent collision resolution,
// for diagnostics only.
func (c *Controller) LastResolve() physics.ResolveResult {
	return c.lastResolve
}

// Step advances the controller by one frame. Order is fixed: look, gravity,
// input acceleration, damping, jump, tentative move, resolve, abyss check.
func (c *Controller) Step(frame input.Frame, dt float32) {
	if dt <= 0 {
		return
	}
	if dt > c.MaxDeltaTime {
		dt = c.MaxDeltaTime
	}

	c.Yaw += frame.LookDeltaYaw
	c.Pitch -= frame.LookDeltaPitch
	if c.Pitch > c.PitchLimit {
		c.Pitch = c.PitchLimit
	}
	if c.Pitch < -c.PitchLimit {
		c.Pitch = -c.PitchLimit
	}

	if !c.OnFloor {
		c.Velocity.Y -= c.Gravity * dt
	} else if c.Velocity.Y <= 0 {
		// Grounded and not jumping: keep a small downward bias so the floor
		// contact is re-detected every frame instead of flickering.
		c.Velocity.Y = -groundSnapSpeed
	}

	// Desired motion in the look-yaw frame, horizontal plane only
	forward, right := c.directions()
	wish := rl.Vector3Add(
		rl.Vector3Scale(forward, frame.MoveForward),
		rl.Vector3Scale(right, frame.MoveStrafe),
	)
	wishLenSq := rl.Vector3DotProduct(wish, wish)
	if wishLenSq > 1 {
		wish = rl.Vector3Scale(wish, 1.0/math32.Sqrt(wishLenSq))
	}
	accel := c.AirAccel
	if c.OnFloor {
		accel = c.GroundAccel
	}
	c.Velocity.X += wish.X * accel * dt
	c.Velocity.Z += wish.Z * accel * dt

	damping := c.AirDamping
	if c.OnFloor {
		damping = c.GroundDamping
	}
	factor := math32.Pow(damping, dt)
	c.Velocity.X *= factor
	c.Velocity.Z *= factor

	if frame.JumpRequested && c.OnFloor {
		c.Velocity.Y = c.JumpSpeed
		// Cleared now so a queued jump cannot re-trigger before the next
		// resolve pass re-classifies the floor.
		c.OnFloor = false
	}

	c.Capsule = c.Capsule.Translate(rl.Vector3Scale(c.Velocity, dt))

	result := c.resolver.Resolve(c.Capsule)
	c.Capsule = result.Capsule
	c.OnFloor = result.OnFloor
	c.lastResolve = result

	// Remove the velocity component pointing into each contact; sliding along
	// a wall must not feed energy back on following steps.
	for _, contact := range result.Contacts {
		into := rl.Vector3DotProduct(c.Velocity, contact.Normal)
		if into < 0 {
			c.Velocity = rl.Vector3Subtract(c.Velocity, rl.Vector3Scale(contact.Normal, into))
		}
	}

	if c.Position().Y < c.AbyssY {
		from := c.Position()
		c.Teleport(c.spawn)
		c.Velocity = rl.Vector3{}
		c.OnFloor = false
		c.SpawnReset.Invoke(SpawnReset{From: from, To: c.spawn})
	}
}

// directions returns the horizontal forward and right vectors for the current
// yaw. Yaw 0 looks down +X, matching the camera's target math.
func (c *Controller) directions() (forward, right rl.Vector3) {
	sin := math32.Sin(c.Yaw)
	cos := math32.Cos(c.Yaw)
	forward = rl.Vector3{X: cos, Z: sin}
	right = rl.Vector3{X: -sin, Z: cos}
	return forward, right
}
