// Package input converts raw key and pointer events into one normalized
// movement snapshot per simulation step. It performs no physics and holds no
// references into the simulation; the platform layer feeds it events, the
// world drains it once per frame.
package input

// Key identifies a bindable movement action, not a physical key. The platform
// layer owns the actual key bindings.
type Key int

const (
	KeyForward Key = iota
	KeyBack
	KeyLeft
	KeyRight
	KeyJump
)

// Frame is the per-step input snapshot consumed by the motion integrator.
// Movement axes are in [-1, 1], positive meaning forward and rightward; look
// deltas are radians accumulated since the previous frame.
type Frame struct {
	MoveForward    float32
	MoveStrafe     float32
	JumpRequested  bool
	LookDeltaYaw   float32
	LookDeltaPitch float32
}

// DefaultLookSpeed is radians of look rotation per pointer unit.
const DefaultLookSpeed = 0.002

// Mapper accumulates key-down/key-up and pointer-move events between steps.
// Frame drains the accumulated state; jump is edge-triggered so holding the
// key does not re-request every frame.
type Mapper struct {
	LookSpeed float32

	down       [5]bool
	jumpQueued bool
	yawDelta   float32
	pitchDelta float32
}

func NewMapper() *Mapper {
	return &Mapper{LookSpeed: DefaultLookSpeed}
}

// KeyDown records a key press. Pressing jump queues exactly one jump request
// for the next frame.
func (m *Mapper) KeyDown(k Key) {
	if k < 0 || int(k) >= len(m.down) {
		return
	}
	if k == KeyJump && !m.down[k] {
		m.jumpQueued = true
	}
	m.down[k] = true
}

// KeyUp records a key release.
func (m *Mapper) KeyUp(k Key) {
	if k < 0 || int(k) >= len(m.down) {
		return
	}
	m.down[k] = false
}

// PointerMove accumulates a pointer delta in device units.
func (m *Mapper) PointerMove(dx, dy float32) {
	m.yawDelta += dx * m.LookSpeed
	m.pitchDelta += dy * m.LookSpeed
}

// Frame builds the snapshot for the upcoming step and resets the accumulated
// look deltas and jump queue. Held movement keys persist across frames.
func (m *Mapper) Frame() Frame {
	frame := Frame{
		MoveForward:    axis(m.down[KeyForward], m.down[KeyBack]),
		MoveStrafe:     axis(m.down[KeyRight], m.down[KeyLeft]),
		JumpRequested:  m.jumpQueued,
		LookDeltaYaw:   m.yawDelta,
		LookDeltaPitch: m.pitchDelta,
	}
	m.jumpQueued = false
	m.yawDelta = 0
	m.pitchDelta = 0
	return frame
}

// Reset releases all keys and clears pending deltas (e.g. on focus loss).
func (m *Mapper) Reset() {
	*m = Mapper{LookSpeed: m.LookSpeed}
}

func axis(positive, negative bool) float32 {
	v := float32(0)
	if positive {
		v += 1
	}
	if negative {
		v -= 1
	}
	return v
}
