// Package camera places the first-person view from collider state. It holds
// no simulation logic; the world feeds it the eye point and look angles after
// each step.
package camera

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultPitchLimit keeps the view from inverting, in radians.
const DefaultPitchLimit = 89.0 * math32.Pi / 180.0

type Rig struct {
	Position rl.Vector3
	Yaw      float32 // radians
	Pitch    float32 // radians

	Fovy       float32
	PitchLimit float32
}

func New() *Rig {
	return &Rig{
		Fovy:       70,
		PitchLimit: DefaultPitchLimit,
	}
}

// Update positions the rig at the eye point with the given look angles.
// Pitch is clamped here as well: the rig is the last stop before rendering
// and must never hand an inverted basis to a renderer.
func (r *Rig) Update(eye rl.Vector3, yaw, pitch float32) {
	r.Position = eye
	r.Yaw = yaw
	if pitch > r.PitchLimit {
		pitch = r.PitchLimit
	}
	if pitch < -r.PitchLimit {
		pitch = -r.PitchLimit
	}
	r.Pitch = pitch
}

// LookDirection returns the unit view direction for the current angles.
func (r *Rig) LookDirection() rl.Vector3 {
	cosPitch := math32.Cos(r.Pitch)
	return rl.Vector3{
		X: math32.Cos(r.Yaw) * cosPitch,
		Y: math32.Sin(r.Pitch),
		Z: math32.Sin(r.Yaw) * cosPitch,
	}
}

// Camera3D builds a raylib camera for whatever renders the scene.
func (r *Rig) Camera3D() rl.Camera3D {
	return rl.Camera3D{
		Position:   r.Position,
		Target:     rl.Vector3Add(r.Position, r.LookDirection()),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       r.Fovy,
		Projection: rl.CameraPerspective,
	}
}
