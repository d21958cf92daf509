package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Capsule is the player collision primitive: a vertical-ish line segment plus
// a radius. Bottom and Top are the segment end points (sphere centers), so the
// full capsule extends Radius beyond each along the segment axis.
// Invariants: Radius > 0 and Top.Y >= Bottom.Y.
type Capsule struct {
	Bottom rl.Vector3
	Top    rl.Vector3
	Radius float32
}

// NewCapsule builds an upright capsule standing on feet. Height is the full
// capsule height from feet to crown; the segment spans [feet+radius,
// feet+height-radius].
func NewCapsule(feet rl.Vector3, height, radius float32) Capsule {
	return Capsule{
		Bottom: rl.Vector3{X: feet.X, Y: feet.Y + radius, Z: feet.Z},
		Top:    rl.Vector3{X: feet.X, Y: feet.Y + height - radius, Z: feet.Z},
		Radius: radius,
	}
}

// Bounds returns the capsule's axis-aligned bounding box.
func (c Capsule) Bounds() AABB {
	return NewAABBFromPoints(c.Bottom, c.Top).Expand(c.Radius)
}

// Translate returns the capsule moved by v.
func (c Capsule) Translate(v rl.Vector3) Capsule {
	c.Bottom = rl.Vector3Add(c.Bottom, v)
	c.Top = rl.Vector3Add(c.Top, v)
	return c
}

// ClosestPointOnSegment finds the point on the capsule's core segment closest
// to p.
func (c Capsule) ClosestPointOnSegment(p rl.Vector3) rl.Vector3 {
	axis := rl.Vector3Subtract(c.Top, c.Bottom)
	lenSq := rl.Vector3DotProduct(axis, axis)
	if lenSq < 1e-12 {
		// Degenerate segment, capsule is a sphere
		return c.Bottom
	}
	t := rl.Vector3DotProduct(rl.Vector3Subtract(p, c.Bottom), axis) / lenSq
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return rl.Vector3Add(c.Bottom, rl.Vector3Scale(axis, t))
}
