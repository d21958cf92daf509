package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// degenerateAreaEpsilon is the squared cross-product length below which a
// triangle is treated as zero-area and skipped.
const degenerateAreaEpsilon = 1e-10

// Triangle is a single world-space triangle with precomputed normal.
type Triangle struct {
	V0, V1, V2 rl.Vector3
	Normal     rl.Vector3
}

// NewTriangle builds a triangle and its unit normal from three vertices.
// ok is false for degenerate (zero-area) triangles, which must never enter
// collision queries.
func NewTriangle(v0, v1, v2 rl.Vector3) (tri Triangle, ok bool) {
	edge1 := rl.Vector3Subtract(v1, v0)
	edge2 := rl.Vector3Subtract(v2, v0)
	cross := rl.Vector3CrossProduct(edge1, edge2)
	if rl.Vector3DotProduct(cross, cross) < degenerateAreaEpsilon {
		return Triangle{}, false
	}
	return Triangle{
		V0:     v0,
		V1:     v1,
		V2:     v2,
		Normal: rl.Vector3Normalize(cross),
	}, true
}

// Bounds returns the triangle's axis-aligned bounding box.
func (t Triangle) Bounds() AABB {
	return NewAABBFromPoints(t.V0, t.V1, t.V2)
}

// ClosestPoint finds the closest point on the triangle to point p.
func (t Triangle) ClosestPoint(p rl.Vector3) rl.Vector3 {
	a, b, c := t.V0, t.V1, t.V2

	// Check if P in vertex region outside A
	ab := rl.Vector3Subtract(b, a)
	ac := rl.Vector3Subtract(c, a)
	ap := rl.Vector3Subtract(p, a)

	d1 := rl.Vector3DotProduct(ab, ap)
	d2 := rl.Vector3DotProduct(ac, ap)
	if d1 <= 0 && d2 <= 0 {
		return a // barycentric coordinates (1,0,0)
	}

	// Check if P in vertex region outside B
	bp := rl.Vector3Subtract(p, b)
	d3 := rl.Vector3DotProduct(ab, bp)
	d4 := rl.Vector3DotProduct(ac, bp)
	if d3 >= 0 && d4 <= d3 {
		return b // barycentric coordinates (0,1,0)
	}

	// Check if P in edge region of AB
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return rl.Vector3Add(a, rl.Vector3Scale(ab, v)) // barycentric coordinates (1-v,v,0)
	}

	// Check if P in vertex region outside C
	cp := rl.Vector3Subtract(p, c)
	d5 := rl.Vector3DotProduct(ab, cp)
	d6 := rl.Vector3DotProduct(ac, cp)
	if d6 >= 0 && d5 <= d6 {
		return c // barycentric coordinates (0,0,1)
	}

	// Check if P in edge region of AC
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return rl.Vector3Add(a, rl.Vector3Scale(ac, w)) // barycentric coordinates (1-w,0,w)
	}

	// Check if P in edge region of BC
	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return rl.Vector3Add(b, rl.Vector3Scale(rl.Vector3Subtract(c, b), w)) // barycentric coordinates (0,1-w,w)
	}

	// P inside face region
	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return rl.Vector3Add(a, rl.Vector3Add(rl.Vector3Scale(ab, v), rl.Vector3Scale(ac, w)))
}

// BoxTriangles converts an axis-aligned box into the 12 triangles of its
// faces, with outward normals. Handy for authoring test geometry and simple
// wall/floor obstacles without a modeled mesh.
func BoxTriangles(center, size rl.Vector3) []Triangle {
	box := NewAABBFromCenter(center, size)
	mn, mx := box.Min, box.Max

	corners := [8]rl.Vector3{
		{X: mn.X, Y: mn.Y, Z: mn.Z},
		{X: mx.X, Y: mn.Y, Z: mn.Z},
		{X: mx.X, Y: mn.Y, Z: mx.Z},
		{X: mn.X, Y: mn.Y, Z: mx.Z},
		{X: mn.X, Y: mx.Y, Z: mn.Z},
		{X: mx.X, Y: mx.Y, Z: mn.Z},
		{X: mx.X, Y: mx.Y, Z: mx.Z},
		{X: mn.X, Y: mx.Y, Z: mx.Z},
	}

	// Each face as two CCW triangles (viewed from outside).
	faces := [6][4]int{
		{3, 2, 6, 7}, // +Z
		{1, 0, 4, 5}, // -Z
		{2, 1, 5, 6}, // +X
		{0, 3, 7, 4}, // -X
		{4, 7, 6, 5}, // +Y
		{0, 1, 2, 3}, // -Y
	}

	tris := make([]Triangle, 0, 12)
	for _, f := range faces {
		if t, ok := NewTriangle(corners[f[0]], corners[f[1]], corners[f[2]]); ok {
			tris = append(tris, t)
		}
		if t, ok := NewTriangle(corners[f[0]], corners[f[2]], corners[f[3]]); ok {
			tris = append(tris, t)
		}
	}
	return tris
}
