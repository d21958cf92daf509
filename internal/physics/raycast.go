package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

type RaycastHit struct {
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// RaycastTriangle intersects a ray with a single triangle (Moller-Trumbore).
// Backfaces count as hits; the returned normal is the triangle's face normal.
func RaycastTriangle(origin, direction rl.Vector3, tri Triangle, maxDistance float32) (RaycastHit, bool) {
	edge1 := rl.Vector3Subtract(tri.V1, tri.V0)
	edge2 := rl.Vector3Subtract(tri.V2, tri.V0)

	pvec := rl.Vector3CrossProduct(direction, edge2)
	det := rl.Vector3DotProduct(edge1, pvec)
	if det > -1e-8 && det < 1e-8 {
		return RaycastHit{}, false // parallel to triangle plane
	}
	invDet := 1.0 / det

	tvec := rl.Vector3Subtract(origin, tri.V0)
	u := rl.Vector3DotProduct(tvec, pvec) * invDet
	if u < 0 || u > 1 {
		return RaycastHit{}, false
	}

	qvec := rl.Vector3CrossProduct(tvec, edge1)
	v := rl.Vector3DotProduct(direction, qvec) * invDet
	if v < 0 || u+v > 1 {
		return RaycastHit{}, false
	}

	t := rl.Vector3DotProduct(edge2, qvec) * invDet
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	return RaycastHit{
		Point:    rl.Vector3Add(origin, rl.Vector3Scale(direction, t)),
		Normal:   tri.Normal,
		Distance: t,
	}, true
}

// RaycastMesh casts a ray against all triangles the index returns for the
// ray's bounding region and reports the closest hit.
func RaycastMesh(index SpatialIndex, origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	if index == nil || maxDistance <= 0 {
		return RaycastHit{}, false
	}
	direction = rl.Vector3Normalize(direction)

	end := rl.Vector3Add(origin, rl.Vector3Scale(direction, maxDistance))
	bounds := NewAABBFromPoints(origin, end)

	var closest RaycastHit
	closest.Distance = maxDistance
	hit := false
	for _, tri := range index.Query(bounds) {
		if h, ok := RaycastTriangle(origin, direction, tri, closest.Distance); ok {
			closest = h
			hit = true
		}
	}
	return closest, hit
}
