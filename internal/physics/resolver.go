package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// FloorNormalY is the minimum vertical normal component for a contact to
// count as standable ground (~60 degree slope limit).
const FloorNormalY = 0.5

// contactEpsilon is the penetration depth below which a contact is ignored.
// Stops the push-out loop from chasing float noise.
const contactEpsilon = 1e-5

// DefaultResolveIterations bounds the query-and-push cycle. Corner and crease
// cases need a few passes to settle; past this we accept the best correction
// achieved instead of looping.
const DefaultResolveIterations = 5

// Contact is one detected overlap between the capsule and a triangle.
// Contacts are transient: produced and consumed within a single resolve pass.
type Contact struct {
	Normal rl.Vector3 // unit length, points from the surface toward the capsule
	Depth  float32    // penetration depth, >= 0
}

// SpatialIndex answers "which triangles are near this region". During
// simulation it is read-only and may be shared freely.
type SpatialIndex interface {
	Query(bounds AABB) []Triangle
}

// ResolveResult is the outcome of one full resolve pass.
type ResolveResult struct {
	Capsule  Capsule
	Contacts []Contact // contacts from the final detecting iteration
	OnFloor  bool
	// Converged is false when the iteration bound was hit while still
	// penetrating; the capsule then carries the best achieved correction.
	Converged bool
}

// Resolver pushes a capsule out of static world geometry.
type Resolver struct {
	Index         SpatialIndex
	MaxIterations int
}

func NewResolver(index SpatialIndex) *Resolver {
	return &Resolver{
		Index:         index,
		MaxIterations: DefaultResolveIterations,
	}
}

// Resolve moves the capsule out of any triangles it penetrates and classifies
// whether it stands on near-horizontal ground. Zero contacts leave the capsule
// unchanged with OnFloor=false. The loop is bounded: it never blocks.
func (r *Resolver) Resolve(c Capsule) ResolveResult {
	result := ResolveResult{Capsule: c, Converged: true}
	if r.Index == nil {
		return result
	}

	iterations := r.MaxIterations
	if iterations <= 0 {
		iterations = DefaultResolveIterations
	}

	for i := 0; i < iterations; i++ {
		candidates := r.Index.Query(result.Capsule.Bounds())

		var contacts []Contact
		deepest := -1
		for _, tri := range candidates {
			contact, hit := capsuleTriangleContact(result.Capsule, tri)
			if !hit {
				continue
			}
			contacts = append(contacts, contact)
			if deepest < 0 || contact.Depth > contacts[deepest].Depth {
				deepest = len(contacts) - 1
			}
		}

		if len(contacts) == 0 {
			// Clean separation; contacts from the previous iteration keep
			// the floor classification.
			return result
		}

		result.Contacts = contacts
		result.OnFloor = classifyFloor(contacts)

		// Push along the deepest contact first, then re-query. Resolving one
		// constraint at a time converges better on corners than summing all
		// corrections in one jump.
		push := rl.Vector3Scale(contacts[deepest].Normal, contacts[deepest].Depth)
		result.Capsule = result.Capsule.Translate(push)
	}

	// Bound hit while contacts were still being produced: best effort.
	result.Converged = false
	return result
}

func classifyFloor(contacts []Contact) bool {
	for _, contact := range contacts {
		if contact.Normal.Y > FloorNormalY {
			return true
		}
	}
	return false
}

// capsuleTriangleContact tests one triangle against the capsule. The closest
// point on the triangle to the capsule's core segment is approximated by
// clamping the segment against the triangle plane, projecting onto the
// triangle, then re-finding the nearest segment point.
func capsuleTriangleContact(c Capsule, tri Triangle) (Contact, bool) {
	// Degenerate triangles never produce contacts (their normal is garbage).
	if rl.Vector3DotProduct(tri.Normal, tri.Normal) < 0.5 {
		return Contact{}, false
	}

	// Reference point on the segment: where the segment line crosses the
	// triangle plane, clamped to the segment.
	axis := rl.Vector3Subtract(c.Top, c.Bottom)
	reference := c.Bottom
	denom := rl.Vector3DotProduct(tri.Normal, axis)
	if math32.Abs(denom) > 1e-8 {
		t := rl.Vector3DotProduct(tri.Normal, rl.Vector3Subtract(tri.V0, c.Bottom)) / denom
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		reference = rl.Vector3Add(c.Bottom, rl.Vector3Scale(axis, t))
	} else {
		// Segment parallel to plane; the bottom end biases contacts toward
		// the feet, which is where ground contacts live.
		if rl.Vector3DotProduct(tri.Normal, rl.Vector3Subtract(c.Top, tri.V0)) <
			rl.Vector3DotProduct(tri.Normal, rl.Vector3Subtract(c.Bottom, tri.V0)) {
			reference = c.Top
		}
	}

	trianglePoint := tri.ClosestPoint(reference)
	segmentPoint := c.ClosestPointOnSegment(trianglePoint)

	diff := rl.Vector3Subtract(segmentPoint, trianglePoint)
	distSq := rl.Vector3DotProduct(diff, diff)
	if distSq >= c.Radius*c.Radius {
		return Contact{}, false
	}

	dist := math32.Sqrt(distSq)
	if dist < 1e-4 {
		// Segment touches the triangle; fall back to the face normal.
		return Contact{Normal: tri.Normal, Depth: c.Radius}, true
	}

	depth := c.Radius - dist
	if depth <= contactEpsilon {
		return Contact{}, false
	}
	return Contact{
		Normal: rl.Vector3Scale(diff, 1.0/dist),
		Depth:  depth,
	}, true
}
