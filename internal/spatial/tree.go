// Package spatial holds the static acceleration structure for world geometry:
// a bounding volume hierarchy over a triangle soup, built once at level load
// and read-only afterwards.
package spatial

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/physics"
)

const (
	leafTriangleCount = 4
	maxDepth          = 20
)

var ErrNoTriangles = errors.New("spatial: no usable triangles in soup")

type node struct {
	bounds    physics.AABB
	left      *node
	right     *node
	triangles []int // indices into the triangle array (leaf nodes only)
}

// Tree answers region queries over static triangles in sublinear time.
// Safe for concurrent readers; never mutated after NewTree returns.
type Tree struct {
	triangles []physics.Triangle
	root      *node
}

// NewTree copies the given triangles and builds the hierarchy. Degenerate
// (zero-area) triangles are dropped so they can never reach collision tests.
func NewTree(soup []physics.Triangle) (*Tree, error) {
	t := &Tree{triangles: make([]physics.Triangle, 0, len(soup))}
	for _, tri := range soup {
		if kept, ok := physics.NewTriangle(tri.V0, tri.V1, tri.V2); ok {
			t.triangles = append(t.triangles, kept)
		}
	}
	if len(t.triangles) == 0 {
		return nil, ErrNoTriangles
	}

	indices := make([]int, len(t.triangles))
	for i := range indices {
		indices[i] = i
	}
	t.root = t.build(indices, 0)
	return t, nil
}

// NewTreeFromVertices builds a tree from a flat vertex list, three vertices
// per triangle.
func NewTreeFromVertices(vertices []rl.Vector3) (*Tree, error) {
	soup := make([]physics.Triangle, 0, len(vertices)/3)
	for i := 0; i+2 < len(vertices); i += 3 {
		if tri, ok := physics.NewTriangle(vertices[i], vertices[i+1], vertices[i+2]); ok {
			soup = append(soup, tri)
		}
	}
	return NewTree(soup)
}

func (t *Tree) build(indices []int, depth int) *node {
	n := &node{bounds: t.computeBounds(indices)}

	// Few triangles or max depth: make leaf
	if len(indices) <= leafTriangleCount || depth > maxDepth {
		n.triangles = indices
		return n
	}

	// Split along the longest axis
	size := n.bounds.Size()
	axis := 0
	if size.Y > size.X {
		axis = 1
	}
	if size.Z > getAxisValue(size, axis) {
		axis = 2
	}

	mid := t.partition(indices, axis)
	if mid == 0 || mid == len(indices) {
		// Couldn't split, make leaf
		n.triangles = indices
		return n
	}

	n.left = t.build(indices[:mid], depth+1)
	n.right = t.build(indices[mid:], depth+1)
	return n
}

func (t *Tree) computeBounds(indices []int) physics.AABB {
	bounds := t.triangles[indices[0]].Bounds()
	for _, idx := range indices[1:] {
		bounds = bounds.Union(t.triangles[idx].Bounds())
	}
	return bounds
}

// partition splits indices around the mean centroid on the given axis and
// returns the split point.
func (t *Tree) partition(indices []int, axis int) int {
	center := float32(0)
	for _, idx := range indices {
		center += getAxisValue(t.centroid(idx), axis)
	}
	center /= float32(len(indices))

	left := 0
	right := len(indices) - 1
	for left <= right {
		if getAxisValue(t.centroid(indices[left]), axis) < center {
			left++
		} else {
			indices[left], indices[right] = indices[right], indices[left]
			right--
		}
	}
	return left
}

func (t *Tree) centroid(idx int) rl.Vector3 {
	tri := &t.triangles[idx]
	return rl.Vector3Scale(rl.Vector3Add(rl.Vector3Add(tri.V0, tri.V1), tri.V2), 1.0/3.0)
}

// Query returns all triangles whose leaf bounds intersect the given region.
// Candidates may extend beyond the region; callers narrow-phase them.
func (t *Tree) Query(bounds physics.AABB) []physics.Triangle {
	var out []physics.Triangle
	t.collect(t.root, bounds, &out)
	return out
}

func (t *Tree) collect(n *node, query physics.AABB, out *[]physics.Triangle) {
	if n == nil || !n.bounds.Intersects(query) {
		return
	}
	if n.triangles != nil {
		for _, idx := range n.triangles {
			*out = append(*out, t.triangles[idx])
		}
		return
	}
	t.collect(n.left, query, out)
	t.collect(n.right, query, out)
}

// TriangleCount returns the number of triangles held by the tree.
func (t *Tree) TriangleCount() int {
	return len(t.triangles)
}

// Bounds returns the AABB of all held geometry.
func (t *Tree) Bounds() physics.AABB {
	if t.root == nil {
		return physics.AABB{}
	}
	return t.root.bounds
}

func getAxisValue(v rl.Vector3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
