package spatial

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/physics"
)

// scatteredBoxes builds a line of unit boxes spaced apart so tree pruning is
// observable.
func scatteredBoxes(n int) []physics.Triangle {
	var soup []physics.Triangle
	for i := 0; i < n; i++ {
		center := rl.Vector3{X: float32(i) * 10}
		soup = append(soup, physics.BoxTriangles(center, rl.Vector3{X: 1, Y: 1, Z: 1})...)
	}
	return soup
}

func TestNewTreeRejectsEmptySoup(t *testing.T) {
	if _, err := NewTree(nil); err != ErrNoTriangles {
		t.Fatalf("err = %v, want ErrNoTriangles", err)
	}
}

func TestNewTreeDropsDegenerates(t *testing.T) {
	soup := scatteredBoxes(1)
	clean := len(soup)
	// Zero-area triangle as a raw struct
	soup = append(soup, physics.Triangle{
		V0: rl.Vector3{},
		V1: rl.Vector3{X: 1},
		V2: rl.Vector3{X: 2},
	})

	tree, err := NewTree(soup)
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}
	if tree.TriangleCount() != clean {
		t.Fatalf("TriangleCount = %d, want %d (degenerate kept)", tree.TriangleCount(), clean)
	}
}

func TestQueryReturnsNearbyTriangles(t *testing.T) {
	tree, err := NewTree(scatteredBoxes(8))
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}

	// Region around the third box only
	region := physics.NewAABBFromCenter(rl.Vector3{X: 20}, rl.Vector3{X: 2, Y: 2, Z: 2})
	got := tree.Query(region)

	if len(got) == 0 {
		t.Fatal("no candidates around an existing box")
	}
	// All 12 triangles of that box must be among the candidates.
	if len(got) < 12 {
		t.Fatalf("got %d candidates, want at least the 12 box faces", len(got))
	}
	for _, tri := range got {
		if !tri.Bounds().Intersects(region.Expand(10)) {
			t.Fatalf("candidate far outside the query region: %+v", tri.Bounds())
		}
	}
}

func TestQueryFarRegionIsEmpty(t *testing.T) {
	tree, err := NewTree(scatteredBoxes(8))
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}

	region := physics.NewAABBFromCenter(rl.Vector3{X: 0, Y: 500, Z: 500}, rl.Vector3{X: 1, Y: 1, Z: 1})
	if got := tree.Query(region); len(got) != 0 {
		t.Fatalf("got %d candidates in empty space", len(got))
	}
}

func TestQueryCoversWholeSoup(t *testing.T) {
	tree, err := NewTree(scatteredBoxes(16))
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}

	got := tree.Query(tree.Bounds())
	if len(got) != tree.TriangleCount() {
		t.Fatalf("full-bounds query returned %d of %d triangles", len(got), tree.TriangleCount())
	}
}

func TestNewTreeFromVertices(t *testing.T) {
	vertices := []rl.Vector3{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1},
		{X: 5, Y: 0, Z: 0}, {X: 6, Y: 0, Z: 0}, {X: 5, Y: 0, Z: 1},
		// degenerate, dropped
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0},
	}
	tree, err := NewTreeFromVertices(vertices)
	if err != nil {
		t.Fatalf("NewTreeFromVertices: %v", err)
	}
	if tree.TriangleCount() != 2 {
		t.Fatalf("TriangleCount = %d, want 2", tree.TriangleCount())
	}
}
