package player

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/input"
	"walksim/internal/physics"
	"walksim/internal/spatial"
)

const testDelta = float32(0.016)

func approx(t *testing.T, got, want, tol float32, field string) {
	t.Helper()
	if math32.Abs(got-want) > tol {
		t.Fatalf("%s = %.6f, want %.6f (tol=%.6f)", field, got, want, tol)
	}
}

// floorWorld is a big slab whose top face sits at y=0.
func floorWorld(t *testing.T) *spatial.Tree {
	t.Helper()
	tree, err := spatial.NewTree(physics.BoxTriangles(rl.Vector3{Y: -1}, rl.Vector3{X: 100, Y: 2, Z: 100}))
	if err != nil {
		t.Fatalf("floor tree: %v", err)
	}
	return tree
}

// settle steps with no input until the controller reports floor contact.
func settle(t *testing.T, c *Controller) {
	t.Helper()
	for i := 0; i < 120; i++ {
		c.Step(input.Frame{}, testDelta)
		if c.OnFloor {
			return
		}
	}
	t.Fatal("controller never settled on the floor")
}

func TestSettlesOnFloorAtRadius(t *testing.T) {
	c := NewController(physics.NewResolver(floorWorld(t)), rl.Vector3{Y: 1})
	settle(t, c)

	// Bottom segment point rests exactly one radius above the plane.
	approx(t, c.Capsule.Bottom.Y, c.Radius, 5e-3, "bottom.y")
	if !c.OnFloor {
		t.Fatal("OnFloor = false after settling")
	}
}

func TestFloorScenarioSingleStep(t *testing.T) {
	// Radius 0.5, bottom segment point exactly 0.4 above the floor, at
	// rest: one step must end with the capsule resting at the radius and
	// classified on-floor.
	c := NewController(physics.NewResolver(floorWorld(t)), rl.Vector3{})
	c.Resize(1.7, 0.5)
	c.Teleport(rl.Vector3{Y: -0.1}) // bottom segment point at y=0.4

	c.Step(input.Frame{}, testDelta)

	approx(t, c.Capsule.Bottom.Y, 0.5, 1e-3, "bottom.y")
	if !c.OnFloor {
		t.Fatal("OnFloor = false resting on a horizontal floor")
	}
	approx(t, c.Velocity.Y, 0, 1e-3, "velocity.y")
}

func TestJumpDeterminism(t *testing.T) {
	c := NewController(physics.NewResolver(floorWorld(t)), rl.Vector3{})
	settle(t, c)

	c.Step(input.Frame{JumpRequested: true}, testDelta)

	if c.Velocity.Y != c.JumpSpeed {
		t.Fatalf("velocity.y = %v, want exactly JumpSpeed %v", c.Velocity.Y, c.JumpSpeed)
	}
	if c.OnFloor {
		t.Fatal("OnFloor = true in the same step as a jump")
	}
}

func TestJumpIgnoredInAir(t *testing.T) {
	c := NewController(physics.NewResolver(floorWorld(t)), rl.Vector3{Y: 5})

	c.Step(input.Frame{JumpRequested: true}, testDelta)

	if c.Velocity.Y > 0 {
		t.Fatalf("airborne jump accepted, velocity.y = %v", c.Velocity.Y)
	}
}

func TestDampingIsFrameRateIndependent(t *testing.T) {
	// One step of dt and two steps of dt/2 must damp horizontal velocity
	// identically, with no input.
	newC := func() *Controller {
		c := NewController(physics.NewResolver(floorWorld(t)), rl.Vector3{Y: 10})
		c.Velocity = rl.Vector3{X: 3, Y: 0, Z: -2}
		return c
	}

	whole := newC()
	whole.Step(input.Frame{}, 0.032)

	halves := newC()
	halves.Step(input.Frame{}, 0.016)
	halves.Step(input.Frame{}, 0.016)

	approx(t, whole.Velocity.X, halves.Velocity.X, 1e-4, "velocity.x")
	approx(t, whole.Velocity.Z, halves.Velocity.Z, 1e-4, "velocity.z")
}

func TestTeleportRecovery(t *testing.T) {
	spawn := rl.Vector3{X: 2, Y: 1, Z: 3}
	c := NewController(physics.NewResolver(floorWorld(t)), spawn)

	var fired []SpawnReset
	c.SpawnReset.AddListener(func(r SpawnReset) {
		fired = append(fired, r)
	})

	c.Teleport(rl.Vector3{X: 50, Y: c.AbyssY - 5, Z: 50})
	c.Velocity = rl.Vector3{X: 1, Y: -30, Z: 1}

	c.Step(input.Frame{}, testDelta)

	if c.Position() != spawn {
		t.Fatalf("position = %+v, want spawn %+v", c.Position(), spawn)
	}
	if (c.Velocity != rl.Vector3{}) {
		t.Fatalf("velocity = %+v, want zero", c.Velocity)
	}
	if len(fired) != 1 {
		t.Fatalf("spawn reset fired %d times, want 1", len(fired))
	}
	if fired[0].From.Y > c.AbyssY {
		t.Fatalf("reset From.Y = %v, above abyss threshold", fired[0].From.Y)
	}
	if fired[0].To != spawn {
		t.Fatalf("reset To = %+v, want %+v", fired[0].To, spawn)
	}
}

func TestWallStopsHorizontalMotion(t *testing.T) {
	// Floor plus a wall whose near face is the plane x=2.
	soup := physics.BoxTriangles(rl.Vector3{Y: -1}, rl.Vector3{X: 100, Y: 2, Z: 100})
	soup = append(soup, physics.BoxTriangles(rl.Vector3{X: 2.5, Y: 2}, rl.Vector3{X: 1, Y: 4, Z: 10})...)
	tree, err := spatial.NewTree(soup)
	if err != nil {
		t.Fatalf("tree: %v", err)
	}

	c := NewController(physics.NewResolver(tree), rl.Vector3{})
	settle(t, c)
	c.Velocity.X = 5

	// Drive forward into the wall; unobstructed terminal speed is ~6 u/s, so
	// anything far past that means the wall is pumping energy back.
	for i := 0; i < 120; i++ {
		c.Step(input.Frame{MoveForward: 1}, testDelta)
		if math32.Abs(c.Velocity.X) > 12 {
			t.Fatalf("step %d: wall amplified velocity to %v", i, c.Velocity.X)
		}
	}

	// Capsule axis must end up one radius from the wall plane.
	gap := 2 - c.Capsule.Bottom.X
	if gap < c.Radius-1e-2 {
		t.Fatalf("penetrating wall: axis %.4f from plane, radius %.4f", gap, c.Radius)
	}
	if gap > c.Radius+0.05 {
		t.Fatalf("stopped short of wall: axis %.4f from plane, radius %.4f", gap, c.Radius)
	}
	if !c.OnFloor {
		t.Fatal("lost floor contact while sliding into the wall")
	}
}

func TestInputAcceleratesInYawFrame(t *testing.T) {
	c := NewController(physics.NewResolver(floorWorld(t)), rl.Vector3{})
	settle(t, c)

	// Yaw 0 faces +X
	c.Step(input.Frame{MoveForward: 1}, testDelta)

	if c.Velocity.X <= 0 {
		t.Fatalf("forward input did not accelerate along +X: %v", c.Velocity.X)
	}
	approx(t, c.Velocity.Z, 0, 1e-5, "velocity.z")

	// Quarter turn: forward now accelerates along +Z
	c.Velocity = rl.Vector3{}
	c.Yaw = math32.Pi / 2
	c.Step(input.Frame{MoveForward: 1}, testDelta)
	if c.Velocity.Z <= 0 {
		t.Fatalf("forward input after yaw turn did not accelerate along +Z: %v", c.Velocity.Z)
	}
}

func TestGroundControlStrongerThanAir(t *testing.T) {
	ground := NewController(physics.NewResolver(floorWorld(t)), rl.Vector3{})
	settle(t, ground)
	ground.Step(input.Frame{MoveForward: 1}, testDelta)

	air := NewController(physics.NewResolver(floorWorld(t)), rl.Vector3{Y: 20})
	air.Step(input.Frame{}, testDelta) // airborne, OnFloor=false
	air.Velocity = rl.Vector3{}
	air.Step(input.Frame{MoveForward: 1}, testDelta)

	if ground.Velocity.X <= air.Velocity.X {
		t.Fatalf("ground accel %v not stronger than air accel %v", ground.Velocity.X, air.Velocity.X)
	}
}

func TestPitchClampPreventsInversion(t *testing.T) {
	c := NewController(physics.NewResolver(floorWorld(t)), rl.Vector3{})

	for i := 0; i < 10; i++ {
		c.Step(input.Frame{LookDeltaPitch: -2}, testDelta)
	}
	if c.Pitch > c.PitchLimit {
		t.Fatalf("pitch %v above limit %v", c.Pitch, c.PitchLimit)
	}

	for i := 0; i < 20; i++ {
		c.Step(input.Frame{LookDeltaPitch: 2}, testDelta)
	}
	if c.Pitch < -c.PitchLimit {
		t.Fatalf("pitch %v below limit %v", c.Pitch, c.PitchLimit)
	}
}

func TestDeltaTimeClamp(t *testing.T) {
	c := NewController(physics.NewResolver(floorWorld(t)), rl.Vector3{Y: 30})

	// A huge frame gap integrates as MaxDeltaTime, not as five seconds of
	// free fall.
	c.Step(input.Frame{}, 5.0)

	expected := -c.Gravity * c.MaxDeltaTime
	approx(t, c.Velocity.Y, expected, 1e-4, "velocity.y")
}

func TestEyePointNearCapsuleTop(t *testing.T) {
	c := NewController(physics.NewResolver(floorWorld(t)), rl.Vector3{})
	eye := c.EyePoint()
	wantY := c.Capsule.Top.Y + c.Radius - c.EyeOffset
	approx(t, eye.Y, wantY, 1e-6, "eye.y")
}
