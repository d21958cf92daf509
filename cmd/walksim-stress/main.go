// Headless stress harness for the movement core: builds procedural terrain at
// several triangle counts, walks a scripted player over it and reports step
// throughput and resolver behavior.
package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"

	"walksim/internal/config"
	"walksim/internal/input"
	"walksim/internal/physics"
	"walksim/internal/player"
	"walksim/internal/spatial"
	"walksim/internal/world"
)

const (
	stepDelta = float32(1.0 / 60.0)
	stepCount = 20000
)

func main() {
	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true}

	gridSizes := []int{16, 32, 64, 128, 256}

	fmt.Printf("%8s | %9s | %12s | %10s | %7s | %7s\n",
		"tris", "build", "steps/sec", "ns/step", "stalls", "resets")
	for _, size := range gridSizes {
		runScenario(log, size)
	}
}

func runScenario(log *logrus.Logger, gridSize int) {
	soup := generateTerrain(gridSize)

	buildStart := time.Now()
	tree, err := spatial.NewTree(soup)
	if err != nil {
		log.WithError(err).Fatal("tree build failed")
	}
	buildTime := time.Since(buildStart)

	cfg := config.Default()
	w := world.New(cfg, tree, log)

	// Drop the spawn onto the terrain so the player starts standing, not
	// falling from the sky.
	origin := rl.Vector3{X: 0, Y: 50, Z: 0}
	if hit, ok := physics.RaycastMesh(tree, origin, rl.Vector3{X: 0, Y: -1, Z: 0}, 100); ok {
		w.Player.Teleport(hit.Point)
		w.Player.SetSpawn(hit.Point)
	}

	resets := 0
	w.Player.SpawnReset.AddListener(func(player.SpawnReset) {
		resets++
	})

	stalls := 0
	rng := rand.New(rand.NewSource(42)) // consistent runs

	// Warm up
	for i := 0; i < 120; i++ {
		w.Step(stepDelta)
	}

	start := time.Now()
	for i := 0; i < stepCount; i++ {
		scriptInput(w.Input, rng, i)
		w.Step(stepDelta)
		if !w.Player.LastResolve().Converged {
			stalls++
		}
	}
	elapsed := time.Since(start)

	perStep := elapsed / stepCount
	stepsPerSec := float64(stepCount) / elapsed.Seconds()

	fmt.Printf("%8d | %9v | %12.0f | %10d | %7d | %7d\n",
		tree.TriangleCount(), buildTime.Round(time.Microsecond),
		stepsPerSec, perStep.Nanoseconds(), stalls, resets)
}

// scriptInput drives a deterministic wander: hold forward, drift the view,
// hop occasionally.
func scriptInput(mapper *input.Mapper, rng *rand.Rand, step int) {
	mapper.KeyDown(input.KeyForward)
	mapper.PointerMove(float32(rng.Intn(9)-4), 0)
	if step%180 == 0 {
		mapper.KeyDown(input.KeyJump)
	} else {
		mapper.KeyUp(input.KeyJump)
	}
}

// generateTerrain builds a sine-ridged heightfield around the origin plus a
// scattered ring of box obstacles, scaled so density stays roughly constant.
func generateTerrain(gridSize int) []physics.Triangle {
	extent := float32(gridSize)
	cell := 2 * extent / float32(gridSize)

	height := func(x, z float32) float32 {
		return 1.5*math32.Sin(x*0.25)*math32.Cos(z*0.25) + 0.4*math32.Sin(x*1.1)
	}

	var soup []physics.Triangle
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x0 := -extent + float32(i)*cell
			z0 := -extent + float32(j)*cell
			x1 := x0 + cell
			z1 := z0 + cell

			a := rl.Vector3{X: x0, Y: height(x0, z0), Z: z0}
			b := rl.Vector3{X: x1, Y: height(x1, z0), Z: z0}
			c := rl.Vector3{X: x1, Y: height(x1, z1), Z: z1}
			d := rl.Vector3{X: x0, Y: height(x0, z1), Z: z1}

			if tri, ok := physics.NewTriangle(a, c, b); ok {
				soup = append(soup, tri)
			}
			if tri, ok := physics.NewTriangle(a, d, c); ok {
				soup = append(soup, tri)
			}
		}
	}

	rng := rand.New(rand.NewSource(7))
	numBoxes := gridSize / 2
	for i := 0; i < numBoxes; i++ {
		angle := float32(i) * (2 * math32.Pi / float32(numBoxes))
		radius := extent*0.3 + rng.Float32()*extent*0.4
		center := rl.Vector3{
			X: math32.Cos(angle) * radius,
			Y: 1 + rng.Float32()*2,
			Z: math32.Sin(angle) * radius,
		}
		size := rl.Vector3{
			X: 1 + rng.Float32()*2,
			Y: 1 + rng.Float32()*3,
			Z: 1 + rng.Float32()*2,
		}
		soup = append(soup, physics.BoxTriangles(center, size)...)
	}
	return soup
}
