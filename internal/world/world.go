// Package world wires the simulation core together and steps it in a fixed,
// declared order once per frame: input snapshot, motion integration (which
// resolves collisions internally), then camera placement.
package world

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"

	"walksim/internal/camera"
	"walksim/internal/config"
	"walksim/internal/input"
	"walksim/internal/physics"
	"walksim/internal/player"
	"walksim/internal/spatial"
)

type World struct {
	Tree   *spatial.Tree
	Player *player.Controller
	Input  *input.Mapper
	Camera *camera.Rig

	log *logrus.Logger

	// Rate limit for resolver stall diagnostics; a capsule wedged in a crease
	// would otherwise log every frame.
	lastStallLog time.Time
}

// New assembles a world over already-built static geometry. The tree is
// read-only from here on. A nil logger falls back to the logrus standard
// logger.
func New(cfg config.Config, tree *spatial.Tree, log *logrus.Logger) *World {
	if log == nil {
		log = logrus.StandardLogger()
	}

	spawn := rl.Vector3{X: cfg.Player.SpawnX, Y: cfg.Player.SpawnY, Z: cfg.Player.SpawnZ}

	ctrl := player.NewController(physics.NewResolver(tree), spawn)
	ctrl.Resize(cfg.Player.Height, cfg.Player.Radius)
	ctrl.EyeOffset = cfg.Player.EyeOffset
	ctrl.Gravity = cfg.Movement.Gravity
	ctrl.JumpSpeed = cfg.Movement.JumpSpeed
	ctrl.GroundAccel = cfg.Movement.GroundAccel
	ctrl.AirAccel = cfg.Movement.AirAccel
	ctrl.GroundDamping = cfg.Movement.GroundDamping
	ctrl.AirDamping = cfg.Movement.AirDamping
	ctrl.MaxDeltaTime = cfg.Movement.MaxDeltaTime
	ctrl.AbyssY = cfg.World.AbyssY

	ctrl.SpawnReset.AddListener(func(r player.SpawnReset) {
		log.WithFields(logrus.Fields{
			"fromY": r.From.Y,
			"to":    [3]float32{r.To.X, r.To.Y, r.To.Z},
		}).Info("player fell out of bounds, teleported to spawn")
	})

	mapper := input.NewMapper()
	if cfg.Input.LookSpeed > 0 {
		mapper.LookSpeed = cfg.Input.LookSpeed
	}

	return &World{
		Tree:   tree,
		Player: ctrl,
		Input:  mapper,
		Camera: camera.New(),
		log:    log,
	}
}

// Step runs one simulation frame. deltaTime comes straight from the render
// loop; the controller clamps it.
func (w *World) Step(deltaTime float32) {
	frame := w.Input.Frame()
	w.Player.Step(frame, deltaTime)

	if result := w.Player.LastResolve(); !result.Converged {
		if time.Since(w.lastStallLog) > time.Second {
			w.lastStallLog = time.Now()
			w.log.WithFields(logrus.Fields{
				"contacts": len(result.Contacts),
				"position": w.Player.Position(),
			}).Debug("collision resolve hit iteration bound, best-effort correction kept")
		}
	}

	w.Camera.Update(w.Player.EyePoint(), w.Player.Yaw, w.Player.Pitch)
}
