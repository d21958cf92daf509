package world

import (
	"encoding/json"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/physics"
	"walksim/internal/spatial"
)

// LevelFile is a minimal static-geometry level: a spawn point plus obstacle
// geometry, as axis-aligned boxes and/or raw triangles. It carries no visual
// data; meshes for rendering live elsewhere.
type LevelFile struct {
	Name      string       `json:"name,omitempty"`
	Spawn     [3]float32   `json:"spawn"`
	Boxes     []BoxDef     `json:"boxes,omitempty"`
	Triangles [][9]float32 `json:"triangles,omitempty"`
}

type BoxDef struct {
	Center [3]float32 `json:"center"`
	Size   [3]float32 `json:"size"`
}

// LoadLevel reads a level file from disk.
func LoadLevel(path string) (LevelFile, error) {
	var level LevelFile
	data, err := os.ReadFile(path)
	if err != nil {
		return level, fmt.Errorf("level: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &level); err != nil {
		return level, fmt.Errorf("level: parse %s: %w", path, err)
	}
	return level, nil
}

// SaveLevel writes a level file to disk.
func SaveLevel(path string, level LevelFile) error {
	data, err := json.MarshalIndent(level, "", "  ")
	if err != nil {
		return fmt.Errorf("level: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("level: write %s: %w", path, err)
	}
	return nil
}

// SpawnPoint returns the level's spawn as a vector.
func (l LevelFile) SpawnPoint() rl.Vector3 {
	return rl.Vector3{X: l.Spawn[0], Y: l.Spawn[1], Z: l.Spawn[2]}
}

// BuildTree converts the level's geometry into a spatial tree.
func (l LevelFile) BuildTree() (*spatial.Tree, error) {
	var soup []physics.Triangle
	for _, box := range l.Boxes {
		soup = append(soup, physics.BoxTriangles(
			rl.Vector3{X: box.Center[0], Y: box.Center[1], Z: box.Center[2]},
			rl.Vector3{X: box.Size[0], Y: box.Size[1], Z: box.Size[2]},
		)...)
	}
	for _, t := range l.Triangles {
		tri, ok := physics.NewTriangle(
			rl.Vector3{X: t[0], Y: t[1], Z: t[2]},
			rl.Vector3{X: t[3], Y: t[4], Z: t[5]},
			rl.Vector3{X: t[6], Y: t[7], Z: t[8]},
		)
		if !ok {
			continue // degenerate, load-time skip
		}
		soup = append(soup, tri)
	}
	return spatial.NewTree(soup)
}
