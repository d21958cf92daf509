// Package config loads and saves movement tuning from a TOML file. Missing
// files are created with defaults so a fresh checkout runs without setup.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// Config is the full tuning surface of the simulation core. All values are
// meters and seconds.
type Config struct {
	Player struct {
		Height    float32
		Radius    float32
		EyeOffset float32
		SpawnX    float32
		SpawnY    float32
		SpawnZ    float32
	}
	Movement struct {
		Gravity       float32
		JumpSpeed     float32
		GroundAccel   float32
		AirAccel      float32
		GroundDamping float32
		AirDamping    float32
		MaxDeltaTime  float32
	}
	World struct {
		AbyssY float32
	}
	Input struct {
		LookSpeed float32
	}
}

// Default returns the tuning used when no file overrides it. Values mirror
// the controller and mapper defaults.
func Default() Config {
	var c Config
	c.Player.Height = 1.7
	c.Player.Radius = 0.35
	c.Player.EyeOffset = 0.1

	c.Movement.Gravity = 20.0
	c.Movement.JumpSpeed = 8.0
	c.Movement.GroundAccel = 25.0
	c.Movement.AirAccel = 8.0
	c.Movement.GroundDamping = 0.02
	c.Movement.AirDamping = 0.65
	c.Movement.MaxDeltaTime = 0.05

	c.World.AbyssY = -25.0
	c.Input.LookSpeed = 0.002
	return c
}

// Load reads the config at path. A missing file is not an error: defaults are
// written there and returned. Values absent from the file keep their
// defaults.
func Load(path string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := Save(path, c); err != nil {
			return c, err
		}
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return c, nil
}

// Save writes the config as TOML.
func Save(path string, c Config) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
