package config

import (
	_ "embed"
)

//go:embed defaults/physics.yaml
var defaultPhysicsYAML []byte

//go:embed defaults/shooter.yaml
var defaultShooterYAML []byte

//go:embed defaults/sandbox.yaml
var defaultSandboxYAML []byte

// DefaultPhysicsConfig returns the default broad-phase configuration.
// It describes the same table as physics.DefaultLayerMatrix.
func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		Collisions: [][]string{
			{"player", "enemy"},
			{"player", "wall"},
			{"enemy", "bullet"},
			{"enemy", "wall"},
			{"bullet", "wall"},
		},
	}
}

// DefaultShooterConfig returns the default Shooter configuration.
func DefaultShooterConfig() ShooterConfig {
	return ShooterConfig{
		Player: ShooterPlayer{
			Width:           2,
			Height:          1,
			Speed:           20,
			BoostMultiplier: 2,
		},
		Bullets: ShooterBullets{
			Size:     1,
			Speed:    45,
			Lifetime: 6,
			Cooldown: 0.15,
		},
		Enemies: ShooterEnemies{
			Width:         2,
			Height:        1,
			Speed:         6,
			Hits:          3,
			SpawnInterval: 1.5,
			ArcChance:     0.75,
			MaxAlive:      40,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 60,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				SpawnReduction:  0.6,
			},
		},
	}
}

// DefaultSandboxConfig returns the default Sandbox configuration.
func DefaultSandboxConfig() SandboxConfig {
	return SandboxConfig{
		Bodies:    60,
		MaxBodies: 2000,
		MinSize:   1,
		MaxSize:   5,
		MaxSpeed:  12,
		Step:      20,
	}
}

// GetDefaultYAML returns the embedded default YAML for a config name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case PhysicsFile:
		return defaultPhysicsYAML
	case ShooterFile:
		return defaultShooterYAML
	case SandboxFile:
		return defaultSandboxYAML
	default:
		return nil
	}
}
