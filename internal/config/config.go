// Package config provides YAML-based configuration loading for the broad
// phase and the demo games, plus difficulty management.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/sweep-arcade/internal/physics"
)

// ErrBadPair is returned when a collision pair entry does not name exactly two layers.
var ErrBadPair = errors.New("config: collision pair must name two layers")

// PhysicsConfig configures the broad phase shared by all games.
type PhysicsConfig struct {
	// Collisions lists the unordered layer pairs allowed to collide,
	// e.g. [player, enemy]. Pairs not listed never collide.
	Collisions   [][]string `yaml:"collisions"`
	ParallelAxes bool       `yaml:"parallel_axes"` // Sweep X and Y concurrently
}

// Matrix builds the layer matrix described by the collision pairs.
func (c PhysicsConfig) Matrix() (*physics.LayerMatrix, error) {
	b := physics.NewMatrixBuilder(int(physics.LayerCount))
	for i, pair := range c.Collisions {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: entry %d has %d names", ErrBadPair, i, len(pair))
		}
		a, err := physics.ParseLayer(pair[0])
		if err != nil {
			return nil, fmt.Errorf("config: collision entry %d: %w", i, err)
		}
		bl, err := physics.ParseLayer(pair[1])
		if err != nil {
			return nil, fmt.Errorf("config: collision entry %d: %w", i, err)
		}
		b.Allow(a, bl)
	}
	return b.Build(), nil
}

// Options returns the broad-phase options implied by the config.
func (c PhysicsConfig) Options() []physics.Option {
	var opts []physics.Option
	if c.ParallelAxes {
		opts = append(opts, physics.WithParallelAxes())
	}
	return opts
}

// ShooterConfig contains all configuration for the Shooter game.
// Distances are in cells, speeds in cells per second, times in seconds.
type ShooterConfig struct {
	Player     ShooterPlayer    `yaml:"player"`
	Bullets    ShooterBullets   `yaml:"bullets"`
	Enemies    ShooterEnemies   `yaml:"enemies"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ShooterPlayer defines player parameters for Shooter.
type ShooterPlayer struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	Speed           float64 `yaml:"speed"`
	BoostMultiplier float64 `yaml:"boost_multiplier"`
}

// ShooterBullets defines bullet parameters for Shooter.
type ShooterBullets struct {
	Size     float64 `yaml:"size"`
	Speed    float64 `yaml:"speed"`
	Lifetime float64 `yaml:"lifetime"`
	Cooldown float64 `yaml:"cooldown"` // Minimum time between shots
}

// ShooterEnemies defines enemy parameters for Shooter.
type ShooterEnemies struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Speed         float64 `yaml:"speed"`
	Hits          int     `yaml:"hits"`           // Bullets needed to destroy one
	SpawnInterval float64 `yaml:"spawn_interval"` // Seconds between spawns
	ArcChance     float64 `yaml:"arc_chance"`     // Probability of an arcing approach
	MaxAlive      int     `yaml:"max_alive"`
}

// SandboxConfig contains all configuration for the Sandbox demo.
type SandboxConfig struct {
	Bodies    int     `yaml:"bodies"`     // Bodies spawned on reset
	MaxBodies int     `yaml:"max_bodies"` // Upper limit when adding bodies
	MinSize   float64 `yaml:"min_size"`
	MaxSize   float64 `yaml:"max_size"`
	MaxSpeed  float64 `yaml:"max_speed"`
	Step      int     `yaml:"step"` // Bodies added/removed per key press
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
	SpawnReduction  float64 `yaml:"spawn_reduction"`  // Fraction of the spawn interval removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the difficulty config based on a preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *DifficultyConfig, preset DifficultyPreset) {
	switch {
	case preset == "":
		return
	case IsFixedPreset(preset):
		cfg.Enabled = false
	default:
		cfg.Enabled = true
		cfg.InitialLevel = InitialLevelForPreset(preset)
	}
}
