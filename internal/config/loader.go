package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config file names, shared by the user and local config directories.
const (
	PhysicsFile = "physics.yaml"
	ShooterFile = "shooter.yaml"
	SandboxFile = "sandbox.yaml"
)

// LocalDir is the project-relative config directory.
const LocalDir = "configs"

// LoadPhysics loads the broad-phase configuration.
// Search order: customPath -> ~/.sweep/configs/physics.yaml -> ./configs/physics.yaml -> embedded default
func LoadPhysics(customPath string) (PhysicsConfig, error) {
	cfg, err := load(customPath, PhysicsFile, DefaultPhysicsConfig)
	if err != nil {
		return cfg, err
	}
	// Validate layer names up front so callers fail at load time.
	if _, err := cfg.Matrix(); err != nil {
		return cfg, fmt.Errorf("config: invalid %s: %w", PhysicsFile, err)
	}
	return cfg, nil
}

// LoadShooter loads Shooter configuration.
// Search order: customPath -> ~/.sweep/configs/shooter.yaml -> ./configs/shooter.yaml -> embedded default
func LoadShooter(customPath string) (ShooterConfig, error) {
	return load(customPath, ShooterFile, DefaultShooterConfig)
}

// LoadSandbox loads Sandbox configuration.
// Search order: customPath -> ~/.sweep/configs/sandbox.yaml -> ./configs/sandbox.yaml -> embedded default
func LoadSandbox(customPath string) (SandboxConfig, error) {
	return load(customPath, SandboxFile, DefaultSandboxConfig)
}

// ParsePhysics decodes a physics config from raw YAML and validates it.
func ParsePhysics(data []byte) (PhysicsConfig, error) {
	var cfg PhysicsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: cannot parse %s: %w", PhysicsFile, err)
	}
	if _, err := cfg.Matrix(); err != nil {
		return cfg, fmt.Errorf("config: invalid %s: %w", PhysicsFile, err)
	}
	return cfg, nil
}

// Resolve returns the file that would be loaded for name, or "" when only
// the embedded default is available.
func Resolve(customPath, name string) string {
	if customPath != "" {
		return customPath
	}
	for _, p := range []string{userConfigPath(name), filepath.Join(LocalDir, name)} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// load implements the shared search order. A custom path must exist and
// parse; user and local files that fail to parse are skipped.
func load[T any](customPath, name string, fallback func() T) (T, error) {
	var cfg T

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local one
	for _, p := range []string{userConfigPath(name), filepath.Join(LocalDir, name)} {
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		var fromFile T
		if err := yaml.Unmarshal(data, &fromFile); err == nil {
			return fromFile, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(GetDefaultYAML(name), &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path in ~/.sweep/configs for a config file.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sweep", "configs", filename)
}

// ApplyShooterPreset modifies the config based on a difficulty preset.
func ApplyShooterPreset(cfg *ShooterConfig, preset DifficultyPreset) {
	ApplyPreset(&cfg.Difficulty, preset)
}
