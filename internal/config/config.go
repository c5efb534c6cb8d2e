package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultScene     = "tower"
	DefaultSubsteps  = 24
	DefaultWidth     = 800.0
	DefaultHeight    = 600.0
	DefaultFrames    = 600
	DefaultGravityY  = 0.98
	DefaultStiffness = 0.5
)

var (
	ErrSubsteps  = errors.New("config: substeps must be at least 1")
	ErrBounds    = errors.New("config: width and height must be positive")
	ErrFrames    = errors.New("config: frames must not be negative")
	ErrStiffness = errors.New("config: stiffness must be in (0, 1]")
	ErrGravity   = errors.New("config: gravity must be finite")
)

type Config struct {
	Scene     string        `yaml:"scene"`
	Substeps  int           `yaml:"substeps"`
	Width     float64       `yaml:"width"`
	Height    float64       `yaml:"height"`
	Frames    int           `yaml:"frames"`
	Gravity   GravityConfig `yaml:"gravity"`
	Stiffness float64       `yaml:"stiffness"`
}

type GravityConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene:     DefaultScene,
		Substeps:  DefaultSubsteps,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Frames:    DefaultFrames,
		Gravity:   GravityConfig{Y: DefaultGravityY},
		Stiffness: DefaultStiffness,
	}
}

// Load reads a YAML config. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Substeps < 1 {
		return fmt.Errorf("%w, got %d", ErrSubsteps, c.Substeps)
	}
	if !(c.Width > 0) || !(c.Height > 0) {
		return fmt.Errorf("%w, got %vx%v", ErrBounds, c.Width, c.Height)
	}
	if c.Frames < 0 {
		return fmt.Errorf("%w, got %d", ErrFrames, c.Frames)
	}
	if math.IsNaN(c.Stiffness) || c.Stiffness <= 0 || c.Stiffness > 1 {
		return fmt.Errorf("%w, got %v", ErrStiffness, c.Stiffness)
	}
	if !finite(c.Gravity.X) || !finite(c.Gravity.Y) {
		return fmt.Errorf("%w, got (%v, %v)", ErrGravity, c.Gravity.X, c.Gravity.Y)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
