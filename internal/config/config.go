// Package config handles topograph configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Faultbox/topograph/pkg/terrain"
)

// Config validation errors.
var (
	ErrInvalidTerrain = errors.New("invalid terrain config")
)

// Config holds all settings.
type Config struct {
	Terrain TerrainConfig `yaml:"terrain"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// TerrainConfig holds height field and contour settings.
type TerrainConfig struct {
	Size           int     `yaml:"size"`            // Samples per axis, 2^k+1
	Levels         int     `yaml:"levels"`          // Number of contour levels
	Roughness      float32 `yaml:"roughness"`       // Initial displacement amplitude
	Hurst          float32 `yaml:"hurst"`           // Displacement decay exponent
	Seed           uint64  `yaml:"seed"`            // 0 = random
	BlurRadius     int     `yaml:"blur_radius"`     // Box blur radius, 0 = off
	BlurIterations int     `yaml:"blur_iterations"` // Box blur passes
	Normalize      bool    `yaml:"normalize"`       // Rescale to [0,1] before extraction
	Workers        int     `yaml:"workers"`         // Levels extracted concurrently
}

// ServerConfig holds websocket feed settings.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			Size:           129,
			Levels:         10,
			Roughness:      0.5,
			Hurst:          0.5,
			Seed:           0,
			BlurRadius:     0,
			BlurIterations: 0,
			Normalize:      true,
			Workers:        4,
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8080",
			WriteTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks the terrain settings before an engine is built.
func (c *Config) Validate() error {
	t := c.Terrain
	if !terrain.ValidSize(t.Size) {
		return fmt.Errorf("%w: size %d is not 2^k+1", ErrInvalidTerrain, t.Size)
	}
	if t.Levels < 1 {
		return fmt.Errorf("%w: levels must be at least 1, got %d", ErrInvalidTerrain, t.Levels)
	}
	if t.BlurRadius < 0 || t.BlurIterations < 0 {
		return fmt.Errorf("%w: negative blur settings", ErrInvalidTerrain)
	}
	return nil
}
