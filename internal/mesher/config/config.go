// Package config holds the mesher configuration and its file/flag
// merge rules.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the mesher configuration.
type Config struct {
	Seed      int64   `json:"seed"`
	ChunkSize int     `json:"chunk_size"` // voxel cells per chunk axis
	Radius    int     `json:"radius"`     // chunks meshed per axis
	Workers   int     `json:"workers"`    // 0 = logical cores minus two
	IsoLevel  float64 `json:"iso_level"`
	Algorithm string  `json:"algorithm"` // "surfacenets" or "marchingcubes"
	Normals   string  `json:"normals"`   // "trilinear" or "central"
	Scene     string  `json:"scene"`     // "terrain", "sphere" or "box"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ChunkSize: 16,
		Radius:    4,
		IsoLevel:  0,
		Algorithm: "surfacenets",
		Normals:   "trilinear",
		Scene:     "terrain",
	}
}

// Load reads a JSON config file. A missing file is not an error; it
// returns nil with cfg unchanged.
func Load(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["chunk-size"] {
		cfg.ChunkSize = fromFile.ChunkSize
	}
	if !explicitFlags["radius"] {
		cfg.Radius = fromFile.Radius
	}
	if !explicitFlags["workers"] {
		cfg.Workers = fromFile.Workers
	}
	if !explicitFlags["iso"] {
		cfg.IsoLevel = fromFile.IsoLevel
	}
	if !explicitFlags["algo"] {
		cfg.Algorithm = fromFile.Algorithm
	}
	if !explicitFlags["normals"] {
		cfg.Normals = fromFile.Normals
	}
	if !explicitFlags["scene"] {
		cfg.Scene = fromFile.Scene
	}
}

// Validate rejects configurations the pipeline cannot run.
func (c *Config) Validate() error {
	if c.ChunkSize < 1 {
		return fmt.Errorf("chunk_size must be at least 1, got %d", c.ChunkSize)
	}
	if c.Radius < 1 {
		return fmt.Errorf("radius must be at least 1, got %d", c.Radius)
	}
	switch c.Algorithm {
	case "surfacenets", "marchingcubes":
	default:
		return fmt.Errorf("unknown algorithm %q", c.Algorithm)
	}
	switch c.Normals {
	case "trilinear", "central":
	default:
		return fmt.Errorf("unknown normal strategy %q", c.Normals)
	}
	switch c.Scene {
	case "terrain", "sphere", "box":
	default:
		return fmt.Errorf("unknown scene %q", c.Scene)
	}
	return nil
}
