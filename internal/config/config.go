package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"spacedrive/internal/bounds"
	"spacedrive/internal/pool"
)

// DefaultPath is the config file location, relative to the working directory.
const DefaultPath = "config/spacedrive.yaml"

// Environment overrides, applied after the file is read.
const (
	EnvSeed    = "SPACEDRIVE_SEED"
	EnvObjects = "SPACEDRIVE_OBJECTS"
	EnvMusic   = "SPACEDRIVE_MUSIC"
)

// Prefs is everything the drive reads at startup. Persisted as YAML.
type Prefs struct {
	Window WindowPrefs `yaml:"window"`
	Pool   PoolPrefs   `yaml:"pool"`
	Drive  DrivePrefs  `yaml:"drive"`
	Stars  StarPrefs   `yaml:"stars"`
	Audio  AudioPrefs  `yaml:"audio"`
	Debug  DebugPrefs  `yaml:"debug"`
}

type WindowPrefs struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	TargetFPS  int    `yaml:"target_fps"`
	Title      string `yaml:"title"`
}

// PoolPrefs maps onto pool.Config; zero fields fall back to pool.DefaultConfig.
type PoolPrefs struct {
	Objects       int        `yaml:"objects"`
	Seed          uint64     `yaml:"seed"`
	SpawnMin      [3]float64 `yaml:"spawn_min,flow"`
	SpawnMax      [3]float64 `yaml:"spawn_max,flow"`
	RecycleMargin float64    `yaml:"recycle_margin"`
	RecycleChance float64    `yaml:"recycle_chance"`
	AheadMin      int        `yaml:"ahead_min"`
	AheadMax      int        `yaml:"ahead_max"`
	MaxAttempts   int        `yaml:"max_placement_attempts"`
}

type DrivePrefs struct {
	// Speed is how fast the camera travels forward, in units per second.
	Speed float64 `yaml:"speed"`
	// ViewerRadius is the half size of the box used for bounce collisions.
	ViewerRadius float64 `yaml:"viewer_radius"`
	Mirror       bool    `yaml:"mirror"`
}

type StarPrefs struct {
	Count  int     `yaml:"count"`
	Spread float32 `yaml:"spread"`
}

type AudioPrefs struct {
	Enabled bool    `yaml:"enabled"`
	Music   string  `yaml:"music"`
	Bounce  string  `yaml:"bounce"`
	Volume  float32 `yaml:"volume"`
}

type DebugPrefs struct {
	ShowFPS      bool `yaml:"show_fps"`
	ShowMemAlloc bool `yaml:"show_memalloc"`
	ShowStats    bool `yaml:"show_stats"`
}

// Default returns the stock drive settings.
func Default() Prefs {
	pc := pool.DefaultConfig()
	return Prefs{
		Window: WindowPrefs{Width: 1280, Height: 720, TargetFPS: 60, Title: "spacedrive"},
		Pool: PoolPrefs{
			Objects:       pc.Capacity,
			SpawnMin:      pc.SpawnBounds.Min,
			SpawnMax:      pc.SpawnBounds.Max,
			RecycleMargin: pc.RecycleMargin,
			RecycleChance: pc.RecycleChance,
			AheadMin:      pc.AheadMin,
			AheadMax:      pc.AheadMax,
			MaxAttempts:   pc.MaxPlacementAttempts,
		},
		Drive: DrivePrefs{Speed: 40, ViewerRadius: 4, Mirror: true},
		Stars: StarPrefs{Count: 5000, Spread: 2000},
		Audio: AudioPrefs{
			Enabled: true,
			Music:   "assets/audio/drive.ogg",
			Bounce:  "assets/audio/bounce.wav",
			Volume:  0.5,
		},
	}
}

// Load reads prefs from path over Default(). A missing file is not an error. A malformed file
// returns Default() and the decode error so the caller can report it.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return p, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return p, nil
}

// Save writes prefs to path as YAML, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from the environment. lookup is usually os.LookupEnv.
func (p *Prefs) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvSeed, err)
		}
		p.Pool.Seed = seed
	}
	if v, ok := lookup(EnvObjects); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvObjects, err)
		}
		p.Pool.Objects = n
	}
	if v, ok := lookup(EnvMusic); ok && v != "" {
		p.Audio.Music = v
	}
	return nil
}

// PoolConfig builds the pool configuration; unset fields keep pool defaults.
func (p Prefs) PoolConfig() pool.Config {
	c := pool.DefaultConfig()
	c.Capacity = p.Pool.Objects
	c.Seed = p.Pool.Seed
	if p.Pool.SpawnMin != ([3]float64{}) || p.Pool.SpawnMax != ([3]float64{}) {
		c.SpawnBounds = bounds.Box{Min: mgl64.Vec3(p.Pool.SpawnMin), Max: mgl64.Vec3(p.Pool.SpawnMax)}
	}
	if p.Pool.RecycleMargin > 0 {
		c.RecycleMargin = p.Pool.RecycleMargin
	}
	if p.Pool.RecycleChance > 0 {
		c.RecycleChance = p.Pool.RecycleChance
	}
	if p.Pool.AheadMin > 0 || p.Pool.AheadMax > 0 {
		c.AheadMin, c.AheadMax = p.Pool.AheadMin, p.Pool.AheadMax
	}
	if p.Pool.MaxAttempts != 0 {
		c.MaxPlacementAttempts = p.Pool.MaxAttempts
	}
	return c
}
