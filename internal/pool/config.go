package pool

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"spacedrive/internal/bounds"
)

// ErrInvalidConfig is returned by New when the configuration cannot produce a pool.
var ErrInvalidConfig = errors.New("pool: invalid config")

// Config controls pool construction and the per-frame rules.
type Config struct {
	// Capacity is the fixed number of objects in the pool.
	Capacity int
	// SpawnBounds is where initial placement draws positions from.
	SpawnBounds bounds.Box
	// Seed drives every random draw; 0 seeds from the clock.
	Seed uint64

	// SizeMin and SizeMax bound the integer geometry size (radius or half side).
	SizeMin int
	SizeMax int
	// DriftScale is the width of the symmetric drift range: delta = (u - 0.5) * DriftScale.
	DriftScale float64

	// MaxDelta caps the per-tick time step in seconds; 0 disables the cap.
	MaxDelta float64
	// MaxPlacementAttempts caps the placement retry loop; 0 means retry until placed.
	MaxPlacementAttempts int

	// RecycleMargin is how far behind the viewer an object must be before it is recycled.
	RecycleMargin float64
	// RecycleChance is the per-object, per-call probability that LoopObjects checks it.
	RecycleChance float64
	// AheadMin and AheadMax bound the integer distance ahead of the viewer a recycled object lands at.
	AheadMin int
	AheadMax int

	// BounceDistance is the total push applied by one bounce.
	BounceDistance float64
	// BounceFrames is how many ticks one bounce is spread across.
	BounceFrames int
}

// DefaultConfig returns the tuning used by the drive: 300 objects in a 250x250x600 volume.
func DefaultConfig() Config {
	return Config{
		Capacity: 300,
		SpawnBounds: bounds.Box{
			Min: mgl64.Vec3{-125, -125, -300},
			Max: mgl64.Vec3{125, 125, 300},
		},
		SizeMin:              2,
		SizeMax:              7,
		DriftScale:           5,
		MaxDelta:             0.1,
		MaxPlacementAttempts: 10000,
		RecycleMargin:        200,
		RecycleChance:        0.1,
		AheadMin:             500,
		AheadMax:             1000,
		BounceDistance:       40,
		BounceFrames:         30,
	}
}

// Validate reports the first problem with c, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	case !c.SpawnBounds.Valid():
		return fmt.Errorf("%w: spawn bounds have no volume: %v..%v", ErrInvalidConfig, c.SpawnBounds.Min, c.SpawnBounds.Max)
	case c.SizeMin <= 0 || c.SizeMax < c.SizeMin:
		return fmt.Errorf("%w: size range [%d,%d]", ErrInvalidConfig, c.SizeMin, c.SizeMax)
	case c.DriftScale < 0 || math.IsNaN(c.DriftScale):
		return fmt.Errorf("%w: drift scale %v", ErrInvalidConfig, c.DriftScale)
	case c.MaxDelta < 0:
		return fmt.Errorf("%w: max delta %v", ErrInvalidConfig, c.MaxDelta)
	case c.RecycleMargin < 0:
		return fmt.Errorf("%w: recycle margin %v", ErrInvalidConfig, c.RecycleMargin)
	case c.RecycleChance < 0 || c.RecycleChance > 1 || math.IsNaN(c.RecycleChance):
		return fmt.Errorf("%w: recycle chance %v not in [0,1]", ErrInvalidConfig, c.RecycleChance)
	case c.AheadMin < 0 || c.AheadMax < c.AheadMin:
		return fmt.Errorf("%w: ahead range [%d,%d]", ErrInvalidConfig, c.AheadMin, c.AheadMax)
	case c.BounceFrames < 0:
		return fmt.Errorf("%w: bounce frames %d", ErrInvalidConfig, c.BounceFrames)
	}
	return nil
}
