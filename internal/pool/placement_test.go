package pool

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spacedrive/internal/bounds"
)

func TestPlaceAvoidsOthers(t *testing.T) {
	rng := NewRand(11)
	blocker := SceneObject{ID: 0, Geometry: Geometry{Kind: Box, Size: 10}, Transform: NewTransform()}
	blocker.refreshBounds()

	obj := SceneObject{ID: 1, Geometry: Geometry{Kind: Octahedron, Size: 3}, Transform: NewTransform()}
	area := bounds.Box{Min: mgl64.Vec3{-20, -20, -20}, Max: mgl64.Vec3{20, 20, 20}}
	for n := 0; n < 50; n++ {
		pos, attempts, err := Place(rng, &obj, []SceneObject{blocker, obj}, area, 10000)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, attempts, 1)
		assert.True(t, area.Contains(pos))
		assert.False(t, obj.boundsAt(pos).Intersects(blocker.Bounds))
	}
}

func TestPlaceExhausted(t *testing.T) {
	rng := NewRand(4)
	blocker := SceneObject{ID: 0, Geometry: Geometry{Kind: Sphere, Size: 5}, Transform: NewTransform()}
	blocker.refreshBounds()

	obj := SceneObject{ID: 1, Geometry: Geometry{Kind: Sphere, Size: 2}, Transform: NewTransform()}
	tiny := bounds.Box{Min: mgl64.Vec3{-0.1, -0.1, -0.1}, Max: mgl64.Vec3{0.1, 0.1, 0.1}}
	pos, attempts, err := Place(rng, &obj, []SceneObject{blocker}, tiny, 50)
	assert.ErrorIs(t, err, ErrPlacementExhausted)
	assert.Equal(t, 50, attempts)
	assert.True(t, tiny.Contains(pos))
}

func TestNewKeepsOverlapWhenExhausted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Capacity = 2
	cfg.Seed = 8
	cfg.MaxPlacementAttempts = 20
	cfg.SpawnBounds = bounds.Box{Min: mgl64.Vec3{-0.5, -0.5, -0.5}, Max: mgl64.Vec3{0.5, 0.5, 0.5}}
	log := &recordLogger{}

	p, err := New(cfg, WithLogger(log))
	require.NoError(t, err)

	st := p.Stats()
	assert.Equal(t, 1, st.Overlaps)
	assert.Equal(t, 21, st.PlacementAttempts)
	assert.Equal(t, 20, st.WorstPlacement)
	require.Len(t, log.lines, 1)
	assert.Contains(t, log.lines[0], "object 1")
}

func TestWithRandOverridesSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Capacity = 10
	cfg.Seed = 1

	a, err := New(cfg, WithRand(NewRand(77)))
	require.NoError(t, err)
	cfg.Seed = 77
	b, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, a.Objects(), b.Objects())
}
