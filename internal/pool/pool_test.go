package pool

import (
	"math"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spacedrive/internal/bounds"
)

type recordLogger struct {
	lines []string
}

func (r *recordLogger) Log(line string) {
	r.lines = append(r.lines, line)
}

// newSolo returns a one-object pool whose only object is replaced by o.
func newSolo(t *testing.T, o SceneObject) *Pool {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Capacity = 1
	cfg.Seed = 1
	cfg.MaxDelta = 1
	p, err := New(cfg)
	require.NoError(t, err)

	o.ID = 0
	if o.Transform.Rotation == (mgl64.Quat{}) {
		o.Transform.Rotation = mgl64.QuatIdent()
	}
	if o.Transform.Scale == (mgl64.Vec3{}) {
		o.Transform.Scale = mgl64.Vec3{1, 1, 1}
	}
	if o.Geometry.Size == 0 {
		o.Geometry = Geometry{Kind: Sphere, Size: 2}
	}
	o.refreshBounds()
	p.objects[0] = o
	return p
}

func assertNoOverlap(t *testing.T, objs []SceneObject) {
	t.Helper()
	for i := range objs {
		for j := i + 1; j < len(objs); j++ {
			assert.False(t, objs[i].Bounds.Intersects(objs[j].Bounds), "objects %d and %d overlap", i, j)
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	flat := DefaultConfig()
	flat.SpawnBounds.Max[1] = flat.SpawnBounds.Min[1]

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero capacity", func(c *Config) { c.Capacity = 0 }},
		{"negative capacity", func(c *Config) { c.Capacity = -3 }},
		{"flat bounds", func(c *Config) { c.SpawnBounds = flat.SpawnBounds }},
		{"inverted bounds", func(c *Config) { c.SpawnBounds.Min, c.SpawnBounds.Max = c.SpawnBounds.Max, c.SpawnBounds.Min }},
		{"size range", func(c *Config) { c.SizeMin, c.SizeMax = 5, 2 }},
		{"zero size", func(c *Config) { c.SizeMin = 0 }},
		{"chance above one", func(c *Config) { c.RecycleChance = 1.5 }},
		{"ahead range", func(c *Config) { c.AheadMin, c.AheadMax = 900, 100 }},
		{"negative margin", func(c *Config) { c.RecycleMargin = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			p, err := New(cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Nil(t, p)
		})
	}
}

func TestNewPlacesWithoutOverlap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 1
	p, err := New(cfg)
	require.NoError(t, err)

	objs := p.Objects()
	require.Len(t, objs, cfg.Capacity)
	assert.Zero(t, p.Stats().Overlaps)
	assertNoOverlap(t, objs)
	for i, o := range objs {
		assert.Equal(t, i, o.ID)
		assert.True(t, cfg.SpawnBounds.Contains(o.Transform.Position))
		assert.GreaterOrEqual(t, o.Geometry.Size, float64(cfg.SizeMin))
		assert.LessOrEqual(t, o.Geometry.Size, float64(cfg.SizeMax))
		assert.InDelta(t, 1, o.Params.OrbitAxis.Len(), 1e-12)
	}
}

func TestNewSmallCube(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		cfg := DefaultConfig()
		cfg.Capacity = 3
		cfg.Seed = seed
		cfg.SpawnBounds = bounds.Box{Min: mgl64.Vec3{-25, -25, -25}, Max: mgl64.Vec3{25, 25, 25}}
		p, err := New(cfg)
		require.NoError(t, err)

		st := p.Stats()
		assert.Zero(t, st.Overlaps, "seed %d", seed)
		assert.Less(t, st.WorstPlacement, 10000, "seed %d", seed)
		assertNoOverlap(t, p.Objects())
	}
}

func TestNewDrawsParameters(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 99
	p, err := New(cfg)
	require.NoError(t, err)

	kinds := map[GeometryKind]int{}
	var linear, orbits, spins, pulses int
	for _, o := range p.Objects() {
		kinds[o.Geometry.Kind]++
		for i := 0; i < 3; i++ {
			assert.LessOrEqual(t, math.Abs(o.Params.Delta[i]), cfg.DriftScale/2)
			assert.Contains(t, []float64{-1, 1}, o.Params.SpinSign[i])
			assert.Contains(t, []float64{math.Pi, 2 * math.Pi}, o.Params.Phase[i])
		}
		if o.Motion.Linear {
			linear++
		}
		if o.Motion.Orbit {
			orbits++
		}
		if o.Motion.Spin {
			spins++
		}
		if o.Motion.Pulse {
			pulses++
		}
	}
	assert.Len(t, kinds, int(geometryKinds))
	for _, n := range []int{linear, orbits, spins, pulses} {
		assert.Greater(t, n, 0)
		assert.Less(t, n, cfg.Capacity)
	}
}

func TestPulseScaleStaysInEnvelope(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Capacity = 50
	cfg.Seed = 3
	p, err := New(cfg)
	require.NoError(t, err)
	for i := range p.objects {
		p.objects[i].Motion.Pulse = true
	}

	steps := []float64{0, 0.016, 0.033, 0.1, 2, -1}
	for n := 0; n < 3000; n++ {
		p.Tick(steps[n%len(steps)])
		for _, o := range p.Objects() {
			for i := 0; i < 3; i++ {
				require.GreaterOrEqual(t, o.Transform.Scale[i], 0.5-1e-12)
				require.LessOrEqual(t, o.Transform.Scale[i], 1.5+1e-12)
			}
		}
	}
}

func TestPulseKeepsPosition(t *testing.T) {
	start := mgl64.Vec3{10, -20, 30}
	o := SceneObject{Motion: MotionFlags{Pulse: true}}
	o.Transform.Position = start
	o.Params.Delta = mgl64.Vec3{1.5, -2, 0.7}
	o.Params.Phase = mgl64.Vec3{math.Pi, 2 * math.Pi, math.Pi}
	p := newSolo(t, o)

	for n := 0; n < 100; n++ {
		p.Tick(0.05)
		got, _ := p.Object(0)
		require.Equal(t, start, got.Transform.Position)
	}
	got, _ := p.Object(0)
	assert.InDelta(t, 1+math.Sin(math.Pi+1.5*5)/2, got.Transform.Scale[0], 1e-9)
}

func TestSpinOnly(t *testing.T) {
	start := mgl64.Vec3{3, 4, 5}
	o := SceneObject{Motion: MotionFlags{Spin: true}}
	o.Transform.Position = start
	o.Params.Delta = mgl64.Vec3{2, 0, 0}
	o.Params.SpinSign = [3]float64{1, 1, 1}
	p := newSolo(t, o)

	p.Tick(1.0)

	got, _ := p.Object(0)
	assert.Equal(t, start, got.Transform.Position)
	want := mgl64.QuatRotate(2.0, mgl64.Vec3{1, 0, 0})
	assert.InDelta(t, want.W, got.Transform.Rotation.W, 1e-12)
	assert.InDeltaSlice(t, want.V[:], got.Transform.Rotation.V[:], 1e-12)
	assert.InDelta(t, 2.0, 2*math.Acos(got.Transform.Rotation.W), 1e-9)
}

func TestSpinSignReverses(t *testing.T) {
	o := SceneObject{Motion: MotionFlags{Spin: true}}
	o.Params.Delta = mgl64.Vec3{0, 1, 0}
	o.Params.SpinSign = [3]float64{1, -1, 1}
	p := newSolo(t, o)

	p.Tick(0.5)

	got, _ := p.Object(0)
	want := mgl64.QuatRotate(-0.5, mgl64.Vec3{0, 1, 0})
	assert.InDelta(t, want.W, got.Transform.Rotation.W, 1e-12)
	assert.InDeltaSlice(t, want.V[:], got.Transform.Rotation.V[:], 1e-12)
}

func TestLinearUsesLocalFrame(t *testing.T) {
	o := SceneObject{Motion: MotionFlags{Linear: true}}
	o.Transform.Rotation = mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})
	o.Params.Delta = mgl64.Vec3{1, 0, 0}
	p := newSolo(t, o)

	p.Tick(1)

	got, _ := p.Object(0)
	assert.InDeltaSlice(t, []float64{0, 0, -1}, got.Transform.Position[:], 1e-12)
}

func TestOrbitAboutOrigin(t *testing.T) {
	o := SceneObject{Motion: MotionFlags{Orbit: true}}
	o.Transform.Position = mgl64.Vec3{10, 0, 0}
	o.Params.Delta = mgl64.Vec3{math.Pi, 0, 0}
	o.Params.OrbitAxis = mgl64.Vec3{0, 1, 0}
	p := newSolo(t, o)

	p.Tick(1)

	got, _ := p.Object(0)
	assert.InDeltaSlice(t, []float64{0, 0, -10}, got.Transform.Position[:], 1e-9)
	assert.Equal(t, mgl64.QuatIdent(), got.Transform.Rotation)

	for n := 0; n < 50; n++ {
		p.Tick(0.1)
	}
	got, _ = p.Object(0)
	assert.InDelta(t, 10, got.Transform.Position.Len(), 1e-9)
}

func TestTickClampsDelta(t *testing.T) {
	tests := []struct {
		dt, limit, want float64
	}{
		{0.016, 0.1, 0.016},
		{-0.5, 0.1, 0},
		{math.NaN(), 0.1, 0},
		{5, 0.1, 0.1},
		{5, 0, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clampDelta(tt.dt, tt.limit))
	}

	o := SceneObject{Motion: MotionFlags{Linear: true}}
	o.Params.Delta = mgl64.Vec3{0, 0, 2}
	p := newSolo(t, o)
	p.cfg.MaxDelta = 0.1

	p.Tick(-3)
	got, _ := p.Object(0)
	assert.Equal(t, mgl64.Vec3{}, got.Transform.Position)

	p.Tick(30)
	got, _ = p.Object(0)
	assert.InDelta(t, 0.2, got.Transform.Position[2], 1e-12)
}

func TestDeterministicReplay(t *testing.T) {
	run := func() []SceneObject {
		cfg := DefaultConfig()
		cfg.Capacity = 60
		cfg.Seed = 2024
		p, err := New(cfg)
		require.NoError(t, err)
		for n := 0; n < 200; n++ {
			p.Tick(1.0 / 60)
		}
		return p.Objects()
	}
	assert.Equal(t, run(), run())
}

func TestBoundsFollowTransform(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Capacity = 40
	cfg.Seed = 5
	p, err := New(cfg)
	require.NoError(t, err)
	for n := 0; n < 30; n++ {
		p.Tick(0.05)
	}
	for _, o := range p.Objects() {
		c := o.Bounds.Center()
		assert.InDeltaSlice(t, o.Transform.Position[:], c[:], 1e-9)
	}
}

func TestCollide(t *testing.T) {
	o := SceneObject{}
	o.Transform.Position = mgl64.Vec3{0, 0, -20}
	p := newSolo(t, o)

	hit := bounds.FromCenter(mgl64.Vec3{0, 0, -18}, mgl64.Vec3{1, 1, 1})
	miss := bounds.FromCenter(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	assert.Equal(t, []int{0}, p.Collide(hit))
	assert.Empty(t, p.Collide(miss))
}

func TestConcurrentEnqueue(t *testing.T) {
	p := newSolo(t, SceneObject{})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				p.Enqueue(Mutation{ID: 0, Apply: func(_ *Pool, o *SceneObject) {
					o.Transform.Position[0]++
				}})
			}
		}()
	}
	wg.Wait()
	p.Enqueue(Mutation{ID: 7, Apply: func(_ *Pool, o *SceneObject) { t.Fatal("unknown id applied") }})

	p.Tick(0)

	got, _ := p.Object(0)
	assert.Equal(t, 800.0, got.Transform.Position[0])
}

func TestBounce(t *testing.T) {
	o := SceneObject{}
	o.Transform.Position = mgl64.Vec3{0, 0, -50}
	p := newSolo(t, o)
	n := p.cfg.BounceFrames

	p.Bounce(0, mgl64.Vec3{})
	p.Tick(0)
	got, _ := p.Object(0)
	first := p.cfg.BounceDistance * 2 / float64(n+1)
	assert.InDelta(t, -50-first, got.Transform.Position[2], 1e-9)
	assert.Equal(t, 1, p.Stats().Bouncing)

	// a second bounce while the first runs is ignored
	p.Bounce(0, mgl64.Vec3{0, 0, -100})
	for i := 1; i < n; i++ {
		p.Tick(0)
	}
	got, _ = p.Object(0)
	assert.InDeltaSlice(t, []float64{0, 0, -50 - p.cfg.BounceDistance}, got.Transform.Position[:], 1e-9)
	assert.Zero(t, p.Stats().Bouncing)

	p.Tick(0)
	again, _ := p.Object(0)
	assert.Equal(t, got.Transform.Position, again.Transform.Position)
}
