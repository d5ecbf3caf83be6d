package pool

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"spacedrive/internal/bounds"
)

// Logger receives diagnostics from the pool. *logger.Logger satisfies it.
type Logger interface {
	Log(line string)
}

type nopLogger struct{}

func (nopLogger) Log(string) {}

// Stats are counters for the debug overlay and tests.
type Stats struct {
	Objects int
	Ticks   uint64
	// PlacementAttempts is the total number of positions tried while building the pool.
	PlacementAttempts int
	// WorstPlacement is the largest attempt count for a single object.
	WorstPlacement int
	// Overlaps counts placements that hit the attempt cap and were kept overlapping.
	Overlaps int
	Recycled uint64
	Bouncing int
}

// Pool owns a fixed number of SceneObjects and animates them. All methods except Enqueue and Bounce
// must be called from the goroutine that drives Tick.
type Pool struct {
	cfg     Config
	rng     *rand.Rand
	log     Logger
	objects []SceneObject
	stats   Stats

	mu      sync.Mutex
	pending []Mutation
	bounces []bounce
}

// Option customizes New.
type Option func(*Pool)

// WithLogger routes placement diagnostics to l.
func WithLogger(l Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.log = l
		}
	}
}

// WithRand replaces the seeded generator built from Config.Seed.
func WithRand(r *rand.Rand) Option {
	return func(p *Pool) {
		if r != nil {
			p.rng = r
		}
	}
}

// NewRand returns the generator New uses for seed. Seed 0 uses the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// New builds cfg.Capacity random objects and places them in index order so that none overlap
// an earlier one. An invalid config returns an error wrapping ErrInvalidConfig and no pool.
func New(cfg Config, opts ...Option) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pool{cfg: cfg, log: nopLogger{}}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = NewRand(cfg.Seed)
	}

	p.objects = make([]SceneObject, cfg.Capacity)
	for i := range p.objects {
		p.objects[i] = p.randomObject(i)
	}
	for i := range p.objects {
		o := &p.objects[i]
		pos, attempts, err := Place(p.rng, o, p.objects[:i], cfg.SpawnBounds, cfg.MaxPlacementAttempts)
		if errors.Is(err, ErrPlacementExhausted) {
			p.stats.Overlaps++
			p.log.Log(fmt.Sprintf("pool: object %d placed overlapping after %d attempts", i, attempts))
		}
		p.stats.PlacementAttempts += attempts
		p.stats.WorstPlacement = max(p.stats.WorstPlacement, attempts)
		o.Transform.Position = pos
		o.refreshBounds()
	}
	p.stats.Objects = len(p.objects)
	return p, nil
}

// randomObject draws geometry, color, flags and motion parameters for slot id.
func (p *Pool) randomObject(id int) SceneObject {
	r := p.rng
	o := SceneObject{
		ID: id,
		Geometry: Geometry{
			Kind: GeometryKind(r.IntN(int(geometryKinds))),
			Size: float64(randInt(r, p.cfg.SizeMin, p.cfg.SizeMax)),
		},
		Transform: NewTransform(),
	}
	c := uint32(r.Float64() * 0xffffff)
	o.Color = [3]uint8{uint8(c >> 16), uint8(c >> 8), uint8(c)}

	o.Motion = MotionFlags{
		Linear: coin(r),
		Orbit:  coin(r),
		Spin:   coin(r),
		Pulse:  coin(r),
	}
	for i := 0; i < 3; i++ {
		o.Params.Delta[i] = (r.Float64() - 0.5) * p.cfg.DriftScale
	}
	for i := 0; i < 3; i++ {
		o.Params.Phase[i] = math.Pi * float64(1+r.IntN(2))
	}
	for i := 0; i < 3; i++ {
		o.Params.SpinSign[i] = sign(r)
	}
	// The axis is taken before placement, so it is anchored at the origin.
	var axis mgl64.Vec3
	for i := 0; i < 3; i++ {
		axis[i] = o.Transform.Position[i] + float64(randInt(r, 7, 10))*sign(r)
	}
	o.Params.OrbitAxis = axis.Normalize()
	o.refreshBounds()
	return o
}

// Len returns the pool capacity.
func (p *Pool) Len() int {
	return len(p.objects)
}

// Config returns the configuration the pool was built with.
func (p *Pool) Config() Config {
	return p.cfg
}

// Objects returns a copy of every object in ID order.
func (p *Pool) Objects() []SceneObject {
	out := make([]SceneObject, len(p.objects))
	copy(out, p.objects)
	return out
}

// Object returns a copy of the object with the given ID.
func (p *Pool) Object(id int) (SceneObject, bool) {
	if id < 0 || id >= len(p.objects) {
		return SceneObject{}, false
	}
	return p.objects[id], true
}

// Collide returns the IDs of objects whose bounds intersect box.
func (p *Pool) Collide(box bounds.Box) []int {
	var hits []int
	for i := range p.objects {
		if p.objects[i].Bounds.Intersects(box) {
			hits = append(hits, i)
		}
	}
	return hits
}

// Stats returns the current counters.
func (p *Pool) Stats() Stats {
	s := p.stats
	s.Bouncing = len(p.bounces)
	return s
}

// randInt returns a uniform integer in [lo, hi].
func randInt(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

func coin(r *rand.Rand) bool {
	return r.Float64() >= 0.5
}

// sign is a fair ±1 coin.
func sign(r *rand.Rand) float64 {
	if r.Float64()-0.5 < 0 {
		return -1
	}
	return 1
}
