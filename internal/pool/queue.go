package pool

import "github.com/go-gl/mathgl/mgl64"

// Mutation is a deferred write to one object. It runs on the Tick goroutine at the start of the next Tick.
type Mutation struct {
	ID    int
	Apply func(p *Pool, o *SceneObject)
}

// Enqueue schedules m for the next Tick. Safe to call from any goroutine.
func (p *Pool) Enqueue(m Mutation) {
	if m.Apply == nil {
		return
	}
	p.mu.Lock()
	p.pending = append(p.pending, m)
	p.mu.Unlock()
}

// drain applies queued mutations in the order they were enqueued. Unknown IDs are dropped.
func (p *Pool) drain() {
	p.mu.Lock()
	pending := p.pending
	p.pending = nil
	p.mu.Unlock()

	for _, m := range pending {
		if m.ID < 0 || m.ID >= len(p.objects) {
			continue
		}
		o := &p.objects[m.ID]
		m.Apply(p, o)
		o.refreshBounds()
	}
}

// bounce pushes one object over several ticks with a linearly decaying step.
type bounce struct {
	id    int
	dir   mgl64.Vec3
	frame int
}

// Bounce queues a push of object id directly away from origin by BounceDistance, spread over
// BounceFrames ticks with the largest step first. An object already bouncing is left alone.
// Safe to call from any goroutine.
func (p *Pool) Bounce(id int, origin mgl64.Vec3) {
	p.Enqueue(Mutation{ID: id, Apply: func(p *Pool, o *SceneObject) {
		p.startBounce(o, origin)
	}})
}

func (p *Pool) startBounce(o *SceneObject, origin mgl64.Vec3) {
	if p.cfg.BounceFrames == 0 || p.cfg.BounceDistance == 0 {
		return
	}
	for _, b := range p.bounces {
		if b.id == o.ID {
			return
		}
	}
	dir := o.Transform.Position.Sub(origin)
	if dir.Len() == 0 {
		dir = mgl64.Vec3{0, 1, 0}
	}
	p.bounces = append(p.bounces, bounce{id: o.ID, dir: dir.Normalize()})
}

// advanceBounces moves every bouncing object one step. Steps over n frames are
// distance * 2(n-k) / n(n+1) for k = 0..n-1, which sum to distance.
func (p *Pool) advanceBounces() {
	n := p.cfg.BounceFrames
	kept := p.bounces[:0]
	for _, b := range p.bounces {
		step := p.cfg.BounceDistance * 2 * float64(n-b.frame) / float64(n*(n+1))
		o := &p.objects[b.id]
		o.Transform.Position = o.Transform.Position.Add(b.dir.Mul(step))
		b.frame++
		if b.frame < n {
			kept = append(kept, b)
		}
	}
	p.bounces = kept
}
