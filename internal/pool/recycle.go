package pool

import "github.com/go-gl/mathgl/mgl64"

// Viewer is the camera state the host passes to LoopObjects.
type Viewer struct {
	Position mgl64.Vec3
	// Forward is the travel direction; zero means -Z.
	Forward mgl64.Vec3
}

// Dir returns the normalized travel direction.
func (v Viewer) Dir() mgl64.Vec3 {
	if v.Forward.Len() == 0 {
		return mgl64.Vec3{0, 0, -1}
	}
	return v.Forward.Normalize()
}

// Behind returns how far p is behind the viewer along the travel axis (negative when ahead).
func (v Viewer) Behind(p mgl64.Vec3) float64 {
	return -p.Sub(v.Position).Dot(v.Dir())
}

// LoopObjects moves objects that are more than RecycleMargin behind the viewer to a random
// distance in [AheadMin, AheadMax] ahead of it along the travel axis, leaving the other axes alone.
// Each object is only considered with probability RecycleChance per call. Returns the recycled IDs.
func (p *Pool) LoopObjects(v Viewer) []int {
	fwd := v.Dir()
	var recycled []int
	for i := range p.objects {
		if p.rng.Float64() >= p.cfg.RecycleChance {
			continue
		}
		o := &p.objects[i]
		behind := v.Behind(o.Transform.Position)
		if behind <= p.cfg.RecycleMargin {
			continue
		}
		ahead := float64(randInt(p.rng, p.cfg.AheadMin, p.cfg.AheadMax))
		o.Transform.Position = o.Transform.Position.Add(fwd.Mul(behind + ahead))
		o.refreshBounds()
		recycled = append(recycled, i)
	}
	p.stats.Recycled += uint64(len(recycled))
	return recycled
}

// Nearest returns the ID of the closest object ahead of the viewer, or false when nothing is ahead.
func (p *Pool) Nearest(v Viewer) (int, bool) {
	best, bestDist := -1, 0.0
	for i, o := range p.objects {
		if v.Behind(o.Transform.Position) >= 0 {
			continue
		}
		d := o.Transform.Position.Sub(v.Position).Len()
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}
