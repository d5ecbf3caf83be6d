package pool

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// rule applies one motion behavior to o for a dt-second step. Each rule checks its own flag.
type rule func(o *SceneObject, dt float64)

// rules run in this order every tick. Pulse saves and restores position, so it goes last.
var rules = [...]rule{linear, orbit, spin, pulse}

var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
	axisZ = mgl64.Vec3{0, 0, 1}
)

// Tick advances the pool by dt seconds: drains queued mutations, applies every enabled motion
// rule to every object, advances bounces and refreshes all bounding volumes.
func (p *Pool) Tick(dt float64) {
	dt = clampDelta(dt, p.cfg.MaxDelta)
	p.drain()
	for i := range p.objects {
		o := &p.objects[i]
		for _, r := range rules {
			r(o, dt)
		}
	}
	p.advanceBounces()
	for i := range p.objects {
		p.objects[i].refreshBounds()
	}
	p.stats.Ticks++
}

// clampDelta maps negative or NaN steps to 0 and caps large ones at limit (limit 0 means no cap).
func clampDelta(dt, limit float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	if limit > 0 && dt > limit {
		return limit
	}
	return dt
}

// linear translates along the object's local axes, so a spinning object drifts on a curve.
func linear(o *SceneObject, dt float64) {
	if !o.Motion.Linear {
		return
	}
	step := o.Transform.Rotation.Rotate(o.Params.Delta.Mul(dt))
	o.Transform.Position = o.Transform.Position.Add(step)
}

// orbit rotates the position about OrbitAxis through the world origin, not through the spawn point.
func orbit(o *SceneObject, dt float64) {
	if !o.Motion.Orbit {
		return
	}
	angle := o.Params.Delta[0] * dt / 2
	m := mgl64.HomogRotate3D(angle, o.Params.OrbitAxis)
	o.Transform.Position = m.Mul4x1(o.Transform.Position.Vec4(1)).Vec3()
}

// spin rotates in place about the local axes at SpinSign*Delta radians per second.
func spin(o *SceneObject, dt float64) {
	if !o.Motion.Spin {
		return
	}
	d, s := o.Params.Delta, o.Params.SpinSign
	q := o.Transform.Rotation.
		Mul(mgl64.QuatRotate(s[0]*d[0]*dt, axisX)).
		Mul(mgl64.QuatRotate(s[1]*d[1]*dt, axisY)).
		Mul(mgl64.QuatRotate(s[2]*d[2]*dt, axisZ))
	o.Transform.Rotation = q.Normalize()
}

// pulse sets scale to 1 + sin(phase)/2 on each axis. Scale is set, never multiplied, and
// position is held across the reset.
func pulse(o *SceneObject, dt float64) {
	if !o.Motion.Pulse {
		return
	}
	pos := o.Transform.Position
	o.Transform.Scale = mgl64.Vec3{1, 1, 1}

	o.Params.Phase = o.Params.Phase.Add(o.Params.Delta.Mul(dt))
	for i := 0; i < 3; i++ {
		o.Transform.Scale[i] = 1 + math.Sin(o.Params.Phase[i])/2
	}

	o.Transform.Position = pos
}
