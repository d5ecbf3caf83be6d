package bounds

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is an axis-aligned bounding box in world space.
type Box struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// FromCenter returns the box centered at center with the given half extents.
func FromCenter(center, half mgl64.Vec3) Box {
	return Box{Min: center.Sub(half), Max: center.Add(half)}
}

// Oriented returns the smallest axis-aligned box enclosing a box with half extents half,
// rotated by rot and centered at center.
func Oriented(center, half mgl64.Vec3, rot mgl64.Quat) Box {
	m := rot.Normalize().Mat4().Mat3()
	var ext mgl64.Vec3
	for i := 0; i < 3; i++ {
		ext[i] = math.Abs(m.At(i, 0))*half[0] + math.Abs(m.At(i, 1))*half[1] + math.Abs(m.At(i, 2))*half[2]
	}
	return FromCenter(center, ext)
}

// Center returns the midpoint of the box.
func (b Box) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box on each axis.
func (b Box) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Volume returns the box volume; zero for degenerate or inverted boxes.
func (b Box) Volume() float64 {
	s := b.Size()
	if s[0] <= 0 || s[1] <= 0 || s[2] <= 0 {
		return 0
	}
	return s[0] * s[1] * s[2]
}

// Valid reports whether every extent is finite and positive.
func (b Box) Valid() bool {
	s := b.Size()
	for i := 0; i < 3; i++ {
		if math.IsNaN(s[i]) || math.IsInf(s[i], 0) || s[i] <= 0 {
			return false
		}
	}
	return true
}

// Contains reports whether p lies inside the box (faces included).
func (b Box) Contains(p mgl64.Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// Intersects reports whether the two boxes overlap. Touching faces count as an intersection.
func (b Box) Intersects(o Box) bool {
	return !(o.Max[0] < b.Min[0] || o.Min[0] > b.Max[0] ||
		o.Max[1] < b.Min[1] || o.Min[1] > b.Max[1] ||
		o.Max[2] < b.Min[2] || o.Min[2] > b.Max[2])
}

// Translate returns the box moved by d.
func (b Box) Translate(d mgl64.Vec3) Box {
	return Box{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Penetration returns the overlap depth and axis index (0=X, 1=Y, 2=Z) with the smallest overlap.
// If the boxes do not overlap, returns (0, -1).
func Penetration(a, b Box) (depth float64, axis int) {
	overlapX := min(a.Max[0], b.Max[0]) - max(a.Min[0], b.Min[0])
	overlapY := min(a.Max[1], b.Max[1]) - max(a.Min[1], b.Min[1])
	overlapZ := min(a.Max[2], b.Max[2]) - max(a.Min[2], b.Min[2])
	if overlapX <= 0 || overlapY <= 0 || overlapZ <= 0 {
		return 0, -1
	}
	depth = overlapX
	axis = 0
	if overlapY < depth {
		depth = overlapY
		axis = 1
	}
	if overlapZ < depth {
		depth = overlapZ
		axis = 2
	}
	return depth, axis
}
