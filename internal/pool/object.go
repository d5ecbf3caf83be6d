package pool

import (
	"github.com/go-gl/mathgl/mgl64"

	"spacedrive/internal/bounds"
)

// GeometryKind is the procedural shape of a pooled object.
type GeometryKind int

const (
	Sphere GeometryKind = iota
	Octahedron
	Icosahedron
	Box
	geometryKinds
)

var geometryNames = [...]string{"sphere", "octahedron", "icosahedron", "box"}

func (k GeometryKind) String() string {
	if k < 0 || k >= geometryKinds {
		return "unknown"
	}
	return geometryNames[k]
}

// icosahedronExtent is the largest vertex coordinate of a unit-radius icosahedron, φ/√(1+φ²).
const icosahedronExtent = 0.85065080835204

// Geometry is a kind plus its size: radius for the round kinds, half side for Box.
type Geometry struct {
	Kind GeometryKind
	Size float64
}

// HalfExtents returns the unscaled, unrotated half extents of the geometry.
func (g Geometry) HalfExtents() mgl64.Vec3 {
	h := g.Size
	if g.Kind == Icosahedron {
		h *= icosahedronExtent
	}
	return mgl64.Vec3{h, h, h}
}

// Transform is an object's placement in world space.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// NewTransform returns an identity transform at the origin.
func NewTransform() Transform {
	return Transform{
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// Matrix returns the model matrix (translate * rotate * scale).
func (t Transform) Matrix() mgl64.Mat4 {
	return mgl64.Translate3D(t.Position[0], t.Position[1], t.Position[2]).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl64.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

// MotionFlags selects which motion rules run for an object. Any subset may be set.
type MotionFlags struct {
	Linear bool
	Orbit  bool
	Spin   bool
	Pulse  bool
}

// MotionParams are the per-object random parameters the motion rules read.
type MotionParams struct {
	// Delta is the drift rate per axis. Spin and pulse rates derive from it too.
	Delta mgl64.Vec3
	// SpinSign is -1 or +1 per axis.
	SpinSign [3]float64
	// OrbitAxis is a normalized world-space axis through the origin, fixed at creation.
	OrbitAxis mgl64.Vec3
	// Phase holds the pulse accumulators.
	Phase mgl64.Vec3
}

// SceneObject is one pooled entity. ID, Geometry, Color and Motion never change after creation.
type SceneObject struct {
	ID        int
	Geometry  Geometry
	Color     [3]uint8
	Transform Transform
	Bounds    bounds.Box
	Motion    MotionFlags
	Params    MotionParams
}

// boundsAt returns the object's world AABB if it were centered at pos.
func (o *SceneObject) boundsAt(pos mgl64.Vec3) bounds.Box {
	half := o.Geometry.HalfExtents()
	half = mgl64.Vec3{half[0] * o.Transform.Scale[0], half[1] * o.Transform.Scale[1], half[2] * o.Transform.Scale[2]}
	if o.Geometry.Kind == Sphere && half[0] == half[1] && half[1] == half[2] {
		return bounds.FromCenter(pos, half)
	}
	return bounds.Oriented(pos, half, o.Transform.Rotation)
}

func (o *SceneObject) refreshBounds() {
	o.Bounds = o.boundsAt(o.Transform.Position)
}
