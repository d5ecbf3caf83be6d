package primitives

import (
	"github.com/go-gl/mathgl/mgl64"
	rl "github.com/gen2brain/raylib-go/raylib"

	"spacedrive/internal/pool"
)

// cached holds the mesh and material for one geometry kind. Created lazily on first Draw.
type cached struct {
	mesh rl.Mesh
	mtl  rl.Material
}

// Registry maps geometry kinds to mesh+material. Meshes are created on first use
// so that GPU resources are allocated after the window/OpenGL context exists.
// Every mesh has unit size (radius 1, or half side 1 for Box); the model matrix scales it by Geometry.Size.
type Registry struct {
	cache    map[pool.GeometryKind]cached
	viewPos  [3]float32 // camera position, set each frame for lighting
	lightDir [3]float32 // direction to light (normalized), set each frame
}

// NewRegistry returns a registry with no meshes loaded.
func NewRegistry() *Registry {
	return &Registry{
		cache:    make(map[pool.GeometryKind]cached),
		lightDir: [3]float32{0.3, 0.6, 1}, // from behind the viewer
	}
}

// SetView sets camera position and direction-to-light for this frame. Call once per frame
// (and per camera) before drawing objects.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

// Sphere tessellation. The octahedron and icosahedron reuse the sphere generator with
// very few rings/slices, which yields the same faceted silhouettes.
const (
	sphereRings       = 16
	sphereSlices      = 16
	octahedronRings   = 2
	octahedronSlices  = 4
	icosahedronRings  = 3
	icosahedronSlices = 5
)

func genMesh(kind pool.GeometryKind) rl.Mesh {
	switch kind {
	case pool.Octahedron:
		return rl.GenMeshSphere(1, octahedronRings, octahedronSlices)
	case pool.Icosahedron:
		return rl.GenMeshSphere(1, icosahedronRings, icosahedronSlices)
	case pool.Box:
		return rl.GenMeshCube(2, 2, 2)
	default:
		return rl.GenMeshSphere(1, sphereRings, sphereSlices)
	}
}

// ensure creates the mesh and lit material for kind if not yet cached.
func (r *Registry) ensure(kind pool.GeometryKind) cached {
	if c, ok := r.cache[kind]; ok {
		return c
	}
	c := cached{mesh: genMesh(kind), mtl: rl.LoadMaterialDefault()}
	if shader := loadLitShader(); rl.IsShaderValid(shader) {
		c.mtl.Shader = shader
	}
	r.cache[kind] = c
	return c
}

// Unload frees every cached mesh and material. Call before closing the window.
func (r *Registry) Unload() {
	for k, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		rl.UnloadMaterial(c.mtl)
		delete(r.cache, k)
	}
}

// Draw draws one pooled object with its transform and color.
// Must be called between BeginMode3D and EndMode3D, after SetView.
func (r *Registry) Draw(o pool.SceneObject) {
	c := r.ensure(o.Geometry.Kind)
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.NewColor(o.Color[0], o.Color[1], o.Color[2], 255)
	}
	r.setLitShaderUniforms(c.mtl.Shader)

	s := o.Geometry.Size
	model := o.Transform.Matrix().Mul4(mgl64.Scale3D(s, s, s))
	rl.DrawMesh(c.mesh, c.mtl, Matrix(model))
}

// Matrix converts a column-major mgl64 matrix to raylib's layout (also column-major).
func Matrix(m mgl64.Mat4) rl.Matrix {
	f := func(i int) float32 { return float32(m[i]) }
	return rl.Matrix{
		M0: f(0), M4: f(4), M8: f(8), M12: f(12),
		M1: f(1), M5: f(5), M9: f(9), M13: f(13),
		M2: f(2), M6: f(6), M10: f(10), M14: f(14),
		M3: f(3), M7: f(7), M11: f(11), M15: f(15),
	}
}
