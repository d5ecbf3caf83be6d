package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	rl "github.com/gen2brain/raylib-go/raylib"

	"spacedrive/internal/bounds"
	"spacedrive/internal/pool"
	"spacedrive/internal/primitives"
	"spacedrive/internal/starfield"
)

const (
	cameraFovy = 35
	// mirror size as a fraction of the screen
	mirrorWidthFrac  = 0.3
	mirrorHeightFrac = 0.18
	mirrorMargin     = 12
	starMaxAlpha     = 255
)

var (
	startEye    = rl.NewVector3(0, 0, 200)
	startTarget = rl.NewVector3(0, 0, 0)
	mirrorFrame = rl.NewColor(180, 180, 190, 255)
)

// Scene holds the forward camera, the rear-view mirror camera and what they look at.
// Update drives the cameras forward; RenderMirror draws the rear view offscreen; Draw renders
// the frame between BeginDrawing and EndDrawing.
type Scene struct {
	Camera        rl.Camera3D
	Mirror        rl.Camera3D
	MirrorVisible bool
	StarsVisible  bool
	// Speed is the forward travel speed in units per second.
	Speed float32

	prims   *primitives.Registry
	stars   *starfield.Field
	elapsed float32

	mirrorTex   rl.RenderTexture2D
	mirrorW     int32
	mirrorH     int32
	mirrorReady bool
}

// New returns a scene with the camera at (0,0,200) looking down -Z.
// stars may be nil for no background.
func New(prims *primitives.Registry, stars *starfield.Field, speed float32) *Scene {
	s := &Scene{
		MirrorVisible: true,
		StarsVisible:  stars != nil,
		Speed:         speed,
		prims:         prims,
		stars:         stars,
	}
	s.Camera.Position = startEye
	s.Camera.Target = startTarget
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = cameraFovy
	s.Camera.Projection = rl.CameraPerspective
	s.syncMirror()
	return s
}

// Forward returns the normalized view direction of the forward camera.
func (s *Scene) Forward() mgl64.Vec3 {
	f := toVec(s.Camera.Target).Sub(toVec(s.Camera.Position))
	if f.Len() == 0 {
		return mgl64.Vec3{0, 0, -1}
	}
	return f.Normalize()
}

// Viewer returns the camera state the pool needs for recycling.
func (s *Scene) Viewer() pool.Viewer {
	return pool.Viewer{Position: toVec(s.Camera.Position), Forward: s.Forward()}
}

// ViewerBox returns a cube of the given half size around the camera, for bounce collisions.
func (s *Scene) ViewerBox(half float64) bounds.Box {
	return bounds.FromCenter(toVec(s.Camera.Position), mgl64.Vec3{half, half, half})
}

// Update runs once per unpaused frame: travels forward by Speed*dt and moves the stars along.
func (s *Scene) Update(dt float32) {
	s.elapsed += dt
	step := s.Forward().Mul(float64(s.Speed * dt))
	s.Camera.Position = rl.Vector3Add(s.Camera.Position, toRL(step))
	s.Camera.Target = rl.Vector3Add(s.Camera.Target, toRL(step))
	s.syncMirror()
	if s.stars != nil {
		p := s.Camera.Position
		s.stars.Update(s.elapsed, [3]float32{p.X, p.Y, p.Z})
	}
}

// syncMirror places the mirror camera at the forward camera looking the other way.
func (s *Scene) syncMirror() {
	back := rl.Vector3Subtract(s.Camera.Position, rl.Vector3Subtract(s.Camera.Target, s.Camera.Position))
	s.Mirror = s.Camera
	s.Mirror.Target = back
}

// RenderMirror draws the rear view into the mirror texture. Call before BeginDrawing.
func (s *Scene) RenderMirror(objects []pool.SceneObject) {
	if !s.MirrorVisible {
		return
	}
	s.ensureMirror()
	rl.BeginTextureMode(s.mirrorTex)
	rl.ClearBackground(rl.Black)
	s.drawWorld(s.Mirror, objects)
	rl.EndTextureMode()
}

// ensureMirror (re)creates the render texture when the screen size changes.
func (s *Scene) ensureMirror() {
	w := int32(float32(rl.GetScreenWidth()) * mirrorWidthFrac)
	h := int32(float32(rl.GetScreenHeight()) * mirrorHeightFrac)
	if s.mirrorReady && w == s.mirrorW && h == s.mirrorH {
		return
	}
	if s.mirrorReady {
		rl.UnloadRenderTexture(s.mirrorTex)
	}
	s.mirrorTex = rl.LoadRenderTexture(w, h)
	s.mirrorW, s.mirrorH = w, h
	s.mirrorReady = true
}

// Draw renders the forward view and, when visible, the mirror at the top center.
func (s *Scene) Draw(objects []pool.SceneObject) {
	s.drawWorld(s.Camera, objects)
	if !s.MirrorVisible || !s.mirrorReady {
		return
	}
	x := (int32(rl.GetScreenWidth()) - s.mirrorW) / 2
	y := int32(mirrorMargin)
	// Render textures are stored upside down; a negative width also mirrors left/right.
	src := rl.NewRectangle(0, 0, -float32(s.mirrorW), -float32(s.mirrorH))
	rl.DrawTextureRec(s.mirrorTex.Texture, src, rl.NewVector2(float32(x), float32(y)), rl.White)
	rl.DrawRectangleLines(x-1, y-1, s.mirrorW+2, s.mirrorH+2, mirrorFrame)
}

// Unload frees GPU resources owned by the scene.
func (s *Scene) Unload() {
	if s.mirrorReady {
		rl.UnloadRenderTexture(s.mirrorTex)
		s.mirrorReady = false
	}
	s.prims.Unload()
}

func (s *Scene) drawWorld(cam rl.Camera3D, objects []pool.SceneObject) {
	rl.BeginMode3D(cam)
	if s.StarsVisible && s.stars != nil {
		drawStars(s.stars)
	}
	p := cam.Position
	light := rl.Vector3Normalize(rl.Vector3Subtract(cam.Position, cam.Target))
	s.prims.SetView([3]float32{p.X, p.Y, p.Z}, [3]float32{light.X, light.Y, light.Z})
	for _, o := range objects {
		s.prims.Draw(o)
	}
	rl.EndMode3D()
}

// drawStars draws each star as a point whose alpha follows its twinkle size.
func drawStars(f *starfield.Field) {
	for i := range f.Stars {
		p := f.WorldPosition(i)
		c := f.Stars[i].Color
		a := f.Sizes[i] / 20 * starMaxAlpha
		a = min(max(a, 0), starMaxAlpha)
		rl.DrawPoint3D(rl.NewVector3(p[0], p[1], p[2]), rl.NewColor(c[0], c[1], c[2], uint8(a)))
	}
}

func toVec(v rl.Vector3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v.X), float64(v.Y), float64(v.Z)}
}

func toRL(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v[0]), float32(v[1]), float32(v[2]))
}
