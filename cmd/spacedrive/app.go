package main

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jinzhu/copier"

	"spacedrive/internal/audio"
	"spacedrive/internal/commands"
	"spacedrive/internal/config"
	"spacedrive/internal/debug"
	"spacedrive/internal/logger"
	"spacedrive/internal/pool"
	"spacedrive/internal/primitives"
	"spacedrive/internal/scene"
	"spacedrive/internal/starfield"
	"spacedrive/internal/terminal"
	"spacedrive/internal/ui"
)

// app is the host around the object pool: it owns the window-side collaborators and
// drives the pool once per frame.
type app struct {
	prefs config.Prefs
	log   *logger.Logger

	pool  *pool.Pool
	stars *starfield.Field
	scene *scene.Scene
	audio *audio.Manager
	debug *debug.Debug
	reg   *commands.Registry
	term  *terminal.Terminal
	hud   *ui.Engine
	insp  *ui.Inspector
	// inspect is the object shown in the inspector while the terminal is open, or -1.
	inspect int

	paused bool
	// hold keeps the drive paused after the terminal closes.
	hold bool
	// origin is where the camera started; rebuilt pools spawn relative to the camera's offset from it.
	origin mgl64.Vec3
	// touching holds the objects that overlapped the viewer last frame, so the cue plays once per hit.
	touching map[int]bool
	objects  []pool.SceneObject
}

// newApp builds the pool and everything that does not need a window. A bad pool config is fatal.
func newApp(prefs config.Prefs, log *logger.Logger) (*app, error) {
	p, err := pool.New(prefs.PoolConfig(), pool.WithLogger(log))
	if err != nil {
		return nil, err
	}
	st := p.Stats()
	log.Logf("pool: %d objects placed in %d attempts (worst %d)", st.Objects, st.PlacementAttempts, st.WorstPlacement)

	var stars *starfield.Field
	if prefs.Stars.Count > 0 {
		opts := starfield.DefaultOptions()
		opts.Count = prefs.Stars.Count
		opts.Spread = prefs.Stars.Spread
		opts.Seed = prefs.Pool.Seed
		stars = starfield.Generate(opts)
	}

	hud, err := ui.NewHUD()
	if err != nil {
		return nil, err
	}
	insp := ui.NewInspector()
	insp.Layout(hud)

	a := &app{
		prefs:    prefs,
		log:      log,
		pool:     p,
		stars:    stars,
		scene:    scene.New(primitives.NewRegistry(), stars, float32(prefs.Drive.Speed)),
		debug:    debug.New(),
		reg:      commands.NewRegistry(),
		hud:      hud,
		insp:     insp,
		inspect:  -1,
		touching: make(map[int]bool),
	}
	a.scene.MirrorVisible = prefs.Drive.Mirror
	a.origin = a.scene.Viewer().Position
	if err := copier.Copy(a.debug, &prefs.Debug); err != nil {
		return nil, fmt.Errorf("debug overlays: %w", err)
	}
	a.term = terminal.New(log, a.reg)
	a.term.OnToggle = func(open bool) { a.setPaused(open || a.hold) }
	registerCommands(a)
	a.objects = p.Objects()
	return a, nil
}

// init runs once the window exists.
func (a *app) init() {
	ap := a.prefs.Audio
	m, err := audio.New(audio.Options{Enabled: ap.Enabled, Music: ap.Music, Bounce: ap.Bounce, Volume: ap.Volume})
	if err != nil {
		a.log.Log(err.Error())
	}
	a.audio = m
	a.audio.Play()
}

func (a *app) update(dt float32) {
	a.term.Update()
	if !a.term.IsOpen() && rl.IsKeyPressed(rl.KeyP) {
		a.hold = !a.paused
		a.setPaused(a.hold)
	}
	a.audio.Update()

	if !a.paused {
		a.pool.Tick(float64(dt))
		a.scene.Update(dt)
		a.pool.LoopObjects(a.scene.Viewer())
		a.checkBounces()
	}
	a.objects = a.pool.Objects()
}

// checkBounces pushes away every object that newly overlaps the viewer and plays the cue.
func (a *app) checkBounces() {
	viewer := a.scene.Viewer().Position
	hits := a.pool.Collide(a.scene.ViewerBox(a.prefs.Drive.ViewerRadius))
	now := make(map[int]bool, len(hits))
	for _, id := range hits {
		now[id] = true
		if a.touching[id] {
			continue
		}
		a.pool.Bounce(id, viewer)
		a.audio.PlayBounce()
	}
	a.touching = now
}

func (a *app) offscreen() {
	a.scene.RenderMirror(a.objects)
}

func (a *app) draw() {
	a.scene.Draw(a.objects)
	if a.paused && !a.term.IsOpen() {
		drawPaused()
	}
	a.term.Draw()
	if a.term.IsOpen() && a.inspect >= 0 && a.inspect < len(a.objects) {
		a.hud.SetNodes(a.insp.Nodes(a.objects[a.inspect]))
		a.hud.Draw()
	}
	a.debug.Draw(a.pool.Stats())
}

func (a *app) close() {
	a.scene.Unload()
	a.audio.Close()
}

func (a *app) setPaused(paused bool) {
	a.paused = paused
	a.audio.SetPaused(paused)
}

// rebuild replaces the pool with one built from seed, spawned around the camera's current offset.
func (a *app) rebuild(seed uint64) error {
	cfg := a.prefs.PoolConfig()
	cfg.Seed = seed
	cfg.SpawnBounds = cfg.SpawnBounds.Translate(a.scene.Viewer().Position.Sub(a.origin))
	p, err := pool.New(cfg, pool.WithLogger(a.log))
	if err != nil {
		return err
	}
	a.pool = p
	a.prefs.Pool.Seed = seed
	a.touching = make(map[int]bool)
	a.inspect = -1
	a.objects = p.Objects()
	a.log.Logf("pool: rebuilt with seed %d", seed)
	return nil
}

const pausedText = "PAUSED  (P to resume, ESC for terminal)"

func drawPaused() {
	const size = 30
	w := rl.MeasureText(pausedText, size)
	x := (int32(rl.GetScreenWidth()) - w) / 2
	y := int32(rl.GetScreenHeight())/2 - size/2
	rl.DrawText(pausedText, x, y, size, rl.RayWhite)
}

func statsSummary(s pool.Stats) string {
	return fmt.Sprintf("%s  Ticks: %d  Attempts: %d", debug.StatsLine(s), s.Ticks, s.PlacementAttempts)
}
