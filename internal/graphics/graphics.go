package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the window Run opens.
type Window struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	TargetFPS  int
}

// Loop is the per-frame work. Update runs first with the frame time in seconds; Offscreen
// renders into textures before the frame begins; Draw renders the frame. Any may be nil.
type Loop struct {
	Init      func()
	Update    func(dt float32)
	Offscreen func()
	Draw      func()
	Close     func()
}

// Run opens the window and drives the loop until the window is closed.
// ESC is left to the terminal; close the window to quit.
func Run(w Window, l Loop) {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if w.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	width, height := int32(w.Width), int32(w.Height)
	if w.Fullscreen {
		width, height = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	}
	rl.InitWindow(width, height, w.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	if w.TargetFPS > 0 {
		rl.SetTargetFPS(int32(w.TargetFPS))
	}
	if l.Init != nil {
		l.Init()
	}
	if l.Close != nil {
		defer l.Close()
	}

	for !rl.WindowShouldClose() {
		if l.Update != nil {
			l.Update(rl.GetFrameTime())
		}
		if l.Offscreen != nil {
			l.Offscreen()
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		if l.Draw != nil {
			l.Draw()
		}
		rl.EndDrawing()
	}
}
