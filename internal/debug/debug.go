package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"spacedrive/internal/pool"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug holds the runtime overlays (FPS, heap, pool counters). All are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowStats    bool

	frameCount uint32
	fpsText    string
	memText    string
	statsText  string
	memStats   runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// StatsLine formats pool counters for the overlay.
func StatsLine(s pool.Stats) string {
	return fmt.Sprintf("Objects: %d  Recycled: %d  Bouncing: %d  Overlaps: %d",
		s.Objects, s.Recycled, s.Bouncing, s.Overlaps)
}

// Draw renders enabled overlays at the top-right in green, one per line.
// Text is only recomputed every updateInterval frames.
func (d *Debug) Draw(stats pool.Stats) {
	d.frameCount++
	update := d.frameCount%updateInterval == 0

	y := int32(padding)
	if d.ShowFPS {
		if update || d.fpsText == "" {
			d.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.fpsText, y)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update || d.memText == "" {
			runtime.ReadMemStats(&d.memStats)
			d.memText = fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024))
		}
		drawRight(d.memText, y)
		y += lineHeight
	}
	if d.ShowStats {
		if update || d.statsText == "" {
			d.statsText = StatsLine(stats)
		}
		drawRight(d.statsText, y)
	}
}

func drawRight(text string, y int32) {
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, int32(rl.GetScreenWidth())-w-padding, y, fontSize, rl.Green)
}
