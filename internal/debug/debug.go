package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug draws the HUD in the top-right corner: FPS and heap, then ray tracer stats. All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowStats    bool
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastStats    string
	lastBounces  int32
	lastSpheres  int
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{lastBounces: -1}
}

// SetShowFPS sets whether FPS and heap allocation are drawn.
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowStats sets whether the bounce and sphere counts are drawn.
func (d *Debug) SetShowStats(show bool) {
	d.ShowStats = show
}

// StatsText formats the ray tracer stats line.
func StatsText(bounces int32, spheres int) string {
	return fmt.Sprintf("Bounces: %d  Spheres: %d", bounces, spheres)
}

// Draw renders the enabled overlays. Call between BeginDrawing and EndDrawing, after the scene.
// FPS and memory text is only recomputed every updateInterval frames; stats whenever they change.
func (d *Debug) Draw(bounces int32, spheres int) {
	d.frameCount++
	update := d.frameCount%updateInterval == 0 || d.lastFpsText == ""

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	line := func(text string) {
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}

	if d.ShowFPS {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(d.lastMemStats.Alloc)/(1024*1024))
		}
		line(d.lastFpsText)
		line(d.lastMemText)
	}

	if d.ShowStats {
		if bounces != d.lastBounces || spheres != d.lastSpheres {
			d.lastStats = StatsText(bounces, spheres)
			d.lastBounces, d.lastSpheres = bounces, spheres
		}
		line(d.lastStats)
	}
}
