package frame

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"sphere-raytracer/internal/camera"
	"sphere-raytracer/internal/input"
	"sphere-raytracer/internal/logger"
	"sphere-raytracer/internal/scene"
)

// State is the render loop state.
type State int

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Host is the window side of the loop: input, size and the close button.
type Host interface {
	// Poll processes pending platform events and returns what arrived since the last call.
	Poll() input.Batch
	// Size returns the current framebuffer size in pixels.
	Size() (width, height int32)
	// ShouldClose reports whether the window was closed externally.
	ShouldClose() bool
}

// Renderer is the GPU side of the loop.
type Renderer interface {
	Upload(u *Uniforms) error
	SetBackground(color mgl32.Vec3)
	// Draw issues the full-screen ray tracing pass.
	Draw()
	// Present shows the frame; it may block on vsync.
	Present()
}

// Options configures a Loop.
type Options struct {
	SphereCount int // spheres generated on reset; also the renderer's array length
	MaxBounces  int // initial value, clamped to [0, MaxBounces]
	Log         *logger.Logger
}

// Loop runs poll, simulate, synchronize, draw and present once per tick on the calling goroutine.
// All of its state is owned by that goroutine.
type Loop struct {
	host       Host
	renderer   Renderer
	camera     *camera.Camera
	scene      *scene.Manager
	log        *logger.Logger
	count      int
	maxBounces int
	state      State
	frames     uint64
	uniforms   Uniforms
}

// NewLoop returns a running loop. The scene should already be generated.
func NewLoop(host Host, renderer Renderer, cam *camera.Camera, mgr *scene.Manager, opts Options) *Loop {
	log := opts.Log
	if log == nil {
		log = logger.New("")
	}
	return &Loop{
		host:       host,
		renderer:   renderer,
		camera:     cam,
		scene:      mgr,
		log:        log,
		count:      opts.SphereCount,
		maxBounces: clampBounces(opts.MaxBounces),
		state:      Running,
	}
}

func clampBounces(n int) int {
	return max(0, min(n, MaxBounces))
}

func (l *Loop) State() State       { return l.state }
func (l *Loop) MaxBounces() int    { return l.maxBounces }
func (l *Loop) Frames() uint64     { return l.frames }
func (l *Loop) Uniforms() Uniforms { return l.uniforms }

// AdjustBounces adds delta to the bounce count, clamped to [0, MaxBounces], and returns the new value.
func (l *Loop) AdjustBounces(delta int) int {
	n := clampBounces(l.maxBounces + delta)
	if n != l.maxBounces {
		l.log.Logf("max bounces: %d", n)
	}
	l.maxBounces = n
	return n
}

// Terminate stops the loop. It is idempotent.
func (l *Loop) Terminate(reason string) {
	if l.state == Terminated {
		return
	}
	l.state = Terminated
	l.log.Logf("render loop terminated after %d frames: %s", l.frames, reason)
}

// Reset regenerates the scene and picks a new background color.
func (l *Loop) Reset() {
	l.scene.Generate(l.count)
	l.renderer.SetBackground(l.scene.RandomColor())
	l.log.Logf("scene reset: %d spheres, %d lights", l.scene.Len(), len(l.scene.Lights()))
}

// Apply feeds one tick's input to the camera, the scene and the loop itself.
func (l *Loop) Apply(b input.Batch) {
	for _, e := range b.Events {
		if e.Repeat && !e.Action.Repeats() {
			continue
		}
		switch e.Action {
		case input.MoveForward:
			l.camera.Translate(camera.Forward)
		case input.MoveBack:
			l.camera.Translate(camera.Backward)
		case input.StrafeLeft:
			l.camera.Translate(camera.StrafeLeft)
		case input.StrafeRight:
			l.camera.Translate(camera.StrafeRight)
		case input.ResetScene:
			l.Reset()
		case input.IncreaseBounces:
			l.AdjustBounces(1)
		case input.DecreaseBounces:
			l.AdjustBounces(-1)
		case input.Quit:
			l.Terminate("quit requested")
		}
	}
	if b.Look != (mgl32.Vec2{}) {
		// Screen y grows downwards; moving the cursor up looks up.
		l.camera.Rotate(b.Look.X(), -b.Look.Y())
	}
}

// Snapshot captures the current frame state.
func (l *Loop) Snapshot() (FrameState, error) {
	w, h := l.host.Size()
	return Capture(l.camera, l.scene.Spheres(), l.maxBounces, [2]int32{w, h})
}

// Step runs a single tick. Any error is fatal: the loop is terminated and the error returned.
func (l *Loop) Step() error {
	if l.state == Terminated {
		return nil
	}
	l.Apply(l.host.Poll())
	if l.state == Terminated {
		return nil
	}

	l.scene.Tick()

	fs, err := l.Snapshot()
	if err != nil {
		return l.fail(err)
	}
	if err := l.uniforms.Encode(fs); err != nil {
		return l.fail(err)
	}
	if err := l.uniforms.Check(l.count); err != nil {
		return l.fail(err)
	}
	if err := l.renderer.Upload(&l.uniforms); err != nil {
		return l.fail(fmt.Errorf("upload uniforms: %w", err))
	}
	l.renderer.Draw()
	l.renderer.Present()
	l.frames++
	return nil
}

func (l *Loop) fail(err error) error {
	err = fmt.Errorf("frame %d: %w", l.frames, err)
	l.Terminate(err.Error())
	return err
}

// Run steps until the loop terminates, the window closes or ctx is done.
// Cancellation is only observed between ticks.
func (l *Loop) Run(ctx context.Context) error {
	for l.state == Running {
		if ctx.Err() != nil {
			l.Terminate("context done")
			break
		}
		if l.host.ShouldClose() {
			l.Terminate("window closed")
			break
		}
		if err := l.Step(); err != nil {
			return err
		}
	}
	return nil
}
