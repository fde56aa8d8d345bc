package graphics

import (
	"fmt"
	"math"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"sphere-raytracer/internal/debug"
	"sphere-raytracer/internal/frame"
	"sphere-raytracer/internal/input"
	"sphere-raytracer/internal/logger"
	"sphere-raytracer/internal/shader"
)

// Config describes the window and the ray tracing program.
type Config struct {
	Title          string
	Width, Height  int32
	TargetFPS      int32
	FragmentShader string // path; the vertex stage is built in
	SphereCount    int
	ShowFPS        bool
}

// DefaultBindings maps raylib keys to actions. The keypad +/- and the main row =/- both adjust bounces.
func DefaultBindings() input.Bindings {
	return input.Bindings{
		rl.KeyW:          input.MoveForward,
		rl.KeyS:          input.MoveBack,
		rl.KeyA:          input.StrafeLeft,
		rl.KeyD:          input.StrafeRight,
		rl.KeySpace:      input.ResetScene,
		rl.KeyKpAdd:      input.IncreaseBounces,
		rl.KeyEqual:      input.IncreaseBounces,
		rl.KeyKpSubtract: input.DecreaseBounces,
		rl.KeyMinus:      input.DecreaseBounces,
		rl.KeyEscape:     input.Quit,
	}
}

var defaultBackground = rl.NewColor(77, 77, 77, 255)

// Window is the raylib host and renderer: it owns the window, the GL context and the shader.
// Every method must be called from the thread that called Open.
type Window struct {
	log        *logger.Logger
	shader     rl.Shader
	locs       map[string]int32
	bindings   input.Bindings
	keys       []int32
	queue      input.Queue
	count      int
	background rl.Color
	hud        *debug.Debug
	captured   bool
	bounces    int32
}

// Open creates the window and builds the ray tracing program. Both failures are fatal for the caller.
func Open(cfg Config, log *logger.Logger) (*Window, error) {
	fs, err := shader.Load(cfg.FragmentShader, cfg.SphereCount)
	if err != nil {
		return nil, err
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagVsyncHint)
	rl.InitWindow(cfg.Width, cfg.Height, cfg.Title)
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("raylib: window %dx%d could not be created", cfg.Width, cfg.Height)
	}
	rl.SetExitKey(rl.KeyNull) // Escape is decoded as Quit like any other binding
	if cfg.TargetFPS > 0 {
		rl.SetTargetFPS(cfg.TargetFPS)
	}

	sh := rl.LoadShaderFromMemory(fullscreenVS, fs)
	if !rl.IsShaderValid(sh) {
		rl.CloseWindow()
		return nil, fmt.Errorf("raylib: shader %s failed to build (see the raylib log above)", cfg.FragmentShader)
	}

	w := &Window{
		log:        log,
		shader:     sh,
		locs:       make(map[string]int32),
		count:      cfg.SphereCount,
		background: defaultBackground,
		hud:        debug.New(),
	}
	for _, name := range uniformNames {
		loc := rl.GetShaderLocation(sh, name)
		if loc < 0 {
			log.Logf("raylib: uniform %s is not used by the shader", name)
		}
		w.locs[name] = loc
	}
	w.SetBindings(DefaultBindings())
	w.hud.SetShowFPS(cfg.ShowFPS)
	w.hud.SetShowStats(cfg.ShowFPS)
	log.Logf("raylib: window %dx%d, %d spheres", rl.GetScreenWidth(), rl.GetScreenHeight(), cfg.SphereCount)
	return w, nil
}

var uniformNames = []string{
	frame.UniformCameraPosition,
	frame.UniformCameraLook,
	frame.UniformCameraUp,
	frame.UniformCameraRight,
	frame.UniformMaxBounces,
	frame.UniformWindowSize,
	frame.UniformSpherePosition,
	frame.UniformSphereRadii,
	frame.UniformSphereColors,
}

// fullscreenVS is raylib's default vertex stage reduced to what a full-screen rectangle needs.
const fullscreenVS = `#version 330
in vec3 vertexPosition;
uniform mat4 mvp;
void main() {
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

// SetBindings replaces the key bindings. Keys are polled in ascending key code order.
func (w *Window) SetBindings(b input.Bindings) {
	w.bindings = b
	w.keys = w.keys[:0]
	for k := range b {
		w.keys = append(w.keys, k)
	}
	sort.Slice(w.keys, func(i, j int) bool { return w.keys[i] < w.keys[j] })
}

// Poll reads the key and mouse state raylib collected during the last EndDrawing.
func (w *Window) Poll() input.Batch {
	for _, k := range w.keys {
		switch {
		case rl.IsKeyPressed(k):
			if e, ok := w.bindings.Decode(k, false); ok {
				w.queue.Push(e)
			}
		case rl.IsKeyPressedRepeat(k):
			if e, ok := w.bindings.Decode(k, true); ok {
				w.queue.Push(e)
			}
		}
	}

	if !w.captured {
		// The first delta after capturing the cursor is a jump, not a movement.
		rl.DisableCursor()
		w.captured = true
	} else if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		w.queue.AddLook(d.X, d.Y)
	}

	if rl.IsWindowResized() {
		w.log.Logf("raylib: resized to %dx%d", rl.GetScreenWidth(), rl.GetScreenHeight())
	}
	return w.queue.Drain()
}

func (w *Window) Size() (int32, int32) {
	return int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
}

func (w *Window) ShouldClose() bool { return rl.WindowShouldClose() }

// Upload sets every uniform of the ray tracing program.
func (w *Window) Upload(u *frame.Uniforms) error {
	n := u.SphereCount()
	if n != w.count {
		return fmt.Errorf("%w: shader holds %d spheres, frame has %d", frame.ErrMisaligned, w.count, n)
	}
	sh := w.shader
	rl.SetShaderValueV(sh, w.locs[frame.UniformCameraPosition], u.CameraPosition[:], rl.ShaderUniformVec3, 1)
	rl.SetShaderValueV(sh, w.locs[frame.UniformCameraLook], u.CameraLook[:], rl.ShaderUniformVec3, 1)
	rl.SetShaderValueV(sh, w.locs[frame.UniformCameraUp], u.CameraUp[:], rl.ShaderUniformVec3, 1)
	rl.SetShaderValueV(sh, w.locs[frame.UniformCameraRight], u.CameraRight[:], rl.ShaderUniformVec3, 1)
	// raylib-go only takes []float32; an int uniform travels as its bit pattern.
	bounces := []float32{math.Float32frombits(uint32(u.MaxBounces))}
	rl.SetShaderValue(sh, w.locs[frame.UniformMaxBounces], bounces, rl.ShaderUniformInt)
	rl.SetShaderValue(sh, w.locs[frame.UniformWindowSize], u.WindowSize[:], rl.ShaderUniformVec2)
	if n > 0 {
		rl.SetShaderValueV(sh, w.locs[frame.UniformSpherePosition], u.SpherePositions, rl.ShaderUniformVec3, int32(n))
		rl.SetShaderValueV(sh, w.locs[frame.UniformSphereRadii], u.SphereRadii, rl.ShaderUniformFloat, int32(n))
		rl.SetShaderValueV(sh, w.locs[frame.UniformSphereColors], u.SphereColors, rl.ShaderUniformVec3, int32(n))
	}
	w.bounces = u.MaxBounces
	return nil
}

// SetBackground sets the clear color shown where primary rays miss every sphere.
func (w *Window) SetBackground(c mgl32.Vec3) {
	w.background = rl.NewColor(channel(c[0]), channel(c[1]), channel(c[2]), 255)
}

func channel(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1) * 255)
}

// Draw clears the screen and runs the ray tracer over a full-screen rectangle, then the HUD.
func (w *Window) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(w.background)
	rl.BeginShaderMode(w.shader)
	rl.DrawRectangle(0, 0, int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()), rl.White)
	rl.EndShaderMode()
	w.hud.Draw(w.bounces, w.count)
}

// Present swaps buffers (waiting for vsync) and collects input for the next Poll.
func (w *Window) Present() {
	rl.EndDrawing()
}

// Close releases the shader and the window.
func (w *Window) Close() {
	rl.UnloadShader(w.shader)
	rl.CloseWindow()
	w.log.Log("raylib: window closed")
}
