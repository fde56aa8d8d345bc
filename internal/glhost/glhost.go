// Package glhost runs the ray tracer on a GLFW window with a raw OpenGL 3.3 core context.
package glhost

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"sphere-raytracer/internal/frame"
	"sphere-raytracer/internal/input"
	"sphere-raytracer/internal/logger"
	"sphere-raytracer/internal/shader"
)

// Config describes the window and the shader sources.
type Config struct {
	Title          string
	Width, Height  int32
	VertexShader   string
	FragmentShader string
	SphereCount    int
}

// DefaultBindings maps GLFW keys to actions.
func DefaultBindings() input.Bindings {
	return input.Bindings{
		int32(glfw.KeyW):          input.MoveForward,
		int32(glfw.KeyS):          input.MoveBack,
		int32(glfw.KeyA):          input.StrafeLeft,
		int32(glfw.KeyD):          input.StrafeRight,
		int32(glfw.KeySpace):      input.ResetScene,
		int32(glfw.KeyKPAdd):      input.IncreaseBounces,
		int32(glfw.KeyEqual):      input.IncreaseBounces,
		int32(glfw.KeyKPSubtract): input.DecreaseBounces,
		int32(glfw.KeyMinus):      input.DecreaseBounces,
		int32(glfw.KeyEscape):     input.Quit,
	}
}

// fullScreen is a quad in clip space, drawn as a triangle fan.
var fullScreen = []float32{
	-1, -1, 0,
	-1, 1, 0,
	1, 1, 0,
	1, -1, 0,
}

// Window owns the GLFW window, the GL context and the ray tracing program.
// It must be opened and used on the main, locked OS thread.
type Window struct {
	log      *logger.Logger
	window   *glfw.Window
	program  uint32
	vao, vbo uint32
	locs     map[string]int32
	bindings input.Bindings
	queue    input.Queue
	count    int
	width    int32
	height   int32

	firstMouse   bool
	lastX, lastY float64
}

// Open initialises GLFW, creates the window and builds the program.
func Open(cfg Config, log *logger.Logger) (*Window, error) {
	vs, err := shader.Load(cfg.VertexShader, cfg.SphereCount)
	if err != nil {
		return nil, err
	}
	fs, err := shader.Load(cfg.FragmentShader, cfg.SphereCount)
	if err != nil {
		return nil, err
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(int(cfg.Width), int(cfg.Height), cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw create window: %w", err)
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}
	glfw.SwapInterval(1)

	program, err := linkProgram(vs, fs)
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, err
	}

	w := &Window{
		log:        log,
		window:     win,
		program:    program,
		locs:       make(map[string]int32),
		bindings:   DefaultBindings(),
		count:      cfg.SphereCount,
		firstMouse: true,
	}
	fbw, fbh := win.GetFramebufferSize()
	w.width, w.height = int32(fbw), int32(fbh)

	w.initQuad()
	gl.UseProgram(program)
	for _, name := range uniformNames {
		loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
		if loc < 0 {
			log.Logf("glfw: uniform %s is not used by the shader", name)
		}
		w.locs[name] = loc
	}

	gl.Viewport(0, 0, w.width, w.height)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0.3, 0.3, 0.3, 1.0)

	win.SetKeyCallback(w.onKey)
	win.SetFramebufferSizeCallback(w.onResize)
	win.SetCursorPosCallback(w.onCursor)
	win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	log.Logf("glfw: window %dx%d, OpenGL %s, %d spheres", w.width, w.height, gl.GoStr(gl.GetString(gl.VERSION)), cfg.SphereCount)
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

func (w *Window) initQuad() {
	gl.GenVertexArrays(1, &w.vao)
	gl.BindVertexArray(w.vao)
	gl.GenBuffers(1, &w.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(fullScreen)*4, gl.Ptr(fullScreen), gl.STATIC_DRAW)

	position := uint32(gl.GetAttribLocation(w.program, gl.Str("position\x00")))
	gl.VertexAttribPointer(position, 3, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(position)
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csources, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(sh, 1, csources, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(sh, logLen, nil, &log[0])
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("shader compile:\n%s", shader.FormatLog(string(log)))
	}
	return sh, nil
}

func linkProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := compileShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex %w", err)
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment %w", err)
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("program link:\n%s", shader.FormatLog(string(log)))
	}
	return program, nil
}

func (w *Window) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action == glfw.Release {
		return
	}
	if e, ok := w.bindings.Decode(int32(key), action == glfw.Repeat); ok {
		w.queue.Push(e)
	}
}

func (w *Window) onResize(_ *glfw.Window, width, height int) {
	w.width, w.height = int32(width), int32(height)
	gl.Viewport(0, 0, w.width, w.height)
}

func (w *Window) onCursor(_ *glfw.Window, x, y float64) {
	if w.firstMouse {
		w.lastX, w.lastY = x, y
		w.firstMouse = false
		return
	}
	w.queue.AddLook(float32(x-w.lastX), float32(y-w.lastY))
	w.lastX, w.lastY = x, y
}

// Poll runs the GLFW callbacks and returns what they queued.
func (w *Window) Poll() input.Batch {
	glfw.PollEvents()
	return w.queue.Drain()
}

func (w *Window) Size() (int32, int32) { return w.width, w.height }

func (w *Window) ShouldClose() bool { return w.window.ShouldClose() }

// Upload sets every uniform of the ray tracing program.
func (w *Window) Upload(u *frame.Uniforms) error {
	n := u.SphereCount()
	if n != w.count {
		return fmt.Errorf("%w: shader holds %d spheres, frame has %d", frame.ErrMisaligned, w.count, n)
	}
	gl.UseProgram(w.program)
	gl.Uniform3fv(w.locs[frame.UniformCameraPosition], 1, &u.CameraPosition[0])
	gl.Uniform3fv(w.locs[frame.UniformCameraLook], 1, &u.CameraLook[0])
	gl.Uniform3fv(w.locs[frame.UniformCameraUp], 1, &u.CameraUp[0])
	gl.Uniform3fv(w.locs[frame.UniformCameraRight], 1, &u.CameraRight[0])
	gl.Uniform1i(w.locs[frame.UniformMaxBounces], u.MaxBounces)
	gl.Uniform2fv(w.locs[frame.UniformWindowSize], 1, &u.WindowSize[0])
	if n > 0 {
		gl.Uniform3fv(w.locs[frame.UniformSpherePosition], int32(n), &u.SpherePositions[0])
		gl.Uniform1fv(w.locs[frame.UniformSphereRadii], int32(n), &u.SphereRadii[0])
		gl.Uniform3fv(w.locs[frame.UniformSphereColors], int32(n), &u.SphereColors[0])
	}
	return nil
}

func (w *Window) SetBackground(c mgl32.Vec3) {
	gl.ClearColor(c[0], c[1], c[2], 1.0)
}

func (w *Window) Draw() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(w.program)
	gl.BindVertexArray(w.vao)
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, 4)
}

// Present swaps buffers; with a swap interval of 1 this waits for vsync.
func (w *Window) Present() {
	w.window.SwapBuffers()
}

// Close releases GL objects and terminates GLFW.
func (w *Window) Close() {
	gl.DeleteBuffers(1, &w.vbo)
	gl.DeleteVertexArrays(1, &w.vao)
	gl.DeleteProgram(w.program)
	w.window.Destroy()
	glfw.Terminate()
	w.log.Log("glfw: window closed")
}
