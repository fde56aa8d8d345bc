package frame

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"

	"sphere-raytracer/internal/camera"
	"sphere-raytracer/internal/scene"
)

// MaxBounces is the upper bound of the ray tracer's bounce count.
const MaxBounces = 10

// SphereState is a value copy of one sphere for a single frame.
type SphereState struct {
	Position mgl32.Vec3
	Radius   float32
	Color    mgl32.Vec3
	Opacity  float32
}

// FrameState is everything the renderer needs for one frame. It is rebuilt every tick
// and never shares memory with the live scene.
type FrameState struct {
	CameraPosition mgl32.Vec3
	Look           mgl32.Vec3
	Up             mgl32.Vec3
	Right          mgl32.Vec3
	Spheres        []SphereState // index i is GPU array element i
	MaxBounces     int
	Viewport       [2]int32
}

// Capture builds a FrameState from the live camera and scene.
func Capture(cam *camera.Camera, spheres []*scene.Sphere, maxBounces int, viewport [2]int32) (FrameState, error) {
	fs := FrameState{
		CameraPosition: cam.Position(),
		Look:           cam.Look(),
		Up:             cam.Up(),
		Right:          cam.Right(),
		MaxBounces:     maxBounces,
		Viewport:       viewport,
	}
	// Sphere getters are copied into SphereState fields of the same name.
	states := make([]SphereState, 0, len(spheres))
	if len(spheres) == 0 {
		fs.Spheres = states
		return fs, nil
	}
	if err := copier.CopyWithOption(&states, spheres, copier.Option{DeepCopy: true, CaseSensitive: true}); err != nil {
		return FrameState{}, fmt.Errorf("snapshot spheres: %w", err)
	}
	fs.Spheres = states
	return fs, nil
}
