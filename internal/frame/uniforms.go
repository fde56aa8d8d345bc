package frame

import (
	"errors"
	"fmt"
)

// Uniform names of the ray tracing program.
const (
	UniformCameraPosition = "camera_position"
	UniformCameraLook     = "camera_look_direction_normalized"
	UniformCameraUp       = "camera_up_direction_normalized"
	UniformCameraRight    = "camera_right_direction_normalized"
	UniformMaxBounces     = "raytracing_max_bounces"
	UniformWindowSize     = "window_size"
	UniformSpherePosition = "sphere_positions"
	UniformSphereRadii    = "sphere_radii"
	UniformSphereColors   = "sphere_colors"
)

var (
	// ErrMisaligned means the columnar sphere arrays do not describe the same spheres.
	ErrMisaligned = errors.New("sphere arrays misaligned")
	// ErrBounces means the bounce count left [0, MaxBounces].
	ErrBounces = errors.New("max bounces out of range")
)

// Uniforms is the columnar form of a FrameState, ready for upload. Sphere i occupies
// SpherePositions[3i:3i+3], SphereRadii[i] and SphereColors[3i:3i+3].
// A Uniforms value is reused across frames so the per-frame slices are not reallocated.
type Uniforms struct {
	CameraPosition  [3]float32
	CameraLook      [3]float32
	CameraUp        [3]float32
	CameraRight     [3]float32
	MaxBounces      int32
	WindowSize      [2]float32
	SpherePositions []float32
	SphereRadii     []float32
	SphereColors    []float32
}

// Encode overwrites u with the contents of fs.
func (u *Uniforms) Encode(fs FrameState) error {
	if fs.MaxBounces < 0 || fs.MaxBounces > MaxBounces {
		return fmt.Errorf("%w: %d", ErrBounces, fs.MaxBounces)
	}
	u.CameraPosition = fs.CameraPosition
	u.CameraLook = fs.Look
	u.CameraUp = fs.Up
	u.CameraRight = fs.Right
	u.MaxBounces = int32(fs.MaxBounces)
	u.WindowSize = [2]float32{float32(fs.Viewport[0]), float32(fs.Viewport[1])}

	u.SpherePositions = u.SpherePositions[:0]
	u.SphereRadii = u.SphereRadii[:0]
	u.SphereColors = u.SphereColors[:0]
	for _, s := range fs.Spheres {
		u.SpherePositions = append(u.SpherePositions, s.Position[:]...)
		u.SphereRadii = append(u.SphereRadii, s.Radius)
		u.SphereColors = append(u.SphereColors, s.Color[:]...)
	}
	return u.Check(len(fs.Spheres))
}

// SphereCount returns the number of spheres encoded.
func (u *Uniforms) SphereCount() int { return len(u.SphereRadii) }

// Check verifies that the three sphere arrays hold exactly count spheres.
func (u *Uniforms) Check(count int) error {
	if len(u.SphereRadii) != count || len(u.SpherePositions) != 3*count || len(u.SphereColors) != 3*count {
		return fmt.Errorf("%w: want %d spheres, have %d positions, %d radii, %d colors",
			ErrMisaligned, count, len(u.SpherePositions)/3, len(u.SphereRadii), len(u.SphereColors)/3)
	}
	return nil
}
