package camera

import "github.com/go-gl/mathgl/mgl32"

// Direction is one discrete movement step relative to the current basis.
type Direction int

const (
	Forward Direction = iota
	Backward
	StrafeLeft
	StrafeRight
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case StrafeLeft:
		return "strafe-left"
	case StrafeRight:
		return "strafe-right"
	default:
		return "unknown"
	}
}

// Config holds the values a Camera starts with.
type Config struct {
	Position    mgl32.Vec3
	Speed       float32 // world units per Translate call
	Sensitivity float32 // degrees per input unit
}

// DefaultConfig returns a camera at (0,0,1000) moving 30 units per step with 0.08 deg per pixel.
func DefaultConfig() Config {
	return Config{
		Position:    mgl32.Vec3{0, 0, 1000},
		Speed:       30,
		Sensitivity: 0.08,
	}
}

// Camera is a free-flying camera: a position plus an orientation Basis.
// It is owned by the render loop and is not safe for concurrent use.
type Camera struct {
	position    mgl32.Vec3
	speed       float32
	sensitivity float32
	basis       Basis
}

// New returns a camera with the given config and the default orientation.
func New(cfg Config) *Camera {
	return &Camera{
		position:    cfg.Position,
		speed:       cfg.Speed,
		sensitivity: cfg.Sensitivity,
		basis:       NewBasis(),
	}
}

// Translate moves the camera one step of Speed along look or right. There are no world bounds.
func (c *Camera) Translate(d Direction) {
	switch d {
	case Forward:
		c.position = c.position.Add(c.basis.Look().Mul(c.speed))
	case Backward:
		c.position = c.position.Sub(c.basis.Look().Mul(c.speed))
	case StrafeLeft:
		c.position = c.position.Sub(c.basis.Right().Mul(c.speed))
	case StrafeRight:
		c.position = c.position.Add(c.basis.Right().Mul(c.speed))
	}
}

// Rotate turns the camera by raw input offsets (e.g. cursor pixels), scaled by Sensitivity.
// A positive yOffset looks up.
func (c *Camera) Rotate(xOffset, yOffset float32) {
	c.basis.ApplyDelta(xOffset*c.sensitivity, yOffset*c.sensitivity)
}

func (c *Camera) Position() mgl32.Vec3 { return c.position }
func (c *Camera) Look() mgl32.Vec3     { return c.basis.Look() }
func (c *Camera) Up() mgl32.Vec3       { return c.basis.Up() }
func (c *Camera) Right() mgl32.Vec3    { return c.basis.Right() }
func (c *Camera) Speed() float32       { return c.speed }
func (c *Camera) Sensitivity() float32 { return c.sensitivity }

// Basis returns a copy of the current orientation.
func (c *Camera) Basis() Basis { return c.basis }
