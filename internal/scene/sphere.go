package scene

import "github.com/go-gl/mathgl/mgl32"

// Sphere is one ray-traced scene object. Position and radius are mutated every tick;
// color and opacity are fixed at creation. Nothing is validated here: the Manager keeps radius > 0.
type Sphere struct {
	position mgl32.Vec3
	radius   float32
	color    mgl32.Vec3 // channels in [0,1]
	opacity  float32    // in [0,1]; not uploaded to the renderer
}

// NewSphere returns a sphere with the given attributes.
func NewSphere(position mgl32.Vec3, radius float32, color mgl32.Vec3, opacity float32) *Sphere {
	return &Sphere{
		position: position,
		radius:   radius,
		color:    color,
		opacity:  opacity,
	}
}

func (s Sphere) Position() mgl32.Vec3 { return s.position }
func (s Sphere) Radius() float32      { return s.radius }
func (s Sphere) Color() mgl32.Vec3    { return s.color }
func (s Sphere) Opacity() float32     { return s.opacity }

func (s *Sphere) SetPosition(p mgl32.Vec3) { s.position = p }
func (s *Sphere) SetRadius(r float32)      { s.radius = r }
