package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MaxPitch keeps the view from flipping over the poles.
	MaxPitch = 89
	MinPitch = -MaxPitch

	// initialYaw makes the Euler formulas produce the default look direction (0,0,-1).
	initialYaw = -90

	degenerateCross = 1e-6
)

var worldUp = mgl32.Vec3{0, 1, 0}

// Basis holds yaw/pitch in degrees and the orthonormal look/right/up frame derived from them.
// right = look x up and up = right x look, so cross(right, up) points along -look.
type Basis struct {
	yaw   float32
	pitch float32
	look  mgl32.Vec3
	up    mgl32.Vec3
	right mgl32.Vec3
}

// NewBasis returns a basis looking down -Z with +Y up (yaw -90, pitch 0).
func NewBasis() Basis {
	return Basis{
		yaw:   initialYaw,
		pitch: 0,
		look:  mgl32.Vec3{0, 0, -1},
		up:    mgl32.Vec3{0, 1, 0},
		right: mgl32.Vec3{1, 0, 0},
	}
}

// ApplyDelta adds the deltas to yaw and pitch, clamps pitch to [MinPitch, MaxPitch] and rebuilds the frame.
// The right vector is taken against the previous up, not a fixed world up, so the result depends on
// the order of calls.
func (b *Basis) ApplyDelta(yawDelta, pitchDelta float32) {
	b.yaw += yawDelta
	b.pitch = mgl32.Clamp(b.pitch+pitchDelta, MinPitch, MaxPitch)
	b.update()
}

func (b *Basis) update() {
	yaw := mgl32.DegToRad(b.yaw)
	pitch := mgl32.DegToRad(b.pitch)

	look := mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}
	b.look = look.Normalize()

	right := b.look.Cross(b.up)
	if right.Len() < degenerateCross {
		// look ended up parallel to the previous up; fall back for this step only.
		right = b.look.Cross(worldUp)
	}
	b.right = right.Normalize()
	b.up = b.right.Cross(b.look).Normalize()
}

// Yaw returns the yaw angle in degrees. It is not wrapped.
func (b *Basis) Yaw() float32 { return b.yaw }

// Pitch returns the pitch angle in degrees, always within [MinPitch, MaxPitch].
func (b *Basis) Pitch() float32 { return b.pitch }

func (b *Basis) Look() mgl32.Vec3  { return b.look }
func (b *Basis) Up() mgl32.Vec3    { return b.up }
func (b *Basis) Right() mgl32.Vec3 { return b.right }
