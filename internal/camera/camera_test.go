package camera

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const tolerance = 1e-4

func assertOrthonormal(t *testing.T, b Basis) {
	t.Helper()
	look, up, right := b.Look(), b.Up(), b.Right()
	for name, v := range map[string]mgl32.Vec3{"look": look, "up": up, "right": right} {
		if math.Abs(float64(v.Len())-1) > tolerance {
			t.Errorf("%s is not unit length: |%v| = %f", name, v, v.Len())
		}
	}
	if d := look.Dot(up); math.Abs(float64(d)) > tolerance {
		t.Errorf("look.up = %f, want 0", d)
	}
	if d := look.Dot(right); math.Abs(float64(d)) > tolerance {
		t.Errorf("look.right = %f, want 0", d)
	}
	if d := up.Dot(right); math.Abs(float64(d)) > tolerance {
		t.Errorf("up.right = %f, want 0", d)
	}
	// right x up must point backwards along look for a right-handed camera frame.
	if d := right.Cross(up).Dot(look); math.Abs(float64(d)+1) > tolerance {
		t.Errorf("(right x up).look = %f, want -1", d)
	}
}

func near(a, b mgl32.Vec3, eps float64) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > eps {
			return false
		}
	}
	return true
}

func assertVec(t *testing.T, name string, got, want mgl32.Vec3) {
	t.Helper()
	if !near(got, want, tolerance) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestNewBasisDefaults(t *testing.T) {
	b := NewBasis()
	assertVec(t, "look", b.Look(), mgl32.Vec3{0, 0, -1})
	assertVec(t, "up", b.Up(), mgl32.Vec3{0, 1, 0})
	assertVec(t, "right", b.Right(), mgl32.Vec3{1, 0, 0})
	assertOrthonormal(t, b)
}

func TestApplyDeltaZeroKeepsDefaultLook(t *testing.T) {
	b := NewBasis()
	b.ApplyDelta(0, 0)
	assertVec(t, "look", b.Look(), mgl32.Vec3{0, 0, -1})
	assertVec(t, "up", b.Up(), mgl32.Vec3{0, 1, 0})
	assertVec(t, "right", b.Right(), mgl32.Vec3{1, 0, 0})
}

func TestApplyDeltaClampsPitch(t *testing.T) {
	tests := []struct {
		name   string
		deltas []float32
		want   float32
	}{
		{"push past top", []float32{200}, MaxPitch},
		{"push past bottom", []float32{-500}, MinPitch},
		{"exact boundary", []float32{89}, 89},
		{"back from clamp", []float32{200, -10}, 79},
		{"accumulate", []float32{30, 30, 30, 30}, MaxPitch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBasis()
			for _, d := range tt.deltas {
				b.ApplyDelta(0, d)
				if b.Pitch() < MinPitch || b.Pitch() > MaxPitch {
					t.Fatalf("pitch %f left [%d, %d]", b.Pitch(), MinPitch, MaxPitch)
				}
			}
			if b.Pitch() != tt.want {
				t.Errorf("pitch = %f, want %f", b.Pitch(), tt.want)
			}
			assertOrthonormal(t, b)
		})
	}
}

func TestApplyDeltaStaysOrthonormal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := NewBasis()
	for i := 0; i < 5000; i++ {
		yaw := (rng.Float32() - 0.5) * 40
		pitch := (rng.Float32() - 0.5) * 40
		b.ApplyDelta(yaw, pitch)
		assertOrthonormal(t, b)
		if t.Failed() {
			t.Fatalf("basis degraded after %d deltas (yaw %f, pitch %f)", i+1, b.Yaw(), b.Pitch())
		}
	}
}

func TestApplyDeltaAtPoles(t *testing.T) {
	b := NewBasis()
	b.ApplyDelta(0, 500)
	assertOrthonormal(t, b)
	b.ApplyDelta(180, -500)
	assertOrthonormal(t, b)
	b.ApplyDelta(45, 500)
	assertOrthonormal(t, b)
}

func TestApplyDeltaYawIsUnbounded(t *testing.T) {
	b := NewBasis()
	for i := 0; i < 10; i++ {
		b.ApplyDelta(90, 0)
	}
	if got, want := b.Yaw(), float32(initialYaw+900); got != want {
		t.Errorf("yaw = %f, want %f", got, want)
	}
	assertOrthonormal(t, b)
}

func TestCameraTranslateForward(t *testing.T) {
	c := New(DefaultConfig())
	c.Translate(Forward)
	assertVec(t, "position", c.Position(), mgl32.Vec3{0, 0, 970})
}

func TestCameraTranslateDirections(t *testing.T) {
	tests := []struct {
		dir  Direction
		want mgl32.Vec3
	}{
		{Forward, mgl32.Vec3{0, 0, -30}},
		{Backward, mgl32.Vec3{0, 0, 30}},
		{StrafeLeft, mgl32.Vec3{-30, 0, 0}},
		{StrafeRight, mgl32.Vec3{30, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			c := New(Config{Speed: 30, Sensitivity: 0.08})
			c.Translate(tt.dir)
			assertVec(t, "position", c.Position(), tt.want)
		})
	}
}

func TestCameraTranslateRoundTrip(t *testing.T) {
	c := New(DefaultConfig())
	c.Rotate(123, -45)
	start := c.Position()

	for i := 0; i < 10; i++ {
		c.Translate(Forward)
	}
	for i := 0; i < 10; i++ {
		c.Translate(Backward)
	}
	c.Translate(StrafeLeft)
	c.Translate(StrafeRight)

	if !near(c.Position(), start, 1e-2) {
		t.Errorf("position = %v, want %v", c.Position(), start)
	}
}

func TestCameraRotateScalesBySensitivity(t *testing.T) {
	c := New(DefaultConfig())
	before := c.Basis()
	c.Translate(Forward)

	c.Rotate(10, 0)
	after := c.Basis()

	if got := after.Yaw() - before.Yaw(); math.Abs(float64(got)-0.8) > tolerance {
		t.Errorf("yaw delta = %f, want 0.8", got)
	}
	if after.Pitch() != 0 {
		t.Errorf("pitch = %f, want 0", after.Pitch())
	}

	yaw := mgl32.DegToRad(after.Yaw())
	wantLook := mgl32.Vec3{float32(math.Cos(float64(yaw))), 0, float32(math.Sin(float64(yaw)))}
	assertVec(t, "look", c.Look(), wantLook)
	assertVec(t, "right", c.Right(), wantLook.Cross(mgl32.Vec3{0, 1, 0}).Normalize())
	assertVec(t, "up", c.Up(), mgl32.Vec3{0, 1, 0})
	assertOrthonormal(t, after)

	// rotation never moves the camera
	assertVec(t, "position", c.Position(), mgl32.Vec3{0, 0, 970})
}

func TestCameraRotatePitchFollowsYOffset(t *testing.T) {
	c := New(DefaultConfig())
	c.Rotate(0, 100)
	b := c.Basis()
	if got := b.Pitch(); math.Abs(float64(got)-8) > tolerance {
		t.Errorf("pitch = %f, want 8", got)
	}
	if c.Look().Y() <= 0 {
		t.Errorf("look %v should point up after positive y offset", c.Look())
	}
}
