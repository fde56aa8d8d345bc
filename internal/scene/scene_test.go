package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func newTestManager(seed int64) *Manager {
	return NewManager(DefaultParams(), NewRand(seed))
}

func TestGenerateCountAndRanges(t *testing.T) {
	m := newTestManager(1)
	m.Generate(50)

	if m.Len() != 50 {
		t.Fatalf("Len() = %d, want 50", m.Len())
	}
	p := m.Params()
	half := p.WorldScale / 2
	for i, s := range m.Spheres() {
		if s.Radius() < p.MinRadius || s.Radius() > p.MaxRadius {
			t.Errorf("sphere %d radius %f outside [%f, %f]", i, s.Radius(), p.MinRadius, p.MaxRadius)
		}
		for c := 0; c < 3; c++ {
			if s.Color()[c] < 0 || s.Color()[c] > 1 {
				t.Errorf("sphere %d color %v outside [0,1]", i, s.Color())
			}
			if math.Abs(float64(s.Position()[c])) > float64(half) {
				t.Errorf("sphere %d position %v outside cube of half-width %f", i, s.Position(), half)
			}
		}
		if s.Opacity() < 0 || s.Opacity() > 1 {
			t.Errorf("sphere %d opacity %f outside [0,1]", i, s.Opacity())
		}
	}
	if len(m.Lights()) != p.LightCount {
		t.Errorf("got %d lights, want %d", len(m.Lights()), p.LightCount)
	}
}

func TestGenerateReplacesCollection(t *testing.T) {
	m := newTestManager(2)
	m.Generate(10)
	first := m.Spheres()[0]

	m.Generate(3)
	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
	for _, s := range m.Spheres() {
		if s == first {
			t.Errorf("Generate reused a sphere from the previous scene")
		}
	}
}

func TestGenerateZeroAndNegative(t *testing.T) {
	m := newTestManager(3)
	m.Generate(0)
	if m.Len() != 0 {
		t.Errorf("Generate(0) gave %d spheres", m.Len())
	}
	m.Generate(-4)
	if m.Len() != 0 {
		t.Errorf("Generate(-4) gave %d spheres", m.Len())
	}
	m.Tick()
}

func TestGenerateSeededIsReproducible(t *testing.T) {
	a := newTestManager(42)
	b := newTestManager(42)
	a.Generate(20)
	b.Generate(20)
	for i := range a.Spheres() {
		if *a.Spheres()[i] != *b.Spheres()[i] {
			t.Fatalf("sphere %d differs: %+v vs %+v", i, *a.Spheres()[i], *b.Spheres()[i])
		}
	}
}

func TestGroupFirstMatchWins(t *testing.T) {
	tests := []struct {
		indices []int
		want    int
	}{
		{[]int{0, 2, 4, 6, 8, 12, 18, 30}, GroupEven},
		{[]int{3, 9, 15, 21, 27}, GroupThird},
		{[]int{1, 5, 7, 11, 13, 25}, GroupRest},
	}
	for _, tt := range tests {
		for _, i := range tt.indices {
			if got := Group(i); got != tt.want {
				t.Errorf("Group(%d) = %d, want %d", i, got, tt.want)
			}
		}
	}
}

func TestTickRotatesByGroup(t *testing.T) {
	m := newTestManager(5)
	m.Generate(50)

	before := make([]mgl32.Vec3, m.Len())
	for i, s := range m.Spheres() {
		before[i] = s.Position()
	}

	m.Tick()

	rots := m.Params().Rotations
	for i, s := range m.Spheres() {
		r := rots[Group(i)]
		want := mgl32.QuatRotate(r.Angle, mgl32.Vec3(r.Axis).Normalize()).Rotate(before[i])
		got := s.Position()
		for c := 0; c < 3; c++ {
			if math.Abs(float64(got[c]-want[c])) > 1e-2 {
				t.Errorf("sphere %d (group %d): position %v, want %v", i, Group(i), got, want)
				break
			}
		}
		if d := math.Abs(float64(got.Len() - before[i].Len())); d > 1e-2 {
			t.Errorf("sphere %d: distance from origin changed by %f", i, d)
		}
	}
}

func TestTickGroupsRotateDifferently(t *testing.T) {
	m := newTestManager(6)
	m.Generate(0)
	p := mgl32.Vec3{1000, 500, -250}
	m.spheres = []*Sphere{
		NewSphere(p, 300, mgl32.Vec3{}, 1), // 0: even
		NewSphere(p, 300, mgl32.Vec3{}, 1), // 1: rest
		NewSphere(p, 300, mgl32.Vec3{}, 1), // 2: even
		NewSphere(p, 300, mgl32.Vec3{}, 1), // 3: third
	}
	m.Tick()
	s := m.Spheres()
	if s[0].Position() != s[2].Position() {
		t.Errorf("same group, same start, different result: %v vs %v", s[0].Position(), s[2].Position())
	}
	if s[0].Position() == s[1].Position() || s[0].Position() == s[3].Position() || s[1].Position() == s[3].Position() {
		t.Errorf("groups should rotate differently: %v %v %v", s[0].Position(), s[1].Position(), s[3].Position())
	}
}

func TestTickRadiusJitterIsSmall(t *testing.T) {
	m := newTestManager(7)
	m.Generate(50)
	before := make([]float32, m.Len())
	for i, s := range m.Spheres() {
		before[i] = s.Radius()
	}
	m.Tick()
	limit := m.Params().RadiusJitter/2 + 1e-4
	for i, s := range m.Spheres() {
		if d := s.Radius() - before[i]; d < -limit || d > limit {
			t.Errorf("sphere %d radius changed by %f, limit %f", i, d, limit)
		}
	}
}

func TestTickKeepsRadiusPositive(t *testing.T) {
	params := DefaultParams()
	params.RadiusJitter = 50
	m := NewManager(params, NewRand(8))
	m.Generate(0)
	m.spheres = []*Sphere{NewSphere(mgl32.Vec3{1, 2, 3}, params.MinTickRadius, mgl32.Vec3{1, 1, 1}, 1)}
	for i := 0; i < 1000; i++ {
		m.Tick()
		if r := m.Spheres()[0].Radius(); r < params.MinTickRadius {
			t.Fatalf("tick %d: radius %f below %f", i, r, params.MinTickRadius)
		}
	}
}

func TestTickPreservesOrder(t *testing.T) {
	m := newTestManager(9)
	m.Generate(12)
	ptrs := append([]*Sphere(nil), m.Spheres()...)
	for i := 0; i < 5; i++ {
		m.Tick()
	}
	for i, s := range m.Spheres() {
		if s != ptrs[i] {
			t.Fatalf("sphere %d moved in the collection", i)
		}
	}
}

func TestRandomColorInRange(t *testing.T) {
	m := newTestManager(10)
	for i := 0; i < 100; i++ {
		c := m.RandomColor()
		for _, v := range c {
			if v < 0 || v > 1 {
				t.Fatalf("color %v outside [0,1]", c)
			}
		}
	}
}
