package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Tick groups. Index i belongs to GroupEven if i%2 == 0, otherwise to GroupThird if i%3 == 0,
// otherwise to GroupRest. Multiples of 6 are therefore GroupEven.
const (
	GroupEven = iota
	GroupThird
	GroupRest
	groupCount
)

// Group returns the tick group of the sphere at index i.
func Group(i int) int {
	switch {
	case i%2 == 0:
		return GroupEven
	case i%3 == 0:
		return GroupThird
	default:
		return GroupRest
	}
}

// Manager owns the ordered sphere collection and the lights. Sphere order is the GPU array
// index and never changes between Generate calls.
// A Manager is driven from a single goroutine; it owns its random source.
type Manager struct {
	params    Params
	rng       Rand
	rotations [groupCount]mgl32.Mat3
	spheres   []*Sphere
	lights    []Light
}

// NewManager returns an empty manager. Call Generate to populate it.
// params must satisfy Params.Validate.
func NewManager(params Params, rng Rand) *Manager {
	m := &Manager{params: params, rng: rng}
	for i, r := range params.Rotations[:groupCount] {
		axis := mgl32.Vec3(r.Axis).Normalize()
		m.rotations[i] = mgl32.HomogRotate3D(r.Angle, axis).Mat3()
	}
	return m
}

// Params returns the parameters the manager was built with.
func (m *Manager) Params() Params { return m.params }

// Generate replaces every sphere and light with freshly sampled ones. Negative counts are treated as zero.
func (m *Manager) Generate(count int) {
	if count < 0 {
		count = 0
	}
	spheres := make([]*Sphere, count)
	for i := range spheres {
		position := m.randomPosition()
		radius := m.params.MinRadius + (m.params.MaxRadius-m.params.MinRadius)*m.rng.Float32()
		color := m.RandomColor()
		spheres[i] = NewSphere(position, radius, color, m.rng.Float32())
	}
	m.spheres = spheres

	lights := make([]Light, m.params.LightCount)
	for i := range lights {
		lights[i] = Light{Position: m.randomPosition(), Color: m.RandomColor()}
	}
	m.lights = lights
}

// Tick advances every sphere by one frame: rotate about the origin by its group's rotation, then
// jitter the radius. Radius is floored at MinTickRadius; it may still grow without bound.
func (m *Manager) Tick() {
	for i, s := range m.spheres {
		s.SetPosition(m.rotations[Group(i)].Mul3x1(s.Position()))

		r := s.Radius() + (m.rng.Float32()-0.5)*m.params.RadiusJitter
		if r < m.params.MinTickRadius {
			r = m.params.MinTickRadius
		}
		s.SetRadius(r)
	}
}

// RandomColor returns a color with each channel uniform in [0,1).
func (m *Manager) RandomColor() mgl32.Vec3 {
	return mgl32.Vec3{m.rng.Float32(), m.rng.Float32(), m.rng.Float32()}
}

func (m *Manager) randomPosition() mgl32.Vec3 {
	return mgl32.Vec3{
		m.rng.Float32() - 0.5,
		m.rng.Float32() - 0.5,
		m.rng.Float32() - 0.5,
	}.Mul(m.params.WorldScale)
}

// Spheres returns the live collection in GPU index order. Callers must not reorder it.
func (m *Manager) Spheres() []*Sphere { return m.spheres }

// Lights returns the current lights.
func (m *Manager) Lights() []Light { return m.lights }

// Len returns the number of spheres.
func (m *Manager) Len() int { return len(m.spheres) }
