package scene

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultParamsPath is where the binary looks for scene parameters, relative to the working directory.
const DefaultParamsPath = "assets/scene.yaml"

// Rotation is a per-tick rotation about the origin. Angle is in radians; Axis need not be normalized.
type Rotation struct {
	Angle float32    `yaml:"angle"`
	Axis  [3]float32 `yaml:"axis"`
}

// Params controls how spheres are sampled by Generate and animated by Tick.
// The three Rotations are applied to the even, multiple-of-three and remaining indices respectively.
type Params struct {
	SphereCount   int        `yaml:"sphere_count"`
	LightCount    int        `yaml:"light_count"`
	WorldScale    float32    `yaml:"world_scale"` // edge of the sampling cube centered at the origin
	MinRadius     float32    `yaml:"min_radius"`
	MaxRadius     float32    `yaml:"max_radius"`
	RadiusJitter  float32    `yaml:"radius_jitter"` // peak-to-peak zero-mean radius change per tick
	MinTickRadius float32    `yaml:"min_tick_radius"`
	Rotations     []Rotation `yaml:"rotations"`
}

// DefaultParams returns 50 spheres and 5 lights in a 7500-unit cube, radii in [200, 1000].
func DefaultParams() Params {
	return Params{
		SphereCount:   50,
		LightCount:    5,
		WorldScale:    7500,
		MinRadius:     200,
		MaxRadius:     1000,
		RadiusJitter:  1.0 / 50,
		MinTickRadius: 1,
		Rotations: []Rotation{
			{Angle: 0.00090, Axis: [3]float32{0, 1, 0.5}},
			{Angle: 0.00110, Axis: [3]float32{0.5, 1, 1}},
			{Angle: -0.00250, Axis: [3]float32{1, 1, 0}},
		},
	}
}

// Validate reports the first parameter that would break Generate or Tick.
func (p Params) Validate() error {
	switch {
	case p.SphereCount < 0:
		return fmt.Errorf("sphere_count %d is negative", p.SphereCount)
	case p.LightCount < 0:
		return fmt.Errorf("light_count %d is negative", p.LightCount)
	case p.WorldScale <= 0:
		return fmt.Errorf("world_scale %g must be positive", p.WorldScale)
	case p.MinRadius <= 0:
		return fmt.Errorf("min_radius %g must be positive", p.MinRadius)
	case p.MaxRadius < p.MinRadius:
		return fmt.Errorf("max_radius %g is below min_radius %g", p.MaxRadius, p.MinRadius)
	case p.RadiusJitter < 0:
		return fmt.Errorf("radius_jitter %g is negative", p.RadiusJitter)
	case p.MinTickRadius <= 0:
		return fmt.Errorf("min_tick_radius %g must be positive", p.MinTickRadius)
	case len(p.Rotations) != groupCount:
		return fmt.Errorf("need exactly %d rotations, got %d", groupCount, len(p.Rotations))
	}
	for i, r := range p.Rotations {
		if r.Axis == [3]float32{} {
			return fmt.Errorf("rotation %d has a zero axis", i)
		}
	}
	return nil
}

// LoadParams reads scene parameters from a YAML file. Keys missing from the file keep their
// DefaultParams value. A missing file is not an error and yields DefaultParams.
func LoadParams(path string) (Params, error) {
	p := DefaultParams()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return p, fmt.Errorf("read scene params: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return DefaultParams(), fmt.Errorf("decode scene params: %w", err)
	}
	if err := p.Validate(); err != nil {
		return DefaultParams(), fmt.Errorf("scene params %s: %w", path, err)
	}
	return p, nil
}
