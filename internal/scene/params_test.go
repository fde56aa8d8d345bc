package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultParamsValid(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("DefaultParams invalid: %v", err)
	}
}

func TestLoadParamsMissingFile(t *testing.T) {
	p, err := LoadParams(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadParams: %v", err)
	}
	if p.SphereCount != DefaultParams().SphereCount {
		t.Errorf("SphereCount = %d, want default %d", p.SphereCount, DefaultParams().SphereCount)
	}
}

func TestLoadParamsOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	doc := `sphere_count: 12
min_radius: 50
max_radius: 60
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadParams(path)
	if err != nil {
		t.Fatalf("LoadParams: %v", err)
	}
	if p.SphereCount != 12 || p.MinRadius != 50 || p.MaxRadius != 60 {
		t.Errorf("got %+v", p)
	}
	if p.WorldScale != DefaultParams().WorldScale {
		t.Errorf("WorldScale = %f, want default", p.WorldScale)
	}
	if len(p.Rotations) != 3 {
		t.Errorf("got %d rotations, want 3", len(p.Rotations))
	}
}

func TestLoadParamsRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"bad radius band": "min_radius: 10\nmax_radius: 5\n",
		"zero min radius": "min_radius: 0\n",
		"two rotations":   "rotations:\n  - {angle: 0.1, axis: [0, 1, 0]}\n  - {angle: 0.1, axis: [1, 0, 0]}\n",
		"zero axis":       "rotations:\n  - {angle: 0.1, axis: [0, 0, 0]}\n  - {angle: 0.1, axis: [1, 0, 0]}\n  - {angle: 0.1, axis: [1, 0, 0]}\n",
		"not yaml":        "sphere_count: [\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scene.yaml")
			if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadParams(path); err == nil {
				t.Errorf("LoadParams accepted %q", doc)
			}
		})
	}
}
