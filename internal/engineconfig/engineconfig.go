package engineconfig

import (
	"encoding/json"
	"os"
	"path/filepath"

	"sphere-raytracer/internal/logger"
	"sphere-raytracer/internal/scene"
	"sphere-raytracer/internal/shader"
)

// DefaultPath is the engine config file, relative to the process working directory.
const DefaultPath = "config/engine.json"

// Backends.
const (
	BackendRaylib = "raylib"
	BackendGLFW   = "glfw"
)

// EnginePrefs holds window, camera and renderer settings. Scene sampling lives in SceneFile.
type EnginePrefs struct {
	Backend          string  `json:"backend"`
	Title            string  `json:"title"`
	WindowWidth      int32   `json:"window_width"`
	WindowHeight     int32   `json:"window_height"`
	TargetFPS        int32   `json:"target_fps"`
	ShowFPS          bool    `json:"show_fps"`
	MaxBounces       int     `json:"max_bounces"`
	CameraSpeed      float32 `json:"camera_speed"`
	MouseSensitivity float32 `json:"mouse_sensitivity"`
	SceneFile        string  `json:"scene_file"`
	VertexShader     string  `json:"vertex_shader"`
	FragmentShader   string  `json:"fragment_shader"`
	LogFile          string  `json:"log_file"`
	Seed             int64   `json:"seed,omitempty"` // 0 seeds from the clock
}

// Default returns the default preferences: raylib, 1920x1080, 3 bounces.
func Default() EnginePrefs {
	return EnginePrefs{
		Backend:          BackendRaylib,
		Title:            "Go Raytracer",
		WindowWidth:      1920,
		WindowHeight:     1080,
		TargetFPS:        60,
		ShowFPS:          false,
		MaxBounces:       3,
		CameraSpeed:      30,
		MouseSensitivity: 0.08,
		SceneFile:        scene.DefaultParamsPath,
		VertexShader:     shader.DefaultVertexPath,
		FragmentShader:   shader.DefaultFragmentPath,
		LogFile:          logger.DefaultPath,
	}
}

// Load reads preferences from path on top of Default(). If the file is missing or invalid,
// returns Default() and does not create a file.
func Load(path string) (EnginePrefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p.Clamp(), nil
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, p EnginePrefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clamp replaces out-of-range values with defaults (bounces are clamped to [0,10]).
func (p EnginePrefs) Clamp() EnginePrefs {
	d := Default()
	if p.Backend != BackendRaylib && p.Backend != BackendGLFW {
		p.Backend = d.Backend
	}
	if p.WindowWidth <= 0 || p.WindowHeight <= 0 {
		p.WindowWidth, p.WindowHeight = d.WindowWidth, d.WindowHeight
	}
	if p.TargetFPS < 0 {
		p.TargetFPS = d.TargetFPS
	}
	p.MaxBounces = max(0, min(p.MaxBounces, 10))
	if p.CameraSpeed <= 0 {
		p.CameraSpeed = d.CameraSpeed
	}
	if p.MouseSensitivity <= 0 {
		p.MouseSensitivity = d.MouseSensitivity
	}
	if p.SceneFile == "" {
		p.SceneFile = d.SceneFile
	}
	if p.VertexShader == "" {
		p.VertexShader = d.VertexShader
	}
	if p.FragmentShader == "" {
		p.FragmentShader = d.FragmentShader
	}
	return p
}
