// Package shader reads GLSL sources for the ray tracing program.
package shader

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Default asset paths, relative to the working directory.
const (
	DefaultVertexPath   = "assets/shaders/pass_through.vert"
	DefaultFragmentPath = "assets/shaders/sphere_ray_tracer.frag"
)

// CountDefine is the preprocessor symbol the fragment shader sizes its sphere arrays with.
const CountDefine = "SPHERE_COUNT"

// Load reads a shader file and injects "#define SPHERE_COUNT n" right after the #version line,
// so the GPU arrays match the scene size. A source without #version gets the define first.
func Load(path string, sphereCount int) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read shader: %w", err)
	}
	return Inject(string(data), sphereCount)
}

// Inject adds the sphere count define to src.
func Inject(src string, sphereCount int) (string, error) {
	if sphereCount < 1 {
		return "", fmt.Errorf("sphere count %d: GLSL arrays need at least one element", sphereCount)
	}
	if strings.Contains(src, "#define "+CountDefine) {
		return "", errors.New("shader already defines " + CountDefine)
	}
	define := fmt.Sprintf("#define %s %d\n", CountDefine, sphereCount)
	trimmed := strings.TrimLeft(src, " \t\r\n")
	if !strings.HasPrefix(trimmed, "#version") {
		return define + src, nil
	}
	end := strings.IndexByte(trimmed, '\n')
	if end < 0 {
		return trimmed + "\n" + define, nil
	}
	return trimmed[:end+1] + define + trimmed[end+1:], nil
}

// FormatLog makes a driver compile log readable: literal "\n" sequences become newlines
// and "0:<line>" source references read as "line <line>".
func FormatLog(log string) string {
	log = strings.ReplaceAll(log, `\n`, "\n")
	log = strings.ReplaceAll(log, ": 0:", " line ")
	return strings.TrimRight(log, "\x00 \n")
}
