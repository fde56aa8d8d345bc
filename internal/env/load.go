package env

import (
	"bufio"
	"errors"
	"os"
	"strings"
)

// ConfigVar names the variable that overrides the engine config path.
const ConfigVar = "RAYTRACER_CONFIG"

// Read parses KEY=VALUE lines from path. Blank lines and # comments are skipped and
// matching single or double quotes around a value are removed. A missing file yields an empty map.
func Read(path string) (map[string]string, error) {
	vars := make(map[string]string)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return vars, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		vars[key] = unquote(strings.TrimSpace(value))
	}
	return vars, scanner.Err()
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

// Load reads path (e.g. ".env") and exports every variable that is not already set,
// so the real environment wins over the file.
func Load(path string) error {
	vars, err := Read(path)
	if err != nil {
		return err
	}
	for k, v := range vars {
		if _, set := os.LookupEnv(k); set {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return err
		}
	}
	return nil
}

// ConfigPath returns $RAYTRACER_CONFIG, or def when it is unset or empty.
func ConfigPath(def string) string {
	if p := os.Getenv(ConfigVar); p != "" {
		return p
	}
	return def
}
