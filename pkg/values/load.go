package values

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a JSON or YAML mapping. source only labels errors.
func Parse(data []byte, source string) (Map, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Map{}, nil
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("values: parse %s: invalid JSON or YAML: %w", source, err)
		}
	}
	if out == nil {
		out = map[string]any{}
	}
	return Map(out), nil
}

// LoadFile reads a values file from disk.
func LoadFile(path string) (Map, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("values: path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("values: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads a values file from fsys.
func LoadFS(fsys fs.FS, path string) (Map, error) {
	if fsys == nil {
		return nil, fmt.Errorf("values: filesystem is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("values: read %s: %w", path, err)
	}
	return Parse(data, path)
}
