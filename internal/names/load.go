package names

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadList reads a YAML sequence of strings from path. A missing or empty
// path returns nil without error so callers can degrade to their defaults.
func LoadList(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read list %s: %w", path, err)
	}

	var entries []string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse list %s: %w", path, err)
	}
	return entries, nil
}
