package recipe

import (
	"errors"
	"fmt"
	"os"

	"github.com/takkernel/takpkg/internal/layout"
	"github.com/takkernel/takpkg/internal/platform"
	"go.yaml.in/yaml/v3"
)

// Load parses recipe YAML. Platform names are normalized with
// platform.Parse and rules are checked with layout.ValidateRules; schema
// validation is a separate step (Validate).
func Load(data []byte) (*Recipe, error) {
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshaling YAML: %w", err)
	}
	if r.Name == "" {
		return nil, fmt.Errorf("recipe missing required 'name' field")
	}

	for i, d := range r.Platforms {
		parsed, err := platform.Parse(string(d.OS), d.Arch)
		if err != nil {
			return nil, fmt.Errorf("platforms[%d]: %w", i, err)
		}
		r.Platforms[i] = parsed
	}

	if len(r.Rules) > 0 {
		if err := layout.ValidateRules(r.Rules); err != nil {
			return nil, err
		}
	}

	return &r, nil
}

// Parse reads and parses the recipe at path.
func Parse(path string) (*Recipe, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	r, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("parsing recipe %s: %w", path, err)
	}
	return r, nil
}

// ParseOrDefault is like Parse but returns Default when path does not exist.
func ParseOrDefault(path string) (*Recipe, error) {
	r, err := Parse(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return r, err
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
