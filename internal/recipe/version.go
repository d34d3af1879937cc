package recipe

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// NormalizeVersion parses a release version, tolerating a leading "v", and
// returns its canonical form (e.g. "v5.1" -> "5.1.0").
func NormalizeVersion(version string) (string, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return "", fmt.Errorf("package version is not set")
	}
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return "", fmt.Errorf("parsing package version %q: %w", version, err)
	}
	return v.String(), nil
}

// ResolveVersion picks the version for a run: an explicit override (from
// flags or config) wins over the recipe's own version.
func (r *Recipe) ResolveVersion(override string) (string, error) {
	if override != "" {
		return NormalizeVersion(override)
	}
	return NormalizeVersion(r.Version)
}
