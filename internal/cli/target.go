package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/takkernel/takpkg/internal/config"
	"github.com/takkernel/takpkg/internal/platform"
	"github.com/takkernel/takpkg/internal/recipe"
)

// fsys is the filesystem commands operate on. Tests swap in a MemMapFs.
var fsys afero.Fs = afero.NewOsFs()

// targetDescriptor returns the platform to package for. Values from flags
// or config win; anything left unset falls back to the host.
func targetDescriptor(s config.Settings) (platform.Descriptor, error) {
	osName, arch := s.OS, s.Arch
	if osName == "" || arch == "" {
		host, err := platform.Detect()
		if err != nil {
			return platform.Descriptor{}, fmt.Errorf("no --os/--arch given: %w", err)
		}
		if osName == "" {
			osName = string(host.OS)
		}
		if arch == "" {
			arch = host.Arch
		}
	}
	return platform.Parse(osName, arch)
}

// targets returns the descriptors for this run: every recipe platform when
// all is set, otherwise the single target.
func targets(s config.Settings, r *recipe.Recipe, all bool) ([]platform.Descriptor, error) {
	if !all {
		d, err := targetDescriptor(s)
		if err != nil {
			return nil, err
		}
		return []platform.Descriptor{d}, nil
	}
	if len(r.Platforms) == 0 {
		return nil, fmt.Errorf("recipe %q declares no platforms", r.Name)
	}
	return r.Platforms, nil
}

// loadRecipe reads the configured recipe, or ./takpkg.yaml, falling back
// to the built-in recipe when the default file is absent.
func loadRecipe(s config.Settings) (*recipe.Recipe, error) {
	if s.Recipe != "" {
		return recipe.Parse(s.Recipe)
	}
	return recipe.ParseOrDefault(recipe.DefaultFileName)
}
