package layout

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/takkernel/takpkg/internal/platform"
	"github.com/zeebo/blake3"
	"go.yaml.in/yaml/v3"
)

// ErrManifestMismatch is returned by VerifyManifest when the layout on disk
// differs from what the manifest recorded.
var ErrManifestMismatch = errors.New("package layout does not match manifest")

// Manifest records the contents of an assembled package.
type Manifest struct {
	Name       string              `yaml:"name"`
	Version    string              `yaml:"version"`
	Platform   platform.Descriptor `yaml:"platform"`
	Identifier platform.Identifier `yaml:"identifier"`
	Locations  Locations           `yaml:"locations"`
	Files      []File              `yaml:"files"`
}

// ManifestPath returns where the manifest for id is written. It sits beside
// the platform directory so archives and --clean leave it alone.
func ManifestPath(packageRoot string, id platform.Identifier) string {
	return filepath.Join(packageRoot, id.String()+".manifest.yaml")
}

// NewManifest builds a manifest for an Assemble result.
func NewManifest(name, version string, desc platform.Descriptor, result *Result) *Manifest {
	return &Manifest{
		Name:       name,
		Version:    version,
		Platform:   desc,
		Identifier: result.Identifier,
		Locations:  Publish(result.Identifier),
		Files:      result.Files,
	}
}

// WriteManifest writes m as YAML to path, creating parent directories.
func WriteManifest(fs afero.Fs, path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating manifest directory: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(fs afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// VerifyManifest checks that every file recorded in m exists under
// packageRoot with the recorded size and digest.
func VerifyManifest(fs afero.Fs, packageRoot string, m *Manifest) error {
	for _, want := range m.Files {
		path := filepath.Join(packageRoot, filepath.FromSlash(want.Path))
		size, digest, err := digestFile(fs, path)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrManifestMismatch, err)
		}
		if size != want.Size || digest != want.Digest {
			return fmt.Errorf("%w: %s changed since it was packaged", ErrManifestMismatch, want.Path)
		}
	}
	return nil
}

func digestFile(fs afero.Fs, path string) (int64, string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return 0, "", err
	}
	defer f.Close()

	h := blake3.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return 0, "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return n, hex.EncodeToString(h.Sum(nil)), nil
}
