package layout

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/takkernel/takpkg/internal/platform"
)

func TestManifestRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	buildFixture(t, fs, "/build", linuxID, fixtureFiles)

	result, err := NewCopier(fs, nil, nil).Assemble(linuxID, "/build", "/pkg")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	desc := platform.Descriptor{OS: platform.Linux, Arch: platform.X86_64}
	m := NewManifest("takkernel", "5.1.0", desc, result)
	if err := WriteManifest(fs, ManifestPath("/pkg", linuxID), m); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}

	got, err := ReadManifest(fs, ManifestPath("/pkg", linuxID))
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if got.Identifier != linuxID {
		t.Errorf("Identifier = %q", got.Identifier)
	}
	if got.Platform != desc {
		t.Errorf("Platform = %v, want %v", got.Platform, desc)
	}
	if len(got.Files) != len(expectedPackage) {
		t.Fatalf("manifest lists %d files, want %d", len(got.Files), len(expectedPackage))
	}
	if got.Files[0].Digest != result.Files[0].Digest {
		t.Error("digest not preserved")
	}
	if got.Locations.LibDirs[0] != "linux-x86_64/lib" {
		t.Errorf("LibDirs = %v", got.Locations.LibDirs)
	}
}

func TestReadManifestMissing(t *testing.T) {
	if _, err := ReadManifest(afero.NewMemMapFs(), "/nope.yaml"); err == nil {
		t.Fatal("expected error for missing manifest")
	}
}

func TestManifestPath(t *testing.T) {
	if got := ManifestPath("/pkg", linuxID); got != "/pkg/linux-x86_64.manifest.yaml" {
		t.Errorf("ManifestPath = %q", got)
	}
}

func TestVerifyManifest(t *testing.T) {
	fs := afero.NewMemMapFs()
	buildFixture(t, fs, "/build", linuxID, fixtureFiles)
	result, err := NewCopier(fs, nil, nil).Assemble(linuxID, "/build", "/pkg")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	m := NewManifest("takkernel", "5.1.0", platform.Descriptor{OS: platform.Linux, Arch: platform.X86_64}, result)

	if err := VerifyManifest(fs, "/pkg", m); err != nil {
		t.Fatalf("fresh layout: %v", err)
	}

	writeFile(t, fs, "/pkg/linux-x86_64/lib/libtakengine.a", "tampered")
	if err := VerifyManifest(fs, "/pkg", m); !errors.Is(err, ErrManifestMismatch) {
		t.Errorf("modified file: expected ErrManifestMismatch, got %v", err)
	}

	if err := fs.Remove("/pkg/linux-x86_64/lib/libtakengine.a"); err != nil {
		t.Fatal(err)
	}
	if err := VerifyManifest(fs, "/pkg", m); !errors.Is(err, ErrManifestMismatch) {
		t.Errorf("missing file: expected ErrManifestMismatch, got %v", err)
	}
}
