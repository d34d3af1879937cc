//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/afero"
	"github.com/takkernel/takpkg/internal/layout"
	"github.com/takkernel/takpkg/internal/platform"
	"github.com/takkernel/takpkg/internal/recipe"
)

// TestFullFlowPackageAndPublish resolves every default platform, assembles
// its layout on disk, and checks the published directories hold the files.
func TestFullFlowPackageAndPublish(t *testing.T) {
	env := setupTestEnv(t)
	fs := afero.NewOsFs()
	copier := layout.NewCopier(fs, nil, nil)

	for _, d := range recipe.Default().Platforms {
		id, err := platform.Resolve(d)
		if err != nil {
			t.Fatalf("Resolve(%v): %v", d, err)
		}
		setupBuildTree(t, env.BuildRoot, id.String(), true)

		result, err := copier.Assemble(id, env.BuildRoot, env.PackageRoot)
		if err != nil {
			t.Fatalf("Assemble(%s): %v", id, err)
		}
		if len(result.Files) != 14 {
			t.Errorf("%s: copied %d files, want 14", id, len(result.Files))
		}

		locs := layout.Publish(id).Under(env.PackageRoot)
		assertFileExists(t, filepath.Join(locs.LibDirs[0], "libtakengine.a"))
		assertFileExists(t, filepath.Join(locs.LibDirs[0], "libcommo.a"))
		assertFileExists(t, filepath.Join(locs.LibDirs[0], "takkernel.pc"))
		assertFileExists(t, filepath.Join(locs.LibDirs[0], "debug", "takengined.pdb"))
		assertFileExists(t, filepath.Join(locs.IncludeDirs[0], "async++.h"))
		assertFileExists(t, filepath.Join(locs.IncludeDirs[0], "tak", "engine.h"))
		assertFileNotExists(t, filepath.Join(locs.IncludeDirs[0], "config.h"))
		assertFileNotExists(t, filepath.Join(locs.LibDirs[0], "CMakeCache.txt"))
	}
}

func TestPackageWithoutLib64(t *testing.T) {
	env := setupTestEnv(t)
	setupBuildTree(t, env.BuildRoot, "linux-x86_64", false)

	if _, err := layout.NewCopier(afero.NewOsFs(), nil, nil).Assemble("linux-x86_64", env.BuildRoot, env.PackageRoot); err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	assertFileNotExists(t, filepath.Join(env.PackageRoot, "linux-x86_64", "lib", "takkernel.pc"))
	assertFileExists(t, filepath.Join(env.PackageRoot, "linux-x86_64", "lib", "libtakengine.so"))
}

func TestRepackageIsIdempotent(t *testing.T) {
	env := setupTestEnv(t)
	setupBuildTree(t, env.BuildRoot, "android-armeabi-v7a", true)
	copier := layout.NewCopier(afero.NewOsFs(), nil, nil)

	if _, err := copier.Assemble("android-armeabi-v7a", env.BuildRoot, env.PackageRoot); err != nil {
		t.Fatalf("first Assemble: %v", err)
	}
	first := snapshot(t, env.PackageRoot)

	if _, err := copier.Assemble("android-armeabi-v7a", env.BuildRoot, env.PackageRoot); err != nil {
		t.Fatalf("second Assemble: %v", err)
	}
	second := snapshot(t, env.PackageRoot)

	if !reflect.DeepEqual(first, second) {
		t.Error("package layout changed after second run")
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	env := setupTestEnv(t)
	setupBuildTree(t, env.BuildRoot, "windows-x86_64", true)
	fs := afero.NewOsFs()

	if _, err := layout.NewCopier(fs, nil, nil).Assemble("windows-x86_64", env.BuildRoot, env.PackageRoot); err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	out := filepath.Join(t.TempDir(), layout.ArchiveName("takkernel", "5.1.0", "windows-x86_64"))
	f, err := os.Create(out)
	if err != nil {
		t.Fatal(err)
	}
	n, err := layout.WriteArchive(fs, env.PackageRoot, "windows-x86_64", f)
	f.Close()
	if err != nil {
		t.Fatalf("WriteArchive: %v", err)
	}
	if n != 14 {
		t.Errorf("archived %d files, want 14", n)
	}
	assertFileExists(t, out)
}
