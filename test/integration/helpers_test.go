//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	BuildRoot   string // pre-built artifact tree: <BuildRoot>/<id>/...
	PackageRoot string // package layout output
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{
		BuildRoot:   t.TempDir(),
		PackageRoot: t.TempDir(),
	}
}

// setupBuildTree writes one artifact per copy rule for id, plus a
// top-level header and a non-artifact file that must not be packaged.
func setupBuildTree(t *testing.T, buildRoot, id string, withLib64 bool) {
	t.Helper()
	root := filepath.Join(buildRoot, id)

	files := []string{
		"include/tak/engine.h",
		"include/formats/dted.h",
		"include/async++.h",
		"include/config.h",
		"lib/libtakengine.a",
		"lib/libtakengine.so",
		"lib/libtakengine.dylib",
		"lib/takengine.dll",
		"lib/takengine.lib",
		"lib/takengine.pdb",
		"lib/debug/takengined.dll",
		"lib/debug/takengined.lib",
		"lib/debug/takengined.pdb",
		"lib/CMakeCache.txt",
	}
	if withLib64 {
		files = append(files, "lib64/libcommo.a", "lib64/takkernel.pc")
	}

	for _, f := range files {
		writeFile(t, filepath.Join(root, filepath.FromSlash(f)), "artifact "+f)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file to not exist: %s", path)
	}
}

// snapshot maps every file under root to its contents.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", root, err)
	}
	return out
}
