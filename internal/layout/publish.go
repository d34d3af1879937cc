package layout

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/takkernel/takpkg/internal/platform"
)

// Locations are the directories a downstream build adds to its search
// paths. Entries are slash-separated and relative to the package root
// unless produced by Under.
type Locations struct {
	LibDirs     []string `yaml:"lib_dirs" json:"lib_dirs"`
	IncludeDirs []string `yaml:"include_dirs" json:"include_dirs"`
}

// Publish returns the locations for id. It does not touch the filesystem
// and assumes Assemble has already populated the layout.
func Publish(id platform.Identifier) Locations {
	return Locations{
		LibDirs:     []string{path.Join(id.String(), "lib")},
		IncludeDirs: []string{path.Join(id.String(), "include")},
	}
}

// Under returns a copy of l with every entry joined onto root using the
// host path separator.
func (l Locations) Under(root string) Locations {
	join := func(dirs []string) []string {
		out := make([]string, len(dirs))
		for i, d := range dirs {
			out[i] = filepath.Join(root, filepath.FromSlash(d))
		}
		return out
	}
	return Locations{LibDirs: join(l.LibDirs), IncludeDirs: join(l.IncludeDirs)}
}

// Flags renders l as compiler/linker flags, e.g. "-Iinc -Llib".
func (l Locations) Flags() string {
	var parts []string
	for _, d := range l.IncludeDirs {
		parts = append(parts, "-I"+d)
	}
	for _, d := range l.LibDirs {
		parts = append(parts, "-L"+d)
	}
	return strings.Join(parts, " ")
}
