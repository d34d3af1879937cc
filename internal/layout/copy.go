package layout

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/takkernel/takpkg/internal/platform"
	"github.com/zeebo/blake3"
)

// ErrOverlappingTrees is returned when a rule's source and destination
// directories are the same or nested, which would copy files onto themselves.
var ErrOverlappingTrees = errors.New("source and destination directories overlap")

// File is one artifact written into the package layout.
type File struct {
	Path   string `yaml:"path" json:"path"` // slash-separated, relative to the package root
	Size   int64  `yaml:"size" json:"size"`
	Digest string `yaml:"blake3" json:"blake3"`
}

// Result describes a completed Assemble run.
type Result struct {
	Identifier platform.Identifier
	Files      []File
}

// TotalSize returns the sum of all copied file sizes.
func (r *Result) TotalSize() int64 {
	var n int64
	for _, f := range r.Files {
		n += f.Size
	}
	return n
}

// Copier applies a rule table against a filesystem.
type Copier struct {
	fs     afero.Fs
	rules  []CopyRule
	logger *log.Logger
}

// NewCopier returns a Copier over fs. A nil rules slice selects
// DefaultRules; a nil logger discards output.
func NewCopier(fs afero.Fs, rules []CopyRule, logger *log.Logger) *Copier {
	if rules == nil {
		rules = DefaultRules()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Copier{fs: fs, rules: rules, logger: logger}
}

// Assemble copies every file matched by the rule table from
// <buildRoot>/<id>/<src> to <packageRoot>/<id>/<dst>, in table order.
// Missing source directories and rules without matches are skipped.
// Existing files are overwritten, so repeated runs converge on the same
// layout. On error, files copied by earlier rules are left in place.
// Rules whose source and destination overlap are rejected before anything
// is written.
func (c *Copier) Assemble(id platform.Identifier, buildRoot, packageRoot string) (*Result, error) {
	if id == "" {
		return nil, fmt.Errorf("assembling package: empty platform identifier")
	}
	if err := ValidateRules(c.rules); err != nil {
		return nil, fmt.Errorf("assembling package: %w", err)
	}
	for _, rule := range c.rules {
		src, dst := ruleDirs(rule, id, buildRoot, packageRoot)
		if overlaps(src, dst) {
			return nil, fmt.Errorf("applying rule %s: %w: %s and %s", rule, ErrOverlappingTrees, src, dst)
		}
	}

	files := make(map[string]File)
	for _, rule := range c.rules {
		if err := c.apply(rule, id, buildRoot, packageRoot, files); err != nil {
			return nil, fmt.Errorf("applying rule %s: %w", rule, err)
		}
	}

	result := &Result{Identifier: id}
	for _, f := range files {
		result.Files = append(result.Files, f)
	}
	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})

	c.logger.Debug("package assembled", "id", id, "files", len(result.Files))
	return result, nil
}

func (c *Copier) apply(rule CopyRule, id platform.Identifier, buildRoot, packageRoot string, files map[string]File) error {
	re, err := compilePattern(rule.Pattern)
	if err != nil {
		return err
	}

	src, _ := ruleDirs(rule, id, buildRoot, packageRoot)
	dstRel := filepath.Join(id.String(), filepath.FromSlash(rule.Dst))

	exists, err := afero.DirExists(c.fs, src)
	if err != nil {
		return fmt.Errorf("checking %s: %w", src, err)
	}
	if !exists {
		c.logger.Debug("source missing, skipping", "rule", rule.Pattern, "src", src)
		return nil
	}

	matched := 0
	err = afero.Walk(c.fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode()&os.ModeSymlink != 0 {
			// Shared libraries are commonly symlinked; copy the target contents.
			info, err = c.fs.Stat(path)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", path, err)
			}
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if !matches(re, rel) {
			return nil
		}

		target := filepath.Join(dstRel, rel)
		f, err := c.copyFile(path, filepath.Join(packageRoot, target), info.Mode().Perm())
		if err != nil {
			return err
		}
		f.Path = filepath.ToSlash(target)
		files[f.Path] = f
		matched++

		c.logger.Debug("copied", "src", path, "dst", f.Path)
		return nil
	})
	if err != nil {
		return err
	}

	if matched == 0 {
		c.logger.Debug("no files matched", "rule", rule.Pattern, "src", src)
	}
	return nil
}

// ruleDirs returns the source and destination directories of rule for id.
func ruleDirs(rule CopyRule, id platform.Identifier, buildRoot, packageRoot string) (src, dst string) {
	src = filepath.Join(buildRoot, id.String(), filepath.FromSlash(rule.Src))
	dst = filepath.Join(packageRoot, id.String(), filepath.FromSlash(rule.Dst))
	return src, dst
}

// overlaps reports whether a and b are the same directory or one contains
// the other.
func overlaps(a, b string) bool {
	a, b = absPath(a), absPath(b)
	return within(a, b) || within(b, a)
}

func within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

func matches(re *regexp.Regexp, rel string) bool {
	return re.MatchString(filepath.ToSlash(rel))
}

// copyFile streams src to dst, truncating any existing file, and returns
// the size and BLAKE3 digest of what was written.
func (c *Copier) copyFile(src, dst string, perm os.FileMode) (File, error) {
	in, err := c.fs.Open(src)
	if err != nil {
		return File{}, fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	if err := c.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return File{}, fmt.Errorf("creating directory for %s: %w", dst, err)
	}

	out, err := c.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return File{}, fmt.Errorf("creating %s: %w", dst, err)
	}

	h := blake3.New()
	n, err := io.Copy(io.MultiWriter(out, h), in)
	if err != nil {
		out.Close()
		return File{}, fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return File{}, fmt.Errorf("closing %s: %w", dst, err)
	}

	return File{Size: n, Digest: hex.EncodeToString(h.Sum(nil))}, nil
}

// Clean removes <packageRoot>/<id> so the next Assemble starts from an
// empty layout.
func Clean(fs afero.Fs, packageRoot string, id platform.Identifier) error {
	if id == "" {
		return fmt.Errorf("refusing to clean with empty platform identifier")
	}
	dir := filepath.Join(packageRoot, id.String())
	if err := fs.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing %s: %w", dir, err)
	}
	return nil
}
