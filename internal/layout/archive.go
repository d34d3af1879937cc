package layout

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/takkernel/takpkg/internal/platform"
	"github.com/ulikunitz/xz"
)

// ArchiveName returns the file name for a package archive:
// {name}-{version}-{id}.tar.xz.
func ArchiveName(name, version string, id platform.Identifier) string {
	return fmt.Sprintf("%s-%s-%s.tar.xz", name, version, id)
}

// WriteArchive writes <packageRoot>/<id> as an xz-compressed tarball to w.
// Entries are named <id>/... in lexical order with zeroed timestamps so
// identical layouts produce identical archives. It returns the number of
// regular files written.
func WriteArchive(fs afero.Fs, packageRoot string, id platform.Identifier, w io.Writer) (int, error) {
	root := filepath.Join(packageRoot, id.String())
	exists, err := afero.DirExists(fs, root)
	if err != nil {
		return 0, fmt.Errorf("checking %s: %w", root, err)
	}
	if !exists {
		return 0, fmt.Errorf("package layout %s does not exist", root)
	}

	xzw, err := xz.NewWriter(w)
	if err != nil {
		return 0, fmt.Errorf("creating xz writer: %w", err)
	}
	tw := tar.NewWriter(xzw)

	count := 0
	epoch := time.Unix(0, 0)
	err = afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(packageRoot, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)

		if info.IsDir() {
			return tw.WriteHeader(&tar.Header{
				Name:     name + "/",
				Mode:     0755,
				ModTime:  epoch,
				Typeflag: tar.TypeDir,
			})
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		if err := tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     int64(info.Mode().Perm()),
			Size:     info.Size(),
			ModTime:  epoch,
			Typeflag: tar.TypeReg,
		}); err != nil {
			return err
		}

		f, err := fs.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		if _, err := io.Copy(tw, f); err != nil {
			return fmt.Errorf("archiving %s: %w", path, err)
		}
		count++
		return nil
	})
	if err != nil {
		return 0, err
	}

	if err := tw.Close(); err != nil {
		return 0, fmt.Errorf("closing tar stream: %w", err)
	}
	if err := xzw.Close(); err != nil {
		return 0, fmt.Errorf("closing xz stream: %w", err)
	}
	return count, nil
}
