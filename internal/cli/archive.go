package cli

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/takkernel/takpkg/internal/config"
	"github.com/takkernel/takpkg/internal/layout"
	"github.com/takkernel/takpkg/internal/platform"
)

var (
	archiveAll    bool
	archiveOutput string
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Bundle an assembled package layout into a .tar.xz",
	Long: `Write <name>-<version>-<platform>.tar.xz containing <package-root>/<platform>/.
Run "takpkg package" first. When a manifest from "package --manifest" exists,
the layout is checked against it before archiving. The archive is written
locally only.`,
	Args: cobra.NoArgs,
	RunE: runArchive,
}

func init() {
	archiveCmd.Flags().BoolVar(&archiveAll, "all", false, "Archive every platform listed in the recipe")
	archiveCmd.Flags().StringVarP(&archiveOutput, "output", "o", ".", "Directory to write archives to")
	archiveCmd.Flags().String("pkg-version", "", "Package version (overrides the recipe)")
	rootCmd.AddCommand(archiveCmd)
}

func runArchive(cmd *cobra.Command, args []string) error {
	s := config.Current()

	r, err := loadRecipe(s)
	if err != nil {
		return err
	}
	version, err := r.ResolveVersion(s.Version)
	if err != nil {
		return err
	}
	descs, err := targets(s, r, archiveAll)
	if err != nil {
		return err
	}

	if err := fsys.MkdirAll(archiveOutput, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, d := range descs {
		id, err := platform.Resolve(d)
		if err != nil {
			return err
		}

		if err := verifyLayout(s.PackageRoot, id); err != nil {
			return err
		}

		path := filepath.Join(archiveOutput, layout.ArchiveName(r.Name, version, id))
		f, err := fsys.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}

		n, err := layout.WriteArchive(fsys, s.PackageRoot, id, f)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			_ = fsys.Remove(path)
			return fmt.Errorf("archiving %s: %w", id, err)
		}

		size := ""
		if info, statErr := fsys.Stat(path); statErr == nil {
			size = humanize.Bytes(uint64(info.Size()))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s (%d files, %s)\n", path, n, size)
	}

	return nil
}

// verifyLayout compares the layout with its manifest, if one was written.
func verifyLayout(packageRoot string, id platform.Identifier) error {
	path := layout.ManifestPath(packageRoot, id)
	exists, err := afero.Exists(fsys, path)
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if !exists {
		logger.Debug("no manifest, archiving unverified", "id", id)
		return nil
	}

	m, err := layout.ReadManifest(fsys, path)
	if err != nil {
		return err
	}
	if m.Identifier != id {
		return fmt.Errorf("%w: %s records %s", layout.ErrManifestMismatch, path, m.Identifier)
	}
	if err := layout.VerifyManifest(fsys, packageRoot, m); err != nil {
		return fmt.Errorf("archiving %s: %w", id, err)
	}
	logger.Debug("layout verified", "id", id, "files", len(m.Files))
	return nil
}
