package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/takkernel/takpkg/internal/config"
	"github.com/takkernel/takpkg/internal/layout"
	"github.com/takkernel/takpkg/internal/platform"
)

var (
	packageAll      bool
	packageClean    bool
	packageManifest bool
)

var packageCmd = &cobra.Command{
	Use:   "package",
	Short: "Assemble the package layout for a platform",
	Long: `Copy headers, libraries, debug symbols, and pkg-config files from
<build-root>/<platform>/ into <package-root>/<platform>/ using the recipe's
copy rules. Sources that do not exist are skipped.

Examples:
  takpkg package --os Linux --arch x86_64
  takpkg package --os Android --arch armv8 --clean
  takpkg package --all --manifest --pkg-version 5.1.0`,
	Args: cobra.NoArgs,
	RunE: runPackage,
}

func init() {
	packageCmd.Flags().BoolVar(&packageAll, "all", false, "Package every platform listed in the recipe")
	packageCmd.Flags().BoolVar(&packageClean, "clean", false, "Remove the existing platform layout before copying")
	packageCmd.Flags().BoolVar(&packageManifest, "manifest", false, "Write <package-root>/<platform>.manifest.yaml")
	packageCmd.Flags().String("pkg-version", "", "Package version (overrides the recipe)")
	rootCmd.AddCommand(packageCmd)
}

func runPackage(cmd *cobra.Command, args []string) error {
	s := config.Current()

	r, err := loadRecipe(s)
	if err != nil {
		return err
	}

	descs, err := targets(s, r, packageAll)
	if err != nil {
		return err
	}

	var version string
	if packageManifest {
		version, err = r.ResolveVersion(s.Version)
		if err != nil {
			return err
		}
	}

	copier := layout.NewCopier(fsys, r.CopyRules(), logger)
	out := cmd.OutOrStdout()

	for _, d := range descs {
		id, err := platform.Resolve(d)
		if err != nil {
			return err
		}
		logger.Debug("packaging", "platform", d, "id", id)

		if packageClean {
			if err := layout.Clean(fsys, s.PackageRoot, id); err != nil {
				return err
			}
		}

		result, err := copier.Assemble(id, s.BuildRoot, s.PackageRoot)
		if err != nil {
			return fmt.Errorf("packaging %s: %w", id, err)
		}

		if packageManifest {
			path := layout.ManifestPath(s.PackageRoot, id)
			if err := layout.WriteManifest(fsys, path, layout.NewManifest(r.Name, version, d, result)); err != nil {
				return err
			}
			logger.Debug("manifest written", "path", path)
		}

		fmt.Fprintf(out, "✓ Packaged %s (%d files, %s)\n", id, len(result.Files), humanize.Bytes(uint64(result.TotalSize())))
	}

	return nil
}
