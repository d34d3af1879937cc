package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/takkernel/takpkg/internal/config"
	"github.com/takkernel/takpkg/internal/layout"
	"github.com/takkernel/takpkg/internal/platform"
	"go.yaml.in/yaml/v3"
)

var (
	infoFormat   string
	infoAbsolute bool
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the include and library directories of a package",
	Long: `Print the directories downstream builds should add to their search paths.
Paths are relative to the package root unless --absolute is given.

Formats:
  yaml   identifier, lib_dirs, include_dirs (default)
  json   same fields as JSON
  flags  -I<include> -L<lib>`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().StringVar(&infoFormat, "format", "yaml", "Output format: yaml, json, flags")
	infoCmd.Flags().BoolVar(&infoAbsolute, "absolute", false, "Join paths onto the package root")
	rootCmd.AddCommand(infoCmd)
}

type packageInfo struct {
	Identifier       platform.Identifier `yaml:"identifier" json:"identifier"`
	layout.Locations `yaml:",inline"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	s := config.Current()

	d, err := targetDescriptor(s)
	if err != nil {
		return err
	}
	id, err := platform.Resolve(d)
	if err != nil {
		return err
	}

	locs := layout.Publish(id)
	if infoAbsolute {
		locs = locs.Under(s.PackageRoot)
	}

	return writeInfo(cmd.OutOrStdout(), infoFormat, packageInfo{Identifier: id, Locations: locs})
}

func writeInfo(w io.Writer, format string, info packageInfo) error {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(info)
		if err != nil {
			return fmt.Errorf("marshaling package info: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "json":
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling package info: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "flags":
		_, err := fmt.Fprintln(w, info.Flags())
		return err
	default:
		return fmt.Errorf("unknown format %q (want yaml, json, or flags)", format)
	}
}
