package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/takkernel/takpkg/internal/config"
	"github.com/takkernel/takpkg/internal/platform"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [os] [arch]",
	Short: "Print the platform identifier for an OS and architecture",
	Long: `Print the canonical identifier used as the platform directory name.
Without arguments, --os/--arch (or the host) are used.

Examples:
  takpkg resolve Android armv8     # android-arm64-v8a
  takpkg resolve Windows x86_64    # windows-x86_64`,
	Args: cobra.MaximumNArgs(2),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	s := config.Current()
	if len(args) > 0 {
		s.OS = args[0]
	}
	if len(args) > 1 {
		s.Arch = args[1]
	}

	d, err := targetDescriptor(s)
	if err != nil {
		return err
	}
	id, err := platform.Resolve(d)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}
