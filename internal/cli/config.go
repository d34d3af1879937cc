package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/takkernel/takpkg/internal/branding"
	"github.com/takkernel/takpkg/internal/config"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long:  configLong(),
}

func configLong() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Read and write settings stored at ~/%s/config.yaml.\n\n", branding.HomeDir())
	b.WriteString("Keys and their environment variables:\n")
	for _, key := range config.Keys {
		fmt.Fprintf(&b, "  %-14s %s\n", key, branding.EnvVar(key))
	}
	b.WriteString("\nFlags given on the command line are never written by \"config set\".")
	return b.String()
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !config.IsKey(args[0]) {
			return fmt.Errorf("%w %q", config.ErrUnknownKey, args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}
