package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/takkernel/takpkg/internal/config"
	"github.com/takkernel/takpkg/internal/recipe"
)

var validateCmd = &cobra.Command{
	Use:   "validate [recipe]",
	Short: "Validate a recipe file against the schema",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.Current().Recipe
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			path = recipe.DefaultFileName
		}

		issues, err := recipe.ValidateFile(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(issues) > 0 {
			fmt.Fprintf(out, "✗ %s has %d issue(s):\n", path, len(issues))
			for _, issue := range issues {
				fmt.Fprintf(out, "  %s\n", issue)
			}
			return fmt.Errorf("recipe %s is invalid", path)
		}

		// Schema-valid files can still name unknown platforms or escaping rules.
		if _, err := recipe.Parse(path); err != nil {
			return err
		}

		fmt.Fprintf(out, "✓ %s is valid\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
