package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/takkernel/takpkg/internal/config"
	"github.com/takkernel/takpkg/internal/platform"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List the recipe's platforms and their identifiers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadRecipe(config.Current())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "OS\tARCH\tIDENTIFIER")
		for _, d := range r.Platforms {
			id, err := platform.Resolve(d)
			if err != nil {
				fmt.Fprintf(w, "%s\t%s\t(error: %v)\n", d.OS, d.Arch, err)
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", d.OS, d.Arch, id)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(platformsCmd)
}
