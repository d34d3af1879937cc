package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/takkernel/takpkg/internal/config"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the copy rules applied when packaging",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadRecipe(config.Current())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "PATTERN\tSOURCE\tDESTINATION")
		for _, rule := range r.CopyRules() {
			fmt.Fprintf(w, "%s\tbuild/<id>/%s\t<id>/%s\n", rule.Pattern, rule.Src, rule.Dst)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
